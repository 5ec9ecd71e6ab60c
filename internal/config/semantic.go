package config

import "strings"

// Verdict is the outcome of a conceptual keyword match.
type Verdict string

const (
	// VerdictMatch: the response uses an expected keyword for the variant.
	VerdictMatch Verdict = "match"
	// VerdictMismatch: the response uses a known-wrong keyword.
	VerdictMismatch Verdict = "mismatch"
	// VerdictUnknown: neither keyword set matched; the caller needs
	// semantic judgment it cannot get from a keyword table.
	VerdictUnknown Verdict = "unknown"
)

// anyVariant is the bucket for patterns without variant-specific keywords.
const anyVariant = "any"

// ValidateConceptual matches a student's response to a conceptual
// sub-question against the keyword pattern registered under patternKey.
// variant selects the keyword bucket ("+"/"-", "positive"/"negative");
// pass "" for single-bucket patterns.
//
// Wrong keywords are checked before expected ones, so "not adding,
// subtracting" with variant "+" still reads as a mismatch: presence of a
// keyword is never blindly accepted as correctness.
func (r *Registries) ValidateConceptual(patternKey, variant, question, response string) Verdict {
	if variant == "" {
		variant = anyVariant
	}

	q := strings.ToLower(question)
	resp := strings.ToLower(response)

	for _, p := range r.SemanticPatterns[patternKey] {
		if !matchesQuestion(p.QuestionPatterns, q) {
			continue
		}
		if containsAny(resp, p.WrongKeywords[variant]) {
			return VerdictMismatch
		}
		if containsAny(resp, p.ExpectedKeywords[variant]) {
			return VerdictMatch
		}
	}
	return VerdictUnknown
}

func matchesQuestion(patterns []string, question string) bool {
	for _, p := range patterns {
		if strings.Contains(question, strings.ToLower(p)) {
			return true
		}
	}
	return false
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, strings.ToLower(k)) {
			return true
		}
	}
	return false
}
