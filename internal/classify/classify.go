// Package classify maps a verification result to an answer-quality category
// with confidence and rationale. Classification is derived, never stored:
// it is recomputed from the verification on every turn.
package classify

import (
	"errors"
	"fmt"

	"github.com/abhisek/socra/internal/errpattern"
	"github.com/abhisek/socra/internal/verify"
)

// Category is an answer-quality label from the closed set.
type Category string

const (
	CategoryCorrect        Category = "correct"
	CategoryClose          Category = "close"
	CategoryWrongOperation Category = "wrong_operation"
)

// ErrUnparseable reports that the verification produced no numbers to
// classify. The caller surfaces this as a distinct turn type (ask the
// student to restate) instead of a category.
var ErrUnparseable = errors.New("verification result is unparseable")

// Classification is the classifier's verdict for one turn.
type Classification struct {
	Category   Category
	Confidence float64
	Reasoning  string

	// NextAction and Tone direct the downstream response generator.
	NextAction string
	Tone       string

	// ErrorMagnitude is a coarse size label for wrong answers
	// ("small", "significant"); empty for correct ones.
	ErrorMagnitude string

	// Pattern is the matched misconception, when the error-pattern
	// registry recognized the student's value. Advisory only: it does not
	// change the category or confidence.
	Pattern *errpattern.Candidate
}

// metadata carries the fixed per-category response-generation hints.
var metadata = map[Category]struct {
	nextAction string
	tone       string
	magnitude  string
}{
	CategoryCorrect:        {"teach_back", "celebrating", ""},
	CategoryClose:          {"probe", "encouraging", "small"},
	CategoryWrongOperation: {"clarify", "patient", "significant"},
}

// Classify derives the category for a verification result.
// Returns ErrUnparseable when the result carries no numbers.
func Classify(res verify.Result) (*Classification, error) {
	if !res.Parsed() {
		return nil, fmt.Errorf("%w: %s", ErrUnparseable, res.Diagnostic)
	}

	var c *Classification
	switch {
	case res.Correct():
		c = &Classification{
			Category:   CategoryCorrect,
			Confidence: 0.99,
			Reasoning:  "Answer matches expected value",
		}
	case res.Close():
		c = &Classification{
			Category:   CategoryClose,
			Confidence: 0.95,
			Reasoning:  "Answer is within 20% of correct value (likely calculation error)",
		}
	default:
		// Catch-all for every other parsed-but-wrong answer. Deliberately
		// coarse: the error-pattern registry refines it via Enrich, and
		// further sub-classification is an extension point, not a default.
		c = &Classification{
			Category:   CategoryWrongOperation,
			Confidence: 0.85,
			Reasoning:  "Answer is significantly wrong (conceptual error or wrong operation)",
		}
	}

	md := metadata[c.Category]
	c.NextAction = md.nextAction
	c.Tone = md.tone
	c.ErrorMagnitude = md.magnitude
	return c, nil
}

// Enrich attaches a matched misconception candidate to a wrong-answer
// classification. Correct and close answers are left untouched.
func Enrich(c *Classification, candidates []errpattern.Candidate, studentValue float64) {
	if c == nil || c.Category == CategoryCorrect || c.Category == CategoryClose {
		return
	}
	if match, ok := errpattern.MatchCandidate(candidates, studentValue); ok {
		c.Pattern = &match
	}
}

// Known reports whether cat belongs to the closed category set. Unknown
// categories still flow through the pipeline verbatim so the host can log
// them; this is the check callers use to notice.
func Known(cat Category) bool {
	_, ok := metadata[cat]
	return ok
}
