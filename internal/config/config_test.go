package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	r, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}

	if len(r.AgeGroups) != 3 {
		t.Errorf("age groups = %d, want 3", len(r.AgeGroups))
	}
	g := r.AgeGroupFor("grades_6-8")
	if g.Vocabulary != "moderate" {
		t.Errorf("grades_6-8 vocabulary = %q, want moderate", g.Vocabulary)
	}
	if _, ok := r.SemanticPatterns["math_operation_identification"]; !ok {
		t.Error("operation identification patterns missing")
	}
	if _, ok := r.FeatureExtractionFor("math_arithmetic"); !ok {
		t.Error("math_arithmetic feature extraction missing")
	}
}

func TestAgeGroupFor_UnknownFallsBack(t *testing.T) {
	r, err := Default()
	if err != nil {
		t.Fatal(err)
	}

	g := r.AgeGroupFor("kindergarten")
	if g.Label != r.AgeGroups[DefaultAgeGroup].Label {
		t.Errorf("unknown age group resolved to %q, want the %s default", g.Label, DefaultAgeGroup)
	}
}

func TestLoad_OverridesLayerOnDefaults(t *testing.T) {
	override := `
age_groups:
  grades_3-5:
    label: custom young band
    vocabulary: very simple
categories:
  partially_correct:
    confidence: 0.9
    next_action: probe
    tone: encouraging
    error_magnitude: small
`
	path := filepath.Join(t.TempDir(), "overrides.yaml")
	if err := os.WriteFile(path, []byte(override), 0o644); err != nil {
		t.Fatal(err)
	}

	r, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if got := r.AgeGroups["grades_3-5"].Label; got != "custom young band" {
		t.Errorf("overridden label = %q", got)
	}
	// Untouched defaults survive the overlay.
	if _, ok := r.AgeGroups["grades_9-12"]; !ok {
		t.Error("default grades_9-12 lost after override")
	}
	cat, ok := r.Categories["partially_correct"]
	if !ok {
		t.Fatal("added category missing")
	}
	if cat.Confidence != 0.9 || cat.NextAction != "probe" {
		t.Errorf("added category = %+v", cat)
	}
}

func TestLoad_MissingOverrideFile(t *testing.T) {
	if _, err := Load("/nonexistent/registries.yaml"); err == nil {
		t.Error("expected error for missing override file")
	}
}

func TestValidateConceptual(t *testing.T) {
	r, err := Default()
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		key      string
		variant  string
		question string
		response string
		want     Verdict
	}{
		{"operation match", "math_operation_identification", "+", "When we see +, are we adding or subtracting?", "adding", VerdictMatch},
		{"operation mismatch", "math_operation_identification", "+", "When we see +, are we adding or subtracting?", "subtracting", VerdictMismatch},
		{"operation synonym", "math_operation_identification", "+", "Do we add or subtract here?", "we find the sum", VerdictMatch},
		{"direction match", "math_direction_identification", "positive", "Which direction do we move for +5?", "to the right", VerdictMatch},
		{"direction mismatch", "math_direction_identification", "positive", "Which direction do we move for +5?", "left", VerdictMismatch},
		{"negative concept match", "math_negative_number_concept", "", "What does -3 mean?", "it's 3 left of zero", VerdictMatch},
		{"negative concept mismatch", "math_negative_number_concept", "", "What does -3 mean?", "a positive number", VerdictMismatch},
		{"question not covered", "math_operation_identification", "+", "What's your favorite number?", "adding", VerdictUnknown},
		{"response off table", "math_operation_identification", "+", "Are we adding or subtracting?", "hmm not sure", VerdictUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.ValidateConceptual(tt.key, tt.variant, tt.question, tt.response)
			if got != tt.want {
				t.Errorf("ValidateConceptual(%q, %q, %q, %q) = %q, want %q",
					tt.key, tt.variant, tt.question, tt.response, got, tt.want)
			}
		})
	}
}
