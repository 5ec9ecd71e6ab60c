package classify

import (
	"errors"
	"testing"

	"github.com/abhisek/socra/internal/errpattern"
	"github.com/abhisek/socra/internal/verify"
)

func TestClassify_Correct(t *testing.T) {
	c, err := Classify(verify.Verify("2", "2"))
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if c.Category != CategoryCorrect {
		t.Errorf("category = %q, want correct", c.Category)
	}
	if c.Confidence != 0.99 {
		t.Errorf("confidence = %g, want 0.99", c.Confidence)
	}
	if c.NextAction != "teach_back" || c.Tone != "celebrating" {
		t.Errorf("metadata = (%q, %q), want (teach_back, celebrating)", c.NextAction, c.Tone)
	}
	if c.ErrorMagnitude != "" {
		t.Errorf("correct answers carry no error magnitude, got %q", c.ErrorMagnitude)
	}
}

func TestClassify_Close(t *testing.T) {
	// Expected 10, answered 11: diff 1 < 2.
	c, err := Classify(verify.Verify("11", "10"))
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if c.Category != CategoryClose {
		t.Errorf("category = %q, want close", c.Category)
	}
	if c.Confidence != 0.95 {
		t.Errorf("confidence = %g, want 0.95", c.Confidence)
	}
	if c.NextAction != "probe" || c.Tone != "encouraging" {
		t.Errorf("metadata = (%q, %q), want (probe, encouraging)", c.NextAction, c.Tone)
	}
	if c.ErrorMagnitude != "small" {
		t.Errorf("magnitude = %q, want small", c.ErrorMagnitude)
	}
}

func TestClassify_WrongOperation(t *testing.T) {
	// Problem "-3 + 5": answered 8, diff 6, threshold 0.4.
	c, err := Classify(verify.Verify("8", "2"))
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if c.Category != CategoryWrongOperation {
		t.Errorf("category = %q, want wrong_operation", c.Category)
	}
	if c.Confidence != 0.85 {
		t.Errorf("confidence = %g, want 0.85", c.Confidence)
	}
	if c.NextAction != "clarify" || c.Tone != "patient" {
		t.Errorf("metadata = (%q, %q), want (clarify, patient)", c.NextAction, c.Tone)
	}
}

func TestClassify_BoundaryIsWrongNotClose(t *testing.T) {
	// diff = 1 ≥ closeThreshold 0.4 for expected 2.
	c, err := Classify(verify.Verify("3", "2"))
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if c.Category != CategoryWrongOperation {
		t.Errorf("category = %q, want wrong_operation", c.Category)
	}
}

func TestClassify_Unparseable(t *testing.T) {
	_, err := Classify(verify.Verify("i dunno", "2"))
	if !errors.Is(err, ErrUnparseable) {
		t.Errorf("got %v, want ErrUnparseable", err)
	}
}

func TestEnrich_WrongAnswerGetsPattern(t *testing.T) {
	res := verify.Verify("8", "2") // -3 + 5, student added absolutes
	c, err := Classify(res)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}

	reg := errpattern.DefaultRegistry()
	cands, err := reg.DetectForProblem(errpattern.SubjectMathArithmetic, "What is -3 + 5?")
	if err != nil {
		t.Fatalf("DetectForProblem: %v", err)
	}

	Enrich(c, cands, res.StudentValue)
	if c.Pattern == nil {
		t.Fatal("expected a matched pattern")
	}
	if c.Pattern.Pattern != "sign_error" {
		t.Errorf("pattern = %q, want sign_error", c.Pattern.Pattern)
	}
	// Enrichment never changes the base verdict.
	if c.Category != CategoryWrongOperation || c.Confidence != 0.85 {
		t.Errorf("enrichment changed the verdict: %q %g", c.Category, c.Confidence)
	}
}

func TestEnrich_CorrectAnswerUntouched(t *testing.T) {
	res := verify.Verify("2", "2")
	c, _ := Classify(res)
	cands := []errpattern.Candidate{{Pattern: "sign_error", Value: 2}}
	Enrich(c, cands, res.StudentValue)
	if c.Pattern != nil {
		t.Error("correct answers must not get a misconception pattern")
	}
}

func TestKnown(t *testing.T) {
	for _, cat := range []Category{CategoryCorrect, CategoryClose, CategoryWrongOperation} {
		if !Known(cat) {
			t.Errorf("Known(%q) = false, want true", cat)
		}
	}
	if Known("galaxy_brain") {
		t.Error("Known should reject categories outside the closed set")
	}
}
