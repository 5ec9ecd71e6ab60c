package errpattern

import (
	"errors"
	"math"
	"testing"
)

func TestDetectAddition_Candidates(t *testing.T) {
	// -3 + 5: the four documented misconceptions.
	reg := DefaultRegistry()
	cands, err := reg.Detect(Key{SubjectMathArithmetic, OpAddition}, -3, 5)
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	want := []float64{8, -8, 8, -2}
	got := Values(cands)
	if len(got) != len(want) {
		t.Fatalf("got %d candidates, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("candidate %d = %g, want %g", i, got[i], want[i])
		}
	}
}

func TestDetectSubtraction_Candidates(t *testing.T) {
	reg := DefaultRegistry()
	cands, err := reg.Detect(Key{SubjectMathArithmetic, OpSubtraction}, -3, 5)
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	// -3 + 5 = 2, |-3|+|5| = 8, 5-(-3) = 8, |-3-5| = 8
	want := []float64{2, 8, 8, 8}
	for i, v := range Values(cands) {
		if v != want[i] {
			t.Errorf("candidate %d = %g, want %g", i, v, want[i])
		}
	}
}

func TestDetectDivision_ZeroDivisor(t *testing.T) {
	reg := DefaultRegistry()
	cands, err := reg.Detect(Key{SubjectMathArithmetic, OpDivision}, -3, 0)
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if len(cands) != 0 {
		t.Errorf("got %d candidates for zero divisor, want 0", len(cands))
	}
}

func TestDetectDivision_Candidates(t *testing.T) {
	reg := DefaultRegistry()
	cands, err := reg.Detect(Key{SubjectMathArithmetic, OpDivision}, -3, 5)
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	want := []float64{-15, 5.0 / -3.0, 0.6, 0.6}
	for i, v := range Values(cands) {
		if math.Abs(v-want[i]) > 1e-9 {
			t.Errorf("candidate %d = %g, want %g", i, v, want[i])
		}
	}
}

func TestDetect_NoDetector(t *testing.T) {
	reg := DefaultRegistry()
	_, err := reg.Detect(Key{"chemistry", "ph"}, 1, 2)
	if !errors.Is(err, ErrNoDetector) {
		t.Errorf("got %v, want ErrNoDetector", err)
	}
}

func TestRegister_NewSubject(t *testing.T) {
	// Adding a subject must not require changes to calling code.
	reg := NewRegistry()
	key := Key{"physics", "force"}
	reg.Register(key, func(m, acc float64) []Candidate {
		return []Candidate{{Pattern: "added_instead", Value: m + acc}}
	})
	cands, err := reg.Detect(key, 2, 10)
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if len(cands) != 1 || cands[0].Value != 12 {
		t.Errorf("custom detector not applied: %+v", cands)
	}
}

func TestExtractArithmetic(t *testing.T) {
	tests := []struct {
		text   string
		a, b   float64
		op     Operation
		wantOK bool
	}{
		{"What is -3 + 5?", -3, 5, OpAddition, true},
		{"Compute 7 - 2", 7, 2, OpSubtraction, true},
		{"4 * 6 = ?", 4, 6, OpMultiplication, true},
		{"4 × 6 = ?", 4, 6, OpMultiplication, true},
		{"15 / 3", 15, 3, OpDivision, true},
		{"15 ÷ 3", 15, 3, OpDivision, true},
		{"2.5 + 1.5", 2.5, 1.5, OpAddition, true},
		{"A train leaves the station", 0, 0, "", false},
		{"", 0, 0, "", false},
	}
	for _, tt := range tests {
		a, b, op, ok := ExtractArithmetic(tt.text)
		if ok != tt.wantOK {
			t.Errorf("ExtractArithmetic(%q) ok = %v, want %v", tt.text, ok, tt.wantOK)
			continue
		}
		if !ok {
			continue
		}
		if a != tt.a || b != tt.b || op != tt.op {
			t.Errorf("ExtractArithmetic(%q) = (%g, %g, %q), want (%g, %g, %q)",
				tt.text, a, b, op, tt.a, tt.b, tt.op)
		}
	}
}

func TestDetectForProblem(t *testing.T) {
	reg := DefaultRegistry()
	cands, err := reg.DetectForProblem(SubjectMathArithmetic, "What is -3 + 5?")
	if err != nil {
		t.Fatalf("DetectForProblem: %v", err)
	}
	if len(cands) != 4 {
		t.Errorf("got %d candidates, want 4", len(cands))
	}

	_, err = reg.DetectForProblem(SubjectMathArithmetic, "Describe a number line")
	if !errors.Is(err, ErrNoDetector) {
		t.Errorf("got %v, want ErrNoDetector for shapeless text", err)
	}
}

func TestMatchCandidate(t *testing.T) {
	cands := detectAddition(-3, 5)

	// Student answered 8: matches the sign_error candidate first.
	c, ok := MatchCandidate(cands, 8)
	if !ok {
		t.Fatal("expected a match for 8")
	}
	if c.Pattern != "sign_error" {
		t.Errorf("pattern = %q, want sign_error", c.Pattern)
	}
	if c.Hint == "" {
		t.Error("matched candidate must carry a hint")
	}

	// Student answered -8: subtracted instead.
	c, ok = MatchCandidate(cands, -8)
	if !ok || c.Pattern != "addition_as_subtraction" {
		t.Errorf("got (%q, %v), want addition_as_subtraction", c.Pattern, ok)
	}

	// No misconception produces 100.
	if _, ok := MatchCandidate(cands, 100); ok {
		t.Error("unexpected match for 100")
	}
}
