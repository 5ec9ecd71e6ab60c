package verify

import "time"

// Outcome is the verdict of checking a student answer against the expected one.
type Outcome string

const (
	OutcomeCorrect     Outcome = "correct"
	OutcomeClose       Outcome = "close"
	OutcomeWrong       Outcome = "wrong"
	OutcomeUnparseable Outcome = "unparseable"
)

// Tolerance is the absolute difference under which two values are equal.
const Tolerance = 0.001

// CloseFactor scales the expected value into the near-miss band.
// A wrong answer within CloseFactor*|expected| of the expected value counts
// as close. When the expected value is 0 the band has zero width: any
// nonzero difference is wrong.
const CloseFactor = 0.2

// Result is the outcome of one verification.
// StudentValue, ExpectedValue and Diff are only meaningful when the outcome
// is not OutcomeUnparseable.
type Result struct {
	Outcome       Outcome
	StudentValue  float64
	ExpectedValue float64
	Diff          float64

	// RawInput is the student input before normalization. Kept for audit.
	RawInput string

	// Diagnostic is the parser error message when Outcome is OutcomeUnparseable.
	Diagnostic string

	// Timestamp records when the verification ran.
	Timestamp time.Time
}

// Correct reports whether the answer matched within tolerance.
func (r Result) Correct() bool { return r.Outcome == OutcomeCorrect }

// Close reports whether the answer was a near miss.
func (r Result) Close() bool { return r.Outcome == OutcomeClose }

// Parsed reports whether both sides evaluated to numbers.
func (r Result) Parsed() bool { return r.Outcome != OutcomeUnparseable }
