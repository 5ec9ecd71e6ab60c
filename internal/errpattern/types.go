package errpattern

import "errors"

// Subject identifies a teaching subject in the registry key space.
type Subject string

// SubjectMathArithmetic is the only built-in subject. Others register
// their own detectors without touching the callers.
const SubjectMathArithmetic Subject = "math_arithmetic"

// Operation identifies the kind of operation within a subject.
type Operation string

const (
	OpAddition       Operation = "addition"
	OpSubtraction    Operation = "subtraction"
	OpMultiplication Operation = "multiplication"
	OpDivision       Operation = "division"
)

// Key addresses one detector in the registry.
type Key struct {
	Subject   Subject
	Operation Operation
}

// Candidate is one plausible wrong answer a known misconception produces,
// together with the misconception tag and a remediation hint for the
// response generator.
type Candidate struct {
	Pattern string
	Value   float64
	Hint    string
}

// DetectorFunc generates the candidate wrong answers for the two operands
// of an arithmetic problem. Implementations must not fail: when no
// candidates apply (e.g. division by zero) they return an empty slice.
type DetectorFunc func(a, b float64) []Candidate

// ErrNoDetector reports that no detector is registered for a key, or that
// the operator could not be extracted from the problem text. Non-fatal:
// classification proceeds without error-pattern enrichment.
var ErrNoDetector = errors.New("no error-pattern detector")
