// Package errpattern maps arithmetic problems to the wrong answers known
// misconceptions would produce. The classifier uses a matched candidate to
// enrich its verdict with a misconception tag and remediation hint.
//
// Detectors are registered per (subject, operation) key at startup and the
// registry is read-only afterwards, so new subjects plug in without any
// change to calling code.
package errpattern

import (
	"fmt"
	"math"

	"github.com/abhisek/socra/internal/verify"
)

// Registry holds error detectors keyed by subject and operation.
type Registry struct {
	detectors map[Key]DetectorFunc
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{detectors: make(map[Key]DetectorFunc)}
}

// DefaultRegistry returns a registry with the built-in math arithmetic
// detectors installed.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(Key{SubjectMathArithmetic, OpAddition}, detectAddition)
	r.Register(Key{SubjectMathArithmetic, OpSubtraction}, detectSubtraction)
	r.Register(Key{SubjectMathArithmetic, OpMultiplication}, detectMultiplication)
	r.Register(Key{SubjectMathArithmetic, OpDivision}, detectDivision)
	return r
}

// Register installs a detector for key. Call during startup only; the
// registry is not safe for concurrent mutation.
func (r *Registry) Register(key Key, fn DetectorFunc) {
	r.detectors[key] = fn
}

// Detect runs the detector for key against the operand pair.
// Returns ErrNoDetector when nothing is registered for key.
func (r *Registry) Detect(key Key, a, b float64) ([]Candidate, error) {
	fn, ok := r.detectors[key]
	if !ok {
		return nil, fmt.Errorf("%w for %s/%s", ErrNoDetector, key.Subject, key.Operation)
	}
	return fn(a, b), nil
}

// DetectForProblem extracts the operand pair and operator from problem text
// and runs the matching detector for subject. Returns ErrNoDetector when
// the text does not have a recognizable a-op-b shape.
func (r *Registry) DetectForProblem(subject Subject, problemText string) ([]Candidate, error) {
	a, b, op, ok := ExtractArithmetic(problemText)
	if !ok {
		return nil, fmt.Errorf("%w: no operator in problem text", ErrNoDetector)
	}
	return r.Detect(Key{subject, op}, a, b)
}

// MatchCandidate returns the first candidate whose value matches the
// student's answer within the verification tolerance. At most one pattern
// is advisory per turn; ok is false when nothing matches.
func MatchCandidate(candidates []Candidate, studentValue float64) (Candidate, bool) {
	for _, c := range candidates {
		if math.Abs(c.Value-studentValue) < verify.Tolerance {
			return c, true
		}
	}
	return Candidate{}, false
}

// Values flattens candidates into their numeric results, preserving order.
func Values(candidates []Candidate) []float64 {
	out := make([]float64, len(candidates))
	for i, c := range candidates {
		out[i] = c.Value
	}
	return out
}
