// Package verify evaluates free-text student answers against an expected
// answer expression and classifies the numeric outcome.
//
// Both sides are parsed as arithmetic expressions over exact rationals
// (integers, decimals, fractions, + − × ÷, parentheses) and compared as
// floats. Student input additionally goes through light normalization so
// "negative three" verifies the same as "-3".
package verify

import (
	"fmt"
	"math"
	"time"
)

// Verify checks studentInput against correctAnswer and returns the verdict.
// Pure apart from the audit timestamp: the same inputs always produce the
// same outcome.
func Verify(studentInput, correctAnswer string) Result {
	now := time.Now()

	student, err := evaluate(normalize(studentInput))
	if err != nil {
		return unparseable(studentInput, fmt.Sprintf("student input: %v", err), now)
	}

	// The expected answer comes from the problem source, not the student,
	// so it gets no word normalization.
	expected, err := evaluate(correctAnswer)
	if err != nil {
		return unparseable(studentInput, fmt.Sprintf("correct answer: %v", err), now)
	}

	studentVal := student.float()
	expectedVal := expected.float()
	diff := math.Abs(studentVal - expectedVal)

	outcome := OutcomeWrong
	switch {
	case diff < Tolerance:
		outcome = OutcomeCorrect
	case diff < CloseFactor*math.Abs(expectedVal):
		outcome = OutcomeClose
	}

	return Result{
		Outcome:       outcome,
		StudentValue:  studentVal,
		ExpectedValue: expectedVal,
		Diff:          diff,
		RawInput:      studentInput,
		Timestamp:     now,
	}
}

func unparseable(raw, diagnostic string, now time.Time) Result {
	return Result{
		Outcome:    OutcomeUnparseable,
		RawInput:   raw,
		Diagnostic: diagnostic,
		Timestamp:  now,
	}
}
