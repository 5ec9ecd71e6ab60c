package errpattern

import (
	"regexp"
	"strconv"
)

// arithShapeRe matches a signed-number / operator / signed-number shape in
// problem text, e.g. "What is -3 + 5?". Division accepts both / and ÷;
// multiplication both * and ×.
var arithShapeRe = regexp.MustCompile(`(-?\d+(?:\.\d+)?)\s*([+\-*/×÷])\s*(-?\d+(?:\.\d+)?)`)

// operatorMap translates the matched operator symbol to an Operation.
var operatorMap = map[string]Operation{
	"+": OpAddition,
	"-": OpSubtraction,
	"*": OpMultiplication,
	"×": OpMultiplication,
	"/": OpDivision,
	"÷": OpDivision,
}

// ExtractArithmetic pulls the first a-op-b expression out of problem text.
// ok is false when the text has no such shape (word problems, comparisons).
func ExtractArithmetic(problemText string) (a, b float64, op Operation, ok bool) {
	m := arithShapeRe.FindStringSubmatch(problemText)
	if m == nil {
		return 0, 0, "", false
	}
	a, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, 0, "", false
	}
	b, err = strconv.ParseFloat(m[3], 64)
	if err != nil {
		return 0, 0, "", false
	}
	op, ok = operatorMap[m[2]]
	if !ok {
		return 0, 0, "", false
	}
	return a, b, op, true
}

// KeyForProblem resolves the detector key for a subject's problem text.
func KeyForProblem(subject Subject, problemText string) (Key, bool) {
	_, _, op, ok := ExtractArithmetic(problemText)
	if !ok {
		return Key{}, false
	}
	return Key{subject, op}, true
}
