package errpattern

import "math"

// Built-in detectors for math_arithmetic. Each returns the results of the
// documented misconceptions for its operation; the worked examples in the
// comments use -3 and 5.

// detectAddition covers the common addition misconceptions.
func detectAddition(a, b float64) []Candidate {
	return []Candidate{
		{
			// Forgot the negatives: |-3| + |5| = 8.
			Pattern: "sign_error",
			Value:   math.Abs(a) + math.Abs(b),
			Hint:    "Check the sign (+ or -) of each number before adding",
		},
		{
			// Subtracted instead: -3 - 5 = -8.
			Pattern: "addition_as_subtraction",
			Value:   a - b,
			Hint:    "Check the operation sign - is it + or -?",
		},
		{
			// Absolute value of the difference: |-3 - 5| = 8.
			Pattern: "absolute_difference",
			Value:   math.Abs(a - b),
			Hint:    "Keep track of signs while combining the numbers",
		},
		{
			// Flipped the sign of the correct sum: -(-3 + 5) = -2.
			Pattern: "result_sign_flip",
			Value:   -(a + b),
			Hint:    "Check the sign (+ or -) of your answer",
		},
	}
}

// detectSubtraction covers the common subtraction misconceptions.
func detectSubtraction(a, b float64) []Candidate {
	return []Candidate{
		{
			// Added instead: -3 + 5 = 2.
			Pattern: "subtraction_as_addition",
			Value:   a + b,
			Hint:    "Check the operation sign - is it - or +?",
		},
		{
			// Added the absolute values: |-3| + |5| = 8.
			Pattern: "sign_error",
			Value:   math.Abs(a) + math.Abs(b),
			Hint:    "Check the sign (+ or -) of each number before subtracting",
		},
		{
			// Reversed the order: 5 - (-3) = 8.
			Pattern: "reversed_operands",
			Value:   b - a,
			Hint:    "Which number are you subtracting from which?",
		},
		{
			// Absolute value of the difference: |-3 - 5| = 8.
			Pattern: "absolute_difference",
			Value:   math.Abs(a - b),
			Hint:    "Keep track of signs while subtracting",
		},
	}
}

// detectMultiplication covers the common multiplication misconceptions.
func detectMultiplication(a, b float64) []Candidate {
	return []Candidate{
		{
			// Added instead: -3 + 5 = 2.
			Pattern: "multiplication_as_addition",
			Value:   a + b,
			Hint:    "Check the operation sign - is it × or +?",
		},
		{
			// Dropped the negative sign: |-3 × 5| = 15.
			Pattern: "sign_error",
			Value:   math.Abs(a * b),
			Hint:    "A negative times a positive is negative",
		},
		{
			// Flipped the sign: -(-3 × 5) = 15.
			Pattern: "result_sign_flip",
			Value:   -(a * b),
			Hint:    "Check the sign rules for multiplication",
		},
	}
}

// detectDivision covers the common division misconceptions.
// A zero divisor produces no candidates: there is no meaningful wrong
// answer to predict for an undefined quotient.
func detectDivision(a, b float64) []Candidate {
	if b == 0 {
		return []Candidate{}
	}
	candidates := []Candidate{
		{
			// Multiplied instead: -3 × 5 = -15.
			Pattern: "division_as_multiplication",
			Value:   a * b,
			Hint:    "Check the operation sign - is it ÷ or ×?",
		},
	}
	if a != 0 {
		candidates = append(candidates, Candidate{
			// Inverted the quotient: 5 ÷ -3.
			Pattern: "inverted_quotient",
			Value:   b / a,
			Hint:    "Which number is being divided?",
		})
	}
	candidates = append(candidates,
		Candidate{
			// Dropped the sign: |-3 ÷ 5| = 0.6.
			Pattern: "sign_error",
			Value:   math.Abs(a / b),
			Hint:    "A negative divided by a positive is negative",
		},
		Candidate{
			// Flipped the sign: -(-3 ÷ 5) = 0.6.
			Pattern: "result_sign_flip",
			Value:   -(a / b),
			Hint:    "Check the sign rules for division",
		},
	)
	return candidates
}
