package scaffold

import (
	"fmt"
	"regexp"
	"strings"
)

// Problem shapes select the synthesis hint framing.
var (
	fractionShapeRe   = regexp.MustCompile(`\d+\s*/\s*\d+`)
	numberLineShapeRe = regexp.MustCompile(`-?\d+\s*[+\-]\s*-?\d+`)
)

// synthesisHint builds the templated recombining question for the
// collected sub-answers, framed by the problem's shape. Used for
// deterministic synthesize decisions (loop detection); reasoning-driven
// decisions carry the service's own hint.
func synthesisHint(problemText string, subAnswers []string) string {
	first, second := "", ""
	if len(subAnswers) > 0 {
		first = subAnswers[0]
	}
	if len(subAnswers) > 1 {
		second = subAnswers[1]
	}

	switch {
	case fractionShapeRe.MatchString(problemText):
		if second == "" {
			return fmt.Sprintf("You found %s. What fraction does that give you?", first)
		}
		return fmt.Sprintf("You have %s and %s with the same denominator. What's the numerator of the sum?", first, second)
	case numberLineShapeRe.MatchString(problemText):
		if second == "" {
			return fmt.Sprintf("You moved %s steps. Where are you on the number line?", first)
		}
		return fmt.Sprintf("You moved %s steps, then %s more. Where do you end up?", first, second)
	default:
		if second == "" {
			return fmt.Sprintf("You found %s. What does that make the total?", first)
		}
		return fmt.Sprintf("You found %s and then %s. Put them together - what's the total?", first, second)
	}
}

// normalizeAnswer canonicalizes a sub-answer for duplicate comparison:
// case and surrounding whitespace are not meaningful differences.
func normalizeAnswer(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// containsAnswer reports whether answer already appears in answers,
// compared in normalized form.
func containsAnswer(answers []string, answer string) bool {
	norm := normalizeAnswer(answer)
	for _, a := range answers {
		if normalizeAnswer(a) == norm {
			return true
		}
	}
	return false
}
