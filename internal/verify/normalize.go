package verify

import (
	"regexp"
	"strings"
)

// numberWords maps a fixed vocabulary of spelled-out numbers and sign words
// to their digit or sign form. Kept deliberately small: the verifier handles
// "negative three" and "3", not free-form prose.
var numberWords = []struct {
	word  string
	digit string
}{
	{"zero", "0"},
	{"one", "1"},
	{"two", "2"},
	{"three", "3"},
	{"four", "4"},
	{"five", "5"},
	{"six", "6"},
	{"seven", "7"},
	{"eight", "8"},
	{"nine", "9"},
	{"ten", "10"},
	{"negative", "-"},
	{"minus", "-"},
}

var wordRes = buildWordRes()

func buildWordRes() map[string]*regexp.Regexp {
	res := make(map[string]*regexp.Regexp, len(numberWords))
	for _, nw := range numberWords {
		res[nw.word] = regexp.MustCompile(`\b` + nw.word + `\b`)
	}
	return res
}

// normalize prepares raw student input for expression parsing:
// trim, lowercase, substitute whole number words, then strip whitespace.
// "ten" must not rewrite the "ten" in "often", hence whole-word matching.
func normalize(input string) string {
	cleaned := strings.ToLower(strings.TrimSpace(input))
	for _, nw := range numberWords {
		cleaned = wordRes[nw.word].ReplaceAllString(cleaned, nw.digit)
	}
	return strings.Join(strings.Fields(cleaned), "")
}
