package dialog

import (
	"regexp"
	"strconv"
	"strings"
)

// digitPattern matches a standalone 1-2 digit numeral in an utterance.
var digitPattern = regexp.MustCompile(`\b(\d{1,2})\b`)

// numberWords lists spoken number words in value order so matching is
// deterministic when an utterance contains more than one.
var numberWords = []string{
	"one", "two", "three", "four", "five",
	"six", "seven", "eight", "nine", "ten",
}

// ParseQuantity extracts a quantity from a recognized utterance. It first
// looks for a 1-2 digit numeral, then for one of the literal number words
// one through ten. Returns false when no quantity can be extracted or the
// extracted value is below 1.
func ParseQuantity(text string) (int, bool) {
	text = strings.ToLower(text)

	if m := digitPattern.FindStringSubmatch(text); m != nil {
		qty, err := strconv.Atoi(m[1])
		if err == nil && qty >= 1 {
			return qty, true
		}
		return 0, false
	}

	for i, word := range numberWords {
		if strings.Contains(text, word) {
			return i + 1, true
		}
	}

	return 0, false
}
