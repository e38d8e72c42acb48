// Package astinumwords extracts small integers from recognized speech.
package astinumwords

import (
	"regexp"
	"strconv"
	"strings"
)

// Regexps
var (
	regexpDigits      = regexp.MustCompile(`\d+`)
	regexpShortDigits = regexp.MustCompile(`\d{1,3}`)
	regexpWords       = regexp.MustCompile(`[a-z]+`)
)

const hundred = 100

var words = map[string]int{
	"zero":      0,
	"one":       1,
	"two":       2,
	"three":     3,
	"four":      4,
	"five":      5,
	"six":       6,
	"seven":     7,
	"eight":     8,
	"nine":      9,
	"ten":       10,
	"eleven":    11,
	"twelve":    12,
	"thirteen":  13,
	"fourteen":  14,
	"fifteen":   15,
	"sixteen":   16,
	"seventeen": 17,
	"eighteen":  18,
	"nineteen":  19,
	"twenty":    20,
	"thirty":    30,
	"forty":     40,
	"fifty":     50,
	"sixty":     60,
	"seventy":   70,
	"eighty":    80,
	"ninety":    90,
	"hundred":   hundred,
}

// IsWord returns whether w is a number word
func IsWord(w string) bool {
	_, ok := words[strings.ToLower(w)]
	return ok
}

// ExtractBoundedPercentage extracts an integer in [0, 100] from free text.
// Digits always win over number words. Unknown words flush the number being built
// so "twenty five" is 25 and "twenty the five" is 25 as well.
func ExtractBoundedPercentage(text string) (n int, ok bool) {
	// Digits
	if m := regexpShortDigits.FindString(text); m != "" {
		if n, err := strconv.Atoi(m); err == nil {
			return clamp(n), true
		}
	}

	// Words
	var total, current int
	for _, w := range regexpWords.FindAllString(strings.ToLower(text), -1) {
		// Not a number word
		v, exists := words[w]
		if !exists {
			total += current
			current = 0
			continue
		}
		ok = true

		// Scale
		if v == hundred {
			if current == 0 {
				current = hundred
			} else {
				current *= hundred
			}
			continue
		}
		current += v
	}
	total += current

	// Nothing found
	if !ok {
		return
	}
	n = clamp(total)
	return
}

// ExtractInt returns the first digit run of text, unbounded
func ExtractInt(text string) (n int, ok bool) {
	m := regexpDigits.FindString(text)
	if m == "" {
		return
	}
	var err error
	if n, err = strconv.Atoi(m); err != nil {
		return 0, false
	}
	ok = true
	return
}

func clamp(n int) int {
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}
