package textutil

import (
	"regexp"
	"strconv"
	"strings"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)
var dateNoiseRegex = regexp.MustCompile(`[^\d\-/\w\s]`)
var ordinalRegex = regexp.MustCompile(`(\d)(st|nd|rd|th)\b`)

// strips ordinal suffixes, decorations and repeated whitespace out of
// a scraped date string so it has a chance against time.Parse
func CleanDateText(s string) string {
	s = dateNoiseRegex.ReplaceAllString(s, "")
	s = ordinalRegex.ReplaceAllString(s, "$1")
	s = whitespaceRegex.ReplaceAllString(s, " ")
	return strings.Trim(s, " \t\n")
}

var currencySymbolRegex = regexp.MustCompile(`[€$£,\s]`)
var amountRegex = regexp.MustCompile(`\d+(?:\.\d+)?`)

// parses amounts like "€54 Million", "£120,000,000" or "17000000"
// into a plain float. returns false when no amount is present.
func ParseCurrencyAmount(s string) (float64, bool) {
	lower := strings.ToLower(s)
	cleaned := currencySymbolRegex.ReplaceAllString(s, "")

	match := amountRegex.FindString(cleaned)
	if match == "" {
		return 0, false
	}
	amount, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0, false
	}

	if strings.Contains(lower, "million") {
		amount *= 1_000_000
	} else if strings.Contains(lower, "thousand") {
		amount *= 1_000
	}
	return amount, true
}
