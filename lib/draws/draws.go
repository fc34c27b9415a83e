// Package draws holds the EuroMillions draw value types and the
// validation that gates candidates scraped from external sources.
package draws

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
	"euromillions-backend/lib/textutil"
)

const (
	MainCount = 5
	MainMin   = 1
	MainMax   = 50
	StarCount = 2
	StarMin   = 1
	StarMax   = 12
)

// Record is one validated lottery draw. it is immutable once
// produced by Validate and safe to hand off for persistence.
//
// two records describe the same real-world draw iff their DrawDate
// is equal, the reporting source is provenance only.
type Record struct {
	// calendar date of the draw, always midnight UTC
	DrawDate time.Time
	// ascending
	Main [MainCount]int
	// ascending
	Stars [StarCount]int
	// 0 when the source doesn't report one
	Jackpot float64
	Source  string
}

func (r Record) DateString() string {
	return r.DrawDate.Format(time.DateOnly)
}

func (r Record) String() string {
	return fmt.Sprintf("%s %v|%v (%s)", r.DateString(), r.Main, r.Stars, r.Source)
}

// Candidate is the unvalidated shape per-source parsers produce.
// the date stays textual because every site formats it differently.
type Candidate struct {
	RawDate string
	Main    []int
	Stars   []int
	Jackpot float64
}

// ordered list of accepted date formats, first success wins
var dateFormats = []string{
	"2006-01-02",
	"02-01-2006",
	"01-02-2006",
	"2006/01/02",
	"02/01/2006",
	"01/02/2006",
	"2 January 2006",
	"2 Jan 2006",
	"January 2 2006",
	"Jan 2 2006",
	"Monday 2 January 2006",
}

var isoDateRegex = regexp.MustCompile(`(\d{4})-(\d{1,2})-(\d{1,2})`)

// ParseDate normalizes a scraped date string to midnight UTC.
// it tries the accepted formats in order, then falls back to pulling
// an embedded YYYY-MM-DD out of the noise.
func ParseDate(s string) (time.Time, error) {
	cleaned := textutil.CleanDateText(s)

	for _, format := range dateFormats {
		parsed, err := time.Parse(format, cleaned)
		if err != nil {
			continue
		}
		return time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC), nil
	}

	groups := isoDateRegex.FindStringSubmatch(cleaned)
	if groups != nil {
		year, _ := strconv.Atoi(groups[1])
		month, _ := strconv.Atoi(groups[2])
		day, _ := strconv.Atoi(groups[3])
		parsed := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
		if parsed.Year() == year && int(parsed.Month()) == month && parsed.Day() == day {
			return parsed, nil
		}
	}

	return time.Time{}, fmt.Errorf("no accepted format matches %q", s)
}
