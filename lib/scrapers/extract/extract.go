// Package extract holds the parsing heuristics shared between the
// draw sources: lottery sites restructure their markup constantly, so
// every strategy here is a list of fallbacks tried in order.
package extract

import (
	"regexp"
	"strconv"
	"strings"
	"euromillions-backend/lib/draws"
	"euromillions-backend/lib/htmlutil"
	"euromillions-backend/lib/textutil"

	"github.com/PuerkitoBio/goquery"
)

var numberSelectors = []string{
	".ball-number, .main-number, .numero",
	".result-ball, .winning-number",
	".ball, .number, .num",
	"[class*='ball'], [class*='number']",
	".draw-results .number",
}

var starSelectors = []string{
	".star-number, .lucky-star, .etoile",
	".star, .lucky",
	"[class*='star'], [class*='lucky']",
	".draw-results .star",
}

var dateSelectors = []string{
	".draw-date, .date, .when",
	".result-date, .draw-info",
	"[class*='date'], [class*='when']",
	"time, .time",
}

var jackpotSelectors = []string{
	".jackpot, .prize, .gain",
	".jackpot-amount, .prize-amount",
	"[class*='jackpot'], [class*='prize']",
}

var dateAttrs = []string{"datetime", "data-date", "data-draw-date", "data-when"}

func collectBySelectors(container *goquery.Selection, selectors []string, lo, hi, max int) []int {
	for _, selector := range selectors {
		nums := htmlutil.CollectInts(container.Find(selector), lo, hi, max)
		if len(nums) >= max {
			return nums
		}
	}
	return nil
}

func dateFromContainer(container *goquery.Selection) string {
	for _, selector := range dateSelectors {
		var found string
		container.Find(selector).EachWithBreak(func(_ int, elem *goquery.Selection) bool {
			text := strings.TrimSpace(elem.Text())
			if _, err := draws.ParseDate(text); err == nil {
				found = text
				return false
			}
			return true
		})
		if found != "" {
			return found
		}
	}

	var found string
	container.Find("[datetime]").EachWithBreak(func(_ int, elem *goquery.Selection) bool {
		value := elem.AttrOr("datetime", "")
		if _, err := draws.ParseDate(value); err == nil {
			found = value
			return false
		}
		return true
	})
	if found != "" {
		return found
	}

	for _, attr := range dateAttrs {
		value, exists := container.Attr(attr)
		if exists {
			if _, err := draws.ParseDate(value); err == nil {
				return value
			}
		}
	}
	return ""
}

func jackpotFromContainer(container *goquery.Selection) float64 {
	for _, selector := range jackpotSelectors {
		var found float64
		container.Find(selector).EachWithBreak(func(_ int, elem *goquery.Selection) bool {
			amount, ok := textutil.ParseCurrencyAmount(strings.TrimSpace(elem.Text()))
			if ok {
				found = amount
				return false
			}
			return true
		})
		if found != 0 {
			return found
		}
	}
	return 0
}

// DrawFromContainer pulls one draw candidate out of a result
// container element. returns false when the container doesn't hold a
// complete set of balls.
func DrawFromContainer(container *goquery.Selection) (draws.Candidate, bool) {
	main := collectBySelectors(container, numberSelectors, draws.MainMin, draws.MainMax, draws.MainCount)
	if len(main) < draws.MainCount {
		return draws.Candidate{}, false
	}
	stars := collectBySelectors(container, starSelectors, draws.StarMin, draws.StarMax, draws.StarCount)
	if len(stars) < draws.StarCount {
		return draws.Candidate{}, false
	}

	return draws.Candidate{
		RawDate: dateFromContainer(container),
		Main:    main,
		Stars:   stars,
		Jackpot: jackpotFromContainer(container),
	}, true
}

var textPatterns = []*regexp.Regexp{
	// 2024-01-05 ... 12-25-33-41-48 ... 2-9
	regexp.MustCompile(`(\d{4}-\d{2}-\d{2}).*?(\d{1,2})\s*[-,]\s*(\d{1,2})\s*[-,]\s*(\d{1,2})\s*[-,]\s*(\d{1,2})\s*[-,]\s*(\d{1,2}).*?(\d{1,2})\s*[-,]\s*(\d{1,2})`),
	// Numbers: 1, 5, 12, 23, 44 Stars: 3, 8
	regexp.MustCompile(`(?i)numbers?\s*:?\s*(\d{1,2})\s*,\s*(\d{1,2})\s*,\s*(\d{1,2})\s*,\s*(\d{1,2})\s*,\s*(\d{1,2}).*?stars?\s*:?\s*(\d{1,2})\s*,\s*(\d{1,2})`),
	// Winning numbers 5 12 23 44 49 Lucky Stars 3 8
	regexp.MustCompile(`(?i)winning.*?(\d{1,2})\s+(\d{1,2})\s+(\d{1,2})\s+(\d{1,2})\s+(\d{1,2}).*?stars?\s+(\d{1,2})\s+(\d{1,2})`),
}

// DrawsFromText is the last-ditch strategy: regex over the page's
// whole text. `fallbackDate` is used for patterns that don't capture
// a date of their own (typically a "latest result" page).
func DrawsFromText(text string, fallbackDate string, limit int) []draws.Candidate {
	var out []draws.Candidate

	for _, pattern := range textPatterns {
		for _, groups := range pattern.FindAllStringSubmatch(text, limit) {
			date := fallbackDate
			numberGroups := groups[1:]
			if len(groups) >= 9 {
				date = groups[1]
				numberGroups = groups[2:]
			}

			var nums []int
			for _, g := range numberGroups {
				n, err := strconv.Atoi(g)
				if err != nil {
					break
				}
				nums = append(nums, n)
			}
			if len(nums) != draws.MainCount+draws.StarCount {
				continue
			}

			out = append(out, draws.Candidate{
				RawDate: date,
				Main:    nums[:draws.MainCount],
				Stars:   nums[draws.MainCount:],
			})
			if len(out) >= limit {
				return out
			}
		}
	}
	return out
}

// DrawsFromTables handles result archives rendered as plain tables:
// any row with at least 7 numeric cells is treated as 5 balls + 2
// stars, with the draw date expected in the first cell.
func DrawsFromTables(doc *goquery.Document, limit int) []draws.Candidate {
	var out []draws.Candidate

	doc.Find("table tr").EachWithBreak(func(_ int, row *goquery.Selection) bool {
		nums := htmlutil.NumericCells(row)
		if len(nums) < draws.MainCount+draws.StarCount {
			return true
		}

		out = append(out, draws.Candidate{
			RawDate: strings.TrimSpace(row.Find("td,th").First().Text()),
			Main:    nums[:draws.MainCount],
			Stars:   nums[draws.MainCount : draws.MainCount+draws.StarCount],
		})
		return len(out) < limit
	})

	return out
}
