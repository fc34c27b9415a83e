package draws

import (
	"fmt"
	"slices"
)

var (
	ErrUnparseableDate    = fmt.Errorf("unparseable draw date")
	ErrInvalidMainNumbers = fmt.Errorf("invalid main numbers")
	ErrInvalidStarNumbers = fmt.Errorf("invalid star numbers")
)

func checkPool(nums []int, count, lo, hi int) ([]int, error) {
	if len(nums) != count {
		return nil, fmt.Errorf("expected %d numbers, got %d", count, len(nums))
	}
	sorted := slices.Clone(nums)
	slices.Sort(sorted)
	for i, n := range sorted {
		if n < lo || n > hi {
			return nil, fmt.Errorf("%d is outside [%d, %d]", n, lo, hi)
		}
		if i > 0 && sorted[i-1] == n {
			return nil, fmt.Errorf("%d appears more than once", n)
		}
	}
	return sorted, nil
}

// Validate gates a scraped candidate before it may enter a result set.
// checks run in order and stop at the first failure: date, main pool,
// star pool. the only normalization applied to accepted candidates is
// the date representation and ascending number order.
func Validate(c Candidate, source string) (Record, error) {
	date, err := ParseDate(c.RawDate)
	if err != nil {
		return Record{}, fmt.Errorf("%w: %w", ErrUnparseableDate, err)
	}

	main, err := checkPool(c.Main, MainCount, MainMin, MainMax)
	if err != nil {
		return Record{}, fmt.Errorf("%w: %w", ErrInvalidMainNumbers, err)
	}

	stars, err := checkPool(c.Stars, StarCount, StarMin, StarMax)
	if err != nil {
		return Record{}, fmt.Errorf("%w: %w", ErrInvalidStarNumbers, err)
	}

	record := Record{
		DrawDate: date,
		Jackpot:  c.Jackpot,
		Source:   source,
	}
	copy(record.Main[:], main)
	copy(record.Stars[:], stars)
	return record, nil
}
