package draws

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	jan5 := time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		in     string
		expect time.Time
		ok     bool
	}{
		{"2024-01-05", jan5, true},
		{"05-01-2024", jan5, true},
		{"2024/01/05", jan5, true},
		{"05/01/2024", jan5, true},
		{"05 Jan 2024", jan5, true},
		{"5 January 2024", jan5, true},
		{"05 Jan, 2024", jan5, true},
		{"Friday 5 January 2024", jan5, true},
		{"Draw of 2024-1-5", jan5, true},
		{"tuesday", time.Time{}, false},
		{"", time.Time{}, false},
	}

	for _, test := range cases {
		parsed, err := ParseDate(test.in)
		if !test.ok {
			require.Error(t, err, test.in)
			continue
		}
		require.NoError(t, err, test.in)
		require.Equal(t, test.expect, parsed, test.in)
	}
}

func TestParseDateSameDayAcrossFormats(t *testing.T) {
	// two sources reporting the same draw in different formats must
	// normalize to the same calendar date for dedup to work
	a, err := ParseDate("05 Jan 2024")
	require.NoError(t, err)
	b, err := ParseDate("2024-01-05")
	require.NoError(t, err)
	require.Equal(t, a, b)
}
