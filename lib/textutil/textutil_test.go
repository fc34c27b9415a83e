package textutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCleanDateText(t *testing.T) {
	cases := []struct {
		in     string
		expect string
	}{
		{"Friday 5th January 2024!", "Friday 5 January 2024"},
		{"  05   Jan,  2024 ", "05 Jan 2024"},
		{"2024-01-05", "2024-01-05"},
	}
	for _, test := range cases {
		require.Equal(t, test.expect, CleanDateText(test.in))
	}
}

func TestParseCurrencyAmount(t *testing.T) {
	cases := []struct {
		in     string
		expect float64
		ok     bool
	}{
		{"€54 Million", 54_000_000, true},
		{"£120,000,000", 120_000_000, true},
		{"17000000", 17_000_000, true},
		{"230 thousand", 230_000, true},
		{"rollover", 0, false},
	}
	for _, test := range cases {
		amount, ok := ParseCurrencyAmount(test.in)
		require.Equal(t, test.ok, ok, test.in)
		require.Equal(t, test.expect, amount, test.in)
	}
}
