package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLastDrawDate(t *testing.T) {
	cases := []struct {
		now    time.Time
		expect time.Time
	}{
		{
			// a friday
			now:    time.Date(2024, time.January, 5, 21, 0, 0, 0, Location),
			expect: time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC),
		},
		{
			// a sunday, previous draw was friday the 5th
			now:    time.Date(2024, time.January, 7, 10, 0, 0, 0, Location),
			expect: time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC),
		},
		{
			// a wednesday, previous draw was tuesday the 9th
			now:    time.Date(2024, time.January, 10, 10, 0, 0, 0, Location),
			expect: time.Date(2024, time.January, 9, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, test := range cases {
		require.Equal(t, test.expect, LastDrawDate(test.now))
	}
}

func TestIsDrawDay(t *testing.T) {
	require.True(t, IsDrawDay(time.Date(2024, time.January, 9, 0, 0, 0, 0, Location)))
	require.True(t, IsDrawDay(time.Date(2024, time.January, 12, 0, 0, 0, 0, Location)))
	require.False(t, IsDrawDay(time.Date(2024, time.January, 10, 0, 0, 0, 0, Location)))
}
