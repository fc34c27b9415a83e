package drawstore

import (
	"context"
	"testing"
	"time"
	"euromillions-backend/lib/draws"
	"euromillions-backend/lib/testutil"
	"euromillions-backend/services/drawstore/db"

	"github.com/stretchr/testify/require"
)

func record(date string, main [5]int, stars [2]int, source string) draws.Record {
	parsed, err := draws.ParseDate(date)
	if err != nil {
		panic(err)
	}
	return draws.Record{
		DrawDate: parsed,
		Main:     main,
		Stars:    stars,
		Source:   source,
	}
}

func TestService(t *testing.T) {
	setup, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name:     "services/drawstore",
		DbSchema: db.Schema,
	})
	defer cleanup()
	service := NewService(setup.DB)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	{
		latest, err := service.Latest(ctx, 10)
		require.NoError(t, err)
		require.Len(t, latest, 0)

		_, ok, err := service.LatestDrawDate(ctx)
		require.NoError(t, err)
		require.False(t, ok)

		stats, err := service.Stats(ctx)
		require.NoError(t, err)
		require.EqualValues(t, 0, stats.Total)
	}
	{
		err := service.Push(ctx, []draws.Record{
			record("2024-01-05", [5]int{7, 13, 23, 32, 44}, [2]int{3, 9}, "uk_national"),
			record("2024-01-02", [5]int{1, 5, 12, 29, 47}, [2]int{2, 11}, "euro_millions_com"),
		})
		require.NoError(t, err)

		latest, err := service.Latest(ctx, 10)
		require.NoError(t, err)
		require.Len(t, latest, 2)
		require.Equal(t, "2024-01-05", latest[0].DateString())
		require.Equal(t, [5]int{7, 13, 23, 32, 44}, latest[0].Main)
		require.Equal(t, "2024-01-02", latest[1].DateString())

		date, ok, err := service.LatestDrawDate(ctx)
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, "2024-01-05", date.Format(time.DateOnly))
	}
	{
		// re-pushing the same date overwrites instead of duplicating
		err := service.Push(ctx, []draws.Record{
			record("2024-01-05", [5]int{1, 2, 3, 4, 5}, [2]int{1, 2}, "fdj_france"),
		})
		require.NoError(t, err)

		latest, err := service.Latest(ctx, 10)
		require.NoError(t, err)
		require.Len(t, latest, 2)
		require.Equal(t, [5]int{1, 2, 3, 4, 5}, latest[0].Main)
		require.Equal(t, "fdj_france", latest[0].Source)
	}
	{
		stats, err := service.Stats(ctx)
		require.NoError(t, err)
		require.EqualValues(t, 2, stats.Total)
		require.Equal(t, "2024-01-02", stats.Oldest.Format(time.DateOnly))
		require.Equal(t, "2024-01-05", stats.Newest.Format(time.DateOnly))
		require.EqualValues(t, 1, stats.BySource["fdj_france"])
		require.EqualValues(t, 1, stats.BySource["euro_millions_com"])
	}
}
