package commands

import (
	"os"
	"time"
	"euromillions-backend/lib/serviceutil"
	"euromillions-backend/lib/sqliteutil"
	"euromillions-backend/services/drawstore"
	"euromillions-backend/services/drawstore/db"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var statsDb *string

func init() {
	statsDb = statsCmd.Flags().String("db", "draws.db", "The database to read draws from.")
	rootCmd.AddCommand(statsCmd)
}

var statsCmd = &cobra.Command{
	Use:   "stats [--db <path/to/draws.db>]",
	Short: "Summarizes the local draw database.",
	Run: func(cmd *cobra.Command, args []string) {
		database, err := sqliteutil.OpenDB(db.Schema, *statsDb)
		if err != nil {
			serviceutil.Fatal("failed to open db", err)
		}
		defer database.Close()
		store := drawstore.NewService(database)

		stats, err := store.Stats(cmd.Context())
		if err != nil {
			serviceutil.Fatal("failed to read stats", err)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendRow(table.Row{"total draws", stats.Total})
		if stats.Total > 0 {
			t.AppendRow(table.Row{"oldest", stats.Oldest.Format(time.DateOnly)})
			t.AppendRow(table.Row{"newest", stats.Newest.Format(time.DateOnly)})
			for source, count := range stats.BySource {
				t.AppendRow(table.Row{"from " + source, count})
			}
		}
		t.Render()
	},
}
