package commands

import (
	"fmt"
	"euromillions-backend/lib/serviceutil"
	"euromillions-backend/lib/sqliteutil"
	"euromillions-backend/services/drawstore"
	"euromillions-backend/services/drawstore/db"

	"github.com/spf13/cobra"
)

var latestDb *string
var latestLimit *int

func init() {
	latestDb = latestCmd.Flags().String("db", "draws.db", "The database to read draws from.")
	latestLimit = latestCmd.Flags().Int("limit", 20, "How many draws to show.")
	rootCmd.AddCommand(latestCmd)
}

var latestCmd = &cobra.Command{
	Use:   "latest [--db <path/to/draws.db>] [--limit n]",
	Short: "Shows the most recent draws in the local database.",
	Run: func(cmd *cobra.Command, args []string) {
		database, err := sqliteutil.OpenDB(db.Schema, *latestDb)
		if err != nil {
			serviceutil.Fatal("failed to open db", err)
		}
		defer database.Close()
		store := drawstore.NewService(database)

		records, err := store.Latest(cmd.Context(), *latestLimit)
		if err != nil {
			serviceutil.Fatal("failed to read draws", err)
		}
		renderRecords(records)
	},
}

func humanAmount(amount float64) string {
	switch {
	case amount >= 1_000_000:
		return fmt.Sprintf("€%.0fM", amount/1_000_000)
	case amount >= 1_000:
		return fmt.Sprintf("€%.0fk", amount/1_000)
	default:
		return fmt.Sprintf("€%.0f", amount)
	}
}
