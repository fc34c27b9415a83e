package commands

import (
	"log/slog"
	"os"
	"time"
	"euromillions-backend/lib/draws"
	"euromillions-backend/lib/restyutil"
	"euromillions-backend/lib/scrapers/euromillionscom"
	"euromillions-backend/lib/scrapers/fdj"
	"euromillions-backend/lib/scrapers/uknational"
	"euromillions-backend/lib/serviceutil"
	"euromillions-backend/lib/sqliteutil"
	"euromillions-backend/lib/telemetry"
	"euromillions-backend/services/drawstore"
	"euromillions-backend/services/drawstore/db"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var scrapeDb *string
var scrapeLimit *int
var scrapeOffset *int
var scrapeDebugHttp *bool

func init() {
	scrapeDb = scrapeCmd.Flags().String("db", "draws.db", "The database to write acquired draws to.")
	scrapeLimit = scrapeCmd.Flags().Int("limit", 20, "How many draws to acquire.")
	scrapeOffset = scrapeCmd.Flags().Int("offset", 0, "How many of the most recent draws to skip.")
	scrapeDebugHttp = scrapeCmd.Flags().Bool("debug-http", false, "Dump every HTTP exchange to .dev/resty.")
	rootCmd.AddCommand(scrapeCmd)
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape [--db <path/to/draws.db>] [--limit n] [--offset n]",
	Short: "Acquires recent draws from the configured sources and stores them.",
	Run: func(cmd *cobra.Command, args []string) {
		if *scrapeDebugHttp {
			telemetry.InitSlog(true)
			out := restyutil.NewFilesystemOutput(".dev/resty")
			uknational.SetRestyInstrumentOutput(out)
			euromillionscom.SetRestyInstrumentOutput(out)
			fdj.SetRestyInstrumentOutput(out)
		}

		config, err := readConfig()
		if err != nil {
			serviceutil.Fatal("failed to read config", err)
		}
		engine := buildEngine(config)

		database, err := sqliteutil.OpenDB(db.Schema, *scrapeDb)
		if err != nil {
			serviceutil.Fatal("failed to open db", err)
		}
		defer database.Close()
		store := drawstore.NewService(database)

		ctx := cmd.Context()

		t1 := time.Now()
		result, err := engine.Fetch(ctx, *scrapeLimit, *scrapeOffset)
		if err != nil {
			serviceutil.Fatal("acquisition failed", err)
		}
		t2 := time.Now()

		err = store.Push(ctx, result.Records)
		if err != nil {
			serviceutil.Fatal("failed to store draws", err)
		}

		if result.Partial {
			slog.Warn(
				"sources exhausted before reaching the requested amount",
				"got", len(result.Records),
				"requested", *scrapeLimit,
			)
		}
		for id, sourceErr := range result.SourceErrors {
			slog.Warn("source failed", "source", id, "err", sourceErr)
		}
		slog.Info(
			"scrape finished",
			"records", len(result.Records),
			"rejected", result.Rejected,
			"seconds", t2.Sub(t1).Seconds(),
		)

		renderRecords(result.Records)
	},
}

func renderRecords(records []draws.Record) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Date", "Numbers", "Stars", "Jackpot", "Source"})
	for _, r := range records {
		jackpot := ""
		if r.Jackpot > 0 {
			jackpot = humanAmount(r.Jackpot)
		}
		t.AppendRow(table.Row{r.DateString(), r.Main, r.Stars, jackpot, r.Source})
	}
	t.Render()
}
