// Package drawstore persists validated draw records. it is the
// downstream collaborator of the acquisition engine: records go in
// keyed by draw date, the prediction tooling reads them back out.
package drawstore

import (
	"context"
	"database/sql"
	"time"
	"euromillions-backend/lib/draws"
	"euromillions-backend/lib/timezone"
	"euromillions-backend/services/drawstore/db"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("services/drawstore")

type Service struct {
	db  *sql.DB
	qry *db.Queries
}

func NewService(database *sql.DB) Service {
	return Service{
		db:  database,
		qry: db.New(database),
	}
}

func toRow(record draws.Record, scrapedAt time.Time) db.Draw {
	return db.Draw{
		DrawDate:  record.DateString(),
		N1:        int64(record.Main[0]),
		N2:        int64(record.Main[1]),
		N3:        int64(record.Main[2]),
		N4:        int64(record.Main[3]),
		N5:        int64(record.Main[4]),
		S1:        int64(record.Stars[0]),
		S2:        int64(record.Stars[1]),
		Jackpot:   record.Jackpot,
		Source:    record.Source,
		ScrapedAt: scrapedAt.Unix(),
	}
}

func toRecord(row db.Draw) (draws.Record, error) {
	date, err := draws.ParseDate(row.DrawDate)
	if err != nil {
		return draws.Record{}, err
	}
	return draws.Record{
		DrawDate: date,
		Main: [draws.MainCount]int{
			int(row.N1), int(row.N2), int(row.N3), int(row.N4), int(row.N5),
		},
		Stars:   [draws.StarCount]int{int(row.S1), int(row.S2)},
		Jackpot: row.Jackpot,
		Source:  row.Source,
	}, nil
}

// Push upserts a batch of records in one transaction. re-pushing the
// same draw date overwrites, which lets a later scrape from a more
// trusted source correct earlier data.
func (s Service) Push(ctx context.Context, records []draws.Record) error {
	ctx, span := tracer.Start(ctx, "Push")
	defer span.End()
	span.SetAttributes(attribute.Int("records", len(records)))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	defer tx.Rollback()
	txqry := s.qry.WithTx(tx)

	now := timezone.Now()
	for _, record := range records {
		err := txqry.UpsertDraw(ctx, toRow(record, now))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return err
		}
	}

	err = tx.Commit()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}

// Latest returns up to `limit` stored draws, newest first.
func (s Service) Latest(ctx context.Context, limit int) ([]draws.Record, error) {
	ctx, span := tracer.Start(ctx, "Latest")
	defer span.End()

	rows, err := s.qry.ListDraws(ctx, int64(limit))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	out := make([]draws.Record, 0, len(rows))
	for _, row := range rows {
		record, err := toRecord(row)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
		out = append(out, record)
	}
	return out, nil
}

// LatestDrawDate reports the newest stored draw date, with ok=false
// on an empty store.
func (s Service) LatestDrawDate(ctx context.Context) (time.Time, bool, error) {
	ctx, span := tracer.Start(ctx, "LatestDrawDate")
	defer span.End()

	raw, err := s.qry.LatestDrawDate(ctx)
	if err == sql.ErrNoRows {
		return time.Time{}, false, nil
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return time.Time{}, false, err
	}

	date, err := draws.ParseDate(raw)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return time.Time{}, false, err
	}
	return date, true, nil
}

type Stats struct {
	Total    int64
	Oldest   time.Time
	Newest   time.Time
	BySource map[string]int64
}

func (s Service) Stats(ctx context.Context) (Stats, error) {
	ctx, span := tracer.Start(ctx, "Stats")
	defer span.End()

	total, err := s.qry.CountDraws(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Stats{}, err
	}
	if total == 0 {
		return Stats{BySource: map[string]int64{}}, nil
	}

	dateRange, err := s.qry.GetDateRange(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Stats{}, err
	}
	oldest, err := draws.ParseDate(dateRange.Oldest)
	if err != nil {
		return Stats{}, err
	}
	newest, err := draws.ParseDate(dateRange.Newest)
	if err != nil {
		return Stats{}, err
	}

	bySource, err := s.qry.CountBySource(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Stats{}, err
	}
	counts := make(map[string]int64, len(bySource))
	for _, row := range bySource {
		counts[row.Source] = row.Count
	}

	return Stats{
		Total:    total,
		Oldest:   oldest,
		Newest:   newest,
		BySource: counts,
	}, nil
}
