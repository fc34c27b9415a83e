package db

import (
	"context"
	"database/sql"
)

type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

type Queries struct {
	db DBTX
}

func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{db: tx}
}

type Draw struct {
	DrawDate  string
	N1        int64
	N2        int64
	N3        int64
	N4        int64
	N5        int64
	S1        int64
	S2        int64
	Jackpot   float64
	Source    string
	ScrapedAt int64
}

const upsertDraw = `
INSERT INTO draws (draw_date, n1, n2, n3, n4, n5, s1, s2, jackpot, source, scraped_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (draw_date) DO UPDATE SET
    n1 = excluded.n1,
    n2 = excluded.n2,
    n3 = excluded.n3,
    n4 = excluded.n4,
    n5 = excluded.n5,
    s1 = excluded.s1,
    s2 = excluded.s2,
    jackpot = excluded.jackpot,
    source = excluded.source,
    scraped_at = excluded.scraped_at
`

func (q *Queries) UpsertDraw(ctx context.Context, arg Draw) error {
	_, err := q.db.ExecContext(ctx, upsertDraw,
		arg.DrawDate,
		arg.N1, arg.N2, arg.N3, arg.N4, arg.N5,
		arg.S1, arg.S2,
		arg.Jackpot,
		arg.Source,
		arg.ScrapedAt,
	)
	return err
}

const getDraw = `
SELECT draw_date, n1, n2, n3, n4, n5, s1, s2, jackpot, source, scraped_at
FROM draws WHERE draw_date = ?
`

func (q *Queries) GetDraw(ctx context.Context, drawDate string) (Draw, error) {
	row := q.db.QueryRowContext(ctx, getDraw, drawDate)
	var d Draw
	err := row.Scan(
		&d.DrawDate,
		&d.N1, &d.N2, &d.N3, &d.N4, &d.N5,
		&d.S1, &d.S2,
		&d.Jackpot,
		&d.Source,
		&d.ScrapedAt,
	)
	return d, err
}

const listDraws = `
SELECT draw_date, n1, n2, n3, n4, n5, s1, s2, jackpot, source, scraped_at
FROM draws ORDER BY draw_date DESC LIMIT ?
`

func (q *Queries) ListDraws(ctx context.Context, limit int64) ([]Draw, error) {
	rows, err := q.db.QueryContext(ctx, listDraws, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Draw
	for rows.Next() {
		var d Draw
		err := rows.Scan(
			&d.DrawDate,
			&d.N1, &d.N2, &d.N3, &d.N4, &d.N5,
			&d.S1, &d.S2,
			&d.Jackpot,
			&d.Source,
			&d.ScrapedAt,
		)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

const latestDrawDate = `
SELECT draw_date FROM draws ORDER BY draw_date DESC LIMIT 1
`

func (q *Queries) LatestDrawDate(ctx context.Context) (string, error) {
	var date string
	err := q.db.QueryRowContext(ctx, latestDrawDate).Scan(&date)
	return date, err
}

const countDraws = `
SELECT count(*) FROM draws
`

func (q *Queries) CountDraws(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countDraws).Scan(&count)
	return count, err
}

const getDateRange = `
SELECT min(draw_date), max(draw_date) FROM draws
`

type DateRangeRow struct {
	Oldest string
	Newest string
}

func (q *Queries) GetDateRange(ctx context.Context) (DateRangeRow, error) {
	var r DateRangeRow
	err := q.db.QueryRowContext(ctx, getDateRange).Scan(&r.Oldest, &r.Newest)
	return r, err
}

const countBySource = `
SELECT source, count(*) FROM draws GROUP BY source ORDER BY source
`

type CountBySourceRow struct {
	Source string
	Count  int64
}

func (q *Queries) CountBySource(ctx context.Context) ([]CountBySourceRow, error) {
	rows, err := q.db.QueryContext(ctx, countBySource)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []CountBySourceRow
	for rows.Next() {
		var r CountBySourceRow
		err := rows.Scan(&r.Source, &r.Count)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
