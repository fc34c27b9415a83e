package acquire

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"
	"euromillions-backend/lib/draws"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("lib/acquire")

var (
	// caller misuse, surfaced immediately
	ErrInvalidArgument = errors.New("invalid argument")
	// zero valid records obtainable from any source
	ErrAcquisitionFailed = errors.New("acquisition failed")
)

type Options struct {
	// budget for a single source, a source exceeding it is treated
	// as failed and skipped. defaults to 30s.
	SourceTimeout time.Duration
	// fetch all sources at once instead of falling back one by one.
	// conflict resolution stays priority-ordered either way.
	Concurrent bool
}

type Engine struct {
	registry Registry
	opts     Options
}

func NewEngine(registry Registry, opts Options) Engine {
	if opts.SourceTimeout <= 0 {
		opts.SourceTimeout = time.Second * 30
	}
	return Engine{registry: registry, opts: opts}
}

type Result struct {
	// ordered by draw date descending
	Records []draws.Record
	// fewer records than requested even after exhausting every source
	Partial bool
	// per-source failures, keyed by source id. always recovered,
	// kept for observability
	SourceErrors map[string]error
	// candidates discarded by validation
	Rejected int
}

// accumulator keyed by draw date. the first record inserted for a
// date wins, so filling it in priority order makes higher-priority
// sources authoritative for conflicting data.
type accumulator map[string]draws.Record

func (acc accumulator) add(record draws.Record) {
	key := record.DateString()
	if _, taken := acc[key]; taken {
		return
	}
	acc[key] = record
}

// Fetch returns up to `limit` validated, deduplicated draw records
// starting at the offset-th most recent draw.
//
// a single source failing (or timing out) is non-fatal, the engine
// moves on to the next one. only caller misuse and total failure
// produce an error, an incomplete result is flagged via
// Result.Partial instead.
func (e Engine) Fetch(ctx context.Context, limit, offset int) (Result, error) {
	if limit <= 0 {
		return Result{}, fmt.Errorf("%w: limit must be > 0, got %d", ErrInvalidArgument, limit)
	}
	if offset < 0 {
		return Result{}, fmt.Errorf("%w: offset must be >= 0, got %d", ErrInvalidArgument, offset)
	}

	ctx, span := tracer.Start(ctx, "Fetch", trace.WithAttributes(
		attribute.Int("limit", limit),
		attribute.Int("offset", offset),
	))
	defer span.End()

	target := offset + limit
	result := Result{SourceErrors: map[string]error{}}
	acc := accumulator{}

	if e.opts.Concurrent {
		e.fetchConcurrent(ctx, target, acc, &result)
	} else {
		e.fetchSequential(ctx, target, acc, &result)
	}

	if len(acc) == 0 {
		err := fmt.Errorf("%w: no source produced a valid record", ErrAcquisitionFailed)
		if len(result.SourceErrors) > 0 {
			errlist := make([]error, 0, len(result.SourceErrors))
			for id, sourceErr := range result.SourceErrors {
				errlist = append(errlist, fmt.Errorf("%s: %w", id, sourceErr))
			}
			err = errors.Join(err, errors.Join(errlist...))
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "acquisition failed")
		return Result{}, err
	}

	records := make([]draws.Record, 0, len(acc))
	for _, r := range acc {
		records = append(records, r)
	}
	slices.SortFunc(records, func(a, b draws.Record) int {
		return b.DrawDate.Compare(a.DrawDate)
	})

	if offset >= len(records) {
		records = nil
	} else {
		records = records[offset:min(offset+limit, len(records))]
	}

	result.Records = records
	result.Partial = len(records) < limit
	span.SetAttributes(
		attribute.Int("records", len(records)),
		attribute.Int("rejected", result.Rejected),
		attribute.Bool("partial", result.Partial),
	)
	return result, nil
}

// sequential fallback: stop asking sources once the accumulator can
// satisfy the request, so the fast high-priority source usually keeps
// us from hammering the slower ones.
func (e Engine) fetchSequential(ctx context.Context, target int, acc accumulator, result *Result) {
	for _, source := range e.registry.ByPriority() {
		if len(acc) >= target {
			break
		}

		candidates, err := e.fetchSource(ctx, source, target)
		if err != nil {
			result.SourceErrors[source.ID()] = err
			continue
		}
		e.admit(ctx, source, candidates, acc, result)
	}
}

// concurrent mode: every source is fetched at once, but candidate
// batches are buffered and admitted strictly in priority order
// afterwards, so a slow high-priority source still wins conflicts.
func (e Engine) fetchConcurrent(ctx context.Context, target int, acc accumulator, result *Result) {
	sources := e.registry.ByPriority()
	batches := make([][]draws.Candidate, len(sources))
	errs := make([]error, len(sources))

	wg := sync.WaitGroup{}
	for i, source := range sources {
		i, source := i, source
		wg.Add(1)
		go func() {
			defer wg.Done()
			batches[i], errs[i] = e.fetchSource(ctx, source, target)
		}()
	}
	wg.Wait()

	for i, source := range sources {
		if errs[i] != nil {
			result.SourceErrors[source.ID()] = errs[i]
			continue
		}
		e.admit(ctx, source, batches[i], acc, result)
	}
}

func (e Engine) fetchSource(ctx context.Context, source Source, limit int) ([]draws.Candidate, error) {
	ctx, cancel := context.WithTimeout(ctx, e.opts.SourceTimeout)
	defer cancel()

	ctx, span := tracer.Start(ctx, "fetchSource", trace.WithAttributes(
		attribute.String("source", source.ID()),
		attribute.Int("priority", source.Priority()),
	))
	defer span.End()

	candidates, err := source.Fetch(ctx, limit)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "source fetch failed")
		slog.WarnContext(ctx, "source failed, skipping", "source", source.ID(), "err", err)
		return nil, err
	}

	span.SetAttributes(attribute.Int("candidates", len(candidates)))
	return candidates, nil
}

func (e Engine) admit(ctx context.Context, source Source, candidates []draws.Candidate, acc accumulator, result *Result) {
	rejected := 0
	for _, candidate := range candidates {
		record, err := draws.Validate(candidate, source.ID())
		if err != nil {
			rejected++
			slog.DebugContext(
				ctx, "rejected candidate",
				"source", source.ID(),
				"raw_date", candidate.RawDate,
				"err", err,
			)
			continue
		}
		acc.add(record)
	}

	result.Rejected += rejected
	if rejected > 0 {
		slog.WarnContext(
			ctx, "source produced invalid candidates",
			"source", source.ID(),
			"rejected", rejected,
			"total", len(candidates),
		)
	}
}
