// Package acquire implements prioritized multi-source acquisition of
// draw data: sources are tried in priority order, their output is
// validated and deduplicated by draw date, and lower-priority sources
// are only consulted when the higher-priority ones come up short.
package acquire

import (
	"context"
	"slices"
	"euromillions-backend/lib/draws"
)

// Source is one external provider of draw data. implementations own
// their retrieval and parsing strategy entirely, the engine only sees
// candidates.
//
// Fetch should return roughly `limit` candidates, newest first, but
// the engine tolerates any amount. a Fetch failure never aborts the
// overall acquisition.
type Source interface {
	ID() string
	// lower is tried first, also acts as the trust ranking when two
	// sources disagree about the same draw date
	Priority() int
	Fetch(ctx context.Context, limit int) ([]draws.Candidate, error)
}

// Registry is the immutable catalogue of configured sources.
// it is built once at startup and is safe for concurrent reads.
type Registry struct {
	sources []Source
}

func NewRegistry(sources ...Source) Registry {
	ordered := slices.Clone(sources)
	// stable: equal priorities keep registration order
	slices.SortStableFunc(ordered, func(a, b Source) int {
		return a.Priority() - b.Priority()
	})
	return Registry{sources: ordered}
}

// ascending priority, 1 first
func (r Registry) ByPriority() []Source {
	return slices.Clone(r.sources)
}

func (r Registry) Len() int {
	return len(r.sources)
}
