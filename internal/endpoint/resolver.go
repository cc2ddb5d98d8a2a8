package endpoint

import (
	"context"
	"fmt"
	"sync"

	"github.com/playgate/playgate/internal/logger"
)

// ErrNoCandidates is returned when an operation has neither an override
// nor any candidate URL. It is the only hard failure resolution can hit.
var ErrNoCandidates = fmt.Errorf("no candidate URLs configured for operation")

// Resolver picks, at runtime, which base URL actually backs a logical
// operation. Resolution order: explicit override, cached prior result,
// first reachable candidate, first candidate as a best-effort default.
//
// The cache is memoized per operation for the lifetime of the resolver.
// Concurrent requests racing on an unresolved operation may both probe;
// they converge on the same winner, so the duplicate work is harmless and
// no resolution is ever invalidated.
type Resolver struct {
	candidates Candidates
	overrides  map[Operation]string
	prober     Prober
	logger     logger.Logger

	mu    sync.RWMutex
	cache map[Operation]string
}

// NewResolver builds a resolver over the given candidate lists.
// overrides may be nil.
func NewResolver(candidates Candidates, overrides map[Operation]string, prober Prober, log logger.Logger) *Resolver {
	return &Resolver{
		candidates: candidates,
		overrides:  overrides,
		prober:     prober,
		logger:     log,
		cache:      make(map[Operation]string, len(candidates)),
	}
}

// Resolve returns the base URL to use for op. It only fails when op has
// no override and an empty candidate list; every probe failure is absorbed.
func (r *Resolver) Resolve(ctx context.Context, op Operation) (string, error) {
	if url, ok := r.overrides[op]; ok && url != "" {
		r.logger.Debug("endpoint override used",
			logger.String("operation", string(op)),
			logger.String("url", url))
		r.store(op, url)
		return url, nil
	}

	r.mu.RLock()
	cached, ok := r.cache[op]
	r.mu.RUnlock()
	if ok {
		return cached, nil
	}

	list := r.candidates[op]
	if len(list) == 0 {
		return "", fmt.Errorf("%w: %s", ErrNoCandidates, op)
	}

	for _, url := range list {
		if r.prober.Reachable(ctx, url) {
			r.logger.Info("endpoint resolved",
				logger.String("operation", string(op)),
				logger.String("url", url))
			r.store(op, url)
			return url, nil
		}
		r.logger.Warn("endpoint candidate unreachable",
			logger.String("operation", string(op)),
			logger.String("url", url))
	}

	// Nothing answered. Falling back to the preferred candidate keeps
	// callers simple at the cost of possibly handing out a dead URL.
	fallback := list[0]
	r.logger.Warn("no endpoint candidate reachable, using first as default",
		logger.String("operation", string(op)),
		logger.String("url", fallback))
	r.store(op, fallback)
	return fallback, nil
}

func (r *Resolver) store(op Operation, url string) {
	r.mu.Lock()
	r.cache[op] = url
	r.mu.Unlock()
}

// Resolved returns the cached resolution for op, if any. Used by the infra
// status endpoint; it never triggers probing.
func (r *Resolver) Resolved(op Operation) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	url, ok := r.cache[op]
	return url, ok
}
