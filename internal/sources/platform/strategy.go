package platform

import (
	"context"

	"github.com/playgate/playgate/internal/domain"
	"github.com/playgate/playgate/internal/logger"
)

// strategy is one self-contained attempt to satisfy a games query using one
// specific upstream call pattern. Strategies run in declared order; the
// first one that yields a non-empty normalized result is final.
type strategy struct {
	name string

	// applicable decides whether the strategy should run at all for this
	// query. nil means always applicable.
	applicable func(domain.GameQuery) bool

	// run issues the upstream call(s) and returns normalized records.
	// An error means the strategy failed (unreachable upstream, bad
	// status, malformed body); the chain logs it and moves on.
	run func(context.Context, domain.GameQuery) ([]domain.Game, error)
}

// runChain iterates strategies in priority order. Upstream flakiness is
// absorbed here: a failed or empty strategy falls through to the next, and
// an exhausted chain is a successful empty result, never an error.
func runChain(ctx context.Context, q domain.GameQuery, strategies []strategy, log logger.Logger) []domain.Game {
	for _, s := range strategies {
		if s.applicable != nil && !s.applicable(q) {
			log.Debug("strategy not applicable",
				logger.String("strategy", s.name),
				logger.String("keyword", q.Keyword))
			continue
		}

		games, err := s.run(ctx, q)
		if err != nil {
			log.Warn("strategy failed",
				logger.String("strategy", s.name),
				logger.String("keyword", q.Keyword),
				logger.Error(err))
			continue
		}
		if len(games) == 0 {
			log.Debug("strategy returned no records",
				logger.String("strategy", s.name),
				logger.String("keyword", q.Keyword))
			continue
		}

		log.Info("strategy produced result",
			logger.String("strategy", s.name),
			logger.String("keyword", q.Keyword),
			logger.Int("records", len(games)))
		return games
	}
	return []domain.Game{}
}
