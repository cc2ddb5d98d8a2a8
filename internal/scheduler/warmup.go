package scheduler

import (
	"context"

	"github.com/playgate/playgate/internal/endpoint"
	"github.com/playgate/playgate/internal/logger"
)

// EndpointWarmer resolves every logical operation once in the background at
// startup, so the first user request does not pay the probing cost.
// Resolutions are memoized for the process lifetime, so the warmer has
// nothing to do after its single pass.
type EndpointWarmer struct {
	resolver *endpoint.Resolver
	logger   logger.Logger
	done     chan struct{}
}

// NewEndpointWarmer creates a new warmer over the given resolver.
func NewEndpointWarmer(resolver *endpoint.Resolver, log logger.Logger) *EndpointWarmer {
	return &EndpointWarmer{
		resolver: resolver,
		logger:   log,
		done:     make(chan struct{}),
	}
}

// Start launches the warmup pass. It returns immediately; resolution
// happens in the background and failures are advisory.
func (w *EndpointWarmer) Start(ctx context.Context) {
	go func() {
		defer close(w.done)
		for _, op := range endpoint.Operations() {
			select {
			case <-ctx.Done():
				return
			default:
			}

			if _, err := w.resolver.Resolve(ctx, op); err != nil {
				w.logger.Warn("endpoint warmup failed",
					logger.String("operation", string(op)),
					logger.Error(err))
			}
		}
		w.logger.Info("endpoint warmup complete")
	}()
}

// Done reports when the warmup pass has finished. Used by tests.
func (w *EndpointWarmer) Done() <-chan struct{} {
	return w.done
}
