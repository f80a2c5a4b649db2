// Package shutdown coordinates graceful process termination.
//
// A Handler collects cleanup hooks during startup and runs them, newest
// first, once SIGINT or SIGTERM arrives. All hooks share one deadline so
// a stuck component cannot hold termination open indefinitely.
package shutdown

import (
	"context"
	"errors"
	"os/signal"
	"sync"
	"syscall"
	"time"
)

// Hook is a cleanup step run during shutdown.
type Hook func(context.Context) error

// Handler runs registered hooks when a termination signal arrives.
type Handler struct {
	timeout time.Duration

	mu    sync.Mutex
	hooks []Hook

	done chan struct{}
}

// NewHandler creates a Handler whose hooks share the given deadline.
func NewHandler(timeout time.Duration) *Handler {
	return &Handler{
		timeout: timeout,
		done:    make(chan struct{}),
	}
}

// OnShutdown registers a hook. Hooks run in reverse registration order,
// mirroring a defer stack: what started last stops first.
func (h *Handler) OnShutdown(hook Hook) {
	h.mu.Lock()
	h.hooks = append(h.hooks, hook)
	h.mu.Unlock()
}

// Wait blocks until SIGINT or SIGTERM arrives, then runs the hooks under
// the shared deadline and returns their joined errors.
func (h *Handler) Wait() error {
	sigCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-sigCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()

	h.mu.Lock()
	hooks := make([]Hook, len(h.hooks))
	copy(hooks, h.hooks)
	h.mu.Unlock()

	var errs []error
	for i := len(hooks) - 1; i >= 0; i-- {
		if err := hooks[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}

	close(h.done)
	return errors.Join(errs...)
}

// Done returns a channel that closes once all hooks have run.
func (h *Handler) Done() <-chan struct{} {
	return h.done
}
