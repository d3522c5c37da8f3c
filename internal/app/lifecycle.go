package app

import (
	"context"
	"os/signal"
	"syscall"
	"time"
)

// Lifecycle holds the release functions of a counting run's context.
type Lifecycle struct {
	cancelTimeout context.CancelFunc
	stopSignals   context.CancelFunc
}

// SetupLifecycle derives a context that ends when timeout expires or when
// SIGINT/SIGTERM arrives, whichever comes first. Defer Cleanup on the result.
func SetupLifecycle(ctx context.Context, timeout time.Duration) (context.Context, *Lifecycle) {
	ctx, cancelTimeout := context.WithTimeout(ctx, timeout)
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	return ctx, &Lifecycle{cancelTimeout: cancelTimeout, stopSignals: stopSignals}
}

// Cleanup stops signal delivery and releases the timeout.
func (l *Lifecycle) Cleanup() {
	l.stopSignals()
	l.cancelTimeout()
}
