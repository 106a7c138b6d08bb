// Package watchdog implements the Liveness Watchdog: it bridges the
// absence of a real client-process-id inside the server (due to PID
// patching or containerization) with the real lifecycle of the editor
// that launched the proxy.
package watchdog

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Watchdog polls a parent process id at Interval and calls OnDeath once,
// the first time the parent is observed gone.
type Watchdog struct {
	ParentPID int
	Interval  time.Duration
	OnDeath   func(reason string)
	Log       *zap.Logger

	stopOnce sync.Once
	stopCh   chan struct{}
}

// New builds a Watchdog. interval is clamped into the [500ms, 2s] band
// the contract requires: responsive enough to feel immediate, coarse
// enough to be free.
func New(parentPID int, interval time.Duration, onDeath func(reason string), log *zap.Logger) *Watchdog {
	if interval < 500*time.Millisecond {
		interval = 500 * time.Millisecond
	}
	if interval > 2*time.Second {
		interval = 2 * time.Second
	}
	return &Watchdog{
		ParentPID: parentPID,
		Interval:  interval,
		OnDeath:   onDeath,
		Log:       log,
		stopCh:    make(chan struct{}),
	}
}

// Run polls until the parent is observed gone, the context is cancelled,
// or Stop is called. It is meant to run in its own goroutine.
func (w *Watchdog) Run(ctx context.Context) {
	ticker := time.NewTicker(w.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case <-ticker.C:
			if !isAlive(w.ParentPID) {
				w.Log.Info("parent process is gone, triggering shutdown", zap.Int("parentPid", w.ParentPID))
				w.OnDeath("parent process exited")
				return
			}
		}
	}
}

// Stop ends the polling loop without triggering OnDeath. Idempotent.
func (w *Watchdog) Stop() {
	w.stopOnce.Do(func() { close(w.stopCh) })
}
