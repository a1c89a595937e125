package services

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/Tayyab-Hussayn/Web-Content-writer/internal/middleware"
)

// expiredSessionDeleter is the part of the session store the sweeper needs.
type expiredSessionDeleter interface {
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// SessionSweeper periodically removes expired sessions. Lookups already ignore
// expired rows; sweeping only keeps the table small.
type SessionSweeper struct {
	store    expiredSessionDeleter
	interval time.Duration
	now      Clock
	logger   *slog.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewSessionSweeper creates a sweeper that runs every interval.
func NewSessionSweeper(store expiredSessionDeleter, interval time.Duration, now Clock, logger *slog.Logger) *SessionSweeper {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionSweeper{store: store, interval: interval, now: now, logger: logger}
}

// RunOnce deletes the sessions expired at the current time and returns how many were removed.
func (w *SessionSweeper) RunOnce(ctx context.Context) (int64, error) {
	n, err := w.store.DeleteExpired(middleware.WithLogger(ctx, w.logger), w.now())
	if err != nil {
		return 0, err
	}
	if n > 0 {
		w.logger.Info("Deleted expired sessions", slog.Int64("count", n))
	}
	return n, nil
}

// Start begins periodic sweeping until ctx is cancelled or Stop is called.
func (w *SessionSweeper) Start(ctx context.Context) {
	ctx, w.cancel = context.WithCancel(ctx)
	w.wg.Add(1)
	go w.run(ctx)
}

// Stop stops the sweeper and waits for the current cycle to finish.
func (w *SessionSweeper) Stop() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
}

func (w *SessionSweeper) run(ctx context.Context) {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := w.RunOnce(ctx); err != nil && ctx.Err() == nil {
				w.logger.Error("Session sweep failed", slog.String("error", err.Error()))
			}
		}
	}
}
