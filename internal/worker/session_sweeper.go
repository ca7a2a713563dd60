package worker

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Sweeper removes expired sessions.
type Sweeper interface {
	Sweep() int
}

// RunSessionSweeper calls Sweep every interval until ctx is done.
func RunSessionSweeper(ctx context.Context, sweeper Sweeper, interval time.Duration, logger *zap.Logger) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if n := sweeper.Sweep(); n > 0 {
				logger.Info("expired sessions removed", zap.Int("count", n))
			}
		}
	}
}
