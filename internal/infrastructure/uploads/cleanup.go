package uploads

import (
	"context"
	"time"

	"github.com/swaroop-surya/chatroom/internal/infrastructure/logging"
)

// RunCleanup sweeps expired uploads on a fixed interval until ctx is done.
func RunCleanup(ctx context.Context, svc *Service, log logging.Logger, ttl, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := svc.SweepExpired(ctx, time.Now().Add(-ttl))
			if err != nil {
				log.Error(logging.IO, logging.Cleanup, "upload sweep failed", map[logging.ExtraKey]interface{}{
					logging.ErrorMessage: err.Error(),
				})
				continue
			}
			if removed > 0 {
				log.Infof("removed %d expired uploads", removed)
			}
		}
	}
}
