package jobs

import (
	"context"
	"time"

	"parking-app/internal/infra/logging"
	"parking-app/internal/store"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// ExpirySweep writes EXPIRED onto permits whose expiry has passed. Reads never
// depend on it (the status resolver already derives expiry); it keeps the
// stored flag consistent for reporting and server-side filters.
type ExpirySweep struct {
	db  *gorm.DB
	now func() time.Time
}

func NewExpirySweep(db *gorm.DB, now func() time.Time) *ExpirySweep {
	if now == nil {
		now = time.Now
	}
	return &ExpirySweep{db: db, now: now}
}

// Run is idempotent and safe to retry after a partial failure.
func (s *ExpirySweep) Run(ctx context.Context) (int64, error) {
	n, err := store.ExpireDuePermits(ctx, s.db, s.now())
	if err != nil {
		return 0, err
	}
	if n > 0 {
		logging.Logger.Infof("Expiry sweep marked %d permit(s) expired", n)
	}
	return n, nil
}

// Schedule registers the sweep on a new cron in UTC. Overlapping runs are
// skipped rather than queued. The caller starts and stops the cron.
func Schedule(spec string, sweep *ExpirySweep) (*cron.Cron, error) {
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
	)
	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if _, e := sweep.Run(ctx); e != nil {
			logging.Logger.WithError(e).Error("Scheduled expiry sweep failed")
		}
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}
