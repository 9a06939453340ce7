package jobs

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/texlane/catalog-server-go/internal/repository"
)

// CleanupJob sweeps expired OTP codes and stale login sessions on a ticker.
// The status endpoint already expires sessions lazily; the sweep keeps rows
// honest for admins who never poll again.
type CleanupJob struct {
	adminRepo     repository.AdminRepository
	sessionWindow time.Duration
	interval      time.Duration
	done          chan struct{}
}

func NewCleanupJob(adminRepo repository.AdminRepository, sessionWindow, interval time.Duration) *CleanupJob {
	return &CleanupJob{
		adminRepo:     adminRepo,
		sessionWindow: sessionWindow,
		interval:      interval,
		done:          make(chan struct{}),
	}
}

func (j *CleanupJob) Start() {
	go j.run()
	log.Info().Dur("interval", j.interval).Msg("cleanup job started")
}

func (j *CleanupJob) Stop() {
	close(j.done)
	log.Info().Msg("cleanup job stopped")
}

func (j *CleanupJob) run() {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	j.cleanup()

	for {
		select {
		case <-j.done:
			return
		case <-ticker.C:
			// done may be ready at the same time as the tick; don't sweep
			// after Stop.
			select {
			case <-j.done:
				return
			default:
			}
			j.cleanup()
		}
	}
}

func (j *CleanupJob) cleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	j.runCleanup(ctx, "expired OTP codes", j.adminRepo.ClearExpiredOTPs)
	j.runCleanup(ctx, "stale sessions", func(ctx context.Context) (int64, error) {
		return j.adminRepo.ExpireStaleSessions(ctx, j.sessionWindow)
	})
}

func (j *CleanupJob) runCleanup(ctx context.Context, name string, fn func(context.Context) (int64, error)) {
	count, err := fn(ctx)
	if err != nil {
		log.Error().Err(err).Msgf("failed to cleanup %s", name)
	} else if count > 0 {
		log.Info().Int64("count", count).Msgf("cleaned up %s", name)
	}
}
