package service

import (
	"context"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/guessnica/guessnica-backend/internal/repository"
	"github.com/rs/zerolog/log"
)

// CleanupService periodically purges verification codes whose expiry has
// passed so the table does not accumulate dead rows.
type CleanupService struct {
	codeRepo  repository.VerificationCodeRepository
	scheduler gocron.Scheduler
}

func NewCleanupService(codeRepo repository.VerificationCodeRepository) *CleanupService {
	return &CleanupService{codeRepo: codeRepo}
}

func (s *CleanupService) Start() error {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return err
	}
	s.scheduler = sched

	_, err = sched.NewJob(
		gocron.DurationJob(1*time.Hour),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			deleted, err := s.codeRepo.DeleteExpired(ctx, time.Now().UTC())
			if err != nil {
				log.Error().Err(err).Msg("cleanup: failed to purge expired verification codes")
				return
			}
			if deleted > 0 {
				log.Info().Int64("deleted", deleted).Msg("cleanup: purged expired verification codes")
			}
		}),
	)
	if err != nil {
		return err
	}

	sched.Start()
	log.Info().Msg("verification code cleanup scheduler started")
	return nil
}

func (s *CleanupService) Stop() error {
	if s.scheduler == nil {
		return nil
	}
	return s.scheduler.Shutdown()
}
