package reminder

import (
	"context"
	"time"

	"github.com/anhnq-lab/cic-erp-contract-sub002/internal/config"
	"github.com/anhnq-lab/cic-erp-contract-sub002/internal/features/contract"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// ReminderService sweeps contracts stuck in review and logs a warning per
// stale record. Notification delivery is owned by the surrounding app; the
// sweep only surfaces the backlog.
type ReminderService interface {
	Start(ctx context.Context) error
	Stop() error
	SweepStaleReviews(ctx context.Context) (int, error)
}

type ReminderServiceImpl struct {
	Contracts contract.ContractService
	Config    *config.Config
	Logger    *zap.Logger
	scheduler *cron.Cron
}

func NewReminderService(contracts contract.ContractService, cfg *config.Config, logger *zap.Logger) ReminderService {
	return &ReminderServiceImpl{
		Contracts: contracts,
		Config:    cfg,
		Logger:    logger,
	}
}

func (s *ReminderServiceImpl) Start(ctx context.Context) error {
	s.scheduler = cron.New()

	_, err := s.scheduler.AddFunc(s.Config.ReviewReminderCron, func() {
		sweepCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if _, err := s.SweepStaleReviews(sweepCtx); err != nil {
			s.Logger.Error("stale review sweep failed", zap.Error(err))
		}
	})
	if err != nil {
		return err
	}

	s.scheduler.Start()
	s.Logger.Info("review reminder scheduler started",
		zap.String("cron", s.Config.ReviewReminderCron),
		zap.Int("due_days", s.Config.ReviewReminderDueDays))
	return nil
}

func (s *ReminderServiceImpl) Stop() error {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
	return nil
}

func (s *ReminderServiceImpl) SweepStaleReviews(ctx context.Context) (int, error) {
	olderThan := time.Duration(s.Config.ReviewReminderDueDays) * 24 * time.Hour

	stale, err := s.Contracts.ListStaleReviews(ctx, olderThan)
	if err != nil {
		return 0, err
	}

	for _, c := range stale {
		s.Logger.Warn("contract awaiting review past due",
			zap.String("record_id", c.ID.Hex()),
			zap.String("name", c.Name),
			zap.Time("submitted_at", c.UpdatedAt))
	}
	return len(stale), nil
}
