package scheduler

import (
	"context"
	"time"

	"github.com/ecofinds/ecofinds-backend/internal/app/service"
	"github.com/ecofinds/ecofinds-backend/pkg/logger"
	"github.com/robfig/cron/v3"
)

// SummaryScheduler keeps the cached product sales summary warm so the
// reporting endpoint rarely hits the view directly.
type SummaryScheduler struct {
	cron           *cron.Cron
	summaryService service.SummaryService
}

func NewSummaryScheduler(summaryService service.SummaryService) *SummaryScheduler {
	return &SummaryScheduler{
		cron:           cron.New(),
		summaryService: summaryService,
	}
}

// Start refreshes the sales cache every 5 minutes
func (s *SummaryScheduler) Start() error {
	_, err := s.cron.AddFunc("*/5 * * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := s.summaryService.RefreshProductSalesCache(ctx); err != nil {
			logger.Error("Failed to refresh product sales cache", err)
			return
		}

		logger.Debug("Product sales cache refreshed by scheduler", nil)
	})

	if err != nil {
		logger.Error("Failed to add cron job for summary refresh", err)
		return err
	}

	s.cron.Start()
	logger.Info("Summary scheduler started successfully (every 5 minutes)", nil)

	return nil
}

// Stop stops the scheduler
func (s *SummaryScheduler) Stop() {
	logger.Info("Stopping summary scheduler...", nil)
	s.cron.Stop()
	logger.Info("Summary scheduler stopped", nil)
}
