package services

import (
	"context"
	"fmt"
	"time"

	"ecoreport/internal/adapters/persistence/repositories"
	"ecoreport/internal/config"

	"github.com/gofiber/fiber/v2/log"
	"github.com/robfig/cron/v3"
)

// jobTimeout bounds a single scheduled run
const jobTimeout = 2 * time.Minute

// CronService runs scheduled jobs. Neither job writes to complaints.
type CronService struct {
	cron      *cron.Cron
	dashboard *DashboardService
	tokens    repositories.RefreshTokenRepository
	cfg       config.CronConfig
}

// NewCronService creates a new cron service
func NewCronService(dashboard *DashboardService, tokens repositories.RefreshTokenRepository, cfg config.CronConfig) *CronService {
	return &CronService{
		cron:      cron.New(cron.WithChain(cron.Recover(cron.DefaultLogger))),
		dashboard: dashboard,
		tokens:    tokens,
		cfg:       cfg,
	}
}

// Start registers the jobs and starts the scheduler
func (s *CronService) Start() error {
	if !s.cfg.Enabled {
		log.Info("⏸️  Cron disabled")
		return nil
	}

	if _, err := s.cron.AddFunc(s.cfg.OverdueSpec, s.run(s.ReportOverdue)); err != nil {
		return fmt.Errorf("schedule overdue report %q: %w", s.cfg.OverdueSpec, err)
	}
	if _, err := s.cron.AddFunc(s.cfg.TokenPurgeSpec, s.run(s.PurgeExpiredTokens)); err != nil {
		return fmt.Errorf("schedule token purge %q: %w", s.cfg.TokenPurgeSpec, err)
	}

	s.cron.Start()
	log.Infof("⏰ Cron started (overdue: %s, token purge: %s)", s.cfg.OverdueSpec, s.cfg.TokenPurgeSpec)
	return nil
}

// Stop stops the scheduler and waits for running jobs
func (s *CronService) Stop() {
	<-s.cron.Stop().Done()
	log.Info("⏰ Cron stopped")
}

func (s *CronService) run(job func(ctx context.Context) error) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()
		if err := job(ctx); err != nil {
			log.Errorf("❌ Cron job failed: %v", err)
		}
	}
}

// ReportOverdue logs how many open complaints have passed their due date
func (s *CronService) ReportOverdue(ctx context.Context) error {
	stats, err := s.dashboard.Snapshot(ctx)
	if err != nil {
		return err
	}

	if stats.Overdue > 0 {
		log.Warnf("⚠️  %d of %d complaints are overdue (pending: %d)", stats.Overdue, stats.Total, stats.Pending)
	} else {
		log.Infof("✅ No overdue complaints (%d total)", stats.Total)
	}
	return nil
}

// PurgeExpiredTokens deletes refresh tokens past their expiry
func (s *CronService) PurgeExpiredTokens(ctx context.Context) error {
	n, err := s.tokens.DeleteExpired(ctx)
	if err != nil {
		return err
	}

	log.Infof("🧹 Purged %d expired refresh tokens", n)
	return nil
}
