// internal/scheduler/scheduler.go
package scheduler

import (
	"context"
	"sync"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/bazarco/backend/internal/config"
	"github.com/bazarco/backend/internal/services"
)

// CampaignRunner runs one reminder campaign.
type CampaignRunner interface {
	RunCampaign(ctx context.Context) (*services.CampaignResult, error)
}

// ReminderScheduler runs the reminder campaign on a cron schedule.
type ReminderScheduler struct {
	cfg    config.ReminderConfig
	runner CampaignRunner

	mu      sync.Mutex
	cron    *cron.Cron
	ctx     context.Context
	cancel  context.CancelFunc
	running bool
}

func NewReminderScheduler(cfg config.ReminderConfig, runner CampaignRunner) *ReminderScheduler {
	return &ReminderScheduler{cfg: cfg, runner: runner}
}

// Start schedules the job. It returns false, after logging why, when the
// job is disabled or the schedule does not parse.
func (s *ReminderScheduler) Start(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return true
	}
	if !s.cfg.Enabled {
		logrus.Info("Reminder cron disabled")
		return false
	}

	schedule, err := cron.ParseStandard(s.cfg.Schedule)
	if err != nil {
		logrus.WithError(err).WithField("schedule", s.cfg.Schedule).
			Warn("Invalid reminder cron schedule, job not scheduled")
		return false
	}

	s.ctx, s.cancel = context.WithCancel(ctx)
	s.cron = cron.New()
	s.cron.Schedule(schedule, cron.FuncJob(s.Run))
	s.cron.Start()
	s.running = true

	logrus.WithField("schedule", s.cfg.Schedule).Info("Reminder cron scheduled")
	return true
}

// Stop cancels a campaign in progress and waits for it to return.
func (s *ReminderScheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.cancel()
	stopped := s.cron.Stop()
	s.mu.Unlock()

	<-stopped.Done()
	logrus.Info("Reminder cron stopped")
}

// Run executes one campaign and logs the outcome.
func (s *ReminderScheduler) Run() {
	ctx := s.ctx
	if ctx == nil {
		ctx = context.Background()
	}

	logrus.Info("Reminder job started")
	result, err := s.runner.RunCampaign(ctx)
	if err != nil {
		logrus.WithError(err).Error("Reminder job failed")
		return
	}

	entry := logrus.WithFields(logrus.Fields{
		"total":  result.Total,
		"sent":   result.Sent,
		"failed": result.Failed,
	})
	entry.Info("Reminder job completed")
	if len(result.Errors) > 0 {
		entry.WithField("errors", result.Errors).Warn("Reminder job partial failures")
	}
}
