// Package scheduler runs the daily practice-reminder job: once a day it
// checks the activity log and nudges the learner if nothing has been
// practised yet.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"

	"github.com/example/studytrack/internal/database"
	"github.com/example/studytrack/internal/proficiency"
)

// DefaultReminderHour is the local hour the reminder fires when none is
// configured.
const DefaultReminderHour = 19

// Notifier delivers a practice reminder. The CLI implementation just
// prints; a desktop build could raise a system notification.
type Notifier interface {
	RemindPractice(openProblems int) error
}

// Scheduler manages the application's scheduled tasks.
type Scheduler struct {
	scheduler *gocron.Scheduler
	store     *database.Store
	notifier  Notifier
	logger    *zap.Logger
	hour      int
}

// New creates a scheduler firing at the given local hour (0-23); an
// out-of-range hour falls back to DefaultReminderHour.
func New(store *database.Store, notifier Notifier, hour int, logger *zap.Logger) *Scheduler {
	if hour < 0 || hour > 23 {
		hour = DefaultReminderHour
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.Local),
		store:     store,
		notifier:  notifier,
		logger:    logger,
		hour:      hour,
	}
}

// Start begins running all scheduled tasks in the background.
func (s *Scheduler) Start() error {
	_, err := s.scheduler.Every(1).Day().At(fmt.Sprintf("%02d:00", s.hour)).Do(s.checkPracticedToday)
	if err != nil {
		return fmt.Errorf("failed to schedule reminder: %w", err)
	}
	s.scheduler.StartAsync()
	return nil
}

// Stop terminates all scheduled tasks.
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// RunManualCheck forces an immediate reminder check, used by the watch
// command on startup.
func (s *Scheduler) RunManualCheck() error {
	return s.checkPracticedToday()
}

func (s *Scheduler) checkPracticedToday() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)

	count, err := s.store.Logs.CountSince(ctx, s.store.DB(), startOfDay.UnixMilli())
	if err != nil {
		s.logger.Warn("reminder check failed", zap.Error(err))
		return err
	}
	if count > 0 {
		s.logger.Debug("practice already recorded today", zap.Int("count", count))
		return nil
	}

	problems, err := s.store.Problems.GetAll(ctx, s.store.DB())
	if err != nil {
		s.logger.Warn("reminder check failed", zap.Error(err))
		return err
	}
	open := 0
	for _, p := range problems {
		if !proficiency.IsMastered(p) {
			open++
		}
	}
	if open == 0 {
		return nil
	}

	if err := s.notifier.RemindPractice(open); err != nil {
		s.logger.Warn("failed to deliver reminder", zap.Error(err))
		return err
	}
	return nil
}
