// Package scheduler runs the daily training reminder sweep.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/linesmerrill/training-calendar-api/databases"
	"github.com/linesmerrill/training-calendar-api/models"
)

// SweepTimeout bounds a single scheduled sweep
const SweepTimeout = 5 * time.Minute

// ReminderNotifier sends one reminder for a training
type ReminderNotifier interface {
	SendReminder(ctx context.Context, recipients []string, t models.Training) error
}

// Recorder receives sweep tallies. Nil is allowed.
type Recorder interface {
	SweepCompleted(sent, skipped, failed int, err error)
}

// SweepResult tallies one sweep. Found = Sent + Skipped + Failed when the
// sweep ran to completion.
type SweepResult struct {
	Found   int
	Sent    int
	Skipped int
	Failed  int
}

// Scheduler handles the periodic reminder job
type Scheduler struct {
	cron       *cron.Cron
	TDB        databases.TrainingDatabase
	Notifier   ReminderNotifier
	Recorder   Recorder
	Spec       string
	WindowDays int
	Location   *time.Location
	Now        func() time.Time
}

// NewScheduler creates a new scheduler instance running in loc
func NewScheduler(tdb databases.TrainingDatabase, notifier ReminderNotifier, spec string, windowDays int, loc *time.Location) *Scheduler {
	if loc == nil {
		loc = time.UTC
	}
	return &Scheduler{
		cron:       cron.New(cron.WithLocation(loc)),
		TDB:        tdb,
		Notifier:   notifier,
		Spec:       spec,
		WindowDays: windowDays,
		Location:   loc,
		Now:        time.Now,
	}
}

// Start registers the reminder job and starts the cron loop
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.Spec, s.RunDailySweep); err != nil {
		return fmt.Errorf("registering reminder job %q: %w", s.Spec, err)
	}
	s.cron.Start()
	zap.S().Infow("Reminder scheduler started", "schedule", s.Spec, "location", s.Location.String())
	return nil
}

// Stop gracefully stops the scheduler, waiting for a running sweep
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	zap.S().Info("Reminder scheduler stopped")
}

// RunDailySweep is the cron entry point. It never panics and never returns
// an error; the outcome is logged and recorded.
func (s *Scheduler) RunDailySweep() {
	defer func() {
		if r := recover(); r != nil {
			zap.S().Errorw("panic in reminder sweep", "panic", r)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), SweepTimeout)
	defer cancel()

	res, err := s.Sweep(ctx, s.Now())
	if s.Recorder != nil {
		s.Recorder.SweepCompleted(res.Sent, res.Skipped, res.Failed, err)
	}
	if err != nil {
		zap.S().Errorw("reminder sweep failed", "error", err, "found", res.Found, "sent", res.Sent)
		return
	}
	zap.S().Infow("reminder sweep completed",
		"found", res.Found,
		"sent", res.Sent,
		"skipped", res.Skipped,
		"failed", res.Failed,
	)
}

// Sweep sends one reminder for every pending training due within the window
// around now. A training with unusable recipients is skipped and a failed
// send is counted; neither stops the sweep. Only a failed query does. When
// ctx ends mid-sweep the trainings not yet handled are counted as failed.
func (s *Scheduler) Sweep(ctx context.Context, now time.Time) (SweepResult, error) {
	var res SweepResult

	trainings, err := s.TDB.QueryPendingTrainingsDueWithin(ctx, s.WindowDays, now.In(s.Location))
	if err != nil {
		return res, fmt.Errorf("querying due trainings: %w", err)
	}
	res.Found = len(trainings)

	for i, t := range trainings {
		if err := ctx.Err(); err != nil {
			res.Failed += len(trainings) - i
			zap.S().Warnw("reminder sweep interrupted", "error", err, "unsent", len(trainings)-i)
			break
		}

		recipients, err := ResolveRecipients(t.NotificationRecipients)
		if err != nil {
			zap.S().Warnw("skipping training reminder", "trainingId", t.ID.Hex(), "name", t.Name, "error", err)
			res.Skipped++
			continue
		}

		if err := s.dispatch(ctx, recipients, t); err != nil {
			zap.S().Errorw("failed to send training reminder", "trainingId", t.ID.Hex(), "recipients", len(recipients), "error", err)
			res.Failed++
			continue
		}
		zap.S().Infow("sent training reminder", "trainingId", t.ID.Hex(), "recipients", len(recipients))
		res.Sent++
	}
	return res, nil
}

// dispatch isolates a single send so a panicking notifier only fails its own record
func (s *Scheduler) dispatch(ctx context.Context, recipients []string, t models.Training) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic while sending reminder: %v", r)
		}
	}()
	return s.Notifier.SendReminder(ctx, recipients, t)
}
