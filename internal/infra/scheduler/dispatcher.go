package scheduler

import (
	"time"

	"period_tracker_bot/internal/domain/dates"
	"period_tracker_bot/internal/domain/notify"
	"period_tracker_bot/internal/domain/reminder"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// DueCollector hands out reminders that have come due. Implemented by
// the tracker service; each reminder is delivered exactly once.
type DueCollector interface {
	CollectDue(now time.Time) []reminder.Reminder
}

// ReminderDispatcher periodically drains due reminders and pushes them
// to the user through the notifier.
type ReminderDispatcher struct {
	cronEngine *cron.Cron
	tracker    DueCollector
	notifier   notify.Client
	ownerID    int64
	logger     *logrus.Entry
	cronSpec   string
}

func NewReminderDispatcher(
	tracker DueCollector,
	notifier notify.Client,
	ownerID int64,
	logger *logrus.Entry,
	cronSpec string, // e.g., "0 9 * * *" (9 AM daily)
) *ReminderDispatcher {
	return &ReminderDispatcher{
		cronEngine: cron.New(cron.WithLocation(time.Local)), // Use server's local time for cron
		tracker:    tracker,
		notifier:   notifier,
		ownerID:    ownerID,
		logger:     logger,
		cronSpec:   cronSpec,
	}
}

func (d *ReminderDispatcher) Start() error {
	d.logger.Info("Starting reminder dispatcher...")

	_, err := d.cronEngine.AddFunc(d.cronSpec, d.dispatchDue)
	if err != nil {
		return err
	}

	d.cronEngine.Start()
	d.logger.WithField("cron_spec", d.cronSpec).Info("Reminder dispatcher started")
	return nil
}

func (d *ReminderDispatcher) dispatchDue() {
	// The clock is read once per run; every due decision in this batch
	// uses the same instant.
	now := time.Now()
	due := d.tracker.CollectDue(now)
	if len(due) == 0 {
		d.logger.Debug("No reminders due")
		return
	}

	for _, r := range due {
		text := "⏰ " + r.Message + " (" + dates.Format(r.When) + ")"
		if err := d.notifier.SendMessage(d.ownerID, text); err != nil {
			d.logger.WithError(err).WithField("reminder_date", dates.Format(r.When)).
				Error("Failed to deliver reminder")
			continue
		}
		d.logger.WithField("reminder_date", dates.Format(r.When)).Info("Reminder delivered")
	}
}

func (d *ReminderDispatcher) Stop() {
	d.logger.Info("Stopping reminder dispatcher...")
	ctx := d.cronEngine.Stop() // Stops new runs, waits for running jobs.
	<-ctx.Done()               // Wait for graceful shutdown
	d.logger.Info("Reminder dispatcher gracefully stopped")
}
