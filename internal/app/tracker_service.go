// internal/app/tracker_service.go
package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"period_tracker_bot/internal/domain/cycle"
	"period_tracker_bot/internal/domain/dailylog"
	"period_tracker_bot/internal/domain/dates"
	"period_tracker_bot/internal/domain/history"
	"period_tracker_bot/internal/domain/reminder"

	"github.com/sirupsen/logrus"
)

// Prediction is the result of the next-period projection.
type Prediction struct {
	Date          time.Time
	DaysUntil     int // negative when the predicted date is already past
	AverageLength int
}

// TrackerService is the tracking session. It owns the ledger, the
// undo/redo history, the reminder queue and the daily-log book, and
// orchestrates them: every successful mutation records its inverse in
// the history and rebuilds the auto reminder from the new prediction.
//
// There is no ambient global; the bot handlers and the reminder
// dispatcher share one constructed instance, so a mutex serializes
// access. The domain structures themselves stay single-threaded.
type TrackerService struct {
	mu        sync.Mutex
	ledger    *cycle.Ledger
	history   *history.History
	reminders *reminder.Queue
	logs      *dailylog.Book
	cycleRepo cycle.Repository
	logRepo   dailylog.Repository
	logger    *logrus.Entry
}

func NewTrackerService(cycleRepo cycle.Repository, logRepo dailylog.Repository, logger *logrus.Entry) *TrackerService {
	return &TrackerService{
		ledger:    cycle.NewLedger(),
		history:   history.NewHistory(),
		reminders: reminder.NewQueue(),
		logs:      dailylog.NewBook(),
		cycleRepo: cycleRepo,
		logRepo:   logRepo,
		logger:    logger,
	}
}

// Load pulls the whole snapshot from the repositories. Invoked once at
// session start; loading records no history entries.
func (s *TrackerService) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.cycleRepo.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load cycle snapshot: %w", err)
	}
	for _, rec := range records {
		if err := s.ledger.Restore(rec); err != nil {
			s.logger.WithField("start_date", dates.Format(rec.StartDate)).
				WithError(err).Warn("Skipping stored cycle record")
		}
	}

	entries, err := s.logRepo.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load daily log snapshot: %w", err)
	}
	s.logs.Reset(entries)

	s.refreshReminders()
	s.logger.WithFields(logrus.Fields{
		"cycles":     s.ledger.Len(),
		"daily_logs": s.logs.Len(),
	}).Info("Session snapshot loaded")
	return nil
}

// Save writes the whole snapshot back. Invoked once at session end,
// never interleaved with in-session mutation.
func (s *TrackerService) Save(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.cycleRepo.ReplaceAll(ctx, s.ledger.All()); err != nil {
		return fmt.Errorf("failed to save cycle snapshot: %w", err)
	}
	if err := s.logRepo.ReplaceAll(ctx, s.logs.All()); err != nil {
		return fmt.Errorf("failed to save daily log snapshot: %w", err)
	}
	s.logger.Info("Session snapshot saved")
	return nil
}

// AddCycle validates the date strings and records a new cycle. A
// failed add records no history entry.
func (s *TrackerService) AddCycle(startStr, endStr string) (cycle.Record, error) {
	start, err := dates.Parse(startStr)
	if err != nil {
		return cycle.Record{}, err
	}
	end, err := dates.Parse(endStr)
	if err != nil {
		return cycle.Record{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.ledger.Add(start, end)
	if err != nil {
		return cycle.Record{}, err
	}
	s.history.Record(history.KindAdd, rec)
	s.refreshReminders()
	s.logger.WithFields(logrus.Fields{
		"start_date":    startStr,
		"end_date":      endStr,
		"duration_days": rec.DurationDays,
	}).Info("Cycle recorded")
	return rec, nil
}

// DeleteCycle removes the cycle starting on the given date.
func (s *TrackerService) DeleteCycle(startStr string) (cycle.Record, error) {
	start, err := dates.Parse(startStr)
	if err != nil {
		return cycle.Record{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.ledger.DeleteByStart(start)
	if err != nil {
		return cycle.Record{}, err
	}
	s.history.Record(history.KindDelete, rec)
	s.refreshReminders()
	s.logger.WithField("start_date", startStr).Info("Cycle deleted")
	return rec, nil
}

// Undo reverses the last add/delete.
func (s *TrackerService) Undo() history.Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()

	outcome := s.history.UndoLast(s.ledger)
	s.refreshReminders()
	s.logger.WithField("result", string(outcome.Result)).Info("Undo processed")
	return outcome
}

// Redo re-applies the last undone action.
func (s *TrackerService) Redo() history.Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()

	outcome := s.history.RedoLast(s.ledger)
	s.refreshReminders()
	s.logger.WithField("result", string(outcome.Result)).Info("Redo processed")
	return outcome
}

// PredictNext projects the next cycle start. The clock is passed in so
// the day countdown is computed against a single fresh reading.
func (s *TrackerService) PredictNext(now time.Time) (Prediction, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := s.ledger.All()
	predicted, ok := cycle.PredictNextStart(records)
	if !ok {
		return Prediction{}, false
	}
	return Prediction{
		Date:          predicted,
		DaysUntil:     dates.DaysFromToday(predicted, now),
		AverageLength: cycle.AverageCycleLength(records),
	}, true
}

// Analytics returns the summary statistics over all recorded cycles.
func (s *TrackerService) Analytics() cycle.Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cycle.Summarize(s.ledger.All())
}

// ListCycles returns all records ascending by start date.
func (s *TrackerService) ListCycles() []cycle.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.All()
}

// ListReminders purges expired reminders against the given clock and
// returns up to limit upcoming ones.
func (s *TrackerService) ListReminders(now time.Time, limit int) []reminder.Reminder {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reminders.PurgeExpired(now)
	return s.reminders.Upcoming(limit)
}

// AddManualReminder schedules a user-entered reminder for a date.
func (s *TrackerService) AddManualReminder(dateStr, message string) error {
	when, err := dates.Parse(dateStr)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.reminders.AddManual(when, message)
	s.logger.WithField("date", dateStr).Info("Manual reminder added")
	return nil
}

// CollectDue drains all reminders due by now for delivery.
func (s *TrackerService) CollectDue(now time.Time) []reminder.Reminder {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reminders.PopDue(now)
}

// LogDaily records symptoms and mood for a date.
func (s *TrackerService) LogDaily(dateStr, symptoms, mood string) error {
	day, err := dates.Parse(dateStr)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.logs.Log(day, symptoms, mood)
	s.logger.WithField("date", dateStr).Info("Daily log recorded")
	return nil
}

// ListDailyLogs returns all daily log entries ascending by date.
func (s *TrackerService) ListDailyLogs() []dailylog.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.logs.All()
}

// HistoryDepth reports the undo/redo stack sizes.
func (s *TrackerService) HistoryDepth() (undo, redo int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.Depth()
}

// refreshReminders rebuilds the auto prediction reminder from the
// current ledger state. Callers must hold the mutex.
func (s *TrackerService) refreshReminders() {
	predicted, ok := cycle.PredictNextStart(s.ledger.All())
	s.reminders.RebuildFromPrediction(predicted, ok)
}
