// internal/infra/telegram/tracker_handlers.go
package telegram

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"period_tracker_bot/internal/app"
	"period_tracker_bot/internal/domain/cycle"
	"period_tracker_bot/internal/domain/dates"
	"period_tracker_bot/internal/domain/history"
	"period_tracker_bot/internal/infra/config"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

// RegisterTrackerHandlers registers the bot commands for the tracking
// session. The tracker serves a single user; every command is gated on
// the configured owner ID.
func RegisterTrackerHandlers(
	b *telebot.Bot,
	tracker *app.TrackerService,
	cfg *config.AppConfig,
	baseLogger *logrus.Entry,
) {
	handle := func(command string, fn func(c telebot.Context, log *logrus.Entry) error) {
		b.Handle(command, func(c telebot.Context) error {
			handlerLogger := baseLogger.WithFields(logrus.Fields{
				"handler":   command,
				"sender_id": c.Sender().ID,
			})
			if c.Sender().ID != cfg.OwnerTelegramID {
				handlerLogger.Warn("Unauthorized access attempt")
				return c.Send("This tracker is private.")
			}
			handlerLogger.Info("Command received")
			return fn(c, handlerLogger)
		})
	}

	handle("/start", func(c telebot.Context, log *logrus.Entry) error {
		return c.Send("Hi! I track your cycle. Use /help for the list of commands.")
	})

	handle("/help", func(c telebot.Context, log *logrus.Entry) error {
		var help strings.Builder
		help.WriteString("Available commands:\n\n")
		help.WriteString("/addcycle <start> <end> — record a cycle (dates as YYYY-MM-DD)\n")
		help.WriteString("/delcycle <start> — delete the cycle starting on that date\n")
		help.WriteString("/undo — revert the last add/delete\n")
		help.WriteString("/redo — re-apply the last undone action\n")
		help.WriteString("/cycles — show cycle history\n")
		help.WriteString("/predict — predict the next period start\n")
		help.WriteString("/stats — analytics summary\n")
		help.WriteString("/reminders — show upcoming reminders\n")
		help.WriteString("/remindme <date> <message> — add a manual reminder\n")
		help.WriteString("/log <date> <symptoms> | <mood> — log symptoms and mood\n")
		help.WriteString("/logs — show daily logs\n")
		return c.Send(help.String())
	})

	handle("/addcycle", func(c telebot.Context, log *logrus.Entry) error {
		args := c.Args()
		if len(args) != 2 {
			return c.Send("Usage: /addcycle <start YYYY-MM-DD> <end YYYY-MM-DD>")
		}
		rec, err := tracker.AddCycle(args[0], args[1])
		if err != nil {
			log.WithError(err).Warn("Add cycle rejected")
			switch {
			case errors.Is(err, dates.ErrInvalidDateFormat):
				return c.Send("❌ Invalid date format. Use YYYY-MM-DD.")
			case errors.Is(err, cycle.ErrEndBeforeStart):
				return c.Send("❌ End date must not be before the start date.")
			case errors.Is(err, cycle.ErrDuplicateStart):
				return c.Send("❌ A cycle starting on that date is already recorded.")
			default:
				return c.Send(fmt.Sprintf("Something went wrong: %s", err.Error()))
			}
		}
		return c.Send(fmt.Sprintf("✅ Cycle recorded: %s -> %s\nDuration: %d days",
			dates.Format(rec.StartDate), dates.Format(rec.EndDate), rec.DurationDays))
	})

	handle("/delcycle", func(c telebot.Context, log *logrus.Entry) error {
		args := c.Args()
		if len(args) != 1 {
			return c.Send("Usage: /delcycle <start YYYY-MM-DD>")
		}
		rec, err := tracker.DeleteCycle(args[0])
		if err != nil {
			log.WithError(err).Warn("Delete cycle rejected")
			switch {
			case errors.Is(err, dates.ErrInvalidDateFormat):
				return c.Send("❌ Invalid date format. Use YYYY-MM-DD.")
			case errors.Is(err, cycle.ErrCycleNotFound):
				return c.Send("❌ No cycle starts on that date.")
			default:
				return c.Send(fmt.Sprintf("Something went wrong: %s", err.Error()))
			}
		}
		return c.Send(fmt.Sprintf("✅ Deleted cycle starting %s", dates.Format(rec.StartDate)))
	})

	handle("/undo", func(c telebot.Context, log *logrus.Entry) error {
		return c.Send(outcomeMessage(tracker.Undo(), "Undo"))
	})

	handle("/redo", func(c telebot.Context, log *logrus.Entry) error {
		return c.Send(outcomeMessage(tracker.Redo(), "Redo"))
	})

	handle("/cycles", func(c telebot.Context, log *logrus.Entry) error {
		records := tracker.ListCycles()
		if len(records) == 0 {
			return c.Send("No cycles recorded yet.")
		}
		var out strings.Builder
		out.WriteString("🩸 Cycle history:\n")
		for _, rec := range records {
			length := "N/A"
			if rec.CycleLength > 0 {
				length = fmt.Sprintf("%d", rec.CycleLength)
			}
			out.WriteString(fmt.Sprintf("%s -> %s | %d days | cycle length: %s\n",
				dates.Format(rec.StartDate), dates.Format(rec.EndDate), rec.DurationDays, length))
		}
		undoDepth, redoDepth := tracker.HistoryDepth()
		out.WriteString(fmt.Sprintf("\n%d cycle(s), %d undoable, %d redoable", len(records), undoDepth, redoDepth))
		return c.Send(out.String())
	})

	handle("/predict", func(c telebot.Context, log *logrus.Entry) error {
		pred, ok := tracker.PredictNext(time.Now())
		if !ok {
			return c.Send("Add at least one cycle to predict.")
		}
		var out strings.Builder
		out.WriteString(fmt.Sprintf("🔮 Average cycle length: %d days\n", pred.AverageLength))
		out.WriteString(fmt.Sprintf("Next predicted period start: %s\n", dates.Format(pred.Date)))
		if pred.DaysUntil >= 0 {
			out.WriteString(fmt.Sprintf("Days left until next period: %d", pred.DaysUntil))
		} else {
			out.WriteString(fmt.Sprintf("Predicted date is in the past by %d day(s).", -pred.DaysUntil))
		}
		return c.Send(out.String())
	})

	handle("/stats", func(c telebot.Context, log *logrus.Entry) error {
		s := tracker.Analytics()
		if s.Count == 0 {
			return c.Send("No cycles to analyze.")
		}
		var out strings.Builder
		out.WriteString(fmt.Sprintf("📊 Cycles recorded: %d\n", s.Count))
		out.WriteString(fmt.Sprintf("Duration (days) - Avg: %.2f, Min: %d, Max: %d\n",
			s.AvgDuration, s.MinDuration, s.MaxDuration))
		if s.HasCycleLengthData {
			out.WriteString(fmt.Sprintf("Cycle length (days) - Avg: %.2f, Min: %d, Max: %d",
				s.AvgCycleLength, s.MinCycleLength, s.MaxCycleLength))
		} else {
			out.WriteString("Cycle length data insufficient (need >=2 cycles to compute lengths).")
		}
		return c.Send(out.String())
	})

	handle("/reminders", func(c telebot.Context, log *logrus.Entry) error {
		now := time.Now()
		reminders := tracker.ListReminders(now, cfg.ReminderListLimit)
		if len(reminders) == 0 {
			return c.Send("No upcoming reminders.")
		}
		var out strings.Builder
		out.WriteString("⏰ Upcoming reminders:\n")
		for i, r := range reminders {
			out.WriteString(fmt.Sprintf("%d. %s (Date: %s, in %d day(s))\n",
				i+1, r.Message, dates.Format(r.When), dates.DaysFromToday(r.When, now)))
		}
		return c.Send(out.String())
	})

	handle("/remindme", func(c telebot.Context, log *logrus.Entry) error {
		args := c.Args()
		if len(args) < 2 {
			return c.Send("Usage: /remindme <YYYY-MM-DD> <message>")
		}
		date := args[0]
		message := strings.Join(args[1:], " ")
		if err := tracker.AddManualReminder(date, message); err != nil {
			log.WithError(err).Warn("Manual reminder rejected")
			return c.Send("❌ Invalid date format. Use YYYY-MM-DD.")
		}
		return c.Send(fmt.Sprintf("Reminder added for %s", date))
	})

	handle("/log", func(c telebot.Context, log *logrus.Entry) error {
		args := c.Args()
		if len(args) < 2 {
			return c.Send("Usage: /log <YYYY-MM-DD> <symptoms> | <mood>")
		}
		date := args[0]
		rest := strings.Join(args[1:], " ")
		symptoms, mood := rest, ""
		if idx := strings.Index(rest, "|"); idx >= 0 {
			symptoms = strings.TrimSpace(rest[:idx])
			mood = strings.TrimSpace(rest[idx+1:])
		}
		if err := tracker.LogDaily(date, symptoms, mood); err != nil {
			log.WithError(err).Warn("Daily log rejected")
			return c.Send("❌ Invalid date format. Use YYYY-MM-DD.")
		}
		return c.Send(fmt.Sprintf("✅ Logged for %s", date))
	})

	handle("/logs", func(c telebot.Context, log *logrus.Entry) error {
		entries := tracker.ListDailyLogs()
		if len(entries) == 0 {
			return c.Send("No logs yet.")
		}
		var out strings.Builder
		out.WriteString("📝 Daily logs:\n")
		for _, e := range entries {
			out.WriteString(fmt.Sprintf("%s | %s | %s\n", dates.Format(e.Date), e.Symptoms, e.Mood))
		}
		return c.Send(out.String())
	})
}

// outcomeMessage renders an undo/redo outcome for the user.
func outcomeMessage(out history.Outcome, verb string) string {
	start := dates.Format(out.Record.StartDate)
	switch out.Result {
	case history.ResultReversedAdd:
		return fmt.Sprintf("↶ %s: removed cycle starting %s", verb, start)
	case history.ResultReversedDelete:
		return fmt.Sprintf("↶ %s: restored cycle starting %s", verb, start)
	case history.ResultAlreadyMissing:
		return fmt.Sprintf("Cycle starting %s was already gone; nothing to remove.", start)
	case history.ResultAlreadyPresent:
		return fmt.Sprintf("Cycle starting %s is already recorded; nothing to restore.", start)
	case history.ResultNothingToUndo:
		return "Nothing to undo."
	default:
		return "Nothing to redo."
	}
}
