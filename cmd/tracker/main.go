package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"period_tracker_bot/internal/app"
	"period_tracker_bot/internal/infra/config"
	idb "period_tracker_bot/internal/infra/database"
	ilogger "period_tracker_bot/internal/infra/logger"
	"period_tracker_bot/internal/infra/scheduler"
	"period_tracker_bot/internal/infra/telegram"

	"gopkg.in/telebot.v3"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// No logger yet; nothing better than stderr and a non-zero exit.
		os.Stderr.WriteString("FATAL: could not load application configuration: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := ilogger.New(cfg)
	log.WithField("environment", cfg.Environment).Info("Period tracker bot starting")

	// Database and persistence collaborators.
	db, err := idb.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		log.WithError(err).Fatal("Could not connect to database")
	}
	defer db.Close()
	if err := idb.EnsureSchema(db); err != nil {
		log.WithError(err).Fatal("Could not ensure database schema")
	}
	log.Info("Database connection established")

	cycleRepo := idb.NewPostgresCycleRepository(db)
	logRepo := idb.NewPostgresDailyLogRepository(db)

	// The tracking session: load the whole snapshot once at startup.
	tracker := app.NewTrackerService(cycleRepo, logRepo, log.WithField("component", "tracker"))
	loadCtx, cancelLoad := context.WithTimeout(context.Background(), 30*time.Second)
	if err := tracker.Load(loadCtx); err != nil {
		cancelLoad()
		log.WithError(err).Fatal("Could not load tracking session")
	}
	cancelLoad()

	// Telegram bot.
	pref := telebot.Settings{
		Token:  cfg.TelegramToken,
		Poller: &telebot.LongPoller{Timeout: 10 * time.Second},
		OnError: func(err error, c telebot.Context) {
			entry := log.WithError(err)
			if c != nil && c.Sender() != nil {
				entry = entry.WithField("sender_id", c.Sender().ID)
			}
			entry.Error("Telebot error")
		},
	}
	bot, err := telebot.NewBot(pref)
	if err != nil {
		log.WithError(err).Fatal("Could not create Telegram bot")
	}

	telegram.RegisterTrackerHandlers(bot, tracker, cfg, log.WithField("component", "handlers"))
	log.Info("Tracker command handlers registered")

	// Reminder dispatcher.
	dispatcher := scheduler.NewReminderDispatcher(
		tracker,
		telegram.NewTelebotAdapter(bot),
		cfg.OwnerTelegramID,
		log.WithField("component", "dispatcher"),
		cfg.CronSpecReminderCheck,
	)
	if err := dispatcher.Start(); err != nil {
		log.WithError(err).Fatal("Could not start reminder dispatcher")
	}

	log.Info("Application setup complete. Bot and dispatcher are running")
	go bot.Start()

	// Graceful shutdown: save the snapshot only at the session boundary.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down application...")
	dispatcher.Stop()
	bot.Stop()

	saveCtx, cancelSave := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelSave()
	if err := tracker.Save(saveCtx); err != nil {
		log.WithError(err).Error("Could not save tracking session")
	}
	log.Info("Application shut down gracefully")
}
