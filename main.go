package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	tg "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"microjournal/config"
	"microjournal/logger"
	"microjournal/notify"
	"microjournal/schedule"
	"microjournal/settings"
	"microjournal/trigger"
)

// Journaling companion entry point: load settings, rebuild the notification
// schedule, and keep firing check-ins until stopped.
func main() {
	cfg, err := config.Load()
	if err != nil {
		_, _ = os.Stderr.WriteString("config error: " + err.Error() + "\n")
		os.Exit(2)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		_, _ = os.Stderr.WriteString("logger init error: " + err.Error() + "\n")
		os.Exit(2)
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Fatal("daemon failed", zap.Error(err))
	}
}

func run(cfg config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return errors.Wrapf(err, "unknown timezone %q", cfg.Timezone)
	}

	pool, err := pgxpool.New(ctx, cfg.DBConnStr)
	if err != nil {
		return errors.Wrap(err, "failed to connect to database")
	}
	defer pool.Close()

	store := settings.NewPGStore(pool, cfg.UserID)
	if err := store.EnsureSchema(ctx); err != nil {
		return err
	}

	// Seed defaults before the engine ever sees the store; the engine itself
	// never interprets "not configured".
	if _, err := store.Load(ctx); err == settings.ErrNotConfigured {
		if err := store.Save(ctx, settings.Default()); err != nil {
			return err
		}
		log.Info("seeded default notification settings")
	} else if err != nil {
		return err
	}

	bot, err := tg.NewBotAPI(cfg.BotToken)
	if err != nil {
		return errors.Wrap(err, "failed to initialize Telegram bot")
	}
	bot.Debug = false
	log.Info("authorized on Telegram", zap.String("account", bot.Self.UserName))

	notifier := notify.NewTelegram(bot, cfg.ChatID, log)
	svc := trigger.NewService(notifier, loc, log)

	registry := schedule.NewRegistry()
	policy := schedule.NewPolicy(registry, svc, log)
	gate := notify.NewChatGate(bot, cfg.ChatID)
	coord := schedule.NewCoordinator(store, policy, gate, log)

	coord.OnActivated(func(a schedule.Activated) {
		log.Info("notification fired", zap.Stringer("role", a.Role))
	})
	svc.OnFire(func(a trigger.Activation) {
		coord.HandleActivation(a.Payload)
	})

	go svc.Run(ctx)

	failed, err := coord.Start(ctx)
	switch {
	case err == schedule.ErrPermissionDenied:
		log.Warn("notifications disabled: bot cannot reach the configured chat")
	case err != nil:
		return err
	case len(failed) > 0:
		log.Warn("some reminders may not have been scheduled",
			zap.Int("failed", len(failed)))
	}

	<-ctx.Done()
	log.Info("shutting down")
	return nil
}
