package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/plantracker/plantracker/internal/api"
	"github.com/plantracker/plantracker/internal/bot"
	"github.com/plantracker/plantracker/internal/cli"
	"github.com/plantracker/plantracker/internal/config"
	"github.com/plantracker/plantracker/internal/db"
	"github.com/plantracker/plantracker/internal/services"
)

func main() {
	cfg := config.Load()

	if len(os.Args) > 1 && os.Args[1] == "reset-password" {
		if len(os.Args) < 3 {
			log.Fatal("usage: plantracker reset-password <email>")
		}
		if err := cli.RunResetPasswordCommand(cfg.DBPath, os.Args[2]); err != nil {
			log.Fatalf("reset password failed: %v", err)
		}
		return
	}

	database, err := db.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatalf("database init failed: %v", err)
	}
	repositories := db.NewRepositories(database)

	var notifier services.TimerNotifier
	var telegramBot *bot.Bot
	var watcher *bot.Watcher

	if cfg.TelegramToken != "" {
		conversation := bot.NewConversation(
			repositories.Users,
			services.NewAuthService(repositories.Users),
			repositories.Activities,
		)
		telegramBot, err = bot.New(cfg.TelegramToken, conversation)
		if err != nil {
			log.Fatalf("telegram init failed: %v", err)
		}

		botNotifier := bot.NewNotifier(telegramBot.Sender(), repositories.Users)
		notifier = botNotifier
		watcher = bot.NewWatcher(repositories.Activities, botNotifier, cfg.WatcherInterval, cfg.ReminderWindow)
	} else {
		log.Print("TELEGRAM_BOT_TOKEN not set, bot and reminders disabled")
	}

	handler := api.NewHandler(database, cfg.SecretKey, cfg.TokenTTL, notifier)

	app := fiber.New(fiber.Config{
		AppName:               "PlanTracker",
		DisableStartupMessage: true,
	})
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New())
	api.RegisterRoutes(app, handler)

	if telegramBot != nil {
		telegramBot.Start()
	}
	if watcher != nil {
		if err := watcher.Start(); err != nil {
			log.Fatalf("watcher init failed: %v", err)
		}
	}

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		if watcher != nil {
			watcher.Stop()
		}
		if telegramBot != nil {
			telegramBot.Stop()
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Printf("server shutdown failed: %v", err)
		}
	}()

	log.Printf("PlanTracker listening on http://0.0.0.0:%s (db: %s)", cfg.Port, cfg.DBPath)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
