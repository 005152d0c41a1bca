package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"recipe-planner/internal/app"
	"recipe-planner/internal/config"
	"recipe-planner/internal/database"
	"recipe-planner/internal/logging"
	"recipe-planner/internal/telegram"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	maintenanceInterval = 24 * time.Hour
	metricsRetention    = 90
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "telegram-bot: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load Configuration
	cfg, err := config.Load(os.Getenv("RECIPE_PLANNER_CONFIG"))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.TelegramBotToken == "" {
		return errors.New("TELEGRAM_BOT_TOKEN environment variable not set")
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	// 2. Open the database and wire the application
	db, err := database.NewDB(cfg.DatabasePath, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	a, err := app.NewApp(cfg, db, logger, nil)
	if err != nil {
		return err
	}
	sessions := telegram.NewSessionRepository(db.SQL)

	// 3. Initialize Telegram Bot
	bot, err := telegram.NewBot(cfg, telegram.NewHandler(a, sessions, cfg, logger), logger)
	if err != nil {
		return fmt.Errorf("failed to initialize Telegram Bot: %w", err)
	}

	mux := http.NewServeMux()
	bot.RegisterHandlers(mux)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// 4. Serve until a signal arrives, then drain
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	eg, egCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		logger.Info("telegram bot server listening", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	eg.Go(func() error {
		<-egCtx.Done()
		logger.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
		bot.Wait()
		return nil
	})

	eg.Go(func() error {
		ticker := time.NewTicker(maintenanceInterval)
		defer ticker.Stop()
		for {
			maintain(egCtx, a, sessions, logger)
			select {
			case <-egCtx.Done():
				return nil
			case <-ticker.C:
			}
		}
	})

	if err := eg.Wait(); err != nil {
		return err
	}
	logger.Info("server exiting")
	return nil
}

func maintain(ctx context.Context, a *app.App, sessions *telegram.SessionRepository, logger *zap.Logger) {
	if n, err := sessions.CleanupExpired(ctx); err != nil {
		logger.Warn("failed to clean up sessions", zap.Error(err))
	} else if n > 0 {
		logger.Info("expired sessions removed", zap.Int64("count", n))
	}

	if n, err := a.PruneMetrics(metricsRetention); err != nil {
		logger.Warn("failed to prune metrics", zap.Error(err))
	} else if n > 0 {
		logger.Info("old metrics removed", zap.Int64("count", n))
	}
}
