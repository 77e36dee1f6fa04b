package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"lunchVote/internal/config"
	"lunchVote/internal/modules/realtime/application/handler"
	realtimeport "lunchVote/internal/modules/realtime/application/port"
	"lunchVote/internal/modules/realtime/application/usecase"
	"lunchVote/internal/modules/realtime/domain"
	"lunchVote/internal/modules/realtime/infrastructure"
	"lunchVote/internal/platform/broker"
	"lunchVote/internal/platform/database"
	"lunchVote/internal/server"
	"lunchVote/internal/shared/auth"
	"lunchVote/internal/shared/calendar"
	"lunchVote/internal/shared/logging"
	"lunchVote/internal/shared/middleware"
)

func main() {
	// Attempt to load variables from .env so local runs honour configuration tweaks.
	if err := godotenv.Overload(); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, ".env load warning: %v\n", err)
		}
	}
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load error: %v\n", err)
		os.Exit(1)
	}

	logFile, logger, err := setupLogging(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging setup error: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	slog.SetDefault(logger)
	slog.Info("logging initialized", slog.String("directory", cfg.Logging.Directory), slog.String("level", cfg.Logging.Level), slog.String("format", cfg.Logging.Format))

	if err := run(cfg, logger); err != nil {
		slog.Error("server exited", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(db); err != nil {
			slog.Warn("database close error", slog.Any("error", err))
		}
	}()
	if err := database.Migrate(db, server.Models()...); err != nil {
		return err
	}

	hub := infrastructure.NewHub()
	registry := infrastructure.NewHandlerRegistry()
	handler.RegisterEventStreams(registry, usecase.NewBroadcastUseCase(hub))

	// With brokers, events round-trip through Kafka so every instance relays them.
	var publisher realtimeport.EventPublisher = infrastructure.NewHubPublisher(registry)
	consumers := broker.StartKafkaConsumers(ctx, registry, cfg.Kafka.Brokers, cfg.Kafka.GroupID, domain.EventTopics(), cfg.Kafka.KafkaTopic)
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaPublisher := broker.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.KafkaTopic)
		defer func() {
			if err := kafkaPublisher.Close(); err != nil {
				slog.Warn("kafka writer close error", slog.Any("error", err))
			}
		}()
		publisher = kafkaPublisher
		slog.Info("kafka configured", slog.Any("brokers", cfg.Kafka.Brokers), slog.String("group", cfg.Kafka.GroupID), slog.String("prefix", cfg.Kafka.TopicPrefix))
	} else {
		slog.Info("no kafka brokers configured, relaying events in-process")
	}

	limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	limiter.StartCleanup(time.Minute, ctx.Done())

	e := server.New(server.Deps{
		DB:          db,
		Tokens:      auth.NewJWTManager(cfg.Security.JWTSecret, cfg.Security.AccessTTL, cfg.Security.RefreshTTL),
		Clock:       calendar.NewClock(cfg.Location()),
		Publisher:   publisher,
		Hub:         hub,
		Logger:      logger,
		BcryptCost:  cfg.Security.BcryptCost,
		AuthLimiter: limiter,
		WSBuffer:    cfg.Websocket.SendBuffer,
	})
	e.Logger.SetOutput(log.Writer())

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("http server listening", slog.String("port", cfg.Server.Port), slog.String("timeZone", cfg.TimeZone))
		if err := e.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
	}
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		slog.Warn("http shutdown error", slog.Any("error", err))
	}
	stop()
	consumers.Wait()
	return nil
}

func setupLogging(cfg config.LoggingConfig) (*os.File, *slog.Logger, error) {
	dir := cfg.Directory
	if dir == "" {
		dir = "./logs"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	fileName := filepath.Join(dir, time.Now().UTC().Format("2006-01-02")+".log")
	file, err := os.OpenFile(fileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	writer := io.MultiWriter(os.Stdout, file)
	logger := logging.New(writer, logging.Config{
		Level:     cfg.Level,
		Format:    cfg.Format,
		AddSource: true,
	})
	log.SetOutput(writer)
	log.SetFlags(0)
	log.SetPrefix("")

	return file, logger, nil
}
