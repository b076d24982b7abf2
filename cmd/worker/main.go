package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/Hemanth-2OOT/Care-cloud/internal/setup"
	setuplog "github.com/Hemanth-2OOT/Care-cloud/internal/setup/logger"
	"github.com/Hemanth-2OOT/Care-cloud/internal/stream"
	"github.com/Hemanth-2OOT/Care-cloud/internal/stream/redis"
)

func main() {
	loadErr := godotenv.Load()

	log.Logger = setuplog.New(os.Getenv("LOG_LEVEL"))
	logger := log.Logger

	if loadErr != nil {
		log.Warn().Msg("no .env file found")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg := setup.LoadConfig()
	deps, err := setup.Wire(ctx, cfg, &logger)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to wire dependencies")
	}
	defer deps.Close()

	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}

	streamCfg := &stream.Config{
		Provider: os.Getenv("STREAM_PROVIDER"),
		RedisConfig: redis.NewStreamConfig(
			redisAddr,
			os.Getenv("REDIS_PASSWORD"),
			"safety-events",
			"safety-group",
			os.Getenv("HOSTNAME"),
		),
	}

	consumer, err := stream.NewConsumer(ctx, streamCfg, deps.Engine, &logger)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create stream consumer")
	}

	if err := consumer.Setup(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to setup consumer")
	}

	go func() {
		if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error().Err(err).Msg("consumer stopped with error")
		}
	}()

	log.Info().Str("stream", "safety-events").Str("group", "safety-group").Msg("worker started")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	if err := consumer.Stop(); err != nil {
		log.Error().Err(err).Msg("consumer close failed")
	}

	log.Info().Msg("worker stopped")
}
