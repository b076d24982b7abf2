package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/Hemanth-2OOT/Care-cloud/internal/models"
	redisconn "github.com/Hemanth-2OOT/Care-cloud/internal/redis"
	setuplog "github.com/Hemanth-2OOT/Care-cloud/internal/setup/logger"
)

func main() {
	data := flag.String("d", "", "Inline JSON AnalysisRequest")
	stream := flag.String("stream", "safety-events", "Stream name")
	flag.Parse()

	if *data == "" {
		fmt.Fprintln(os.Stderr, "Usage: producer -d '<json>'")
		flag.PrintDefaults()
		os.Exit(1)
	}

	log.Logger = setuplog.New(os.Getenv("LOG_LEVEL"))

	if err := run(*data, *stream); err != nil {
		log.Error().Err(err).Msg("producer failed")
		os.Exit(1)
	}
}

func run(data, stream string) error {
	_ = godotenv.Load()

	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	ctx := context.Background()
	client, err := redisconn.ConnectRedis(ctx, addr, os.Getenv("REDIS_PASSWORD"), 3)
	if err != nil {
		return err
	}
	defer client.Close()

	var req models.AnalysisRequest
	if err := json.Unmarshal([]byte(data), &req); err != nil {
		return err
	}

	id, err := client.XAdd(ctx, &redis.XAddArgs{
		Stream: stream,
		Values: map[string]any{"payload": data},
	}).Result()
	if err != nil {
		return err
	}

	log.Info().Str("stream", stream).Str("id", id).Str("request_id", req.RequestID).Msg("published")
	return nil
}
