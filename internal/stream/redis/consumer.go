package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/Hemanth-2OOT/Care-cloud/internal/engine"
	"github.com/Hemanth-2OOT/Care-cloud/internal/models"
)

type Consumer struct {
	client       *redis.Client
	stream       string
	groupID      string
	consumerName string
	engine       *engine.Engine
	logger       *zerolog.Logger
}

func NewConsumer(client *redis.Client, stream string, groupID string, consumerName string, eng *engine.Engine, logger *zerolog.Logger) *Consumer {
	return &Consumer{
		client:       client,
		stream:       stream,
		groupID:      groupID,
		consumerName: consumerName,
		engine:       eng,
		logger:       logger,
	}
}

func (c *Consumer) Setup(ctx context.Context) error {
	err := c.client.XGroupCreateMkStream(ctx, c.stream, c.groupID, "0").Err()
	if err != nil && err.Error() != "BUSYGROUP Consumer Group name already exists" {
		return err
	}
	return nil
}

func (c *Consumer) Start(ctx context.Context) error {
	c.logger.Info().
		Str("stream", c.stream).
		Str("group", c.groupID).
		Str("consumer", c.consumerName).
		Msg("consumer started")

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		msgs, err := c.client.XReadGroup(ctx, &redis.XReadGroupArgs{
			Group:    c.groupID,
			Consumer: c.consumerName,
			Streams:  []string{c.stream, ">"},
			Count:    1,
			Block:    2 * time.Second,
		}).Result()

		if err != nil {
			if errors.Is(err, redis.Nil) {
				// block timeout, nothing pending
				continue
			}

			if ctx.Err() != nil {
				return ctx.Err()
			}

			c.logger.Error().Err(err).Msg("failed to read from stream")
			continue
		}

		for _, msg := range msgs[0].Messages {
			c.process(ctx, msg)
		}
	}
}

func (c *Consumer) Stop() error {
	return c.client.Close()
}

func (c *Consumer) process(ctx context.Context, msg redis.XMessage) {
	c.logger.Info().Str("id", msg.ID).Msg("message received")

	payload, ok := msg.Values["payload"].(string)
	if !ok {
		c.logger.Error().Str("id", msg.ID).Msg("missing payload field")
		c.ack(ctx, msg.ID)
		return
	}

	var request models.AnalysisRequest
	if err := json.Unmarshal([]byte(payload), &request); err != nil {
		c.logger.Error().Err(err).Str("id", msg.ID).Msg("failed to decode message")
		c.ack(ctx, msg.ID) // bad message, ACK to skip it
		return
	}

	verdict, err := c.engine.Analyze(ctx, request)
	if err != nil {
		if errors.Is(err, engine.ErrEmptyContent) {
			c.logger.Error().Str("id", msg.ID).Msg("message has no content")
			c.ack(ctx, msg.ID)
			return
		}
		// ctx died mid-analysis; leave the message pending for redelivery
		c.logger.Error().Err(err).Str("id", msg.ID).Msg("analysis aborted")
		return
	}

	c.logger.Info().
		Str("id", msg.ID).
		Str("request_id", verdict.RequestID).
		Int("score", verdict.Score).
		Str("severity", string(verdict.Severity)).
		Bool("alert", verdict.AlertRequired).
		Msg("message analyzed")

	c.ack(ctx, msg.ID)
}

func (c *Consumer) ack(ctx context.Context, msgID string) {
	if err := c.client.XAck(ctx, c.stream, c.groupID, msgID).Err(); err != nil {
		c.logger.Error().Err(err).Str("id", msgID).Msg("failed to ACK message")
	}
}
