// Package kafkastream implements platform.Stream on top of a Kafka topic fed
// by the chain gateway. Each message value is one JSON-encoded post.
package kafkastream

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/confluentinc/confluent-kafka-go/kafka"

	"github.com/jacksonkontny/goodvibes/internal/models"
	"github.com/jacksonkontny/goodvibes/internal/platform"
)

const (
	maxRetries = 5
	retryDelay = 2 * time.Second
	pollWait   = time.Second
)

type Config struct {
	Broker  string
	GroupID string
	Topic   string
}

// PostStream consumes posts from the gateway topic. Offsets reset to latest
// so a restarted bot resumes from "now" instead of replaying the backlog.
type PostStream struct {
	consumer *kafka.Consumer
	topic    string
}

func New(cfg Config) (*PostStream, error) {
	slog.Info("[KafkaStream] Initializing post stream...",
		slog.String("broker", cfg.Broker),
		slog.String("group_id", cfg.GroupID),
		slog.String("topic", cfg.Topic))

	c, err := kafka.NewConsumer(&kafka.ConfigMap{
		"bootstrap.servers":  cfg.Broker,
		"group.id":           cfg.GroupID,
		"auto.offset.reset":  "latest",
		"enable.auto.commit": true,
	})
	if err != nil {
		return nil, fmt.Errorf("[KafkaStream] failed to create consumer: %w", err)
	}

	if err := c.SubscribeTopics([]string{cfg.Topic}, nil); err != nil {
		return nil, fmt.Errorf("[KafkaStream] failed to subscribe: %w", err)
	}

	return &PostStream{consumer: c, topic: cfg.Topic}, nil
}

// Next blocks until the next well-formed post arrives or ctx is canceled.
// Malformed messages are logged and skipped; broker-level read failures are
// retried with a bounded backoff before the error is surfaced as transient.
func (s *PostStream) Next(ctx context.Context) (models.Post, error) {
	failures := 0
	for {
		select {
		case <-ctx.Done():
			slog.Warn("[KafkaStream] Context canceled, stopping stream")
			return models.Post{}, ctx.Err()
		default:
			msg, err := s.consumer.ReadMessage(pollWait)
			if err != nil {
				if kafkaErr, ok := err.(kafka.Error); ok && kafkaErr.Code() == kafka.ErrTimedOut {
					continue
				}
				failures++
				slog.Warn("[KafkaStream] Failed to read message, retrying...",
					slog.Int("attempt", failures),
					slog.Int("max_retries", maxRetries),
					slog.String("error", err.Error()))
				if failures >= maxRetries {
					return models.Post{}, fmt.Errorf("%w: reading post stream: %v", platform.ErrTransient, err)
				}
				time.Sleep(retryDelay)
				continue
			}
			failures = 0

			var post models.Post
			if err := json.Unmarshal(msg.Value, &post); err != nil {
				slog.Warn("[KafkaStream] Dropping malformed post message",
					slog.String("error", err.Error()))
				continue
			}
			return post, nil
		}
	}
}

func (s *PostStream) Close() error {
	slog.Info("[KafkaStream] Closing post stream")
	return s.consumer.Close()
}
