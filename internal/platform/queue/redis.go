package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"fitcontest/internal/platform/config"
)

const (
	EventWeighinRecorded = "weighin.recorded"
	EventPointsAwarded   = "points.awarded"
)

// Event is the JSON document pushed onto the activity queue.
type Event struct {
	ID         string      `json:"id"`
	Type       string      `json:"type"`
	UserID     int64       `json:"user_id"`
	ContestID  int64       `json:"contest_id"`
	OccurredAt time.Time   `json:"occurred_at"`
	Payload    interface{} `json:"payload"`
}

func NewEvent(eventType string, userID, contestID int64, payload interface{}) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		UserID:     userID,
		ContestID:  contestID,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	}
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

type RedisPublisher struct {
	client    *redis.Client
	queueName string
}

func NewRedisPublisher(client *redis.Client, queueName string) *RedisPublisher {
	return &RedisPublisher{client: client, queueName: queueName}
}

func (p *RedisPublisher) Publish(ctx context.Context, event Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	if err := p.client.RPush(ctx, p.queueName, body).Err(); err != nil {
		return fmt.Errorf("failed to push event to queue %s: %w", p.queueName, err)
	}
	return nil
}

func (p *RedisPublisher) Close() error {
	return p.client.Close()
}

// NopPublisher drops every event. Used when no Redis address is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }

func (NopPublisher) Close() error { return nil }

// Connect returns a RedisPublisher after a successful ping, or a NopPublisher when
// cfg.RedisAddr is empty.
func Connect(ctx context.Context, cfg *config.Config, logger *zap.Logger) (Publisher, error) {
	if cfg.RedisAddr == "" {
		logger.Info("REDIS_ADDR not set, activity events disabled")
		return NopPublisher{}, nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if _, err := client.Ping(ctx).Result(); err != nil {
		client.Close()
		return nil, fmt.Errorf("could not connect to Redis: %w", err)
	}
	logger.Info("Successfully connected to Redis", zap.String("addr", cfg.RedisAddr), zap.String("queue", cfg.EventsQueueName))
	return NewRedisPublisher(client, cfg.EventsQueueName), nil
}
