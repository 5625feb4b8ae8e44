package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/kapehan/pos-api/internal/domain/event"
)

const publishTimeout = 2 * time.Second

// envelope is the wire format pushed to subscribers.
type envelope struct {
	Event   string `json:"event"`
	Payload any    `json:"payload"`
	At      string `json:"at"`
}

// RedisNotifier publishes order events to the per-branch Redis channel
// "branch:{id}". Publishing runs in its own goroutine with a short timeout;
// failures are logged and dropped, never surfaced to the caller.
type RedisNotifier struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisNotifier creates a notifier backed by the given Redis client.
func NewRedisNotifier(client *redis.Client, logger *zap.Logger) *RedisNotifier {
	return &RedisNotifier{client: client, logger: logger}
}

// Publish implements event.Notifier.
func (n *RedisNotifier) Publish(branchID uuid.UUID, name string, payload any) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()

		body, err := json.Marshal(envelope{
			Event:   name,
			Payload: payload,
			At:      time.Now().UTC().Format(time.RFC3339),
		})
		if err != nil {
			n.logger.Warn("failed to encode event", zap.String("event", name), zap.Error(err))
			return
		}

		channel := fmt.Sprintf("branch:%s", branchID)
		if err := n.client.Publish(ctx, channel, body).Err(); err != nil {
			n.logger.Warn("failed to publish event",
				zap.String("channel", channel),
				zap.String("event", name),
				zap.Error(err))
		}
	}()
}

var _ event.Notifier = (*RedisNotifier)(nil)
