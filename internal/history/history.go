// Package history publishes accepted room actions to Redis for audit and
// replay tooling. The publisher is strictly fire-and-forget: game flow
// never waits on Redis and keeps working when it is absent.
package history

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const keyPrefix = "hokm:actions:"

// Record is one accepted, ordered action within a room.
type Record struct {
	RoomID    string         `json:"roomId"`
	Index     int            `json:"actionIndex"`
	ActorID   string         `json:"actorId,omitempty"`
	Type      string         `json:"type"`
	Payload   map[string]any `json:"payload,omitempty"`
	Timestamp int64          `json:"ts"`
}

// Publisher writes action records to a Redis list per room.
type Publisher struct {
	rdb *redis.Client
	log *logrus.Logger
}

// New connects a publisher to the Redis at addr. An empty addr returns
// nil, which every method treats as "history disabled".
func New(addr string, log *logrus.Logger) *Publisher {
	if addr == "" {
		return nil
	}
	return &Publisher{
		rdb: redis.NewClient(&redis.Options{Addr: addr}),
		log: log,
	}
}

// Publish appends the record to the room's action list.
func (p *Publisher) Publish(ctx context.Context, rec Record) error {
	if p == nil {
		return nil
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal action record: %w", err)
	}
	if err := p.rdb.RPush(ctx, keyPrefix+rec.RoomID, data).Err(); err != nil {
		return fmt.Errorf("publish action record: %w", err)
	}
	return nil
}

// PublishAsync publishes in the background with a short timeout and logs
// failures instead of surfacing them.
func (p *Publisher) PublishAsync(rec Record) {
	if p == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := p.Publish(ctx, rec); err != nil {
			p.log.WithError(err).WithFields(logrus.Fields{
				"room":   rec.RoomID,
				"action": rec.Type,
				"index":  rec.Index,
			}).Warn("failed to publish action record")
		}
	}()
}

// Close releases the underlying Redis connection.
func (p *Publisher) Close() error {
	if p == nil {
		return nil
	}
	return p.rdb.Close()
}
