package store

import (
	"context"
	"encoding/json"
	"log"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Redis manages the live run registry: the latest tick state per run,
// published so out-of-process trainers can subscribe without going through
// the engine directly. The telemetry spectator stream does not read from it.
type Redis struct {
	client *redis.Client
}

// NewRedis creates a Redis client. An empty addr yields a disconnected
// Redis whose methods are no-ops.
func NewRedis(addr string) (*Redis, error) {
	if addr == "" {
		return &Redis{}, nil
	}
	opts, err := redis.ParseURL(addr)
	if err != nil {
		opts = &redis.Options{Addr: addr}
	}
	client := redis.NewClient(opts)
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}
	log.Println("store: connected to Redis")
	return &Redis{client: client}, nil
}

// Close closes the Redis connection.
func (r *Redis) Close() error {
	if r != nil && r.client != nil {
		return r.client.Close()
	}
	return nil
}

// IsConnected reports whether a real client is behind this handle.
func (r *Redis) IsConnected() bool { return r != nil && r.client != nil }

// TickSnapshot is the payload published on every tick for a run.
type TickSnapshot struct {
	Tick   int             `json:"tick"`
	Stats  json.RawMessage `json:"stats"`
}

func runChannel(runID uuid.UUID) string { return "run:" + runID.String() + ":ticks" }
func runStateKey(runID uuid.UUID) string { return "run:" + runID.String() + ":state" }

// PublishTick stores the latest snapshot and publishes it to subscribers.
func (r *Redis) PublishTick(ctx context.Context, runID uuid.UUID, snap TickSnapshot) error {
	if !r.IsConnected() {
		return nil
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, runStateKey(runID), data, 0).Err(); err != nil {
		return err
	}
	return r.client.Publish(ctx, runChannel(runID), data).Err()
}

// Subscribe returns a channel of tick snapshot payloads for a run. The
// caller must drain it and cancel ctx to stop.
func (r *Redis) Subscribe(ctx context.Context, runID uuid.UUID) (<-chan []byte, error) {
	if !r.IsConnected() {
		ch := make(chan []byte)
		close(ch)
		return ch, nil
	}
	sub := r.client.Subscribe(ctx, runChannel(runID))
	out := make(chan []byte)
	go func() {
		defer close(out)
		defer sub.Close()
		for msg := range sub.Channel() {
			select {
			case out <- []byte(msg.Payload):
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

// LatestState fetches the most recently published snapshot for a run.
func (r *Redis) LatestState(ctx context.Context, runID uuid.UUID) ([]byte, error) {
	if !r.IsConnected() {
		return nil, nil
	}
	return r.client.Get(ctx, runStateKey(runID)).Bytes()
}
