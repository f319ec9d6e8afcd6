package cache

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

// Pinger is the part of the cache store the health probe depends on.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Store wraps the process-wide Redis client. It is opened once at startup
// and shared by all requests.
type Store struct {
	client *redis.Client
}

func Connect(url string) (*Store, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}
	slog.Info("cache client configured", "addr", opts.Addr, "db", opts.DB)
	return &Store{client: redis.NewClient(opts)}, nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *Store) Close() error {
	return s.client.Close()
}
