// Package redis keeps the serialized registry under a single Redis key.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/vadimbarashkov/shortlinks/internal/config"
)

const pingTimeout = 5 * time.Second

type Storage struct {
	client *redis.Client
	key    string
}

// Connect opens a client for cfg and checks that the server answers.
func Connect(ctx context.Context, cfg config.Redis) (*redis.Client, error) {
	const op = "adapter.storage.redis.Connect"

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("%s: failed to ping redis: %w", op, err)
	}

	return client, nil
}

func New(client *redis.Client, key string) *Storage {
	return &Storage{
		client: client,
		key:    key,
	}
}

// Load returns the stored value, or nil if the key is not set.
func (s *Storage) Load(ctx context.Context) ([]byte, error) {
	const op = "adapter.storage.redis.Storage.Load"

	data, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: failed to get key: %w", op, err)
	}

	return data, nil
}

func (s *Storage) Save(ctx context.Context, data []byte) error {
	const op = "adapter.storage.redis.Storage.Save"

	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("%s: failed to set key: %w", op, err)
	}

	return nil
}
