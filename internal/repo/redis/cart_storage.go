package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nguyentranbao-ct/storefront/internal/cart"
	"github.com/nguyentranbao-ct/storefront/internal/models"
	goredis "github.com/redis/go-redis/v9"
)

var _ cart.Storage = (*cartStorage)(nil)

type cartStorage struct {
	client goredis.Cmdable
	ttl    time.Duration
}

// NewCartStorage stores each cart as one string value. A positive ttl expires
// carts untouched for that long; zero keeps them forever.
func NewCartStorage(client goredis.Cmdable, ttl time.Duration) cart.Storage {
	if ttl < 0 {
		ttl = 0
	}
	return &cartStorage{client: client, ttl: ttl}
}

func (s *cartStorage) Load(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get cart %s: %w", key, err)
	}
	return data, nil
}

func (s *cartStorage) Save(ctx context.Context, key string, data []byte) error {
	if err := s.client.Set(ctx, key, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("set cart %s: %w", key, err)
	}
	return nil
}

func (s *cartStorage) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("delete cart %s: %w", key, err)
	}
	return nil
}
