package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Redis — разделяемый кэш результатов для нескольких экземпляров сервиса.
// Ошибки обмена с Redis не фатальны: промах кэша дороже, чем отказ запроса.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

func NewRedis(addr string, ttl time.Duration, log *zap.Logger) *Redis {
	return &Redis{
		client: redis.NewClient(&redis.Options{Addr: addr}),
		ttl:    ttl,
		log:    log,
	}
}

func (c *Redis) Get(ctx context.Context, key string) ([]byte, bool) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn("redis get failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	return data, true
}

// Set пишет значение, только если ключа ещё нет: параллельные запросы
// считают один и тот же детерминированный результат, перезапись не нужна.
func (c *Redis) Set(ctx context.Context, key string, value []byte) {
	if err := c.client.SetNX(ctx, key, value, c.ttl).Err(); err != nil {
		c.log.Warn("redis set failed", zap.String("key", key), zap.Error(err))
	}
}

func (c *Redis) Close() error {
	return c.client.Close()
}
