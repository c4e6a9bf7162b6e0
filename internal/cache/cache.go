// Package cache хранит сериализованные результаты вычислений между запросами.
package cache

import "context"

// Cache — кэш готовых ответов. Значения непрозрачны для кэша:
// движок кладёт и забирает сериализованный JSON.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte)
}
