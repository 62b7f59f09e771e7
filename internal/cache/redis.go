// Package cache хранит JSON-снимки объектов в Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/magabrotheeeer/gym-admin/internal/config"
)

// versionTTL время жизни счётчика версий ключа. Должно быть заметно больше
// самой долгой загрузки из базы между Version и SetIfVersion.
const versionTTL = 24 * time.Hour

// ClientKey ключ карточки клиента.
func ClientKey(id string) string {
	return "client:" + id
}

func versionKey(key string) string {
	return key + ":v"
}

// Cache кеш поверх клиента Redis.
type Cache struct {
	Db *redis.Client
}

// InitServer подключается к Redis и проверяет соединение.
func InitServer(ctx context.Context, cfg config.RedisConnection) (*Cache, error) {
	const op = "cache.InitServer"
	db := redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		Username:     cfg.User,
		MaxRetries:   cfg.MaxRetries,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.Timeout,
		WriteTimeout: cfg.Timeout,
	})

	if err := db.Ping(ctx).Err(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Cache{Db: db}, nil
}

// Get читает значение по ключу в result. false означает промах.
func (c *Cache) Get(ctx context.Context, key string, result any) (bool, error) {
	const op = "cache.Get"
	val, err := c.Db.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	if err := json.Unmarshal(val, result); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return true, nil
}

// Version возвращает текущую версию ключа. Ключ без версии имеет версию 0.
func (c *Cache) Version(ctx context.Context, key string) (int64, error) {
	const op = "cache.Version"
	v, err := c.Db.Get(ctx, versionKey(key)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return v, nil
}

// SetIfVersion сохраняет value в JSON с временем жизни expiration, только если
// версия ключа всё ещё равна version. false означает, что ключ успели инвалидировать и значение устарело.
func (c *Cache) SetIfVersion(ctx context.Context, key string, value any, expiration time.Duration, version int64) (bool, error) {
	const op = "cache.SetIfVersion"
	jsonData, err := json.Marshal(value)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	vkey := versionKey(key)
	stale := false
	err = c.Db.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, vkey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != version {
			stale = true
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, jsonData, expiration)
			return nil
		})
		return err
	}, vkey)
	if errors.Is(err, redis.TxFailedErr) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return !stale, nil
}

// Invalidate удаляет ключи и увеличивает их версии, чтобы параллельная
// загрузка не записала в кеш прочитанное до изменения значение.
func (c *Cache) Invalidate(ctx context.Context, keys ...string) error {
	const op = "cache.Invalidate"
	if len(keys) == 0 {
		return nil
	}
	_, err := c.Db.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, keys...)
		for _, key := range keys {
			pipe.Incr(ctx, versionKey(key))
			pipe.Expire(ctx, versionKey(key), versionTTL)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Close закрывает соединение с Redis.
func (c *Cache) Close() error {
	return c.Db.Close()
}

// Noop кеш, который ничего не хранит. Используется, когда Redis не настроен.
type Noop struct{}

// Get всегда сообщает о промахе.
func (Noop) Get(context.Context, string, any) (bool, error) { return false, nil }

// Version всегда 0.
func (Noop) Version(context.Context, string) (int64, error) { return 0, nil }

// SetIfVersion ничего не сохраняет.
func (Noop) SetIfVersion(context.Context, string, any, time.Duration, int64) (bool, error) {
	return false, nil
}

// Invalidate ничего не делает.
func (Noop) Invalidate(context.Context, ...string) error { return nil }
