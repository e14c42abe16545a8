package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/justcarpets/ads-monitor-api/internal/config"
)

// RedisStore é o backend Redis do cache de resultados. Qualquer erro do
// backend é tratado como cache miss para nunca derrubar a requisição.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(cfg config.Cache) *RedisStore {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	return &RedisStore{client: client}
}

// NewRedisStoreWithClient permite injetar um cliente já construído (testes)
func NewRedisStoreWithClient(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool) {
	value, err := s.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false
	}

	if err != nil {
		logrus.WithError(err).WithField("cache_key", key).Warn("Erro ao ler do Redis, tratando como cache miss")
		return nil, false
	}

	return value, true
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if err := s.client.Set(ctx, key, value, ttl).Err(); err != nil {
		logrus.WithError(err).WithField("cache_key", key).Warn("Erro ao gravar no Redis, entrada descartada")
	}
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
