package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type RedisClient struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

func NewRedisClient(addr, password string, db int, ttl time.Duration, log *zap.Logger) (*RedisClient, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	log.Info("redis connected", zap.String("addr", addr))

	return &RedisClient{
		client: rdb,
		ttl:    ttl,
		log:    log,
	}, nil
}

func (r *RedisClient) Close() error {
	return r.client.Close()
}

func trackingKey(orderID uuid.UUID) string {
	return fmt.Sprintf("tracking:%s", orderID)
}

func (r *RedisClient) GetTracking(ctx context.Context, orderID uuid.UUID) ([]byte, error) {
	b, err := r.client.Get(ctx, trackingKey(orderID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	return b, err
}

func (r *RedisClient) SetTracking(ctx context.Context, orderID uuid.UUID, payload []byte) error {
	return r.client.Set(ctx, trackingKey(orderID), payload, r.ttl).Err()
}

func (r *RedisClient) InvalidateTracking(ctx context.Context, orderID uuid.UUID) error {
	return r.client.Del(ctx, trackingKey(orderID)).Err()
}
