package db_client

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/crowdtide/payeer-gateway/internal/config"
	"github.com/redis/go-redis/v9"
)

type RedisClient struct {
	cfg config.Redis
}

func NewRedisClient(cfg config.Redis) *RedisClient {
	return &RedisClient{cfg: cfg}
}

// Connect connects to Redis and verifies the connection with a ping.
func (c *RedisClient) Connect() (*redis.Client, error) {
	db, err := strconv.Atoi(c.cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("strconv.Atoi: %w", err)
	}

	client := redis.NewClient(&redis.Options{
		Addr:     c.cfg.Addr,
		Password: c.cfg.Password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return client, nil
}
