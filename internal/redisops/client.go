package redisops

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"prover-node-mgr/config"
	clog "prover-node-mgr/utils/log"
)

func NewRedisClient(redisConfig *config.DBConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     redisConfig.Addr(),
		Password: redisConfig.Password,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	clog.Info("Redis connected", "addr", redisConfig.Addr())
	return rdb, nil
}
