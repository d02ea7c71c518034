package redisops

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const nodeKeyPrefix = "node:"

// RegisterNodeTTL schedules automatic removal of a node by setting a key
// that expires after ttl. The expiry event drives the removal handler.
func RegisterNodeTTL(ctx context.Context, rdb *redis.Client, nodeID string, ttl time.Duration) error {
	return rdb.Set(ctx, nodeKeyPrefix+nodeID, "active", ttl).Err()
}

// CancelNodeTTL drops a pending expiry, e.g. when the node is removed by
// the operator before its TTL fires.
func CancelNodeTTL(ctx context.Context, rdb *redis.Client, nodeID string) error {
	return rdb.Del(ctx, nodeKeyPrefix+nodeID).Err()
}
