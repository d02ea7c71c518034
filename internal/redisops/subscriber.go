package redisops

import (
	"context"
	"strings"

	"github.com/redis/go-redis/v9"

	clog "prover-node-mgr/utils/log"
)

// SubscribeExpiredKeys blocks on redis keyspace expiry notifications and
// invokes handler with the node id of every expired node key. Requires
// notify-keyspace-events Ex on the redis server.
func SubscribeExpiredKeys(ctx context.Context, rdb *redis.Client, handler func(nodeID string)) {
	pubsub := rdb.PSubscribe(ctx, "__keyevent@0__:expired")
	defer pubsub.Close()
	ch := pubsub.Channel()

	clog.Debug("Subscribed to Redis expiration events...")

	for {
		select {
		case <-ctx.Done():
			clog.Info("Redis subscription cancelled")
			return
		case msg, ok := <-ch:
			if !ok {
				clog.Error("Redis channel closed")
				return
			}

			if !strings.HasPrefix(msg.Payload, nodeKeyPrefix) {
				continue
			}
			id := strings.TrimPrefix(msg.Payload, nodeKeyPrefix)
			if id == "" {
				clog.Warn("Received expiry for empty node id")
				continue
			}
			clog.Info("Node TTL expired", "node", id)
			handler(id)
		}
	}
}
