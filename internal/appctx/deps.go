package appctx

import (
	"database/sql"

	"github.com/docker/docker/client"
	"github.com/redis/go-redis/v9"

	"prover-node-mgr/config"
)

// Dependencies bundles the external clients wired at startup. MySQLClient
// and RedisClient are nil when the corresponding subsystem is disabled.
type Dependencies struct {
	Config       *config.Config
	DockerClient *client.Client
	RedisClient  *redis.Client
	MySQLClient  *sql.DB
}
