package cli

import (
	"context"
	"fmt"
	"time"

	"prover-node-mgr/config"
	"prover-node-mgr/internal/appctx"
	"prover-node-mgr/internal/cleanup"
	"prover-node-mgr/internal/dockerops"
	"prover-node-mgr/internal/monitor"
	"prover-node-mgr/internal/mysqlops"
	"prover-node-mgr/internal/node"
	"prover-node-mgr/internal/redisops"
	"prover-node-mgr/internal/server"
	"prover-node-mgr/utils"
	clog "prover-node-mgr/utils/log"
)

// buildDeps loads the config and connects the external clients. The docker
// daemon is a hard prerequisite and is pinged up front, so an unreachable
// daemon fails at startup instead of inside the first lifecycle operation;
// MySQL and Redis attach only when enabled and ping in their constructors.
func (a *App) buildDeps(ctx context.Context) (*appctx.Dependencies, error) {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return nil, err
	}

	dockerClient, err := dockerops.NewDockerClient()
	if err != nil {
		return nil, err
	}

	// Client construction performs no I/O; only a real call proves the
	// daemon is there.
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if _, err := dockerClient.Ping(pingCtx); err != nil {
		return nil, fmt.Errorf("docker daemon unreachable: %w", err)
	}

	deps := &appctx.Dependencies{
		Config:       cfg,
		DockerClient: dockerClient,
	}

	if cfg.MySQL.Enabled {
		mysqlClient, err := mysqlops.MysqlConnection(&cfg.MySQL)
		if err != nil {
			return nil, err
		}
		deps.MySQLClient = mysqlClient
	}

	if cfg.Redis.Enabled {
		redisClient, err := redisops.NewRedisClient(&cfg.Redis)
		if err != nil {
			return nil, err
		}
		deps.RedisClient = redisClient
	}

	return deps, nil
}

// startBackgroundTasks launches the log purge, the status watcher, the TTL
// expiry subscriber and (when enabled) the HTTP control API, each under a
// panic-recovering restart loop.
func startBackgroundTasks(ctx context.Context, deps *appctx.Dependencies, mgr *node.Manager) {
	utils.SafeGoRoutineCtx(ctx, func() {
		cleanup.Run(ctx, deps.Config)
	})

	if deps.Config.Server.Enabled {
		utils.SafeGoRoutineCtx(ctx, func() {
			if err := server.StartHTTPServer(ctx, deps.Config.Server.Listen, mgr); err != nil {
				clog.Error("HTTP API stopped", "err", err)
			}
		})
	}

	if deps.MySQLClient != nil {
		utils.SafeGoRoutineCtx(ctx, func() {
			monitor.CheckNodeStatus(ctx, deps)
		})
	}

	if deps.RedisClient != nil {
		utils.SafeGoRoutineCtx(ctx, func() {
			redisops.SubscribeExpiredKeys(ctx, deps.RedisClient, func(nodeID string) {
				if err := mgr.RemoveNode(ctx, nodeID); err != nil {
					clog.Error("TTL removal failed", "node", nodeID, "err", err)
				}
			})
		})
	}

	if deps.Config.Cleanup.Crontab {
		if err := cleanup.EnsureCrontabEntry(&deps.Config.Cleanup, deps.Config.Node.LogDir); err != nil {
			clog.Warn("Could not install crontab entry", "err", err)
		}
	}
}
