package monitor

import (
	"context"
	"strings"
	"time"

	"prover-node-mgr/internal/appctx"
	"prover-node-mgr/internal/dockerops"
	"prover-node-mgr/internal/mysqlops"
	"prover-node-mgr/utils"
	clog "prover-node-mgr/utils/log"
)

const checkInterval = 10 * time.Second

// CheckNodeStatus periodically compares the runtime's view of the prover
// containers with the last-known statuses in MySQL and records transitions.
// It never acts on containers; the runtime and filesystem stay authoritative.
func CheckNodeStatus(ctx context.Context, deps *appctx.Dependencies) {
	clog.Debug("Starting node status watcher...")

	for {
		select {
		case <-ctx.Done():
			clog.Info("Node status watcher stopped")
			return
		default:
			pass(ctx, deps)

			select {
			case <-ctx.Done():
			case <-time.After(checkInterval):
			}
		}
	}
}

func pass(ctx context.Context, deps *appctx.Dependencies) {
	rows, err := mysqlops.ActiveNodes(deps.MySQLClient)
	if err != nil {
		clog.Error("Error fetching nodes from MySQL", "err", err)
		return
	}

	known := utils.ListToMap(rows,
		func(r mysqlops.NodeRow) string { return r.NodeID },
		func(r mysqlops.NodeRow) string {
			if r.Status.Valid {
				return r.Status.String
			}
			return ""
		},
	)

	prefix := deps.Config.Node.ContainerPrefix + "-"
	containers, err := dockerops.ListByPrefix(ctx, deps.DockerClient, prefix)
	if err != nil {
		clog.Error("Error listing node containers", "err", err)
		return
	}

	seen := make(map[string]bool)
	for _, c := range containers {
		nodeID := strings.TrimPrefix(dockerops.ContainerName(c), prefix)
		seen[nodeID] = true

		last, tracked := known[nodeID]
		if !tracked {
			// Created outside this manager or before MySQL was enabled;
			// the watcher only follows nodes it has rows for.
			continue
		}

		if last != c.State {
			clog.Info("Node status changed", "node", nodeID, "from", last, "to", c.State)
			mysqlops.UpdateNodeStatus(deps.MySQLClient, nodeID, c.State)
		}
	}

	for nodeID := range known {
		if !seen[nodeID] {
			clog.Info("Node container vanished from runtime", "node", nodeID)
			mysqlops.MarkNodeGone(deps.MySQLClient, nodeID)
		}
	}
}
