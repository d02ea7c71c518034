package mysqlops

import (
	"database/sql"

	clog "prover-node-mgr/utils/log"
)

// Expected schema:
//
//	CREATE TABLE node_events (
//	    id BIGINT AUTO_INCREMENT PRIMARY KEY,
//	    node_id VARCHAR(128) NOT NULL,
//	    container_id VARCHAR(128),
//	    action VARCHAR(32) NOT NULL,
//	    detail TEXT,
//	    created_at DATETIME NOT NULL DEFAULT NOW()
//	);
//
//	CREATE TABLE nodes (
//	    node_id VARCHAR(128) PRIMARY KEY,
//	    container_id VARCHAR(128),
//	    status VARCHAR(32),
//	    created_at DATETIME NOT NULL DEFAULT NOW(),
//	    last_check_time DATETIME,
//	    deleted_at DATETIME
//	);

// NodeRow is the last-known view of a node kept for the status watcher.
type NodeRow struct {
	NodeID      string         `db:"node_id"`
	ContainerID sql.NullString `db:"container_id"`
	Status      sql.NullString `db:"status"`
}

// RecordNodeEvent appends one lifecycle event and upserts the node's
// last-known row. The event trail is history, not authoritative state; the
// runtime and the filesystem stay the source of truth. A nil db disables
// recording entirely, and recording failures are logged but never propagate
// into the lifecycle operation that triggered them.
func RecordNodeEvent(db *sql.DB, nodeID, containerID, action, detail string) {
	if db == nil {
		return
	}

	if _, err := ExecQuery(db,
		"INSERT INTO node_events (node_id, container_id, action, detail) VALUES (?, ?, ?, ?)",
		nodeID, containerID, action, detail); err != nil {
		clog.Error("Failed to record node event", "node", nodeID, "action", action, "err", err)
		return
	}

	switch action {
	case "created":
		if _, err := ExecQuery(db, `
            INSERT INTO nodes (node_id, container_id, status, created_at, last_check_time)
            VALUES (?, ?, 'running', NOW(), NOW())
            ON DUPLICATE KEY UPDATE
                container_id = VALUES(container_id),
                status = 'running',
                deleted_at = NULL,
                last_check_time = NOW()`,
			nodeID, containerID); err != nil {
			clog.Error("Failed to upsert node row", "node", nodeID, "err", err)
		}
	case "removed":
		if _, err := ExecQuery(db,
			"UPDATE nodes SET status = 'deleted', deleted_at = NOW(), last_check_time = NOW() WHERE node_id = ?",
			nodeID); err != nil {
			clog.Error("Failed to mark node deleted", "node", nodeID, "err", err)
		}
	}
}

// ActiveNodes returns last-known rows for nodes not marked deleted.
func ActiveNodes(db *sql.DB) ([]NodeRow, error) {
	return SelectQueryRowsToStructs[NodeRow](db,
		"SELECT node_id, container_id, status FROM nodes WHERE deleted_at IS NULL")
}

// UpdateNodeStatus records a status transition observed by the watcher.
func UpdateNodeStatus(db *sql.DB, nodeID, status string) {
	if _, err := ExecQuery(db,
		"UPDATE nodes SET status = ?, last_check_time = NOW() WHERE node_id = ?",
		status, nodeID); err != nil {
		clog.Error("Failed to update node status", "node", nodeID, "status", status, "err", err)
	}
}

// MarkNodeGone marks a node whose container vanished from the runtime
// without going through RemoveNode.
func MarkNodeGone(db *sql.DB, nodeID string) {
	if _, err := ExecQuery(db,
		"UPDATE nodes SET status = 'gone', deleted_at = NOW(), last_check_time = NOW() WHERE node_id = ?",
		nodeID); err != nil {
		clog.Error("Failed to mark node gone", "node", nodeID, "err", err)
	}
}
