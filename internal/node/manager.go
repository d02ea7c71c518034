package node

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"prover-node-mgr/internal/appctx"
	"prover-node-mgr/internal/dockerops"
	"prover-node-mgr/internal/mysqlops"
	"prover-node-mgr/internal/redisops"
	"prover-node-mgr/utils"
	clog "prover-node-mgr/utils/log"
)

const logFileMode = os.FileMode(0644)

// Manager maps node ids to containers and host log files and drives their
// lifecycle. All state lives in the docker runtime and the filesystem; MySQL
// only receives an event trail.
type Manager struct {
	deps *appctx.Dependencies
}

func NewManager(deps *appctx.Dependencies) *Manager {
	return &Manager{deps: deps}
}

func (m *Manager) containerName(id string) string {
	return DeriveName(m.deps.Config.Node.ContainerPrefix, id)
}

func (m *Manager) logPath(id string) string {
	return LogPath(m.deps.Config.Node.LogDir, id)
}

// CreateNode starts a container for id. An existing container under the
// derived name is force-removed first: re-creation is an intentional upsert,
// last write wins. After starting, a single fixed-delay liveness probe
// decides success; on failure the log tail is surfaced and the container is
// left in its exited state.
func (m *Manager) CreateNode(ctx context.Context, id string) error {
	if err := ValidateID(id); err != nil {
		return err
	}

	nodeCfg := m.deps.Config.Node
	name := m.containerName(id)
	logPath := m.logPath(id)

	if err := dockerops.EnsureImage(ctx, m.deps.DockerClient, nodeCfg.Image); err != nil {
		return err
	}

	if err := dockerops.RemoveContainer(ctx, m.deps.DockerClient, name); err != nil {
		return err
	}

	if err := ensureLogFile(logPath); err != nil {
		return err
	}

	containerID, err := dockerops.CreateContainer(ctx, m.deps.DockerClient, dockerops.RunConfig{
		Image: nodeCfg.Image,
		Name:  name,
		Env: []string{
			"NODE_ID=" + id,
			"LOG_FILE=" + nodeCfg.ContainerLogPath,
		},
		Binds: []string{logPath + ":" + nodeCfg.ContainerLogPath},
		Ports: nodeCfg.Ports,
	})
	if err != nil {
		mysqlops.RecordNodeEvent(m.deps.MySQLClient, id, containerID, "create_failed", err.Error())
		return fmt.Errorf("create error[%s]: %w", name, err)
	}

	clog.Info("Node container started", "node", id, "container", containerID[:12])
	mysqlops.RecordNodeEvent(m.deps.MySQLClient, id, containerID, "created", "")

	if ttl := nodeCfg.DefaultTTL; ttl > 0 && m.deps.RedisClient != nil {
		if err := redisops.RegisterNodeTTL(ctx, m.deps.RedisClient, id, time.Duration(ttl)*time.Second); err != nil {
			return fmt.Errorf("redis TTL register error: %w", err)
		}
	}

	return m.probe(ctx, id, name)
}

// probe waits the configured delay once and checks the container status.
// One check, no backoff, no supervision after this.
func (m *Manager) probe(ctx context.Context, id, name string) error {
	delay, err := m.deps.Config.Node.ProbeDelayDuration()
	if err != nil {
		return err
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(delay):
	}

	status, err := dockerops.GetContainerStatus(ctx, m.deps.DockerClient, name)
	if err != nil {
		return fmt.Errorf("failed to get container status: %w", err)
	}

	if status == "running" {
		clog.Info("Node is running", "node", id)
		return nil
	}

	tail, tailErr := dockerops.TailLogs(ctx, m.deps.DockerClient, name, m.deps.Config.Node.FailTailLines)
	if tailErr != nil {
		tail = fmt.Sprintf("(could not read logs: %v)", tailErr)
	}
	mysqlops.RecordNodeEvent(m.deps.MySQLClient, id, name, "start_failed", status)

	return fmt.Errorf("%w: node %s is not running (status %s), last log lines:\n%s",
		ErrStartupFailed, id, status, strings.TrimRight(tail, "\n"))
}

// ListNodes returns one entry per container under the configured prefix.
func (m *Manager) ListNodes(ctx context.Context) ([]Info, error) {
	prefix := m.deps.Config.Node.ContainerPrefix + "-"

	containers, err := dockerops.ListByPrefix(ctx, m.deps.DockerClient, prefix)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	infos := make([]Info, 0, len(containers))
	for _, c := range containers {
		name := dockerops.ContainerName(c)
		infos = append(infos, Info{
			ID:     strings.TrimPrefix(name, prefix),
			Name:   name,
			Status: c.Status,
			State:  c.State,
			Age:    utils.FormatAge(c.Created, now),
		})
	}
	return infos, nil
}

// StreamLogs follows the node's combined container output until ctx is
// cancelled. The id is not checked against existing nodes; a missing
// container surfaces as the runtime's own error.
func (m *Manager) StreamLogs(ctx context.Context, id string, w io.Writer) error {
	if err := ValidateID(id); err != nil {
		return err
	}
	return dockerops.FollowLogs(ctx, m.deps.DockerClient, m.containerName(id), w)
}

// TailNodeLogs returns the last n lines of the node's combined output.
func (m *Manager) TailNodeLogs(ctx context.Context, id string, n int) (string, error) {
	if err := ValidateID(id); err != nil {
		return "", err
	}
	return dockerops.TailLogs(ctx, m.deps.DockerClient, m.containerName(id), n)
}

// RemoveNode force-removes the node's container and deletes its host log
// file. Both steps tolerate absence; removing a never-created id is a no-op.
func (m *Manager) RemoveNode(ctx context.Context, id string) error {
	if err := ValidateID(id); err != nil {
		return err
	}

	name := m.containerName(id)
	if err := dockerops.RemoveContainer(ctx, m.deps.DockerClient, name); err != nil {
		return err
	}

	if err := removeLogFile(m.logPath(id)); err != nil {
		return err
	}

	if m.deps.RedisClient != nil {
		if err := redisops.CancelNodeTTL(ctx, m.deps.RedisClient, id); err != nil {
			clog.Warn("Failed to cancel node TTL", "node", id, "err", err)
		}
	}

	mysqlops.RecordNodeEvent(m.deps.MySQLClient, id, name, "removed", "")
	clog.Info("Node removed", "node", id)
	return nil
}

// ensureLogFile creates the log directory and the log file if missing. An
// existing file is reused as-is; the node process appends to it.
func ensureLogFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create log dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFileMode)
	if err != nil {
		return fmt.Errorf("failed to create log file %s: %w", path, err)
	}
	return f.Close()
}

func removeLogFile(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove log file %s: %w", path, err)
	}
	return nil
}
