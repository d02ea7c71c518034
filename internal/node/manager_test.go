package node

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prover-node-mgr/config"
	"prover-node-mgr/internal/appctx"
	"prover-node-mgr/internal/dockerops"
)

// The manager here has no docker client: any operation that reached the
// runtime would panic, so these tests double as proof that invalid ids are
// rejected before any runtime call.
func offlineManager() *Manager {
	return NewManager(&appctx.Dependencies{Config: config.Default()})
}

func TestCreateNode_EmptyIDRejectedBeforeRuntime(t *testing.T) {
	err := offlineManager().CreateNode(context.Background(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must not be empty")
}

func TestRemoveNode_BadIDRejectedBeforeRuntime(t *testing.T) {
	err := offlineManager().RemoveNode(context.Background(), "../escape")
	require.Error(t, err)
}

func TestStreamLogs_EmptyIDRejectedBeforeRuntime(t *testing.T) {
	err := offlineManager().StreamLogs(context.Background(), "", os.Stderr)
	require.Error(t, err)
}

// TestLifecycle exercises the full create/list/recreate/remove cycle against
// a real docker daemon. It needs a prebuilt node image and is opt-in.
func TestLifecycle(t *testing.T) {
	if os.Getenv("PROVER_MGR_E2E") == "" {
		t.Skip("set PROVER_MGR_E2E=1 and provide a docker daemon to run")
	}

	cli, err := dockerops.NewDockerClient()
	require.NoError(t, err)

	cfg := config.Default()
	cfg.Node.LogDir = t.TempDir()
	cfg.Node.ContainerPrefix = "prover-test"
	cfg.Node.ProbeDelay = "1s"
	if img := os.Getenv("PROVER_MGR_E2E_IMAGE"); img != "" {
		cfg.Node.Image = img
	}

	mgr := NewManager(&appctx.Dependencies{Config: cfg, DockerClient: cli})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	id := "e2e"
	t.Cleanup(func() { _ = mgr.RemoveNode(context.Background(), id) })

	require.NoError(t, mgr.CreateNode(ctx, id))

	infos, err := mgr.ListNodes(ctx)
	require.NoError(t, err)
	require.Len(t, matching(infos, id), 1)

	// Re-creating the same id is an upsert: still exactly one container.
	require.NoError(t, mgr.CreateNode(ctx, id))
	infos, err = mgr.ListNodes(ctx)
	require.NoError(t, err)
	require.Len(t, matching(infos, id), 1)

	require.NoError(t, mgr.RemoveNode(ctx, id))
	infos, err = mgr.ListNodes(ctx)
	require.NoError(t, err)
	assert.Empty(t, matching(infos, id))

	_, err = os.Stat(LogPath(cfg.Node.LogDir, id))
	assert.True(t, os.IsNotExist(err))

	// Removing a never-created id is a no-op.
	require.NoError(t, mgr.RemoveNode(ctx, "never-created"))
}

func matching(infos []Info, id string) []Info {
	var out []Info
	for _, info := range infos {
		if strings.EqualFold(info.ID, id) {
			out = append(out, info)
		}
	}
	return out
}
