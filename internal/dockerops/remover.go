package dockerops

import (
	"context"
	"fmt"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/client"

	clog "prover-node-mgr/utils/log"
)

// RemoveContainer forcibly removes a container by name or ID. A missing
// container is not an error; removal is idempotent.
func RemoveContainer(
	ctx context.Context,
	cli *client.Client,
	nameOrID string,
) error {
	err := cli.ContainerRemove(ctx, nameOrID, types.ContainerRemoveOptions{
		Force: true,
	})
	if client.IsErrNotFound(err) {
		clog.Debug("Container not found, nothing to remove", "container", nameOrID)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to remove container %s: %w", nameOrID, err)
	}

	clog.Info("Container removed", "container", nameOrID)
	return nil
}
