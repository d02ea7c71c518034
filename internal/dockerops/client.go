package dockerops

import (
	"context"
	"fmt"

	"github.com/docker/docker/client"
)

// NewDockerClient creates a new Docker API client using environment variables.
func NewDockerClient() (*client.Client, error) {
	return client.NewClientWithOpts(
		client.FromEnv,
		client.WithAPIVersionNegotiation(),
	)
}

// GetContainerStatus returns the runtime status string (running, exited, ...)
// of the named container.
func GetContainerStatus(
	ctx context.Context,
	cli *client.Client,
	nameOrID string,
) (string, error) {

	containerJSON, err := cli.ContainerInspect(ctx, nameOrID)
	if err != nil {
		return "", fmt.Errorf("inspect error: %w", err)
	}

	return containerJSON.State.Status, nil
}
