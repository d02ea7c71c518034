package dockerops

import (
	"context"
	"fmt"
	"strings"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/filters"
	"github.com/docker/docker/client"

	"prover-node-mgr/utils"
)

// ListByPrefix returns all containers (running or not) whose name starts
// with prefix. The docker name filter matches substrings, so results are
// re-checked against the prefix.
func ListByPrefix(
	ctx context.Context,
	cli *client.Client,
	prefix string,
) ([]types.Container, error) {

	containers, err := cli.ContainerList(ctx, types.ContainerListOptions{
		All:     true,
		Filters: filters.NewArgs(filters.Arg("name", prefix)),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list containers: %w", err)
	}

	return utils.Filter(containers, func(c types.Container) bool {
		name := ContainerName(c)
		return name != "" && strings.HasPrefix(name, prefix)
	}), nil
}

// ContainerName returns the primary name of a listed container without the
// leading slash, or "" if it has none.
func ContainerName(c types.Container) string {
	if len(c.Names) == 0 {
		return ""
	}
	return strings.TrimPrefix(c.Names[0], "/")
}
