package dockerops

import (
	"context"
	"fmt"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/client"
	"github.com/docker/go-connections/nat"

	"prover-node-mgr/config"
)

// RunConfig specifies container creation parameters for a node.
type RunConfig struct {
	Image string
	Name  string
	Env   []string
	Binds []string
	Ports []config.PortMapping
}

// BuildPortConfig translates port mappings into the SDK's exposed-port set
// and host bindings.
func BuildPortConfig(portMappings []config.PortMapping) (nat.PortSet, nat.PortMap, error) {
	exposedPorts := nat.PortSet{}
	portBindings := nat.PortMap{}

	for _, pm := range portMappings {
		if pm.ContainerPort == "" {
			return nil, nil, fmt.Errorf("container port must not be empty")
		}
		port := nat.Port(fmt.Sprintf("%s/tcp", pm.ContainerPort))
		exposedPorts[port] = struct{}{}
		portBindings[port] = []nat.PortBinding{{
			HostIP:   "0.0.0.0",
			HostPort: pm.HostPort,
		}}
	}

	return exposedPorts, portBindings, nil
}

// CreateContainer creates and starts a container for run. The container
// restarts with the daemon but is never restarted by the manager itself.
func CreateContainer(
	ctx context.Context,
	cli *client.Client,
	run RunConfig,
) (string, error) {

	exposed, bindings, err := BuildPortConfig(run.Ports)
	if err != nil {
		return "", fmt.Errorf("port config error: %w", err)
	}

	resp, err := cli.ContainerCreate(
		ctx,
		&container.Config{
			Image:        run.Image,
			Env:          run.Env,
			ExposedPorts: exposed,
		},
		&container.HostConfig{
			Binds:        run.Binds,
			PortBindings: bindings,
			RestartPolicy: container.RestartPolicy{
				Name: "unless-stopped",
			},
		},
		nil, // networkingConfig
		nil, // platform
		run.Name,
	)
	if err != nil {
		return "", fmt.Errorf("failed to create container: %w", err)
	}

	if err := cli.ContainerStart(ctx, resp.ID, types.ContainerStartOptions{}); err != nil {
		return resp.ID, fmt.Errorf("failed to start container: %w", err)
	}

	return resp.ID, nil
}
