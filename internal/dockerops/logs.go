package dockerops

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/client"
	"github.com/docker/docker/pkg/stdcopy"
)

// FollowLogs streams the container's combined stdout/stderr to w until the
// context is cancelled or the stream ends. The multiplexed stream is demuxed
// so raw docker framing never reaches the operator's terminal.
func FollowLogs(
	ctx context.Context,
	cli *client.Client,
	nameOrID string,
	w io.Writer,
) error {
	reader, err := cli.ContainerLogs(ctx, nameOrID, types.ContainerLogsOptions{
		ShowStdout: true,
		ShowStderr: true,
		Follow:     true,
	})
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("failed to open log stream: %w", err)
	}
	defer reader.Close()

	_, err = stdcopy.StdCopy(w, w, reader)
	if err != nil && ctx.Err() == nil {
		return fmt.Errorf("log stream error: %w", err)
	}
	return nil
}

// TailLogs returns the last n lines of the container's combined output as a
// single string, for the liveness failure report.
func TailLogs(
	ctx context.Context,
	cli *client.Client,
	nameOrID string,
	n int,
) (string, error) {
	reader, err := cli.ContainerLogs(ctx, nameOrID, types.ContainerLogsOptions{
		ShowStdout: true,
		ShowStderr: true,
		Tail:       strconv.Itoa(n),
	})
	if err != nil {
		return "", fmt.Errorf("failed to read log tail: %w", err)
	}
	defer reader.Close()

	var sb strings.Builder
	if _, err := stdcopy.StdCopy(&sb, &sb, reader); err != nil {
		return "", fmt.Errorf("failed to demux log tail: %w", err)
	}
	return sb.String(), nil
}
