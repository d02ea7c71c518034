package dockerops

import (
	"context"
	"embed"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/client"
	"github.com/docker/docker/pkg/archive"
	"github.com/docker/docker/pkg/jsonmessage"

	clog "prover-node-mgr/utils/log"
)

//go:embed buildcontext/Dockerfile buildcontext/start-node.sh
var buildContext embed.FS

// ImageExists reports whether an image with the given tag is present locally.
func ImageExists(ctx context.Context, cli *client.Client, image string) (bool, error) {
	images, err := cli.ImageList(ctx, types.ImageListOptions{})
	if err != nil {
		return false, fmt.Errorf("failed to list images: %w", err)
	}

	for _, img := range images {
		for _, tag := range img.RepoTags {
			if tag == image {
				return true, nil
			}
		}
	}
	return false, nil
}

// EnsureImage builds the node image from the embedded build context if the
// tag is not present locally. The build runs once; subsequent calls hit the
// local image cache.
func EnsureImage(ctx context.Context, cli *client.Client, image string) error {
	exists, err := ImageExists(ctx, cli, image)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	clog.Info("Image not found locally, building", "image", image)

	ctxDir, err := writeBuildContext()
	if err != nil {
		return err
	}
	defer os.RemoveAll(ctxDir)

	tar, err := archive.TarWithOptions(ctxDir, &archive.TarOptions{})
	if err != nil {
		return fmt.Errorf("failed to create build context: %w", err)
	}

	resp, err := cli.ImageBuild(ctx, tar, types.ImageBuildOptions{
		Tags:       []string{image},
		Dockerfile: "Dockerfile",
		Remove:     true,
	})
	if err != nil {
		return fmt.Errorf("failed to build image: %w", err)
	}
	defer resp.Body.Close()

	// Build failures are reported inside the stream, not by ImageBuild itself.
	if err := jsonmessage.DisplayJSONMessagesStream(resp.Body, io.Discard, 0, false, nil); err != nil {
		return fmt.Errorf("image build failed: %w", err)
	}

	clog.Info("Image built successfully", "image", image)
	return nil
}

// writeBuildContext materializes the embedded Dockerfile and entry script
// into a temp directory usable as a docker build context.
func writeBuildContext() (string, error) {
	dir, err := os.MkdirTemp("", "prover-node-build-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp dir: %w", err)
	}

	entries, err := buildContext.ReadDir("buildcontext")
	if err != nil {
		os.RemoveAll(dir)
		return "", fmt.Errorf("failed to read embedded build context: %w", err)
	}

	for _, entry := range entries {
		data, err := buildContext.ReadFile("buildcontext/" + entry.Name())
		if err != nil {
			os.RemoveAll(dir)
			return "", fmt.Errorf("failed to read embedded %s: %w", entry.Name(), err)
		}
		if err := os.WriteFile(filepath.Join(dir, entry.Name()), data, 0755); err != nil {
			os.RemoveAll(dir)
			return "", fmt.Errorf("failed to write %s: %w", entry.Name(), err)
		}
	}

	return dir, nil
}
