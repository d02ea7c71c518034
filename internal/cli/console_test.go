package cli

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prover-node-mgr/config"
	"prover-node-mgr/internal/appctx"
	"prover-node-mgr/internal/node"
)

func menuManager() *node.Manager {
	return node.NewManager(&appctx.Dependencies{Config: config.Default()})
}

func runMenuWith(t *testing.T, input string) string {
	t.Helper()
	var out strings.Builder
	err := runMenu(context.Background(), menuManager(), strings.NewReader(input), &out)
	require.NoError(t, err)
	return out.String()
}

func TestRunMenu_Exit(t *testing.T) {
	out := runMenuWith(t, "5\n")
	assert.Contains(t, out, "Prover Node Manager")
}

func TestRunMenu_InvalidOptionReprompts(t *testing.T) {
	out := runMenuWith(t, "9\nbanana\n5\n")
	assert.Equal(t, 2, strings.Count(out, "Invalid option"))
	// The menu is shown again after each invalid selection.
	assert.Equal(t, 3, strings.Count(out, "Select an option"))
}

func TestRunMenu_EmptyIDRepromptsWithoutRuntimeCall(t *testing.T) {
	// An empty id must be rejected before any runtime call; the manager
	// here has no docker client, so reaching the runtime would panic.
	for _, choice := range []string{"1", "3", "4"} {
		out := runMenuWith(t, choice+"\n\n5\n")
		assert.Contains(t, out, "Node id must not be empty.", "choice %s", choice)
	}
}

func TestRunMenu_ClosedStdinExitsCleanly(t *testing.T) {
	out := runMenuWith(t, "")
	assert.Contains(t, out, "Select an option")
}

func TestRenderNodeList(t *testing.T) {
	var out strings.Builder
	renderNodeList(&out, []node.Info{
		{Name: "prover-node-a1", Status: "Up 2 hours", Age: "2h0m"},
		{Name: "prover-node-b2", Status: "Exited (1) 5 minutes ago", Age: "5m"},
	})

	assert.Contains(t, out.String(), "AGE")
	assert.Contains(t, out.String(), "prover-node-a1")
	assert.Contains(t, out.String(), "Exited (1) 5 minutes ago")
}

func TestRenderNodeList_Empty(t *testing.T) {
	var out strings.Builder
	renderNodeList(&out, nil)
	assert.Contains(t, out.String(), "No nodes found.")
}
