package node

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateID(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{"simple", "node1", false},
		{"with dash and dot", "eu-west.7", false},
		{"with underscore", "node_7", false},
		{"empty", "", true},
		{"leading dash", "-node", true},
		{"path traversal", "../etc", true},
		{"whitespace", "node 1", true},
		{"slash", "a/b", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateID(tt.id)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDeriveName(t *testing.T) {
	assert.Equal(t, "prover-node-a1", DeriveName("prover-node", "a1"))
}

func TestLogPath(t *testing.T) {
	assert.Equal(t, "/var/log/prover-nodes/a1.log", LogPath("/var/log/prover-nodes", "a1"))
}

func TestEnsureLogFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "a1.log")

	require.NoError(t, ensureLogFile(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, logFileMode, info.Mode().Perm())
	assert.Zero(t, info.Size())
}

func TestEnsureLogFile_ReusesExisting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a1.log")
	require.NoError(t, os.WriteFile(path, []byte("prior output\n"), 0644))

	require.NoError(t, ensureLogFile(path))

	// The existing content must survive; the file is append-only from the
	// node's perspective, never truncated on re-create.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "prior output\n", string(data))
}

func TestRemoveLogFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a1.log")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

	require.NoError(t, removeLogFile(path))
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	// Removing again is a no-op.
	require.NoError(t, removeLogFile(path))
}
