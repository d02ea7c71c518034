package cleanup

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prover-node-mgr/config"
)

func touch(t *testing.T, path string, mtime time.Time) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("log\n"), 0644))
	require.NoError(t, os.Chtimes(path, mtime, mtime))
}

func TestPurgeOnce(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()

	touch(t, filepath.Join(dir, "old.log"), now.Add(-10*24*time.Hour))
	touch(t, filepath.Join(dir, "fresh.log"), now.Add(-time.Hour))
	touch(t, filepath.Join(dir, "old.txt"), now.Add(-10*24*time.Hour))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "aged.log"), 0755))

	deleted, err := PurgeOnce(dir, "*.log", 7*24*time.Hour, now)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "old.log")}, deleted)

	// Non-matching and fresh files survive, as does the directory.
	for _, name := range []string{"fresh.log", "old.txt", "aged.log"} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}
}

func TestPurgeOnce_MissingDir(t *testing.T) {
	deleted, err := PurgeOnce(filepath.Join(t.TempDir(), "nope"), "*.log", time.Hour, time.Now())
	require.NoError(t, err)
	assert.Nil(t, deleted)
}

func TestCronEntry(t *testing.T) {
	cfg := &config.CleanupConfig{MaxAge: "168h", Pattern: "*.log"}
	entry, err := CronEntry(cfg, "/var/log/prover-nodes")
	require.NoError(t, err)
	assert.Equal(t,
		"0 3 * * * find /var/log/prover-nodes -name '*.log' -type f -mtime +7 -delete",
		entry)
}

func TestCronEntry_SubDayAgeClampsToOneDay(t *testing.T) {
	cfg := &config.CleanupConfig{MaxAge: "6h", Pattern: "*.log"}
	entry, err := CronEntry(cfg, "/logs")
	require.NoError(t, err)
	assert.Contains(t, entry, "-mtime +1")
}

func TestUpsertLine(t *testing.T) {
	entry := "0 3 * * * find /logs -name '*.log' -type f -mtime +7 -delete"

	out, changed := upsertLine("", entry)
	assert.True(t, changed)
	assert.Equal(t, entry+"\n", out)

	// Second upsert of the same entry is a no-op.
	out2, changed := upsertLine(out, entry)
	assert.False(t, changed)
	assert.Equal(t, out, out2)

	// Existing unrelated lines are preserved.
	out3, changed := upsertLine("@reboot /usr/bin/foo\n", entry)
	assert.True(t, changed)
	assert.Equal(t, "@reboot /usr/bin/foo\n"+entry+"\n", out3)
}
