package cleanup

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"prover-node-mgr/config"
	clog "prover-node-mgr/utils/log"
)

// PurgeOnce deletes files in logDir matching pattern whose modification
// time is older than maxAge, and returns the deleted paths. Deletion is
// best-effort: a file may be removed while its node is still writing, and
// a file that disappears mid-pass is skipped silently.
func PurgeOnce(logDir, pattern string, maxAge time.Duration, now time.Time) ([]string, error) {
	entries, err := os.ReadDir(logDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read log dir %s: %w", logDir, err)
	}

	cutoff := now.Add(-maxAge)
	var deleted []string

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		matched, err := filepath.Match(pattern, entry.Name())
		if err != nil {
			return deleted, fmt.Errorf("bad cleanup pattern %q: %w", pattern, err)
		}
		if !matched {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}

		path := filepath.Join(logDir, entry.Name())
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			clog.Error("Failed to purge log file", "path", path, "err", err)
			continue
		}
		deleted = append(deleted, path)
	}

	return deleted, nil
}

// Run purges aged log files on the configured interval until ctx is
// cancelled. Meant to run under utils.SafeGoRoutineCtx.
func Run(ctx context.Context, cfg *config.Config) {
	interval, err := cfg.Cleanup.IntervalDuration()
	if err != nil {
		clog.Error("Invalid cleanup interval, task disabled", "err", err)
		return
	}
	maxAge, err := cfg.Cleanup.MaxAgeDuration()
	if err != nil {
		clog.Error("Invalid cleanup max age, task disabled", "err", err)
		return
	}

	clog.Info("Starting log cleanup task",
		"dir", cfg.Node.LogDir, "interval", cfg.Cleanup.Interval, "max_age", cfg.Cleanup.MaxAge)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			clog.Info("Log cleanup task stopped")
			return
		case <-ticker.C:
			deleted, err := PurgeOnce(cfg.Node.LogDir, cfg.Cleanup.Pattern, maxAge, time.Now())
			if err != nil {
				clog.Error("Log purge pass failed", "err", err)
				continue
			}
			if len(deleted) > 0 {
				clog.Info("Purged aged log files", "count", len(deleted))
			}
		}
	}
}
