package cleanup

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"prover-node-mgr/config"
	clog "prover-node-mgr/utils/log"
)

// CronEntry renders the crontab line that purges aged log files outside the
// manager process: a daily find-and-delete over the log directory.
func CronEntry(cfg *config.CleanupConfig, logDir string) (string, error) {
	maxAge, err := cfg.MaxAgeDuration()
	if err != nil {
		return "", err
	}
	days := int(maxAge / (24 * time.Hour))
	if days < 1 {
		days = 1
	}

	return fmt.Sprintf("0 3 * * * find %s -name '%s' -type f -mtime +%d -delete",
		logDir, cfg.Pattern, days), nil
}

// upsertLine appends entry to the crontab text unless an identical line is
// already present. Dedup is by exact text match; changing any value in the
// entry produces a new line and leaves the old one behind.
func upsertLine(crontab, entry string) (string, bool) {
	for _, line := range strings.Split(crontab, "\n") {
		if strings.TrimSpace(line) == entry {
			return crontab, false
		}
	}

	out := strings.TrimRight(crontab, "\n")
	if out != "" {
		out += "\n"
	}
	return out + entry + "\n", true
}

// EnsureCrontabEntry installs the purge entry into the invoking user's
// crontab. Running it again with the same config is a no-op.
func EnsureCrontabEntry(cfg *config.CleanupConfig, logDir string) error {
	entry, err := CronEntry(cfg, logDir)
	if err != nil {
		return err
	}

	current, err := readCrontab()
	if err != nil {
		return err
	}

	updated, changed := upsertLine(current, entry)
	if !changed {
		clog.Debug("Crontab entry already present")
		return nil
	}

	if err := writeCrontab(updated); err != nil {
		return err
	}
	clog.Info("Crontab entry installed", "entry", entry)
	return nil
}

func readCrontab() (string, error) {
	out, err := exec.Command("crontab", "-l").Output()
	if err != nil {
		// "no crontab for <user>" exits non-zero with empty stdout.
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read crontab: %w", err)
	}
	return string(out), nil
}

func writeCrontab(content string) error {
	cmd := exec.Command("crontab", "-")
	cmd.Stdin = strings.NewReader(content)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("failed to install crontab: %s", out)
	}
	return nil
}
