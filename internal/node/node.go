package node

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
)

// ErrStartupFailed marks a node whose container was created and started but
// whose single liveness probe found it not running. The container is left in
// its exited state for inspection.
var ErrStartupFailed = errors.New("node startup failed")

// Info is one row of the node list view.
type Info struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status"`
	State  string `json:"state"`
	// Age counts from container creation. The Status column carries
	// docker's own "Up X" wording for time running.
	Age string `json:"age"`
}

// idPattern keeps node ids safe to use as container names and log file
// names. Docker itself enforces the same alphabet for container names.
var idPattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9_.-]*$`)

// ValidateID rejects ids that are empty or would not survive as a container
// name or a log file name. Checked before any runtime call.
func ValidateID(id string) error {
	if id == "" {
		return fmt.Errorf("node id must not be empty")
	}
	if !idPattern.MatchString(id) {
		return fmt.Errorf("node id %q contains invalid characters", id)
	}
	return nil
}

// DeriveName returns the container name for a node id. The derived name is
// the sole identity key for runtime lookups.
func DeriveName(prefix, id string) string {
	return prefix + "-" + id
}

// LogPath returns the host-side log file path for a node id.
func LogPath(logDir, id string) string {
	return filepath.Join(logDir, id+".log")
}
