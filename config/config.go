package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DBConfig holds connection settings shared by the MySQL and Redis clients.
type DBConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user,omitempty"`
	Password string `yaml:"password,omitempty"`
	Database string `yaml:"database,omitempty"`
}

// PortMapping binds a host port to a container port.
type PortMapping struct {
	HostPort      string `yaml:"host_port"`
	ContainerPort string `yaml:"container_port"`
}

// NodeConfig describes how prover node containers are named, built and run.
type NodeConfig struct {
	// Image is the tag of the image embedding the vendor CLI. Built once
	// from the embedded build context if absent.
	Image string `yaml:"image"`

	// ContainerPrefix is prepended to the node id to derive the container
	// name, the sole identity key for runtime lookups.
	ContainerPrefix string `yaml:"container_prefix"`

	// LogDir is the host directory holding one log file per node.
	LogDir string `yaml:"log_dir"`

	// ContainerLogPath is where the log file is bind-mounted inside the
	// container; the vendor process writes there.
	ContainerLogPath string `yaml:"container_log_path"`

	// ProbeDelay is how long CreateNode waits before its single liveness
	// check of the started container (e.g. "5s").
	ProbeDelay string `yaml:"probe_delay"`

	// FailTailLines is how many log lines are surfaced when the probe
	// finds the container not running.
	FailTailLines int `yaml:"fail_tail_lines"`

	// Ports optionally publishes container ports (e.g. a metrics port).
	Ports []PortMapping `yaml:"ports,omitempty"`

	// DefaultTTL, when positive, schedules automatic removal of every
	// created node after this many seconds. Requires Redis.
	DefaultTTL int `yaml:"default_ttl"`
}

// CleanupConfig controls the periodic log purge.
type CleanupConfig struct {
	// Interval between purge passes of the in-process task (e.g. "24h").
	Interval string `yaml:"interval"`

	// MaxAge after which a log file is purged regardless of node state.
	MaxAge string `yaml:"max_age"`

	// Pattern matched against log file names (filepath.Match syntax).
	Pattern string `yaml:"pattern"`

	// Crontab also upserts a crontab entry so the purge survives the
	// manager process.
	Crontab bool `yaml:"crontab"`
}

// ServerConfig controls the HTTP control API.
type ServerConfig struct {
	Enabled bool   `yaml:"enabled"`
	Listen  string `yaml:"listen"`
}

type Config struct {
	Node    NodeConfig    `yaml:"node"`
	Cleanup CleanupConfig `yaml:"cleanup"`
	Server  ServerConfig  `yaml:"server"`
	MySQL   DBConfig      `yaml:"mysql"`
	Redis   DBConfig      `yaml:"redis"`
}

const (
	DefaultImage           = "prover-node:latest"
	DefaultContainerPrefix = "prover-node"
	DefaultLogDir          = "/var/log/prover-nodes"
	DefaultContainerLog    = "/var/log/prover/node.log"
	DefaultProbeDelay      = "5s"
	DefaultFailTailLines   = 20
	DefaultCleanupInterval = "24h"
	DefaultCleanupMaxAge   = "168h" // 7 days
	DefaultCleanupPattern  = "*.log"
	DefaultListen          = ":8082"
	DefaultMySQLPort       = 3306
	DefaultRedisPort       = 6379
)

// Default returns a config with every field at its default value.
func Default() *Config {
	return &Config{
		Node: NodeConfig{
			Image:            DefaultImage,
			ContainerPrefix:  DefaultContainerPrefix,
			LogDir:           DefaultLogDir,
			ContainerLogPath: DefaultContainerLog,
			ProbeDelay:       DefaultProbeDelay,
			FailTailLines:    DefaultFailTailLines,
		},
		Cleanup: CleanupConfig{
			Interval: DefaultCleanupInterval,
			MaxAge:   DefaultCleanupMaxAge,
			Pattern:  DefaultCleanupPattern,
			Crontab:  true,
		},
		Server: ServerConfig{
			Enabled: false,
			Listen:  DefaultListen,
		},
		MySQL: DBConfig{Host: "127.0.0.1", Port: DefaultMySQLPort, User: "prover", Database: "prover_mgr"},
		Redis: DBConfig{Host: "127.0.0.1", Port: DefaultRedisPort},
	}
}

// Load reads the YAML config at path, layered over defaults. A missing
// file is not an error; the defaults are returned as-is.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ProbeDelayDuration parses the liveness probe delay as a Duration.
func (n *NodeConfig) ProbeDelayDuration() (time.Duration, error) {
	return time.ParseDuration(n.ProbeDelay)
}

// IntervalDuration parses the purge interval as a Duration.
func (c *CleanupConfig) IntervalDuration() (time.Duration, error) {
	return time.ParseDuration(c.Interval)
}

// MaxAgeDuration parses the retention window as a Duration.
func (c *CleanupConfig) MaxAgeDuration() (time.Duration, error) {
	return time.ParseDuration(c.MaxAge)
}

// Addr returns the host:port address for a DB connection.
func (d *DBConfig) Addr() string {
	return fmt.Sprintf("%s:%d", d.Host, d.Port)
}

// Validate checks fields that would otherwise fail deep inside a runtime call.
func (c *Config) Validate() error {
	if c.Node.Image == "" {
		return fmt.Errorf("node.image must not be empty")
	}
	if c.Node.ContainerPrefix == "" {
		return fmt.Errorf("node.container_prefix must not be empty")
	}
	if !filepath.IsAbs(c.Node.LogDir) {
		return fmt.Errorf("node.log_dir must be an absolute path, got %q", c.Node.LogDir)
	}
	if !filepath.IsAbs(c.Node.ContainerLogPath) {
		return fmt.Errorf("node.container_log_path must be an absolute path, got %q", c.Node.ContainerLogPath)
	}
	if _, err := c.Node.ProbeDelayDuration(); err != nil {
		return fmt.Errorf("node.probe_delay is not a valid duration: %w", err)
	}
	if d, err := c.Cleanup.IntervalDuration(); err != nil || d <= 0 {
		return fmt.Errorf("cleanup.interval must be a positive duration, got %q", c.Cleanup.Interval)
	}
	if d, err := c.Cleanup.MaxAgeDuration(); err != nil || d <= 0 {
		return fmt.Errorf("cleanup.max_age must be a positive duration, got %q", c.Cleanup.MaxAge)
	}
	if _, err := filepath.Match(c.Cleanup.Pattern, "probe.log"); err != nil {
		return fmt.Errorf("cleanup.pattern is not a valid pattern: %w", err)
	}
	return nil
}
