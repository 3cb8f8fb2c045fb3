// Package config loads blendmcp configuration. Settings come from an optional
// JSON file with environment variable overrides on top; everything has a
// working default so a bare `blendmcp` with Blender on PATH just runs.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"blendmcp/internal/logging"
)

// DefaultConfigFile is the config filename looked up in the working directory
// when no --config flag is given.
const DefaultConfigFile = "blendmcp.json"

// Config holds all blendmcp configuration. This is the single source of
// truth; packages receive the values they need, never the file path.
type Config struct {
	// BlenderPath is an explicit Blender executable. Empty means probe the
	// well-known install locations and PATH.
	BlenderPath string `json:"blender_path,omitempty"`

	// TimeoutSeconds is the wall-clock budget per Blender invocation.
	TimeoutSeconds int `json:"timeout_seconds,omitempty"`

	// TempDir is the parent directory for staged scripts. Empty means the
	// OS default temp location.
	TempDir string `json:"temp_dir,omitempty"`

	// MaxOutputBytes caps captured stdout/stderr per invocation.
	MaxOutputBytes int64 `json:"max_output_bytes,omitempty"`

	// MaxConcurrent bounds simultaneous Blender processes.
	MaxConcurrent int64 `json:"max_concurrent,omitempty"`

	// StateDir is where debug logs are written when enabled.
	StateDir string `json:"state_dir,omitempty"`

	// Logging controls the category debug logger.
	Logging logging.Config `json:"logging,omitempty"`
}

// Default returns a config with all defaults applied.
func Default() *Config {
	return &Config{
		TimeoutSeconds: 30,
		MaxOutputBytes: 10 * 1024 * 1024,
		MaxConcurrent:  1,
		StateDir:       ".blendmcp",
	}
}

// Load reads configuration from path, falling back to defaults when the file
// does not exist. An empty path means DefaultConfigFile, which is optional; an
// explicit path that is missing or malformed is an error.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if path == "" {
		path = DefaultConfigFile
	}

	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
		logging.Boot("Loaded config from %s", path)
	case os.IsNotExist(err) && !explicit:
		// Optional file absent, defaults stand.
	default:
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cfg.applyDefaults()
	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyDefaults fills zero values left by a sparse config file.
func (c *Config) applyDefaults() {
	def := Default()
	if c.TimeoutSeconds == 0 {
		c.TimeoutSeconds = def.TimeoutSeconds
	}
	if c.MaxOutputBytes == 0 {
		c.MaxOutputBytes = def.MaxOutputBytes
	}
	if c.MaxConcurrent == 0 {
		c.MaxConcurrent = def.MaxConcurrent
	}
	if c.StateDir == "" {
		c.StateDir = def.StateDir
	}
}

// applyEnvOverrides layers BLENDMCP_* environment variables over the file
// values. Environment always wins.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("BLENDMCP_BLENDER_PATH"); v != "" {
		c.BlenderPath = v
	}
	if v := os.Getenv("BLENDMCP_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.TimeoutSeconds = n
		}
	}
	if v := os.Getenv("BLENDMCP_TEMP_DIR"); v != "" {
		c.TempDir = v
	}
	if v := os.Getenv("BLENDMCP_MAX_CONCURRENT"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			c.MaxConcurrent = n
		}
	}
	if v := os.Getenv("BLENDMCP_DEBUG"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Logging.DebugMode = b
		}
	}
	if v := os.Getenv("BLENDMCP_STATE_DIR"); v != "" {
		c.StateDir = v
	}
}

// Validate rejects values no component could work with.
func (c *Config) Validate() error {
	if c.TimeoutSeconds <= 0 {
		return fmt.Errorf("timeout_seconds must be positive, got %d", c.TimeoutSeconds)
	}
	if c.MaxConcurrent <= 0 {
		return fmt.Errorf("max_concurrent must be positive, got %d", c.MaxConcurrent)
	}
	if c.MaxOutputBytes <= 0 {
		return fmt.Errorf("max_output_bytes must be positive, got %d", c.MaxOutputBytes)
	}
	return nil
}
