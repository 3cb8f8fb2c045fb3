// Package blender manages the Blender subprocess: locating the executable,
// staging generated scripts in an owned temporary directory, and running
// Blender headless with a wall-clock timeout. All real modeling work happens
// inside Blender; this package only moves scripts in and captured output out.
package blender

import (
	"errors"
	"time"

	"blendmcp/internal/script"
)

// ErrBlenderNotFound means no Blender executable could be resolved. This is a
// fatal configuration error at startup: nothing can run without it.
var ErrBlenderNotFound = errors.New("blender executable not found")

// Config controls executor construction.
type Config struct {
	// BlenderPath is an explicit executable path. Empty means probe the
	// well-known install locations and PATH.
	BlenderPath string

	// Timeout is the wall-clock budget per invocation (default 30s).
	Timeout time.Duration

	// MaxOutputBytes caps captured stdout/stderr each (default 10MB).
	MaxOutputBytes int64

	// MaxConcurrent bounds simultaneous Blender processes (default 1).
	MaxConcurrent int64

	// TempDir is the parent for the owned staging directory. Empty means
	// the OS default temp location.
	TempDir string
}

// DefaultConfig returns the reference defaults.
func DefaultConfig() Config {
	return Config{
		Timeout:        30 * time.Second,
		MaxOutputBytes: 10 * 1024 * 1024,
		MaxConcurrent:  1,
	}
}

// ExecuteOptions are per-call settings.
type ExecuteOptions struct {
	// BlendFile, when set, is opened as the document instead of starting
	// Blender with --background --factory-startup.
	BlendFile string
}

// Result is the outcome of one Blender invocation. Immutable after creation;
// failures are reported here as data, never raised to the caller.
type Result struct {
	// Success is true when the process exited with code 0.
	Success bool `json:"success"`

	// Stdout and Stderr are the captured streams (possibly truncated).
	Stdout string `json:"stdout"`
	Stderr string `json:"stderr"`

	// ReturnCode is the process exit code (-1 if the process never ran).
	ReturnCode int `json:"returncode"`

	// Timeout is true when the wall-clock budget was exceeded.
	Timeout bool `json:"timeout,omitempty"`

	// Error holds the infrastructure error message, if any.
	Error string `json:"error,omitempty"`

	// Duration is how long the invocation took.
	Duration time.Duration `json:"duration"`

	// Truncated indicates output was cut at the size cap.
	Truncated bool `json:"truncated,omitempty"`

	// Envelope is the decoded marker line from stdout, when present.
	Envelope *script.Envelope `json:"-"`
}
