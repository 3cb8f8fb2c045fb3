package blender

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"blendmcp/internal/logging"
	"blendmcp/internal/script"
)

// Executor runs generated scripts in headless Blender processes. Each call
// stages its script under a unique name in a directory owned by the executor,
// so concurrent calls never share files. A semaphore bounds how many Blender
// processes run at once.
type Executor struct {
	blenderPath string
	timeout     time.Duration
	maxOutput   int64
	tempDir     string
	sem         *semaphore.Weighted

	closeOnce sync.Once
	closeErr  error
}

// NewExecutor resolves Blender, creates the owned staging directory, and
// returns a ready executor. The caller must Close it to remove the staging
// directory.
func NewExecutor(cfg Config) (*Executor, error) {
	def := DefaultConfig()
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.MaxOutputBytes <= 0 {
		cfg.MaxOutputBytes = def.MaxOutputBytes
	}
	if cfg.MaxConcurrent <= 0 {
		cfg.MaxConcurrent = def.MaxConcurrent
	}

	blenderPath, err := Locate(cfg.BlenderPath)
	if err != nil {
		return nil, err
	}

	tempDir, err := os.MkdirTemp(cfg.TempDir, "blender_mcp_")
	if err != nil {
		return nil, fmt.Errorf("failed to create staging directory: %w", err)
	}

	logging.Exec("Executor ready: blender=%s timeout=%v staging=%s", blenderPath, cfg.Timeout, tempDir)

	return &Executor{
		blenderPath: blenderPath,
		timeout:     cfg.Timeout,
		maxOutput:   cfg.MaxOutputBytes,
		tempDir:     tempDir,
		sem:         semaphore.NewWeighted(cfg.MaxConcurrent),
	}, nil
}

// BlenderPath returns the resolved executable path.
func (e *Executor) BlenderPath() string {
	return e.blenderPath
}

// Timeout returns the per-invocation wall-clock budget.
func (e *Executor) Timeout() time.Duration {
	return e.timeout
}

// Execute stages the script to a unique file, runs Blender headless against
// it, and returns the captured outcome. Infrastructure failures (timeout,
// spawn failure, nonzero exit) are reported in the Result; the error return is
// reserved for the caller's context being cancelled before the run started.
func (e *Executor) Execute(ctx context.Context, pyScript string, opts ExecuteOptions) (*Result, error) {
	if err := e.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer e.sem.Release(1)

	scriptPath := filepath.Join(e.tempDir, fmt.Sprintf("script_%s.py", uuid.NewString()))
	if err := os.WriteFile(scriptPath, []byte(pyScript), 0o644); err != nil {
		return &Result{
			Success:    false,
			ReturnCode: -1,
			Error:      fmt.Sprintf("failed to stage script: %v", err),
		}, nil
	}
	defer os.Remove(scriptPath)

	logging.ScriptDebug("Staged script %s (%d bytes)", scriptPath, len(pyScript))

	args := make([]string, 0, 4)
	if opts.BlendFile != "" {
		args = append(args, opts.BlendFile)
	} else {
		args = append(args, "--background", "--factory-startup")
	}
	args = append(args, "--python", scriptPath)

	execCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	cmd := exec.CommandContext(execCtx, e.blenderPath, args...)
	stdout := &limitedWriter{max: e.maxOutput}
	stderr := &limitedWriter{max: e.maxOutput}
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	logging.Exec("Running blender %v", args)
	start := time.Now()
	runErr := cmd.Run()
	duration := time.Since(start)

	result := &Result{
		Stdout:    stdout.String(),
		Stderr:    stderr.String(),
		Duration:  duration,
		Truncated: stdout.truncated || stderr.truncated,
	}

	switch {
	case execCtx.Err() == context.DeadlineExceeded:
		result.ReturnCode = -1
		result.Timeout = true
		result.Error = fmt.Sprintf("blender script execution timed out after %v", e.timeout)
		logging.ExecWarn("Blender timed out after %v", e.timeout)
	case runErr == nil:
		result.Success = true
		result.ReturnCode = 0
	default:
		if exitErr, ok := runErr.(*exec.ExitError); ok {
			result.ReturnCode = exitErr.ExitCode()
			logging.ExecWarn("Blender exited with code %d", result.ReturnCode)
		} else {
			result.ReturnCode = -1
			result.Error = fmt.Sprintf("failed to run blender: %v", runErr)
			logging.ExecError("Failed to run blender: %v", runErr)
		}
	}

	if env, ok := script.ParseEnvelope(result.Stdout); ok {
		result.Envelope = env
	}

	logging.ExecDebug("Blender finished in %v (rc=%d, success=%v)", duration, result.ReturnCode, result.Success)
	return result, nil
}

// Close removes the staging directory. Safe to call more than once.
func (e *Executor) Close() error {
	e.closeOnce.Do(func() {
		e.closeErr = os.RemoveAll(e.tempDir)
	})
	return e.closeErr
}

// limitedWriter caps captured bytes so a runaway script cannot exhaust
// memory. Writes past the cap are discarded but never error, keeping the
// subprocess alive to finish on its own terms.
type limitedWriter struct {
	buf       bytes.Buffer
	max       int64
	truncated bool
}

func (w *limitedWriter) Write(p []byte) (int, error) {
	remaining := w.max - int64(w.buf.Len())
	if remaining <= 0 {
		w.truncated = true
		return len(p), nil
	}
	if int64(len(p)) > remaining {
		w.buf.Write(p[:remaining])
		w.truncated = true
		return len(p), nil
	}
	w.buf.Write(p)
	return len(p), nil
}

func (w *limitedWriter) String() string {
	return w.buf.String()
}
