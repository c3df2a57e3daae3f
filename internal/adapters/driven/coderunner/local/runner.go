// Package local provides a code runner that executes snippets with the
// host's language interpreters. Code runs in a temporary directory with
// a hard timeout; output is capped so runaway programs cannot flood the
// validation result.
package local

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/Mantaka-Work/Ai-powered-learning-platform/internal/core/ports/driven"
)

// Ensure Runner implements the interface.
var _ driven.CodeRunner = (*Runner)(nil)

// Default configuration values.
const (
	DefaultTimeout   = 10 * time.Second
	DefaultPythonBin = "python3"
	DefaultNodeBin   = "node"
)

// Output caps, matching what the validation result can usefully carry.
const (
	stdoutLimit = 1000
	stderrLimit = 500
)

// interpreter describes how to run one language.
type interpreter struct {
	bin    string
	suffix string
}

// Config holds configuration for the local runner.
type Config struct {
	// Timeout is the per-run wall clock limit (default: 10s).
	Timeout time.Duration

	// PythonBin is the Python interpreter (default: python3).
	PythonBin string

	// NodeBin is the JavaScript runtime (default: node).
	NodeBin string
}

// Runner executes code snippets with local interpreters.
type Runner struct {
	timeout      time.Duration
	interpreters map[string]interpreter
}

// NewRunner creates a new local code runner.
func NewRunner(cfg Config) *Runner {
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.PythonBin == "" {
		cfg.PythonBin = DefaultPythonBin
	}
	if cfg.NodeBin == "" {
		cfg.NodeBin = DefaultNodeBin
	}

	return &Runner{
		timeout: cfg.Timeout,
		interpreters: map[string]interpreter{
			"python":     {bin: cfg.PythonBin, suffix: ".py"},
			"javascript": {bin: cfg.NodeBin, suffix: ".js"},
		},
	}
}

// Supports reports whether the runner can execute the language.
func (r *Runner) Supports(language string) bool {
	_, ok := r.interpreters[language]
	return ok
}

// Run executes the code and captures its output. Timeouts and non-zero
// exits are reported through the result, not as Go errors.
func (r *Runner) Run(ctx context.Context, code, language string) (driven.ExecutionResult, error) {
	interp, ok := r.interpreters[language]
	if !ok {
		return driven.ExecutionResult{}, fmt.Errorf("local: unsupported language %q", language)
	}

	dir, err := os.MkdirTemp("", "coderun-*")
	if err != nil {
		return driven.ExecutionResult{}, fmt.Errorf("local: creating temp directory: %w", err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "snippet"+interp.suffix)
	if err := os.WriteFile(path, []byte(code), 0600); err != nil {
		return driven.ExecutionResult{}, fmt.Errorf("local: writing snippet: %w", err)
	}

	runCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(runCtx, interp.bin, path)
	cmd.Dir = dir
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()

	result := driven.ExecutionResult{
		Stdout: clip(stdout.String(), stdoutLimit),
		Stderr: clip(stderr.String(), stderrLimit),
	}

	switch {
	case runErr == nil:
		result.Success = true
	case errors.Is(runCtx.Err(), context.DeadlineExceeded):
		result.Error = "execution timed out"
		result.ExitCode = -1
	default:
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
		} else {
			// Interpreter missing or not startable.
			return driven.ExecutionResult{}, fmt.Errorf("local: running %s: %w", interp.bin, runErr)
		}
	}

	return result, nil
}

func clip(s string, limit int) string {
	if len(s) > limit {
		return s[:limit]
	}
	return s
}
