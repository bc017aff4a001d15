package command

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"
)

// waitDelayAfterKill is the grace period for a process to exit after its
// context is done before it is forcibly killed.
const waitDelayAfterKill = 500 * time.Millisecond

// truncationSuffix is appended to output that exceeded MaxOutputBytes.
const truncationSuffix = "\n...[truncated]"

// Result is the outcome of a command that ran to completion.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Output returns the trimmed diagnostic text of the command: stderr when it
// is non-empty, stdout otherwise.
func (r Result) Output() string {
	if s := strings.TrimSpace(r.Stderr); s != "" {
		return s
	}
	return strings.TrimSpace(r.Stdout)
}

// Runner abstracts process execution for testability.
//
// A command that starts and exits with a non-zero status is not an error:
// the status is reported in Result.ExitCode. An error is returned only when
// the command could not be started or did not finish within its deadline.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (Result, error)
}

// ExecRunner implements Runner with os/exec.
type ExecRunner struct {
	cfg    Config
	logger *slog.Logger
}

// NewExecRunner creates an ExecRunner. Config defaults are applied automatically.
func NewExecRunner(cfg Config, logger *slog.Logger) *ExecRunner {
	cfg.ApplyDefaults()
	return &ExecRunner{
		cfg:    cfg,
		logger: logger.With("component", "command"),
	}
}

// Run executes name with args, bounded by the configured timeout.
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (Result, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, r.cfg.Timeout)
	defer cancel()

	cmd := exec.CommandContext(timeoutCtx, name, args...)
	cmd.WaitDelay = waitDelayAfterKill

	stdoutW := newLimitedWriter(r.cfg.MaxOutputBytes)
	stderrW := newLimitedWriter(r.cfg.MaxOutputBytes)
	cmd.Stdout = stdoutW
	cmd.Stderr = stderrW

	start := time.Now()
	runErr := cmd.Run()

	res := Result{
		Stdout: collectOutput(stdoutW),
		Stderr: collectOutput(stderrW),
	}

	if runErr != nil {
		// The caller's own deadline or cancellation takes precedence over the
		// per-command timeout.
		if err := ctx.Err(); err != nil {
			return res, fmt.Errorf("command: %s: %w", name, err)
		}
		if errors.Is(timeoutCtx.Err(), context.DeadlineExceeded) {
			return res, fmt.Errorf("command: %s: timed out after %s", name, r.cfg.Timeout)
		}
		var exitErr *exec.ExitError
		if !errors.As(runErr, &exitErr) {
			return res, fmt.Errorf("command: %s: %w", name, runErr)
		}
		res.ExitCode = exitErr.ExitCode()
	}

	r.logger.Debug("command finished",
		"command", name,
		"args", args,
		"exit_code", res.ExitCode,
		"duration", time.Since(start),
	)

	return res, nil
}

// limitedWriter is an io.Writer that discards bytes beyond a maximum limit.
type limitedWriter struct {
	buf      []byte
	max      int64
	overflow bool
}

func newLimitedWriter(max int64) *limitedWriter {
	return &limitedWriter{max: max}
}

func (w *limitedWriter) Write(p []byte) (int, error) {
	remaining := w.max - int64(len(w.buf))
	if remaining > 0 {
		n := int64(len(p))
		if n > remaining {
			n = remaining
			w.overflow = true
		}
		w.buf = append(w.buf, p[:n]...)
	} else if len(p) > 0 {
		w.overflow = true
	}
	// Always report all bytes as written so the command doesn't stall.
	return len(p), nil
}

func (w *limitedWriter) String() string {
	return string(w.buf)
}

// truncated reports whether any bytes were discarded.
func (w *limitedWriter) truncated() bool {
	return w.overflow
}

// collectOutput returns the writer's content, appending a truncation indicator
// if the output exceeded the writer's capacity.
func collectOutput(w *limitedWriter) string {
	if w.truncated() {
		return w.String() + truncationSuffix
	}
	return w.String()
}
