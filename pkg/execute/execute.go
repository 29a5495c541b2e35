// pkg/execute/execute.go

// Package execute runs external commands with structured logging and a
// telemetry span per invocation. Shell execution is not supported; callers
// pass the program and its arguments separately.
package execute

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os/exec"
	"strings"
	"time"

	"github.com/CodeMonkeyCybersecurity/glimpse/pkg/glimpse_err"
	"github.com/CodeMonkeyCybersecurity/glimpse/pkg/telemetry"
	cerr "github.com/cockroachdb/errors"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// Options describes one command invocation.
type Options struct {
	Command string
	Args    []string
	Dir     string
	Env     []string
	Stdin   io.Reader
	// Stdout and Stderr receive a live copy of the output while it is captured.
	Stdout io.Writer
	Stderr io.Writer
	// Timeout of zero means DefaultTimeout; NoTimeout disables the deadline.
	Timeout time.Duration
	// Redact keeps argument values out of logs and spans.
	Redact bool
}

// Result is the captured outcome of a command that started.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Duration time.Duration
}

// Success reports a zero exit status.
func (r *Result) Success() bool {
	return r != nil && r.ExitCode == 0
}

// Run executes the command and waits for it. A non-nil Result is returned
// whenever the process started; err is set for a non-zero exit as well as for
// failures to start.
func Run(ctx context.Context, opts Options) (*Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := otelzap.Ctx(ctx)
	cmdStr := describe(opts)

	runCtx, cancel := withTimeout(ctx, opts.Timeout)
	defer cancel()

	runCtx, span := telemetry.Start(runCtx, "execute.Run")
	defer span.End()
	span.SetAttributes(
		attribute.String("command", opts.Command),
		attribute.Int("args", len(opts.Args)),
	)

	logger.Debug("Starting execution", zap.String("command", cmdStr), zap.String("dir", opts.Dir))

	cmd := exec.CommandContext(runCtx, opts.Command, opts.Args...)
	cmd.Dir = opts.Dir
	if len(opts.Env) > 0 {
		cmd.Env = append(cmd.Environ(), opts.Env...)
	}
	cmd.Stdin = opts.Stdin
	cmd.WaitDelay = time.Second

	var stdout, stderr bytes.Buffer
	cmd.Stdout = tee(&stdout, opts.Stdout)
	cmd.Stderr = tee(&stderr, opts.Stderr)

	start := time.Now()
	err := cmd.Run()
	res := &Result{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}

	if err == nil {
		logger.Debug("Execution succeeded",
			zap.String("command", cmdStr),
			zap.Duration("duration", res.Duration))
		return res, nil
	}

	if runCtx.Err() == context.DeadlineExceeded && opts.Timeout != NoTimeout {
		res.ExitCode = -1
		span.RecordError(err)
		logger.Warn("Execution timed out", zap.String("command", cmdStr))
		return res, cerr.Wrapf(runCtx.Err(), "%s timed out after %s", opts.Command, defaultTimeout(opts.Timeout))
	}

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		span.RecordError(err)
		logger.Error("Execution could not start", zap.String("command", cmdStr), zap.Error(err))
		return nil, cerr.Wrapf(err, "failed to run %s", opts.Command)
	}

	res.ExitCode = exitErr.ExitCode()
	span.RecordError(err)
	span.SetAttributes(attribute.Int("exit_code", res.ExitCode))
	logger.Warn("Execution failed",
		zap.String("command", cmdStr),
		zap.Int("exit_code", res.ExitCode),
		zap.String("summary", glimpse_err.ExtractSummary(res.Stderr+"\n"+res.Stdout, 2)))

	return res, cerr.Wrapf(err, "%s exited with status %d", opts.Command, res.ExitCode)
}

// Output runs the command and returns its trimmed stdout.
func Output(ctx context.Context, dir, command string, args ...string) (string, error) {
	res, err := Run(ctx, Options{Command: command, Args: args, Dir: dir})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(res.Stdout), nil
}

func tee(buf *bytes.Buffer, w io.Writer) io.Writer {
	if w == nil {
		return buf
	}
	return io.MultiWriter(buf, w)
}

func describe(opts Options) string {
	if opts.Redact {
		return opts.Command + " [redacted]"
	}
	return buildCommandString(opts.Command, opts.Args...)
}
