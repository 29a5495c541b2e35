// pkg/interaction/editor.go

package interaction

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
	"mvdan.cc/sh/v3/shell"
)

// Editor edits text in an external program through a temporary file.
type Editor struct {
	command string
	// run starts the editor on path; replaced in tests.
	run func(ctx context.Context, argv []string) error
}

// NewEditor returns an Editor for command, a shell-style command line such as
// "code --wait".
func NewEditor(command string) *Editor {
	return &Editor{command: command, run: runAttached}
}

// Edit writes initial to a temporary file and opens the editor on it. ok is
// false when the user quits without saving or the editor exits non-zero.
func (e *Editor) Edit(ctx context.Context, initial string) (string, bool, error) {
	logger := otelzap.Ctx(ctx)

	argv, err := shell.Fields(e.command, nil)
	if err != nil {
		return "", false, fmt.Errorf("cannot parse editor command %q: %w", e.command, err)
	}
	if len(argv) == 0 {
		return "", false, fmt.Errorf("no editor configured")
	}

	f, err := os.CreateTemp("", "glimpse-*.txt")
	if err != nil {
		return "", false, fmt.Errorf("failed to create temp file: %w", err)
	}
	path := f.Name()
	defer os.Remove(path)

	if _, err := f.WriteString(initial); err != nil {
		_ = f.Close()
		return "", false, fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", false, fmt.Errorf("failed to close temp file: %w", err)
	}

	// backdate so that any save moves the modification time forward
	past := time.Now().Add(-time.Hour)
	if err := os.Chtimes(path, past, past); err != nil {
		return "", false, fmt.Errorf("failed to prepare temp file: %w", err)
	}
	before, err := os.Stat(path)
	if err != nil {
		return "", false, err
	}

	logger.Debug("Opening editor", zap.Strings("argv", argv))
	if err := e.run(ctx, append(argv, path)); err != nil {
		// a non-zero exit (vim :cq) abandons the edit
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			logger.Info("Editor exited non-zero, discarding edit",
				zap.String("editor", argv[0]),
				zap.Int("exit_code", exitErr.ExitCode()))
			return "", false, nil
		}
		return "", false, fmt.Errorf("editor %s failed: %w", argv[0], err)
	}

	after, err := os.Stat(path)
	if err != nil {
		return "", false, fmt.Errorf("edited file disappeared: %w", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", false, fmt.Errorf("failed to read edited file: %w", err)
	}

	if after.ModTime().Equal(before.ModTime()) && bytes.Equal(data, []byte(initial)) {
		logger.Debug("Editor closed without saving")
		return "", false, nil
	}
	return string(data), true, nil
}

// runAttached runs the editor on the process's own terminal.
func runAttached(ctx context.Context, argv []string) error {
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
