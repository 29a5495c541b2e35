package glimpse_err

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	cerr "github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestGetExitCode(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: 0},
		{name: "plain", err: errors.New("boom"), want: 1},
		{name: "validation", err: NewValidationError("bad header"), want: 2},
		{name: "cancelled", err: NewUserCancelledError("commit"), want: 130},
		{name: "git", err: NewGitError("commit failed", errors.New("exit 1")), want: 1},
		{name: "internal", err: NewInternalError("bug", nil), want: 3},
		{name: "expected user error", err: NewExpectedError(errors.New("nothing staged")), want: 0},
		{name: "wrapped classified", err: fmt.Errorf("outer: %w", NewValidationError("x")), want: 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, GetExitCode(tt.err))
		})
	}
}

func TestClassifiedError_Error(t *testing.T) {
	t.Parallel()
	err := NewGitError("git commit failed", errors.New("lock held"), "Remove .git/index.lock")
	msg := err.Error()
	assert.Contains(t, msg, "git commit failed")
	assert.Contains(t, msg, "Cause: lock held")
	assert.Contains(t, msg, "1. Remove .git/index.lock")
	assert.True(t, errors.Is(err, errors.Unwrap(err)))
}

func TestClassify(t *testing.T) {
	t.Parallel()
	assert.Nil(t, Classify(nil, "x"))

	dep := Classify(errors.New(`exec: "git": executable file not found in $PATH`), "commit")
	assert.Equal(t, CategoryDependency, Category(dep))
	assert.Contains(t, dep.Error(), "git is required for commit")

	repo := Classify(errors.New("repository does not exist"), "install hooks")
	assert.Equal(t, CategoryGit, Category(repo))

	already := NewValidationError("x")
	assert.Same(t, already, Classify(already, "y"))
}

func TestNewExpectedError(t *testing.T) {
	t.Parallel()
	assert.Nil(t, NewExpectedError(nil))
	base := errors.New("soft")
	err := NewExpectedError(base)
	require.True(t, IsExpectedUserError(err))
	assert.ErrorIs(t, err, base)
	assert.False(t, IsExpectedUserError(base))
}

func TestExtractSummary(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "No output provided.", ExtractSummary("  ", 2))
	assert.Equal(t, "first line", ExtractSummary("\nfirst line\nsecond", 2))
	assert.Equal(t, "error: a - fatal: b", ExtractSummary("ok\nerror: a\nfatal: b\nerror: c", 2))
}

func TestPrintError_KeepsBlankLines(t *testing.T) {
	t.Parallel()
	gitOut := "line one\n\nline three after blank"
	err := cerr.WithStack(NewGitError("git error: x", errors.New(gitOut)))

	var buf bytes.Buffer
	PrintError(&buf, zaptest.NewLogger(t), "commit failed", err)
	assert.Equal(t, "❌ commit failed: git error: x\n\nCause: "+gitOut+"\n", buf.String())
}

func TestPrintError(t *testing.T) {
	t.Parallel()
	log := zaptest.NewLogger(t)

	var buf bytes.Buffer
	PrintError(&buf, log, "Commit cancelled", NewUserCancelledError("commit"))
	assert.Equal(t, "⚠️  Commit cancelled\n", buf.String())

	buf.Reset()
	PrintError(&buf, log, "Commit failed", errors.New("boom"))
	assert.Equal(t, "❌ Commit failed: boom\n", buf.String())

	buf.Reset()
	PrintError(&buf, log, "validate failed", NewExpectedError(errors.New("empty\n\nmessage")))
	assert.Equal(t, "⚠️  Notice: validate failed: empty\n\nmessage\n", buf.String())

	buf.Reset()
	PrintError(&buf, nil, "ignored", nil)
	assert.Empty(t, buf.String())
}
