// pkg/git/commit.go

package git

import (
	"context"
	"time"

	"github.com/CodeMonkeyCybersecurity/glimpse/pkg/execute"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// CommitResult is what git reported for one commit attempt.
type CommitResult struct {
	Success  bool
	Stdout   string
	Stderr   string
	ExitCode int
}

// Committer creates commits in one repository.
type Committer struct {
	Dir     string
	Binary  string
	Timeout time.Duration
	// NoVerify passes --no-verify so the repository's hooks are skipped.
	NoVerify bool
}

// NewCommitter returns a Committer running git in dir. The commit has no
// deadline since it includes whatever the repository's hooks run.
func NewCommitter(dir string) *Committer {
	return &Committer{Dir: dir, Binary: "git", Timeout: execute.NoTimeout}
}

// Commit runs git commit with message as a single -m argument. A commit git
// refused is reported in the result, not as an error; err is set only when
// git could not be run at all.
func (c *Committer) Commit(ctx context.Context, message string) (*CommitResult, error) {
	logger := otelzap.Ctx(ctx)

	args := []string{"commit", "-m", message}
	if c.NoVerify {
		args = append(args, "--no-verify")
	}

	res, err := execute.Run(ctx, execute.Options{
		Command: c.Binary,
		Args:    args,
		Dir:     c.Dir,
		Timeout: c.Timeout,
		Redact:  true,
	})
	if res == nil {
		return nil, err
	}

	result := &CommitResult{
		Success:  res.Success(),
		Stdout:   res.Stdout,
		Stderr:   res.Stderr,
		ExitCode: res.ExitCode,
	}
	if !result.Success && result.Stderr == "" && err != nil {
		result.Stderr = err.Error()
	}
	if result.Success {
		logger.Info("Commit created", zap.Duration("duration", res.Duration))
	} else {
		logger.Warn("Commit rejected",
			zap.Int("exit_code", res.ExitCode),
			zap.NamedError("cause", err))
	}
	return result, nil
}
