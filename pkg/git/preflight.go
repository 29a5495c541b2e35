// pkg/git/preflight.go
//
// Checks run before any interactive prompt so that a missing git fails fast.

package git

import (
	"context"
	"os/exec"

	"github.com/CodeMonkeyCybersecurity/glimpse/pkg/execute"
	"github.com/CodeMonkeyCybersecurity/glimpse/pkg/glimpse_err"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// CheckGitInstalled verifies the git command is available and runs.
func CheckGitInstalled(ctx context.Context) error {
	logger := otelzap.Ctx(ctx)

	gitPath, err := exec.LookPath("git")
	if err != nil {
		return glimpse_err.NewDependencyError("git", "creating commits",
			"Ubuntu/Debian: sudo apt-get install git",
			"macOS: brew install git",
			"Or visit https://git-scm.com/downloads",
		)
	}

	version, err := execute.Output(ctx, "", gitPath, "--version")
	if err != nil {
		return glimpse_err.NewGitError("git is installed at "+gitPath+" but failed to execute", err,
			"Check permissions: ls -l "+gitPath)
	}

	logger.Debug("Git is installed",
		zap.String("path", gitPath),
		zap.String("version", version))
	return nil
}
