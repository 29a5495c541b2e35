// pkg/hooks/installer.go

package hooks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/CodeMonkeyCybersecurity/glimpse/pkg/fileops"
	"github.com/CodeMonkeyCybersecurity/glimpse/pkg/glimpse_err"
	"github.com/CodeMonkeyCybersecurity/glimpse/pkg/xdg"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

const (
	// ScriptPerm is applied to every installed hook.
	ScriptPerm os.FileMode = 0755

	// BackupSuffix is appended to a foreign hook replaced under Force.
	BackupSuffix = ".glimpse-backup"
)

// Installer writes the rendered hooks into a hooks directory.
type Installer struct {
	Renderer *Renderer
	Files    *fileops.FileSystemOperations
	// Force replaces hooks that glimpse did not write, keeping a backup.
	Force bool
}

// InstallResult describes what Install changed.
type InstallResult struct {
	Dir       string
	Installed []Name
	// BackedUp maps a hook to the path its previous content was moved to.
	BackedUp map[Name]string
}

// NewInstaller builds an installer that logs through logger.
func NewInstaller(r *Renderer, logger *zap.Logger, force bool) *Installer {
	return &Installer{
		Renderer: r,
		Files:    fileops.NewFileSystemOperations(logger),
		Force:    force,
	}
}

// Install writes pre-commit and commit-msg into dir, creating it if needed.
// Both scripts are rendered and every existing hook is checked before
// anything is written.
func (i *Installer) Install(ctx context.Context, dir string) (*InstallResult, error) {
	logger := otelzap.Ctx(ctx)

	// ASSESS
	scripts, err := i.Renderer.RenderAll()
	if err != nil {
		return nil, err
	}

	var replace []Name
	for _, n := range Names() {
		path := filepath.Join(dir, string(n))
		exists, err := i.Files.Exists(ctx, path)
		if err != nil {
			return nil, glimpse_err.NewFilesystemError("cannot inspect "+path, err)
		}
		if !exists {
			continue
		}
		current, err := i.Files.ReadFile(ctx, path)
		if err != nil {
			return nil, glimpse_err.NewFilesystemError("cannot read existing hook "+path, err)
		}
		if IsManaged(current) {
			continue
		}
		if !i.Force {
			return nil, glimpse_err.NewValidationError(
				fmt.Sprintf("%s already exists and was not written by glimpse", path),
				"Re-run with --force to replace it (a "+BackupSuffix+" copy is kept)",
				"Or merge its checks into your glimpse configuration",
			)
		}
		replace = append(replace, n)
	}

	logger.Info("Installing git hooks",
		zap.String("dir", dir),
		zap.Bool("force", i.Force),
		zap.Int("foreign_hooks", len(replace)))

	// INTERVENE
	if err := os.MkdirAll(dir, xdg.DirPermStandard); err != nil {
		return nil, glimpse_err.NewFilesystemError("cannot create hooks directory "+dir, err)
	}

	res := &InstallResult{Dir: dir, BackedUp: map[Name]string{}}
	for _, n := range replace {
		path := filepath.Join(dir, string(n))
		backup := path + BackupSuffix
		if err := i.Files.MoveFile(ctx, path, backup); err != nil {
			return nil, glimpse_err.NewFilesystemError("cannot back up "+path, err)
		}
		logger.Warn("Backed up existing hook",
			zap.String("hook", string(n)),
			zap.String("backup", backup))
		res.BackedUp[n] = backup
	}

	for _, n := range Names() {
		path := filepath.Join(dir, string(n))
		if err := i.Files.WriteFile(ctx, path, scripts[n], ScriptPerm); err != nil {
			return nil, glimpse_err.NewFilesystemError(
				"cannot write "+path, err,
				"Check that you can write to "+dir,
			)
		}
		res.Installed = append(res.Installed, n)
	}

	// EVALUATE
	for _, n := range res.Installed {
		written, err := i.Files.ReadFile(ctx, filepath.Join(dir, string(n)))
		if err != nil {
			return nil, glimpse_err.NewFilesystemError("cannot verify "+string(n), err)
		}
		if !IsManaged(written) {
			return nil, glimpse_err.NewInternalError(string(n)+" was written without the glimpse marker", nil)
		}
	}

	logger.Info("Git hooks installed",
		zap.String("dir", dir),
		zap.Int("count", len(res.Installed)))
	return res, nil
}
