// pkg/git/repository.go

// Package git locates the repository glimpse works on and runs git commit.
// Discovery and status go through go-git; the commit itself is made by the
// git binary so that the repository's hooks run.
package git

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/CodeMonkeyCybersecurity/glimpse/pkg/glimpse_err"
	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/storage/filesystem"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// Repository is an opened repository with its resolved paths.
type Repository struct {
	repo *gogit.Repository
	// Root is the working tree root, or the git dir for a bare repository.
	Root string
	// GitDir is the directory holding refs, objects and hooks.
	GitDir string
	Bare   bool
}

// Open finds the repository containing path, walking up like git does.
func Open(ctx context.Context, path string) (*Repository, error) {
	logger := otelzap.Ctx(ctx)

	if path == "" {
		path = "."
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, glimpse_err.NewFilesystemError("cannot resolve "+path, err)
	}

	repo, err := gogit.PlainOpenWithOptions(abs, &gogit.PlainOpenOptions{
		DetectDotGit:          true,
		EnableDotGitCommonDir: true,
	})
	if err != nil {
		if errors.Is(err, gogit.ErrRepositoryNotExists) {
			return nil, glimpse_err.NewGitError(
				"not inside a git repository: "+abs,
				err,
				"Run 'git init' to create one",
				"Or pass --path pointing at an existing repository",
			)
		}
		return nil, glimpse_err.NewGitError("cannot open repository at "+abs, err)
	}

	r := &Repository{repo: repo}

	if s, ok := repo.Storer.(*filesystem.Storage); ok {
		r.GitDir = commonDir(s.Filesystem().Root())
	}

	wt, err := repo.Worktree()
	switch {
	case errors.Is(err, gogit.ErrIsBareRepository):
		r.Bare = true
		r.Root = r.GitDir
	case err != nil:
		return nil, glimpse_err.NewGitError("cannot open working tree", err)
	default:
		r.Root = wt.Filesystem.Root()
	}
	if r.GitDir == "" {
		r.GitDir = filepath.Join(r.Root, ".git")
	}

	logger.Debug("Repository opened",
		zap.String("root", r.Root),
		zap.String("git_dir", r.GitDir),
		zap.Bool("bare", r.Bare))
	return r, nil
}

// HooksDir honours core.hooksPath from the repository or global config and
// falls back to <git-dir>/hooks.
func (r *Repository) HooksDir() (string, error) {
	cfg, err := r.repo.ConfigScoped(config.GlobalScope)
	if err != nil {
		return "", glimpse_err.NewGitError("cannot read git config", err)
	}

	hooksPath := strings.TrimSpace(cfg.Raw.Section("core").Option("hooksPath"))
	if hooksPath == "" {
		return filepath.Join(r.GitDir, "hooks"), nil
	}
	return resolveHooksPath(hooksPath, r.Root), nil
}

// StagedFiles lists paths with index changes, sorted.
func (r *Repository) StagedFiles() ([]string, error) {
	if r.Bare {
		return nil, nil
	}
	wt, err := r.repo.Worktree()
	if err != nil {
		return nil, glimpse_err.NewGitError("cannot open working tree", err)
	}
	status, err := wt.Status()
	if err != nil {
		return nil, glimpse_err.NewGitError("cannot read repository status", err)
	}

	var staged []string
	for path, fs := range status {
		if fs.Staging != gogit.Unmodified && fs.Staging != gogit.Untracked {
			staged = append(staged, path)
		}
	}
	sort.Strings(staged)
	return staged, nil
}

// resolveHooksPath expands ~ and makes relative paths relative to root.
func resolveHooksPath(p, root string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			p = filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	if !filepath.IsAbs(p) {
		p = filepath.Join(root, p)
	}
	return filepath.Clean(p)
}

// commonDir follows the commondir file of a linked worktree's git dir.
func commonDir(gitDir string) string {
	data, err := os.ReadFile(filepath.Join(gitDir, "commondir"))
	if err != nil {
		return gitDir
	}
	common := strings.TrimSpace(string(data))
	if common == "" {
		return gitDir
	}
	if !filepath.IsAbs(common) {
		common = filepath.Join(gitDir, common)
	}
	return filepath.Clean(common)
}
