package git

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/CodeMonkeyCybersecurity/glimpse/pkg/execute"
	"github.com/CodeMonkeyCybersecurity/glimpse/pkg/glimpse_err"
	gogit "github.com/go-git/go-git/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolateGit keeps the developer's global git config out of the tests.
func isolateGit(t *testing.T) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("GIT_CONFIG_NOSYSTEM", "1")
	t.Setenv("GIT_AUTHOR_NAME", "Glimpse Test")
	t.Setenv("GIT_AUTHOR_EMAIL", "test@example.com")
	t.Setenv("GIT_COMMITTER_NAME", "Glimpse Test")
	t.Setenv("GIT_COMMITTER_EMAIL", "test@example.com")
}

func initRepo(t *testing.T) (string, *gogit.Repository) {
	t.Helper()
	dir := t.TempDir()
	repo, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)
	return dir, repo
}

func stage(t *testing.T, repo *gogit.Repository, root, name, content string) {
	t.Helper()
	full := filepath.Join(root, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
	wt, err := repo.Worktree()
	require.NoError(t, err)
	_, err = wt.Add(name)
	require.NoError(t, err)
}

func TestOpen_FromSubdirectory(t *testing.T) {
	isolateGit(t)
	dir, _ := initRepo(t)
	sub := filepath.Join(dir, "pkg", "deep")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	r, err := Open(context.Background(), sub)
	require.NoError(t, err)

	wantRoot, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	gotRoot, err := filepath.EvalSymlinks(r.Root)
	require.NoError(t, err)
	assert.Equal(t, wantRoot, gotRoot)
	assert.Equal(t, ".git", filepath.Base(r.GitDir))
	assert.False(t, r.Bare)
}

func TestOpen_NotARepository(t *testing.T) {
	isolateGit(t)
	_, err := Open(context.Background(), t.TempDir())
	require.Error(t, err)
	assert.Equal(t, glimpse_err.CategoryGit, glimpse_err.Category(err))
	assert.Contains(t, err.Error(), "not inside a git repository")
}

func TestHooksDir(t *testing.T) {
	isolateGit(t)
	dir, repo := initRepo(t)

	r, err := Open(context.Background(), dir)
	require.NoError(t, err)
	hooks, err := r.HooksDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(r.GitDir, "hooks"), hooks)

	cfg, err := repo.Config()
	require.NoError(t, err)
	cfg.Raw.Section("core").SetOption("hooksPath", ".githooks")
	require.NoError(t, repo.SetConfig(cfg))

	r, err = Open(context.Background(), dir)
	require.NoError(t, err)
	hooks, err = r.HooksDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(r.Root, ".githooks"), hooks)
}

func TestResolveHooksPath(t *testing.T) {
	t.Setenv("HOME", "/home/dev")
	assert.Equal(t, "/repo/.githooks", resolveHooksPath(".githooks", "/repo"))
	assert.Equal(t, "/etc/hooks", resolveHooksPath("/etc/hooks/", "/repo"))
	assert.Equal(t, "/home/dev/hooks", resolveHooksPath("~/hooks", "/repo"))
}

func TestCommonDir(t *testing.T) {
	main := t.TempDir()
	wtGit := filepath.Join(main, "worktrees", "feature")
	require.NoError(t, os.MkdirAll(wtGit, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(wtGit, "commondir"), []byte("../..\n"), 0o644))

	assert.Equal(t, filepath.Clean(main), commonDir(wtGit))
	assert.Equal(t, main, commonDir(main))
}

func TestStagedFiles(t *testing.T) {
	isolateGit(t)
	dir, repo := initRepo(t)

	r, err := Open(context.Background(), dir)
	require.NoError(t, err)
	staged, err := r.StagedFiles()
	require.NoError(t, err)
	assert.Empty(t, staged)

	stage(t, repo, dir, "main.go", "package main\n")
	stage(t, repo, dir, "docs/README.md", "# hi\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "untracked.txt"), []byte("x"), 0o644))

	staged, err = r.StagedFiles()
	require.NoError(t, err)
	assert.Equal(t, []string{"docs/README.md", "main.go"}, staged)
}

func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git binary not available")
	}
}

func TestCheckGitInstalled(t *testing.T) {
	requireGit(t)
	assert.NoError(t, CheckGitInstalled(context.Background()))
}

func TestCheckGitInstalled_Missing(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	err := CheckGitInstalled(context.Background())
	require.Error(t, err)
	assert.Equal(t, glimpse_err.CategoryDependency, glimpse_err.Category(err))
}

func TestCommitter_Commit(t *testing.T) {
	requireGit(t)
	isolateGit(t)
	dir, repo := initRepo(t)
	stage(t, repo, dir, "main.go", "package main\n")

	msg := "feat(core): add entrypoint\n\nFirst body line.\n\nCloses #1\n"
	res, err := NewCommitter(dir).Commit(context.Background(), msg)
	require.NoError(t, err)
	require.True(t, res.Success, res.Stderr)
	assert.Equal(t, 0, res.ExitCode)

	head, err := repo.Head()
	require.NoError(t, err)
	commit, err := repo.CommitObject(head.Hash())
	require.NoError(t, err)
	assert.Equal(t, msg, commit.Message)
}

func TestNewCommitter_NoDeadline(t *testing.T) {
	c := NewCommitter(t.TempDir())
	assert.Equal(t, execute.NoTimeout, c.Timeout)
}

func TestCommitter_NothingStaged(t *testing.T) {
	requireGit(t)
	isolateGit(t)
	dir, _ := initRepo(t)

	res, err := NewCommitter(dir).Commit(context.Background(), "feat: nothing")
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.NotEqual(t, 0, res.ExitCode)
	assert.NotEmpty(t, res.Stdout+res.Stderr)
}

func TestCommitter_MissingBinary(t *testing.T) {
	c := NewCommitter(t.TempDir())
	c.Binary = "glimpse-no-such-git"
	res, err := c.Commit(context.Background(), "feat: x")
	assert.Error(t, err)
	assert.Nil(t, res)
}

func TestCommitter_HooksRunUnlessNoVerify(t *testing.T) {
	requireGit(t)
	isolateGit(t)
	dir, repo := initRepo(t)
	stage(t, repo, dir, "main.go", "package main\n")

	hook := filepath.Join(dir, ".git", "hooks", "commit-msg")
	require.NoError(t, os.MkdirAll(filepath.Dir(hook), 0o755))
	require.NoError(t, os.WriteFile(hook, []byte("#!/bin/sh\necho rejected by hook >&2\nexit 1\n"), 0o755))

	res, err := NewCommitter(dir).Commit(context.Background(), "feat: gated")
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Contains(t, res.Stderr, "rejected by hook")

	c := NewCommitter(dir)
	c.NoVerify = true
	res, err = c.Commit(context.Background(), "feat: gated")
	require.NoError(t, err)
	assert.True(t, res.Success, res.Stderr)
}
