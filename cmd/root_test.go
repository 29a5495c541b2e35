package cmd

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/CodeMonkeyCybersecurity/glimpse/pkg/conventional"
	"github.com/CodeMonkeyCybersecurity/glimpse/pkg/hooks"
	gogit "github.com/go-git/go-git/v5"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func isolate(t *testing.T) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(home, ".state"))
	t.Setenv("GIT_CONFIG_NOSYSTEM", "1")
	t.Setenv("GLIMPSE_TELEMETRY", "")
	t.Setenv("NO_COLOR", "1")
}

// resetFlags returns every flag in the tree to its default so runs do not
// leak into each other.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

type outcome struct {
	code   int
	stdout string
	stderr string
}

func glimpse(t *testing.T, stdin string, args ...string) outcome {
	t.Helper()
	RegisterCommands()
	resetFlags(RootCmd)

	var stdout, stderr bytes.Buffer
	code := run(args, strings.NewReader(stdin), &stdout, &stderr)
	return outcome{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func TestVersion(t *testing.T) {
	isolate(t)
	out := glimpse(t, "", "version")
	assert.Equal(t, 0, out.code, out.stderr)
	assert.True(t, strings.HasPrefix(out.stdout, "glimpse "))
}

func TestValidate(t *testing.T) {
	isolate(t)

	t.Run("accepts argument", func(t *testing.T) {
		out := glimpse(t, "", "validate", "feat(api): add pagination")
		assert.Equal(t, 0, out.code, out.stderr)
		assert.Contains(t, out.stdout, "Valid commit message")
	})

	t.Run("rejects with reason and exit 2", func(t *testing.T) {
		out := glimpse(t, "", "validate", "added stuff")
		assert.Equal(t, 2, out.code)
		assert.Contains(t, out.stderr, "❌ validate failed: ")
		assert.Contains(t, out.stderr, conventional.RejectionText())
		assert.Contains(t, out.stderr, "Your message:\n  added stuff")
	})

	t.Run("reads stdin", func(t *testing.T) {
		out := glimpse(t, "fix: handle nil\n\nbody\n", "validate")
		assert.Equal(t, 0, out.code, out.stderr)
	})

	t.Run("merge commits pass", func(t *testing.T) {
		out := glimpse(t, "Merge branch 'dev'\n", "validate")
		assert.Equal(t, 0, out.code, out.stderr)
	})

	t.Run("reads file and skips comments", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "COMMIT_EDITMSG")
		msg := "# Please enter the commit message\n\ndocs: explain hooks\n# trailing comment\n"
		require.NoError(t, os.WriteFile(path, []byte(msg), 0o644))

		out := glimpse(t, "", "validate", "--file", path)
		assert.Equal(t, 0, out.code, out.stderr)
	})

	t.Run("empty file is left to git", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "COMMIT_EDITMSG")
		require.NoError(t, os.WriteFile(path, []byte("# only comments\n\n"), 0o644))

		out := glimpse(t, "", "validate", "--file", path)
		assert.Equal(t, 0, out.code, out.stderr)
		assert.Contains(t, out.stderr, "Notice")
		assert.Contains(t, out.stderr, "commit message is empty")
	})

	t.Run("argument and file conflict", func(t *testing.T) {
		out := glimpse(t, "", "validate", "feat: x", "--file", "nope")
		assert.Equal(t, 2, out.code)
	})

	t.Run("missing file", func(t *testing.T) {
		out := glimpse(t, "", "validate", "--file", filepath.Join(t.TempDir(), "missing"))
		assert.Equal(t, 1, out.code)
		assert.Contains(t, out.stderr, "cannot read")
	})
}

func TestUnknownFlagIsInvalidInput(t *testing.T) {
	isolate(t)
	out := glimpse(t, "", "validate", "--bogus")
	assert.Equal(t, 2, out.code)
	assert.Contains(t, out.stderr, "unknown flag")
}

func TestTypes(t *testing.T) {
	isolate(t)
	out := glimpse(t, "", "types")
	require.Equal(t, 0, out.code, out.stderr)
	for _, name := range conventional.TypeNames() {
		assert.Contains(t, out.stdout, name)
	}
}

func TestConfig(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	_, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".glimpse.yaml"),
		[]byte("hooks:\n  language: Rust\n  source_pattern: '\\.rs$'\n"), 0o644))
	t.Setenv("GLIMPSE_HOOKS_LINT_CHECK", "cargo clippy")

	out := glimpse(t, "", "config", "--path", dir)
	require.Equal(t, 0, out.code, out.stderr)

	parsed := map[string]interface{}{}
	require.NoError(t, yaml.Unmarshal([]byte(out.stdout), &parsed))
	hooksCfg, ok := parsed["hooks"].(map[string]interface{})
	require.True(t, ok, out.stdout)
	assert.Equal(t, "Rust", hooksCfg["language"])
	assert.Equal(t, `\.rs$`, hooksCfg["source_pattern"])
	assert.Equal(t, "cargo clippy", hooksCfg["lint_check"])
	assert.Equal(t, false, parsed["color"], "NO_COLOR turns color off")

	out = glimpse(t, "", "config", "path", "--path", dir)
	require.Equal(t, 0, out.code, out.stderr)
	assert.Contains(t, out.stdout, ".glimpse.yaml")
}

func TestConfig_InvalidValue(t *testing.T) {
	isolate(t)
	t.Setenv("GLIMPSE_HOOKS_SOURCE_PATTERN", "([")

	out := glimpse(t, "", "config", "--path", t.TempDir())
	assert.Equal(t, 2, out.code)
	assert.Contains(t, out.stderr, "hooks.source_pattern")
}

func TestHooks(t *testing.T) {
	isolate(t)
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git binary not available")
	}
	dir := t.TempDir()
	_, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)

	t.Run("outside a repository", func(t *testing.T) {
		out := glimpse(t, "", "hooks", "install", "--path", t.TempDir())
		assert.Equal(t, 1, out.code)
		assert.Contains(t, out.stderr, "not inside a git repository")
	})

	t.Run("install", func(t *testing.T) {
		out := glimpse(t, "", "hooks", "install", "--path", dir)
		require.Equal(t, 0, out.code, out.stderr)
		assert.Contains(t, out.stdout, "📦 Installing git hooks...")
		assert.Contains(t, out.stdout, "Git hooks installed!")
		assert.Contains(t, out.stdout, "• pre-commit:  checks format & lint")
		assert.Contains(t, out.stdout, "• commit-msg:  validates semantic commit format")
		assert.Contains(t, out.stdout, "To skip hooks: git commit --no-verify")

		for _, n := range hooks.Names() {
			data, err := os.ReadFile(filepath.Join(dir, ".git", "hooks", string(n)))
			require.NoError(t, err)
			assert.True(t, hooks.IsManaged(data))
		}
	})

	t.Run("foreign hook needs force", func(t *testing.T) {
		path := filepath.Join(dir, ".git", "hooks", "pre-commit")
		require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\nexit 0\n"), 0o755))

		out := glimpse(t, "", "hooks", "install", "--path", dir)
		assert.Equal(t, 2, out.code)
		assert.Contains(t, out.stderr, "--force")

		out = glimpse(t, "", "hooks", "install", "--path", dir, "--force")
		require.Equal(t, 0, out.code, out.stderr)
		assert.Contains(t, out.stdout, "pre-commit"+hooks.BackupSuffix)
	})

	t.Run("show", func(t *testing.T) {
		out := glimpse(t, "", "hooks", "show", "commit-msg", "--path", dir)
		require.Equal(t, 0, out.code, out.stderr)
		assert.Contains(t, out.stdout, conventional.HeaderPattern())

		out = glimpse(t, "", "hooks", "show", "post-merge")
		assert.Equal(t, 2, out.code)
	})
}
