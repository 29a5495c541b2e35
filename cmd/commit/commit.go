// cmd/commit/commit.go

package commit

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/CodeMonkeyCybersecurity/glimpse/pkg/cli"
	"github.com/CodeMonkeyCybersecurity/glimpse/pkg/composer"
	"github.com/CodeMonkeyCybersecurity/glimpse/pkg/config"
	"github.com/CodeMonkeyCybersecurity/glimpse/pkg/conventional"
	"github.com/CodeMonkeyCybersecurity/glimpse/pkg/git"
	"github.com/CodeMonkeyCybersecurity/glimpse/pkg/glimpse_cli"
	"github.com/CodeMonkeyCybersecurity/glimpse/pkg/glimpse_err"
	"github.com/CodeMonkeyCybersecurity/glimpse/pkg/glimpse_io"
	"github.com/CodeMonkeyCybersecurity/glimpse/pkg/interaction"
	"github.com/CodeMonkeyCybersecurity/glimpse/pkg/ui"
	"github.com/spf13/cobra"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// CommitCmd composes a Conventional Commit message and commits the staged changes.
var CommitCmd = &cobra.Command{
	Use:   "commit",
	Short: "Compose a Conventional Commit interactively and create it",
	Long: `Walk through type, scope, description, body, breaking change and issue
references, preview the resulting message and create the commit with git.

git runs the repository's hooks as usual, so an installed commit-msg gate
checks the message once more.

Options:
  --dry-run    Print the message instead of committing
  --yes        Skip the final confirmation
  --no-verify  Skip the repository's hooks`,
	Args: cobra.NoArgs,
	RunE: glimpse_cli.Wrap(runCommit),
}

func init() {
	cli.AddBoolFlag(CommitCmd, "dry-run", "n", false, "Print the composed message without committing")
	cli.AddBoolFlag(CommitCmd, "yes", "y", false, "Commit without asking for confirmation")
	cli.AddBoolFlag(CommitCmd, "no-verify", "", false, "Skip pre-commit and commit-msg hooks")
}

// newPrompter asks on the command's input and writes prompts to its stderr.
func newPrompter(cmd *cobra.Command, cfg *config.Config, styles ui.Styles) composer.Prompter {
	return interaction.NewTerminalPrompter(interaction.Options{
		In:     cmd.InOrStdin(),
		Out:    cmd.ErrOrStderr(),
		Editor: cfg.ResolveEditor(),
		Styles: styles,
	})
}

func runCommit(rc *glimpse_io.RuntimeContext, cmd *cobra.Command, args []string) error {
	logger := otelzap.Ctx(rc.Ctx)
	out := cmd.ErrOrStderr()

	dryRun := cli.GetBool(cmd, "dry-run")
	skipConfirm := cli.GetBool(cmd, "yes")
	noVerify := cli.GetBool(cmd, "no-verify")

	logger.Info("Starting commit composer",
		zap.Bool("dry_run", dryRun),
		zap.Bool("yes", skipConfirm),
		zap.Bool("no_verify", noVerify))

	// ASSESS
	repo, err := preflight(rc, cmd, dryRun)
	if err != nil {
		return err
	}

	repoRoot := ""
	if repo != nil {
		repoRoot = repo.Root
	}
	cfg, err := glimpse_cli.LoadConfig(rc, cmd, repoRoot)
	if err != nil {
		return err
	}
	styles := glimpse_cli.Styles(cfg)

	if repo != nil {
		warnIfNothingStaged(rc, out, styles, repo)
	}

	// INTERVENE
	_, _ = fmt.Fprintln(out, styles.Banner())

	prompter := newPrompter(cmd, cfg, styles)
	rec, err := composer.Compose(rc.Ctx, prompter)
	if err != nil {
		if errors.Is(err, composer.ErrAborted) {
			return glimpse_err.NewUserCancelledError("commit")
		}
		return glimpse_err.Classify(err, "composing the commit message")
	}
	message := rec.Message()
	rc.Attributes["commit_type"] = rec.Type.String()

	if dryRun {
		_, err := io.WriteString(cmd.OutOrStdout(), message+"\n")
		logger.Info("Dry run complete, no commit created")
		return err
	}

	_, _ = fmt.Fprint(out, styles.Preview(message))
	if verr := conventional.Validate(message); verr != nil {
		_, _ = fmt.Fprint(out, styles.WarnLine("This message does not pass the commit-msg check: "+verr.Error()))
	}

	if !skipConfirm {
		ok, err := prompter.Confirm(rc.Ctx, "Create commit?", true)
		if err != nil {
			if errors.Is(err, composer.ErrAborted) {
				return glimpse_err.NewUserCancelledError("commit")
			}
			return glimpse_err.Classify(err, "reading confirmation")
		}
		if !ok {
			_, _ = fmt.Fprintln(out, styles.Muted.Render("Aborted"))
			logger.Info("Commit declined by user")
			return nil
		}
	}

	committer := git.NewCommitter(repo.Root)
	committer.NoVerify = noVerify
	res, err := committer.Commit(rc.Ctx, message)
	if err != nil {
		return glimpse_err.Classify(err, "running git commit")
	}

	// EVALUATE
	if !res.Success {
		rc.Attributes["git_exit_code"] = fmt.Sprint(res.ExitCode)
		detail := strings.TrimSpace(res.Stderr)
		if detail == "" {
			detail = strings.TrimSpace(res.Stdout)
		}
		var cause error
		if detail != "" {
			cause = errors.New(detail)
		}
		return glimpse_err.NewGitError("git error: "+glimpse_err.ExtractSummary(detail, 2), cause,
			"Fix what git reported and run glimpse commit again",
			"To skip hooks: glimpse commit --no-verify",
		)
	}

	_, _ = fmt.Fprint(out, styles.SuccessLine("Commit created"))
	if s := strings.TrimSpace(res.Stdout); s != "" {
		_, _ = fmt.Fprintln(out, s)
	}
	return nil
}

// preflight checks git and finds the repository. A dry run needs neither.
func preflight(rc *glimpse_io.RuntimeContext, cmd *cobra.Command, dryRun bool) (*git.Repository, error) {
	if err := git.CheckGitInstalled(rc.Ctx); err != nil {
		if dryRun {
			rc.Log.Debug("git unavailable, continuing dry run", zap.Error(err))
			return nil, nil
		}
		return nil, err
	}

	repo, err := git.Open(rc.Ctx, glimpse_cli.PathFlag(cmd))
	if err != nil {
		if dryRun {
			rc.Log.Debug("No repository, continuing dry run", zap.Error(err))
			return nil, nil
		}
		return nil, err
	}
	if repo.Bare {
		return nil, glimpse_err.NewGitError("cannot commit in a bare repository: "+repo.Root, nil)
	}
	return repo, nil
}

func warnIfNothingStaged(rc *glimpse_io.RuntimeContext, out io.Writer, styles ui.Styles, repo *git.Repository) {
	staged, err := repo.StagedFiles()
	if err != nil {
		rc.Log.Warn("Could not list staged files", zap.Error(err))
		return
	}
	rc.Log.Debug("Staged files", zap.Int("count", len(staged)))
	if len(staged) == 0 {
		_, _ = fmt.Fprint(out, styles.WarnLine("No files staged for commit. Stage them first: git add <files>"))
	}
}
