// cmd/hooks/hooks.go

package hooks

import (
	"fmt"
	"io"

	"github.com/CodeMonkeyCybersecurity/glimpse/pkg/cli"
	"github.com/CodeMonkeyCybersecurity/glimpse/pkg/git"
	"github.com/CodeMonkeyCybersecurity/glimpse/pkg/glimpse_cli"
	"github.com/CodeMonkeyCybersecurity/glimpse/pkg/glimpse_io"
	"github.com/CodeMonkeyCybersecurity/glimpse/pkg/hooks"
	"github.com/CodeMonkeyCybersecurity/glimpse/pkg/ui"
	"github.com/CodeMonkeyCybersecurity/glimpse/pkg/version"
	"github.com/spf13/cobra"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// HooksCmd groups the git hook commands.
var HooksCmd = &cobra.Command{
	Use:   "hooks",
	Short: "Install or inspect the git hooks glimpse manages",
	Long: `Glimpse manages two hooks:

  pre-commit   refuses an empty commit and runs the configured format and lint
               checks when matching source files are staged
  commit-msg   rejects messages that are not Conventional Commits

Both are generated from the same rule 'glimpse validate' uses. The checks come
from the hooks section of .glimpse.yaml or the user config.

Examples:
  glimpse hooks install
  glimpse hooks install --force
  glimpse hooks show commit-msg`,
}

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Write the pre-commit and commit-msg hooks into the repository",
	Args:  cobra.NoArgs,
	RunE:  glimpse_cli.Wrap(runInstall),
}

var showCmd = &cobra.Command{
	Use:       "show <pre-commit|commit-msg>",
	Short:     "Print a rendered hook script without installing it",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{string(hooks.PreCommit), string(hooks.CommitMsg)},
	RunE:      glimpse_cli.Wrap(runShow),
}

func init() {
	cli.AddBoolFlag(installCmd, "force", "f", false, "Replace hooks not written by glimpse (the old file is kept as a backup)")

	HooksCmd.AddCommand(installCmd)
	HooksCmd.AddCommand(showCmd)
}

func runInstall(rc *glimpse_io.RuntimeContext, cmd *cobra.Command, args []string) error {
	logger := otelzap.Ctx(rc.Ctx)
	out := cmd.OutOrStdout()
	force := cli.GetBool(cmd, "force")

	// ASSESS
	repo, err := git.Open(rc.Ctx, glimpse_cli.PathFlag(cmd))
	if err != nil {
		return err
	}
	dir, err := repo.HooksDir()
	if err != nil {
		return err
	}
	cfg, err := glimpse_cli.LoadConfig(rc, cmd, repo.Root)
	if err != nil {
		return err
	}
	styles := glimpse_cli.Styles(cfg)

	_, _ = fmt.Fprintln(out, "📦 Installing git hooks...")
	_, _ = fmt.Fprintln(out)

	// INTERVENE
	installer := hooks.NewInstaller(hooks.NewRenderer(cfg.Hooks, version.Version), rc.Log, force)
	res, err := installer.Install(rc.Ctx, dir)
	if err != nil {
		return err
	}

	// EVALUATE
	for _, n := range res.Installed {
		if backup, ok := res.BackedUp[n]; ok {
			_, _ = fmt.Fprint(out, styles.WarnLine(fmt.Sprintf("Existing %s moved to %s", n, backup)))
		}
	}
	printSummary(out, styles, res)

	rc.Attributes["hooks_dir"] = res.Dir
	logger.Info("Hooks installed", zap.String("dir", res.Dir), zap.Int("backups", len(res.BackedUp)))
	return nil
}

func printSummary(out io.Writer, styles ui.Styles, res *hooks.InstallResult) {
	_, _ = fmt.Fprint(out, styles.SuccessLine("Git hooks installed!"))
	_, _ = fmt.Fprintln(out)
	_, _ = fmt.Fprintf(out, "Hooks (%s):\n", res.Dir)
	for _, n := range res.Installed {
		_, _ = fmt.Fprintf(out, "  • %-12s %s\n", string(n)+":", n.Summary())
	}
	_, _ = fmt.Fprintln(out)
	_, _ = fmt.Fprintln(out, "To skip hooks: git commit --no-verify")
}

func runShow(rc *glimpse_io.RuntimeContext, cmd *cobra.Command, args []string) error {
	name, err := hooks.ParseName(args[0])
	if err != nil {
		return err
	}

	// the repository only contributes .glimpse.yaml here
	repoRoot := ""
	if repo, err := git.Open(rc.Ctx, glimpse_cli.PathFlag(cmd)); err == nil {
		repoRoot = repo.Root
	} else {
		rc.Log.Debug("Rendering without repository config", zap.Error(err))
	}

	cfg, err := glimpse_cli.LoadConfig(rc, cmd, repoRoot)
	if err != nil {
		return err
	}
	script, err := hooks.NewRenderer(cfg.Hooks, version.Version).Render(name)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(script)
	return err
}
