/* cmd/root.go */

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/CodeMonkeyCybersecurity/glimpse/pkg/glimpse_cli"
	"github.com/CodeMonkeyCybersecurity/glimpse/pkg/glimpse_err"
	"github.com/CodeMonkeyCybersecurity/glimpse/pkg/glimpse_io"
	"github.com/CodeMonkeyCybersecurity/glimpse/pkg/logger"
	"github.com/CodeMonkeyCybersecurity/glimpse/pkg/telemetry"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	// Subcommands
	"github.com/CodeMonkeyCybersecurity/glimpse/cmd/commit"
	configcmd "github.com/CodeMonkeyCybersecurity/glimpse/cmd/config"
	"github.com/CodeMonkeyCybersecurity/glimpse/cmd/hooks"
	"github.com/CodeMonkeyCybersecurity/glimpse/cmd/types"
	"github.com/CodeMonkeyCybersecurity/glimpse/cmd/validate"
)

var (
	helpLogged   bool // log help only once
	registerOnce sync.Once
)

// RootCmd is the base command for glimpse.
var RootCmd = &cobra.Command{
	Use:   "glimpse",
	Short: "Compose, validate and enforce Conventional Commits",
	Long: `Glimpse builds Conventional Commit messages interactively, commits them,
and installs git hooks that enforce the same format.

Examples:
  # Compose and create a commit
  glimpse commit

  # Install the pre-commit and commit-msg hooks
  glimpse hooks install

  # Check a message
  glimpse validate "feat(api): add pagination"`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: glimpse_cli.Wrap(func(rc *glimpse_io.RuntimeContext, cmd *cobra.Command, args []string) error {
		_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "⚠️  No subcommand provided. Try `glimpse commit`.")
		return cmd.Help()
	}),
}

func init() {
	RootCmd.PersistentFlags().String(glimpse_cli.FlagPath, "", "Repository to work in (default: current directory)")
	RootCmd.PersistentFlags().Bool(glimpse_cli.FlagNoColor, false, "Disable colored output")
	RootCmd.PersistentFlags().String(glimpse_cli.FlagEditor, "", "Editor for the commit body (default: $VISUAL, $EDITOR, vi)")

	RootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return glimpse_err.NewValidationErrorWithCause(err.Error(), err,
			fmt.Sprintf("Run '%s --help' for usage", cmd.CommandPath()))
	})
}

// RegisterCommands adds all subcommands to the root command.
func RegisterCommands() {
	registerOnce.Do(registerCommands)
}

func registerCommands() {
	log := logger.L()

	RootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		if !helpLogged {
			log.Debug("Help requested", zap.String("command", cmd.Name()))
			helpLogged = true
		}
		if err := cmd.Usage(); err != nil {
			log.Warn("Failed to print usage", zap.Error(err))
		}
	})

	for _, subCmd := range []*cobra.Command{
		commit.CommitCmd,
		hooks.HooksCmd,
		validate.ValidateCmd,
		types.TypesCmd,
		configcmd.ConfigCmd,
		VersionCmd,
	} {
		RootCmd.AddCommand(subCmd)
	}
}

// Execute runs the root command and exits with the code of its outcome.
func Execute() {
	code := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	logger.Sync()
	os.Exit(code)
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if err := telemetry.Init("glimpse"); err != nil {
		logger.L().Warn("Telemetry disabled", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := telemetry.Shutdown(ctx); err != nil {
			logger.L().Debug("Failed to flush telemetry", zap.Error(err))
		}
	}()

	RegisterCommands()
	RootCmd.SetArgs(args)
	RootCmd.SetIn(stdin)
	RootCmd.SetOut(stdout)
	RootCmd.SetErr(stderr)

	executed, err := RootCmd.ExecuteC()
	if err == nil {
		return 0
	}

	reportError(stderr, executed, err)
	code := glimpse_err.GetExitCode(err)
	logger.L().Debug("CLI finished with error",
		zap.Int("exit_code", code),
		zap.String("category", glimpse_err.Category(err).String()))
	return code
}

// reportError prints err once, in the user's terms.
func reportError(w io.Writer, executed *cobra.Command, err error) {
	name := "glimpse"
	if executed != nil && executed != RootCmd {
		name = strings.TrimPrefix(executed.CommandPath(), RootCmd.Name()+" ")
	}

	msg := name + " failed"
	if glimpse_err.IsUserCancelled(err) {
		msg = "Aborted"
	}
	glimpse_err.PrintError(w, logger.L(), msg, err)
}
