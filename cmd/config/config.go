// cmd/config/config.go

package config

import (
	"fmt"
	"path/filepath"

	"github.com/CodeMonkeyCybersecurity/glimpse/pkg/config"
	"github.com/CodeMonkeyCybersecurity/glimpse/pkg/git"
	"github.com/CodeMonkeyCybersecurity/glimpse/pkg/glimpse_cli"
	"github.com/CodeMonkeyCybersecurity/glimpse/pkg/glimpse_io"
	"github.com/spf13/cobra"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// ConfigCmd prints the effective glimpse configuration.
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration as YAML",
	Long: `Print the configuration glimpse would use here, after merging defaults,
the user config file, the repository's .glimpse.yaml, GLIMPSE_* environment
variables and flags.

Examples:
  # Show the merged configuration
  glimpse config

  # Show where configuration is read from
  glimpse config path

  # Override the lint check for one run
  GLIMPSE_HOOKS_LINT_CHECK="golangci-lint run" glimpse config`,
	Args: cobra.NoArgs,
	RunE: glimpse_cli.Wrap(func(rc *glimpse_io.RuntimeContext, cmd *cobra.Command, args []string) error {
		cfg, err := glimpse_cli.LoadConfig(rc, cmd, repoRoot(rc, cmd))
		if err != nil {
			return err
		}
		return glimpse_io.WriteYAML(rc.Ctx, cmd.OutOrStdout(), cfg)
	}),
}

var pathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file locations",
	Args:  cobra.NoArgs,
	RunE: glimpse_cli.Wrap(func(rc *glimpse_io.RuntimeContext, cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		_, _ = fmt.Fprintf(out, "user:       %s\n", config.UserConfigPath())
		if root := repoRoot(rc, cmd); root != "" {
			_, _ = fmt.Fprintf(out, "repository: %s\n", filepath.Join(root, config.RepoConfigName))
		}
		return nil
	}),
}

func init() {
	ConfigCmd.AddCommand(pathCmd)
}

// repoRoot returns the enclosing working tree, or "" outside a repository.
func repoRoot(rc *glimpse_io.RuntimeContext, cmd *cobra.Command) string {
	repo, err := git.Open(rc.Ctx, glimpse_cli.PathFlag(cmd))
	if err != nil {
		otelzap.Ctx(rc.Ctx).Debug("No repository config", zap.Error(err))
		return ""
	}
	return repo.Root
}
