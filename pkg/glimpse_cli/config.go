// pkg/glimpse_cli/config.go

package glimpse_cli

import (
	"os"

	"github.com/CodeMonkeyCybersecurity/glimpse/pkg/cli"
	"github.com/CodeMonkeyCybersecurity/glimpse/pkg/config"
	"github.com/CodeMonkeyCybersecurity/glimpse/pkg/glimpse_io"
	"github.com/CodeMonkeyCybersecurity/glimpse/pkg/ui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Persistent flag names registered on the root command.
const (
	FlagPath    = "path"
	FlagNoColor = "no-color"
	FlagEditor  = "editor"
)

// LoadConfig loads configuration for a command working in repoRoot (may be
// empty) and applies --no-color and NO_COLOR.
func LoadConfig(rc *glimpse_io.RuntimeContext, cmd *cobra.Command, repoRoot string) (*config.Config, error) {
	cfg, err := config.Load(rc.Ctx, config.LoadOptions{
		RepoRoot: repoRoot,
		Flags:    cmd.Flags(),
	})
	if err != nil {
		return nil, err
	}
	if cli.GetBool(cmd, FlagNoColor) || os.Getenv("NO_COLOR") != "" {
		cfg.Color = false
	}
	rc.Log.Debug("Effective configuration",
		zap.String("repo_root", repoRoot),
		zap.Bool("color", cfg.Color))
	return cfg, nil
}

// Styles returns output styles for cfg, plain when color is off.
func Styles(cfg *config.Config) ui.Styles {
	return ui.NewStyles(cfg != nil && cfg.Color)
}

// PathFlag returns --path, defaulting to the working directory.
func PathFlag(cmd *cobra.Command) string {
	if p := cli.GetStringOrEmpty(cmd, FlagPath); p != "" {
		return p
	}
	return "."
}
