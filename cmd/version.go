// cmd/version.go

package cmd

import (
	"fmt"

	"github.com/CodeMonkeyCybersecurity/glimpse/pkg/glimpse_cli"
	"github.com/CodeMonkeyCybersecurity/glimpse/pkg/glimpse_io"
	"github.com/CodeMonkeyCybersecurity/glimpse/pkg/version"
	"github.com/spf13/cobra"
)

// VersionCmd prints build information.
var VersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the glimpse version",
	Args:  cobra.NoArgs,
	RunE: glimpse_cli.Wrap(func(rc *glimpse_io.RuntimeContext, cmd *cobra.Command, args []string) error {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), version.String())
		return err
	}),
}
