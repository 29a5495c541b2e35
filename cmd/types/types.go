// cmd/types/types.go

package types

import (
	"fmt"

	"github.com/CodeMonkeyCybersecurity/glimpse/pkg/conventional"
	"github.com/CodeMonkeyCybersecurity/glimpse/pkg/glimpse_cli"
	"github.com/CodeMonkeyCybersecurity/glimpse/pkg/glimpse_io"
	"github.com/spf13/cobra"
)

// TypesCmd lists the accepted commit types.
var TypesCmd = &cobra.Command{
	Use:   "types",
	Short: "List the accepted commit types",
	Args:  cobra.NoArgs,
	RunE: glimpse_cli.Wrap(func(rc *glimpse_io.RuntimeContext, cmd *cobra.Command, args []string) error {
		cfg, err := glimpse_cli.LoadConfig(rc, cmd, "")
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(cmd.OutOrStdout(), glimpse_cli.Styles(cfg).TypesTable(conventional.Types()))
		return err
	}),
}
