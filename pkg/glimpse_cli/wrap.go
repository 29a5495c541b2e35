// pkg/glimpse_cli/wrap.go

package glimpse_cli

import (
	"strings"

	"github.com/CodeMonkeyCybersecurity/glimpse/pkg/glimpse_err"
	"github.com/CodeMonkeyCybersecurity/glimpse/pkg/glimpse_io"
	cerr "github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Wrap ensures panic recovery, telemetry and logging around a command body.
func Wrap(fn func(rc *glimpse_io.RuntimeContext, cmd *cobra.Command, args []string) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		rc := glimpse_io.NewContext(cmd.Context(), commandName(cmd))
		defer rc.End(&err)
		defer rc.HandlePanic(&err)

		rc.Log.Debug("Running command", zap.Int("args", len(args)))

		err = fn(rc, cmd, args)
		if err != nil && !glimpse_err.IsExpectedUserError(err) {
			err = cerr.WithStack(err)
		}
		return err
	}
}

// commandName drops the binary name from the cobra command path.
func commandName(cmd *cobra.Command) string {
	path := cmd.CommandPath()
	if i := strings.IndexByte(path, ' '); i >= 0 {
		return path[i+1:]
	}
	return path
}
