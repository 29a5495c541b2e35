// cmd/validate/validate.go

package validate

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/CodeMonkeyCybersecurity/glimpse/pkg/cli"
	"github.com/CodeMonkeyCybersecurity/glimpse/pkg/conventional"
	"github.com/CodeMonkeyCybersecurity/glimpse/pkg/glimpse_cli"
	"github.com/CodeMonkeyCybersecurity/glimpse/pkg/glimpse_err"
	"github.com/CodeMonkeyCybersecurity/glimpse/pkg/glimpse_io"
	"github.com/CodeMonkeyCybersecurity/glimpse/pkg/interaction"
	"github.com/CodeMonkeyCybersecurity/glimpse/pkg/ui"
	"github.com/spf13/cobra"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// ValidateCmd checks a commit message against the Conventional Commits header rule.
var ValidateCmd = &cobra.Command{
	Use:   "validate [MESSAGE]",
	Short: "Check that a commit message is a valid Conventional Commit",
	Long: `Validate a commit message given as an argument, read from a file, or piped
on stdin. Only the first line is checked; messages starting with "Merge" pass.

Exits 0 when the message is accepted and 2 when it is rejected.

Examples:
  glimpse validate "feat(api): add pagination"
  glimpse validate --file .git/COMMIT_EDITMSG
  git log -1 --format=%B | glimpse validate`,
	Args: cobra.MaximumNArgs(1),
	RunE: glimpse_cli.Wrap(runValidate),
}

func init() {
	cli.AddStringFlag(ValidateCmd, "file", "F", "", "Read the message from a file", false)
}

func runValidate(rc *glimpse_io.RuntimeContext, cmd *cobra.Command, args []string) error {
	logger := otelzap.Ctx(rc.Ctx)

	message, source, err := readMessage(cmd, args)
	if err != nil {
		return err
	}
	logger.Debug("Validating commit message", zap.String("source", source), zap.Int("length", len(message)))

	// git aborts an empty COMMIT_EDITMSG on its own.
	if source == "file" && strings.TrimSpace(message) == "" {
		return glimpse_err.NewExpectedError(errors.New("commit message is empty, nothing to validate"))
	}

	styles := ui.NewStyles(!cli.GetBool(cmd, glimpse_cli.FlagNoColor) && os.Getenv("NO_COLOR") == "")

	verr := conventional.Validate(message)
	if verr == nil {
		_, _ = fmt.Fprint(cmd.OutOrStdout(), styles.SuccessLine("Valid commit message"))
		return nil
	}

	var ve *conventional.ValidationError
	if !errors.As(verr, &ve) {
		return glimpse_err.NewInternalError("unexpected validation result", verr)
	}
	rc.Attributes["problem"] = string(ve.Problem)
	logger.Info("Commit message rejected", zap.String("problem", string(ve.Problem)))

	return glimpse_err.NewValidationErrorWithCause(
		ve.Reason()+"\n\nYour message:\n  "+ve.Header,
		ve,
	)
}

// readMessage takes the message from the argument, --file, or stdin, in that order.
func readMessage(cmd *cobra.Command, args []string) (string, string, error) {
	file := cli.GetStringOrEmpty(cmd, "file")
	switch {
	case len(args) == 1 && file != "":
		return "", "", glimpse_err.NewValidationError("give the message as an argument or with --file, not both")
	case len(args) == 1:
		return args[0], "argument", nil
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return "", "", glimpse_err.NewFilesystemError("cannot read "+file, err)
		}
		return stripComments(string(data)), "file", nil
	}

	in := cmd.InOrStdin()
	if interaction.IsTerminal(in) {
		return "", "", glimpse_err.NewValidationError("no commit message given",
			"Pass the message as an argument",
			"Or use --file PATH, or pipe it on stdin")
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return "", "", glimpse_err.NewFilesystemError("cannot read stdin", err)
	}
	return string(data), "stdin", nil
}

// stripComments drops the '#' lines git writes into COMMIT_EDITMSG, and the
// blank lines git would strip before the header.
func stripComments(s string) string {
	lines := strings.Split(s, "\n")
	kept := lines[:0]
	for _, l := range lines {
		if strings.HasPrefix(l, "#") {
			continue
		}
		kept = append(kept, l)
	}
	return strings.TrimLeft(strings.Join(kept, "\n"), "\n")
}
