// pkg/glimpse_err/util.go

package glimpse_err

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
)

// UserError marks an error the user can fix; it does not fail the process.
type UserError struct {
	cause error
}

func (e *UserError) Error() string {
	return e.cause.Error()
}

func (e *UserError) Unwrap() error {
	return e.cause
}

// NewExpectedError wraps an error for softer UX handling.
func NewExpectedError(err error) error {
	if err == nil {
		return nil
	}
	return &UserError{cause: err}
}

// IsExpectedUserError checks if the error is marked as expected.
func IsExpectedUserError(err error) bool {
	var e *UserError
	return errors.As(err, &e)
}

// ExtractSummary extracts a concise error summary from full output.
func ExtractSummary(output string, maxCandidates int) string {
	trimmed := strings.TrimSpace(output)
	if trimmed == "" {
		return "No output provided."
	}

	lines := strings.Split(trimmed, "\n")
	var candidates []string

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lowerLine := strings.ToLower(line)
		if strings.Contains(lowerLine, "error") ||
			strings.Contains(lowerLine, "failed") ||
			strings.Contains(lowerLine, "invalid") ||
			strings.Contains(lowerLine, "cannot") ||
			strings.Contains(lowerLine, "fatal") ||
			strings.Contains(lowerLine, "nothing to commit") {
			candidates = append(candidates, line)
		}
	}

	if len(candidates) > 0 {
		if len(candidates) > maxCandidates {
			candidates = candidates[:maxCandidates]
		}
		return strings.Join(candidates, " - ")
	}

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			return line
		}
	}

	return "Unknown error."
}

// PrintError writes a human-readable error to w and logs it. The message is
// printed as Error() returns it so multi-line git output keeps its layout.
func PrintError(w io.Writer, log *zap.Logger, userMessage string, err error) {
	if err == nil {
		return
	}
	if log == nil {
		log = zap.NewNop()
	}

	switch {
	case IsUserCancelled(err):
		log.Info(userMessage, zap.Error(err))
		fmt.Fprintf(w, "⚠️  %s\n", userMessage)
	case IsExpectedUserError(err):
		log.Warn(userMessage, zap.Error(err))
		fmt.Fprintf(w, "⚠️  Notice: %s: %s\n", userMessage, err.Error())
	default:
		log.Error(userMessage, zap.Error(err))
		fmt.Fprintf(w, "❌ %s: %s\n", userMessage, err.Error())
	}
}
