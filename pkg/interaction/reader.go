// pkg/interaction/reader.go

package interaction

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/CodeMonkeyCybersecurity/glimpse/pkg/composer"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// ReadLine writes label to out and returns one line from reader without its
// line terminator. End of input with nothing typed is reported as
// composer.ErrAborted.
func ReadLine(ctx context.Context, reader *bufio.Reader, out io.Writer, label string) (string, error) {
	logger := otelzap.Ctx(ctx)
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%w: %v", composer.ErrAborted, err)
	}

	_, _ = fmt.Fprint(out, label)

	text, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			if text == "" {
				_, _ = fmt.Fprintln(out)
				logger.Debug("End of input while prompting", zap.String("label", label))
				return "", fmt.Errorf("%w: end of input", composer.ErrAborted)
			}
		} else {
			logger.Warn("Failed to read user input", zap.Error(err))
			return "", fmt.Errorf("failed to read input: %w", err)
		}
	}

	value := strings.TrimRight(text, "\r\n")
	logger.Debug("User input received", zap.String("label", label), zap.Int("length", len(value)))
	return value, nil
}

// NormalizeYesNoInput returns (answer, true) for a recognised yes/no reply.
// It trims whitespace and lowercases input before comparison.
func NormalizeYesNoInput(input string) (bool, bool) {
	switch strings.TrimSpace(strings.ToLower(input)) {
	case YesShort, YesLong:
		return true, true
	case NoShort, NoLong:
		return false, true
	default:
		return false, false
	}
}
