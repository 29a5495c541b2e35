// pkg/execute/helpers.go

package execute

import (
	"context"
	"strings"
	"time"
)

const (
	// DefaultTimeout applies when Options.Timeout is zero.
	DefaultTimeout = 30 * time.Second

	// NoTimeout lets the command run until it exits or ctx is cancelled.
	NoTimeout time.Duration = -1
)

func defaultTimeout(t time.Duration) time.Duration {
	if t > 0 || t == NoTimeout {
		return t
	}
	return DefaultTimeout
}

// withTimeout bounds ctx by t, or only by ctx itself for NoTimeout.
func withTimeout(ctx context.Context, t time.Duration) (context.Context, context.CancelFunc) {
	t = defaultTimeout(t)
	if t == NoTimeout {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, t)
}

func buildCommandString(command string, args ...string) string {
	if len(args) == 0 {
		return command
	}
	return command + " " + shellQuote(args)
}

// shellQuote quotes args for visibility in logs
func shellQuote(args []string) string {
	quoted := make([]string, 0, len(args))
	for _, arg := range args {
		if arg == "" || strings.ContainsAny(arg, " \t\n'\"") {
			quoted = append(quoted, "'"+strings.ReplaceAll(arg, "'", `'\''`)+"'")
			continue
		}
		quoted = append(quoted, arg)
	}
	return strings.Join(quoted, " ")
}
