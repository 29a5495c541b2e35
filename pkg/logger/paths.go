/* pkg/logger/paths.go */

package logger

import (
	"os"
	"path/filepath"

	"github.com/CodeMonkeyCybersecurity/glimpse/pkg/xdg"
)

const (
	appName     = "glimpse"
	logFileName = "glimpse.log"
)

// DefaultLogPaths returns candidate log files in order of priority.
func DefaultLogPaths() []string {
	return []string{
		xdg.XDGStatePath(appName, logFileName),
		filepath.Join(os.TempDir(), appName, logFileName),
	}
}
