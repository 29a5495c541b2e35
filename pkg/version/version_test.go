package version

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	oldV, oldC, oldD := Version, Commit, Date
	t.Cleanup(func() { Version, Commit, Date = oldV, oldC, oldD })

	Version, Commit, Date = "1.4.0", "abc1234", "2026-01-02"
	s := String()
	assert.Contains(t, s, "glimpse 1.4.0 (abc1234) built 2026-01-02")
	assert.Contains(t, s, runtime.GOOS+"/"+runtime.GOARCH)
}
