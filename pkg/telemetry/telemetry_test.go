package telemetry

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
)

func TestIsEnabled(t *testing.T) {
	for in, want := range map[string]bool{"": false, "off": false, "on": true, "1": true, "TRUE": true} {
		t.Setenv(EnvToggle, in)
		assert.Equal(t, want, IsEnabled(), in)
	}
}

func TestAnonTelemetryID_Stable(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	first := AnonTelemetryID()
	assert.True(t, strings.HasPrefix(first, "anon-"))
	assert.Equal(t, first, AnonTelemetryID())
}

func TestInit_Disabled(t *testing.T) {
	t.Setenv(EnvToggle, "")
	require.NoError(t, Init("glimpse"))
	_, span := Start(context.Background(), "noop", attribute.String("k", "v"))
	span.End()
	assert.False(t, span.SpanContext().IsValid())
	assert.NoError(t, Shutdown(context.Background()))
}

func TestInit_EnabledWritesSpans(t *testing.T) {
	state := t.TempDir()
	t.Setenv("XDG_STATE_HOME", state)
	t.Setenv(EnvToggle, "on")

	require.NoError(t, Init("glimpse"))
	_, span := Start(context.Background(), "commit")
	span.End()
	require.NoError(t, Shutdown(context.Background()))

	data, err := os.ReadFile(filepath.Join(state, "glimpse", "telemetry.jsonl"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"Name":"commit"`)

	t.Setenv(EnvToggle, "")
	require.NoError(t, Init("glimpse"))
}
