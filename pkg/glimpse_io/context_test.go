package glimpse_io

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewContext(t *testing.T) {
	rc := NewContext(context.Background(), "hooks install")
	require.NotNil(t, rc.Ctx)
	require.NotNil(t, rc.Log)
	require.NotNil(t, rc.Span)
	assert.Equal(t, "hooks", rc.Component)
	assert.Equal(t, "hooks install", rc.Command)
	assert.NotNil(t, rc.Attributes)

	var err error
	rc.End(&err)
}

func TestHandlePanic(t *testing.T) {
	rc := NewContext(context.Background(), "commit")
	run := func() (err error) {
		defer rc.HandlePanic(&err)
		panic("kaboom")
	}
	err := run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "kaboom")
	rc.End(&err)
}

func TestEnd_WithError(t *testing.T) {
	rc := NewContext(context.Background(), "validate")
	rc.Attributes["source"] = "stdin"
	err := errors.New("rejected")
	assert.NotPanics(t, func() { rc.End(&err) })
	assert.NotPanics(t, func() { NewContext(context.Background(), "x").End(nil) })
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	in := map[string]interface{}{"hooks": map[string]interface{}{"language": "Go"}}
	require.NoError(t, WriteYAML(context.Background(), &buf, in))
	assert.Equal(t, "hooks:\n  language: Go\n", buf.String())
}
