package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithFormat_JSON(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithFormat(0, "json", &buf)

	l.Info("hello", "user_id", "42")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "hello", rec["msg"])
	assert.Equal(t, "42", rec["user_id"])
}

func TestNewWithFormat_TextFallback(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithFormat(0, "yaml", &buf)

	l.Info("hello")
	assert.Contains(t, buf.String(), "msg=hello")
}

func TestNewWithFormat_Level(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithFormat(4, "text", &buf)

	l.Info("dropped")
	assert.Empty(t, buf.String())

	l.Warn("kept")
	assert.Contains(t, buf.String(), "kept")
}
