package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	for in, want := range map[string]LogLevel{
		"error": LogLevelError, "WARN": LogLevelWarn, "warning": LogLevelWarn,
		"info": LogLevelInfo, "Debug": LogLevelDebug,
	} {
		got, err := parseLogLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := parseLogLevel("trace")
	assert.Error(t, err)
}

func TestLoggerRenamesErrorKey(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, LogLevelInfo, "json")
	logger.Error("command failed", "error", errors.New("boom"))
	logger.Debug("hidden")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "boom", rec["err"])
	assert.NotContains(t, rec, "error")
	assert.NotContains(t, buf.String(), "hidden")
}

func TestLoggerTextFormat(t *testing.T) {
	var buf bytes.Buffer
	newLogger(&buf, LogLevelDebug, "text").Debug("frame", "touches", 3)
	assert.Contains(t, buf.String(), "touches=3")
}
