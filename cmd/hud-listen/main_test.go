package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatMessage(t *testing.T) {
	got := formatMessage([]byte(`{"type":"gesture","ts":"2026-01-02T03:04:05Z","data":{"gesture":"hold_swipe_up"}}`))
	assert.True(t, strings.HasSuffix(got, "[GESTURE] hold_swipe_up"), got)

	got = formatMessage([]byte(`{"type":"haptic","ts":"2026-01-02T03:04:05Z"}`))
	assert.True(t, strings.HasSuffix(got, "[HAPTIC]"), got)

	assert.Equal(t, "[TEXT] hello", formatMessage([]byte("hello")))
}
