package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gestured/internal/gesture"
)

func TestReloaderAppliesSettingsAndCommands(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("gestures:\n  five_finger_tap:\n    command: [one]\n"), 0o600))

	src := &configSource{path: path, explicit: true}
	cfg, err := src.load()
	require.NoError(t, err)

	exec := newCommandExecutor(cfg.Commands(), newMetrics(prometheus.NewRegistry()), nopLogger())
	f := &fakeStarter{}
	exec.start = f.start

	var slot gesture.Slot
	eng := gesture.New(gesture.Config{Settings: cfg.EngineSettings(), Executor: exec})
	slot.Store(eng)
	rl := newReloader(src, cfg, &slot, exec, nopLogger())

	require.NoError(t, os.WriteFile(path, []byte(`
gestures:
  five_finger_tap:
    command: [two]
  three_finger_click:
    enabled: false
`), 0o600))
	require.NoError(t, rl.reload())

	exec.Execute(gesture.FiveFingerTap)
	assert.Equal(t, [][]string{{"two"}}, f.argvs())

	eng.ProcessFrame(gesture.Frame{Timestamp: 0, Touches: []gesture.TouchSample{
		{PathIndex: 1, X: 0.4, Y: 0.5, MajorAxis: 5, State: gesture.StateTouching},
		{PathIndex: 2, X: 0.5, Y: 0.5, MajorAxis: 5, State: gesture.StateTouching},
		{PathIndex: 3, X: 0.6, Y: 0.5, MajorAxis: 5, State: gesture.StateTouching},
	}})
	assert.False(t, eng.HandlePhysicalClick(0.05), "three_finger_click disabled by reload")
}

func TestReloaderKeepsSettingsOnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("gestures:\n  five_finger_tap:\n    command: [one]\n"), 0o600))

	src := &configSource{path: path, explicit: true}
	cfg, err := src.load()
	require.NoError(t, err)
	exec := newCommandExecutor(cfg.Commands(), nil, nopLogger())
	f := &fakeStarter{}
	exec.start = f.start
	rl := newReloader(src, cfg, &gesture.Slot{}, exec, nopLogger())

	require.NoError(t, os.WriteFile(path, []byte("gestures:\n  pinch: {}\n"), 0o600))
	assert.Error(t, rl.reload())

	exec.Execute(gesture.FiveFingerTap)
	assert.Equal(t, [][]string{{"one"}}, f.argvs())
}

func TestRestartOnly(t *testing.T) {
	a := DefaultConfig()
	b := DefaultConfig()
	assert.Empty(t, restartOnly(a, b))

	b.Touchpad.Device = "/dev/input/event1"
	b.Engine.TypingCooldownMS = 500
	b.Sensitivity.Move = 1.5
	assert.Equal(t, []string{"touchpad", "engine"}, restartOnly(a, b))
}
