package main

import (
	"log/slog"
	"sync"

	"gestured/internal/gesture"
)

// reloader re-reads the config and pushes the parts that can change live
// into the running engine and executor.
type reloader struct {
	src    *configSource
	slot   *gesture.Slot
	exec   *commandExecutor
	logger *slog.Logger

	mu      sync.Mutex
	current Config
}

func newReloader(src *configSource, initial Config, slot *gesture.Slot, exec *commandExecutor, logger *slog.Logger) *reloader {
	return &reloader{src: src, slot: slot, exec: exec, logger: logger, current: initial}
}

// reload is called from both the file watcher and the control socket.
func (r *reloader) reload() error {
	cfg, err := r.src.load()
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if e := r.slot.Load(); e != nil {
		e.SetSettings(cfg.EngineSettings())
	}
	r.exec.SetCommands(cfg.Commands())

	for _, name := range restartOnly(r.current, cfg) {
		r.logger.Warn("config change needs a restart to take effect", "field", name)
	}
	r.current = cfg

	r.logger.Info("config reloaded", "path", r.src.path, "bindings", len(cfg.Commands()))
	return nil
}

// restartOnly names the fields that differ between a and b but are only
// read at startup.
func restartOnly(a, b Config) []string {
	var out []string
	if a.Touchpad != b.Touchpad {
		out = append(out, "touchpad")
	}
	if !equalStrings(a.Keyboards.Devices, b.Keyboards.Devices) {
		out = append(out, "keyboards")
	}
	if a.Engine != b.Engine {
		out = append(out, "engine")
	}
	if a.IPC != b.IPC {
		out = append(out, "ipc")
	}
	if a.HTTP != b.HTTP || a.HUD != b.HUD || a.Metrics != b.Metrics {
		out = append(out, "http")
	}
	if a.Logging != b.Logging {
		out = append(out, "logging")
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
