package main

import (
	"log/slog"
	"os/exec"
	"sync/atomic"

	"gestured/internal/gesture"
)

// commandExecutor runs the argv bound to a gesture. Commands start
// asynchronously and are reaped in their own goroutine; the engine never
// waits on them.
type commandExecutor struct {
	logger   *slog.Logger
	metrics  *metrics
	commands atomic.Pointer[map[gesture.ID][]string]

	// start launches argv and returns a wait function. Replaced in tests.
	start func(argv []string) (wait func() error, err error)
}

func newCommandExecutor(commands map[gesture.ID][]string, m *metrics, logger *slog.Logger) *commandExecutor {
	x := &commandExecutor{logger: logger, metrics: m, start: startProcess}
	x.SetCommands(commands)
	return x
}

func startProcess(argv []string) (func() error, error) {
	cmd := exec.Command(argv[0], argv[1:]...)
	if err := cmd.Start(); err != nil {
		return nil, err
	}
	return cmd.Wait, nil
}

// SetCommands swaps the gesture bindings. Safe to call while executing.
func (x *commandExecutor) SetCommands(commands map[gesture.ID][]string) {
	if commands == nil {
		commands = map[gesture.ID][]string{}
	}
	x.commands.Store(&commands)
}

// Execute implements gesture.Executor.
func (x *commandExecutor) Execute(id gesture.ID) {
	x.metrics.fired(id)

	argv := (*x.commands.Load())[id]
	if len(argv) == 0 {
		x.logger.Debug("no command bound", "gesture", id)
		return
	}

	wait, err := x.start(argv)
	if err != nil {
		x.logger.Error("gesture command failed to start", "gesture", id, "command", argv[0], "error", err)
		x.metrics.actionFailed(id)
		return
	}
	x.logger.Info("gesture command started", "gesture", id, "command", argv[0])

	go func() {
		if err := wait(); err != nil {
			x.logger.Warn("gesture command exited with error", "gesture", id, "command", argv[0], "error", err)
			x.metrics.actionFailed(id)
		}
	}()
}
