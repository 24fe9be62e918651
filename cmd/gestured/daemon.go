package main

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"gestured/internal/gesture"
	"gestured/internal/ipc"
)

// ============================================================================
// Daemon loop
// ============================================================================
// One goroutine owns the touchpad decoder and is the only caller of
// ProcessFrame and ConsumeLiftEvent, so frames reach the engine in order. A
// button press travels inside the frame of the report that carried it. Keyboard presses and control events are folded into the
// same select loop. Reader goroutines only decode and forward.
// ============================================================================

var errTouchpadClosed = errors.New("touchpad event stream closed")

type daemon struct {
	logger  *slog.Logger
	slot    *gesture.Slot
	exec    gesture.Executor
	metrics *metrics
	decoder *mtDecoder

	// clock returns seconds on the monotonic clock shared by frames and
	// keystrokes.
	clock func() float64

	// reload re-reads the config file and applies it.
	reload func() error
}

func monotonicClock() func() float64 {
	start := time.Now()
	return func() float64 { return time.Since(start).Seconds() }
}

// run processes events until ctx is cancelled or the touchpad stream ends.
func (d *daemon) run(ctx context.Context, pad <-chan inputEvent, keys <-chan inputEvent, control <-chan ipc.Event) error {
	d.logger.Info("daemon loop started")
	defer d.logger.Info("daemon loop stopped")

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-pad:
			if !ok {
				return errTouchpadClosed
			}
			d.handlePad(ev)

		case _, ok := <-keys:
			if !ok {
				keys = nil
				continue
			}
			d.withEngine(func(e *gesture.Engine) { e.NoteKeystroke(d.clock()) })

		case ev := <-control:
			d.handleControl(ev)
		}
	}
}

func (d *daemon) withEngine(fn func(*gesture.Engine)) {
	if e := d.slot.Load(); e != nil {
		fn(e)
	}
}

func (d *daemon) handlePad(ev inputEvent) {
	frame, ok := d.decoder.feed(ev, d.clock())
	if !ok {
		return
	}
	d.withEngine(func(e *gesture.Engine) {
		start := time.Now()
		res := e.ProcessFrame(frame)
		d.metrics.pass(time.Since(start))
		if len(res.Fired) > 0 {
			d.logger.Debug("frame fired", "gestures", res.Fired, "touches", len(frame.Touches))
		}
		if frame.Click {
			d.metrics.click(res.ClickSuppressed)
			d.logger.Debug("physical click", "suppressed", res.ClickSuppressed)
		}

		if id, ok := e.ConsumeLiftEvent(); ok {
			d.logger.Debug("deferred gesture released on lift", "gesture", id)
			d.exec.Execute(id)
		}
	})
}

func (d *daemon) handleControl(ev ipc.Event) {
	switch ev := ev.(type) {
	case ipc.KeyPressed:
		d.withEngine(func(e *gesture.Engine) { e.NoteKeystroke(d.clock()) })

	case ipc.AppFocused:
		d.withEngine(func(e *gesture.Engine) { e.SetFrontmostApp(ev.App) })
		d.logger.Debug("frontmost app changed", "app", ev.App)

	case ipc.ResetGestures:
		d.withEngine(func(e *gesture.Engine) { e.ResetAll() })
		d.logger.Info("gestures reset")

	case ipc.ReloadConfig:
		if d.reload == nil {
			return
		}
		if err := d.reload(); err != nil {
			d.logger.Error("config reload failed, keeping previous settings", "error", err)
		}

	default:
		d.logger.Warn("unhandled control event", "event", ev)
	}
}
