package gesture

import "log/slog"

// Phase is the externally observable state of a recognizer.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseTouching
	PhaseBetweenTaps
	PhasePressing
	PhaseTracking
	PhaseArmed
	PhaseHoldPending
	PhaseHoldConfirmed
	PhaseSecondary
	PhaseSecondaryDone
	PhaseFired
)

var phaseNames = [...]string{
	"idle",
	"touching",
	"between_taps",
	"pressing",
	"tracking",
	"armed",
	"hold_pending",
	"hold_confirmed",
	"secondary",
	"secondary_done",
	"fired",
}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return "unknown"
	}
	return phaseNames[p]
}

// Recognizer is one gesture state machine. Implementations are not safe for
// concurrent use; the engine serializes every call.
type Recognizer interface {
	Name() string
	// ProcessFrame advances the machine with the active touches of one frame
	// and reports whether a gesture fired.
	ProcessFrame(env *Env, touches []TouchSample, ts float64) bool
	// Reset returns to Idle and forgets every bound finger.
	Reset()
	Phase() Phase
}

// anchorResetter is implemented by recognizers that share a hold with their
// siblings. ResetToAnchor abandons the secondary finger but keeps the hold.
type anchorResetter interface {
	ResetToAnchor()
}

// Env is everything a recognizer may consult or affect during one pass.
type Env struct {
	settings Settings
	executor Executor
	feedback Feedback
	logger   *slog.Logger

	app    string
	typing bool
	claims map[int32]struct{}
	queue  *actionQueue
	latch  *liftLatch

	fired []ID
}

// Effective scales a base tolerance by the current multiplier for k.
func (env *Env) Effective(k Knob, base float64) float64 {
	return env.settings.Effective(k, base)
}

// Enabled reports whether id may run for the frontmost app.
func (env *Env) Enabled(id ID) bool {
	return env.settings.Enabled(env.app, id)
}

// Claimed reports whether a previous fire consumed the contact.
func (env *Env) Claimed(id int32) bool {
	_, ok := env.claims[id]
	return ok
}

// Accept reports whether every touch may be bound by a recognizer that is
// starting to track.
func (env *Env) Accept(touches []TouchSample) bool {
	for _, t := range touches {
		if env.Claimed(t.PathIndex) || IsPalmSized(t) {
			return false
		}
		if env.typing {
			if IsTypingEdge(t) {
				return false
			}
		} else if IsEdgeTouch(t) {
			return false
		}
	}
	return true
}

// fire records a gesture. Disabled gestures are dropped without effect and
// report false, leaving the caller's own transition in place. bound are the
// contacts the gesture consumed.
func (env *Env) fire(id ID, bound []int32) bool {
	if !env.Enabled(id) {
		env.logger.Debug("gesture disabled", "gesture", id, "app", env.app)
		return false
	}
	for _, pi := range bound {
		env.claims[pi] = struct{}{}
	}
	env.fired = append(env.fired, id)

	flags := env.settings.Feedback()
	deferred := env.settings.DeferUntilLift(id)
	exec, fb := env.executor, env.feedback
	env.queue.push(PendingAction{
		Gesture: id,
		Run: func() {
			if flags.HUD {
				fb.ShowHUD(id)
			}
			if flags.Haptic {
				fb.Pulse()
			}
			if !deferred {
				exec.Execute(id)
			}
		},
	})
	if deferred {
		env.latch.arm(id)
	}
	env.logger.Debug("gesture fired", "gesture", id, "app", env.app, "deferred", deferred)
	return true
}
