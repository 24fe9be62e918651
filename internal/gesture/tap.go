package gesture

type tapSpec struct {
	name     string
	id       ID
	fingers  int
	taps     int
	interval float64
}

// TapRecognizer fires when exactly fingers contacts touch down and lift
// quickly, taps times in a row.
type TapRecognizer struct {
	spec tapSpec

	phase     Phase
	taps      int
	anchors   anchorSet
	touchedAt float64
	liftedAt  float64
	grace     graceWindow

	// SuppressFire turns the final lift into a silent reset so that a longer
	// sequence sharing the same first taps can win instead.
	SuppressFire    bool
	didSuppressFire bool
}

func newTapRecognizer(spec tapSpec) *TapRecognizer {
	return &TapRecognizer{spec: spec}
}

func (r *TapRecognizer) Name() string { return r.spec.name }
func (r *TapRecognizer) Phase() Phase { return r.phase }

// DidSuppressFire reports whether the last completed sequence was swallowed
// because SuppressFire was set.
func (r *TapRecognizer) DidSuppressFire() bool { return r.didSuppressFire }

func (r *TapRecognizer) Reset() {
	r.phase = PhaseIdle
	r.taps = 0
	r.anchors = nil
	r.touchedAt = 0
	r.liftedAt = 0
	r.grace.clear()
}

func (r *TapRecognizer) ProcessFrame(env *Env, touches []TouchSample, ts float64) bool {
	n := len(touches)
	switch r.phase {
	case PhaseIdle:
		if n == r.spec.fingers && env.Accept(touches) {
			r.didSuppressFire = false
			r.touchDown(touches, ts)
		}
		return false

	case PhaseTouching:
		if ts-r.touchedAt > env.Effective(KnobTapSpeed, tapMaxDuration) {
			r.Reset()
			return false
		}
		switch matchCount(n, r.spec.fingers) {
		case countOver:
			r.Reset()
		case countExact:
			if r.grace.expired(ts, defaultGrace) {
				r.Reset()
				return false
			}
			r.grace.clear()
			r.anchors.sync(touches)
			if r.anchors.movedBeyond(touches, env.Effective(KnobMove, tapMove)) {
				r.Reset()
			}
		default:
			if n == 0 {
				return r.lift(env, ts)
			}
			if !r.grace.within(ts, defaultGrace) {
				r.Reset()
			}
		}
		return false

	case PhaseBetweenTaps:
		if ts-r.liftedAt > env.Effective(KnobTapSpeed, r.spec.interval) {
			r.Reset()
			return false
		}
		switch {
		case n == r.spec.fingers:
			if !env.Accept(touches) {
				r.Reset()
				return false
			}
			r.touchDown(touches, ts)
		case n > r.spec.fingers:
			r.Reset()
		}
		return false
	}
	return false
}

func (r *TapRecognizer) touchDown(touches []TouchSample, ts float64) {
	r.phase = PhaseTouching
	r.anchors = bindAnchors(touches)
	r.touchedAt = ts
	r.grace.clear()
}

func (r *TapRecognizer) lift(env *Env, ts float64) bool {
	r.taps++
	if r.taps < r.spec.taps {
		r.phase = PhaseBetweenTaps
		r.liftedAt = ts
		r.grace.clear()
		return false
	}
	bound := r.anchors.ids()
	r.Reset()
	if r.SuppressFire {
		r.didSuppressFire = true
		env.logger.Debug("tap sequence suppressed", "recognizer", r.spec.name)
		return false
	}
	return env.fire(r.spec.id, bound)
}
