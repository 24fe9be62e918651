package gesture

type longPressSpec struct {
	name     string
	id       ID
	fingers  int
	duration float64
}

// LongPressRecognizer fires once exactly fingers contacts have rested
// without moving for the press duration, then waits for them to lift.
type LongPressRecognizer struct {
	spec longPressSpec

	phase     Phase
	anchors   anchorSet
	startedAt float64
	grace     graceWindow
}

func newLongPressRecognizer(spec longPressSpec) *LongPressRecognizer {
	return &LongPressRecognizer{spec: spec}
}

func (r *LongPressRecognizer) Name() string { return r.spec.name }
func (r *LongPressRecognizer) Phase() Phase { return r.phase }

func (r *LongPressRecognizer) Reset() {
	r.phase = PhaseIdle
	r.anchors = nil
	r.startedAt = 0
	r.grace.clear()
}

func (r *LongPressRecognizer) ProcessFrame(env *Env, touches []TouchSample, ts float64) bool {
	n := len(touches)
	switch r.phase {
	case PhaseIdle:
		if n == r.spec.fingers && env.Accept(touches) {
			r.phase = PhasePressing
			r.anchors = bindAnchors(touches)
			r.startedAt = ts
		}
		return false

	case PhasePressing:
		switch matchCount(n, r.spec.fingers) {
		case countOver:
			r.Reset()
			return false
		case countUnder:
			if !r.grace.within(ts, defaultGrace) {
				r.Reset()
			}
			return false
		}
		if r.grace.expired(ts, defaultGrace) {
			r.Reset()
			return false
		}
		r.grace.clear()
		r.anchors.sync(touches)
		if r.anchors.movedBeyond(touches, env.Effective(KnobMove, longPressMove)) {
			r.Reset()
			return false
		}
		if ts-r.startedAt < env.Effective(KnobLongPress, r.spec.duration) {
			return false
		}
		r.phase = PhaseFired
		return env.fire(r.spec.id, r.anchors.ids())

	case PhaseFired:
		if n == 0 {
			r.Reset()
		}
	}
	return false
}
