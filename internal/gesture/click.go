package gesture

type clickSpec struct {
	name    string
	id      ID
	fingers int
}

// ClickRecognizer arms while exactly fingers contacts rest on the surface.
// It fires only from Click, when the pad reports a physical press.
type ClickRecognizer struct {
	spec clickSpec

	phase   Phase
	anchors anchorSet
	armedAt float64
	grace   graceWindow
}

func newClickRecognizer(spec clickSpec) *ClickRecognizer {
	return &ClickRecognizer{spec: spec}
}

func (r *ClickRecognizer) Name() string { return r.spec.name }
func (r *ClickRecognizer) Phase() Phase { return r.phase }

func (r *ClickRecognizer) Reset() {
	r.phase = PhaseIdle
	r.anchors = nil
	r.armedAt = 0
	r.grace.clear()
}

// ProcessFrame only arms and disarms; it never fires.
func (r *ClickRecognizer) ProcessFrame(env *Env, touches []TouchSample, ts float64) bool {
	n := len(touches)
	switch r.phase {
	case PhaseIdle:
		if n == r.spec.fingers && env.Accept(touches) {
			r.phase = PhaseArmed
			r.anchors = bindAnchors(touches)
			r.armedAt = ts
		}

	case PhaseArmed:
		if ts-r.armedAt > clickArmTimeout {
			r.Reset()
			return false
		}
		switch matchCount(n, r.spec.fingers) {
		case countOver:
			r.Reset()
		case countUnder:
			if !r.grace.within(ts, clickGrace) {
				r.Reset()
			}
		default:
			if r.grace.expired(ts, clickGrace) {
				r.Reset()
				return false
			}
			r.grace.clear()
			r.anchors.sync(touches)
			if r.anchors.movedBeyond(touches, env.Effective(KnobMove, clickMove)) {
				r.Reset()
			}
		}
	}
	return false
}

// Click fires the gesture if the recognizer is armed at ts. touches is the
// touch set of the most recent frame. An armed recognizer stays armed after
// firing so that repeated presses keep working.
func (r *ClickRecognizer) Click(env *Env, touches []TouchSample, ts float64) bool {
	if r.phase != PhaseArmed {
		return false
	}
	if r.grace.expired(ts, clickGrace) || len(touches) > r.spec.fingers {
		r.Reset()
		return false
	}
	if !env.fire(r.spec.id, r.anchors.ids()) {
		return false
	}
	r.armedAt = ts
	return true
}
