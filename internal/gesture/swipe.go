package gesture

type swipeSpec struct {
	name        string
	ids         directional
	fingers     int
	threshold   float64
	ratio       float64
	maxDuration float64
}

// SwipeRecognizer fires when exactly fingers contacts move together far
// enough along one dominant axis within the allowed time.
type SwipeRecognizer struct {
	spec swipeSpec

	phase     Phase
	anchors   anchorSet
	startedAt float64
	grace     graceWindow
}

func newSwipeRecognizer(spec swipeSpec) *SwipeRecognizer {
	return &SwipeRecognizer{spec: spec}
}

func (r *SwipeRecognizer) Name() string { return r.spec.name }
func (r *SwipeRecognizer) Phase() Phase { return r.phase }

func (r *SwipeRecognizer) Reset() {
	r.phase = PhaseIdle
	r.anchors = nil
	r.startedAt = 0
	r.grace.clear()
}

func (r *SwipeRecognizer) ProcessFrame(env *Env, touches []TouchSample, ts float64) bool {
	n := len(touches)
	switch r.phase {
	case PhaseIdle:
		if n == r.spec.fingers && env.Accept(touches) {
			r.phase = PhaseTracking
			r.anchors = bindAnchors(touches)
			r.startedAt = ts
		}
		return false

	case PhaseTracking:
		if ts-r.startedAt > r.spec.maxDuration {
			r.Reset()
			return false
		}
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
		dx, dy, ok := r.anchors.centroidDelta(touches)
		if !ok {
			return false
		}
		threshold := env.Effective(KnobSwipe, r.spec.threshold)
		dir, reached := classifyDirection(dx, dy, threshold, r.spec.ratio)
		if !reached {
			return false
		}
		if dir == DirNone || !r.anchors.together(touches, dir, threshold/4) {
			r.Reset()
			return false
		}
		r.phase = PhaseFired
		return env.fire(r.spec.ids.pick(dir), r.anchors.ids())

	case PhaseFired:
		if n == 0 {
			r.Reset()
		}
	}
	return false
}
