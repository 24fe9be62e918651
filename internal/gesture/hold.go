package gesture

type secondaryKind int

const (
	secondaryTap secondaryKind = iota
	secondarySwipeKind
	secondaryLongPress
)

type holdSpec struct {
	name    string
	held    int
	kind    secondaryKind
	taps    sided
	swipes  directional
	presses sided
}

// HoldRecognizer tracks held fingers resting on the pad and a secondary
// finger that taps, swipes, or presses beside them. The side of the
// secondary is taken relative to the average x of the hold.
type HoldRecognizer struct {
	spec holdSpec

	phase       Phase
	hold        anchorSet
	holdStart   float64
	confirmedAt float64
	avgX        float64
	grace       graceWindow

	sec      anchor
	secStart float64
	side     Side

	// A secondary that was abandoned while still down is never re-adopted.
	abandoned    int32
	hasAbandoned bool
}

func newHoldRecognizer(spec holdSpec) *HoldRecognizer {
	return &HoldRecognizer{spec: spec}
}

func (r *HoldRecognizer) Name() string { return r.spec.name }
func (r *HoldRecognizer) Phase() Phase { return r.phase }

func (r *HoldRecognizer) Reset() {
	*r = HoldRecognizer{spec: r.spec}
}

// ResetToAnchor drops any secondary tracking and returns to HoldConfirmed.
// Recognizers that have not confirmed a hold are left alone.
func (r *HoldRecognizer) ResetToAnchor() {
	if r.phase != PhaseSecondary && r.phase != PhaseSecondaryDone {
		return
	}
	r.abandon()
}

func (r *HoldRecognizer) ProcessFrame(env *Env, touches []TouchSample, ts float64) bool {
	n := len(touches)
	switch r.phase {
	case PhaseIdle:
		if n == r.spec.held && env.Accept(touches) {
			r.phase = PhaseHoldPending
			r.hold = bindAnchors(touches)
			r.holdStart = ts
		}
		return false

	case PhaseHoldPending:
		switch matchCount(n, r.spec.held) {
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
		r.hold.sync(touches)
		if r.hold.movedBeyond(touches, env.Effective(KnobMove, holdMove)) {
			r.Reset()
			return false
		}
		if ts-r.holdStart >= env.Effective(KnobHold, holdStability) {
			r.phase = PhaseHoldConfirmed
			r.confirmedAt = ts
			r.avgX = r.hold.meanX()
		}
		return false

	case PhaseHoldConfirmed:
		if ts-r.confirmedAt > holdTimeout {
			r.Reset()
			return false
		}
		if !r.holdSteady(env, touches, ts) {
			return false
		}
		if r.grace.active {
			return false
		}
		switch {
		case n > r.spec.held+1:
			r.Reset()
		case n == r.spec.held+1:
			r.trySecondary(env, touches, ts)
		}
		return false

	case PhaseSecondary:
		if ts-r.secStart > secondaryTimeout {
			r.Reset()
			return false
		}
		if !r.holdSteady(env, touches, ts) {
			return false
		}
		if n > r.spec.held+1 {
			r.Reset()
			return false
		}
		t, ok := findTouch(touches, r.sec.id)
		if !ok {
			return r.secondaryLifted(env, ts)
		}
		return r.secondaryMoved(env, t, ts)

	case PhaseSecondaryDone:
		if !r.holdSteady(env, touches, ts) {
			return false
		}
		if _, ok := findTouch(touches, r.sec.id); !ok {
			r.backToHold(ts)
		}
	}
	return false
}

// holdSteady checks the held fingers. It resets and reports false when they
// have moved or stayed missing past the grace period.
func (r *HoldRecognizer) holdSteady(env *Env, touches []TouchSample, ts float64) bool {
	if r.hold.present(touches) < r.spec.held {
		if !r.grace.within(ts, defaultGrace) {
			r.Reset()
			return false
		}
		return true
	}
	if r.grace.expired(ts, defaultGrace) {
		r.Reset()
		return false
	}
	r.grace.clear()
	if r.hold.movedBeyond(touches, env.Effective(KnobMove, holdMove)) {
		r.Reset()
		return false
	}
	return true
}

func (r *HoldRecognizer) trySecondary(env *Env, touches []TouchSample, ts float64) {
	for _, t := range touches {
		if r.hold.has(t.PathIndex) {
			continue
		}
		if r.hasAbandoned && t.PathIndex == r.abandoned {
			return
		}
		if !env.Accept([]TouchSample{t}) {
			return
		}
		r.phase = PhaseSecondary
		r.sec = anchor{id: t.PathIndex, x: t.X, y: t.Y}
		r.secStart = ts
		r.side = SideRight
		if float64(t.X) < r.avgX {
			r.side = SideLeft
		}
		return
	}
}

func (r *HoldRecognizer) secondaryMoved(env *Env, t TouchSample, ts float64) bool {
	elapsed := ts - r.secStart
	switch r.spec.kind {
	case secondaryTap:
		limit := env.Effective(KnobMove, secondaryTapMove)
		if elapsed > env.Effective(KnobTapSpeed, tapMaxDuration) ||
			distSq(r.sec.x, r.sec.y, t.X, t.Y) > limit*limit {
			r.abandon()
		}

	case secondarySwipeKind:
		if elapsed > secondarySwipeMaxDur {
			r.abandon()
			return false
		}
		dx, dy := float64(t.X-r.sec.x), float64(t.Y-r.sec.y)
		dir, reached := classifyDirection(dx, dy, env.Effective(KnobSwipe, secondarySwipe), swipeRatio)
		if !reached {
			return false
		}
		if dir == DirNone {
			r.abandon()
			return false
		}
		r.phase = PhaseSecondaryDone
		return env.fire(r.spec.swipes.pick(dir), []int32{r.sec.id})

	case secondaryLongPress:
		limit := env.Effective(KnobMove, secondaryPressMove)
		if distSq(r.sec.x, r.sec.y, t.X, t.Y) > limit*limit {
			r.abandon()
			return false
		}
		if elapsed < env.Effective(KnobLongPress, secondaryPressDuration) {
			return false
		}
		r.phase = PhaseSecondaryDone
		return env.fire(r.spec.presses.pick(r.side), []int32{r.sec.id})
	}
	return false
}

func (r *HoldRecognizer) secondaryLifted(env *Env, ts float64) bool {
	quick := ts-r.secStart <= env.Effective(KnobTapSpeed, tapMaxDuration)
	id := r.sec.id
	r.backToHold(ts)
	if r.spec.kind != secondaryTap || !quick {
		return false
	}
	return env.fire(r.spec.taps.pick(r.side), []int32{id})
}

// abandon gives up on a secondary that is still on the surface.
func (r *HoldRecognizer) abandon() {
	r.abandoned = r.sec.id
	r.hasAbandoned = true
	r.phase = PhaseHoldConfirmed
	r.sec = anchor{}
	r.secStart = 0
}

func (r *HoldRecognizer) backToHold(ts float64) {
	r.phase = PhaseHoldConfirmed
	r.confirmedAt = ts
	r.sec = anchor{}
	r.secStart = 0
}
