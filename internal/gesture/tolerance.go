package gesture

// Grace periods in seconds.
const (
	defaultGrace = 0.08
	clickGrace   = 0.20
)

// Base tolerances. Durations are seconds, distances are normalized units.
// Every value is scaled through Settings.Effective at evaluation time.
const (
	tapMaxDuration    = 0.25
	tapMove           = 0.05
	doubleTapInterval = 0.35
	tripleTapInterval = 0.40

	longPressDuration = 0.50
	longPressMove     = 0.03

	clickMove        = 0.08
	clickArmTimeout  = 10.0
	holdStability    = 0.10
	holdMove         = 0.03
	holdTimeout      = 10.0
	secondaryTimeout = 5.0

	secondaryTapMove       = 0.04
	secondaryPressMove     = 0.03
	secondaryPressDuration = 0.40
	secondarySwipe         = 0.06
	secondarySwipeMaxDur   = 0.50

	swipeRatio = 2.0
)

type countMatch int

const (
	countUnder countMatch = iota
	countExact
	countOver
)

func matchCount(n, target int) countMatch {
	switch {
	case n == target:
		return countExact
	case n > target:
		return countOver
	default:
		return countUnder
	}
}

// graceWindow tolerates a brief drop below the target finger count.
type graceWindow struct {
	droppedAt float64
	active    bool
}

// within starts the window on first use and reports whether ts is still
// inside it.
func (g *graceWindow) within(ts, period float64) bool {
	if !g.active {
		g.active = true
		g.droppedAt = ts
		return true
	}
	return ts-g.droppedAt <= period
}

// expired reports whether an open window has run out at ts without
// opening a new one. Recognizers that see their fingers return after expiry
// end that frame Idle and start tracking again on the next one.
func (g *graceWindow) expired(ts, period float64) bool {
	return g.active && ts-g.droppedAt > period
}

func (g *graceWindow) clear() {
	g.active = false
	g.droppedAt = 0
}

// anchor is a bound finger and the position it had when it was bound.
type anchor struct {
	id   int32
	x, y float32
}

type anchorSet []anchor

func bindAnchors(touches []TouchSample) anchorSet {
	out := make(anchorSet, len(touches))
	for i, t := range touches {
		out[i] = anchor{id: t.PathIndex, x: t.X, y: t.Y}
	}
	return out
}

func (a anchorSet) has(id int32) bool {
	for _, an := range a {
		if an.id == id {
			return true
		}
	}
	return false
}

func (a anchorSet) ids() []int32 {
	out := make([]int32, len(a))
	for i, an := range a {
		out[i] = an.id
	}
	return out
}

// present counts the bound fingers that appear in touches.
func (a anchorSet) present(touches []TouchSample) int {
	n := 0
	for _, t := range touches {
		if a.has(t.PathIndex) {
			n++
		}
	}
	return n
}

// sync drops fingers that are gone and adopts new ones at their current
// position. A contact that came back after a dropout carries a fresh path
// index, so this is what lets a grace window recover.
func (a *anchorSet) sync(touches []TouchSample) {
	kept := (*a)[:0]
	for _, an := range *a {
		if _, ok := findTouch(touches, an.id); ok {
			kept = append(kept, an)
		}
	}
	for _, t := range touches {
		if !kept.has(t.PathIndex) {
			kept = append(kept, anchor{id: t.PathIndex, x: t.X, y: t.Y})
		}
	}
	*a = kept
}

// movedBeyond reports whether any bound finger is farther than threshold
// from its anchor. Squared distances avoid the square root.
func (a anchorSet) movedBeyond(touches []TouchSample, threshold float64) bool {
	limit := threshold * threshold
	for _, an := range a {
		t, ok := findTouch(touches, an.id)
		if !ok {
			continue
		}
		if distSq(an.x, an.y, t.X, t.Y) > limit {
			return true
		}
	}
	return false
}

// centroidDelta is the mean displacement of the bound fingers present in
// touches.
func (a anchorSet) centroidDelta(touches []TouchSample) (dx, dy float64, ok bool) {
	n := 0
	for _, an := range a {
		t, found := findTouch(touches, an.id)
		if !found {
			continue
		}
		dx += float64(t.X - an.x)
		dy += float64(t.Y - an.y)
		n++
	}
	if n == 0 {
		return 0, 0, false
	}
	return dx / float64(n), dy / float64(n), true
}

// together reports whether every bound finger moved at least minStep along
// dir, so that one finger dragging while the others rest is not a swipe.
func (a anchorSet) together(touches []TouchSample, dir Direction, minStep float64) bool {
	for _, an := range a {
		t, ok := findTouch(touches, an.id)
		if !ok {
			continue
		}
		var step float64
		switch dir {
		case DirUp:
			step = float64(an.y - t.Y)
		case DirDown:
			step = float64(t.Y - an.y)
		case DirLeft:
			step = float64(an.x - t.X)
		case DirRight:
			step = float64(t.X - an.x)
		}
		if step < minStep {
			return false
		}
	}
	return true
}

func (a anchorSet) meanX() float64 {
	if len(a) == 0 {
		return 0
	}
	var sum float64
	for _, an := range a {
		sum += float64(an.x)
	}
	return sum / float64(len(a))
}

func findTouch(touches []TouchSample, id int32) (TouchSample, bool) {
	for _, t := range touches {
		if t.PathIndex == id {
			return t, true
		}
	}
	return TouchSample{}, false
}

func distSq(x0, y0, x1, y1 float32) float64 {
	dx := float64(x1 - x0)
	dy := float64(y1 - y0)
	return dx*dx + dy*dy
}

// classifyDirection decides whether a displacement is a directional swipe.
// reached is false until the dominant axis covers threshold. Once reached, a
// displacement whose axes fail the ratio on both sides is ambiguous and
// yields DirNone.
func classifyDirection(dx, dy, threshold, ratio float64) (dir Direction, reached bool) {
	adx, ady := abs(dx), abs(dy)
	if adx < threshold && ady < threshold {
		return DirNone, false
	}
	switch {
	case adx >= ratio*ady:
		if dx < 0 {
			return DirLeft, true
		}
		return DirRight, true
	case ady >= ratio*adx:
		if dy < 0 {
			return DirUp, true
		}
		return DirDown, true
	default:
		return DirNone, true
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
