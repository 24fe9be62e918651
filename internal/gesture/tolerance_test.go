package gesture

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchCount(t *testing.T) {
	assert.Equal(t, countExact, matchCount(3, 3))
	assert.Equal(t, countUnder, matchCount(2, 3))
	assert.Equal(t, countUnder, matchCount(0, 3))
	assert.Equal(t, countOver, matchCount(4, 3))
}

func TestGraceWindowBoundary(t *testing.T) {
	var g graceWindow
	assert.True(t, g.within(1.00, clickGrace), "first drop opens the window")
	assert.True(t, g.within(1.19, clickGrace))
	assert.False(t, g.expired(1.19, clickGrace))
	assert.False(t, g.within(1.21, clickGrace))
	assert.True(t, g.expired(1.21, clickGrace))

	g.clear()
	assert.False(t, g.expired(5, clickGrace), "a closed window never expires")
}

func TestClassifyDirection(t *testing.T) {
	tests := []struct {
		name    string
		dx, dy  float64
		want    Direction
		reached bool
	}{
		{"below threshold", 0.05, 0.01, DirNone, false},
		{"right", 0.10, 0.01, DirRight, true},
		{"left", -0.10, 0.02, DirLeft, true},
		{"up is negative y", 0.0, -0.09, DirUp, true},
		{"down", 0.01, 0.09, DirDown, true},
		{"diagonal is ambiguous", 0.09, 0.08, DirNone, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dir, reached := classifyDirection(tc.dx, tc.dy, 0.08, swipeRatio)
			assert.Equal(t, tc.want, dir)
			assert.Equal(t, tc.reached, reached)
		})
	}
}

func TestAnchorSyncAdoptsReplacement(t *testing.T) {
	a := bindAnchors([]TouchSample{touch(1, 0.4, 0.5), touch(2, 0.5, 0.5)})

	// Contact 2 dropped out and came back as 7 slightly elsewhere.
	now := []TouchSample{touch(1, 0.4, 0.5), touch(7, 0.52, 0.5)}
	a.sync(now)

	assert.ElementsMatch(t, []int32{1, 7}, a.ids())
	assert.False(t, a.movedBeyond(now, 0.01), "replacement anchors at its current position")
}

func TestAnchorMovedBeyond(t *testing.T) {
	a := bindAnchors([]TouchSample{touch(1, 0.5, 0.5)})
	assert.False(t, a.movedBeyond([]TouchSample{touch(1, 0.53, 0.5)}, 0.05))
	assert.True(t, a.movedBeyond([]TouchSample{touch(1, 0.54, 0.54)}, 0.05))
}

func TestTouchClassification(t *testing.T) {
	assert.True(t, IsEdgeTouch(touch(1, 0.01, 0.5)))
	assert.True(t, IsEdgeTouch(touch(1, 0.5, 0.99)))
	assert.False(t, IsEdgeTouch(touch(1, 0.2, 0.5)))

	assert.True(t, IsTypingEdge(touch(1, 0.2, 0.5)))
	assert.True(t, IsTypingEdge(touch(1, 0.5, 0.1)))
	assert.False(t, IsTypingEdge(touch(1, 0.5, 0.5)))

	palm := touch(1, 0.5, 0.5)
	palm.MajorAxis = 12
	assert.True(t, IsPalmSized(palm))
	assert.False(t, IsPalmSized(touch(1, 0.5, 0.5)))
}

func TestActiveTouches(t *testing.T) {
	hover := touch(2, 0.5, 0.5)
	hover.State = StateHoverInRange
	start := touch(3, 0.6, 0.5)
	start.State = StateMakeTouch

	f := Frame{Touches: []TouchSample{touch(1, 0.4, 0.5), hover, start}}
	got := f.ActiveTouches()
	assert.Len(t, got, 2)
	assert.Equal(t, int32(1), got[0].PathIndex)
	assert.Equal(t, int32(3), got[1].PathIndex)
}

func TestClampMultiplier(t *testing.T) {
	assert.Equal(t, 1.0, ClampMultiplier(0))
	assert.Equal(t, MinMultiplier, ClampMultiplier(0.1))
	assert.Equal(t, MaxMultiplier, ClampMultiplier(9))
	assert.Equal(t, 1.3, ClampMultiplier(1.3))
}

func TestParseTouchState(t *testing.T) {
	for s := StateNotTracking; s <= StateOutOfRange; s++ {
		got, ok := ParseTouchState(s.String())
		assert.True(t, ok)
		assert.Equal(t, s, got)
	}
	_, ok := ParseTouchState("floating")
	assert.False(t, ok)
}
