package gesture

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type step struct {
	ts      float64
	touches []TouchSample
}

// holdTapLeft is two fingers held still with a third tapping to their left.
func holdTapLeft() []step {
	hold := []TouchSample{touch(1, 0.40, 0.5), touch(2, 0.45, 0.5)}
	withSecondary := append(append([]TouchSample{}, hold...), touch(3, 0.20, 0.5))
	return []step{
		{0.00, hold},
		{0.05, hold},
		{0.12, hold},
		{0.15, withSecondary},
		{0.20, withSecondary},
		{0.25, hold},
	}
}

func (h *harness) play(steps []step) [][]ID {
	h.t.Helper()
	out := make([][]ID, len(steps))
	for i, s := range steps {
		out[i] = h.frame(s.ts, s.touches...)
	}
	return out
}

func TestNewBuildsEveryRecognizerIdle(t *testing.T) {
	h := newHarness(t, nil)
	names := h.engine.Names()
	assert.Len(t, names, 18)
	for _, n := range names {
		assert.Equal(t, PhaseIdle, h.phase(n), n)
	}
	_, ok := h.engine.Phase("no_such_recognizer")
	assert.False(t, ok)
}

func TestClickPriorityThreeFingers(t *testing.T) {
	h := newHarness(t, nil)
	fingers := []TouchSample{touch(1, 0.50, 0.50), touch(2, 0.45, 0.50), touch(3, 0.55, 0.50)}
	h.frame(0.00, fingers...)
	h.frame(0.03, fingers...)
	require.Equal(t, PhaseTouching, h.phase(RecThreeFingerDoubleTap))
	require.Equal(t, PhasePressing, h.phase(RecThreeFingerLongPress))
	require.Equal(t, PhaseTracking, h.phase(RecThreeFingerSwipe))

	assert.True(t, h.engine.HandlePhysicalClick(0.05))
	for _, name := range []string{RecThreeFingerDoubleTap, RecThreeFingerLongPress, RecThreeFingerSwipe} {
		assert.Equal(t, PhaseIdle, h.phase(name), name)
	}

	for ts := 0.1; ts < 1.2; ts += 0.1 {
		assert.Empty(t, h.frame(ts, fingers...))
	}
	assert.Equal(t, PhaseIdle, h.phase(RecThreeFingerLongPress))
	assert.Equal(t, []ID{ThreeFingerClick}, h.exec.calls())
}

func TestClickInFrameBeatsLongPress(t *testing.T) {
	h := newHarness(t, nil)
	fingers := three(1, 0.5, 0.5)
	for _, ts := range []float64{0, 0.1, 0.2, 0.3, 0.4} {
		h.frame(ts, fingers...)
	}

	res := h.engine.ProcessFrame(Frame{Timestamp: 0.5, Touches: fingers, Click: true})
	assert.True(t, res.ClickSuppressed)
	assert.Equal(t, []ID{ThreeFingerClick}, res.Fired)
	assert.Equal(t, PhaseIdle, h.phase(RecThreeFingerLongPress))
	assert.Equal(t, []ID{ThreeFingerClick}, h.exec.calls())
}

func TestLongPressLeavesClickArmed(t *testing.T) {
	h := newHarness(t, nil)
	fingers := three(1, 0.5, 0.5)
	var fired []ID
	for _, ts := range []float64{0, 0.1, 0.2, 0.3, 0.4, 0.5} {
		fired = append(fired, h.frame(ts, fingers...)...)
	}
	require.Equal(t, []ID{ThreeFingerLongPress}, fired)
	assert.Equal(t, PhaseArmed, h.phase(RecThreeFingerClick))
}

func TestClickPriorityFiveFingersWin(t *testing.T) {
	h := newHarness(t, nil)
	h.frame(0,
		touch(1, 0.30, 0.5), touch(2, 0.40, 0.5), touch(3, 0.50, 0.5),
		touch(4, 0.60, 0.5), touch(5, 0.70, 0.5))
	require.Equal(t, PhaseArmed, h.phase(RecFiveFingerClick))

	assert.True(t, h.engine.HandlePhysicalClick(0.05))
	assert.Equal(t, []ID{FiveFingerClick}, h.exec.calls())
}

func TestClickNotSuppressedWhenDisabledOrIdle(t *testing.T) {
	h := newHarness(t, StaticSettings{Disabled: map[ID]bool{ThreeFingerClick: true}})
	assert.False(t, h.engine.HandlePhysicalClick(0), "nothing armed")

	h.frame(0.1, three(1, 0.5, 0.5)...)
	require.Equal(t, PhaseArmed, h.phase(RecThreeFingerClick))
	assert.False(t, h.engine.HandlePhysicalClick(0.15))
	assert.Empty(t, h.exec.calls())
}

func TestClickRefiresWhileArmed(t *testing.T) {
	h := newHarness(t, nil)
	h.frame(0, three(1, 0.5, 0.5)...)
	assert.True(t, h.engine.HandlePhysicalClick(0.1))
	h.frame(0.2, three(1, 0.5, 0.5)...)
	assert.True(t, h.engine.HandlePhysicalClick(0.3))
	assert.Equal(t, []ID{ThreeFingerClick, ThreeFingerClick}, h.exec.calls())
}

func TestClickGraceBoundary(t *testing.T) {
	fingers := three(1, 0.5, 0.5)

	t.Run("return within grace stays armed", func(t *testing.T) {
		h := newHarness(t, nil)
		h.frame(0.00, fingers...)
		h.frame(0.10, fingers[:2]...)
		h.frame(0.29, fingers...)
		assert.Equal(t, PhaseArmed, h.phase(RecThreeFingerClick))
		assert.True(t, h.engine.HandlePhysicalClick(0.30))
	})

	t.Run("return past grace resets", func(t *testing.T) {
		h := newHarness(t, nil)
		h.frame(0.00, fingers...)
		h.frame(0.10, fingers[:2]...)
		h.frame(0.31, fingers...)
		assert.Equal(t, PhaseIdle, h.phase(RecThreeFingerClick))
		assert.False(t, h.engine.HandlePhysicalClick(0.32))

		h.frame(0.35, fingers...)
		assert.Equal(t, PhaseArmed, h.phase(RecThreeFingerClick), "the next frame starts over")
	})

	t.Run("still short past grace resets", func(t *testing.T) {
		h := newHarness(t, nil)
		h.frame(0.00, fingers...)
		h.frame(0.10, fingers[:2]...)
		h.frame(0.31, fingers[:2]...)
		assert.Equal(t, PhaseIdle, h.phase(RecThreeFingerClick))
		assert.False(t, h.engine.HandlePhysicalClick(0.31))
	})
}

func TestHoldTapSide(t *testing.T) {
	h := newHarness(t, nil)
	fired := h.play(holdTapLeft())

	assert.Equal(t, []ID{HoldTapLeft}, fired[len(fired)-1])
	assert.Equal(t, []ID{HoldTapLeft}, h.exec.calls())
	assert.Equal(t, PhaseHoldConfirmed, h.phase(RecHoldTap))
	assert.Equal(t, PhaseIdle, h.phase(RecThreeFingerDoubleTap))
}

func TestHoldTapRightSide(t *testing.T) {
	h := newHarness(t, nil)
	hold := []TouchSample{touch(1, 0.40, 0.5), touch(2, 0.45, 0.5)}
	withSecondary := append(append([]TouchSample{}, hold...), touch(3, 0.60, 0.5))
	h.play([]step{
		{0.00, hold}, {0.12, hold},
		{0.15, withSecondary}, {0.20, hold},
	})
	assert.Equal(t, []ID{HoldTapRight}, h.exec.calls())
}

func TestHoldSwipeDownKeepsTapAnchored(t *testing.T) {
	h := newHarness(t, nil)
	hold := []TouchSample{touch(1, 0.40, 0.5), touch(2, 0.45, 0.5)}
	with := func(y float32) []TouchSample {
		return append(append([]TouchSample{}, hold...), touch(3, 0.20, y))
	}
	fired := h.play([]step{
		{0.00, hold},
		{0.12, hold},
		{0.15, with(0.40)},
		{0.20, with(0.43)},
		{0.25, with(0.47)},
	})

	assert.Equal(t, []ID{HoldSwipeDown}, fired[4])
	assert.Equal(t, PhaseHoldConfirmed, h.phase(RecHoldTap))
	assert.Equal(t, PhaseSecondaryDone, h.phase(RecHoldSwipe))

	// Lifting the swiped finger must not turn into a tap.
	assert.Empty(t, h.frame(0.28, hold...))
	assert.Equal(t, []ID{HoldSwipeDown}, h.exec.calls())
}

func TestOneFingerHoldTapBeatsTwoFingerGroup(t *testing.T) {
	h := newHarness(t, nil)
	one := touch(1, 0.5, 0.5)
	fired := h.play([]step{
		{0.00, []TouchSample{one}},
		{0.12, []TouchSample{one}},
		{0.15, []TouchSample{one, touch(2, 0.7, 0.5)}},
		{0.25, []TouchSample{one}},
		{0.30, nil},
	})
	assert.Equal(t, []ID{OneFingerHoldTapRight}, fired[3])
	assert.Empty(t, fired[4])
	assert.Equal(t, []ID{OneFingerHoldTapRight}, h.exec.calls())
}

func TestTripleTapSuppressesDouble(t *testing.T) {
	taps := []step{
		{0.0, three(1, 0.5, 0.5)}, {0.1, nil},
		{0.2, three(4, 0.5, 0.5)}, {0.3, nil},
		{0.4, three(7, 0.5, 0.5)}, {0.5, nil},
	}

	h := newHarness(t, nil)
	for i, s := range taps {
		fired := h.frame(s.ts, s.touches...)
		switch i {
		case 3:
			assert.Empty(t, fired)
			assert.True(t, h.engine.doubleTap.DidSuppressFire())
		case 5:
			assert.Equal(t, []ID{ThreeFingerTripleTap}, fired)
		default:
			assert.Empty(t, fired)
		}
	}
	assert.Equal(t, []ID{ThreeFingerTripleTap}, h.exec.calls())
}

func TestDoubleTapFiresWhenTripleNotTracking(t *testing.T) {
	h := newHarness(t, nil)
	h.frame(0.0, three(1, 0.5, 0.5)...)
	h.frame(0.1)
	h.frame(0.2, three(4, 0.5, 0.5)...)
	h.engine.tripleTap.Reset()

	assert.Equal(t, []ID{ThreeFingerDoubleTap}, h.frame(0.3))
	assert.False(t, h.engine.doubleTap.DidSuppressFire())
}

func TestDoubleTapFiresWhenTripleDisabled(t *testing.T) {
	h := newHarness(t, StaticSettings{Disabled: map[ID]bool{ThreeFingerTripleTap: true}})
	h.frame(0.0, three(1, 0.5, 0.5)...)
	h.frame(0.1)
	h.frame(0.2, three(4, 0.5, 0.5)...)
	assert.Equal(t, []ID{ThreeFingerDoubleTap}, h.frame(0.3))
}

func TestSlowTapDoesNotCount(t *testing.T) {
	h := newHarness(t, StaticSettings{Disabled: map[ID]bool{ThreeFingerTripleTap: true}})
	h.frame(0.0, three(1, 0.5, 0.5)...)
	h.frame(0.3, three(1, 0.5, 0.5)...)
	h.frame(0.35)
	assert.Equal(t, PhaseIdle, h.phase(RecThreeFingerDoubleTap))
}

func TestThreeFingerSwipeClaimsFingers(t *testing.T) {
	h := newHarness(t, nil)
	assert.Empty(t, h.frame(0.00, three(1, 0.5, 0.50)...))
	assert.Empty(t, h.frame(0.05, three(1, 0.5, 0.46)...))
	assert.Equal(t, []ID{ThreeFingerSwipeUp}, h.frame(0.10, three(1, 0.5, 0.41)...))

	// The same fingers resting afterwards must not become a long press.
	for ts := 0.2; ts < 1.5; ts += 0.1 {
		assert.Empty(t, h.frame(ts, three(1, 0.5, 0.41)...))
	}
	assert.Equal(t, PhaseIdle, h.phase(RecThreeFingerLongPress))

	h.frame(1.6)
	h.frame(1.7, three(10, 0.5, 0.5)...)
	assert.Equal(t, PhasePressing, h.phase(RecThreeFingerLongPress))
	assert.Equal(t, []ID{ThreeFingerSwipeUp}, h.exec.calls())
}

func TestTwoFingerSwipeRight(t *testing.T) {
	h := newHarness(t, nil)
	pair := func(x float32) []TouchSample {
		return []TouchSample{touch(1, x, 0.45), touch(2, x, 0.55)}
	}
	h.frame(0.00, pair(0.40)...)
	h.frame(0.05, pair(0.46)...)
	assert.Equal(t, []ID{TwoFingerSwipeRight}, h.frame(0.10, pair(0.54)...))
}

func TestAmbiguousSwipeDoesNotFire(t *testing.T) {
	h := newHarness(t, nil)
	h.frame(0.00, three(1, 0.5, 0.5)...)
	assert.Empty(t, h.frame(0.10, three(1, 0.59, 0.59)...))
	assert.Equal(t, PhaseIdle, h.phase(RecThreeFingerSwipe))
	assert.Empty(t, h.exec.calls())
}

func TestDeferredLiftFiresOnce(t *testing.T) {
	settings := StaticSettings{
		Flags:    FeedbackFlags{HUD: true},
		Deferred: map[ID]bool{ThreeFingerLongPress: true},
	}
	h := newHarness(t, settings)
	fingers := three(1, 0.5, 0.5)

	var fired []ID
	for _, ts := range []float64{0, 0.1, 0.2, 0.3, 0.4, 0.5} {
		fired = append(fired, h.frame(ts, fingers...)...)
	}
	require.Equal(t, []ID{ThreeFingerLongPress}, fired)
	assert.Empty(t, h.exec.calls(), "deferred action waits for lift")
	assert.Equal(t, []ID{ThreeFingerLongPress}, h.feedback.huds)

	_, ok := h.engine.ConsumeLiftEvent()
	assert.False(t, ok, "fingers still down")

	h.frame(0.6)
	id, ok := h.engine.ConsumeLiftEvent()
	assert.True(t, ok)
	assert.Equal(t, ThreeFingerLongPress, id)

	_, ok = h.engine.ConsumeLiftEvent()
	assert.False(t, ok)
	h.frame(0.7)
	_, ok = h.engine.ConsumeLiftEvent()
	assert.False(t, ok)
}

func TestLiftEventSurvivesResetAll(t *testing.T) {
	h := newHarness(t, StaticSettings{Deferred: map[ID]bool{ThreeFingerSwipeDown: true}})
	h.frame(0.00, three(1, 0.5, 0.40)...)
	h.frame(0.10, three(1, 0.5, 0.50)...)
	h.engine.ResetAll()
	h.frame(0.20)

	id, ok := h.engine.ConsumeLiftEvent()
	assert.True(t, ok)
	assert.Equal(t, ThreeFingerSwipeDown, id)
}

func TestPerAppDisable(t *testing.T) {
	h := newHarness(t, StaticSettings{
		AppDisabled: map[string]map[ID]bool{"terminal": {ThreeFingerSwipeUp: true}},
	})
	h.engine.SetFrontmostApp("terminal")
	h.frame(0.00, three(1, 0.5, 0.50)...)
	assert.Empty(t, h.frame(0.10, three(1, 0.5, 0.40)...))
	assert.Equal(t, PhaseFired, h.phase(RecThreeFingerSwipe), "transition happens without the action")
	assert.Empty(t, h.exec.calls())

	h.frame(0.2)
	h.engine.SetFrontmostApp("browser")
	h.frame(0.30, three(4, 0.5, 0.50)...)
	assert.Equal(t, []ID{ThreeFingerSwipeUp}, h.frame(0.40, three(4, 0.5, 0.40)...))
}

func TestTypingCooldownRejectsTypingZone(t *testing.T) {
	h := newHarness(t, nil)
	h.engine.NoteKeystroke(0)

	fingers := three(1, 0.25, 0.5)
	h.frame(0.5, fingers...)
	assert.Equal(t, PhaseIdle, h.phase(RecThreeFingerClick))

	h.frame(2.6, fingers...)
	assert.Equal(t, PhaseArmed, h.phase(RecThreeFingerClick))
}

func TestPalmNeverBinds(t *testing.T) {
	h := newHarness(t, nil)
	fingers := three(1, 0.5, 0.5)
	fingers[1].MajorAxis = 14
	h.frame(0, fingers...)
	assert.Equal(t, PhaseIdle, h.phase(RecThreeFingerClick))
	assert.Equal(t, PhaseIdle, h.phase(RecThreeFingerLongPress))
}

func TestDeterminism(t *testing.T) {
	a := newHarness(t, nil)
	b := newHarness(t, nil)
	steps := holdTapLeft()

	assert.Equal(t, a.play(steps), b.play(steps))
	for _, n := range a.engine.Names() {
		assert.Equal(t, a.phase(n), b.phase(n), n)
	}
}

func TestResetAllIsIdempotent(t *testing.T) {
	h := newHarness(t, nil)
	steps := holdTapLeft()
	h.play(steps[:4])

	h.engine.ResetAll()
	h.engine.ResetAll()
	for _, n := range h.engine.Names() {
		assert.Equal(t, PhaseIdle, h.phase(n), n)
	}

	fresh := newHarness(t, nil)
	assert.Equal(t, fresh.play(steps), h.play(shift(steps, 1)))
}

func TestConflictTable(t *testing.T) {
	for _, g := range arbitrationTable() {
		for _, m := range g.members {
			for _, target := range g.onFire[m] {
				assert.NotEqual(t, m, target.name, "%s resets itself", m)
			}
		}
	}
	grp := arbitrationTable()[1]
	require.Equal(t, "three_finger", grp.name)
	assert.Contains(t, grp.exempt, RecThreeFingerClick)

	var names []string
	for _, target := range grp.onFire[RecThreeFingerSwipe] {
		names = append(names, target.name)
	}
	assert.Contains(t, names, RecThreeFingerClick, "the exemption filters a listed target")
}

func TestAtMostOneFirePerFrame(t *testing.T) {
	frames := func(steps []step) []Frame {
		out := make([]Frame, len(steps))
		for i, s := range steps {
			out[i] = Frame{Timestamp: s.ts, Touches: s.touches}
		}
		return out
	}
	resting := func(from, to float64, touches []TouchSample) []Frame {
		var out []Frame
		for ts := from; ts < to; ts += 0.1 {
			out = append(out, Frame{Timestamp: ts, Touches: touches})
		}
		return out
	}
	fingers := three(1, 0.5, 0.5)
	one := touch(1, 0.5, 0.5)

	tests := []struct {
		name   string
		frames []Frame
		want   []ID
	}{
		{
			name:   "hold tap against three finger taps",
			frames: append(frames(holdTapLeft()), Frame{Timestamp: 0.3}),
			want:   []ID{HoldTapLeft},
		},
		{
			name: "click in the long press report",
			frames: append(resting(0, 0.45, fingers),
				Frame{Timestamp: 0.5, Touches: fingers, Click: true},
				Frame{Timestamp: 0.6, Touches: fingers},
				Frame{Timestamp: 1.5, Touches: fingers}),
			want: []ID{ThreeFingerClick},
		},
		{
			name: "one finger hold against two finger taps",
			frames: frames([]step{
				{0.00, []TouchSample{one}},
				{0.12, []TouchSample{one}},
				{0.15, []TouchSample{one, touch(2, 0.7, 0.5)}},
				{0.25, []TouchSample{one}},
				{0.30, nil},
				{0.35, []TouchSample{touch(3, 0.5, 0.5), touch(4, 0.7, 0.5)}},
				{0.40, nil},
			}),
			want: []ID{OneFingerHoldTapRight},
		},
		{
			name: "swipe against long press",
			frames: append(frames([]step{
				{0.00, three(1, 0.5, 0.50)},
				{0.05, three(1, 0.5, 0.46)},
				{0.10, three(1, 0.5, 0.41)},
			}), resting(0.2, 1.5, three(1, 0.5, 0.41))...),
			want: []ID{ThreeFingerSwipeUp},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, nil)
			var all []ID
			for _, f := range tt.frames {
				res := h.engine.ProcessFrame(f)
				assert.LessOrEqual(t, len(res.Fired), 1, "frame at %.2f fired %v", f.Timestamp, res.Fired)
				all = append(all, res.Fired...)
			}
			assert.Equal(t, tt.want, all)
			assert.Equal(t, tt.want, h.exec.calls())
		})
	}
}

func TestSetSettingsTakesEffect(t *testing.T) {
	h := newHarness(t, nil)
	h.engine.SetSettings(StaticSettings{Disabled: map[ID]bool{ThreeFingerClick: true}})
	h.frame(0, three(1, 0.5, 0.5)...)
	assert.False(t, h.engine.HandlePhysicalClick(0.05))

	h.engine.SetSettings(nil)
	assert.True(t, h.engine.HandlePhysicalClick(0.06))
}

func TestSlot(t *testing.T) {
	var s Slot
	assert.Nil(t, s.Load())

	e := New(Config{})
	s.Store(e)
	assert.Same(t, e, s.Load())
	assert.Same(t, e, s.Clear())
	assert.Nil(t, s.Load())
}

func shift(steps []step, by float64) []step {
	out := make([]step, len(steps))
	for i, s := range steps {
		out[i] = step{ts: s.ts + by, touches: s.touches}
	}
	return out
}
