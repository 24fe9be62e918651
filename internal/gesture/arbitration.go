package gesture

// Recognizer names. They are stable and double as log keys.
const (
	RecThreeFingerClick     = "three_finger_click"
	RecFourFingerClick      = "four_finger_click"
	RecFiveFingerClick      = "five_finger_click"
	RecThreeFingerDoubleTap = "three_finger_double_tap"
	RecThreeFingerTripleTap = "three_finger_triple_tap"
	RecThreeFingerLongPress = "three_finger_long_press"
	RecThreeFingerSwipe     = "three_finger_swipe"
	RecFourFingerDoubleTap  = "four_finger_double_tap"
	RecFourFingerLongPress  = "four_finger_long_press"
	RecFiveFingerTap        = "five_finger_tap"
	RecFiveFingerLongPress  = "five_finger_long_press"
	RecHoldTap              = "hold_tap"
	RecHoldSwipe            = "hold_swipe"
	RecHoldLongPress        = "hold_long_press"
	RecOneFingerHoldTap     = "one_finger_hold_tap"
	RecOneFingerHoldSwipe   = "one_finger_hold_swipe"
	RecTwoFingerSwipe       = "two_finger_swipe"
	RecTwoFingerDoubleTap   = "two_finger_double_tap"
)

func newRecognizers() []Recognizer {
	holdSwipes := directional{HoldSwipeUp, HoldSwipeDown, HoldSwipeLeft, HoldSwipeRight}
	return []Recognizer{
		newClickRecognizer(clickSpec{name: RecFiveFingerClick, id: FiveFingerClick, fingers: 5}),
		newClickRecognizer(clickSpec{name: RecFourFingerClick, id: FourFingerClick, fingers: 4}),
		newClickRecognizer(clickSpec{name: RecThreeFingerClick, id: ThreeFingerClick, fingers: 3}),

		newHoldRecognizer(holdSpec{name: RecHoldTap, held: 2, kind: secondaryTap,
			taps: sided{HoldTapLeft, HoldTapRight}}),
		newHoldRecognizer(holdSpec{name: RecHoldSwipe, held: 2, kind: secondarySwipeKind,
			swipes: holdSwipes}),
		newHoldRecognizer(holdSpec{name: RecHoldLongPress, held: 2, kind: secondaryLongPress,
			presses: sided{HoldLongPressLeft, HoldLongPressRight}}),

		newTapRecognizer(tapSpec{name: RecThreeFingerDoubleTap, id: ThreeFingerDoubleTap,
			fingers: 3, taps: 2, interval: doubleTapInterval}),
		newTapRecognizer(tapSpec{name: RecThreeFingerTripleTap, id: ThreeFingerTripleTap,
			fingers: 3, taps: 3, interval: tripleTapInterval}),
		newLongPressRecognizer(longPressSpec{name: RecThreeFingerLongPress, id: ThreeFingerLongPress,
			fingers: 3, duration: longPressDuration}),
		newSwipeRecognizer(swipeSpec{name: RecThreeFingerSwipe, fingers: 3,
			ids:       directional{ThreeFingerSwipeUp, ThreeFingerSwipeDown, ThreeFingerSwipeLeft, ThreeFingerSwipeRight},
			threshold: 0.08, ratio: swipeRatio, maxDuration: 0.6}),

		newTapRecognizer(tapSpec{name: RecFourFingerDoubleTap, id: FourFingerDoubleTap,
			fingers: 4, taps: 2, interval: doubleTapInterval}),
		newLongPressRecognizer(longPressSpec{name: RecFourFingerLongPress, id: FourFingerLongPress,
			fingers: 4, duration: longPressDuration}),

		newTapRecognizer(tapSpec{name: RecFiveFingerTap, id: FiveFingerTap,
			fingers: 5, taps: 1, interval: doubleTapInterval}),
		newLongPressRecognizer(longPressSpec{name: RecFiveFingerLongPress, id: FiveFingerLongPress,
			fingers: 5, duration: longPressDuration}),

		newHoldRecognizer(holdSpec{name: RecOneFingerHoldTap, held: 1, kind: secondaryTap,
			taps: sided{OneFingerHoldTapLeft, OneFingerHoldTapRight}}),
		newHoldRecognizer(holdSpec{name: RecOneFingerHoldSwipe, held: 1, kind: secondarySwipeKind,
			swipes: directional{OneFingerHoldSwipeUp, OneFingerHoldSwipeDown, OneFingerHoldSwipeLeft, OneFingerHoldSwipeRight}}),

		newSwipeRecognizer(swipeSpec{name: RecTwoFingerSwipe, fingers: 2,
			ids:       directional{TwoFingerSwipeUp, TwoFingerSwipeDown, TwoFingerSwipeLeft, TwoFingerSwipeRight},
			threshold: 0.12, ratio: 2.5, maxDuration: 0.5}),
		newTapRecognizer(tapSpec{name: RecTwoFingerDoubleTap, id: TwoFingerDoubleTap,
			fingers: 2, taps: 2, interval: doubleTapInterval}),
	}
}

type resetMode int

const (
	resetFull resetMode = iota
	// resetAnchor keeps a confirmed hold and drops only the secondary.
	resetAnchor
)

type resetTarget struct {
	name string
	mode resetMode
}

func full(names ...string) []resetTarget {
	out := make([]resetTarget, len(names))
	for i, n := range names {
		out[i] = resetTarget{name: n, mode: resetFull}
	}
	return out
}

func anchored(names ...string) []resetTarget {
	out := make([]resetTarget, len(names))
	for i, n := range names {
		out[i] = resetTarget{name: n, mode: resetAnchor}
	}
	return out
}

func join(sets ...[]resetTarget) []resetTarget {
	var out []resetTarget
	for _, s := range sets {
		out = append(out, s...)
	}
	return out
}

// conflictGroup is a set of recognizers evaluated together in a fixed
// order. When a member fires, its onFire targets are reset before the rest
// of the group runs, and targets are skipped for the remainder of the frame.
type conflictGroup struct {
	name    string
	members []string
	onFire  map[string][]resetTarget
	// exempt are never reset by this group, whatever onFire says.
	exempt []string
}

var (
	threeFingerGroup = []string{RecThreeFingerDoubleTap, RecThreeFingerTripleTap, RecThreeFingerLongPress, RecThreeFingerSwipe}
	holdGroup        = []string{RecHoldTap, RecHoldSwipe, RecHoldLongPress}
	fourFingerGroup  = []string{RecFourFingerDoubleTap, RecFourFingerLongPress}
	fiveFingerGroup  = []string{RecFiveFingerTap, RecFiveFingerLongPress}
	twoFingerGroup   = []string{RecTwoFingerSwipe, RecTwoFingerDoubleTap}

	// threeFingerContacts is everything watching three resting fingers,
	// including the click, which the three_finger group exempts.
	threeFingerContacts = []string{RecThreeFingerClick, RecThreeFingerDoubleTap, RecThreeFingerTripleTap, RecThreeFingerLongPress, RecThreeFingerSwipe}
)

func except(names []string, skip string) []string {
	var out []string
	for _, n := range names {
		if n != skip {
			out = append(out, n)
		}
	}
	return out
}

// arbitrationTable lists the per-frame groups in evaluation order.
func arbitrationTable() []conflictGroup {
	return []conflictGroup{
		{
			name:    "hold",
			members: holdGroup,
			onFire: map[string][]resetTarget{
				RecHoldTap:       join(anchored(RecHoldSwipe, RecHoldLongPress), full(threeFingerGroup...)),
				RecHoldSwipe:     join(anchored(RecHoldTap, RecHoldLongPress), full(threeFingerGroup...)),
				RecHoldLongPress: join(anchored(RecHoldTap, RecHoldSwipe), full(threeFingerGroup...)),
			},
		},
		{
			name:    "three_finger",
			members: threeFingerGroup,
			onFire: map[string][]resetTarget{
				RecThreeFingerDoubleTap: full(except(threeFingerContacts, RecThreeFingerDoubleTap)...),
				RecThreeFingerTripleTap: full(except(threeFingerContacts, RecThreeFingerTripleTap)...),
				RecThreeFingerLongPress: full(except(threeFingerContacts, RecThreeFingerLongPress)...),
				RecThreeFingerSwipe:     full(except(threeFingerContacts, RecThreeFingerSwipe)...),
			},
			exempt: []string{RecThreeFingerClick},
		},
		{
			name:    "four_finger",
			members: fourFingerGroup,
		},
		{
			name:    "five_finger",
			members: fiveFingerGroup,
			onFire: map[string][]resetTarget{
				RecFiveFingerTap:       full(RecFiveFingerLongPress, RecFiveFingerClick),
				RecFiveFingerLongPress: full(RecFiveFingerTap, RecFiveFingerClick),
			},
		},
		{
			name:    "one_finger_hold",
			members: []string{RecOneFingerHoldTap, RecOneFingerHoldSwipe},
			onFire: map[string][]resetTarget{
				RecOneFingerHoldTap:   join(anchored(RecOneFingerHoldSwipe), full(twoFingerGroup...)),
				RecOneFingerHoldSwipe: join(anchored(RecOneFingerHoldTap), full(twoFingerGroup...)),
			},
		},
		{
			name:    "two_finger",
			members: twoFingerGroup,
			onFire: map[string][]resetTarget{
				RecTwoFingerSwipe:     full(RecTwoFingerDoubleTap),
				RecTwoFingerDoubleTap: full(RecTwoFingerSwipe),
			},
		},
	}
}

// clickOrder is the priority in which a physical click is offered to the
// click recognizers. The first one that fires wins.
var clickOrder = []string{RecFiveFingerClick, RecFourFingerClick, RecThreeFingerClick}

// clickResets lists what each click invalidates when it fires.
func clickResets() map[string][]resetTarget {
	return map[string][]resetTarget{
		RecFiveFingerClick:  full(fiveFingerGroup...),
		RecFourFingerClick:  full(fourFingerGroup...),
		RecThreeFingerClick: join(full(threeFingerGroup...), anchored(holdGroup...)),
	}
}
