package gesture

// ID identifies a gesture outcome. It is the only thing the action executor
// ever sees.
type ID string

const (
	ThreeFingerClick ID = "three_finger_click"
	FourFingerClick  ID = "four_finger_click"
	FiveFingerClick  ID = "five_finger_click"

	ThreeFingerDoubleTap  ID = "three_finger_double_tap"
	ThreeFingerTripleTap  ID = "three_finger_triple_tap"
	ThreeFingerLongPress  ID = "three_finger_long_press"
	ThreeFingerSwipeUp    ID = "three_finger_swipe_up"
	ThreeFingerSwipeDown  ID = "three_finger_swipe_down"
	ThreeFingerSwipeLeft  ID = "three_finger_swipe_left"
	ThreeFingerSwipeRight ID = "three_finger_swipe_right"

	FourFingerDoubleTap ID = "four_finger_double_tap"
	FourFingerLongPress ID = "four_finger_long_press"

	FiveFingerTap       ID = "five_finger_tap"
	FiveFingerLongPress ID = "five_finger_long_press"

	HoldTapLeft        ID = "hold_tap_left"
	HoldTapRight       ID = "hold_tap_right"
	HoldSwipeUp        ID = "hold_swipe_up"
	HoldSwipeDown      ID = "hold_swipe_down"
	HoldSwipeLeft      ID = "hold_swipe_left"
	HoldSwipeRight     ID = "hold_swipe_right"
	HoldLongPressLeft  ID = "hold_long_press_left"
	HoldLongPressRight ID = "hold_long_press_right"

	OneFingerHoldTapLeft    ID = "one_finger_hold_tap_left"
	OneFingerHoldTapRight   ID = "one_finger_hold_tap_right"
	OneFingerHoldSwipeUp    ID = "one_finger_hold_swipe_up"
	OneFingerHoldSwipeDown  ID = "one_finger_hold_swipe_down"
	OneFingerHoldSwipeLeft  ID = "one_finger_hold_swipe_left"
	OneFingerHoldSwipeRight ID = "one_finger_hold_swipe_right"

	TwoFingerSwipeUp    ID = "two_finger_swipe_up"
	TwoFingerSwipeDown  ID = "two_finger_swipe_down"
	TwoFingerSwipeLeft  ID = "two_finger_swipe_left"
	TwoFingerSwipeRight ID = "two_finger_swipe_right"
	TwoFingerDoubleTap  ID = "two_finger_double_tap"
)

// AllIDs lists every gesture the engine can fire, grouped by recognizer.
func AllIDs() []ID {
	return []ID{
		ThreeFingerClick, FourFingerClick, FiveFingerClick,
		ThreeFingerDoubleTap, ThreeFingerTripleTap, ThreeFingerLongPress,
		ThreeFingerSwipeUp, ThreeFingerSwipeDown, ThreeFingerSwipeLeft, ThreeFingerSwipeRight,
		FourFingerDoubleTap, FourFingerLongPress,
		FiveFingerTap, FiveFingerLongPress,
		HoldTapLeft, HoldTapRight,
		HoldSwipeUp, HoldSwipeDown, HoldSwipeLeft, HoldSwipeRight,
		HoldLongPressLeft, HoldLongPressRight,
		OneFingerHoldTapLeft, OneFingerHoldTapRight,
		OneFingerHoldSwipeUp, OneFingerHoldSwipeDown, OneFingerHoldSwipeLeft, OneFingerHoldSwipeRight,
		TwoFingerSwipeUp, TwoFingerSwipeDown, TwoFingerSwipeLeft, TwoFingerSwipeRight,
		TwoFingerDoubleTap,
	}
}

// KnownID reports whether id is one of AllIDs.
func KnownID(id ID) bool {
	for _, k := range AllIDs() {
		if k == id {
			return true
		}
	}
	return false
}

// Direction of a swipe along its dominant axis.
type Direction int

const (
	DirNone Direction = iota
	DirUp
	DirDown
	DirLeft
	DirRight
)

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "none"
	}
}

// Side of the secondary finger relative to the hold's average x.
type Side int

const (
	SideLeft Side = iota
	SideRight
)

func (s Side) String() string {
	if s == SideLeft {
		return "left"
	}
	return "right"
}

// directional maps the four swipe directions to gesture IDs.
type directional struct {
	Up, Down, Left, Right ID
}

func (d directional) pick(dir Direction) ID {
	switch dir {
	case DirUp:
		return d.Up
	case DirDown:
		return d.Down
	case DirLeft:
		return d.Left
	case DirRight:
		return d.Right
	}
	return ""
}

// sided maps the secondary finger's side to gesture IDs.
type sided struct {
	Left, Right ID
}

func (s sided) pick(side Side) ID {
	if side == SideLeft {
		return s.Left
	}
	return s.Right
}
