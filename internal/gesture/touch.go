package gesture

// TouchState is the tracking phase reported by the sensor for one contact.
// The order matches the sensor's own lifecycle.
type TouchState int

const (
	StateNotTracking TouchState = iota
	StateStartInRange
	StateHoverInRange
	StateMakeTouch
	StateTouching
	StateBreakTouch
	StateLingerInRange
	StateOutOfRange
)

var touchStateNames = [...]string{
	"not_tracking",
	"start_in_range",
	"hover_in_range",
	"make_touch",
	"touching",
	"break_touch",
	"linger_in_range",
	"out_of_range",
}

func (s TouchState) String() string {
	if s < 0 || int(s) >= len(touchStateNames) {
		return "unknown"
	}
	return touchStateNames[s]
}

// ParseTouchState is the inverse of TouchState.String.
func ParseTouchState(name string) (TouchState, bool) {
	for i, n := range touchStateNames {
		if n == name {
			return TouchState(i), true
		}
	}
	return StateNotTracking, false
}

// Active reports whether the contact is on the surface for gesture purposes.
func (s TouchState) Active() bool {
	return s == StateMakeTouch || s == StateTouching
}

// TouchSample is one finger's state within one frame.
//
// X and Y are normalized to [0,1] with the origin at the top-left corner,
// so a positive Y delta is a downward move.
type TouchSample struct {
	PathIndex int32
	X, Y      float32
	MajorAxis float32
	MinorAxis float32
	State     TouchState
}

// Frame is the set of contacts reported by the sensor at one instant.
//
// Callers guarantee that no two samples share a PathIndex and that
// timestamps strictly increase across calls; neither is checked.
type Frame struct {
	Timestamp float64
	Touches   []TouchSample
	// Click is set when the physical button went down in the same report.
	Click bool
}

// ActiveTouches returns the samples that count as fingers on the surface.
func (f Frame) ActiveTouches() []TouchSample {
	out := make([]TouchSample, 0, len(f.Touches))
	for _, t := range f.Touches {
		if t.State.Active() {
			out = append(out, t)
		}
	}
	return out
}

// Touch classification constants.
const (
	EdgeMargin        = 0.03
	TypingSideMargin  = 0.30
	TypingTopMargin   = 0.20
	PalmMajorAxisSize = 10.0
)

// IsEdgeTouch reports whether the sample lies within EdgeMargin of any border.
func IsEdgeTouch(t TouchSample) bool {
	return t.X < EdgeMargin || t.X > 1-EdgeMargin ||
		t.Y < EdgeMargin || t.Y > 1-EdgeMargin
}

// IsTypingEdge reports whether the sample lies in the zone a resting palm or
// thumb reaches while typing: the outer side strips and the top strip.
func IsTypingEdge(t TouchSample) bool {
	return t.X < TypingSideMargin || t.X > 1-TypingSideMargin || t.Y < TypingTopMargin
}

// IsPalmSized reports whether the contact ellipse is too large for a finger.
func IsPalmSized(t TouchSample) bool {
	return t.MajorAxis > PalmMajorAxisSize
}
