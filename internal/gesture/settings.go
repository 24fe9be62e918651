package gesture

// Knob names a family of tolerances that the user can scale.
type Knob int

const (
	KnobMove Knob = iota
	KnobSwipe
	KnobTapSpeed
	KnobLongPress
	KnobHold
)

func (k Knob) String() string {
	switch k {
	case KnobMove:
		return "move"
	case KnobSwipe:
		return "swipe"
	case KnobTapSpeed:
		return "tap_speed"
	case KnobLongPress:
		return "long_press"
	case KnobHold:
		return "hold"
	default:
		return "unknown"
	}
}

// Multiplier bounds accepted by Settings implementations.
const (
	MinMultiplier = 0.5
	MaxMultiplier = 2.0
)

// ClampMultiplier forces m into [MinMultiplier, MaxMultiplier]. Zero means 1.
func ClampMultiplier(m float64) float64 {
	if m == 0 {
		return 1
	}
	if m < MinMultiplier {
		return MinMultiplier
	}
	if m > MaxMultiplier {
		return MaxMultiplier
	}
	return m
}

// FeedbackFlags selects which feedback consumers run when a gesture fires.
type FeedbackFlags struct {
	HUD    bool
	Haptic bool
}

// Settings is the read-only view of user configuration the engine consults
// on every pass. Implementations must be safe for concurrent use.
type Settings interface {
	// Enabled reports whether id may enqueue its action while app is frontmost.
	Enabled(app string, id ID) bool
	// Effective scales a base tolerance by the user's multiplier for k.
	Effective(k Knob, base float64) float64
	Feedback() FeedbackFlags
	// DeferUntilLift reports whether the action for id runs only once all
	// fingers have left the surface.
	DeferUntilLift(id ID) bool
}

// Executor turns a gesture identifier into its effect.
type Executor interface {
	Execute(id ID)
}

// Feedback receives user-visible confirmation of a fired gesture.
type Feedback interface {
	ShowHUD(id ID)
	Pulse()
}

// StaticSettings is an in-memory Settings with fixed values. A nil Disabled
// map enables everything.
type StaticSettings struct {
	Disabled    map[ID]bool
	AppDisabled map[string]map[ID]bool
	Multipliers map[Knob]float64
	Flags       FeedbackFlags
	Deferred    map[ID]bool
}

// Enabled implements Settings.
func (s StaticSettings) Enabled(app string, id ID) bool {
	if s.Disabled[id] {
		return false
	}
	if perApp, ok := s.AppDisabled[app]; ok && perApp[id] {
		return false
	}
	return true
}

// Effective implements Settings.
func (s StaticSettings) Effective(k Knob, base float64) float64 {
	return base * ClampMultiplier(s.Multipliers[k])
}

// Feedback implements Settings.
func (s StaticSettings) Feedback() FeedbackFlags { return s.Flags }

// DeferUntilLift implements Settings.
func (s StaticSettings) DeferUntilLift(id ID) bool { return s.Deferred[id] }

type nopExecutor struct{}

func (nopExecutor) Execute(ID) {}

type nopFeedback struct{}

func (nopFeedback) ShowHUD(ID) {}
func (nopFeedback) Pulse()     {}
