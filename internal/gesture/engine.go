package gesture

import (
	"io"
	"log/slog"
	"sync"
)

// DefaultTypingCooldown is how long after a keystroke touches in the typing
// zone are ignored, in seconds.
const DefaultTypingCooldown = 2.0

// Config wires an Engine to its collaborators. Nil fields get no-op
// implementations.
type Config struct {
	Settings       Settings
	Executor       Executor
	Feedback       Feedback
	Logger         *slog.Logger
	TypingCooldown float64
}

// Result describes what one call fired, in firing order.
type Result struct {
	Fired []ID
	// ClickSuppressed is set when the frame carried a physical click that a
	// click gesture consumed.
	ClickSuppressed bool
}

// Engine runs every recognizer over each frame and arbitrates between them.
//
// All methods are safe for concurrent use. Effects are queued while the
// engine lock is held and run on the calling goroutine after it is released.
type Engine struct {
	mu sync.Mutex

	settings       Settings
	executor       Executor
	feedback       Feedback
	logger         *slog.Logger
	typingCooldown float64

	recognizers map[string]Recognizer
	order       []Recognizer
	clicks      []*ClickRecognizer
	groups      []conflictGroup
	clickResets map[string][]resetTarget
	doubleTap   *TapRecognizer
	tripleTap   *TapRecognizer

	app     string
	lastKey float64
	keySeen bool
	touches []TouchSample
	claims  map[int32]struct{}
	latch   liftLatch
	queue   actionQueue
}

// New builds an engine with every recognizer idle.
func New(cfg Config) *Engine {
	e := &Engine{
		settings:       cfg.Settings,
		executor:       cfg.Executor,
		feedback:       cfg.Feedback,
		logger:         cfg.Logger,
		typingCooldown: cfg.TypingCooldown,
		recognizers:    make(map[string]Recognizer),
		claims:         make(map[int32]struct{}),
		groups:         arbitrationTable(),
		clickResets:    clickResets(),
	}
	if e.settings == nil {
		e.settings = StaticSettings{}
	}
	if e.executor == nil {
		e.executor = nopExecutor{}
	}
	if e.feedback == nil {
		e.feedback = nopFeedback{}
	}
	if e.logger == nil {
		e.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if e.typingCooldown <= 0 {
		e.typingCooldown = DefaultTypingCooldown
	}

	e.order = newRecognizers()
	for _, r := range e.order {
		e.recognizers[r.Name()] = r
	}
	for _, name := range clickOrder {
		e.clicks = append(e.clicks, e.recognizers[name].(*ClickRecognizer))
	}
	e.doubleTap = e.recognizers[RecThreeFingerDoubleTap].(*TapRecognizer)
	e.tripleTap = e.recognizers[RecThreeFingerTripleTap].(*TapRecognizer)
	return e
}

// ProcessFrame feeds one sensor frame through every recognizer. A click
// carried by the frame is offered before any other group runs.
func (e *Engine) ProcessFrame(f Frame) Result {
	e.mu.Lock()
	res := e.pass(f)
	pending := e.queue.drain()
	e.mu.Unlock()

	runPending(pending)
	return res
}

func (e *Engine) pass(f Frame) Result {
	touches := f.ActiveTouches()
	ts := f.Timestamp

	e.releaseClaims(touches)
	e.latch.observe(len(touches))
	e.touches = touches

	env := e.env(ts)

	for _, c := range e.clicks {
		c.ProcessFrame(env, touches, ts)
	}
	var suppressed bool
	if f.Click {
		suppressed = e.offerClick(env, touches, ts)
	}

	e.doubleTap.SuppressFire = env.Enabled(ThreeFingerTripleTap) && e.tripleTap.Phase() != PhaseIdle

	for _, g := range e.groups {
		skip := make(map[string]bool)
		for _, name := range g.members {
			if skip[name] {
				continue
			}
			r := e.recognizers[name]
			if !r.ProcessFrame(env, touches, ts) {
				continue
			}
			for _, t := range e.resolve(name, g.onFire[name], g.exempt) {
				skip[t] = true
			}
		}
	}
	return Result{Fired: env.fired, ClickSuppressed: suppressed}
}

// HandlePhysicalClick offers a button press that arrived on its own to the
// armed click recognizers, against the touches of the last frame. It
// reports whether the system's own click should be suppressed.
func (e *Engine) HandlePhysicalClick(ts float64) bool {
	e.mu.Lock()
	suppress := e.offerClick(e.env(ts), e.touches, ts)
	pending := e.queue.drain()
	e.mu.Unlock()

	runPending(pending)
	return suppress
}

// offerClick gives the press to the click recognizers in priority order.
// The first to fire resets what it conflicts with.
func (e *Engine) offerClick(env *Env, touches []TouchSample, ts float64) bool {
	for _, c := range e.clicks {
		if c.Click(env, touches, ts) {
			e.resolve(c.Name(), e.clickResets[c.Name()], nil)
			return true
		}
	}
	return false
}

// resolve applies the reset targets of a fired recognizer and returns the
// names it touched.
func (e *Engine) resolve(firer string, targets []resetTarget, exempt []string) []string {
	var done []string
	for _, t := range targets {
		if contains(exempt, t.name) {
			continue
		}
		r, ok := e.recognizers[t.name]
		if !ok {
			continue
		}
		if ar, ok := r.(anchorResetter); ok && t.mode == resetAnchor {
			ar.ResetToAnchor()
		} else {
			r.Reset()
		}
		done = append(done, t.name)
	}
	if len(done) > 0 {
		e.logger.Debug("conflict reset", "fired", firer, "reset", done)
	}
	return done
}

// releaseClaims forgets contacts that are no longer on the surface.
func (e *Engine) releaseClaims(touches []TouchSample) {
	for id := range e.claims {
		if _, ok := findTouch(touches, id); !ok {
			delete(e.claims, id)
		}
	}
}

func (e *Engine) env(ts float64) *Env {
	typing := e.keySeen && ts-e.lastKey <= e.typingCooldown
	return &Env{
		settings: e.settings,
		executor: e.executor,
		feedback: e.feedback,
		logger:   e.logger,
		app:      e.app,
		typing:   typing,
		claims:   e.claims,
		queue:    &e.queue,
		latch:    &e.latch,
	}
}

// NoteKeystroke records keyboard activity at ts, in the frame clock.
func (e *Engine) NoteKeystroke(ts float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.lastKey = ts
	e.keySeen = true
}

// SetFrontmostApp changes the app used for per-app enablement.
func (e *Engine) SetFrontmostApp(app string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if app != e.app {
		e.logger.Debug("frontmost app changed", "app", app)
	}
	e.app = app
}

// SetSettings swaps the settings consulted from the next pass on.
func (e *Engine) SetSettings(s Settings) {
	if s == nil {
		s = StaticSettings{}
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.settings = s
}

// ConsumeLiftEvent returns the deferred gesture whose fingers have all
// lifted. It reports true once per deferred fire.
func (e *Engine) ConsumeLiftEvent() (ID, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.latch.consume()
}

// Phase returns the phase of the named recognizer.
func (e *Engine) Phase(name string) (Phase, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	r, ok := e.recognizers[name]
	if !ok {
		return PhaseIdle, false
	}
	return r.Phase(), true
}

// Names lists the recognizers in construction order.
func (e *Engine) Names() []string {
	out := make([]string, len(e.order))
	for i, r := range e.order {
		out[i] = r.Name()
	}
	return out
}

// ResetAll returns every recognizer to Idle and forgets claims. A pending
// lift event survives.
func (e *Engine) ResetAll() {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, r := range e.order {
		r.Reset()
	}
	clear(e.claims)
	e.touches = nil
	e.logger.Debug("all recognizers reset")
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
