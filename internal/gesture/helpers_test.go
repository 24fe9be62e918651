package gesture

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

type recordingExecutor struct {
	mu  sync.Mutex
	ids []ID
}

func (r *recordingExecutor) Execute(id ID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ids = append(r.ids, id)
}

func (r *recordingExecutor) calls() []ID {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]ID(nil), r.ids...)
}

type recordingFeedback struct {
	mu     sync.Mutex
	huds   []ID
	pulses int
}

func (r *recordingFeedback) ShowHUD(id ID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.huds = append(r.huds, id)
}

func (r *recordingFeedback) Pulse() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pulses++
}

type harness struct {
	t        *testing.T
	engine   *Engine
	exec     *recordingExecutor
	feedback *recordingFeedback
}

func newHarness(t *testing.T, settings Settings) *harness {
	t.Helper()
	h := &harness{t: t, exec: &recordingExecutor{}, feedback: &recordingFeedback{}}
	h.engine = New(Config{Settings: settings, Executor: h.exec, Feedback: h.feedback})
	return h
}

// frame feeds touches at ts and returns what fired.
func (h *harness) frame(ts float64, touches ...TouchSample) []ID {
	h.t.Helper()
	return h.engine.ProcessFrame(Frame{Timestamp: ts, Touches: touches}).Fired
}

func (h *harness) phase(name string) Phase {
	h.t.Helper()
	p, ok := h.engine.Phase(name)
	require.True(h.t, ok, "unknown recognizer %q", name)
	return p
}

func touch(id int32, x, y float32) TouchSample {
	return TouchSample{PathIndex: id, X: x, Y: y, MajorAxis: 5, MinorAxis: 4, State: StateTouching}
}

// three returns a row of three fingers centred on (x, y).
func three(base int32, x, y float32) []TouchSample {
	return []TouchSample{
		touch(base, x-0.1, y),
		touch(base+1, x, y),
		touch(base+2, x+0.1, y),
	}
}
