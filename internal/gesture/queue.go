package gesture

// PendingAction is a side effect captured while the engine lock is held and
// run after it is released.
type PendingAction struct {
	Gesture ID
	Run     func()
}

// actionQueue is the FIFO of actions produced by one pass.
type actionQueue struct {
	pending []PendingAction
}

func (q *actionQueue) push(a PendingAction) {
	q.pending = append(q.pending, a)
}

// drain hands over everything queued so far and empties the queue.
func (q *actionQueue) drain() []PendingAction {
	out := q.pending
	q.pending = nil
	return out
}

func runPending(actions []PendingAction) {
	for _, a := range actions {
		if a.Run != nil {
			a.Run()
		}
	}
}

// liftLatch remembers a deferred gesture until every finger has left the
// surface. It lives in the engine so that recognizer resets cannot clear it.
type liftLatch struct {
	armed bool
	ready bool
	id    ID
}

// arm replaces any earlier deferred gesture that has not been consumed yet.
func (l *liftLatch) arm(id ID) {
	l.armed = true
	l.ready = false
	l.id = id
}

func (l *liftLatch) observe(active int) {
	if l.armed && active == 0 {
		l.armed = false
		l.ready = true
	}
}

func (l *liftLatch) consume() (ID, bool) {
	if !l.ready {
		return "", false
	}
	id := l.id
	*l = liftLatch{}
	return id, true
}
