// Package gesture recognizes multi-finger trackpad gestures from a stream of
// touch frames.
//
// An Engine owns a fixed set of recognizers, each a small state machine
// for one gesture family: taps, long presses, swipes, holds with a
// secondary finger, and physical clicks. Every frame is offered to all of
// them in a fixed order. When one fires, a conflict table resets the
// recognizers it competes with and the contacts it used are claimed until
// they lift, so a single motion never produces two gestures.
//
// Effects never run under the engine lock. Firing only queues a
// PendingAction; the queue is drained after the pass completes.
package gesture
