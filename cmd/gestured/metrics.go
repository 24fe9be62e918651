package main

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"gestured/internal/gesture"
)

const metricsNamespace = "gestured"

// metrics groups the daemon's Prometheus collectors. A nil *metrics is
// valid and records nothing.
type metrics struct {
	gesturesFired *prometheus.CounterVec
	clicks        *prometheus.CounterVec
	framePass     prometheus.Histogram
	actionsFailed *prometheus.CounterVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		gesturesFired: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "gestures_fired_total",
			Help:      "Gesture actions dispatched, by gesture.",
		}, []string{"gesture"}),
		clicks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "clicks_total",
			Help:      "Physical clicks seen, by whether a click gesture claimed them.",
		}, []string{"suppressed"}),
		framePass: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "frame_pass_seconds",
			Help:      "Time spent in one engine pass over a touch frame.",
			Buckets:   prometheus.ExponentialBuckets(5e-6, 2, 12),
		}),
		actionsFailed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "actions_failed_total",
			Help:      "Gesture commands that failed to start or exited non-zero.",
		}, []string{"gesture"}),
	}
	reg.MustRegister(m.gesturesFired, m.clicks, m.framePass, m.actionsFailed)
	return m
}

func (m *metrics) fired(id gesture.ID) {
	if m == nil {
		return
	}
	m.gesturesFired.WithLabelValues(string(id)).Inc()
}

func (m *metrics) click(suppressed bool) {
	if m == nil {
		return
	}
	m.clicks.WithLabelValues(strconv.FormatBool(suppressed)).Inc()
}

func (m *metrics) pass(d time.Duration) {
	if m == nil {
		return
	}
	m.framePass.Observe(d.Seconds())
}

func (m *metrics) actionFailed(id gesture.ID) {
	if m == nil {
		return
	}
	m.actionsFailed.WithLabelValues(string(id)).Inc()
}
