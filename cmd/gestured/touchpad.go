package main

import (
	"fmt"
	"os"

	"gestured/internal/gesture"
)

// absInfo mirrors struct input_absinfo.
type absInfo struct {
	Value      int32
	Minimum    int32
	Maximum    int32
	Fuzz       int32
	Flat       int32
	Resolution int32
}

type axisRange struct {
	min, max int32
}

// normalize maps v into [0,1]. A degenerate range maps everything to 0.
func (a axisRange) normalize(v int32) float32 {
	span := a.max - a.min
	if span <= 0 {
		return 0
	}
	f := float32(v-a.min) / float32(span)
	switch {
	case f < 0:
		return 0
	case f > 1:
		return 1
	}
	return f
}

// probeAxes reads the X and Y ranges of a multitouch device.
func probeAxes(f *os.File) (x, y axisRange, err error) {
	xi, err := readAbsInfo(f, ABS_MT_POSITION_X)
	if err != nil {
		return axisRange{}, axisRange{}, err
	}
	yi, err := readAbsInfo(f, ABS_MT_POSITION_Y)
	if err != nil {
		return axisRange{}, axisRange{}, err
	}
	if xi.Maximum <= xi.Minimum || yi.Maximum <= yi.Minimum {
		return axisRange{}, axisRange{}, fmt.Errorf("%s: not a multitouch surface (x %d..%d, y %d..%d)",
			f.Name(), xi.Minimum, xi.Maximum, yi.Minimum, yi.Maximum)
	}
	return axisRange{xi.Minimum, xi.Maximum}, axisRange{yi.Minimum, yi.Maximum}, nil
}

type mtSlot struct {
	trackingID   int32 // -1 when the slot is empty
	x, y         int32
	major, minor int32
	fresh        bool
}

// mtDecoder turns a type B multitouch event stream into frames.
type mtDecoder struct {
	slots     [maxSlots]mtSlot
	cur       int
	x, y      axisRange
	sizeScale float32

	pendingClick bool
	// dropped is set after SYN_DROPPED; events are ignored until the next
	// SYN_REPORT.
	dropped bool
}

func newMTDecoder(x, y axisRange, sizeScale float64) *mtDecoder {
	d := &mtDecoder{x: x, y: y, sizeScale: float32(sizeScale)}
	for i := range d.slots {
		d.slots[i].trackingID = -1
	}
	return d
}

// feed consumes one kernel event. It returns a frame on SYN_REPORT, with
// Click set when the button went down in the same report.
func (d *mtDecoder) feed(ev inputEvent, ts float64) (gesture.Frame, bool) {
	switch ev.Type {
	case EV_SYN:
		switch ev.Code {
		case SYN_DROPPED:
			d.dropped = true
			return gesture.Frame{}, false
		case SYN_REPORT:
			if d.dropped {
				d.dropped = false
				d.pendingClick = false
				return gesture.Frame{}, false
			}
			return d.report(ts), true
		}

	case EV_KEY:
		if d.dropped {
			return gesture.Frame{}, false
		}
		if ev.Code == BTN_LEFT && ev.Value == evValuePress {
			d.pendingClick = true
		}

	case EV_ABS:
		if d.dropped {
			return gesture.Frame{}, false
		}
		d.abs(ev.Code, ev.Value)
	}
	return gesture.Frame{}, false
}

func (d *mtDecoder) abs(code uint16, value int32) {
	if code == ABS_MT_SLOT {
		if value >= 0 && int(value) < maxSlots {
			d.cur = int(value)
		}
		return
	}
	s := &d.slots[d.cur]
	switch code {
	case ABS_MT_TRACKING_ID:
		if value < 0 {
			*s = mtSlot{trackingID: -1}
			return
		}
		s.trackingID = value
		s.fresh = true
	case ABS_MT_POSITION_X:
		s.x = value
	case ABS_MT_POSITION_Y:
		s.y = value
	case ABS_MT_TOUCH_MAJOR:
		s.major = value
	case ABS_MT_TOUCH_MINOR:
		s.minor = value
	}
}

func (d *mtDecoder) report(ts float64) gesture.Frame {
	out := gesture.Frame{Timestamp: ts, Click: d.pendingClick}
	d.pendingClick = false
	for i := range d.slots {
		s := &d.slots[i]
		if s.trackingID < 0 {
			continue
		}
		state := gesture.StateTouching
		if s.fresh {
			state = gesture.StateMakeTouch
			s.fresh = false
		}
		out.Touches = append(out.Touches, gesture.TouchSample{
			PathIndex: s.trackingID,
			X:         d.x.normalize(s.x),
			Y:         d.y.normalize(s.y),
			MajorAxis: float32(s.major) * d.sizeScale,
			MinorAxis: float32(s.minor) * d.sizeScale,
			State:     state,
		})
	}
	return out
}
