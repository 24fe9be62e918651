package main

// Linux input event types and codes (from <linux/input.h>)
const (
	EV_SYN = 0x00
	EV_KEY = 0x01
	EV_ABS = 0x03

	SYN_REPORT  = 0x00
	SYN_DROPPED = 0x03

	BTN_LEFT = 0x110

	ABS_MT_SLOT        = 0x2f
	ABS_MT_TOUCH_MAJOR = 0x30
	ABS_MT_TOUCH_MINOR = 0x31
	ABS_MT_POSITION_X  = 0x35
	ABS_MT_POSITION_Y  = 0x36
	ABS_MT_TRACKING_ID = 0x39
)

// Input event value constants
const (
	evValueRelease = 0
	evValuePress   = 1
	evValueRepeat  = 2
)

const (
	defaultTouchpadDevice   = "/dev/input/event5"
	defaultSocketPath       = "/tmp/gestured.sock"
	defaultHTTPListen       = "127.0.0.1:7373"
	defaultHUDPath          = "/hud"
	defaultMetricsPath      = "/metrics"
	defaultTypingCooldownMS = 2000
	defaultSizeScale        = 0.1

	// Protocol B devices report at most this many simultaneous contacts.
	maxSlots = 16
)
