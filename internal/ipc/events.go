// Package ipc is the control protocol spoken over the daemon's Unix socket.
//
// Protocol: line-delimited JSON.
//   - Client sends: {"type": "event_name", "data": {...}}
//   - Server responds: {"status": "ok"} or {"status": "error", "error": "msg"}
package ipc

import (
	"encoding/json"
	"fmt"
)

// Event is a marker interface for control events.
type Event interface {
	eventMarker()
}

// KeyPressed reports a keystroke seen outside the daemon's own keyboard
// readers, for example from a compositor hook.
type KeyPressed struct{}

func (KeyPressed) eventMarker() {}

// AppFocused reports the new frontmost application.
type AppFocused struct {
	App string `json:"app"`
}

func (AppFocused) eventMarker() {}

// ResetGestures abandons every in-flight gesture.
type ResetGestures struct{}

func (ResetGestures) eventMarker() {}

// ReloadConfig asks the daemon to re-read its config file.
type ReloadConfig struct{}

func (ReloadConfig) eventMarker() {}

const (
	typeKeyPressed    = "key_pressed"
	typeAppFocused    = "app_focused"
	typeResetGestures = "reset"
	typeReloadConfig  = "reload_config"
)

// Envelope wraps an event with a type discriminator for JSON marshaling.
type Envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// Response is sent back to the client for every line it writes.
type Response struct {
	Status string `json:"status"`          // "ok" or "error"
	Error  string `json:"error,omitempty"` // set when Status is "error"
}

// UnmarshalEvent deserializes a JSON envelope into a concrete Event.
func UnmarshalEvent(data []byte) (Event, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("unmarshal envelope: %w", err)
	}

	switch env.Type {
	case typeKeyPressed:
		return KeyPressed{}, nil

	case typeAppFocused:
		var a AppFocused
		if len(env.Data) == 0 {
			return nil, fmt.Errorf("unmarshal AppFocused: missing data")
		}
		if err := json.Unmarshal(env.Data, &a); err != nil {
			return nil, fmt.Errorf("unmarshal AppFocused: %w", err)
		}
		return a, nil

	case typeResetGestures:
		return ResetGestures{}, nil

	case typeReloadConfig:
		return ReloadConfig{}, nil

	default:
		return nil, fmt.Errorf("unknown event type: %q", env.Type)
	}
}

// MarshalEvent serializes an Event into a JSON envelope.
func MarshalEvent(e Event) ([]byte, error) {
	var env Envelope

	switch e := e.(type) {
	case KeyPressed:
		env.Type = typeKeyPressed

	case AppFocused:
		env.Type = typeAppFocused
		data, err := json.Marshal(e)
		if err != nil {
			return nil, fmt.Errorf("marshal AppFocused: %w", err)
		}
		env.Data = data

	case ResetGestures:
		env.Type = typeResetGestures

	case ReloadConfig:
		env.Type = typeReloadConfig

	default:
		return nil, fmt.Errorf("unsupported event type: %T", e)
	}

	return json.Marshal(env)
}
