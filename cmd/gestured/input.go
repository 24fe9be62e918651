package main

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
)

// inputEvent represents a Linux input event structure
// struct input_event { struct timeval time; __u16 type; __u16 code; __s32 value; };
type inputEvent struct {
	Sec   int64
	Usec  int64
	Type  uint16
	Code  uint16
	Value int32
}

// isKeyPress reports whether ev is a key-down on a keyboard.
func (ev inputEvent) isKeyPress() bool {
	return ev.Type == EV_KEY && ev.Value == evValuePress && ev.Code < BTN_LEFT
}

// readInputEvents reads input events from f and sends them to events until
// ctx is cancelled or the read fails. Cancelling ctx closes f to unblock the
// pending read.
func readInputEvents(ctx context.Context, f *os.File, events chan<- inputEvent) error {
	stop := context.AfterFunc(ctx, func() { f.Close() })
	defer stop()

	evSize := binary.Size(inputEvent{})
	buf := make([]byte, evSize)
	reader := bytes.NewReader(buf) // reset on each iteration

	for {
		if _, err := io.ReadFull(f, buf); err != nil {
			if ctx.Err() != nil || errors.Is(err, os.ErrClosed) {
				return nil
			}
			return fmt.Errorf("read from %s: %w", f.Name(), err)
		}

		reader.Reset(buf)
		var ev inputEvent
		if err := binary.Read(reader, binary.LittleEndian, &ev); err != nil {
			// Skip malformed events
			continue
		}

		select {
		case events <- ev:
		case <-ctx.Done():
			return nil
		}
	}
}

// openDevices opens every path read-only. On failure the already opened
// files are closed.
func openDevices(paths []string) ([]*os.File, error) {
	files := make([]*os.File, 0, len(paths))
	for _, p := range paths {
		f, err := os.Open(ExpandPath(p))
		if err != nil {
			closeAll(files)
			return nil, fmt.Errorf("open input device %s: %w", p, err)
		}
		files = append(files, f)
	}
	return files, nil
}

func closeAll(files []*os.File) {
	for _, f := range files {
		f.Close()
	}
}
