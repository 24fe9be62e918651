//go:build !linux

package main

import (
	"context"
	"errors"
	"os"
)

var errNoEvdev = errors.New("evdev input is only available on linux")

func readKeyboardEvents(ctx context.Context, files []*os.File, events chan<- inputEvent) error {
	return errNoEvdev
}

func readAbsInfo(f *os.File, axis uint16) (absInfo, error) {
	return absInfo{}, errNoEvdev
}
