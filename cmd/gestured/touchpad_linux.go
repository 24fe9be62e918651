//go:build linux

package main

import (
	"fmt"
	"os"
	"unsafe"

	"golang.org/x/sys/unix"
)

// eviocgabs builds the EVIOCGABS(axis) request, _IOR('E', 0x40+axis, struct input_absinfo).
func eviocgabs(axis uint16) uintptr {
	const iocRead = 2
	size := unsafe.Sizeof(absInfo{})
	return uintptr(iocRead<<30) | size<<16 | uintptr('E')<<8 | uintptr(0x40+axis)
}

// readAbsInfo queries the kernel for the range of an absolute axis.
func readAbsInfo(f *os.File, axis uint16) (absInfo, error) {
	var info absInfo
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, f.Fd(), eviocgabs(axis), uintptr(unsafe.Pointer(&info)))
	if errno != 0 {
		return absInfo{}, fmt.Errorf("EVIOCGABS(%#x) on %s: %w", axis, f.Name(), errno)
	}
	return info, nil
}
