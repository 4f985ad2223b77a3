//go:build linux

package logvisor

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

// Linux keeps at most 15 bytes of a thread name (plus the terminating zero).
const _OS_THREAD_NAME_MAX = 15

// setOSThreadName labels the current OS thread with prctl(PR_SET_NAME).
// Only meaningful for goroutines pinned with runtime.LockOSThread; errors
// are ignored.
func setOSThreadName(name string) {
	if len(name) > _OS_THREAD_NAME_MAX {
		name = name[:_OS_THREAD_NAME_MAX]
	}
	cname, err := unix.BytePtrFromString(name)
	if err != nil {
		return
	}
	_ = unix.Prctl(unix.PR_SET_NAME, uintptr(unsafe.Pointer(cname)), 0, 0, 0)
}
