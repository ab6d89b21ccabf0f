//go:build linux && !amd64

package ptracer

import (
	"errors"
	"runtime"
)

var errUnsupportedArch = errors.New("register decoding not implemented for " + runtime.GOARCH)

// SyscallNo is not decoded on this architecture
func (c *Context) SyscallNo() uint64 {
	return ^uint64(0)
}

// ReturnValue is not decoded on this architecture
func (c *Context) ReturnValue() int64 {
	return 0
}

// getTrapContext fails on every stop so syscall stops are skipped
func getTrapContext(pid int) (*Context, error) {
	return nil, errUnsupportedArch
}
