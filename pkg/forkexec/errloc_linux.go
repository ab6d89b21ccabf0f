// Package forkexec starts a child process with a raw clone and reports
// failures of the child's set-up steps through a close-on-exec side channel.
package forkexec

import (
	"fmt"
	"syscall"
)

// ErrorLocation is the step of the child's set-up that failed.
type ErrorLocation int

// ChildError is written by the child into the side channel when a set-up
// step or the execve itself fails.
type ChildError struct {
	Err      syscall.Errno
	Location ErrorLocation
}

// Location constants, in the order the child runs them
const (
	LocClone ErrorLocation = iota + 1
	LocCloseWrite
	LocGetPid
	LocDup3
	LocFcntl
	LocChdir
	LocPtraceMe
	LocStop
	LocExecve
)

var locToString = []string{
	"unknown",
	"clone",
	"close_write",
	"getpid",
	"dup3",
	"fcntl",
	"chdir",
	"ptrace_me",
	"stop",
	"execve",
}

func (e ErrorLocation) String() string {
	if e >= LocClone && e <= LocExecve {
		return locToString[e]
	}
	return "unknown"
}

func (e ChildError) Error() string {
	return fmt.Sprintf("%s: %s", e.Location.String(), e.Err.Error())
}

// Unwrap exposes the errno so callers can use errors.Is(err, syscall.ENOENT).
func (e ChildError) Unwrap() error {
	return e.Err
}
