package ptracer

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
)

// ErrProtocol is returned when the child's first stop is not the SIGSTOP it
// raises before execve. Tracing is not possible in that case.
var ErrProtocol = errors.New("child did not stop before exec")

// traceOptions makes syscall stops distinguishable (TRACESYSGOOD), turns the
// post-exec SIGTRAP into an exec event and kills the child if we die.
const traceOptions = unix.PTRACE_O_TRACESYSGOOD | unix.PTRACE_O_TRACEEXEC | unix.PTRACE_O_EXITKILL

// launch is the parent half of the start-up handshake. The child has
// requested tracing and stopped itself; wait for that stop, configure the
// trace options while nothing of the target has run yet, then let the child
// run to its first syscall stop.
func launch(pid int) error {
	ws, _, err := wait4(pid)
	if err != nil {
		return fmt.Errorf("wait for initial stop: %w", err)
	}
	if !ws.Stopped() || ws.StopSignal() != unix.SIGSTOP {
		return fmt.Errorf("%w: %s", ErrProtocol, describe(ws))
	}

	if err := unix.PtraceSetOptions(pid, traceOptions); err != nil {
		return fmt.Errorf("set ptrace options: %w", err)
	}
	if err := unix.PtraceSyscall(pid, 0); err != nil {
		return fmt.Errorf("resume child: %w", err)
	}
	return nil
}

// wait4 waits for the given child, retrying on EINTR.
func wait4(pid int) (unix.WaitStatus, unix.Rusage, error) {
	var (
		wstatus unix.WaitStatus
		rusage  unix.Rusage
	)
	for {
		_, err := unix.Wait4(pid, &wstatus, unix.WALL, &rusage)
		if err == unix.EINTR {
			continue
		}
		return wstatus, rusage, err
	}
}

// killAndReap kills the child and collects it so nothing is left behind.
func killAndReap(pid int) {
	unix.Kill(pid, unix.SIGKILL)
	for {
		ws, _, err := wait4(pid)
		if err != nil || ws.Exited() || ws.Signaled() {
			return
		}
	}
}
