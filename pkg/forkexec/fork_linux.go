package forkexec

import (
	"fmt"
	"syscall"
	"unsafe" // for reading ChildError off the side channel

	"golang.org/x/sys/unix"
)

// Child is a process started by Runner.Start.
type Child struct {
	pid int
	// fd is the parent end of the side channel, -1 once drained
	fd int

	err     error
	drained bool
}

// Pid returns the process id of the child.
func (c *Child) Pid() int {
	return c.pid
}

// ExecError reports why the child did not reach the target program. It
// returns nil when the child executed the target (the close-on-exec side
// channel reached EOF). The read blocks while the child is still before
// execve, so call it only once the child exec'd, exited or was killed.
func (c *Child) ExecError() error {
	if c.drained {
		return c.err
	}
	c.drained = true

	var childErr ChildError
	n, err := readChildErr(c.fd, &childErr)
	unix.Close(c.fd)
	c.fd = -1

	switch {
	case err != nil:
		c.err = fmt.Errorf("read child error: %w", err)
	case n == 0:
		c.err = nil
	case n == int(unsafe.Sizeof(childErr)):
		c.err = childErr
	default:
		c.err = ChildError{Err: handlePipeError(n, childErr.Err), Location: childErr.Location}
	}
	return c.err
}

// Close releases the side channel without reading it.
func (c *Child) Close() error {
	if c.fd < 0 {
		return nil
	}
	err := unix.Close(c.fd)
	c.fd = -1
	c.drained = true
	return err
}

// Start forks the child and, without Ptrace, waits until it exec'd.
//
// With Ptrace the child stops itself before execve: Start returns as soon
// as the clone succeeded and the caller must wait4 for that SIGSTOP. The
// calling goroutine has to be locked to its OS thread since the thread that
// forked is the tracer.
func (r *Runner) Start() (*Child, error) {
	if len(r.Args) == 0 {
		return nil, fmt.Errorf("forkexec: empty argument list")
	}
	argv0, argv, env, err := prepareExec(r.Args, r.Env)
	if err != nil {
		return nil, err
	}
	workdir, err := syscallStringFromString(r.WorkDir)
	if err != nil {
		return nil, err
	}

	// p[0] stays with the parent, p[1] goes to the child. Both are
	// close-on-exec, so a successful execve shows up as EOF on p[0].
	p, err := syscall.Socketpair(syscall.AF_LOCAL, syscall.SOCK_STREAM|syscall.SOCK_CLOEXEC, 0)
	if err != nil {
		return nil, fmt.Errorf("forkexec: socketpair: %w", err)
	}

	pid, err1 := forkAndExecInChild(r, argv0, argv, env, workdir, p)

	// restore all signals
	afterFork()
	syscall.ForkLock.Unlock()

	return syncWithChild(r, p, int(pid), err1)
}

func syncWithChild(r *Runner, p [2]int, pid int, err1 syscall.Errno) (*Child, error) {
	unix.Close(p[1])

	if err1 != 0 {
		unix.Close(p[0])
		return nil, ChildError{Err: err1, Location: LocClone}
	}

	c := &Child{pid: pid, fd: p[0]}
	if r.Ptrace {
		// the child is on its way to SIGSTOP; its failures are read later
		return c, nil
	}

	if err := c.ExecError(); err != nil {
		handleChildFailed(pid)
		return nil, err
	}
	return c, nil
}

// readChildErr reads a ChildError, retrying on EINTR.
func readChildErr(fd int, childErr *ChildError) (n int, err error) {
	for {
		n, err = readlen(fd, (*byte)(unsafe.Pointer(childErr)), int(unsafe.Sizeof(*childErr)))
		if err != syscall.EINTR {
			break
		}
	}
	return
}

func readlen(fd int, p *byte, np int) (n int, err error) {
	r0, _, e1 := syscall.Syscall(syscall.SYS_READ, uintptr(fd), uintptr(unsafe.Pointer(p)), uintptr(np))
	n = int(r0)
	if e1 != 0 {
		err = syscall.Errno(e1)
	}
	return
}

// handlePipeError keeps the errno when at least that much was read and
// reports EPIPE for a short write.
func handlePipeError(r1 int, errno syscall.Errno) syscall.Errno {
	if uintptr(r1) >= unsafe.Sizeof(errno) {
		return errno
	}
	return syscall.EPIPE
}

// handleChildFailed makes sure a failed child is gone and reaped.
func handleChildFailed(pid int) {
	var wstatus syscall.WaitStatus
	syscall.Kill(pid, syscall.SIGKILL)
	_, err := syscall.Wait4(pid, &wstatus, 0, nil)
	for err == syscall.EINTR {
		_, err = syscall.Wait4(pid, &wstatus, 0, nil)
	}
}
