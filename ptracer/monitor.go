//go:build linux

package ptracer

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// debugEvery throttles the per-stop diagnostics
const debugEvery = 50

// tracee is the traced child as the trace loop sees it
type tracee interface {
	// wait blocks until the child changes state
	wait() (unix.WaitStatus, unix.Rusage, error)
	// registers snapshots the registers at a syscall stop
	registers() (RegisterView, error)
	// resume restarts the child until its next syscall stop, delivering sig
	resume(sig unix.Signal) error
}

// monitor is the state of one trace loop
type monitor struct {
	*Tracer
	session *Session

	// stops counts every wait result, for throttled diagnostics only
	stops int

	// status and rusage of the terminated child
	status unix.WaitStatus
	rusage unix.Rusage
}

func newMonitor(t *Tracer, pid int) *monitor {
	return &monitor{Tracer: t, session: newSession(pid)}
}

// run drives the child until it exits or is killed. The child must be
// running towards its next syscall stop when run is called.
func (m *monitor) run(p tracee) error {
	for {
		ws, rusage, err := p.wait()
		if err != nil {
			return fmt.Errorf("wait4: %w", err)
		}

		m.stops++
		if m.stops%debugEvery == 0 {
			m.Handler.Debug("stops:", m.stops, "entries:", m.session.Entries, "pid:", m.session.Pid)
		}

		switch {
		case ws.Exited(), ws.Signaled():
			m.Handler.Debug("child terminated:", describe(ws))
			m.session.terminated = true
			m.status = ws
			m.rusage = rusage
			return nil

		case ws.Stopped():
			sig := m.handleStop(p, ws)
			if err := p.resume(sig); err != nil {
				// a child that vanished is reported by the next wait
				m.Handler.Debug("resume failed:", err)
			}

		default:
			m.Handler.Debug("unexpected wait status:", uint32(ws))
			if err := p.resume(0); err != nil {
				m.Handler.Debug("resume failed:", err)
			}
		}
	}
}

// handleStop processes one stop and returns the signal to deliver on resume.
func (m *monitor) handleStop(p tracee, ws unix.WaitStatus) unix.Signal {
	sig := ws.StopSignal()
	switch {
	case isSyscallStop(sig):
		regs, err := p.registers()
		if err != nil {
			m.Handler.Debug("failed to read registers, skipping stop:", err)
			return 0
		}
		m.handleSyscall(regs)
		return 0

	case sig == unix.SIGTRAP:
		// ptrace event stops (exec) and traps that are not syscall stops
		m.Handler.Debug("trap:", m.session.Pid, "event:", ws.TrapCause())
		return 0

	default:
		// a real signal for the child, pass it on
		m.Handler.Debug("signal:", m.session.Pid, sig)
		return sig
	}
}

// handleSyscall flips the entry/exit alternation. Entry and exit stops look
// the same; only InSyscall tells them apart.
func (m *monitor) handleSyscall(regs RegisterView) {
	s := m.session
	var ev Event

	if !s.InSyscall {
		nr := regs.SyscallNo()
		s.Counts[nr]++
		s.Entries++
		s.LastSyscall = nr
		s.InSyscall = true
		ev = Event{Kind: EventEntry, Nr: nr, Name: m.Catalog.Name(nr)}
	} else {
		s.Exits++
		s.InSyscall = false
		ev = Event{
			Kind: EventExit,
			Nr:   s.LastSyscall,
			Name: m.Catalog.Name(s.LastSyscall),
			Ret:  regs.ReturnValue(),
		}
	}

	if m.Verbosity == Silent {
		return
	}
	m.Handler.Emit(ev)
	if m.Verbosity == TraceAndStep {
		if err := m.Handler.Confirm(); err != nil {
			m.Handler.Debug("confirm:", err)
		}
	}
}

func describe(ws unix.WaitStatus) string {
	switch {
	case ws.Exited():
		return fmt.Sprintf("exited with status %d", ws.ExitStatus())
	case ws.Signaled():
		return fmt.Sprintf("killed by signal %v", ws.Signal())
	case ws.Stopped():
		return fmt.Sprintf("stopped by signal %v", ws.StopSignal())
	default:
		return fmt.Sprintf("wait status %#x", uint32(ws))
	}
}
