//go:build linux
// +build linux

package ptracer

import (
	"fmt"

	"github.com/zqzqsb/rastreador/pkg/catalog"
)

// Verbosity controls the live output of the tracer
type Verbosity int

const (
	// Silent only counts syscalls
	Silent Verbosity = iota
	// Trace emits one line per syscall entry and exit
	Trace
	// TraceAndStep also waits for confirmation after every line
	TraceAndStep
)

var verbosityString = []string{"silent", "trace", "step"}

func (v Verbosity) String() string {
	if v >= Silent && v <= TraceAndStep {
		return verbosityString[v]
	}
	return "unknown"
}

// Tracer traces the syscalls of one child process
type Tracer struct {
	Handler
	Runner
	Catalog   catalog.Catalog
	Verbosity Verbosity
}

// Runner starts the child to be traced
type Runner interface {
	// Start starts the child process. The child must call
	// ptrace(PTRACE_TRACEME) and stop itself with SIGSTOP before execve.
	Start() (Child, error)
}

// Child is a started child process
type Child interface {
	Pid() int
	// ExecError reports why the child failed to run the target program,
	// nil if it did. Only valid once the child is gone or exec'd.
	ExecError() error
	Close() error
}

// Handler receives the live output of the tracer
type Handler interface {
	// Emit prints one entry or exit line
	Emit(Event)
	// Confirm waits for the operator after a line in step mode
	Confirm() error
	// Debug prints diagnostics
	Debug(v ...interface{})
}

// EventKind tells syscall entries from exits
type EventKind int

// Event kinds
const (
	EventEntry EventKind = iota + 1
	EventExit
)

// Event is one decoded syscall stop
type Event struct {
	Kind EventKind
	Nr   uint64
	Name string
	// Ret is the return value on exit, negative errno on failure
	Ret int64
}

func (e Event) String() string {
	if e.Kind == EventExit {
		return fmt.Sprintf("[EXIT ] %s(%d) => %d", e.Name, e.Nr, e.Ret)
	}
	return fmt.Sprintf("[ENTRY] %s(%d)", e.Name, e.Nr)
}

// State is the position of a session in the entry/exit alternation
type State int

// Session states
const (
	AwaitingEntry State = iota
	AwaitingExit
	Terminated
)

// Session is the live relationship between the tracer and its child. It is
// owned by the trace loop for the lifetime of the child.
type Session struct {
	Pid int
	// InSyscall is set between an observed entry and its matching exit
	InSyscall bool
	// LastSyscall labels the exit line of the current syscall
	LastSyscall uint64
	// Counts holds one increment per observed entry
	Counts map[uint64]uint64

	Entries, Exits int

	terminated bool
}

func newSession(pid int) *Session {
	return &Session{
		Pid:    pid,
		Counts: make(map[uint64]uint64),
	}
}

// State reports where the session is in the alternation
func (s *Session) State() State {
	switch {
	case s.terminated:
		return Terminated
	case s.InSyscall:
		return AwaitingExit
	default:
		return AwaitingEntry
	}
}
