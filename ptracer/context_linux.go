package ptracer

import (
	"golang.org/x/sys/unix"
)

// RegisterView is the part of a register snapshot the tracer decodes
type RegisterView interface {
	// SyscallNo is the number of the syscall being entered or left
	SyscallNo() uint64
	// ReturnValue is the return register as a signed value
	ReturnValue() int64
}

// Context is the register snapshot of a process at a syscall stop
type Context struct {
	// Pid is the pid of the stopped process
	Pid int
	// current register context (platform dependent)
	regs unix.PtraceRegs
}

// syscallStopSignal is what wait reports for syscall stops once
// PTRACE_O_TRACESYSGOOD is set
const syscallStopSignal = unix.SIGTRAP | 0x80

// isSyscallStop tells a syscall-entry/exit stop from every other stop
func isSyscallStop(sig unix.Signal) bool {
	return sig == syscallStopSignal
}
