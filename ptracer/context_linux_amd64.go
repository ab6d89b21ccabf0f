package ptracer

import (
	"golang.org/x/sys/unix"
)

/*
	x86_64 syscall convention
	syscall_number -> orig_rax (rax is overwritten with the return value)
	return value   -> rax
*/

// SyscallNo get current syscall no
func (c *Context) SyscallNo() uint64 {
	return c.regs.Orig_rax
}

// ReturnValue get current return value as signed
func (c *Context) ReturnValue() int64 {
	return int64(c.regs.Rax)
}

func getTrapContext(pid int) (*Context, error) {
	var regs unix.PtraceRegs
	if err := unix.PtraceGetRegs(pid, &regs); err != nil {
		return nil, err
	}
	return &Context{
		Pid:  pid,
		regs: regs,
	}, nil
}
