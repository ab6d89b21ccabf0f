// Package catalog maps syscall numbers to human readable names.
package catalog

import (
	"fmt"
	"strconv"
)

// Catalog resolves a syscall number to its name. Implementations are total:
// every number gets a name, unknown ones a Fallback label.
type Catalog interface {
	Name(nr uint64) string
}

// Mode selects which catalog New builds.
type Mode string

const (
	// ModeCurated uses only the hand-curated x86_64 table
	ModeCurated Mode = "curated"
	// ModeFull consults the native architecture's complete table as well
	ModeFull Mode = "full"
)

// fallbackPrefix never starts a curated name
const fallbackPrefix = "sys_"

// curated holds the x86_64 numbers of the syscalls most programs make.
var curated = map[uint64]string{
	0:   "read",
	1:   "write",
	2:   "open",
	3:   "close",
	4:   "stat",
	5:   "fstat",
	6:   "lstat",
	7:   "poll",
	8:   "lseek",
	9:   "mmap",
	10:  "mprotect",
	11:  "munmap",
	12:  "brk",
	13:  "rt_sigaction",
	14:  "rt_sigprocmask",
	15:  "rt_sigreturn",
	16:  "ioctl",
	17:  "pread64",
	21:  "access",
	32:  "dup",
	33:  "pipe",
	39:  "getpid",
	41:  "socket",
	42:  "connect",
	44:  "sendto",
	45:  "recvfrom",
	56:  "clone",
	57:  "fork",
	59:  "execve",
	60:  "exit",
	61:  "wait4",
	62:  "kill",
	63:  "uname",
	72:  "fcntl",
	79:  "getcwd",
	158: "arch_prctl",
	202: "futex",
	218: "set_tid_address",
	228: "clock_gettime",
	231: "exit_group",
	257: "openat",
	262: "newfstatat",
	273: "set_robust_list",
	302: "prlimit64",
	318: "getrandom",
	334: "rseq",
}

type curatedCatalog struct{}

// Curated returns the catalog backed only by the hand-curated table.
func Curated() Catalog {
	return curatedCatalog{}
}

func (curatedCatalog) Name(nr uint64) string {
	if n, ok := curated[nr]; ok {
		return n
	}
	return Fallback(nr)
}

// Fallback returns the synthesized label for a number with no known name.
func Fallback(nr uint64) string {
	return fallbackPrefix + strconv.FormatUint(nr, 10)
}

// New builds the catalog for the given mode.
func New(mode Mode) (Catalog, error) {
	switch mode {
	case ModeCurated, "":
		return Curated(), nil
	case ModeFull:
		return Full(), nil
	default:
		return nil, fmt.Errorf("unknown syscall name mode %q", mode)
	}
}
