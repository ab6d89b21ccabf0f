package catalog

import (
	"github.com/elastic/go-seccomp-bpf/arch"
)

// info is the syscall table of the architecture this binary runs on.
var info, errInfo = arch.GetInfo("")

type fullCatalog struct {
	numbers map[int]string
}

// Full returns a catalog that prefers the curated names and otherwise
// resolves through the native architecture table. It behaves like Curated
// when that table is not available.
func Full() Catalog {
	if errInfo != nil {
		return Curated()
	}
	return fullCatalog{numbers: info.SyscallNumbers}
}

func (f fullCatalog) Name(nr uint64) string {
	if n, ok := curated[nr]; ok {
		return n
	}
	if nr <= uint64(maxInt) {
		if n, ok := f.numbers[int(nr)]; ok {
			return n
		}
	}
	return Fallback(nr)
}

const maxInt = int(^uint(0) >> 1)
