package runner

import (
	"fmt"
)

// Size stores a number of bytes, e.g. a resident set size
type Size uint64

// String implements the stringer interface for printing
func (s Size) String() string {
	t := uint64(s)
	switch {
	case t < 1<<10:
		return fmt.Sprintf("%d B", t)
	case t < 1<<20:
		return fmt.Sprintf("%.1f KiB", float64(t)/float64(1<<10))
	case t < 1<<30:
		return fmt.Sprintf("%.1f MiB", float64(t)/float64(1<<20))
	default:
		return fmt.Sprintf("%.1f GiB", float64(t)/float64(1<<30))
	}
}

// Byte return size in bytes
func (s Size) Byte() uint64 {
	return uint64(s)
}

// KiB return size in KiB
func (s Size) KiB() uint64 {
	return uint64(s) >> 10
}

// MiB return size in MiB
func (s Size) MiB() uint64 {
	return uint64(s) >> 20
}
