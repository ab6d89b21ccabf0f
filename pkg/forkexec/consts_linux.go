package forkexec

import (
	"golang.org/x/sys/unix"
)

// etxtbsyRetryInterval is the pause between execve attempts that failed
// with ETXTBSY.
var etxtbsyRetryInterval = unix.Timespec{
	Nsec: 1 * 1000 * 1000,
}

// etxtbsyRetries bounds the number of those attempts
const etxtbsyRetries = 50
