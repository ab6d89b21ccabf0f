package forkexec

import _ "unsafe" // for go:linkname

// beforeFork blocks signals and prepares the runtime for a raw fork.
//
//go:linkname beforeFork syscall.runtime_BeforeFork
func beforeFork()

// afterFork restores the runtime state in the parent.
//
//go:linkname afterFork syscall.runtime_AfterFork
func afterFork()

// afterForkInChild resets signal handling in the child. Only the calling
// thread exists in the child from this point on.
//
//go:linkname afterForkInChild syscall.runtime_AfterForkInChild
func afterForkInChild()
