package forkexec

// Runner is the configuration of a child process started with a raw clone.
// With Ptrace set the child requests tracing from its parent and stops
// itself with SIGSTOP right before execve, so the tracer can configure
// ptrace options before the target runs a single instruction.
type Runner struct {
	// Args and Env for the child's execve. Args[0] is the program path.
	Args []string
	Env  []string

	// Files defines the file descriptors of the new process. Index i is
	// mapped to fd i in the child; -1 closes it.
	Files []uintptr

	// WorkDir is the child's working directory, unchanged if empty
	WorkDir string

	// Ptrace makes the child call ptrace(PTRACE_TRACEME) and then
	// kill(getpid(), SIGSTOP) before execve. The tracer must hold
	// runtime.LockOSThread across Start and every later ptrace request.
	Ptrace bool
}
