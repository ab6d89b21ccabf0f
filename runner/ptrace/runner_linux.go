// Package ptrace runs a program under the ptrace syscall tracer and reports
// its live events to the terminal.
package ptrace

import (
	"io"

	"go.uber.org/zap"

	"github.com/zqzqsb/rastreador/pkg/catalog"
	"github.com/zqzqsb/rastreador/pkg/forkexec"
	"github.com/zqzqsb/rastreador/ptracer"
	"github.com/zqzqsb/rastreador/runner"
)

// StepPrompt is printed after every live line in step mode
const StepPrompt = "Presione Enter para continuar..."

// Runner configures a program traced with ptrace
type Runner struct {
	// argv and env for the child process
	// Args[0] is the program path
	Args []string
	Env  []string

	// WorkDir is the working directory of the child, unchanged if empty
	WorkDir string

	// fd mapping of the child, index i becomes fd i
	Files []uintptr

	// Verbosity selects silent counting, live lines or live lines with a
	// confirmation after each one
	Verbosity ptracer.Verbosity

	// Catalog names syscall numbers, catalog.Curated() if nil
	Catalog catalog.Catalog

	// Logger receives tracer diagnostics at debug level
	Logger *zap.SugaredLogger

	// Stdout receives the live lines and the step prompt, Stdin the
	// confirmations
	Stdout io.Writer
	Stdin  io.Reader
}

// Run starts the program and traces it until it terminates
func (r *Runner) Run() runner.Result {
	ch := &forkexec.Runner{
		Args:    r.Args,
		Env:     r.Env,
		Files:   r.Files,
		WorkDir: r.WorkDir,
		Ptrace:  true,
	}

	cat := r.Catalog
	if cat == nil {
		cat = catalog.Curated()
	}

	tracer := ptracer.Tracer{
		Handler:   newTracerHandler(r.Stdout, r.Stdin, r.Logger),
		Runner:    childRunner{ch},
		Catalog:   cat,
		Verbosity: r.Verbosity,
	}
	return tracer.Trace()
}

// childRunner adapts forkexec.Runner to ptracer.Runner
type childRunner struct {
	*forkexec.Runner
}

func (r childRunner) Start() (ptracer.Child, error) {
	c, err := r.Runner.Start()
	if err != nil {
		return nil, err
	}
	return c, nil
}
