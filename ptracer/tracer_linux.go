package ptracer

import (
	"errors"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sys/unix"

	"github.com/zqzqsb/rastreador/runner"
)

// Trace starts the child and traces it until it terminates.
//
// The calling goroutine is locked to its OS thread for the whole run: the
// thread that forked the child is its tracer, and every ptrace request has
// to come from it. There is no timeout and no cancellation; the run ends
// when the child exits or is killed.
func (t *Tracer) Trace() (result runner.Result) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	sTime := time.Now()
	child, err := t.Runner.Start()
	if err != nil {
		t.Handler.Debug("failed to start traced process:", err)
		result.Status = runner.StatusRunnerError
		result.Error = fmt.Sprintf("launch: %v", err)
		return
	}
	defer child.Close()

	pid := child.Pid()
	t.Handler.Debug("child started:", pid)

	if err := launch(pid); err != nil {
		t.Handler.Debug("start-up handshake failed:", err)
		killAndReap(pid)
		result.Status = runner.StatusRunnerError
		result.Error = err.Error()
		if errors.Is(err, ErrProtocol) {
			if cause := child.ExecError(); cause != nil {
				result.Error = fmt.Sprintf("%v (%v)", err, cause)
			}
		}
		return
	}
	return t.trace(child, sTime)
}

func (t *Tracer) trace(child Child, sTime time.Time) (result runner.Result) {
	pid := child.Pid()
	fTime := time.Now()
	m := newMonitor(t, pid)

	defer func() {
		if err := recover(); err != nil {
			t.Handler.Debug("panic occurred:", err)
			killAndReap(pid)
			result.Status = runner.StatusRunnerError
			result.Error = fmt.Sprintf("%v", err)
		}
		result.Counts = m.session.Counts
		result.SetUpTime = fTime.Sub(sTime)
		result.RunningTime = time.Since(fTime)
	}()

	if err := m.run(&ptraceTracee{pid: pid}); err != nil {
		t.Handler.Debug("trace loop failed:", err)
		killAndReap(pid)
		result.Status = runner.StatusRunnerError
		result.Error = err.Error()
		return
	}

	result.Time = time.Duration(m.rusage.Utime.Nano())
	result.Memory = runner.Size(m.rusage.Maxrss << 10)

	ws := m.status
	switch {
	case ws.Exited():
		result.ExitStatus = ws.ExitStatus()
		result.Status = runner.StatusNormal
		if result.ExitStatus != 0 {
			result.Status = runner.StatusNonzeroExitStatus
		}
		// the side channel is closed on exec; data in it means exec failed
		if cause := child.ExecError(); cause != nil {
			result.Status = runner.StatusExecFailed
			result.Error = cause.Error()
		}

	case ws.Signaled():
		result.Status = runner.StatusSignalled
		result.ExitStatus = int(ws.Signal())
		result.Error = fmt.Sprintf("process killed by signal %d", ws.Signal())
	}
	return
}

// ptraceTracee is the real child behind the trace loop.
type ptraceTracee struct {
	pid int
}

func (p *ptraceTracee) wait() (unix.WaitStatus, unix.Rusage, error) {
	return wait4(p.pid)
}

func (p *ptraceTracee) registers() (RegisterView, error) {
	ctx, err := getTrapContext(p.pid)
	if err != nil {
		return nil, err
	}
	return ctx, nil
}

func (p *ptraceTracee) resume(sig unix.Signal) error {
	return unix.PtraceSyscall(p.pid, int(sig))
}
