package runner

import (
	"fmt"
	"time"
)

// Result is the outcome of a traced run
type Result struct {
	Status            // outcome class
	ExitStatus int    // exit code, or signal number when signalled
	Error      string // detailed error for runner errors and exec failures

	Time   time.Duration // user CPU time of the traced program
	Memory Size          // maximum resident set size of the traced program

	// Counts maps syscall numbers to the number of observed entries
	Counts map[uint64]uint64

	SetUpTime   time.Duration // from launch until the child's first stop
	RunningTime time.Duration // from the first stop until termination
}

func (r Result) String() string {
	switch r.Status {
	case StatusNormal:
		return fmt.Sprintf("Result[%v %v][%v %v]", r.Time, r.Memory, r.SetUpTime, r.RunningTime)

	case StatusSignalled:
		return fmt.Sprintf("Result[Signalled(%d)][%v %v][%v %v]", r.ExitStatus, r.Time, r.Memory, r.SetUpTime, r.RunningTime)

	case StatusRunnerError:
		return fmt.Sprintf("Result[RunnerFailed(%s)][%v %v][%v %v]", r.Error, r.Time, r.Memory, r.SetUpTime, r.RunningTime)

	case StatusExecFailed:
		return fmt.Sprintf("Result[ExecFailed(%s)][%v %v][%v %v]", r.Error, r.Time, r.Memory, r.SetUpTime, r.RunningTime)

	default:
		return fmt.Sprintf("Result[%v(%s %d)][%v %v][%v %v]", r.Status, r.Error, r.ExitStatus, r.Time, r.Memory, r.SetUpTime, r.RunningTime)
	}
}

// Completed reports whether the traced program ran and terminated, as
// opposed to the tracer failing around it.
func (r Result) Completed() bool {
	switch r.Status {
	case StatusNormal, StatusNonzeroExitStatus, StatusSignalled, StatusExecFailed:
		return true
	}
	return false
}
