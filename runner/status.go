package runner

// Status is the outcome class of a run
type Status int

// Result statuses
const (
	StatusInvalid Status = iota // 0 not initialized
	// the traced program exited with status 0
	StatusNormal

	// the traced program ended abnormally
	StatusNonzeroExitStatus
	StatusSignalled

	// the child never reached the traced program
	StatusExecFailed

	// the tracer itself failed
	StatusRunnerError
)

var (
	statusString = []string{
		"invalid",
		"",
		"non-zero exit status",
		"signalled",
		"exec failed",
		"runner error",
	}
)

func (t Status) String() string {
	i := int(t)
	if i >= 0 && i < len(statusString) {
		return statusString[i]
	}
	return statusString[0]
}

func (t Status) Error() string {
	return t.String()
}
