package runner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSizeString(t *testing.T) {
	tests := []struct {
		size Size
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1 << 10, "1.0 KiB"},
		{3 << 19, "1.5 MiB"},
		{2 << 30, "2.0 GiB"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.size.String())
		})
	}
}

func TestSizeUnits(t *testing.T) {
	s := Size(5 << 20)
	assert.Equal(t, uint64(5<<20), s.Byte())
	assert.Equal(t, uint64(5<<10), s.KiB())
	assert.Equal(t, uint64(5), s.MiB())
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "exec failed", StatusExecFailed.String())
	assert.Equal(t, "runner error", StatusRunnerError.Error())
	assert.Equal(t, "invalid", Status(42).String())
	assert.Equal(t, "invalid", Status(-1).String())
}

func TestResult(t *testing.T) {
	tests := []struct {
		name      string
		result    Result
		completed bool
		prefix    string
	}{
		{"normal", Result{Status: StatusNormal, Time: time.Millisecond}, true, "Result[1ms"},
		{"exit", Result{Status: StatusNonzeroExitStatus, ExitStatus: 3}, true, "Result[non-zero exit status( 3)]"},
		{"signalled", Result{Status: StatusSignalled, ExitStatus: 9}, true, "Result[Signalled(9)]"},
		{"exec", Result{Status: StatusExecFailed, Error: "execve: no such file or directory"}, true, "Result[ExecFailed(execve"},
		{"runner", Result{Status: StatusRunnerError, Error: "boom"}, false, "Result[RunnerFailed(boom)]"},
		{"invalid", Result{}, false, "Result[invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.completed, tt.result.Completed())
			assert.Contains(t, tt.result.String(), tt.prefix)
		})
	}
}
