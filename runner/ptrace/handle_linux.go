package ptrace

import (
	"bufio"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/zqzqsb/rastreador/ptracer"
)

// tracerHandler prints live events and reads step confirmations
type tracerHandler struct {
	out    io.Writer
	in     *bufio.Reader
	logger *zap.SugaredLogger
}

func newTracerHandler(out io.Writer, in io.Reader, logger *zap.SugaredLogger) *tracerHandler {
	if out == nil {
		out = io.Discard
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	h := &tracerHandler{out: out, logger: logger}
	if in != nil {
		h.in = bufio.NewReader(in)
	}
	return h
}

// Emit writes one live line
func (h *tracerHandler) Emit(ev ptracer.Event) {
	fmt.Fprintln(h.out, ev.String())
}

// Confirm prompts and blocks until one line (or EOF) is read
func (h *tracerHandler) Confirm() error {
	fmt.Fprintln(h.out, StepPrompt)
	if h.in == nil {
		return nil
	}
	_, err := h.in.ReadString('\n')
	if err == io.EOF {
		return nil
	}
	return err
}

// Debug forwards tracer diagnostics to the logger
func (h *tracerHandler) Debug(v ...interface{}) {
	h.logger.Debugln(v...)
}
