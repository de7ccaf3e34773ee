package host

import (
	"bytes"
	"os/exec"

	"github.com/google/uuid"

	"github.com/latchlang/latch/internal/value"
)

// Proc implements the proc module: exec(cmd, args...) -> process_result.
// Each invocation is tagged with a UUID used only for diagnostic
// correlation if the child process fails, matching the exec-trace
// convention the rest of the corpus uses for subprocess bookkeeping.
type Proc struct{}

func NewProc() *Proc { return &Proc{} }

func (p *Proc) Call(method string, args []value.Value) (value.Value, error) {
	switch method {
	case "exec", "run":
		if len(args) < 1 {
			return value.Null(), argErr("proc", method, 1, len(args))
		}
		name := args[0].Str
		var cmdArgs []string
		for _, a := range args[1:] {
			cmdArgs = append(cmdArgs, a.Str)
		}
		traceID := uuid.NewString()
		cmd := exec.Command(name, cmdArgs...)
		var stdout, stderr bytes.Buffer
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr
		runErr := cmd.Run()
		code := int64(0)
		if runErr != nil {
			if exitErr, ok := runErr.(*exec.ExitError); ok {
				code = int64(exitErr.ExitCode())
			} else {
				return value.Null(), &processLaunchError{TraceID: traceID, Cause: runErr}
			}
		}
		return value.Value{
			Kind: value.KindProcessResult,
			Proc: &value.ProcessResult{Code: code, Stdout: stdout.String(), Stderr: stderr.String()},
		}, nil
	default:
		return value.Null(), wrongType("proc", method, "method", "exec or run")
	}
}

type processLaunchError struct {
	TraceID string
	Cause   error
}

func (e *processLaunchError) Error() string {
	return "process launch failed (trace " + e.TraceID + "): " + e.Cause.Error()
}

func (e *processLaunchError) Unwrap() error { return e.Cause }
