package eval

import "github.com/latchlang/latch/internal/value"

// signal is the interface satisfied by the internal control-flow
// markers (return/break/continue/yield/stop) that piggyback on the
// error channel so they unwind through execStmt/execBlock the same way
// a genuine runtime error does, but are intercepted by the construct
// that knows how to handle them instead of reaching the caller.
type signal interface {
	error
	isSignal()
}

type returnSignal struct{ Value value.Value }

func (returnSignal) Error() string { return "return outside function" }
func (returnSignal) isSignal()     {}

type breakSignal struct{}

func (breakSignal) Error() string { return "break outside loop" }
func (breakSignal) isSignal()     {}

type continueSignal struct{}

func (continueSignal) Error() string { return "continue outside loop" }
func (continueSignal) isSignal()     {}

type yieldSignal struct{ Value value.Value }

func (yieldSignal) Error() string { return "yield outside generator" }
func (yieldSignal) isSignal()     {}

type stopSignal struct{ Code int64 }

func (stopSignal) Error() string { return "stop" }
func (stopSignal) isSignal()     {}

// asSignal type-switches err into one of the control-flow signals, or
// reports ok=false for a genuine error.
func asSignal(err error) (signal, bool) {
	s, ok := err.(signal)
	return s, ok
}

// AsStop reports whether err is the `stop N` signal and, if so, the
// exit code it carries. Exported so cmd/latch and the REPL can special
// case process termination the way the host CLI does.
func AsStop(err error) (int64, bool) {
	s, ok := err.(stopSignal)
	if !ok {
		return 0, false
	}
	return s.Code, true
}
