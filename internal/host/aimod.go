package host

import "github.com/latchlang/latch/internal/value"

// AI implements the ai module as a stub: the original implementation's
// runtime::ai delegates to a configured model provider, but wiring a
// concrete provider SDK (openai-go, anthropic-sdk-go, ...) needs a live
// credential this interpreter has no business owning. Calling
// ai.complete in a script surfaces ErrUnconfiguredModule rather than
// silently returning a fake answer.
type AI struct{}

func NewAI() *AI { return &AI{} }

func (a *AI) Call(method string, args []value.Value) (value.Value, error) {
	return value.Null(), ErrUnconfiguredModule
}
