package prep

import (
	"context"
	"errors"

	"github.com/cloudwego/eino/compose"

	contractx "github.com/salesloop/prepagent/agent/contract"
	prepnode "github.com/salesloop/prepagent/agent/nodes/prep"
)

type Config struct {
	// WindowHours bounds the forward calendar window a brief considers.
	WindowHours int
}

// Orchestrator executes composite intents by chaining tool calls through the
// dispatcher. It holds no state between invocations; a retry starts from
// scratch.
type Orchestrator struct {
	invoker contractx.ToolInvoker
	checker contractx.StatusChecker

	graphRunner compose.Runnable[prepnode.GraphInput, prepnode.GraphOutput]

	windowHours int
}

func New(invoker contractx.ToolInvoker, checker contractx.StatusChecker, cfg Config) (*Orchestrator, error) {
	if invoker == nil {
		return nil, errors.New("tool invoker is required")
	}
	if checker == nil {
		return nil, errors.New("integration status checker is required")
	}

	windowHours := cfg.WindowHours
	if windowHours <= 0 {
		windowHours = 24
	}

	o := &Orchestrator{
		invoker:     invoker,
		checker:     checker,
		windowHours: windowHours,
	}

	graphRunner, err := o.compilePrepBriefGraph(context.Background())
	if err != nil {
		return nil, err
	}
	o.graphRunner = graphRunner

	return o, nil
}

// Act runs a named high-level intent for one user. Failures come back as the
// typed taxonomy; the only terminal non-fault is NO_UPCOMING_EVENTS.
func (o *Orchestrator) Act(ctx context.Context, intent string, userID string) (*contractx.PrepBrief, *contractx.Error) {
	out, err := o.graphRunner.Invoke(ctx, prepnode.GraphInput{
		Intent:      intent,
		UserID:      userID,
		WindowHours: o.windowHours,
	})
	if err != nil {
		return nil, contractx.AsError(err)
	}
	return out.Brief, nil
}
