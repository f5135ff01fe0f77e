package prepnode

import (
	"context"

	contractx "github.com/salesloop/prepagent/agent/contract"
	toolx "github.com/salesloop/prepagent/agent/tool"
)

// FetchEvents loads the bounded forward window of calendar events. Zero
// events is the one terminal outcome of the whole intent: a legitimate
// "nothing scheduled", not a fault.
func FetchEvents(ctx context.Context, in *GraphState, invoker contractx.ToolInvoker) (*GraphState, error) {
	if in == nil {
		return nil, errNilGraphState
	}

	out, derr := invoker.Execute(ctx, toolx.NameCalendarNextEvents, map[string]any{
		"userId":       in.UserID,
		"window_hours": float64(in.WindowHours),
	})
	if derr != nil {
		return nil, derr
	}

	res, ok := out.(toolx.NextEventsResult)
	if !ok {
		return nil, contractx.Internal("calendar tool returned an unexpected shape", nil)
	}
	if len(res.Events) == 0 {
		return nil, contractx.NoUpcomingEvents()
	}

	in.Events = res.Events
	return in, nil
}
