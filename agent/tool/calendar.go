package tool

import (
	"context"
	"encoding/json"
	"time"

	contractx "github.com/salesloop/prepagent/agent/contract"
)

const NameCalendarNextEvents = "calendar.next_events.v1"

const (
	defaultWindowHours = 24
	maxWindowHours     = 168
)

var calendarNextEventsSchema = json.RawMessage(`{
	"type": "object",
	"properties": {
		"userId": {"type": "string", "minLength": 1},
		"window_hours": {"type": "integer", "minimum": 1, "maximum": 168}
	},
	"required": ["userId"],
	"additionalProperties": false
}`)

type NextEventsResult struct {
	Events []contractx.Event `json:"events"`
}

// CalendarNextEvents lists the user's events in a bounded forward window.
func CalendarNextEvents() *contractx.Contract {
	return &contractx.Contract{
		Name:        NameCalendarNextEvents,
		Version:     "v1",
		Description: "List the user's calendar events starting within the next window_hours hours (default 24).",
		InputSchema: calendarNextEventsSchema,
		Handler:     handleCalendarNextEvents,
	}
}

func handleCalendarNextEvents(ctx context.Context, args map[string]any, ec *contractx.ExecutionContext) (any, error) {
	now := time.Now().UTC()

	rec, err := ec.Store.GetIntegration(ctx, ec.UserID, contractx.KindCalendar)
	if err != nil {
		return nil, contractx.Internal("calendar integration lookup failed", err)
	}
	if !rec.Connected(now) {
		return nil, contractx.NotConnected(contractx.KindCalendar)
	}
	if ec.Calendar == nil {
		return nil, contractx.Internal("calendar service is not configured", nil)
	}

	window := windowHours(args)
	events, err := ec.Calendar.EventsInRange(ctx, ec.UserID, now, now.Add(time.Duration(window)*time.Hour))
	if err != nil {
		return nil, contractx.Internal("calendar lookup failed", err)
	}
	if events == nil {
		events = []contractx.Event{}
	}
	return NextEventsResult{Events: events}, nil
}

func windowHours(args map[string]any) int {
	raw, ok := args["window_hours"]
	if !ok {
		return defaultWindowHours
	}
	// JSON numbers decode as float64.
	var hours int
	switch v := raw.(type) {
	case float64:
		hours = int(v)
	case int:
		hours = v
	default:
		return defaultWindowHours
	}
	if hours < 1 {
		return defaultWindowHours
	}
	if hours > maxWindowHours {
		return maxWindowHours
	}
	return hours
}
