package prepnode

import (
	contractx "github.com/salesloop/prepagent/agent/contract"
)

// IntentPrepNextCall produces a prep brief for the user's next meeting.
const IntentPrepNextCall = "prep_next_call"

type GraphInput struct {
	Intent      string
	UserID      string
	WindowHours int
}

type GraphOutput struct {
	Brief *contractx.PrepBrief
}

// GraphState is threaded through the pipeline; step N fills the fields step
// N+1 consumes. Nothing here survives the run.
type GraphState struct {
	Intent      string
	UserID      string
	WindowHours int

	Integrations contractx.IntegrationStatus
	Events       []contractx.Event
	Selected     *contractx.Event
	Account      *contractx.Account
}
