package prepnode

import (
	"fmt"
	"strings"

	contractx "github.com/salesloop/prepagent/agent/contract"
)

func ValidateRequest(in GraphInput) (*GraphState, error) {
	userID := strings.TrimSpace(in.UserID)
	if userID == "" {
		return nil, contractx.BadRequest("userId is required", nil)
	}

	intent := strings.TrimSpace(in.Intent)
	if intent != IntentPrepNextCall {
		return nil, contractx.BadRequest(fmt.Sprintf("unsupported intent %q", intent), nil)
	}

	window := in.WindowHours
	if window <= 0 {
		window = 24
	}

	return &GraphState{
		Intent:      intent,
		UserID:      userID,
		WindowHours: window,
	}, nil
}
