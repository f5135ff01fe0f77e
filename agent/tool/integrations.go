package tool

import (
	"context"
	"encoding/json"

	contractx "github.com/salesloop/prepagent/agent/contract"
	integrationx "github.com/salesloop/prepagent/agent/integration"
)

const NameIntegrationsStatus = "integrations.status.v1"

var integrationsStatusSchema = json.RawMessage(`{
	"type": "object",
	"properties": {
		"userId": {"type": "string", "minLength": 1}
	},
	"required": ["userId"],
	"additionalProperties": false
}`)

type IntegrationsStatusResult struct {
	Integrations contractx.IntegrationStatus `json:"integrations"`
}

// IntegrationsStatus reports which integrations are currently connected so
// the assistant can tell the user what to link before other tools will work.
func IntegrationsStatus() *contractx.Contract {
	return &contractx.Contract{
		Name:        NameIntegrationsStatus,
		Version:     "v1",
		Description: "Report which of the user's integrations (calendar, CRM, email) are connected.",
		InputSchema: integrationsStatusSchema,
		Handler:     handleIntegrationsStatus,
	}
}

func handleIntegrationsStatus(ctx context.Context, _ map[string]any, ec *contractx.ExecutionContext) (any, error) {
	status := integrationx.NewChecker(ec.Store).Check(ctx, ec.UserID)
	return IntegrationsStatusResult{Integrations: status}, nil
}

// Builtins returns every contract this service ships with. Registration
// order is irrelevant; the registry rejects duplicates.
func Builtins() []*contractx.Contract {
	return []*contractx.Contract{
		CalendarNextEvents(),
		CRMAccountByDomain(),
		NotesSearch(),
		NotesSave(),
		IntegrationsStatus(),
	}
}
