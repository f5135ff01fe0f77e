package contract

import (
	"context"
	"time"
)

// Store is the durable storage collaborator. Implementations must support
// concurrent reads and independent per-user writes; every operation is scoped
// by user id.
type Store interface {
	GetIntegration(ctx context.Context, userID string, kind IntegrationKind) (*IntegrationRecord, error)
	SearchNotes(ctx context.Context, userID string, query string, limit int) ([]Note, error)
	SaveNote(ctx context.Context, note *Note) error
}

// CalendarService is the narrow adapter over the upstream calendar provider.
type CalendarService interface {
	EventsInRange(ctx context.Context, userID string, start, end time.Time) ([]Event, error)
}

// CRMService is the narrow adapter over the upstream CRM provider.
// LookupAccountByDomain returns (nil, nil) when no account matches.
type CRMService interface {
	LookupAccountByDomain(ctx context.Context, userID string, domain string) (*Account, error)
}

// ToolInvoker executes one already-authenticated tool call. The dispatcher
// satisfies this; the orchestrator consumes it so composite intents reuse the
// same validation and context wiring as single invocations.
type ToolInvoker interface {
	Execute(ctx context.Context, name string, args map[string]any) (any, *Error)
}

// StatusChecker reports which integrations are currently connected for a
// user. Results are derived fresh per call and must not be cached.
type StatusChecker interface {
	Check(ctx context.Context, userID string) IntegrationStatus
}
