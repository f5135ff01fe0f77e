package dispatch

import (
	"strings"

	"github.com/rs/zerolog"

	contractx "github.com/salesloop/prepagent/agent/contract"
)

// ContextBuilder assembles the per-invocation ExecutionContext. Construction
// is pure: no I/O happens here beyond holding handles that were resolved at
// startup.
type ContextBuilder struct {
	store    contractx.Store
	calendar contractx.CalendarService
	crm      contractx.CRMService
}

func NewContextBuilder(store contractx.Store, calendar contractx.CalendarService, crm contractx.CRMService) *ContextBuilder {
	return &ContextBuilder{store: store, calendar: calendar, crm: crm}
}

// Build scopes a context to one acting user. An absent user id is a caller
// error, not an internal one.
func (b *ContextBuilder) Build(userID string, logger zerolog.Logger) (*contractx.ExecutionContext, *contractx.Error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, contractx.BadRequest("userId is required", nil)
	}
	return &contractx.ExecutionContext{
		UserID:   userID,
		Store:    b.store,
		Calendar: b.calendar,
		CRM:      b.crm,
		Log:      logger,
	}, nil
}
