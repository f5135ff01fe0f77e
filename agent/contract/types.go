package contract

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Handler is the body of a tool contract. It receives arguments that already
// passed schema validation and an ExecutionContext scoped to exactly one user.
// Handlers may call out to collaborators but must not mutate shared process
// state.
type Handler func(ctx context.Context, args map[string]any, ec *ExecutionContext) (any, error)

// Contract is a named, versioned, schema-validated unit of callable behavior.
// A contract is immutable once registered; breaking changes ship under a new
// name, not a version bump.
type Contract struct {
	Name        string
	Version     string
	Description string
	InputSchema json.RawMessage
	Handler     Handler
}

// ExecutionContext carries everything a handler may touch during one
// invocation. It is built per request, never persisted, and never shared
// across concurrent invocations.
type ExecutionContext struct {
	UserID   string
	Store    Store
	Calendar CalendarService
	CRM      CRMService
	Log      zerolog.Logger
}

type IntegrationKind string

const (
	KindCalendar IntegrationKind = "calendar"
	KindCRM      IntegrationKind = "crm"
	KindEmail    IntegrationKind = "email"
)

// IntegrationRecord is the stored credential for one user's linked
// third-party account.
type IntegrationRecord struct {
	UserID       string
	Kind         IntegrationKind
	AccessToken  string
	RefreshToken string
	Expiry       time.Time
	IsActive     bool
}

// Connected reports whether the record represents a usable integration at
// the given instant. An expired or deactivated credential is not-connected,
// not an error.
func (r *IntegrationRecord) Connected(now time.Time) bool {
	if r == nil || !r.IsActive {
		return false
	}
	if r.Expiry.IsZero() {
		return true
	}
	return r.Expiry.After(now)
}

// IntegrationStatus is derived fresh per check; it is never cached across
// requests because integrations can be connected or revoked between them.
type IntegrationStatus struct {
	HasCalendar bool `json:"has_calendar"`
	HasCRM      bool `json:"has_crm"`
	HasEmail    bool `json:"has_email"`
}

type Attendee struct {
	Email       string `json:"email"`
	DisplayName string `json:"display_name,omitempty"`
}

// Label renders the attendee for the stakeholders section.
func (a Attendee) Label() string {
	name := strings.TrimSpace(a.DisplayName)
	if name == "" {
		return a.Email
	}
	return name + " <" + a.Email + ">"
}

type Event struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Start     time.Time  `json:"start"`
	End       time.Time  `json:"end"`
	Attendees []Attendee `json:"attendees,omitempty"`
}

type Account struct {
	ID       string `json:"id,omitempty"`
	Name     string `json:"name"`
	Industry string `json:"industry,omitempty"`
	Website  string `json:"website,omitempty"`
}

type Note struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// BriefSections are the fixed slots of a prep brief. Each slot fills
// independently; an empty slot never implies anything about the others.
type BriefSections struct {
	CompanyBrief string   `json:"company_brief"`
	Stakeholders []string `json:"stakeholders"`
	Risks        []string `json:"risks"`
	Objections   []string `json:"objections"`
	Agenda       []string `json:"agenda"`
	Cheatsheet   []string `json:"cheatsheet"`
}

// PrepBrief is the composite artifact the orchestrator assembles for one
// upcoming meeting. An incomplete brief is a valid terminal state.
type PrepBrief struct {
	SubjectID string        `json:"subject_id"`
	Sections  BriefSections `json:"sections"`
}

// NewPrepBrief returns a brief with every list slot allocated so empty
// sections marshal as [] rather than null.
func NewPrepBrief(subjectID string) *PrepBrief {
	return &PrepBrief{
		SubjectID: subjectID,
		Sections: BriefSections{
			Stakeholders: []string{},
			Risks:        []string{},
			Objections:   []string{},
			Agenda:       []string{},
			Cheatsheet:   []string{},
		},
	}
}

// Summary is the introspection view of one registered contract, used for the
// GET /contracts listing and the LLM function-calling manifest.
type Summary struct {
	Name        string                  `json:"name"`
	Version     string                  `json:"version"`
	Description string                  `json:"description"`
	Fields      map[string]FieldSummary `json:"fields"`
}

type FieldSummary struct {
	Type     string `json:"type"`
	Required bool   `json:"required"`
}
