package prep

import (
	"context"
	"testing"
	"time"

	contractx "github.com/salesloop/prepagent/agent/contract"
	toolx "github.com/salesloop/prepagent/agent/tool"
)

type fakeInvoker struct {
	events    []contractx.Event
	eventsErr *contractx.Error

	accounts  map[string]*contractx.Account
	lookupErr *contractx.Error

	calendarCalls int
	crmCalls      int
}

func (f *fakeInvoker) Execute(_ context.Context, name string, args map[string]any) (any, *contractx.Error) {
	switch name {
	case toolx.NameCalendarNextEvents:
		f.calendarCalls++
		if f.eventsErr != nil {
			return nil, f.eventsErr
		}
		return toolx.NextEventsResult{Events: f.events}, nil
	case toolx.NameCRMAccountByDomain:
		f.crmCalls++
		if f.lookupErr != nil {
			return nil, f.lookupErr
		}
		domain := args["domain"].(string)
		return toolx.AccountByDomainResult{Domain: domain, Account: f.accounts[domain]}, nil
	default:
		return nil, contractx.BadRequest("unexpected tool "+name, nil)
	}
}

type fakeChecker struct {
	status contractx.IntegrationStatus
}

func (f *fakeChecker) Check(context.Context, string) contractx.IntegrationStatus {
	return f.status
}

func allConnected() *fakeChecker {
	return &fakeChecker{status: contractx.IntegrationStatus{
		HasCalendar: true,
		HasCRM:      true,
		HasEmail:    true,
	}}
}

func newOrchestrator(t *testing.T, invoker contractx.ToolInvoker, checker contractx.StatusChecker) *Orchestrator {
	t.Helper()
	o, err := New(invoker, checker, Config{WindowHours: 24})
	if err != nil {
		t.Fatalf("build orchestrator: %v", err)
	}
	return o
}

func TestActBuildsFullBrief(t *testing.T) {
	t.Parallel()

	start := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	invoker := &fakeInvoker{
		events: []contractx.Event{{
			ID:        "e1",
			Title:     "Intro call",
			Start:     start,
			Attendees: []contractx.Attendee{{Email: "a@bigco.com"}},
		}},
		accounts: map[string]*contractx.Account{
			"bigco.com": {Name: "BigCo", Industry: "SaaS"},
		},
	}

	brief, derr := newOrchestrator(t, invoker, allConnected()).Act(context.Background(), "prep_next_call", "u1")
	if derr != nil {
		t.Fatalf("unexpected error: %v", derr)
	}
	if brief.SubjectID != "e1" {
		t.Fatalf("unexpected subject: %s", brief.SubjectID)
	}
	if brief.Sections.CompanyBrief != "BigCo - SaaS" {
		t.Fatalf("unexpected company brief: %q", brief.Sections.CompanyBrief)
	}
	if len(brief.Sections.Stakeholders) != 1 || brief.Sections.Stakeholders[0] != "a@bigco.com" {
		t.Fatalf("unexpected stakeholders: %v", brief.Sections.Stakeholders)
	}
	if len(brief.Sections.Risks) != 0 || len(brief.Sections.Objections) != 0 ||
		len(brief.Sections.Agenda) != 0 || len(brief.Sections.Cheatsheet) != 0 {
		t.Fatalf("extension sections must stay empty: %+v", brief.Sections)
	}
}

func TestActDegradesWhenCRMLookupFails(t *testing.T) {
	t.Parallel()

	invoker := &fakeInvoker{
		events: []contractx.Event{{
			ID:        "e1",
			Start:     time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC),
			Attendees: []contractx.Attendee{{Email: "a@bigco.com"}},
		}},
		lookupErr: contractx.Internal("crm lookup failed", nil),
	}

	brief, derr := newOrchestrator(t, invoker, allConnected()).Act(context.Background(), "prep_next_call", "u1")
	if derr != nil {
		t.Fatalf("per-attendee failure must degrade, not abort: %v", derr)
	}
	if brief.Sections.CompanyBrief != "" {
		t.Fatalf("company section must be empty, got %q", brief.Sections.CompanyBrief)
	}
	if len(brief.Sections.Stakeholders) != 1 {
		t.Fatalf("stakeholders must still fill: %v", brief.Sections.Stakeholders)
	}
}

func TestActNoUpcomingEventsIsTerminalAndCheap(t *testing.T) {
	t.Parallel()

	invoker := &fakeInvoker{}

	_, derr := newOrchestrator(t, invoker, allConnected()).Act(context.Background(), "prep_next_call", "u1")
	if derr == nil || derr.Code != contractx.CodeNoUpcomingEvents {
		t.Fatalf("expected NO_UPCOMING_EVENTS, got %v", derr)
	}
	if invoker.crmCalls != 0 {
		t.Fatalf("zero events must mean zero crm lookups, got %d", invoker.crmCalls)
	}
}

func TestActPropagatesCalendarNotConnected(t *testing.T) {
	t.Parallel()

	invoker := &fakeInvoker{eventsErr: contractx.NotConnected(contractx.KindCalendar)}

	_, derr := newOrchestrator(t, invoker, allConnected()).Act(context.Background(), "prep_next_call", "u1")
	if derr == nil || derr.Code != contractx.CodeCalendarNotConnected {
		t.Fatalf("expected CALENDAR_NOT_CONNECTED, got %v", derr)
	}
}

func TestActRejectsUnknownIntent(t *testing.T) {
	t.Parallel()

	_, derr := newOrchestrator(t, &fakeInvoker{}, allConnected()).Act(context.Background(), "write_poem", "u1")
	if derr == nil || derr.Code != contractx.CodeBadRequest {
		t.Fatalf("expected BAD_REQUEST, got %v", derr)
	}
}

func TestActSelectsEarliestEvent(t *testing.T) {
	t.Parallel()

	base := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	invoker := &fakeInvoker{
		events: []contractx.Event{
			{ID: "later", Start: base.Add(2 * time.Hour)},
			{ID: "sooner", Start: base},
		},
	}

	brief, derr := newOrchestrator(t, invoker, allConnected()).Act(context.Background(), "prep_next_call", "u1")
	if derr != nil {
		t.Fatalf("unexpected error: %v", derr)
	}
	if brief.SubjectID != "sooner" {
		t.Fatalf("expected earliest event, got %s", brief.SubjectID)
	}
}

func TestActSkipsCRMWhenNotConnected(t *testing.T) {
	t.Parallel()

	invoker := &fakeInvoker{
		events: []contractx.Event{{
			ID:        "e1",
			Start:     time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC),
			Attendees: []contractx.Attendee{{Email: "a@bigco.com"}},
		}},
	}
	checker := &fakeChecker{status: contractx.IntegrationStatus{HasCalendar: true}}

	brief, derr := newOrchestrator(t, invoker, checker).Act(context.Background(), "prep_next_call", "u1")
	if derr != nil {
		t.Fatalf("unexpected error: %v", derr)
	}
	if invoker.crmCalls != 0 {
		t.Fatalf("expected no crm calls, got %d", invoker.crmCalls)
	}
	if brief.Sections.CompanyBrief != "" {
		t.Fatalf("company section must be empty: %q", brief.Sections.CompanyBrief)
	}
}
