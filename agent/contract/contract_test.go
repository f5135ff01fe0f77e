package contract

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"
)

func TestIntegrationRecordConnected(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name   string
		record *IntegrationRecord
		want   bool
	}{
		{"nil record", nil, false},
		{"inactive", &IntegrationRecord{IsActive: false}, false},
		{"expired", &IntegrationRecord{IsActive: true, Expiry: now.Add(-time.Minute)}, false},
		{"valid", &IntegrationRecord{IsActive: true, Expiry: now.Add(time.Hour)}, true},
		{"non-expiring", &IntegrationRecord{IsActive: true}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := tc.record.Connected(now); got != tc.want {
				t.Fatalf("Connected() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestAttendeeLabel(t *testing.T) {
	t.Parallel()

	withName := Attendee{Email: "a@bigco.com", DisplayName: "Ada"}
	if got := withName.Label(); got != "Ada <a@bigco.com>" {
		t.Fatalf("Label() = %q", got)
	}
	bare := Attendee{Email: "a@bigco.com"}
	if got := bare.Label(); got != "a@bigco.com" {
		t.Fatalf("Label() = %q", got)
	}
}

func TestNewPrepBriefMarshalsEmptySections(t *testing.T) {
	t.Parallel()

	raw, err := json.Marshal(NewPrepBrief("e1"))
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if strings.Contains(string(raw), "null") {
		t.Fatalf("empty sections must marshal as [], got %s", raw)
	}
}

func TestAsError(t *testing.T) {
	t.Parallel()

	if got := AsError(nil); got != nil {
		t.Fatalf("AsError(nil) = %v", got)
	}

	typed := NotConnected(KindCalendar)
	if got := AsError(fmt.Errorf("fetch events: %w", typed)); got.Code != CodeCalendarNotConnected {
		t.Fatalf("wrapped typed error lost its code: %s", got.Code)
	}

	raw := errors.New("pq: connection refused token=secret")
	got := AsError(raw)
	if got.Code != CodeInternal {
		t.Fatalf("untyped error code = %s", got.Code)
	}
	if strings.Contains(got.Message, "secret") {
		t.Fatalf("internal cause leaked into message: %s", got.Message)
	}
	if !errors.Is(got, raw) {
		t.Fatal("internal error must keep the cause for logs")
	}
}

func TestHTTPStatus(t *testing.T) {
	t.Parallel()

	cases := map[string]int{
		CodeBadRequest:           http.StatusBadRequest,
		CodeUnauthorized:         http.StatusUnauthorized,
		CodeCalendarNotConnected: http.StatusUnauthorized,
		CodeCRMNotConnected:      http.StatusUnauthorized,
		CodeEmailNotConnected:    http.StatusUnauthorized,
		CodeNoUpcomingEvents:     http.StatusNotFound,
		CodeInternal:             http.StatusInternalServerError,
		"SOMETHING_ELSE":         http.StatusInternalServerError,
	}
	for code, want := range cases {
		if got := HTTPStatus(code); got != want {
			t.Fatalf("HTTPStatus(%s) = %d, want %d", code, got, want)
		}
	}
}

func TestErrorCauseNeverSerialized(t *testing.T) {
	t.Parallel()

	raw, err := json.Marshal(ErrorResponse{Error: Internal("internal error", errors.New("dsn=postgres://u:pw@host"))})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if strings.Contains(string(raw), "pw@host") {
		t.Fatalf("cause leaked onto the wire: %s", raw)
	}
}
