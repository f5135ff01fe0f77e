package contract

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes are stable wire identifiers; callers branch on them, so they
// never change once shipped.
const (
	CodeBadRequest       = "BAD_REQUEST"
	CodeUnauthorized     = "UNAUTHORIZED"
	CodeInternal         = "INTERNAL_ERROR"
	CodeNoUpcomingEvents = "NO_UPCOMING_EVENTS"

	CodeCalendarNotConnected = "CALENDAR_NOT_CONNECTED"
	CodeCRMNotConnected      = "CRM_NOT_CONNECTED"
	CodeEmailNotConnected    = "EMAIL_NOT_CONNECTED"
)

// Error is the typed failure every path terminates in. Callers never see a
// raw stack trace; Cause is for logs only.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`

	Cause error `json:"-"`
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func BadRequest(msg string, details any) *Error {
	return &Error{Code: CodeBadRequest, Message: msg, Details: details}
}

func Unauthorized(msg string) *Error {
	return &Error{Code: CodeUnauthorized, Message: msg}
}

// Internal keeps the original failure for logs; the caller-visible message
// stays generic.
func Internal(msg string, cause error) *Error {
	if msg == "" {
		msg = "internal error"
	}
	return &Error{Code: CodeInternal, Message: msg, Cause: cause}
}

func NoUpcomingEvents() *Error {
	return &Error{Code: CodeNoUpcomingEvents, Message: "no upcoming events in the requested window"}
}

// NotConnected models "this user's linked third-party account is not
// authorized", distinct from an untrusted caller identity. Both map to 401
// with distinct codes.
func NotConnected(kind IntegrationKind) *Error {
	switch kind {
	case KindCalendar:
		return &Error{Code: CodeCalendarNotConnected, Message: "calendar integration is not connected"}
	case KindCRM:
		return &Error{Code: CodeCRMNotConnected, Message: "crm integration is not connected"}
	case KindEmail:
		return &Error{Code: CodeEmailNotConnected, Message: "email integration is not connected"}
	default:
		return &Error{Code: CodeUnauthorized, Message: fmt.Sprintf("integration %q is not connected", kind)}
	}
}

// AsError coerces any error into the taxonomy. Unanticipated failures wrap as
// internal errors with a generic caller-facing message.
func AsError(err error) *Error {
	if err == nil {
		return nil
	}
	var typed *Error
	if errors.As(err, &typed) {
		return typed
	}
	return Internal("unexpected failure", err)
}

// HTTPStatus maps a taxonomy code to its transport status.
func HTTPStatus(code string) int {
	switch code {
	case CodeBadRequest:
		return http.StatusBadRequest
	case CodeUnauthorized, CodeCalendarNotConnected, CodeCRMNotConnected, CodeEmailNotConnected:
		return http.StatusUnauthorized
	case CodeNoUpcomingEvents:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// ErrorResponse is the wire shape of every failed request.
type ErrorResponse struct {
	Error *Error `json:"error"`
}
