package errors

import (
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"
)

func TestConfigErrorMessage(t *testing.T) {
	t.Parallel()

	err := &ConfigError{Field: "Delay", Message: "too small"}
	if got := err.Error(); !strings.Contains(got, "Delay") || !strings.Contains(got, "too small") {
		t.Errorf("Error() = %q", got)
	}

	bare := &ConfigError{Message: "nope"}
	if got := bare.Error(); !strings.Contains(got, "nope") {
		t.Errorf("Error() = %q", got)
	}
}

func TestNotAuthenticatedErrorMessage(t *testing.T) {
	t.Parallel()

	err := &NotAuthenticatedError{Operation: "delete"}
	if got := err.Error(); !strings.Contains(got, "delete") {
		t.Errorf("Error() = %q", got)
	}
	if got := (&NotAuthenticatedError{}).Error(); got == "" {
		t.Error("Error() empty for zero value")
	}
}

func TestTransportErrorUnwrap(t *testing.T) {
	t.Parallel()

	err := &TransportError{URL: "https://example.test", Err: io.ErrUnexpectedEOF}
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Error("errors.Is did not reach the wrapped error")
	}

	status := &TransportError{URL: "https://example.test", StatusCode: 503}
	if got := status.Error(); !strings.Contains(got, "503") {
		t.Errorf("Error() = %q", got)
	}
}

func TestAPIErrorPayload(t *testing.T) {
	t.Parallel()

	payload := json.RawMessage(`{"json":{"errors":[["RATELIMIT","slow down","vote"]]}}`)
	err := &APIError{Payload: payload}

	if got := err.Error(); !strings.Contains(got, "RATELIMIT") {
		t.Errorf("Error() = %q, want RATELIMIT mentioned", got)
	}

	errs := err.Errors()
	if len(errs) != 1 {
		t.Fatalf("Errors() = %v, want one entry", errs)
	}
	entry, ok := errs[0].([]any)
	if !ok || len(entry) != 3 || entry[0] != "RATELIMIT" {
		t.Errorf("Errors()[0] = %v", errs[0])
	}
}

func TestAPIErrorUnusualPayload(t *testing.T) {
	t.Parallel()

	// Payloads that don't follow the envelope are still reported verbatim.
	err := &APIError{Payload: json.RawMessage(`{"weird": true}`)}
	if got := err.Error(); got == "" {
		t.Error("Error() empty")
	}
	if errs := err.Errors(); errs != nil {
		t.Errorf("Errors() = %v, want nil", errs)
	}
}

func TestAuthErrorMessage(t *testing.T) {
	t.Parallel()

	withPayload := &AuthError{Username: "alice", Payload: json.RawMessage(`{"json":{"errors":[["WRONG_PASSWORD","invalid password","passwd"]]}}`)}
	if got := withPayload.Error(); !strings.Contains(got, "alice") || !strings.Contains(got, "WRONG_PASSWORD") {
		t.Errorf("Error() = %q", got)
	}

	wrapped := &AuthError{Username: "alice", Err: io.ErrUnexpectedEOF}
	if !errors.Is(wrapped, io.ErrUnexpectedEOF) {
		t.Error("errors.Is did not reach the wrapped error")
	}
}

func TestSchemaErrorMessage(t *testing.T) {
	t.Parallel()

	err := &SchemaError{Kind: "post", Field: "ups", Err: errors.New("bad number")}
	got := err.Error()
	if !strings.Contains(got, "post") || !strings.Contains(got, "ups") {
		t.Errorf("Error() = %q", got)
	}
}

func TestAuthorizationErrorMessage(t *testing.T) {
	t.Parallel()

	err := &AuthorizationError{Action: "delete", Reason: "not the author"}
	if got := err.Error(); !strings.Contains(got, "delete") || !strings.Contains(got, "not the author") {
		t.Errorf("Error() = %q", got)
	}
}

func TestScrapeErrorMessage(t *testing.T) {
	t.Parallel()

	err := &ScrapeError{URL: "https://example.test/user/alice", Reason: "no trophy markup found"}
	if got := err.Error(); !strings.Contains(got, "alice") || !strings.Contains(got, "trophy") {
		t.Errorf("Error() = %q", got)
	}
}
