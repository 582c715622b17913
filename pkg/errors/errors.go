// Package errors defines the error types reported by the snoo client.
//
// Every failure mode has its own exported struct so callers can distinguish
// them with errors.As. None of these are retried internally; retry policy
// belongs to the caller.
package errors

import (
	"encoding/json"
	"fmt"

	"github.com/kr/pretty"
)

// ConfigError indicates a problem with client configuration or with the
// arguments of a call, detected before any network I/O.
type ConfigError struct {
	// Field contains the name of the configuration field or parameter that caused the error
	Field string
	// Message contains the detailed error message
	Message string
}

func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("config error in field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("config error: %s", e.Message)
}

// NotAuthenticatedError indicates a mutating call was attempted with no
// active session. Log in and retry.
type NotAuthenticatedError struct {
	// Operation is the name of the operation that was attempted
	Operation string
}

func (e *NotAuthenticatedError) Error() string {
	if e.Operation != "" {
		return fmt.Sprintf("not authenticated: %s requires a logged-in session", e.Operation)
	}
	return "not authenticated: you must be logged in to make POST requests"
}

// TransportError indicates a network failure, a timeout, or a non-200
// response status. The call is not retried.
type TransportError struct {
	// StatusCode is the HTTP status code, or 0 if the request never completed
	StatusCode int
	// URL is the URL that was being accessed
	URL string
	// Err contains the underlying error if available
	Err error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("transport error: %s returned status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("transport error: %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// APIError indicates the API reported a non-empty errors list. Payload holds
// the response body verbatim for diagnostics; reddit does not use a stable
// machine-readable error code everywhere, so callers inspect the payload.
type APIError struct {
	// Payload is the raw response body that carried the error list
	Payload json.RawMessage
}

func (e *APIError) Error() string {
	var decoded any
	if err := json.Unmarshal(e.Payload, &decoded); err != nil {
		return fmt.Sprintf("reddit API error: %s", string(e.Payload))
	}
	return "reddit API error: " + pretty.Sprint(decoded)
}

// Errors decodes and returns the "json.errors" list from the payload, or nil
// if the payload does not follow the usual envelope.
func (e *APIError) Errors() []any {
	var envelope struct {
		JSON struct {
			Errors []any `json:"errors"`
		} `json:"json"`
	}
	if err := json.Unmarshal(e.Payload, &envelope); err != nil {
		return nil
	}
	return envelope.JSON.Errors
}

// AuthError indicates a login attempt failed. Payload carries the API's
// error response verbatim when the failure was reported by the API.
type AuthError struct {
	// Username is the account the login was attempted for
	Username string
	// Payload is the API's error response, if the API reported the failure
	Payload json.RawMessage
	// Err contains the underlying error if available
	Err error
}

func (e *AuthError) Error() string {
	if len(e.Payload) > 0 {
		return fmt.Sprintf("authentication failed for %q: %s", e.Username, string(e.Payload))
	}
	return fmt.Sprintf("authentication failed for %q: %v", e.Username, e.Err)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// AuthorizationError indicates a local precondition failure for an action
// restricted to particular users, checked before any network I/O.
type AuthorizationError struct {
	// Action is the verb that was rejected, e.g. "delete"
	Action string
	// Reason explains why the action is not permitted
	Reason string
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("cannot %s: %s", e.Action, e.Reason)
}

// SchemaError indicates a record projection could not map a declared field.
// It points at upstream schema drift and should not occur in normal use.
type SchemaError struct {
	// Kind is the record kind being projected ("post" or "comment")
	Kind string
	// Field is the declared field that could not be mapped
	Field string
	// Err contains the underlying error if available
	Err error
}

func (e *SchemaError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("schema error projecting %s field %q: %v", e.Kind, e.Field, e.Err)
	}
	return fmt.Sprintf("schema error projecting %s: %v", e.Kind, e.Err)
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}

// ScrapeError indicates the best-effort HTML scraping adapter could not
// recognize the page markup.
type ScrapeError struct {
	// URL is the page that was fetched
	URL string
	// Reason describes what was missing or malformed
	Reason string
}

func (e *ScrapeError) Error() string {
	return fmt.Sprintf("scrape error at %s: %s", e.URL, e.Reason)
}
