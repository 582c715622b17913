// Package internal implements the request engine behind the snoo client:
// the rate-limited executor, the listing paginator, the record projector,
// the credential store, and the profile-page scraper.
package internal

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	pkgerrs "github.com/snoolib/snoo/pkg/errors"
	"golang.org/x/time/rate"
)

const (
	// MinDelay is the smallest allowed interval between outbound requests.
	// Reddit asks unauthenticated JSON clients for at least two seconds.
	MinDelay = 2 * time.Second

	// DefaultTimeout bounds every HTTP call when no client is supplied.
	DefaultTimeout = 30 * time.Second

	// maxResponseBytes caps how much of a response body is read.
	maxResponseBytes = 10 << 20

	// tokenField is the reserved form key carrying the session modhash on
	// mutating calls. Distinct from every user-supplied payload key.
	tokenField = "uh"

	sessionCookieName = "reddit_session"
)

// Session holds the credentials of the authenticated identity. UserID is the
// t2-prefixed account id, resolved lazily because only friending needs it.
type Session struct {
	Username string
	Modhash  string
	Cookie   string
	UserID   string
}

// Client is the single choke point for all outbound API calls. It serializes
// requests behind a minimum-interval limiter, attaches session credentials,
// and decodes the JSON envelope.
type Client struct {
	client    *http.Client
	userAgent string
	limiter   *rate.Limiter
	logger    *slog.Logger

	mu      sync.Mutex
	session *Session
}

// NewClient returns a request executor that spaces calls at least delay
// apart. A zero delay selects MinDelay; anything below MinDelay is a
// ConfigError. If httpClient is nil a pooled client with DefaultTimeout is
// used; the transport must reuse connections, so a fresh client per call is
// never created here.
func NewClient(httpClient *http.Client, userAgent string, delay time.Duration, logger *slog.Logger) (*Client, error) {
	if delay == 0 {
		delay = MinDelay
	}
	if delay < MinDelay {
		return nil, &pkgerrs.ConfigError{
			Field:   "Delay",
			Message: fmt.Sprintf("insufficiently patient delay %v, minimum is %v", delay, MinDelay),
		}
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}

	return &Client{
		client:    httpClient,
		userAgent: userAgent,
		// Burst 1: the first call proceeds immediately, every later call
		// waits out the remainder of the interval.
		limiter: rate.NewLimiter(rate.Every(delay), 1),
		logger:  logger,
	}, nil
}

// SetSession installs the active session. All subsequent calls carry its
// cookie and, on mutating calls, its modhash. Passing nil logs out.
func (c *Client) SetSession(s *Session) {
	c.mu.Lock()
	c.session = s
	c.mu.Unlock()
}

// Session returns the active session, or nil when unauthenticated.
func (c *Client) Session() *Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}

// Execute performs a rate-limited call against rawURL and returns the decoded
// JSON body. A nil or empty form issues a GET; otherwise the call is treated
// as mutating: it requires an active session (the login payload, identified
// by its passwd key, is the one exception), and the session modhash is merged
// into the form under the reserved token key. A response whose json.errors
// list is non-empty fails with APIError carrying the payload verbatim.
func (c *Client) Execute(ctx context.Context, rawURL string, form url.Values) (json.RawMessage, error) {
	body, err := c.roundTrip(ctx, rawURL, form)
	if err != nil {
		return nil, err
	}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, &pkgerrs.TransportError{URL: rawURL, Err: errors.New("empty response body")}
	}

	// encoding/json rejects documents nested deeper than 10000 frames,
	// which is the finite-nesting guard the engine relies on.
	if trimmed[0] == '{' {
		var envelope struct {
			JSON *struct {
				Errors []json.RawMessage `json:"errors"`
			} `json:"json"`
		}
		if err := json.Unmarshal(trimmed, &envelope); err != nil {
			return nil, &pkgerrs.TransportError{URL: rawURL, Err: fmt.Errorf("malformed JSON response: %w", err)}
		}
		if envelope.JSON != nil && len(envelope.JSON.Errors) > 0 {
			return nil, &pkgerrs.APIError{Payload: append(json.RawMessage(nil), trimmed...)}
		}
	} else if !json.Valid(trimmed) {
		return nil, &pkgerrs.TransportError{URL: rawURL, Err: errors.New("malformed JSON response")}
	}

	return trimmed, nil
}

// ExecuteRaw performs a rate-limited GET and returns the raw body without
// JSON decoding. Used only by the profile-page scraper.
func (c *Client) ExecuteRaw(ctx context.Context, rawURL string) ([]byte, error) {
	return c.roundTrip(ctx, rawURL, nil)
}

func (c *Client) roundTrip(ctx context.Context, rawURL string, form url.Values) ([]byte, error) {
	session := c.Session()

	var bodyReader io.Reader
	mutating := len(form) > 0
	if mutating {
		if session == nil && form.Get("passwd") == "" {
			return nil, &pkgerrs.NotAuthenticatedError{}
		}
		merged := url.Values{}
		for key, values := range form {
			merged[key] = values
		}
		merged.Set("api_type", "json")
		if session != nil {
			merged.Set(tokenField, session.Modhash)
		}
		bodyReader = strings.NewReader(merged.Encode())
	}

	waitStart := time.Now()
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &pkgerrs.TransportError{URL: rawURL, Err: err}
	}
	if c.logger != nil {
		if waited := time.Since(waitStart); waited > time.Millisecond {
			c.logger.Debug("waited for rate limiter", "waited", waited)
		}
	}

	method := http.MethodGet
	if mutating {
		method = http.MethodPost
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, bodyReader)
	if err != nil {
		return nil, &pkgerrs.TransportError{URL: rawURL, Err: err}
	}
	req.Header.Set("User-Agent", c.userAgent)
	if mutating {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if session != nil {
		req.Header.Set("Cookie", sessionCookieName+"="+session.Cookie)
	}

	if c.logger != nil {
		c.logger.Debug("issuing request", "method", method, "url", rawURL)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &pkgerrs.TransportError{URL: rawURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &pkgerrs.TransportError{StatusCode: resp.StatusCode, URL: rawURL}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes+1))
	if err != nil {
		return nil, &pkgerrs.TransportError{URL: rawURL, Err: err}
	}
	if len(body) > maxResponseBytes {
		return nil, &pkgerrs.TransportError{URL: rawURL, Err: fmt.Errorf("response body exceeds %d bytes", maxResponseBytes)}
	}

	if c.logger != nil {
		c.logger.Debug("response received", "url", rawURL, "bytes", len(body))
	}

	return body, nil
}
