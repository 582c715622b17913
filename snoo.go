package snoo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/snoolib/snoo/internal"
	pkgerrs "github.com/snoolib/snoo/pkg/errors"
	"github.com/snoolib/snoo/pkg/types"
)

const (
	// DefaultBaseURL is the origin all default path templates are rooted at.
	DefaultBaseURL = "https://www.reddit.com/"
	// DefaultUserAgent identifies the client when none is configured.
	// Generic agents are throttled aggressively; set your own.
	DefaultUserAgent = "snoo/1.0"
	// DefaultDelay is the minimum interval between outbound requests.
	DefaultDelay = 2 * time.Second
	// DefaultAuthFile is where sessions are persisted between runs.
	DefaultAuthFile = ".snoo/auth.json"
)

// Config holds the configuration for a Client. The zero value of every field
// selects a sensible default; a Delay below two seconds is rejected.
type Config struct {
	// UserAgent identifies the application to reddit.
	// Recommended format: "platform:app-name:version by u/username".
	UserAgent string

	// Delay is the minimum interval between outbound requests. Defaults to
	// DefaultDelay; values below it fail with ConfigError.
	Delay time.Duration

	// BaseURL overrides the origin the default path table is rooted at.
	// Ignored when Paths is set explicitly.
	BaseURL string

	// Paths overrides the action-to-URL-template table.
	Paths Paths

	// Fields overrides the record field-set table.
	Fields types.FieldSets

	// AuthFile is the path of the persisted credential file.
	AuthFile string

	// HTTPClient to use for requests. Defaults to a pooled client with a
	// 30-second timeout. Connection reuse matters here: reddit expects low
	// connection churn from well-behaved clients.
	HTTPClient *http.Client

	// Logger for structured diagnostics. Optional.
	Logger *slog.Logger
}

// Session describes the authenticated identity.
type Session struct {
	Username string
	Modhash  string
	Cookie   string
	UserID   string
}

// Client is the reddit API client. Reads work unauthenticated; write actions
// require Login first. A Client is safe for concurrent use; all calls share
// one rate limiter, so concurrent callers are serialized at the wire.
type Client struct {
	exec    *internal.Client
	pager   *internal.Paginator
	scraper *internal.Scraper
	store   *internal.Store
	paths   Paths
	logger  *slog.Logger
}

// NewClient creates a Client from config and loads any previously persisted
// credentials. A nil config selects all defaults.
func NewClient(config *Config) (*Client, error) {
	cfg := Config{}
	if config != nil {
		cfg = *config
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.Paths == nil {
		cfg.Paths = DefaultPaths(cfg.BaseURL)
	}
	if cfg.AuthFile == "" {
		cfg.AuthFile = DefaultAuthFile
	}

	exec, err := internal.NewClient(cfg.HTTPClient, cfg.UserAgent, cfg.Delay, cfg.Logger)
	if err != nil {
		return nil, err
	}

	store, err := internal.OpenStore(cfg.AuthFile)
	if err != nil {
		return nil, err
	}

	proj := internal.NewProjector(cfg.Fields)

	return &Client{
		exec:    exec,
		pager:   internal.NewPaginator(exec, proj),
		scraper: internal.NewScraper(exec),
		store:   store,
		paths:   cfg.Paths,
		logger:  cfg.Logger,
	}, nil
}

// Login causes the client to be recognized as the given user. If credentials
// for username are already persisted and force is false, they are adopted
// without a network call; stale entries only surface once a write fails, at
// which point a forced login refreshes them. A successful network login is
// persisted. Only one identity is active per client at a time.
func (c *Client) Login(ctx context.Context, username, password string, force bool) error {
	if err := internal.ValidateName("username", username); err != nil {
		return err
	}

	if !force {
		if creds, ok := c.store.Get(username); ok {
			c.exec.SetSession(&internal.Session{
				Username: username,
				Modhash:  creds.Modhash,
				Cookie:   creds.Cookie,
				UserID:   creds.UserID,
			})
			if c.logger != nil {
				c.logger.Debug("adopted persisted session", "user", username)
			}
			return nil
		}
	}

	form := url.Values{}
	form.Set("user", username)
	form.Set("passwd", password)

	raw, err := c.exec.Execute(ctx, c.paths.Resolve("login", username), form)
	if err != nil {
		var apiErr *pkgerrs.APIError
		if errors.As(err, &apiErr) {
			return &pkgerrs.AuthError{Username: username, Payload: apiErr.Payload}
		}
		return &pkgerrs.AuthError{Username: username, Err: err}
	}

	var resp struct {
		JSON struct {
			Data struct {
				Modhash string `json:"modhash"`
				Cookie  string `json:"cookie"`
			} `json:"data"`
		} `json:"json"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return &pkgerrs.AuthError{Username: username, Err: fmt.Errorf("unexpected login response: %w", err)}
	}
	if resp.JSON.Data.Modhash == "" {
		return &pkgerrs.AuthError{Username: username, Err: errors.New("login response carried no modhash")}
	}

	c.exec.SetSession(&internal.Session{
		Username: username,
		Modhash:  resp.JSON.Data.Modhash,
		Cookie:   resp.JSON.Data.Cookie,
	})

	return c.store.Put(username, internal.Credentials{
		Modhash: resp.JSON.Data.Modhash,
		Cookie:  resp.JSON.Data.Cookie,
	})
}

// Logout drops the active session. Persisted credentials are kept.
func (c *Client) Logout() {
	c.exec.SetSession(nil)
}

// Session returns a copy of the active session, or nil when logged out.
func (c *Client) Session() *Session {
	s := c.exec.Session()
	if s == nil {
		return nil
	}
	return &Session{Username: s.Username, Modhash: s.Modhash, Cookie: s.Cookie, UserID: s.UserID}
}

// Me returns the authenticated user's account data. It is also the cheapest
// way to check for new mail.
func (c *Client) Me(ctx context.Context) (*types.Account, error) {
	raw, err := c.exec.Execute(ctx, c.paths.Resolve("me", ""), nil)
	if err != nil {
		return nil, err
	}
	return internal.ParseAccount(raw)
}

// Do is the raw escape hatch into the request engine: a rate-limited GET
// (nil form) or authenticated POST against an absolute URL, returning the
// decoded JSON body. Useful for endpoints the typed surface doesn't cover.
func (c *Client) Do(ctx context.Context, rawURL string, form url.Values) (json.RawMessage, error) {
	return c.exec.Execute(ctx, rawURL, form)
}

// FrontPage returns up to count posts from the front page.
func (c *Client) FrontPage(ctx context.Context, count int) ([]*types.Post, error) {
	if err := internal.ValidateCount(count); err != nil {
		return nil, err
	}
	return c.pager.Posts(ctx, c.paths.Resolve("reddit", ""), count)
}

// Saved returns up to count of the authenticated user's saved posts.
func (c *Client) Saved(ctx context.Context, count int) ([]*types.Post, error) {
	if err := internal.ValidateCount(count); err != nil {
		return nil, err
	}
	return c.pager.Posts(ctx, c.paths.Resolve("saved", ""), count)
}

// Compose sends a private message to the named user.
func (c *Client) Compose(ctx context.Context, to, subject, text string) error {
	form := url.Values{}
	form.Set("to", to)
	form.Set("subject", subject)
	form.Set("text", text)
	_, err := c.exec.Execute(ctx, c.paths.Resolve("compose", ""), form)
	return err
}

// userID resolves the authenticated user's t2-prefixed account id, needed
// only for friending. Resolved once via me.json, then cached on the session
// and re-persisted.
func (c *Client) userID(ctx context.Context) (string, error) {
	session := c.exec.Session()
	if session == nil {
		return "", &pkgerrs.NotAuthenticatedError{Operation: "friend"}
	}
	if session.UserID != "" {
		return session.UserID, nil
	}

	me, err := c.Me(ctx)
	if err != nil {
		return "", err
	}
	id := "t2_" + me.ID

	updated := *session
	updated.UserID = id
	c.exec.SetSession(&updated)

	if err := c.store.Put(session.Username, internal.Credentials{
		Modhash: session.Modhash,
		Cookie:  session.Cookie,
		UserID:  id,
	}); err != nil {
		return "", err
	}
	return id, nil
}
