package snoo

import (
	"context"
	"net/url"
	"strings"

	"github.com/snoolib/snoo/internal"
	"github.com/snoolib/snoo/pkg/types"
)

// User is a handle on a reddit user. Methods fetch data on demand; the
// handle itself holds no state beyond the name.
type User struct {
	client *Client
	name   string
}

// User returns a handle on the named user.
func (c *Client) User(name string) *User {
	return &User{client: c, name: name}
}

// About returns the user's account data.
func (u *User) About(ctx context.Context) (*types.Account, error) {
	if err := internal.ValidateName("user", u.name); err != nil {
		return nil, err
	}
	raw, err := u.client.exec.Execute(ctx, u.client.paths.Resolve("user_about", u.name), nil)
	if err != nil {
		return nil, err
	}
	return internal.ParseAccount(raw)
}

// Posts returns up to count of the user's submitted posts.
func (u *User) Posts(ctx context.Context, count int) ([]*types.Post, error) {
	return u.posts(ctx, "user_posts", count)
}

// Comments returns up to count of the user's comments.
func (u *User) Comments(ctx context.Context, count int) ([]*types.Comment, error) {
	if err := u.validate(count); err != nil {
		return nil, err
	}
	return u.client.pager.Comments(ctx, u.client.paths.Resolve("user_comments", u.name), count, false)
}

// Liked returns up to count posts the user has upvoted. Reddit only serves
// this for the authenticated user unless the list is public.
func (u *User) Liked(ctx context.Context, count int) ([]*types.Post, error) {
	return u.posts(ctx, "liked", count)
}

// Disliked returns up to count posts the user has downvoted.
func (u *User) Disliked(ctx context.Context, count int) ([]*types.Post, error) {
	return u.posts(ctx, "disliked", count)
}

// Hidden returns up to count posts the user has hidden.
func (u *User) Hidden(ctx context.Context, count int) ([]*types.Post, error) {
	return u.posts(ctx, "hidden", count)
}

// Trophies scrapes the user's trophy case from their profile page.
// Best effort: markup drift surfaces as ScrapeError.
func (u *User) Trophies(ctx context.Context) ([]types.Trophy, error) {
	if err := internal.ValidateName("user", u.name); err != nil {
		return nil, err
	}
	return u.client.scraper.Trophies(ctx, u.profilePageURL())
}

// KarmaBreakdown scrapes the user's per-subreddit karma from their profile
// page. Best effort, like Trophies.
func (u *User) KarmaBreakdown(ctx context.Context) (map[string]types.Karma, error) {
	if err := internal.ValidateName("user", u.name); err != nil {
		return nil, err
	}
	return u.client.scraper.KarmaBreakdown(ctx, u.profilePageURL())
}

// Friend adds the user to the authenticated user's friends. Requires the
// client's own account id, resolved lazily on first use.
func (u *User) Friend(ctx context.Context) error {
	return u.friend(ctx, "friend")
}

// Unfriend removes the user from the authenticated user's friends.
func (u *User) Unfriend(ctx context.Context) error {
	return u.friend(ctx, "unfriend")
}

func (u *User) friend(ctx context.Context, path string) error {
	if err := internal.ValidateName("user", u.name); err != nil {
		return err
	}
	container, err := u.client.userID(ctx)
	if err != nil {
		return err
	}
	form := url.Values{}
	form.Set("name", u.name)
	form.Set("type", "friend")
	form.Set("container", container)
	_, err = u.client.exec.Execute(ctx, u.client.paths.Resolve(path, ""), form)
	return err
}

func (u *User) posts(ctx context.Context, path string, count int) ([]*types.Post, error) {
	if err := u.validate(count); err != nil {
		return nil, err
	}
	return u.client.pager.Posts(ctx, u.client.paths.Resolve(path, u.name), count)
}

func (u *User) validate(count int) error {
	if err := internal.ValidateName("user", u.name); err != nil {
		return err
	}
	return internal.ValidateCount(count)
}

// Only the profile page itself carries trophy and karma markup; limit=1
// keeps the scraped payload small.
func (u *User) profilePageURL() string {
	return u.client.paths.Resolve("user", u.name) + "?limit=1"
}

// Subreddit is a handle on a subreddit.
type Subreddit struct {
	client *Client
	name   string
}

// Subreddit returns a handle on the named subreddit.
func (c *Client) Subreddit(name string) *Subreddit {
	return &Subreddit{client: c, name: name}
}

// About returns the subreddit's metadata.
func (s *Subreddit) About(ctx context.Context) (*types.SubredditInfo, error) {
	if err := internal.ValidateName("subreddit", s.name); err != nil {
		return nil, err
	}
	raw, err := s.client.exec.Execute(ctx, s.client.paths.Resolve("subreddit_about", s.name), nil)
	if err != nil {
		return nil, err
	}
	return internal.ParseSubreddit(raw)
}

// Posts returns up to count posts from the subreddit.
func (s *Subreddit) Posts(ctx context.Context, count int) ([]*types.Post, error) {
	if err := s.validate(count); err != nil {
		return nil, err
	}
	return s.client.pager.Posts(ctx, s.client.paths.Resolve("subreddit_posts", s.name), count)
}

// Comments returns up to count comments made anywhere in the subreddit,
// newest first.
func (s *Subreddit) Comments(ctx context.Context, count int) ([]*types.Comment, error) {
	if err := s.validate(count); err != nil {
		return nil, err
	}
	return s.client.pager.Comments(ctx, s.client.paths.Resolve("subreddit_comments", s.name), count, false)
}

// Submit submits a post. Content starting with http:// or https:// is
// submitted as a link post, anything else as a self post.
func (s *Subreddit) Submit(ctx context.Context, title, content string) error {
	if err := internal.ValidateName("subreddit", s.name); err != nil {
		return err
	}
	form := url.Values{}
	form.Set("title", title)
	form.Set("sr", s.name)
	if strings.HasPrefix(content, "http://") || strings.HasPrefix(content, "https://") {
		form.Set("kind", "link")
		form.Set("url", content)
	} else {
		form.Set("kind", "self")
		form.Set("text", content)
	}
	_, err := s.client.exec.Execute(ctx, s.client.paths.Resolve("submit", ""), form)
	return err
}

// Subscribe subscribes the authenticated user to the subreddit. Subscribing
// needs the subreddit's fullname, so a lookup call precedes the action.
func (s *Subreddit) Subscribe(ctx context.Context) error {
	return s.subscribe(ctx, "sub")
}

// Unsubscribe undoes Subscribe.
func (s *Subreddit) Unsubscribe(ctx context.Context) error {
	return s.subscribe(ctx, "unsub")
}

func (s *Subreddit) subscribe(ctx context.Context, action string) error {
	about, err := s.About(ctx)
	if err != nil {
		return err
	}
	form := url.Values{}
	form.Set("action", action)
	form.Set("sr", about.Name)
	_, err = s.client.exec.Execute(ctx, s.client.paths.Resolve("subscribe", ""), form)
	return err
}

// Compose sends a message to the subreddit's moderators.
func (s *Subreddit) Compose(ctx context.Context, subject, text string) error {
	// The # prefix routes the message to modmail rather than a user.
	return s.client.Compose(ctx, "#"+s.name, subject, text)
}

func (s *Subreddit) validate(count int) error {
	if err := internal.ValidateName("subreddit", s.name); err != nil {
		return err
	}
	return internal.ValidateCount(count)
}

// Domain is a handle on the set of posts linking to a domain.
type Domain struct {
	client *Client
	name   string
}

// Domain returns a handle on the named domain, e.g. "github.com".
func (c *Client) Domain(name string) *Domain {
	return &Domain{client: c, name: name}
}

// Posts returns up to count posts linking to the domain.
func (d *Domain) Posts(ctx context.Context, count int) ([]*types.Post, error) {
	if err := internal.ValidateName("domain", d.name); err != nil {
		return nil, err
	}
	if err := internal.ValidateCount(count); err != nil {
		return nil, err
	}
	return d.client.pager.Posts(ctx, d.client.paths.Resolve("domain_posts", d.name), count)
}
