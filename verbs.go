package snoo

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/snoolib/snoo/internal"
	pkgerrs "github.com/snoolib/snoo/pkg/errors"
	"github.com/snoolib/snoo/pkg/types"
)

// Replyable is satisfied by things that can receive a comment reply.
type Replyable interface {
	GetName() string
}

// Deletable is satisfied by things their author can delete.
type Deletable interface {
	GetName() string
	GetAuthor() string
}

// Votable is satisfied by things that can be voted on.
type Votable interface {
	GetName() string
}

// Posts and comments are the only kinds reddit lets you reply to, delete,
// or vote on; other kinds don't satisfy these interfaces, so misuse fails
// at compile time rather than at the API.
var (
	_ Replyable = (*types.Post)(nil)
	_ Replyable = (*types.Comment)(nil)
	_ Deletable = (*types.Post)(nil)
	_ Deletable = (*types.Comment)(nil)
	_ Votable   = (*types.Post)(nil)
	_ Votable   = (*types.Comment)(nil)
)

// Reply posts a comment reply under target.
func (c *Client) Reply(ctx context.Context, target Replyable, text string) error {
	form := url.Values{}
	form.Set("parent", target.GetName())
	form.Set("text", text)
	_, err := c.exec.Execute(ctx, c.paths.Resolve("comment", ""), form)
	return err
}

// Delete removes target. Only the author may delete their own content, and
// that precondition is checked locally before any network I/O.
func (c *Client) Delete(ctx context.Context, target Deletable) error {
	session := c.exec.Session()
	if session == nil {
		return &pkgerrs.NotAuthenticatedError{Operation: "delete"}
	}
	if author := target.GetAuthor(); author != "" && author != session.Username {
		return &pkgerrs.AuthorizationError{
			Action: "delete",
			Reason: fmt.Sprintf("content belongs to %q, logged in as %q", author, session.Username),
		}
	}
	form := url.Values{}
	form.Set("id", target.GetName())
	_, err := c.exec.Execute(ctx, c.paths.Resolve("delete", ""), form)
	return err
}

// Vote casts a vote on target: 1 up, 0 rescind, -1 down.
func (c *Client) Vote(ctx context.Context, target Votable, dir int) error {
	if err := internal.ValidateVoteDirection(dir); err != nil {
		return err
	}
	form := url.Values{}
	form.Set("id", target.GetName())
	form.Set("dir", strconv.Itoa(dir))
	_, err := c.exec.Execute(ctx, c.paths.Resolve("vote", ""), form)
	return err
}

// Upvote casts an upvote on target.
func (c *Client) Upvote(ctx context.Context, target Votable) error {
	return c.Vote(ctx, target, 1)
}

// Downvote casts a downvote on target.
func (c *Client) Downvote(ctx context.Context, target Votable) error {
	return c.Vote(ctx, target, -1)
}

// Rescind withdraws any vote on target.
func (c *Client) Rescind(ctx context.Context, target Votable) error {
	return c.Vote(ctx, target, 0)
}

// Save adds post to the authenticated user's saved list.
func (c *Client) Save(ctx context.Context, post *types.Post) error {
	return c.postAction(ctx, "save", post)
}

// Unsave removes post from the authenticated user's saved list.
func (c *Client) Unsave(ctx context.Context, post *types.Post) error {
	return c.postAction(ctx, "unsave", post)
}

// Hide hides post from the authenticated user's listings.
func (c *Client) Hide(ctx context.Context, post *types.Post) error {
	return c.postAction(ctx, "hide", post)
}

// Unhide undoes Hide.
func (c *Client) Unhide(ctx context.Context, post *types.Post) error {
	return c.postAction(ctx, "unhide", post)
}

// MarkNSFW marks post as not safe for work.
func (c *Client) MarkNSFW(ctx context.Context, post *types.Post) error {
	return c.postAction(ctx, "mark", post)
}

// UnmarkNSFW undoes MarkNSFW.
func (c *Client) UnmarkNSFW(ctx context.Context, post *types.Post) error {
	return c.postAction(ctx, "unmark", post)
}

func (c *Client) postAction(ctx context.Context, path string, post *types.Post) error {
	form := url.Values{}
	form.Set("id", post.GetName())
	_, err := c.exec.Execute(ctx, c.paths.Resolve(path, ""), form)
	return err
}

// PostComments returns up to count comments from post's thread. Only
// top-level projection is applied; nested replies stay raw on each record.
func (c *Client) PostComments(ctx context.Context, post *types.Post, count int) ([]*types.Comment, error) {
	if err := internal.ValidateCount(count); err != nil {
		return nil, err
	}
	id := strings.TrimPrefix(post.GetName(), "t3_")
	if id == "" {
		return nil, &pkgerrs.ConfigError{Field: "post", Message: "post has no fullname"}
	}
	return c.pager.Comments(ctx, c.paths.Resolve("post_comments", id), count, true)
}
