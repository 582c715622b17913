package internal

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	pkgerrs "github.com/snoolib/snoo/pkg/errors"
	"github.com/snoolib/snoo/pkg/types"
)

// maxPageSize is reddit's hard cap on items per listing page.
const maxPageSize = 100

// Paginator drives a listing endpoint through the executor, following the
// "after" cursor until the requested count is reached or the listing runs
// out. Results are materialized eagerly, in response order.
type Paginator struct {
	exec *Client
	proj *Projector
}

// NewPaginator returns a paginator over the given executor and projector.
func NewPaginator(exec *Client, proj *Projector) *Paginator {
	return &Paginator{exec: exec, proj: proj}
}

// Posts fetches up to count posts from the listing at listURL.
func (p *Paginator) Posts(ctx context.Context, listURL string, count int) ([]*types.Post, error) {
	posts := make([]*types.Post, 0, clampPage(count))
	err := p.pages(ctx, listURL, count, false, func(data json.RawMessage) error {
		post, err := p.proj.Post(data)
		if err != nil {
			return err
		}
		posts = append(posts, post)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// Comments fetches up to count comments from the listing at listURL. When
// thread is set, the endpoint is a post's comment thread, whose response is
// a 2-element array with the listing in second position.
func (p *Paginator) Comments(ctx context.Context, listURL string, count int, thread bool) ([]*types.Comment, error) {
	comments := make([]*types.Comment, 0, clampPage(count))
	err := p.pages(ctx, listURL, count, thread, func(data json.RawMessage) error {
		comment, err := p.proj.Comment(data)
		if err != nil {
			return err
		}
		comments = append(comments, comment)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// pages runs the fetch loop, invoking collect once per child in response
// order. It stops mid-page as soon as count records have been collected,
// without touching the remaining children, and terminates when the cursor
// is exhausted.
func (p *Paginator) pages(ctx context.Context, listURL string, count int, thread bool, collect func(json.RawMessage) error) error {
	if count <= 0 {
		return nil
	}
	pageSize := clampPage(count)

	after := ""
	collected := 0
	for {
		pageURL, err := listingURL(listURL, pageSize, after)
		if err != nil {
			return err
		}

		raw, err := p.exec.Execute(ctx, pageURL, nil)
		if err != nil {
			return err
		}
		if thread {
			if raw, err = threadListing(raw); err != nil {
				return err
			}
		}

		var envelope struct {
			Data types.Listing `json:"data"`
		}
		if err := json.Unmarshal(raw, &envelope); err != nil {
			return &pkgerrs.SchemaError{Kind: "listing", Err: err}
		}

		for _, child := range envelope.Data.Children {
			if child == nil {
				continue
			}
			if err := collect(child.Data); err != nil {
				return err
			}
			collected++
			if collected == count {
				return nil
			}
		}

		if envelope.Data.After == "" {
			return nil
		}
		after = envelope.Data.After
	}
}

func clampPage(count int) int {
	if count > maxPageSize {
		return maxPageSize
	}
	if count < 0 {
		return 0
	}
	return count
}

func listingURL(listURL string, limit int, after string) (string, error) {
	u, err := url.Parse(listURL)
	if err != nil {
		return "", &pkgerrs.ConfigError{Field: "path", Message: fmt.Sprintf("invalid listing URL %q: %v", listURL, err)}
	}
	q := u.Query()
	q.Set("limit", strconv.Itoa(limit))
	if after != "" {
		q.Set("after", after)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// threadListing unwraps the [post, listing] shape of a comment-thread
// response, returning the listing element.
func threadListing(raw json.RawMessage) (json.RawMessage, error) {
	var parts []json.RawMessage
	if err := json.Unmarshal(raw, &parts); err != nil {
		return nil, &pkgerrs.SchemaError{Kind: "thread", Err: err}
	}
	if len(parts) < 2 {
		return nil, &pkgerrs.SchemaError{Kind: "thread", Err: fmt.Errorf("want [post, listing], got %d elements", len(parts))}
	}
	return parts[1], nil
}
