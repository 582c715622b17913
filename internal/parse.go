package internal

import (
	"encoding/json"
	"fmt"

	pkgerrs "github.com/snoolib/snoo/pkg/errors"
	"github.com/snoolib/snoo/pkg/types"
)

// Projector builds typed records from listing children. It reads exactly the
// fields its field-set table declares, in declared order, and drops the rest.
type Projector struct {
	fields types.FieldSets
}

// NewProjector returns a projector over the given field-set table.
// A nil table selects DefaultFieldSets.
func NewProjector(fields types.FieldSets) *Projector {
	if fields == nil {
		fields = types.DefaultFieldSets()
	}
	return &Projector{fields: fields}
}

// Post projects a child's data object into a Post record.
func (p *Projector) Post(data json.RawMessage) (*types.Post, error) {
	obj, err := decodeObject(types.KindPost, data)
	if err != nil {
		return nil, err
	}
	post := &types.Post{}
	for _, field := range p.fields[types.KindPost] {
		raw, ok := obj[field]
		if !ok || string(raw) == "null" {
			continue // absent and null both project to the zero value
		}
		if err := setPostField(post, field, raw); err != nil {
			return nil, &pkgerrs.SchemaError{Kind: string(types.KindPost), Field: field, Err: err}
		}
	}
	return post, nil
}

// Comment projects a child's data object into a Comment record.
func (p *Projector) Comment(data json.RawMessage) (*types.Comment, error) {
	obj, err := decodeObject(types.KindComment, data)
	if err != nil {
		return nil, err
	}
	comment := &types.Comment{}
	for _, field := range p.fields[types.KindComment] {
		raw, ok := obj[field]
		if !ok || string(raw) == "null" {
			continue
		}
		if err := setCommentField(comment, field, raw); err != nil {
			return nil, &pkgerrs.SchemaError{Kind: string(types.KindComment), Field: field, Err: err}
		}
	}
	return comment, nil
}

func decodeObject(kind types.Kind, data json.RawMessage) (map[string]json.RawMessage, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, &pkgerrs.SchemaError{Kind: string(kind), Err: fmt.Errorf("data payload is not an object: %w", err)}
	}
	return obj, nil
}

func setPostField(p *types.Post, field string, raw json.RawMessage) error {
	switch field {
	case "author":
		return json.Unmarshal(raw, &p.Author)
	case "author_flair_css_class":
		return json.Unmarshal(raw, &p.AuthorFlairCSSClass)
	case "author_flair_text":
		return json.Unmarshal(raw, &p.AuthorFlairText)
	case "clicked":
		return json.Unmarshal(raw, &p.Clicked)
	case "created":
		return json.Unmarshal(raw, &p.Created.Created)
	case "created_utc":
		return json.Unmarshal(raw, &p.CreatedUTC)
	case "domain":
		return json.Unmarshal(raw, &p.Domain)
	case "downs":
		return json.Unmarshal(raw, &p.Downs)
	case "hidden":
		return json.Unmarshal(raw, &p.Hidden)
	case "id":
		return json.Unmarshal(raw, &p.ID)
	case "is_self":
		return json.Unmarshal(raw, &p.IsSelf)
	case "likes":
		return json.Unmarshal(raw, &p.Likes)
	case "media":
		p.Media = append(json.RawMessage(nil), raw...)
		return nil
	case "media_embed":
		p.MediaEmbed = append(json.RawMessage(nil), raw...)
		return nil
	case "name":
		return json.Unmarshal(raw, &p.Name)
	case "num_comments":
		return json.Unmarshal(raw, &p.NumComments)
	case "over_18":
		return json.Unmarshal(raw, &p.Over18)
	case "permalink":
		return json.Unmarshal(raw, &p.Permalink)
	case "saved":
		return json.Unmarshal(raw, &p.Saved)
	case "score":
		return json.Unmarshal(raw, &p.Score)
	case "selftext":
		return json.Unmarshal(raw, &p.SelfText)
	case "subreddit":
		return json.Unmarshal(raw, &p.Subreddit)
	case "subreddit_id":
		return json.Unmarshal(raw, &p.SubredditID)
	case "thumbnail":
		return json.Unmarshal(raw, &p.Thumbnail)
	case "title":
		return json.Unmarshal(raw, &p.Title)
	case "ups":
		return json.Unmarshal(raw, &p.Ups)
	case "url":
		return json.Unmarshal(raw, &p.URL)
	default:
		return fmt.Errorf("no mapping for declared field")
	}
}

func setCommentField(c *types.Comment, field string, raw json.RawMessage) error {
	switch field {
	case "author":
		return json.Unmarshal(raw, &c.Author)
	case "author_flair_css_class":
		return json.Unmarshal(raw, &c.AuthorFlairCSSClass)
	case "author_flair_text":
		return json.Unmarshal(raw, &c.AuthorFlairText)
	case "body":
		return json.Unmarshal(raw, &c.Body)
	case "created":
		return json.Unmarshal(raw, &c.Created.Created)
	case "created_utc":
		return json.Unmarshal(raw, &c.CreatedUTC)
	case "downs":
		return json.Unmarshal(raw, &c.Downs)
	case "id":
		return json.Unmarshal(raw, &c.ID)
	case "likes":
		return json.Unmarshal(raw, &c.Likes)
	case "link_id":
		return json.Unmarshal(raw, &c.LinkID)
	case "link_title":
		return json.Unmarshal(raw, &c.LinkTitle)
	case "name":
		return json.Unmarshal(raw, &c.Name)
	case "parent_id":
		return json.Unmarshal(raw, &c.ParentID)
	case "replies":
		// Either a nested Listing or "" when there are none; kept raw.
		c.Replies = append(json.RawMessage(nil), raw...)
		return nil
	case "subreddit":
		return json.Unmarshal(raw, &c.Subreddit)
	case "subreddit_id":
		return json.Unmarshal(raw, &c.SubredditID)
	case "ups":
		return json.Unmarshal(raw, &c.Ups)
	default:
		return fmt.Errorf("no mapping for declared field")
	}
}

// ParseAccount decodes a {kind, data} envelope into an Account.
func ParseAccount(raw json.RawMessage) (*types.Account, error) {
	data, err := unwrapData(raw)
	if err != nil {
		return nil, err
	}
	var account types.Account
	if err := json.Unmarshal(data, &account); err != nil {
		return nil, &pkgerrs.SchemaError{Kind: "account", Err: err}
	}
	return &account, nil
}

// ParseSubreddit decodes a {kind, data} envelope into a SubredditInfo.
func ParseSubreddit(raw json.RawMessage) (*types.SubredditInfo, error) {
	data, err := unwrapData(raw)
	if err != nil {
		return nil, err
	}
	var info types.SubredditInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, &pkgerrs.SchemaError{Kind: "subreddit", Err: err}
	}
	return &info, nil
}

func unwrapData(raw json.RawMessage) (json.RawMessage, error) {
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, &pkgerrs.SchemaError{Kind: "thing", Err: err}
	}
	if len(envelope.Data) == 0 {
		return nil, &pkgerrs.SchemaError{Kind: "thing", Err: fmt.Errorf("envelope has no data payload")}
	}
	return envelope.Data, nil
}
