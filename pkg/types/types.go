// Package types declares the wire and record types exchanged with reddit's
// JSON API.
package types

import "encoding/json"

// Kind is the category tag of a reddit thing. It determines which path
// template, field set, and verbs apply.
type Kind string

const (
	KindUser      Kind = "user"
	KindSubreddit Kind = "subreddit"
	KindPost      Kind = "post"
	KindComment   Kind = "comment"
	KindDomain    Kind = "domain"
)

// ThingData holds the common fields for reddit objects.
// It can be embedded into specific types like Post and Comment.
type ThingData struct {
	ID   string `json:"id"`   // ID (without prefix)
	Name string `json:"name"` // Fullname (e.g., "t3_abc123")
}

// GetID returns the object's ID.
func (td ThingData) GetID() string {
	return td.ID
}

// GetName returns the object's fullname.
func (td ThingData) GetName() string {
	return td.Name
}

// Thing is the envelope wrapping every object in the API: a kind tag plus a
// raw data payload decoded lazily by the projector.
type Thing struct {
	Kind string          `json:"kind"`
	Data json.RawMessage `json:"data"`
}

// Listing is the paged container returned by listing endpoints. After is the
// opaque continuation cursor; empty means no more pages.
type Listing struct {
	Children []*Thing `json:"children"`
	After    string   `json:"after"`
	Before   string   `json:"before"`
}

// Votable is an embeddable struct for things that can be voted on.
type Votable struct {
	Ups   int `json:"ups"`
	Downs int `json:"downs"`
	// Likes indicates the user's vote: true for upvote, false for downvote, null for no vote.
	Likes *bool `json:"likes"`
}

// Created is an embeddable struct for things that have a creation time.
type Created struct {
	Created    float64 `json:"created"`
	CreatedUTC float64 `json:"created_utc"`
}

// Post is a submitted link or self post. Its shape is exactly the "post"
// field set; construction goes through the projector.
type Post struct {
	ThingData
	Votable
	Created
	Author              string          `json:"author"`
	AuthorFlairCSSClass *string         `json:"author_flair_css_class"`
	AuthorFlairText     *string         `json:"author_flair_text"`
	Clicked             bool            `json:"clicked"`
	Domain              string          `json:"domain"`
	Hidden              bool            `json:"hidden"`
	IsSelf              bool            `json:"is_self"`
	Media               json.RawMessage `json:"media"`
	MediaEmbed          json.RawMessage `json:"media_embed"`
	NumComments         int             `json:"num_comments"`
	Over18              bool            `json:"over_18"`
	Permalink           string          `json:"permalink"`
	Saved               bool            `json:"saved"`
	Score               int             `json:"score"`
	SelfText            string          `json:"selftext"`
	Subreddit           string          `json:"subreddit"`
	SubredditID         string          `json:"subreddit_id"`
	Thumbnail           string          `json:"thumbnail"`
	Title               string          `json:"title"`
	URL                 string          `json:"url"`
}

// GetAuthor returns the submitting user's name.
func (p *Post) GetAuthor() string {
	return p.Author
}

// Values returns the record as a positional tuple in field-set order.
func (p *Post) Values() []any {
	return []any{
		p.Author, p.AuthorFlairCSSClass, p.AuthorFlairText, p.Clicked,
		p.Created.Created, p.CreatedUTC, p.Domain, p.Downs, p.Hidden, p.ID,
		p.IsSelf, p.Likes, p.Media, p.MediaEmbed, p.Name, p.NumComments,
		p.Over18, p.Permalink, p.Saved, p.Score, p.SelfText, p.Subreddit,
		p.SubredditID, p.Thumbnail, p.Title, p.Ups, p.URL,
	}
}

// Comment is a single comment. Its shape is exactly the "comment" field set;
// Replies is kept raw because reddit sends either a nested Listing or "".
type Comment struct {
	ThingData
	Votable
	Created
	Author              string          `json:"author"`
	AuthorFlairCSSClass *string         `json:"author_flair_css_class"`
	AuthorFlairText     *string         `json:"author_flair_text"`
	Body                string          `json:"body"`
	LinkID              string          `json:"link_id"`
	LinkTitle           string          `json:"link_title"`
	ParentID            string          `json:"parent_id"`
	Replies             json.RawMessage `json:"replies"`
	Subreddit           string          `json:"subreddit"`
	SubredditID         string          `json:"subreddit_id"`
}

// GetAuthor returns the commenting user's name.
func (c *Comment) GetAuthor() string {
	return c.Author
}

// Values returns the record as a positional tuple in field-set order.
func (c *Comment) Values() []any {
	return []any{
		c.Author, c.AuthorFlairCSSClass, c.AuthorFlairText, c.Body,
		c.Created.Created, c.CreatedUTC, c.Downs, c.ID, c.Likes, c.LinkID,
		c.LinkTitle, c.Name, c.ParentID, c.Replies, c.Subreddit,
		c.SubredditID, c.Ups,
	}
}

// Account contains the data returned by me.json and user about endpoints.
type Account struct {
	ThingData
	Created
	Modhash          string `json:"modhash,omitempty"`
	LinkKarma        int    `json:"link_karma"`
	CommentKarma     int    `json:"comment_karma"`
	HasMail          *bool  `json:"has_mail"`
	HasModMail       *bool  `json:"has_mod_mail"`
	HasVerifiedEmail *bool  `json:"has_verified_email"`
	IsFriend         bool   `json:"is_friend"`
	IsGold           bool   `json:"is_gold"`
	IsMod            bool   `json:"is_mod"`
	Over18           bool   `json:"over_18"`
}

// SubredditInfo contains the data returned by a subreddit's about endpoint.
type SubredditInfo struct {
	ThingData
	Created
	DisplayName       string `json:"display_name"`
	Title             string `json:"title"`
	Description       string `json:"description"`
	PublicDescription string `json:"public_description"`
	Subscribers       int64  `json:"subscribers"`
	AccountsActive    int    `json:"accounts_active"`
	Over18            bool   `json:"over18"`
	SubredditType     string `json:"subreddit_type"`
	URL               string `json:"url"`
}

// Trophy is one entry from a user's trophy case, scraped from the profile
// page. Description is empty when the trophy has none.
type Trophy struct {
	Name        string
	Description string
}

// Karma is a user's karma earned in a single subreddit, scraped from the
// profile page's karma breakdown.
type Karma struct {
	Link    int
	Comment int
}
