package types

// FieldSets maps a record kind to the ordered list of JSON fields projected
// into its record type. Order is significant: Values() on the record returns
// the positional tuple in exactly this order. The table is injected
// configuration; DefaultFieldSets covers the fields reddit has kept stable.
type FieldSets map[Kind][]string

// DefaultFieldSets returns the field lists for posts and comments.
// body_html and selftext_html are deliberately left out.
func DefaultFieldSets() FieldSets {
	return FieldSets{
		KindPost: {
			"author", "author_flair_css_class", "author_flair_text",
			"clicked", "created", "created_utc", "domain", "downs", "hidden",
			"id", "is_self", "likes", "media", "media_embed", "name",
			"num_comments", "over_18", "permalink", "saved", "score",
			"selftext", "subreddit", "subreddit_id", "thumbnail", "title",
			"ups", "url",
		},
		KindComment: {
			"author", "author_flair_css_class", "author_flair_text", "body",
			"created", "created_utc", "downs", "id", "likes", "link_id",
			"link_title", "name", "parent_id", "replies", "subreddit",
			"subreddit_id", "ups",
		},
	}
}
