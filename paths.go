package snoo

import (
	"fmt"
	"strings"
)

// Paths maps a symbolic action or resource name to an absolute URL template.
// A template contains at most one %s slot, filled with a resource identifier
// (username, subreddit name, fullname). The table is injected configuration;
// the request engine never embeds paths of its own.
type Paths map[string]string

// Resolve returns the URL for name with arg substituted into the template's
// slot, if it has one.
func (p Paths) Resolve(name, arg string) string {
	template := p[name]
	if strings.Contains(template, "%s") {
		return fmt.Sprintf(template, arg)
	}
	return template
}

// DefaultPaths returns the standard path table rooted at base. An empty base
// selects DefaultBaseURL.
func DefaultPaths(base string) Paths {
	if base == "" {
		base = DefaultBaseURL
	}
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}

	relative := map[string]string{
		"comment":            "api/comment",
		"compose":            "api/compose",
		"delete":             "api/del",
		"disliked":           "user/%s/disliked.json",
		"domain_posts":       "domain/%s.json",
		"friend":             "api/friend",
		"hidden":             "user/%s/hidden.json",
		"hide":               "api/hide",
		"liked":              "user/%s/liked.json",
		"login":              "api/login/%s",
		"mark":               "api/marknsfw",
		"me":                 "api/me.json",
		"post_comments":      "comments/%s.json",
		"reddit":             ".json",
		"save":               "api/save",
		"saved":              "saved.json",
		"submit":             "api/submit",
		"subreddit_about":    "r/%s/about.json",
		"subreddit_comments": "r/%s/comments.json",
		"subreddit_posts":    "r/%s.json",
		"subscribe":          "api/subscribe",
		"unfriend":           "api/unfriend",
		"unhide":             "api/unhide",
		"unmark":             "api/unmarknsfw",
		"unsave":             "api/unsave",
		"user":               "user/%s",
		"user_about":         "user/%s/about.json",
		"user_comments":      "user/%s/comments.json",
		"user_posts":         "user/%s/submitted.json",
		"vote":               "api/vote",
	}

	paths := make(Paths, len(relative))
	for name, path := range relative {
		paths[name] = base + path
	}
	return paths
}
