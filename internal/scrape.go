package internal

import (
	"bytes"
	"context"
	"strconv"
	"strings"

	"github.com/yhat/scrape"
	"golang.org/x/net/html"

	pkgerrs "github.com/snoolib/snoo/pkg/errors"
	"github.com/snoolib/snoo/pkg/types"
)

// Scraper extracts trophy and karma data from a user's profile page. Trophies
// and per-subreddit karma are not exposed through the JSON API, so this is a
// best-effort HTML adapter, kept out of the JSON request path entirely.
type Scraper struct {
	exec *Client
}

// NewScraper returns a scraper over the given executor.
func NewScraper(exec *Client) *Scraper {
	return &Scraper{exec: exec}
}

// Trophies scrapes the trophy case from the profile page at pageURL.
func (s *Scraper) Trophies(ctx context.Context, pageURL string) ([]types.Trophy, error) {
	root, err := s.fetch(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	nameNodes := scrape.FindAll(root, byClass("trophy-name"))
	if len(nameNodes) == 0 {
		return nil, &pkgerrs.ScrapeError{URL: pageURL, Reason: "no trophy markup found"}
	}

	trophies := make([]types.Trophy, 0, len(nameNodes))
	for _, node := range nameNodes {
		trophy := types.Trophy{Name: strings.TrimSpace(scrape.Text(node))}
		// The description, when present, sits in a sibling cell of the
		// same trophy row.
		if row := enclosingRow(node); row != nil {
			if desc, ok := scrape.Find(row, byClass("trophy-description")); ok {
				trophy.Description = strings.TrimSpace(scrape.Text(desc))
			}
		}
		trophies = append(trophies, trophy)
	}
	return trophies, nil
}

// KarmaBreakdown scrapes the per-subreddit karma table from the profile page
// at pageURL. Keys are subreddit names.
func (s *Scraper) KarmaBreakdown(ctx context.Context, pageURL string) (map[string]types.Karma, error) {
	root, err := s.fetch(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	table, ok := scrape.Find(root, byClass("karma-breakdown"))
	if !ok {
		return nil, &pkgerrs.ScrapeError{URL: pageURL, Reason: "no karma breakdown table found"}
	}

	breakdown := map[string]types.Karma{}
	for _, row := range scrape.FindAll(table, byTag("tr")) {
		var cells []string
		for cell := row.FirstChild; cell != nil; cell = cell.NextSibling {
			if cell.Data == "th" || cell.Data == "td" {
				cells = append(cells, strings.TrimSpace(scrape.Text(cell)))
			}
		}
		if len(cells) < 3 {
			continue // header or spacer row
		}
		link, errLink := strconv.Atoi(cells[1])
		comment, errComment := strconv.Atoi(cells[2])
		if errLink != nil || errComment != nil {
			continue
		}
		breakdown[cells[0]] = types.Karma{Link: link, Comment: comment}
	}

	if len(breakdown) == 0 {
		return nil, &pkgerrs.ScrapeError{URL: pageURL, Reason: "karma breakdown table has no readable rows"}
	}
	return breakdown, nil
}

func (s *Scraper) fetch(ctx context.Context, pageURL string) (*html.Node, error) {
	body, err := s.exec.ExecuteRaw(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	root, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, &pkgerrs.ScrapeError{URL: pageURL, Reason: "unparseable HTML: " + err.Error()}
	}
	return root, nil
}

func byClass(class string) scrape.Matcher {
	return func(n *html.Node) bool {
		for _, field := range strings.Fields(scrape.Attr(n, "class")) {
			if field == class {
				return true
			}
		}
		return false
	}
}

func byTag(tag string) scrape.Matcher {
	return func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == tag
	}
}

func enclosingRow(n *html.Node) *html.Node {
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Data == "tr" {
			return p
		}
	}
	return n.Parent
}
