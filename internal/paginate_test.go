package internal

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	pkgerrs "github.com/snoolib/snoo/pkg/errors"
)

// listingServer serves canned listing pages keyed by the "after" cursor and
// counts how many page requests it saw.
type listingServer struct {
	pages map[string]string
	calls int
}

func (s *listingServer) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.calls++
		body, ok := s.pages[r.URL.Query().Get("after")]
		if !ok {
			http.Error(w, "unknown cursor", http.StatusNotFound)
			return
		}
		fmt.Fprint(w, body)
	}
}

func postChild(id string) string {
	return fmt.Sprintf(`{"kind":"t3","data":{"id":%q,"name":"t3_%s","title":"post %s","ups":1}}`, id, id, id)
}

func listingPage(after string, children ...string) string {
	return fmt.Sprintf(`{"kind":"Listing","data":{"children":[%s],"after":%s,"before":null}}`,
		strings.Join(children, ","), jsonString(after))
}

func jsonString(s string) string {
	if s == "" {
		return "null"
	}
	return fmt.Sprintf("%q", s)
}

func newTestPaginator(t *testing.T) *Paginator {
	t.Helper()
	return NewPaginator(newTestClient(t), NewProjector(nil))
}

func TestPostsFollowsCursor(t *testing.T) {
	server := &listingServer{pages: map[string]string{
		"":     listingPage("t3_c", postChild("a"), postChild("b"), postChild("c")),
		"t3_c": listingPage("t3_e", postChild("d"), postChild("e")),
		"t3_e": listingPage("", postChild("f")),
	}}
	ts := httptest.NewServer(server.handler())
	defer ts.Close()

	posts, err := newTestPaginator(t).Posts(context.Background(), ts.URL, 5)
	if err != nil {
		t.Fatalf("Posts() error = %v", err)
	}

	if len(posts) != 5 {
		t.Fatalf("got %d posts, want 5", len(posts))
	}
	for i, wantID := range []string{"a", "b", "c", "d", "e"} {
		if posts[i].ID != wantID {
			t.Errorf("posts[%d].ID = %q, want %q", i, posts[i].ID, wantID)
		}
	}
	if server.calls != 2 {
		t.Errorf("server saw %d page requests, want 2", server.calls)
	}
}

func TestPostsStopsMidPage(t *testing.T) {
	t.Parallel()

	server := &listingServer{pages: map[string]string{
		"": listingPage("t3_c", postChild("a"), postChild("b"), postChild("c")),
	}}
	ts := httptest.NewServer(server.handler())
	defer ts.Close()

	posts, err := newTestPaginator(t).Posts(context.Background(), ts.URL, 3)
	if err != nil {
		t.Fatalf("Posts() error = %v", err)
	}

	// The page advertises a further cursor, but count was reached.
	if len(posts) != 3 {
		t.Fatalf("got %d posts, want 3", len(posts))
	}
	if server.calls != 1 {
		t.Errorf("server saw %d page requests, want 1", server.calls)
	}
}

func TestPostsExhaustedCursor(t *testing.T) {
	t.Parallel()

	server := &listingServer{pages: map[string]string{
		"": listingPage("", postChild("a"), postChild("b")),
	}}
	ts := httptest.NewServer(server.handler())
	defer ts.Close()

	posts, err := newTestPaginator(t).Posts(context.Background(), ts.URL, 50)
	if err != nil {
		t.Fatalf("Posts() error = %v", err)
	}
	if len(posts) != 2 {
		t.Fatalf("got %d posts, want 2", len(posts))
	}
	if server.calls != 1 {
		t.Errorf("server saw %d page requests, want 1", server.calls)
	}
}

func TestPostsNonPositiveCount(t *testing.T) {
	t.Parallel()

	server := &listingServer{pages: map[string]string{}}
	ts := httptest.NewServer(server.handler())
	defer ts.Close()

	posts, err := newTestPaginator(t).Posts(context.Background(), ts.URL, 0)
	if err != nil {
		t.Fatalf("Posts() error = %v", err)
	}
	if len(posts) != 0 {
		t.Errorf("got %d posts, want 0", len(posts))
	}
	if server.calls != 0 {
		t.Errorf("server saw %d page requests, want 0", server.calls)
	}
}

func TestPostsLimitClamped(t *testing.T) {
	t.Parallel()

	var gotLimit string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotLimit = r.URL.Query().Get("limit")
		fmt.Fprint(w, listingPage("", postChild("a")))
	}))
	defer ts.Close()

	if _, err := newTestPaginator(t).Posts(context.Background(), ts.URL, 250); err != nil {
		t.Fatalf("Posts() error = %v", err)
	}
	if gotLimit != "100" {
		t.Errorf("limit = %q, want 100", gotLimit)
	}
}

func TestCommentsThreadShape(t *testing.T) {
	t.Parallel()

	comment := `{"kind":"t1","data":{"id":"c1","name":"t1_c1","body":"first","ups":3}}`
	body := fmt.Sprintf(`[%s,%s]`,
		listingPage("", postChild("x")),
		listingPage("", comment))
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, body)
	}))
	defer ts.Close()

	comments, err := newTestPaginator(t).Comments(context.Background(), ts.URL, 10, true)
	if err != nil {
		t.Fatalf("Comments() error = %v", err)
	}
	if len(comments) != 1 {
		t.Fatalf("got %d comments, want 1", len(comments))
	}
	if comments[0].Body != "first" {
		t.Errorf("Body = %q, want %q", comments[0].Body, "first")
	}
}

func TestCommentsThreadShapeMalformed(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"kind":"Listing","data":{"children":[]}}]`)
	}))
	defer ts.Close()

	_, err := newTestPaginator(t).Comments(context.Background(), ts.URL, 10, true)
	var schemaErr *pkgerrs.SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("Comments() error = %v, want SchemaError", err)
	}
}
