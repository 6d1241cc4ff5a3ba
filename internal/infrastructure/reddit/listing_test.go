package reddit

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"FilmRiddles/internal/config"
	"FilmRiddles/internal/domain"
)

const pageOne = `{"data":{"after":"t3_cursor","children":[
  {"data":{"permalink":"/r/testsub/comments/a1/","title":"First","author":"alice","score":10,"stickied":false,"over_18":false,"selftext":""}},
  {"data":{"permalink":"/r/testsub/comments/a2/","title":"Pinned","author":"bob","score":99,"stickied":true,"over_18":false,"selftext":""}}
]}}`

const pageTwo = `{"data":{"after":null,"children":[
  {"data":{"permalink":"/r/testsub/comments/b1/","title":"Flagged","author":"carol","score":5,"stickied":false,"over_18":true,"selftext":""}},
  {"data":{"permalink":"/r/testsub/comments/b2/","title":"Texty","author":"dan","score":7,"stickied":false,"over_18":false,"selftext":"a plot in the body"}},
  {"data":{"permalink":"/r/testsub/comments/b3/","title":"Second","author":"erin","score":3,"stickied":false,"over_18":false,"selftext":"   "}}
]}}`

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := config.SourceConfig{
		Subreddit: "testsub",
		BaseURL:   server.URL,
		PageSize:  2,
		MaxPages:  3,
		UserAgent: "filmriddles-test",
	}
	return NewClient(cfg, server.Client(), nil)
}

func TestBuildPoolPaginatesAndFilters(t *testing.T) {
	t.Parallel()

	var (
		mu    sync.Mutex
		paths []string
	)
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		paths = append(paths, r.URL.Path)
		mu.Unlock()
		if r.URL.Query().Get("after") == "" {
			_, _ = w.Write([]byte(pageOne))
			return
		}
		_, _ = w.Write([]byte(pageTwo))
	}))

	pool, err := client.BuildPool(context.Background(), domain.SortAll)
	if err != nil {
		t.Fatalf("BuildPool error: %v", err)
	}

	if len(pool) != 2 {
		t.Fatalf("expected 2 eligible posts, got %d: %+v", len(pool), pool)
	}
	if pool[0].Title != "First" || pool[1].Title != "Second" {
		t.Fatalf("unexpected concatenation order: %+v", pool)
	}
	if pool[0].Validated || pool[1].Validated {
		t.Fatal("fresh candidates must start unvalidated")
	}
	if pool[0].Author != "alice" || pool[0].Score != 10 {
		t.Fatalf("unexpected projection: %+v", pool[0])
	}

	mu.Lock()
	defer mu.Unlock()
	if len(paths) != 2 {
		t.Fatalf("expected 2 page fetches, got %d (%v)", len(paths), paths)
	}
	if paths[0] != "/r/testsub/top.json" {
		t.Fatalf("unexpected listing path: %s", paths[0])
	}
}

func TestBuildPoolSortParameters(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, http.NotFoundHandler())

	topURL, err := client.buildListingURL(domain.SortMonth, "t3_x")
	if err != nil {
		t.Fatalf("buildListingURL error: %v", err)
	}
	if want := "/r/testsub/top.json"; !strings.Contains(topURL, want) {
		t.Fatalf("expected %s in %s", want, topURL)
	}
	if !strings.Contains(topURL, "t=month") || !strings.Contains(topURL, "after=t3_x") || !strings.Contains(topURL, "limit=2") {
		t.Fatalf("missing query parameters: %s", topURL)
	}

	newURL, err := client.buildListingURL(domain.SortNew, "")
	if err != nil {
		t.Fatalf("buildListingURL error: %v", err)
	}
	if !strings.Contains(newURL, "/r/testsub/new.json") {
		t.Fatalf("expected new.json endpoint: %s", newURL)
	}
	if strings.Contains(newURL, "?t=") || strings.Contains(newURL, "&t=") {
		t.Fatalf("new sort must not carry a time window: %s", newURL)
	}
}

func TestBuildPoolFirstPageFailure(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))

	if _, err := client.BuildPool(context.Background(), domain.SortAll); err == nil {
		t.Fatal("expected error when the first page fails")
	}
}

func TestBuildPoolLaterFailureTruncates(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("after") != "" {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(pageOne))
	}))

	pool, err := client.BuildPool(context.Background(), domain.SortYear)
	if err != nil {
		t.Fatalf("later-page failure must truncate, not error: %v", err)
	}
	if len(pool) != 1 || pool[0].Title != "First" {
		t.Fatalf("expected truncated single-page pool, got %+v", pool)
	}
}
