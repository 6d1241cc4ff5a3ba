package startpage

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"FilmRiddles/internal/config"
)

const searchResultsPage = `<html><body>
  <img src="/favicon.png" height="16px">
  <img src="/av/proxy-image?piurl=https%3A%2F%2Fcdn.example.com%2Fchips%2Ftiny.jpg&amp;rid=1" height="40px">
  <img src="/av/proxy-image?piurl=https%3A%2F%2Fcdn.example.com%2Fposters%2Fthumbnail%2Fbig.jpg&amp;rid=2" height="300px">
  <img src="/av/proxy-image?piurl=https%3A%2F%2Fcdn.example.com%2Fposters%2Fclean.jpg&amp;rid=3" height="300px">
  <img src="/av/proxy-image?piurl=https%3A%2F%2Fcdn.example.com%2Fposters%2Fsecond.jpg&amp;rid=4">
</body></html>`

func testConfig(searchURL string) config.PosterConfig {
	return config.PosterConfig{
		Provider:       "startpage",
		SearchURL:      searchURL,
		Keyword:        "MOVIE POSTER",
		MaxDecoyHeight: 50,
		PathBlocklist:  []string{"thumbnail", "logo", "icon"},
	}
}

func TestExtractSkipsDecoys(t *testing.T) {
	t.Parallel()

	finder := NewFinder(testConfig("https://example.invalid/sp/search"), nil, nil)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(searchResultsPage))
	if err != nil {
		t.Fatalf("new document: %v", err)
	}

	url, ok := finder.extract(doc)
	if !ok {
		t.Fatal("expected a surviving candidate")
	}
	if url != "https://cdn.example.com/posters/clean.jpg" {
		t.Fatalf("unexpected candidate: %s", url)
	}
}

func TestExtractNoSurvivors(t *testing.T) {
	t.Parallel()

	finder := NewFinder(testConfig("https://example.invalid/sp/search"), nil, nil)

	page := `<html><body>
	  <img src="/av/proxy-image?piurl=https%3A%2F%2Fcdn.example.com%2Flogo%2Fbrand.jpg" height="200px">
	  <img src="/av/proxy-image?piurl=https%3A%2F%2Fcdn.example.com%2Fbig.jpg" height="44px">
	</body></html>`

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		t.Fatalf("new document: %v", err)
	}

	if url, ok := finder.extract(doc); ok {
		t.Fatalf("expected no candidate, got %s", url)
	}
}

func TestFindPoster(t *testing.T) {
	t.Parallel()

	var query string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query().Get("query")
		_, _ = w.Write([]byte(searchResultsPage))
	}))
	defer server.Close()

	finder := NewFinder(testConfig(server.URL+"/sp/search"), server.Client(), nil)

	url, ok := finder.FindPoster(context.Background(), "Inception")
	if !ok {
		t.Fatal("expected a poster URL")
	}
	if url != "https://cdn.example.com/posters/clean.jpg" {
		t.Fatalf("unexpected poster: %s", url)
	}
	if query != "Inception MOVIE POSTER" {
		t.Fatalf("unexpected search query: %q", query)
	}
}

func TestFindPosterSoftFailures(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	finder := NewFinder(testConfig(server.URL+"/sp/search"), server.Client(), nil)

	if url, ok := finder.FindPoster(context.Background(), "Inception"); ok {
		t.Fatalf("bad status must resolve to not-found, got %s", url)
	}
}

func TestDecodeProxiedURL(t *testing.T) {
	t.Parallel()

	decoded, ok := decodeProxiedURL("/av/proxy-image?piurl=https%3A%2F%2Fa.example%2Fp.jpg&rid=9")
	if !ok || decoded != "https://a.example/p.jpg" {
		t.Fatalf("unexpected decode: %q (%v)", decoded, ok)
	}

	if _, ok := decodeProxiedURL("/images/direct.jpg"); ok {
		t.Fatal("src without a piurl parameter must not decode")
	}
}
