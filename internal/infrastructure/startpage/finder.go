package startpage

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"FilmRiddles/internal/config"
	"FilmRiddles/internal/ports"
	"FilmRiddles/internal/relay"
)

const proxyImagePrefix = "/av/proxy-image?piurl="

// Finder scrapes startpage image results for a representative poster. All
// failures resolve to "not found"; nothing here is user-visible.
type Finder struct {
	client         *http.Client
	searchURL      string
	relayURL       string
	keyword        string
	maxDecoyHeight int
	blocklist      []string
	logger         *slog.Logger
}

var _ ports.PosterFinder = (*Finder)(nil)

// NewFinder wires an HTTP client; the decoy height threshold defaults to the
// 50px filter-chip size.
func NewFinder(cfg config.PosterConfig, client *http.Client, logger *slog.Logger) *Finder {
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}

	maxDecoyHeight := cfg.MaxDecoyHeight
	if maxDecoyHeight <= 0 {
		maxDecoyHeight = 50
	}

	return &Finder{
		client:         client,
		searchURL:      cfg.SearchURL,
		relayURL:       cfg.RelayURL,
		keyword:        cfg.Keyword,
		maxDecoyHeight: maxDecoyHeight,
		blocklist:      cfg.PathBlocklist,
		logger:         logger,
	}
}

// Name identifies the provider inside the poster registry.
func (f *Finder) Name() string {
	return "startpage"
}

// FindPoster queries the image-search page through the relay and returns the
// first result surviving the size and blocklist filters.
func (f *Finder) FindPoster(ctx context.Context, title string) (string, bool) {
	target, err := f.buildSearchURL(title)
	if err != nil {
		f.debug("bad search url", "title", title, "error", err)
		return "", false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, relay.Wrap(f.relayURL, target), nil)
	if err != nil {
		f.debug("build request", "error", err)
		return "", false
	}

	resp, err := f.client.Do(req)
	if err != nil {
		f.debug("poster search failed", "title", title, "error", err)
		return "", false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		f.debug("poster search status", "title", title, "status", resp.Status)
		return "", false
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		f.debug("parse search page", "error", err)
		return "", false
	}

	return f.extract(doc)
}

func (f *Finder) buildSearchURL(title string) (string, error) {
	parsed, err := url.Parse(f.searchURL)
	if err != nil {
		return "", err
	}

	query := parsed.Query()
	query.Set("query", strings.TrimSpace(title+" "+f.keyword))
	query.Set("cat", "images")
	query.Set("language", "english")
	query.Set("lui", "english")
	parsed.RawQuery = query.Encode()
	return parsed.String(), nil
}

// extract walks proxied-image tags in document order and returns the first
// candidate that is neither a small filter-chip thumbnail nor a blocklisted
// non-content image.
func (f *Finder) extract(doc *goquery.Document) (string, bool) {
	var (
		found  string
		haveIt bool
	)

	doc.Find("img[src^=\"" + proxyImagePrefix + "\"]").EachWithBreak(func(_ int, img *goquery.Selection) bool {
		if height, ok := pixelHeight(img); ok && height <= f.maxDecoyHeight {
			return true
		}

		src, _ := img.Attr("src")
		decoded, ok := decodeProxiedURL(src)
		if !ok {
			return true
		}

		for _, marker := range f.blocklist {
			if strings.Contains(decoded, marker) {
				return true
			}
		}

		found = decoded
		haveIt = true
		return false
	})

	return found, haveIt
}

func pixelHeight(img *goquery.Selection) (int, bool) {
	raw, ok := img.Attr("height")
	if !ok {
		return 0, false
	}

	height, err := strconv.Atoi(strings.TrimSuffix(strings.TrimSpace(raw), "px"))
	if err != nil {
		return 0, false
	}
	return height, true
}

// decodeProxiedURL recovers the real image URL from a proxy-wrapped src: the
// piurl parameter value up to the next delimiter, percent-decoded.
func decodeProxiedURL(src string) (string, bool) {
	idx := strings.Index(src, "piurl=")
	if idx < 0 {
		return "", false
	}

	raw := src[idx+len("piurl="):]
	if amp := strings.IndexByte(raw, '&'); amp >= 0 {
		raw = raw[:amp]
	}

	decoded, err := url.QueryUnescape(raw)
	if err != nil || decoded == "" {
		return "", false
	}
	return decoded, true
}

func (f *Finder) debug(msg string, args ...any) {
	if f.logger != nil {
		f.logger.Debug(msg, args...)
	}
}
