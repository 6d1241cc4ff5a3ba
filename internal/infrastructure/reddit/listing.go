package reddit

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"FilmRiddles/internal/domain"
)

type listingEnvelope struct {
	Data struct {
		After    string `json:"after"`
		Children []struct {
			Data listingItem `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

type listingItem struct {
	Permalink string `json:"permalink"`
	Title     string `json:"title"`
	Author    string `json:"author"`
	Score     int    `json:"score"`
	Stickied  bool   `json:"stickied"`
	Over18    bool   `json:"over_18"`
	Selftext  string `json:"selftext"`
}

// BuildPool paginates the listing endpoint and returns eligible candidates in
// page-concatenation order. A failed first page is an error; later failures
// truncate the pool. Shuffling is the caller's responsibility.
func (c *Client) BuildPool(ctx context.Context, sort domain.SortMode) ([]domain.CandidatePost, error) {
	pool := make([]domain.CandidatePost, 0, c.pageSize)
	after := ""

	for page := 0; page < c.maxPages; page++ {
		pageURL, err := c.buildListingURL(sort, after)
		if err != nil {
			return nil, err
		}

		var envelope listingEnvelope
		if err := c.fetchJSON(ctx, pageURL, &envelope); err != nil {
			if page == 0 {
				return nil, fmt.Errorf("first listing page: %w", err)
			}
			c.warn("listing page failed, truncating pool", "page", page, "error", err)
			break
		}

		children := envelope.Data.Children
		if len(children) == 0 {
			break
		}

		for _, child := range children {
			if !eligible(child.Data) {
				continue
			}
			pool = append(pool, domain.CandidatePost{
				Permalink: child.Data.Permalink,
				Title:     child.Data.Title,
				Author:    child.Data.Author,
				Score:     child.Data.Score,
			})
		}

		after = envelope.Data.After
		if after == "" {
			break
		}
	}

	c.debug("pool built", "sort", string(sort), "candidates", len(pool))
	return pool, nil
}

// eligible keeps link/title-only posts: riddles live in the title, so pinned,
// not-safe and selftext posts are all excluded.
func eligible(item listingItem) bool {
	return !item.Stickied && !item.Over18 && strings.TrimSpace(item.Selftext) == ""
}

func (c *Client) buildListingURL(sort domain.SortMode, after string) (string, error) {
	endpoint := "top.json"
	if sort == domain.SortNew {
		endpoint = "new.json"
	}

	base := fmt.Sprintf("%s/r/%s/%s", strings.TrimSuffix(c.baseURL, "/"), c.subreddit, endpoint)
	parsed, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid listing url %s: %w", base, err)
	}

	query := parsed.Query()
	if sort != domain.SortNew {
		query.Set("t", string(sort))
	}
	query.Set("limit", strconv.Itoa(c.pageSize))
	if after != "" {
		query.Set("after", after)
	}
	parsed.RawQuery = query.Encode()
	return parsed.String(), nil
}
