package reddit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"FilmRiddles/internal/domain"
)

const deletedBody = "[deleted]"

type commentListing struct {
	Data struct {
		Children []commentNode `json:"children"`
	} `json:"data"`
}

type commentNode struct {
	Data struct {
		Author  string    `json:"author"`
		Body    string    `json:"body"`
		Replies replyTree `json:"replies"`
	} `json:"data"`
}

// replyTree tolerates reddit's replies field being "" when a comment has no
// replies and a nested listing object otherwise.
type replyTree struct {
	Children []commentNode
}

func (r *replyTree) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil
	}

	var wrapper commentListing
	if err := json.Unmarshal(trimmed, &wrapper); err != nil {
		return err
	}
	r.Children = wrapper.Data.Children
	return nil
}

// Validate fetches the post's comment tree and scans top-level comments in
// thread order. The first comment whose direct replies include a reply from
// the post author containing "solved" (case-insensitive) wins; its body,
// cleaned, becomes the answer. A nil riddle with nil error is the normal
// negative outcome.
func (c *Client) Validate(ctx context.Context, post *domain.CandidatePost) (*domain.ValidatedRiddle, error) {
	target := strings.TrimSuffix(c.baseURL, "/") + post.Permalink + ".json"

	var thread []json.RawMessage
	if err := c.fetchJSON(ctx, target, &thread); err != nil {
		return nil, fmt.Errorf("thread %s: %w", post.Permalink, err)
	}
	if len(thread) < 2 {
		return nil, fmt.Errorf("thread %s: unexpected shape", post.Permalink)
	}

	var comments commentListing
	if err := json.Unmarshal(thread[1], &comments); err != nil {
		return nil, fmt.Errorf("thread %s: decode comments: %w", post.Permalink, err)
	}

	for _, comment := range comments.Data.Children {
		body := comment.Data.Body
		if body == "" || body == deletedBody {
			continue
		}
		if !confirmedByAuthor(comment, post.Author) {
			continue
		}

		// an all-punctuation guess cleans to nothing; keep scanning
		answer := domain.CleanAnswer(body)
		if answer == "" {
			continue
		}

		post.Validated = true
		return &domain.ValidatedRiddle{
			Title:  post.Title,
			Answer: answer,
			Score:  post.Score,
		}, nil
	}

	return nil, nil
}

// confirmedByAuthor reports whether any direct reply comes from the post
// author and contains "solved" case-insensitively.
func confirmedByAuthor(comment commentNode, author string) bool {
	for _, reply := range comment.Data.Replies.Children {
		if reply.Data.Author != author {
			continue
		}
		if strings.Contains(strings.ToLower(reply.Data.Body), "solved") {
			return true
		}
	}
	return false
}
