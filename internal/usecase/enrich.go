package usecase

import (
	"context"

	"FilmRiddles/internal/domain"
)

// PosterUpdate is the completion report of a detached enrichment run.
type PosterUpdate struct {
	URL   string
	Found bool
}

// EnrichPoster resolves a poster image for the riddle in a background task and
// delivers the outcome on the returned channel (buffered, closed after one
// send). Enrichment starts at most once per riddle: PosterLoaded flips true
// when the task is spawned, and later calls replay the cached result without
// refetching. The display path is never blocked and never sees an error.
func (s *Session) EnrichPoster(ctx context.Context, riddle *domain.ValidatedRiddle) <-chan PosterUpdate {
	updates := make(chan PosterUpdate, 1)

	s.mu.Lock()
	if riddle.PosterLoaded {
		cached := PosterUpdate{URL: riddle.PosterURL, Found: riddle.PosterURL != ""}
		s.mu.Unlock()
		updates <- cached
		close(updates)
		return updates
	}
	riddle.PosterLoaded = true
	s.mu.Unlock()

	go func() {
		defer close(updates)

		var (
			url   string
			found bool
		)
		if s.finder != nil {
			url, found = s.finder.FindPoster(ctx, riddle.Answer)
		}
		if !found {
			url = ""
		}

		s.mu.Lock()
		riddle.PosterURL = url
		s.mu.Unlock()

		updates <- PosterUpdate{URL: url, Found: found}
	}()

	return updates
}
