package ports

import (
	"context"

	"FilmRiddles/internal/domain"
)

// PostSource builds the candidate pool for a sort mode.
type PostSource interface {
	BuildPool(ctx context.Context, sort domain.SortMode) ([]domain.CandidatePost, error)
}

// ThreadValidator promotes one candidate into a confirmed riddle by scanning
// its comment thread. A nil riddle with a nil error is the normal negative
// outcome; a non-nil error carries transport/shape diagnostics and is treated
// by callers exactly like a negative.
type ThreadValidator interface {
	Validate(ctx context.Context, post *domain.CandidatePost) (*domain.ValidatedRiddle, error)
}

// PosterFinder locates one representative image URL for an answer title.
// Failures resolve to "not found", never to an error.
type PosterFinder interface {
	Name() string
	FindPoster(ctx context.Context, title string) (string, bool)
}

// Presenter renders riddles and poster updates to the display layer.
type Presenter interface {
	ShowRiddle(riddle domain.ValidatedRiddle)
	ShowPoster(answer, url string)
	ShowExhausted()
}
