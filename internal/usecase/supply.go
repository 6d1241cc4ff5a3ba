package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"sync/atomic"

	"FilmRiddles/internal/domain"
	"FilmRiddles/internal/ports"
	"FilmRiddles/pkg/shuffle"
)

var (
	// ErrNoPosts reports a pool build that produced zero eligible candidates.
	ErrNoPosts = errors.New("no eligible posts found")
	// ErrExhausted reports that pool and buffer ran dry with no confirmed riddle.
	ErrExhausted = errors.New("no more valid riddles found in pool")
	// ErrBusy reports a supply trigger dropped because one is already in flight.
	ErrBusy = errors.New("riddle supply already in flight")
)

// SessionDeps wires the driven adapters into the supply controller.
type SessionDeps struct {
	Source    ports.PostSource
	Validator ports.ThreadValidator
	Finder    ports.PosterFinder
	Rand      *rand.Rand
	Logger    *slog.Logger
}

// Session owns the working state of one riddle-browsing session: the shuffled
// candidate pool, the buffer of pre-validated riddles, and the active sort
// mode. All state lives here, not in package globals.
type Session struct {
	source    ports.PostSource
	validator ports.ThreadValidator
	finder    ports.PosterFinder
	rng       *rand.Rand
	logger    *slog.Logger

	mu     sync.Mutex
	pool   []domain.CandidatePost
	buffer []*domain.ValidatedRiddle
	sort   domain.SortMode

	inFlight atomic.Bool
}

// NewSession constructs an empty session (no pool, no sort).
func NewSession(deps SessionDeps) *Session {
	return &Session{
		source:    deps.Source,
		validator: deps.Validator,
		finder:    deps.Finder,
		rng:       deps.Rand,
		logger:    deps.Logger,
	}
}

// LoadPool builds and shuffles a fresh pool when the sort mode changed or the
// current pool is empty; otherwise it keeps the session as is. A zero-post
// build fails with ErrNoPosts. Switching sorts discards buffered riddles.
func (s *Session) LoadPool(ctx context.Context, sort domain.SortMode) error {
	if s.source == nil {
		return fmt.Errorf("post source is not configured")
	}

	s.mu.Lock()
	fresh := sort != s.sort || len(s.pool) == 0
	s.mu.Unlock()
	if !fresh {
		return nil
	}

	pool, err := s.source.BuildPool(ctx, sort)
	if err != nil {
		return fmt.Errorf("build pool: %w", err)
	}
	if len(pool) == 0 {
		return ErrNoPosts
	}

	shuffle.Shuffle(s.rng, pool)

	s.mu.Lock()
	s.pool = pool
	s.buffer = nil
	s.sort = sort
	s.mu.Unlock()

	s.debug("pool loaded", "sort", string(sort), "candidates", len(pool))
	return nil
}

type supplyState int

const (
	stateBuffered supplyState = iota
	statePoolOnly
	stateExhausted
)

// NextRiddle produces the next riddle: buffered riddles drain first (FIFO, no
// network), then pool candidates are popped front-to-back and validated until
// one succeeds. An empty pool and buffer yields ErrExhausted. While one call
// is outstanding, further calls return ErrBusy without consuming anything.
func (s *Session) NextRiddle(ctx context.Context) (*domain.ValidatedRiddle, error) {
	if !s.inFlight.CompareAndSwap(false, true) {
		return nil, ErrBusy
	}
	defer s.inFlight.Store(false)

	state := stateBuffered
	for {
		switch state {
		case stateBuffered:
			if riddle, ok := s.popBuffered(); ok {
				return riddle, nil
			}
			state = statePoolOnly

		case statePoolOnly:
			post, ok := s.popCandidate()
			if !ok {
				state = stateExhausted
				continue
			}
			if post.Validated {
				// consumed entries are never reinserted, so this only
				// guards against reentry
				continue
			}

			riddle, err := s.validate(ctx, &post)
			if err != nil {
				s.debug("validation failed", "permalink", post.Permalink, "error", err)
				continue
			}
			if riddle == nil {
				s.debug("no confirmed answer", "permalink", post.Permalink)
				continue
			}
			return riddle, nil

		case stateExhausted:
			return nil, ErrExhausted
		}
	}
}

// Prefetch validates up to n riddles from the pool front into the buffer so
// later NextRiddle calls return without a network hop. Best effort: it stops
// quietly when the pool runs dry and reports how many riddles were buffered.
func (s *Session) Prefetch(ctx context.Context, n int) (int, error) {
	if !s.inFlight.CompareAndSwap(false, true) {
		return 0, ErrBusy
	}
	defer s.inFlight.Store(false)

	buffered := 0
	for buffered < n {
		post, ok := s.popCandidate()
		if !ok {
			break
		}
		if post.Validated {
			continue
		}

		riddle, err := s.validate(ctx, &post)
		if err != nil {
			s.debug("validation failed", "permalink", post.Permalink, "error", err)
			continue
		}
		if riddle == nil {
			continue
		}

		s.mu.Lock()
		s.buffer = append(s.buffer, riddle)
		s.mu.Unlock()
		buffered++
	}

	return buffered, nil
}

func (s *Session) validate(ctx context.Context, post *domain.CandidatePost) (*domain.ValidatedRiddle, error) {
	if s.validator == nil {
		return nil, fmt.Errorf("thread validator is not configured")
	}
	return s.validator.Validate(ctx, post)
}

func (s *Session) popBuffered() (*domain.ValidatedRiddle, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.buffer) == 0 {
		return nil, false
	}
	riddle := s.buffer[0]
	s.buffer = s.buffer[1:]
	return riddle, true
}

func (s *Session) popCandidate() (domain.CandidatePost, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.pool) == 0 {
		return domain.CandidatePost{}, false
	}
	post := s.pool[0]
	s.pool = s.pool[1:]
	return post, true
}

func (s *Session) debug(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}
