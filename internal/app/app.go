package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"FilmRiddles/internal/config"
	"FilmRiddles/internal/domain"
	"FilmRiddles/internal/infrastructure/console"
	"FilmRiddles/internal/infrastructure/reddit"
	"FilmRiddles/internal/infrastructure/startpage"
	"FilmRiddles/internal/logging"
	"FilmRiddles/internal/poster"
	"FilmRiddles/internal/ports"
	"FilmRiddles/internal/usecase"
)

// Application wires config to the supply session and the presenter.
type Application struct {
	cfg       config.Config
	session   *usecase.Session
	presenter ports.Presenter
	logger    *slog.Logger
}

// New builds a runnable application instance.
func New(cfg config.Config, baseLogger *slog.Logger) *Application {
	if baseLogger == nil {
		baseLogger = logging.New(os.Stderr, cfg.Logging.Level)
	}

	source := reddit.NewClient(cfg.Source, nil, baseLogger.With("component", "reddit"))

	registry := poster.NewRegistry()
	registry.Register(startpage.NewFinder(cfg.Poster, nil, baseLogger.With("component", "poster.startpage")))

	finder, err := registry.Resolve(cfg.Poster.Provider)
	if err != nil {
		baseLogger.Warn("poster provider unavailable, riddles ship without images", "error", err)
	}

	session := usecase.NewSession(usecase.SessionDeps{
		Source:    source,
		Validator: source,
		Finder:    finder,
		Logger:    baseLogger.With("component", "session"),
	})

	return &Application{
		cfg:       cfg,
		session:   session,
		presenter: console.NewPresenter(os.Stdout),
		logger:    baseLogger,
	}
}

// Run loads the pool for the configured sort mode and shows the requested
// number of riddles. Poster enrichment runs detached per riddle; Run only
// waits for outstanding enrichments after the last riddle is already shown.
func (a *Application) Run(ctx context.Context) error {
	if a.session == nil {
		return nil
	}

	sort, err := domain.ParseSortMode(a.cfg.Display.Sort)
	if err != nil {
		return err
	}

	if err := a.session.LoadPool(ctx, sort); err != nil {
		return fmt.Errorf("load pool: %w", err)
	}

	count := a.cfg.Display.Count
	if count < 1 {
		count = 1
	}
	if count > 1 {
		buffered, err := a.session.Prefetch(ctx, count-1)
		if err == nil {
			a.logger.Debug("prefetched riddles", "buffered", buffered)
		}
	}

	var enrichments sync.WaitGroup
	defer enrichments.Wait()

	for i := 0; i < count; i++ {
		riddle, err := a.session.NextRiddle(ctx)
		if errors.Is(err, usecase.ErrExhausted) {
			a.presenter.ShowExhausted()
			return nil
		}
		if err != nil {
			return fmt.Errorf("next riddle: %w", err)
		}

		a.presenter.ShowRiddle(*riddle)

		updates := a.session.EnrichPoster(ctx, riddle)
		enrichments.Add(1)
		go func(answer string) {
			defer enrichments.Done()
			if update, ok := <-updates; ok && update.Found {
				a.presenter.ShowPoster(answer, update.URL)
			}
		}(riddle.Answer)
	}

	return nil
}
