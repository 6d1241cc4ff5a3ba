package poster

import (
	"fmt"

	"FilmRiddles/internal/ports"
)

// Registry keeps a mapping from provider names to poster finders, so the
// scraping backend can be swapped via configuration.
type Registry struct {
	finders map[string]ports.PosterFinder
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{finders: map[string]ports.PosterFinder{}}
}

// Register adds or replaces a finder implementation.
func (r *Registry) Register(finder ports.PosterFinder) {
	if r.finders == nil {
		r.finders = map[string]ports.PosterFinder{}
	}
	r.finders[finder.Name()] = finder
}

// Resolve returns a finder by name or an error if it is absent.
func (r *Registry) Resolve(name string) (ports.PosterFinder, error) {
	if finder, ok := r.finders[name]; ok {
		return finder, nil
	}
	return nil, fmt.Errorf("poster provider %s is not registered", name)
}
