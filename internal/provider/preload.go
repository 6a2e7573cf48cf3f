package provider

import (
	"context"
	"net/http"
	"time"

	"github.com/FocuswithJustin/CedarVerse/core/errors"
	"github.com/FocuswithJustin/CedarVerse/core/text"
	"github.com/FocuswithJustin/CedarVerse/internal/cachestore"
	"github.com/FocuswithJustin/CedarVerse/internal/config"
	"github.com/FocuswithJustin/CedarVerse/internal/logging"
)

// Loader owns the providers for one preload run.
type Loader struct {
	store   *cachestore.Store
	bundled *Bundled
	api     *API
}

// NewLoader builds a Loader with an HTTP client honoring cfg.HTTPTimeout.
func NewLoader(cfg config.Config, store *cachestore.Store) *Loader {
	client := defaultClient()
	if cfg.HTTPTimeout > 0 {
		client = &http.Client{Timeout: cfg.HTTPTimeout}
	}
	return &Loader{
		store:   store,
		bundled: &Bundled{Store: store, Client: client},
		api:     NewAPI(client),
	}
}

// API exposes the API provider, letting tests point service endpoints at
// local servers.
func (l *Loader) API() *API {
	return l.api
}

// forText selects the provider for a configured text.
func (l *Loader) forText(spec config.Text) Provider {
	if spec.Source == "bundled" {
		return l.bundled
	}
	return l.api
}

// PreloadAll loads every configured text, in order, into a fresh passage
// index. The first failure aborts the preload with an error naming the
// failing text; a partially warm index is never returned.
func (l *Loader) PreloadAll(ctx context.Context, texts []config.Text) (*text.Index, error) {
	idx := text.NewIndex()
	for _, spec := range texts {
		id := spec.ID()
		cacheHit := spec.Source == "bundled" && l.store.Has(id)

		start := time.Now()
		t, err := l.forText(spec).Load(ctx, spec)
		if err != nil {
			return nil, errors.Wrapf(err, "preloading text %q", spec.Title)
		}
		if err := idx.Add(t); err != nil {
			return nil, errors.Wrapf(err, "indexing text %q", spec.Title)
		}

		logging.TextLoaded(id, spec.Source, len(t.Passages), cacheHit, time.Since(start))
	}
	return idx, nil
}
