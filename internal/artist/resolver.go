// Package artist resolves free-text performer names to stable artist
// identities with a get-or-create lookup against the artist store.
package artist

import (
	"context"
	"fmt"

	"github.com/mbrevik/gigwire/internal/candidate"
	"github.com/mbrevik/gigwire/internal/store"
)

// Resolver maps performer names to artists, creating them lazily. Names are
// matched on their normalized form, so "The Midnights" and " the midnights "
// resolve to the same artist. A per-run cache keeps a batch from hitting the
// store once per candidate for the same name.
type Resolver struct {
	artists store.ArtistStore
	cache   map[string]*store.Artist
}

// New creates a Resolver backed by the given artist store.
func New(artists store.ArtistStore) *Resolver {
	return &Resolver{
		artists: artists,
		cache:   make(map[string]*store.Artist),
	}
}

// Resolve returns the artist for a performer name, creating one if none
// exists. A name that normalizes to nothing usable resolves to nil without
// error.
func (r *Resolver) Resolve(ctx context.Context, name string) (*store.Artist, error) {
	normalized := candidate.CollapseSpace(name)
	if normalized == "" {
		return nil, nil
	}

	key := candidate.NormalizeTitle(normalized)
	if a, ok := r.cache[key]; ok {
		return a, nil
	}

	a, err := r.artists.ArtistByName(ctx, normalized)
	if err != nil {
		return nil, fmt.Errorf("looking up artist %q: %w", normalized, err)
	}
	if a == nil {
		a, err = r.artists.CreateArtist(ctx, normalized)
		if err != nil {
			return nil, fmt.Errorf("creating artist %q: %w", normalized, err)
		}
	}

	r.cache[key] = a
	return a, nil
}
