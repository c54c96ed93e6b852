package artist

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/mbrevik/gigwire/internal/store"
)

// fakeArtistStore matches names case-insensitively, the way real backends do.
type fakeArtistStore struct {
	artists  []*store.Artist
	lookups  int
	creates  int
	failNext error
}

func (f *fakeArtistStore) ArtistByName(ctx context.Context, name string) (*store.Artist, error) {
	if f.failNext != nil {
		err := f.failNext
		f.failNext = nil
		return nil, err
	}
	f.lookups++
	for _, a := range f.artists {
		if strings.EqualFold(a.Name, name) {
			return a, nil
		}
	}
	return nil, nil
}

func (f *fakeArtistStore) CreateArtist(ctx context.Context, name string) (*store.Artist, error) {
	f.creates++
	a := &store.Artist{
		ID:        "artist-" + strconv.Itoa(len(f.artists)+1),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	f.artists = append(f.artists, a)
	return a, nil
}

func TestResolveCreatesOnce(t *testing.T) {
	fake := &fakeArtistStore{}
	r := New(fake)

	first, err := r.Resolve(context.Background(), "The Midnights")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if first == nil {
		t.Fatal("expected an artist")
	}

	// Same name with messy whitespace and different case must resolve to the
	// same identity without another create.
	second, err := r.Resolve(context.Background(), " the   midnights ")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("ids differ: %s vs %s", first.ID, second.ID)
	}
	if fake.creates != 1 {
		t.Errorf("creates = %d, want 1", fake.creates)
	}
}

func TestResolveUsesCache(t *testing.T) {
	fake := &fakeArtistStore{}
	r := New(fake)

	for i := 0; i < 5; i++ {
		if _, err := r.Resolve(context.Background(), "Cedar & Pine"); err != nil {
			t.Fatalf("Resolve failed: %v", err)
		}
	}

	if fake.lookups != 1 {
		t.Errorf("store lookups = %d, want 1 (cache should absorb repeats)", fake.lookups)
	}
}

func TestResolveExistingArtist(t *testing.T) {
	existing := &store.Artist{ID: "artist-9", Name: "Lena Okafor Trio"}
	fake := &fakeArtistStore{artists: []*store.Artist{existing}}
	r := New(fake)

	got, err := r.Resolve(context.Background(), "lena okafor trio")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if got.ID != existing.ID {
		t.Errorf("id = %s, want %s", got.ID, existing.ID)
	}
	if fake.creates != 0 {
		t.Errorf("creates = %d, want 0", fake.creates)
	}
}

func TestResolveEmptyName(t *testing.T) {
	fake := &fakeArtistStore{}
	r := New(fake)

	got, err := r.Resolve(context.Background(), "   ")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil artist for blank name, got %+v", got)
	}
	if fake.lookups != 0 || fake.creates != 0 {
		t.Error("blank names should never touch the store")
	}
}

func TestResolveStoreError(t *testing.T) {
	fake := &fakeArtistStore{failNext: errors.New("store down")}
	r := New(fake)

	if _, err := r.Resolve(context.Background(), "The Midnights"); err == nil {
		t.Fatal("expected error to propagate")
	}

	// The failure must not poison the cache; the next call retries.
	got, err := r.Resolve(context.Background(), "The Midnights")
	if err != nil {
		t.Fatalf("retry failed: %v", err)
	}
	if got == nil {
		t.Fatal("expected an artist on retry")
	}
}
