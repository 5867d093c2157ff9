package ops

import (
	"testing"

	"github.com/clipstash/clipstash/internal/errors"
)

func TestFavorite(t *testing.T) {
	database := newTestDB(t)
	cfg := newTestConfig()

	added := mustAdd(t, database, cfg, "pin me")

	out, err := Favorite(database, FavoriteInput{ID: added.ID})
	if err != nil {
		t.Fatalf("Favorite failed: %v", err)
	}
	if !out.IsFavorite {
		t.Error("IsFavorite = false")
	}

	fetched, err := Fetch(database, FetchInput{ID: added.ID})
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if !fetched.Record.IsFavorite {
		t.Error("record not favorited after Favorite")
	}
}

func TestFavorite_Monotonic(t *testing.T) {
	database := newTestDB(t)
	cfg := newTestConfig()

	added := mustAdd(t, database, cfg, "pin me")

	for range 3 {
		if _, err := Favorite(database, FavoriteInput{ID: added.ID}); err != nil {
			t.Fatalf("repeated Favorite failed: %v", err)
		}
		fetched, err := Fetch(database, FetchInput{ID: added.ID})
		if err != nil {
			t.Fatalf("Fetch failed: %v", err)
		}
		if !fetched.Record.IsFavorite {
			t.Fatal("IsFavorite reverted")
		}
	}
}

func TestFavorite_UnknownID(t *testing.T) {
	database := newTestDB(t)

	_, err := Favorite(database, FavoriteInput{ID: 404})
	if !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("Favorite(unknown) error = %v, want NOT_FOUND", err)
	}
}

func TestFavorite_InvalidID(t *testing.T) {
	database := newTestDB(t)

	_, err := Favorite(database, FavoriteInput{ID: 0})
	if !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("Favorite(0) error = %v, want INVALID_REQUEST", err)
	}
}
