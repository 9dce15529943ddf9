package albums

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"openmusic/internal/cache"
	"openmusic/internal/store"
)

type fakeStore struct {
	deleteErr error
	coverURL  string
}

func (f *fakeStore) CreateAlbum(context.Context, string, int) (string, error) {
	return "album-1", nil
}

func (f *fakeStore) AlbumByID(context.Context, string) (store.Album, error) {
	return store.Album{ID: "album-1"}, nil
}

func (f *fakeStore) UpdateAlbum(context.Context, string, string, int) error { return nil }

func (f *fakeStore) DeleteAlbum(context.Context, string) error { return f.deleteErr }

func (f *fakeStore) SetAlbumCover(_ context.Context, _ string, coverURL string) error {
	f.coverURL = coverURL
	return nil
}

func TestDeleteDropsCachedLikeCount(t *testing.T) {
	st := &fakeStore{}
	c := cache.NewMemory()
	svc := New(st, c, "http://localhost:5000", zerolog.Nop())
	ctx := context.Background()

	key := cache.AlbumLikesKey("album-1")
	if err := c.Set(ctx, key, []byte(`{"likes":4}`), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}

	if err := svc.Delete(ctx, "album-1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if _, err := c.Get(ctx, key); !errors.Is(err, cache.ErrMiss) {
		t.Fatalf("expected cached count to be gone, got %v", err)
	}
}

func TestDeleteKeepsCacheOnStoreFailure(t *testing.T) {
	st := &fakeStore{deleteErr: store.ErrAlbumNotFound}
	c := cache.NewMemory()
	svc := New(st, c, "http://localhost:5000", zerolog.Nop())
	ctx := context.Background()

	key := cache.AlbumLikesKey("album-1")
	if err := c.Set(ctx, key, []byte(`{"likes":4}`), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}

	if err := svc.Delete(ctx, "album-1"); !errors.Is(err, store.ErrAlbumNotFound) {
		t.Fatalf("expected ErrAlbumNotFound, got %v", err)
	}

	if _, err := c.Get(ctx, key); err != nil {
		t.Fatalf("expected cached count to survive a failed delete, got %v", err)
	}
}

func TestSetCoverBuildsPublicURL(t *testing.T) {
	st := &fakeStore{}
	svc := New(st, cache.NewMemory(), "http://localhost:5000", zerolog.Nop())

	url, err := svc.SetCover(context.Background(), "album-1", "cover.png")
	if err != nil {
		t.Fatalf("SetCover: %v", err)
	}
	want := "http://localhost:5000/upload/covers/cover.png"
	if url != want {
		t.Fatalf("expected %q, got %q", want, url)
	}
	if st.coverURL != want {
		t.Fatalf("store received %q", st.coverURL)
	}
}
