package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemorySetGet(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	if err := m.Set(ctx, "albums:album-1", []byte(`{"likes":3}`), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}

	value, err := m.Get(ctx, "albums:album-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(value) != `{"likes":3}` {
		t.Fatalf("unexpected value %q", value)
	}
}

func TestMemoryMiss(t *testing.T) {
	m := NewMemory()

	_, err := m.Get(context.Background(), "albums:album-unknown")
	if !errors.Is(err, ErrMiss) {
		t.Fatalf("expected ErrMiss, got %v", err)
	}
}

func TestMemoryExpiry(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	if err := m.Set(ctx, "albums:album-1", []byte(`{"likes":1}`), time.Nanosecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(5 * time.Millisecond)

	_, err := m.Get(ctx, "albums:album-1")
	if !errors.Is(err, ErrMiss) {
		t.Fatalf("expected ErrMiss after expiry, got %v", err)
	}
}

func TestMemoryDelete(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	if err := m.Set(ctx, "albums:album-1", []byte(`{"likes":2}`), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := m.Delete(ctx, "albums:album-1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	_, err := m.Get(ctx, "albums:album-1")
	if !errors.Is(err, ErrMiss) {
		t.Fatalf("expected ErrMiss after delete, got %v", err)
	}
}

func TestMemoryGetReturnsCopy(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	if err := m.Set(ctx, "albums:album-1", []byte(`{"likes":9}`), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}

	first, err := m.Get(ctx, "albums:album-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	first[0] = 'x'

	second, err := m.Get(ctx, "albums:album-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(second) != `{"likes":9}` {
		t.Fatalf("cached value was mutated: %q", second)
	}
}

func TestAlbumLikesKey(t *testing.T) {
	if got := AlbumLikesKey("album-1"); got != "albums:album-1" {
		t.Fatalf("unexpected key %q", got)
	}
}
