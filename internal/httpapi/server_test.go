package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"openmusic/internal/app/likes"
	"openmusic/internal/store"
)

type stubAlbumService struct {
	album  store.Album
	getErr error
}

func (s *stubAlbumService) Create(context.Context, string, int) (string, error) {
	return "album-1", nil
}

func (s *stubAlbumService) Get(context.Context, string) (store.Album, error) {
	if s.getErr != nil {
		return store.Album{}, s.getErr
	}
	return s.album, nil
}

func (s *stubAlbumService) Update(context.Context, string, string, int) error { return nil }
func (s *stubAlbumService) Delete(context.Context, string) error              { return nil }

func (s *stubAlbumService) SetCover(context.Context, string, string) (string, error) {
	return "", nil
}

type stubSongService struct{}

func (stubSongService) Create(context.Context, store.Song) (string, error) { return "song-1", nil }

func (stubSongService) List(context.Context, store.SongFilter) ([]store.SongSummary, error) {
	return nil, nil
}

func (stubSongService) Get(context.Context, string) (store.Song, error) { return store.Song{}, nil }
func (stubSongService) Update(context.Context, string, store.Song) error {
	return nil
}
func (stubSongService) Delete(context.Context, string) error { return nil }

type stubPlaylistService struct {
	deleteErr error
}

func (s *stubPlaylistService) Create(context.Context, string, string) (string, error) {
	return "playlist-1", nil
}

func (s *stubPlaylistService) List(context.Context, string) ([]store.PlaylistSummary, error) {
	return nil, nil
}

func (s *stubPlaylistService) Delete(context.Context, string, string) error {
	return s.deleteErr
}

func (s *stubPlaylistService) Songs(context.Context, string, string) (store.PlaylistWithSongs, error) {
	return store.PlaylistWithSongs{}, nil
}

func (s *stubPlaylistService) AddSong(context.Context, string, string, string) error { return nil }

func (s *stubPlaylistService) RemoveSong(context.Context, string, string, string) error {
	return nil
}

type stubLikeService struct {
	verifyErr   error
	action      likes.Action
	count       int
	fromCache   bool
	toggleUsers []string
}

func (s *stubLikeService) VerifyAlbumExists(context.Context, string) error {
	return s.verifyErr
}

func (s *stubLikeService) Toggle(_ context.Context, _ string, userID string) (likes.Action, error) {
	s.toggleUsers = append(s.toggleUsers, userID)
	return s.action, nil
}

func (s *stubLikeService) Count(context.Context, string) (int, bool, error) {
	return s.count, s.fromCache, nil
}

type stubUserService struct{}

func (stubUserService) Signup(context.Context, string, string, string) (string, error) {
	return "user-1", nil
}

func (stubUserService) Login(context.Context, string, string) (string, string, error) {
	return "access", "refresh", nil
}

func (stubUserService) Refresh(context.Context, string) (string, error) { return "access", nil }
func (stubUserService) Logout(context.Context, string) error            { return nil }

type stubTokens map[string]string

func (s stubTokens) ParseAccessToken(token string) (string, error) {
	userID, ok := s[token]
	if !ok {
		return "", errMissingToken
	}
	return userID, nil
}

type stubFiles struct {
	dir string
}

func (s stubFiles) Save(filename string, r io.Reader) (string, error) { return filename, nil }
func (s stubFiles) Dir() string                                       { return s.dir }

type testServer struct {
	albums    *stubAlbumService
	playlists *stubPlaylistService
	likes     *stubLikeService
	handler   http.Handler
}

func newTestServer() *testServer {
	ts := &testServer{
		albums:    &stubAlbumService{},
		playlists: &stubPlaylistService{},
		likes:     &stubLikeService{action: likes.ActionLiked},
	}
	srv := New(
		ts.albums,
		stubSongService{},
		ts.playlists,
		ts.likes,
		stubUserService{},
		stubTokens{"valid-token": "user-1"},
		stubFiles{dir: "."},
		zerolog.Nop(),
	)
	ts.handler = srv.Routes()
	return ts
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return body
}

func TestToggleLikeRequiresToken(t *testing.T) {
	ts := newTestServer()

	req := httptest.NewRequest(http.MethodPost, "/albums/album-1/likes", nil)
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if len(ts.likes.toggleUsers) != 0 {
		t.Fatal("toggle must not run without a token")
	}
}

func TestToggleLike(t *testing.T) {
	ts := newTestServer()

	req := httptest.NewRequest(http.MethodPost, "/albums/album-1/likes", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["status"] != "success" {
		t.Fatalf("unexpected status %v", body["status"])
	}
	if body["message"] != "album liked" {
		t.Fatalf("unexpected message %v", body["message"])
	}
	if len(ts.likes.toggleUsers) != 1 || ts.likes.toggleUsers[0] != "user-1" {
		t.Fatalf("unexpected toggle users %v", ts.likes.toggleUsers)
	}
}

func TestToggleLikeUnknownAlbum(t *testing.T) {
	ts := newTestServer()
	ts.likes.verifyErr = store.ErrAlbumNotFound

	req := httptest.NewRequest(http.MethodPost, "/albums/album-missing/likes", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if len(ts.likes.toggleUsers) != 0 {
		t.Fatal("toggle must not run for a missing album")
	}
}

func TestLikeCountFromCacheSetsHeader(t *testing.T) {
	ts := newTestServer()
	ts.likes.count = 3
	ts.likes.fromCache = true

	req := httptest.NewRequest(http.MethodGet, "/albums/album-1/likes", nil)
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Header().Get("X-Data-Source") != "cache" {
		t.Fatal("expected X-Data-Source: cache")
	}
	body := decodeBody(t, rec)
	data := body["data"].(map[string]any)
	if data["likes"] != float64(3) {
		t.Fatalf("unexpected likes %v", data["likes"])
	}
}

func TestLikeCountRecomputedOmitsHeader(t *testing.T) {
	ts := newTestServer()
	ts.likes.count = 3

	req := httptest.NewRequest(http.MethodGet, "/albums/album-1/likes", nil)
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Header().Get("X-Data-Source") != "" {
		t.Fatal("X-Data-Source must be absent on a recompute")
	}
}

func TestGetAlbumNotFound(t *testing.T) {
	ts := newTestServer()
	ts.albums.getErr = store.ErrAlbumNotFound

	req := httptest.NewRequest(http.MethodGet, "/albums/album-missing", nil)
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["status"] != "fail" {
		t.Fatalf("unexpected status %v", body["status"])
	}
}

func TestDeletePlaylistForbidden(t *testing.T) {
	ts := newTestServer()
	ts.playlists.deleteErr = store.ErrNotOwner

	req := httptest.NewRequest(http.MethodDelete, "/playlists/playlist-1", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestCreateAlbumInvalidPayload(t *testing.T) {
	ts := newTestServer()

	req := httptest.NewRequest(http.MethodPost, "/albums", bytes.NewBufferString(`{"name":""}`))
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestCoverStaticRouteCoexistsWithLikeRoutes(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "cover.png"), []byte("image bytes"), 0o644); err != nil {
		t.Fatalf("write cover: %v", err)
	}

	srv := New(
		&stubAlbumService{},
		stubSongService{},
		&stubPlaylistService{},
		&stubLikeService{},
		stubUserService{},
		stubTokens{"valid-token": "user-1"},
		stubFiles{dir: dir},
		zerolog.Nop(),
	)
	handler := srv.Routes()

	req := httptest.NewRequest(http.MethodGet, "/upload/covers/cover.png", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for stored cover, got %d", rec.Code)
	}
	if rec.Body.String() != "image bytes" {
		t.Fatalf("unexpected body %q", rec.Body.String())
	}

	// An album id spelled "covers" must still resolve to the like routes.
	req = httptest.NewRequest(http.MethodGet, "/albums/covers/likes", nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for like count, got %d", rec.Code)
	}
}

func TestSignup(t *testing.T) {
	ts := newTestServer()

	payload := `{"username":"dicoding","password":"secret","fullname":"Dicoding Indonesia"}`
	req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewBufferString(payload))
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	data := body["data"].(map[string]any)
	if data["userId"] != "user-1" {
		t.Fatalf("unexpected userId %v", data["userId"])
	}
}
