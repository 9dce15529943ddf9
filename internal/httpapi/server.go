// Package httpapi translates HTTP requests into service calls and service
// failures into status codes. Payload validation happens here, before any
// service is reached.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"openmusic/internal/app/likes"
	"openmusic/internal/auth"
	"openmusic/internal/store"
)

// errMissingToken rejects requests without a bearer token.
var errMissingToken = errors.New("missing bearer token")

// AlbumService exposes album-specific workflows.
type AlbumService interface {
	Create(ctx context.Context, name string, year int) (string, error)
	Get(ctx context.Context, id string) (store.Album, error)
	Update(ctx context.Context, id, name string, year int) error
	Delete(ctx context.Context, id string) error
	SetCover(ctx context.Context, id, filename string) (string, error)
}

// SongService coordinates track-level operations.
type SongService interface {
	Create(ctx context.Context, song store.Song) (string, error)
	List(ctx context.Context, filter store.SongFilter) ([]store.SongSummary, error)
	Get(ctx context.Context, id string) (store.Song, error)
	Update(ctx context.Context, id string, song store.Song) error
	Delete(ctx context.Context, id string) error
}

// PlaylistService coordinates playlist-related operations.
type PlaylistService interface {
	Create(ctx context.Context, name, owner string) (string, error)
	List(ctx context.Context, owner string) ([]store.PlaylistSummary, error)
	Delete(ctx context.Context, id, requester string) error
	Songs(ctx context.Context, id, requester string) (store.PlaylistWithSongs, error)
	AddSong(ctx context.Context, playlistID, songID, requester string) error
	RemoveSong(ctx context.Context, playlistID, songID, requester string) error
}

// LikeService exposes the like toggle and the cached aggregate count.
type LikeService interface {
	VerifyAlbumExists(ctx context.Context, albumID string) error
	Toggle(ctx context.Context, albumID, userID string) (likes.Action, error)
	Count(ctx context.Context, albumID string) (int, bool, error)
}

// UserService exposes signup and session workflows.
type UserService interface {
	Signup(ctx context.Context, username, password, fullname string) (string, error)
	Login(ctx context.Context, username, password string) (access, refresh string, err error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
	Logout(ctx context.Context, refreshToken string) error
}

// TokenVerifier validates access tokens presented by clients.
type TokenVerifier interface {
	ParseAccessToken(token string) (string, error)
}

// FileStore persists uploaded cover images.
type FileStore interface {
	Save(filename string, r io.Reader) (string, error)
	Dir() string
}

// Server wires HTTP handlers to the underlying services.
type Server struct {
	albums    AlbumService
	songs     SongService
	playlists PlaylistService
	likes     LikeService
	users     UserService
	tokens    TokenVerifier
	files     FileStore
	logger    zerolog.Logger
}

// New configures a Server with the given services.
func New(
	albums AlbumService,
	songs SongService,
	playlistSvc PlaylistService,
	likeSvc LikeService,
	users UserService,
	tokens TokenVerifier,
	files FileStore,
	logger zerolog.Logger,
) *Server {
	return &Server{
		albums:    albums,
		songs:     songs,
		playlists: playlistSvc,
		likes:     likeSvc,
		users:     users,
		tokens:    tokens,
		files:     files,
		logger:    logger,
	}
}

// Routes exposes the HTTP surface of the catalog.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Albums
	mux.HandleFunc("POST /albums", s.handleCreateAlbum)
	mux.HandleFunc("GET /albums/{id}", s.handleGetAlbum)
	mux.HandleFunc("PUT /albums/{id}", s.handleUpdateAlbum)
	mux.HandleFunc("DELETE /albums/{id}", s.handleDeleteAlbum)
	mux.HandleFunc("POST /albums/{id}/covers", s.handleUploadAlbumCover)
	mux.Handle("GET /upload/covers/", http.StripPrefix("/upload/covers/",
		http.FileServer(http.Dir(s.files.Dir()))))

	// Album likes
	mux.HandleFunc("POST /albums/{id}/likes", s.handleToggleAlbumLike)
	mux.HandleFunc("GET /albums/{id}/likes", s.handleAlbumLikeCount)

	// Songs
	mux.HandleFunc("POST /songs", s.handleCreateSong)
	mux.HandleFunc("GET /songs", s.handleListSongs)
	mux.HandleFunc("GET /songs/{id}", s.handleGetSong)
	mux.HandleFunc("PUT /songs/{id}", s.handleUpdateSong)
	mux.HandleFunc("DELETE /songs/{id}", s.handleDeleteSong)

	// Playlists
	mux.HandleFunc("POST /playlists", s.handleCreatePlaylist)
	mux.HandleFunc("GET /playlists", s.handleListPlaylists)
	mux.HandleFunc("DELETE /playlists/{id}", s.handleDeletePlaylist)
	mux.HandleFunc("POST /playlists/{id}/songs", s.handleAddPlaylistSong)
	mux.HandleFunc("GET /playlists/{id}/songs", s.handlePlaylistSongs)
	mux.HandleFunc("DELETE /playlists/{id}/songs", s.handleRemovePlaylistSong)

	// Users and sessions
	mux.HandleFunc("POST /users", s.handleSignup)
	mux.HandleFunc("POST /authentications", s.handleLogin)
	mux.HandleFunc("PUT /authentications", s.handleRefresh)
	mux.HandleFunc("DELETE /authentications", s.handleLogout)

	return mux
}

// authenticate resolves the requesting user from the bearer token.
func (s *Server) authenticate(r *http.Request) (string, error) {
	token := parseBearerToken(r.Header.Get("Authorization"))
	if token == "" {
		return "", errMissingToken
	}
	return s.tokens.ParseAccessToken(token)
}

type successResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

type failResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	var status int
	switch {
	case errors.Is(err, store.ErrNotOwner):
		status = http.StatusForbidden
	case errors.Is(err, store.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errMissingToken),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, store.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	case errors.Is(err, store.ErrInvariant), errors.Is(err, store.ErrInvalid):
		status = http.StatusBadRequest
	default:
		s.logger.Error().Err(err).Msg("request failed")
		writeJSON(w, http.StatusInternalServerError, failResponse{
			Status:  "error",
			Message: "internal server error",
		})
		return
	}
	writeJSON(w, status, failResponse{Status: "fail", Message: err.Error()})
}

func writeSuccess(w http.ResponseWriter, status int, message string, data any) {
	writeJSON(w, status, successResponse{Status: "success", Message: message, Data: data})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errInvalidJSON
	}
	return nil
}

func parseBearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
