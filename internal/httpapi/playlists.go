package httpapi

import (
	"net/http"

	"openmusic/internal/store"
)

func (s *Server) handleCreatePlaylist(w http.ResponseWriter, r *http.Request) {
	userID, err := s.authenticate(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	var req playlistPayload
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	if err := req.validate(); err != nil {
		s.writeError(w, err)
		return
	}

	playlistID, err := s.playlists.Create(r.Context(), req.Name, userID)
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, "playlist added", struct {
		PlaylistID string `json:"playlistId"`
	}{PlaylistID: playlistID})
}

func (s *Server) handleListPlaylists(w http.ResponseWriter, r *http.Request) {
	userID, err := s.authenticate(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	playlists, err := s.playlists.List(r.Context(), userID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if playlists == nil {
		playlists = []store.PlaylistSummary{}
	}

	writeSuccess(w, http.StatusOK, "", struct {
		Playlists []store.PlaylistSummary `json:"playlists"`
	}{Playlists: playlists})
}

func (s *Server) handleDeletePlaylist(w http.ResponseWriter, r *http.Request) {
	userID, err := s.authenticate(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	if err := s.playlists.Delete(r.Context(), r.PathValue("id"), userID); err != nil {
		s.writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "playlist deleted", nil)
}

func (s *Server) handleAddPlaylistSong(w http.ResponseWriter, r *http.Request) {
	userID, err := s.authenticate(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	var req playlistSongPayload
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	if err := req.validate(); err != nil {
		s.writeError(w, err)
		return
	}

	if err := s.playlists.AddSong(r.Context(), r.PathValue("id"), req.SongID, userID); err != nil {
		s.writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, "song added to playlist", nil)
}

func (s *Server) handlePlaylistSongs(w http.ResponseWriter, r *http.Request) {
	userID, err := s.authenticate(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	playlist, err := s.playlists.Songs(r.Context(), r.PathValue("id"), userID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if playlist.Songs == nil {
		playlist.Songs = []store.SongSummary{}
	}

	writeSuccess(w, http.StatusOK, "", struct {
		Playlist store.PlaylistWithSongs `json:"playlist"`
	}{Playlist: playlist})
}

func (s *Server) handleRemovePlaylistSong(w http.ResponseWriter, r *http.Request) {
	userID, err := s.authenticate(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	var req playlistSongPayload
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	if err := req.validate(); err != nil {
		s.writeError(w, err)
		return
	}

	if err := s.playlists.RemoveSong(r.Context(), r.PathValue("id"), req.SongID, userID); err != nil {
		s.writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "song removed from playlist", nil)
}
