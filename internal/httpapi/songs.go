package httpapi

import (
	"net/http"

	"openmusic/internal/store"
)

func (s *Server) handleCreateSong(w http.ResponseWriter, r *http.Request) {
	var req songPayload
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	if err := req.validate(); err != nil {
		s.writeError(w, err)
		return
	}

	songID, err := s.songs.Create(r.Context(), req.song())
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, "song added", struct {
		SongID string `json:"songId"`
	}{SongID: songID})
}

func (s *Server) handleListSongs(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := store.SongFilter{
		Title:     query.Get("title"),
		Performer: query.Get("performer"),
	}

	songs, err := s.songs.List(r.Context(), filter)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if songs == nil {
		songs = []store.SongSummary{}
	}

	writeSuccess(w, http.StatusOK, "", struct {
		Songs []store.SongSummary `json:"songs"`
	}{Songs: songs})
}

func (s *Server) handleGetSong(w http.ResponseWriter, r *http.Request) {
	song, err := s.songs.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "", struct {
		Song store.Song `json:"song"`
	}{Song: song})
}

func (s *Server) handleUpdateSong(w http.ResponseWriter, r *http.Request) {
	var req songPayload
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	if err := req.validate(); err != nil {
		s.writeError(w, err)
		return
	}

	if err := s.songs.Update(r.Context(), r.PathValue("id"), req.song()); err != nil {
		s.writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "song updated", nil)
}

func (s *Server) handleDeleteSong(w http.ResponseWriter, r *http.Request) {
	if err := s.songs.Delete(r.Context(), r.PathValue("id")); err != nil {
		s.writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "song deleted", nil)
}
