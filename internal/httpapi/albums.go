package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	"openmusic/internal/store"
)

// maxCoverBytes caps cover uploads.
const maxCoverBytes = 512000

func (s *Server) handleCreateAlbum(w http.ResponseWriter, r *http.Request) {
	var req albumPayload
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	if err := req.validate(); err != nil {
		s.writeError(w, err)
		return
	}

	albumID, err := s.albums.Create(r.Context(), req.Name, req.Year)
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, "album added", struct {
		AlbumID string `json:"albumId"`
	}{AlbumID: albumID})
}

func (s *Server) handleGetAlbum(w http.ResponseWriter, r *http.Request) {
	album, err := s.albums.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "", struct {
		Album store.Album `json:"album"`
	}{Album: album})
}

func (s *Server) handleUpdateAlbum(w http.ResponseWriter, r *http.Request) {
	var req albumPayload
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	if err := req.validate(); err != nil {
		s.writeError(w, err)
		return
	}

	if err := s.albums.Update(r.Context(), r.PathValue("id"), req.Name, req.Year); err != nil {
		s.writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "album updated", nil)
}

func (s *Server) handleDeleteAlbum(w http.ResponseWriter, r *http.Request) {
	if err := s.albums.Delete(r.Context(), r.PathValue("id")); err != nil {
		s.writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "album deleted", nil)
}

func (s *Server) handleUploadAlbumCover(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxCoverBytes)
	if err := r.ParseMultipartForm(maxCoverBytes); err != nil {
		s.writeError(w, fmt.Errorf("%w: cover must be a multipart upload under %d bytes", store.ErrInvalid, maxCoverBytes))
		return
	}

	file, header, err := r.FormFile("cover")
	if err != nil {
		s.writeError(w, fmt.Errorf("%w: cover file is required", store.ErrInvalid))
		return
	}
	defer file.Close()

	if !strings.HasPrefix(header.Header.Get("Content-Type"), "image/") {
		s.writeError(w, fmt.Errorf("%w: cover must be an image", store.ErrInvalid))
		return
	}

	filename, err := s.files.Save(header.Filename, file)
	if err != nil {
		s.writeError(w, err)
		return
	}

	if _, err := s.albums.SetCover(r.Context(), r.PathValue("id"), filename); err != nil {
		s.writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, "cover uploaded", nil)
}

func (s *Server) handleToggleAlbumLike(w http.ResponseWriter, r *http.Request) {
	userID, err := s.authenticate(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	albumID := r.PathValue("id")
	if err := s.likes.VerifyAlbumExists(r.Context(), albumID); err != nil {
		s.writeError(w, err)
		return
	}

	action, err := s.likes.Toggle(r.Context(), albumID, userID)
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, fmt.Sprintf("album %s", action), nil)
}

func (s *Server) handleAlbumLikeCount(w http.ResponseWriter, r *http.Request) {
	albumID := r.PathValue("id")
	if err := s.likes.VerifyAlbumExists(r.Context(), albumID); err != nil {
		s.writeError(w, err)
		return
	}

	count, fromCache, err := s.likes.Count(r.Context(), albumID)
	if err != nil {
		s.writeError(w, err)
		return
	}

	// Provenance for observability layers: present only on cache hits.
	if fromCache {
		w.Header().Set("X-Data-Source", "cache")
	}
	writeSuccess(w, http.StatusOK, "", struct {
		Likes int `json:"likes"`
	}{Likes: count})
}
