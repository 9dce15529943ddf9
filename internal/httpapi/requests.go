package httpapi

import (
	"fmt"
	"strings"

	"openmusic/internal/store"
)

var errInvalidJSON = fmt.Errorf("%w: malformed JSON payload", store.ErrInvalid)

// Request payloads are validated here, before any service call, so the core
// never sees malformed input.

type albumPayload struct {
	Name string `json:"name"`
	Year int    `json:"year"`
}

func (p albumPayload) validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: name is required", store.ErrInvalid)
	}
	if p.Year <= 0 {
		return fmt.Errorf("%w: year must be positive", store.ErrInvalid)
	}
	return nil
}

type songPayload struct {
	Title     string  `json:"title"`
	Year      int     `json:"year"`
	Performer string  `json:"performer"`
	Genre     string  `json:"genre"`
	Duration  *int    `json:"duration"`
	AlbumID   *string `json:"albumId"`
}

func (p songPayload) validate() error {
	switch {
	case strings.TrimSpace(p.Title) == "":
		return fmt.Errorf("%w: title is required", store.ErrInvalid)
	case p.Year <= 0:
		return fmt.Errorf("%w: year must be positive", store.ErrInvalid)
	case strings.TrimSpace(p.Performer) == "":
		return fmt.Errorf("%w: performer is required", store.ErrInvalid)
	case strings.TrimSpace(p.Genre) == "":
		return fmt.Errorf("%w: genre is required", store.ErrInvalid)
	}
	if p.Duration != nil && *p.Duration < 0 {
		return fmt.Errorf("%w: duration must not be negative", store.ErrInvalid)
	}
	return nil
}

func (p songPayload) song() store.Song {
	return store.Song{
		Title:     p.Title,
		Year:      p.Year,
		Performer: p.Performer,
		Genre:     p.Genre,
		Duration:  p.Duration,
		AlbumID:   p.AlbumID,
	}
}

type playlistPayload struct {
	Name string `json:"name"`
}

func (p playlistPayload) validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: name is required", store.ErrInvalid)
	}
	return nil
}

type playlistSongPayload struct {
	SongID string `json:"songId"`
}

func (p playlistSongPayload) validate() error {
	if strings.TrimSpace(p.SongID) == "" {
		return fmt.Errorf("%w: songId is required", store.ErrInvalid)
	}
	return nil
}

type signupPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Fullname string `json:"fullname"`
}

func (p signupPayload) validate() error {
	switch {
	case strings.TrimSpace(p.Username) == "":
		return fmt.Errorf("%w: username is required", store.ErrInvalid)
	case p.Password == "":
		return fmt.Errorf("%w: password is required", store.ErrInvalid)
	case strings.TrimSpace(p.Fullname) == "":
		return fmt.Errorf("%w: fullname is required", store.ErrInvalid)
	}
	return nil
}

type loginPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (p loginPayload) validate() error {
	if p.Username == "" || p.Password == "" {
		return fmt.Errorf("%w: username and password are required", store.ErrInvalid)
	}
	return nil
}

type refreshPayload struct {
	RefreshToken string `json:"refreshToken"`
}

func (p refreshPayload) validate() error {
	if p.RefreshToken == "" {
		return fmt.Errorf("%w: refreshToken is required", store.ErrInvalid)
	}
	return nil
}
