package httpapi

import "net/http"

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupPayload
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	if err := req.validate(); err != nil {
		s.writeError(w, err)
		return
	}

	userID, err := s.users.Signup(r.Context(), req.Username, req.Password, req.Fullname)
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, "user registered", struct {
		UserID string `json:"userId"`
	}{UserID: userID})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginPayload
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	if err := req.validate(); err != nil {
		s.writeError(w, err)
		return
	}

	access, refresh, err := s.users.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, "authentication added", struct {
		AccessToken  string `json:"accessToken"`
		RefreshToken string `json:"refreshToken"`
	}{AccessToken: access, RefreshToken: refresh})
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var req refreshPayload
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	if err := req.validate(); err != nil {
		s.writeError(w, err)
		return
	}

	access, err := s.users.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "access token renewed", struct {
		AccessToken string `json:"accessToken"`
	}{AccessToken: access})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	var req refreshPayload
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	if err := req.validate(); err != nil {
		s.writeError(w, err)
		return
	}

	if err := s.users.Logout(r.Context(), req.RefreshToken); err != nil {
		s.writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "refresh token deleted", nil)
}
