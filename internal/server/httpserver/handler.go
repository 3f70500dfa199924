package httpserver

import (
	"encoding/json"
	"net/http"

	"github.com/prestoapp/presto-server/internal/common"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type storeRequest struct {
	Store json.RawMessage `json:"store"`
}

type storeResponse struct {
	Store json.RawMessage `json:"store"`
}

func (s *HTTPServer) index(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(r.Context(), w, http.StatusOK, map[string]any{
		"service": "presto-store-server",
		"endpoints": []string{
			"POST /admin/auth/login",
			"POST /admin/auth/register",
			"POST /admin/auth/logout",
			"GET /store",
			"PUT /store",
		},
	})
}

func (s *HTTPServer) ping(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(r.Context(), w, http.StatusOK, map[string]string{"status": "OK"})
}

func (s *HTTPServer) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	token, err := s.accounts.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	s.writeJSON(r.Context(), w, http.StatusOK, tokenResponse{Token: token})
}

func (s *HTTPServer) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	token, err := s.accounts.Register(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	s.logger.Info(r.Context(), "registered", "email", req.Email)
	s.writeJSON(r.Context(), w, http.StatusOK, tokenResponse{Token: token})
}

func (s *HTTPServer) logout(w http.ResponseWriter, r *http.Request) {
	email, ok := EmailFromContext(r.Context())
	if !ok {
		s.writeError(r.Context(), w, common.ErrInvalidToken)
		return
	}

	if err := s.accounts.Logout(r.Context(), email); err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	s.writeJSON(r.Context(), w, http.StatusOK, struct{}{})
}

func (s *HTTPServer) getStore(w http.ResponseWriter, r *http.Request) {
	email, ok := EmailFromContext(r.Context())
	if !ok {
		s.writeError(r.Context(), w, common.ErrInvalidToken)
		return
	}

	store, err := s.accounts.GetStore(r.Context(), email)
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	s.writeJSON(r.Context(), w, http.StatusOK, storeResponse{Store: store})
}

func (s *HTTPServer) setStore(w http.ResponseWriter, r *http.Request) {
	email, ok := EmailFromContext(r.Context())
	if !ok {
		s.writeError(r.Context(), w, common.ErrInvalidToken)
		return
	}

	var req storeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(r.Context(), w, err)
		return
	}
	if len(req.Store) == 0 {
		s.writeError(r.Context(), w, common.ErrMalformedPayload)
		return
	}

	if err := s.accounts.SetStore(r.Context(), email, req.Store); err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	s.writeJSON(r.Context(), w, http.StatusOK, struct{}{})
}
