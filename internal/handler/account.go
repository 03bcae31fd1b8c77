package handler

import (
	"net/http"
	"time"

	"github.com/pkordes/trip-planner/internal/middleware"
)

type signupRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signupResponse struct {
	UID     string `json:"uid"`
	Message string `json:"message"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	IDToken   string    `json:"id_token"`
	UID       string    `json:"uid"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Signup handles POST /signup.
func (s *Server) Signup(w http.ResponseWriter, r *http.Request) {
	var body signupRequest
	if !decodeJSON(w, r, &body, false) {
		return
	}

	acct, err := s.accounts.Signup(r.Context(), body.Email, body.Password, body.FullName)
	if err != nil {
		s.respondError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusCreated, signupResponse{UID: acct.ID, Message: "User created successfully"})
}

// Login handles POST /login. The returned id_token is sent back in the
// id-token header on authenticated routes.
func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	var body loginRequest
	if !decodeJSON(w, r, &body, false) {
		return
	}

	sess, err := s.accounts.Login(r.Context(), body.Email, body.Password)
	if err != nil {
		s.respondError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, loginResponse{IDToken: sess.IDToken, UID: sess.AccountID, ExpiresAt: sess.ExpiresAt})
}

// GetCurrentUser handles GET /users/me.
func (s *Server) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	uid, _ := middleware.AccountID(r.Context())
	writeJSON(w, http.StatusOK, map[string]string{"user_uid": uid, "message": "You are authenticated."})
}
