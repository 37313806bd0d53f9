package httpapi

import (
	"net/http"

	"github.com/smartsplit/backend/internal/middleware"
)

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email       string `json:"email"`
		DisplayName string `json:"display_name"`
		Password    string `json:"password"`
	}
	if !decode(w, r, &req) {
		return
	}

	user, err := s.users.Register(r.Context(), req.Email, req.DisplayName, req.Password)
	if err != nil {
		respondError(w, err)
		return
	}

	respond(w, http.StatusCreated, "registration successful, please verify your email", toUserDTO(user))
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !decode(w, r, &req) {
		return
	}

	token, err := s.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondError(w, err)
		return
	}

	respond(w, http.StatusOK, "login successful", map[string]string{"token": token})
}

func (s *Server) handleVerifyAccount(w http.ResponseWriter, r *http.Request) {
	user, err := s.users.VerifyAccount(r.Context(), r.URL.Query().Get("token"))
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, "account verified", toUserDTO(user))
}

func (s *Server) handleRequestPasswordReset(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if !decode(w, r, &req) {
		return
	}

	if err := s.users.RequestPasswordReset(r.Context(), req.Email); err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, "password reset email sent", nil)
}

func (s *Server) handleVerifyResetToken(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token string `json:"token"`
	}
	if !decode(w, r, &req) {
		return
	}

	if _, err := s.users.VerifyPasswordResetToken(r.Context(), req.Token); err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, "token valid", nil)
}

func (s *Server) handleUpdatePassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token       string `json:"token"`
		NewPassword string `json:"new_password"`
	}
	if !decode(w, r, &req) {
		return
	}

	if err := s.users.UpdatePassword(r.Context(), req.Token, req.NewPassword); err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, "password updated", nil)
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	user, groups, err := s.users.Profile(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}

	groupIDs := make([]string, len(groups))
	for i, g := range groups {
		groupIDs[i] = g.ID
	}
	respond(w, http.StatusOK, "profile", map[string]any{
		"user":      toUserDTO(user),
		"group_ids": groupIDs,
	})
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req struct {
		DisplayName string `json:"display_name"`
	}
	if !decode(w, r, &req) {
		return
	}

	user, err := s.users.UpdateProfile(r.Context(), middleware.GetUserID(r.Context()), req.DisplayName)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, "profile updated", toUserDTO(user))
}
