// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/mock-me/auth"
	"github.com/danielhkuo/mock-me/middleware"
	"github.com/danielhkuo/mock-me/models"
)

// AuthHandler serves the demo account endpoints. Nothing is stored and the
// session cookie is unsigned.
type AuthHandler struct{}

func NewAuthHandler() *AuthHandler {
	return &AuthHandler{}
}

// Signup handles POST /auth/signup
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req models.SignupRequest
	if err := parseOptionalBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	user := auth.DemoUser(req.Email, req.Role)
	slog.Info("signup", "user_id", user.ID)
	middleware.JSONResponse(w, http.StatusOK, models.AuthResponse{OK: true, User: &user})
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := parseOptionalBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	user := auth.DemoUser(req.Email, "")
	if err := auth.SetSessionCookies(w, user); err != nil {
		slog.Error("failed to issue session", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to log in")
		return
	}

	slog.Info("login", "user_id", user.ID)
	middleware.JSONResponse(w, http.StatusOK, models.AuthResponse{OK: true, User: &user})
}

// Logout handles POST /auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	auth.ClearSessionCookies(w)
	middleware.JSONResponse(w, http.StatusOK, models.AuthResponse{OK: true})
}

// Me handles GET /auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := auth.UserFromRequest(r)
	if err != nil {
		if !errors.Is(err, auth.ErrNoSession) {
			slog.Warn("ignoring bad session cookie", "error", err)
		}
		user = nil
	}
	middleware.JSONResponse(w, http.StatusOK, models.MeResponse{User: user})
}

// parseOptionalBody decodes JSON when a body is present
func parseOptionalBody(r *http.Request, v any) error {
	err := middleware.ParseJSONBody(r, v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
