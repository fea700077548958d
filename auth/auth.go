// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/danielhkuo/mock-me/models"
)

// Cookie names
const (
	SessionCookie = "mm_session"
	CSRFCookie    = "mm_csrf"
)

// SessionMaxAge is the cookie lifetime in seconds
const SessionMaxAge = 3600

// DemoEmail is used when a login carries no email
const DemoEmail = "demo@example.com"

var (
	ErrNoSession      = errors.New("no session cookie")
	ErrInvalidSession = errors.New("invalid session cookie")
)

// demoNamespace scopes the name-based user IDs
var demoNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://mock-me.local/users"))

// GenerateID creates a random hex ID of the specified byte length
func GenerateID(byteLen int) (string, error) {
	b := make([]byte, byteLen)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate random ID: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// GenerateCSRFToken creates the 24-byte hex token paired with a session
func GenerateCSRFToken() (string, error) {
	return GenerateID(24)
}

// DemoUser builds the placeholder user for an email.
// The ID is derived from the lowercased email so repeat logins agree.
func DemoUser(email, role string) models.User {
	email = strings.TrimSpace(email)
	if email == "" {
		email = DemoEmail
	}
	id := uuid.NewSHA1(demoNamespace, []byte(strings.ToLower(email)))
	return models.User{
		ID:    "u_" + id.String(),
		Email: email,
		Role:  role,
	}
}

// EncodeSession serializes a user into the cookie value.
// This is plain base64 JSON with no signature: anyone can forge it.
func EncodeSession(user models.User) (string, error) {
	data, err := json.Marshal(user)
	if err != nil {
		return "", fmt.Errorf("failed to encode session: %w", err)
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// DecodeSession reverses EncodeSession
func DecodeSession(raw string) (*models.User, error) {
	if raw == "" {
		return nil, ErrNoSession
	}
	data, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}
	var user models.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}
	return &user, nil
}

// UserFromRequest reads the session cookie, if any
func UserFromRequest(r *http.Request) (*models.User, error) {
	c, err := r.Cookie(SessionCookie)
	if err != nil {
		return nil, ErrNoSession
	}
	return DecodeSession(c.Value)
}

// SetSessionCookies issues the session and CSRF cookies for a user
func SetSessionCookies(w http.ResponseWriter, user models.User) error {
	value, err := EncodeSession(user)
	if err != nil {
		return err
	}
	csrf, err := GenerateCSRFToken()
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    value,
		Path:     "/",
		MaxAge:   SessionMaxAge,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     CSRFCookie,
		Value:    csrf,
		Path:     "/",
		MaxAge:   SessionMaxAge,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// ClearSessionCookies expires both cookies
func ClearSessionCookies(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     CSRFCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})
}
