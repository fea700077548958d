// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielhkuo/mock-me/auth"
	"github.com/danielhkuo/mock-me/models"
	"github.com/danielhkuo/mock-me/testutil"
)

func findCookie(cookies []*http.Cookie, name string) *http.Cookie {
	for _, c := range cookies {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestSignup(t *testing.T) {
	h := NewAuthHandler()

	req := testutil.MakeRequest("POST", "/auth/signup", models.SignupRequest{
		Email:    "new@example.com",
		Password: "secret",
		Role:     "candidate",
	}, nil)
	w := httptest.NewRecorder()
	h.Signup(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	var resp models.AuthResponse
	testutil.AssertJSON(t, w, &resp)

	if !resp.OK || resp.User == nil {
		t.Fatalf("Expected ok with user, got %+v", resp)
	}
	if resp.User.Email != "new@example.com" || resp.User.Role != "candidate" {
		t.Errorf("Unexpected user: %+v", resp.User)
	}
	if len(w.Result().Cookies()) != 0 {
		t.Error("Signup must not set cookies")
	}
}

func TestLogin_SetsCookies(t *testing.T) {
	h := NewAuthHandler()

	req := testutil.MakeRequest("POST", "/auth/login", models.LoginRequest{Email: "a@example.com", Password: "pw"}, nil)
	w := httptest.NewRecorder()
	h.Login(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	var resp models.AuthResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.User == nil || resp.User.Email != "a@example.com" {
		t.Fatalf("Unexpected user: %+v", resp.User)
	}

	cookies := w.Result().Cookies()
	session := findCookie(cookies, auth.SessionCookie)
	if session == nil {
		t.Fatal("Expected mm_session cookie")
	}
	if !session.HttpOnly || !session.Secure || session.SameSite != http.SameSiteLaxMode {
		t.Errorf("Session cookie flags wrong: %+v", session)
	}
	if session.MaxAge != 3600 || session.Path != "/" {
		t.Errorf("Expected Max-Age 3600 and Path /, got %d %s", session.MaxAge, session.Path)
	}

	decoded, err := auth.DecodeSession(session.Value)
	if err != nil {
		t.Fatalf("Failed to decode session: %v", err)
	}
	if decoded.ID != resp.User.ID {
		t.Errorf("Cookie user %s does not match response user %s", decoded.ID, resp.User.ID)
	}

	csrf := findCookie(cookies, auth.CSRFCookie)
	if csrf == nil || len(csrf.Value) != 48 {
		t.Fatalf("Expected 48 hex char mm_csrf cookie, got %+v", csrf)
	}
	if csrf.HttpOnly {
		t.Error("CSRF cookie must be readable by scripts")
	}
}

func TestLogin_EmptyBodyUsesDemoUser(t *testing.T) {
	h := NewAuthHandler()

	w := httptest.NewRecorder()
	h.Login(w, httptest.NewRequest("POST", "/auth/login", nil))

	testutil.AssertStatus(t, w, http.StatusOK)
	var resp models.AuthResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.User == nil || resp.User.Email != auth.DemoEmail {
		t.Errorf("Expected demo user, got %+v", resp.User)
	}
}

func TestLogin_InvalidJSON(t *testing.T) {
	h := NewAuthHandler()

	w := httptest.NewRecorder()
	h.Login(w, httptest.NewRequest("POST", "/auth/login", strings.NewReader("{bad")))

	testutil.AssertStatus(t, w, http.StatusBadRequest)
}

func TestLogout_ClearsCookies(t *testing.T) {
	h := NewAuthHandler()

	w := httptest.NewRecorder()
	h.Logout(w, httptest.NewRequest("POST", "/auth/logout", nil))

	testutil.AssertStatus(t, w, http.StatusOK)
	for _, name := range []string{auth.SessionCookie, auth.CSRFCookie} {
		c := findCookie(w.Result().Cookies(), name)
		if c == nil {
			t.Fatalf("Expected %s to be cleared", name)
		}
		if c.MaxAge >= 0 || c.Value != "" {
			t.Errorf("Expected %s expired, got %+v", name, c)
		}
	}
	if !strings.Contains(strings.Join(w.Header().Values("Set-Cookie"), ";"), "Max-Age=0") {
		t.Error("Expected Max-Age=0 on the wire")
	}
}

func TestMe(t *testing.T) {
	h := NewAuthHandler()
	user := auth.DemoUser("me@example.com", "")
	value, err := auth.EncodeSession(user)
	if err != nil {
		t.Fatalf("Failed to encode session: %v", err)
	}

	testCases := []struct {
		name     string
		cookie   string
		expected string
	}{
		{"no cookie", "", "null"},
		{"valid cookie", value, user.ID},
		{"not base64", "%%%", "null"},
		{"base64 but not json", "bm90IGpzb24=", "null"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/auth/me", nil)
			if tc.cookie != "" {
				req.AddCookie(&http.Cookie{Name: auth.SessionCookie, Value: tc.cookie})
			}
			w := httptest.NewRecorder()
			h.Me(w, req)

			testutil.AssertStatus(t, w, http.StatusOK)
			var resp models.MeResponse
			testutil.AssertJSON(t, w, &resp)

			got := "null"
			if resp.User != nil {
				got = resp.User.ID
			}
			if got != tc.expected {
				t.Errorf("Expected user %s, got %s", tc.expected, got)
			}
		})
	}
}
