// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides ID generation and the demo session cookie.

# Demo Sessions

Login issues two cookies:

	auth.SetSessionCookies(w, auth.DemoUser(email, role))

  - mm_session: base64 of the user JSON (HttpOnly, Secure, SameSite=Lax, 1 hour)
  - mm_csrf: 24 random bytes, hex encoded, readable by scripts

The session value is NOT signed. Anyone can decode or forge it, so it must
never gate access to real data. It exists so the front-end can show who
is "signed in" during a demo.

Reading it back:

	user, err := auth.UserFromRequest(r) // ErrNoSession, ErrInvalidSession

Logout expires both cookies:

	auth.ClearSessionCookies(w)

# User IDs

DemoUser derives a stable "u_<uuid>" ID from the lowercased email using a
name-based (SHA-1) UUID, so repeat logins with the same email agree.

# ID Generation

Random hex IDs:

	id, err := auth.GenerateID(16)  // 32 hex characters
*/
package auth
