// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers implements the HTTP handlers of the mock-me API.

# Interview Endpoints (InterviewHandler)

	GET  /api/demos/            List demo question sets
	POST /api/upload-resume/    Pick a question set (multipart or JSON demo_id)
	POST /api/submit-answers/   Acknowledge, and keep when a database is set
	GET  /api/submissions/{id}  Read back a kept submission with its analysis
	POST /api/analyze/          Score answers heuristically

Unknown or unreadable demo IDs get the default set. Resumes are logged by
name and size only.

# Auth Endpoints (AuthHandler)

	POST /auth/signup   Echo a demo user
	POST /auth/login    Issue mm_session and mm_csrf cookies
	POST /auth/logout   Expire both cookies
	GET  /auth/me       Decode mm_session, {"user": null} when absent

The session cookie is base64 JSON without a signature. It identifies a demo
user for display only.

# Errors

Errors use the shape from middleware.ErrorResponse:

	{"error": "Bad Request", "message": "Invalid JSON"}

Analyze answers a malformed body with {"error": "Bad request"}.
*/
package handlers
