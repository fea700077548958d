// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router configures HTTP routes for the mock-me API.

# Route Table

	GET  /health                  Health check ("OK")
	GET  /api/demos/              List demo question sets
	POST /api/upload-resume/      Choose a question set          (rate limited)
	POST /api/submit-answers/     Submit answers                 (rate limited)
	GET  /api/submissions/{id}    Read a persisted submission
	POST /api/analyze/            Score answers                  (rate limited)
	POST /auth/signup             Demo signup                    (rate limited)
	POST /auth/login              Demo login, sets cookies       (rate limited)
	POST /auth/logout             Clear cookies
	GET  /auth/me                 Current demo user or null

Any other method or path answers 404 {"error":"Not found"}.

# Usage

	mux := router.NewRouter(dbConn, cfg, bank)
	handler := middleware.Recover(middleware.CORS(cfg.CORSOrigin, mux))

Pass a nil dbConn to run without persistence.
*/
package router
