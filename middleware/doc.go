// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs one line per request (request_id, method, path, client, status,
duration_ms). The X-Request-ID header is echoed back, or a UUID is minted
when the caller sent none.

# Panic Recovery

Recover turns a panicking handler into a 500 JSON error and logs the stack:

	handler := middleware.Recover(mux)

# CORS Middleware

Enable cross-origin requests for the browser frontend:

	server := http.Server{
		Handler: middleware.CORS(cfg.CORSOrigin, mux),
	}

Allows GET, POST and OPTIONS with the Content-Type and X-Request-ID headers. An empty origin
answers "*" without credentials; a configured origin also gets
Access-Control-Allow-Credentials and Vary: Origin.
Preflight requests are answered with 204 and never reach the mux.

# Rate Limiting

Each client IP gets its own token bucket:

	rl := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateBurst, cfg.TrustProxy)
	mux.HandleFunc("POST /api/analyze/{$}", middleware.WithLogging(rl.Limit(h.Analyze)))

A rate of zero disables limiting. Buckets are keyed by the socket address;
forwarding headers are only honored when trustProxy is set.

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")
	middleware.NotFound(w, r)

Parse JSON request bodies (capped at MaxJSONBody):

	var req models.AnalyzeRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Bad request")
		return
	}

# Client IP Extraction

Get the original client IP (handles X-Forwarded-For, X-Real-IP):

	ip := middleware.GetClientIP(r)

Used for request logs, and as the rate limiter key behind a trusted proxy.
RemoteIP ignores forwarding headers.
*/
package middleware
