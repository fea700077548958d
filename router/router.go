// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/mock-me/cliparse"
	"github.com/danielhkuo/mock-me/handlers"
	"github.com/danielhkuo/mock-me/middleware"
	"github.com/danielhkuo/mock-me/questionbank"
	"github.com/danielhkuo/mock-me/store"
)

// NewRouter builds the route table. db may be nil, which disables
// submission persistence.
func NewRouter(db *sql.DB, cfg cliparse.Config, bank *questionbank.Bank) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	var subs handlers.SubmissionStore
	if db != nil {
		subs = store.NewSubmissionStore(db, cfg.DatabaseType == cliparse.DatabasePostgres)
	}
	interviewHandler := handlers.NewInterviewHandler(bank, subs)
	authHandler := handlers.NewAuthHandler()
	limiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateBurst, cfg.TrustProxy)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Interview API
	mux.HandleFunc("GET /api/demos/{$}", middleware.WithLogging(interviewHandler.ListDemos))
	mux.HandleFunc("POST /api/upload-resume/{$}", middleware.WithLogging(limiter.Limit(interviewHandler.UploadResume)))
	mux.HandleFunc("POST /api/submit-answers/{$}", middleware.WithLogging(limiter.Limit(interviewHandler.SubmitAnswers)))
	mux.HandleFunc("GET /api/submissions/{id}", middleware.WithLogging(interviewHandler.GetSubmission))
	mux.HandleFunc("POST /api/analyze/{$}", middleware.WithLogging(limiter.Limit(interviewHandler.Analyze)))

	// Demo auth
	mux.HandleFunc("POST /auth/signup", middleware.WithLogging(limiter.Limit(authHandler.Signup)))
	mux.HandleFunc("POST /auth/login", middleware.WithLogging(limiter.Limit(authHandler.Login)))
	mux.HandleFunc("POST /auth/logout", middleware.WithLogging(authHandler.Logout))
	mux.HandleFunc("GET /auth/me", middleware.WithLogging(authHandler.Me))

	// Everything else, including known paths with the wrong method
	mux.HandleFunc("/", middleware.NotFound)

	return mux
}
