// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Mock Me API server.

Mock Me is a mock interview practice tool. The API hands out canned
question sets, scores answers with a length and keyword heuristic, and
issues demo-only session cookies.

# Starting the Server

With no configuration the server listens on 3318 and keeps nothing:

	go run .

Persist submissions in sqlite:

	go run . -d mock-me.db

Or in PostgreSQL:

	DATABASE_TYPE=postgres DATABASE_URL=postgres://... go run .

# Configuration

Every flag has an environment fallback, and a .env file is read first:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_URL (-d): Database location, empty disables persistence
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - CORS_ORIGIN (--origin): Origin trusted with credentials, empty allows "*"
  - QUESTION_BANK_FILE (--questions): YAML question bank override
  - RATE_LIMIT (--rate): Requests per second per client on POST routes (default: 5)
  - RATE_BURST (--burst): Burst size (default: 10)

# Architecture

  - handlers: HTTP request handlers (interview, auth)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, recovery, rate limiting, JSON helpers
  - models: Request/response types
  - questionbank: Demo catalogue and question sets
  - scoring: Heuristic answer scoring
  - store, db: Submission persistence and schema
  - auth: Demo session cookies
  - cliparse: Configuration parsing

The interview client lives in cmd/practice, built on the client,
localstore and session packages.
*/
package main
