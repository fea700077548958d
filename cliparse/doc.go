// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all server settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

ParsePracticeFlags does the same for the terminal practice client.

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: submission store DSN (optional, empty disables persistence)
  - DatabaseType: sqlite or postgres (default: sqlite)
  - CORSOrigin: fixed Access-Control-Allow-Origin (default: "*" without credentials)
  - QuestionBankFile: YAML question bank (default: embedded)
  - RateLimit, RateBurst: per-client token bucket (default: 5/s, burst 10; rate 0 disables)
  - TrustProxy: key rate limits on forwarding headers (default: false)

# CLI Flags

	-env        .env file to load (default: .env, missing file ignored)
	-p          Server port
	-d          Database URL
	-t          Database type
	-origin     CORS origin
	-questions  Question bank file
	-rate       Requests per second per client
	-burst      Burst size per client
	-trust-proxy Honor X-Forwarded-For / X-Real-IP

# Environment Variables

Flags fall back to environment variables:

	PORT               → -p
	DATABASE_URL       → -d
	DATABASE_TYPE      → -t
	CORS_ORIGIN        → -origin
	QUESTION_BANK_FILE → -questions
	RATE_LIMIT         → -rate
	RATE_BURST         → -burst
	TRUST_PROXY        → -trust-proxy

CLI flags take precedence over environment variables, and environment
variables take precedence over the .env file.

The practice client reads MOCKME_API_BASE_URL (-api), MOCKME_STATE_FILE
(-state), MOCKME_EMAIL (-email) and MOCKME_PASSWORD (-password). It also
takes -role (user or recruiter), -recruiter-code, -signup and -logout.
ValidateLogin applies the sign-in rules: email and password are required,
and recruiters need a code.
*/
package cliparse
