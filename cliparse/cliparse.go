// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Database types
const (
	DatabaseSQLite   = "sqlite"
	DatabasePostgres = "postgres"
)

type Config struct {
	Port             int
	DatabaseURL      string // empty disables submission persistence
	DatabaseType     string
	CORSOrigin       string // empty allows any origin without credentials
	QuestionBankFile string // empty uses the embedded bank
	RateLimit        float64 // requests per second per client; 0 disables limiting
	RateBurst        int
	TrustProxy       bool // key rate limits on X-Forwarded-For / X-Real-IP
}

// Practice client roles
const (
	RoleUser      = "user"
	RoleRecruiter = "recruiter"
)

// PracticeConfig configures the terminal practice client
type PracticeConfig struct {
	APIBaseURL string // empty runs fully offline
	StateFile  string
	DemoID     string
	ResumePath string

	// Sign-in; leaving email and password empty practices as a guest
	Email         string
	Password      string
	Role          string
	RecruiterCode string
	Signup        bool
	Logout        bool
}

// ParseFlags validates flags and sets port number
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var envFile string

	fs := flag.NewFlagSet("mock-me", flag.ContinueOnError)

	fs.StringVar(&envFile, "env", ".env", "Path to .env file (optional)")

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.CORSOrigin, "origin", "", "Allowed CORS origin with credentials (default: * without credentials)")

	// Persistence
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL (optional)")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")

	fs.StringVar(&cfg.QuestionBankFile, "questions", "", "Question bank YAML file")
	fs.Float64Var(&cfg.RateLimit, "rate", 0, "Requests per second per client")
	fs.IntVar(&cfg.RateBurst, "burst", 0, "Burst size per client")
	fs.BoolVar(&cfg.TrustProxy, "trust-proxy", false, "Use forwarding headers for the client IP")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	explicit := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

	// .env never overrides variables already set
	loadEnvFile(envFile)

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3318 // default
		}
	}
	if cfg.Port < 0 || cfg.Port > 65535 {
		return Config{}, fmt.Errorf("port %d out of range", cfg.Port)
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = DatabaseSQLite
		}
	}
	if cfg.DatabaseType != DatabaseSQLite && cfg.DatabaseType != DatabasePostgres {
		return Config{}, fmt.Errorf("unsupported database type %q (use sqlite or postgres)", cfg.DatabaseType)
	}

	if cfg.CORSOrigin == "" {
		cfg.CORSOrigin = os.Getenv("CORS_ORIGIN")
	}
	if cfg.QuestionBankFile == "" {
		cfg.QuestionBankFile = os.Getenv("QUESTION_BANK_FILE")
	}

	if !explicit["rate"] {
		if s := os.Getenv("RATE_LIMIT"); s != "" {
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return Config{}, errors.New("invalid RATE_LIMIT env variable")
			}
			cfg.RateLimit = v
		} else {
			cfg.RateLimit = 5
		}
	}
	if !explicit["burst"] {
		if s := os.Getenv("RATE_BURST"); s != "" {
			v, err := strconv.Atoi(s)
			if err != nil {
				return Config{}, errors.New("invalid RATE_BURST env variable")
			}
			cfg.RateBurst = v
		} else {
			cfg.RateBurst = 10
		}
	}
	if cfg.RateLimit < 0 || cfg.RateBurst < 0 {
		return Config{}, errors.New("rate limit and burst must not be negative")
	}

	if !explicit["trust-proxy"] {
		if s := os.Getenv("TRUST_PROXY"); s != "" {
			v, err := strconv.ParseBool(s)
			if err != nil {
				return Config{}, errors.New("invalid TRUST_PROXY env variable")
			}
			cfg.TrustProxy = v
		}
	}

	return cfg, nil
}

// ParsePracticeFlags reads the practice client settings
func ParsePracticeFlags(args []string) (PracticeConfig, error) {
	var cfg PracticeConfig
	var envFile string

	fs := flag.NewFlagSet("practice", flag.ContinueOnError)
	fs.StringVar(&envFile, "env", ".env", "Path to .env file (optional)")
	fs.StringVar(&cfg.APIBaseURL, "api", "", "API base URL (empty: offline)")
	fs.StringVar(&cfg.StateFile, "state", "", "Local state file")
	fs.StringVar(&cfg.DemoID, "demo", "1", "Demo ID")
	fs.StringVar(&cfg.ResumePath, "resume", "", "Resume file to upload")
	fs.StringVar(&cfg.Email, "email", "", "Account email")
	fs.StringVar(&cfg.Password, "password", "", "Account password")
	fs.StringVar(&cfg.Role, "role", RoleUser, "Account role (user or recruiter)")
	fs.StringVar(&cfg.RecruiterCode, "recruiter-code", "", "Recruiter code (recruiter role only)")
	fs.BoolVar(&cfg.Signup, "signup", false, "Create the account before signing in")
	fs.BoolVar(&cfg.Logout, "logout", false, "Sign out and exit")

	if err := fs.Parse(args); err != nil {
		return PracticeConfig{}, err
	}

	loadEnvFile(envFile)

	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = os.Getenv("MOCKME_API_BASE_URL")
	}
	if cfg.StateFile == "" {
		cfg.StateFile = os.Getenv("MOCKME_STATE_FILE")
		if cfg.StateFile == "" {
			cfg.StateFile = "mock-me-state.json"
		}
	}
	if cfg.Email == "" {
		cfg.Email = os.Getenv("MOCKME_EMAIL")
	}
	if cfg.Password == "" {
		cfg.Password = os.Getenv("MOCKME_PASSWORD")
	}
	if cfg.Role != RoleUser && cfg.Role != RoleRecruiter {
		return PracticeConfig{}, fmt.Errorf("unknown role %q (use user or recruiter)", cfg.Role)
	}

	return cfg, nil
}

// Sign-in validation errors, worded for the terminal
var (
	ErrMissingCredentials   = errors.New("please enter email and password")
	ErrMissingRecruiterCode = errors.New("please enter your recruiter code")
)

// Guest reports whether no sign-in was requested
func (c PracticeConfig) Guest() bool {
	return strings.TrimSpace(c.Email) == "" && strings.TrimSpace(c.Password) == ""
}

// ValidateLogin checks the sign-in fields: email and password are both
// required, and recruiters also need a code
func (c PracticeConfig) ValidateLogin() error {
	if strings.TrimSpace(c.Email) == "" || strings.TrimSpace(c.Password) == "" {
		return ErrMissingCredentials
	}
	if c.Role == RoleRecruiter && strings.TrimSpace(c.RecruiterCode) == "" {
		return ErrMissingRecruiterCode
	}
	return nil
}

func loadEnvFile(path string) {
	if path == "" {
		return
	}
	if _, err := os.Stat(path); err != nil {
		return
	}
	if err := godotenv.Load(path); err != nil {
		slog.Warn("failed to load env file", "file", path, "error", err)
	}
}
