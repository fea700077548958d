// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/mock-me/models"
)

// DefaultTimeout bounds every API call
const DefaultTimeout = 12 * time.Second

// maxResponseBody caps decoded responses
const maxResponseBody = 4 << 20

// RequestIDHeader carries a per-call correlation ID
const RequestIDHeader = "X-Request-ID"

var ErrNotConfigured = errors.New("API base URL not configured")

// NetworkError means the request never produced an HTTP response
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: network error: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// TimeoutError means the call exceeded its deadline
type TimeoutError struct {
	Op      string
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s: timed out after %s", e.Op, e.Timeout)
}

// StatusError is a response with a non-2xx status
type StatusError struct {
	Op         string
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: status %d: %s", e.Op, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: status %d", e.Op, e.StatusCode)
}

// Client calls the mock-me API
type Client struct {
	baseURL string
	timeout time.Duration
	http    *http.Client
}

// Option configures a Client
type Option func(*Client)

// WithTimeout overrides DefaultTimeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithHTTPClient replaces the underlying HTTP client. Its Timeout is
// overwritten by the client's own, and it is given a cookie jar when it has
// none so login sessions persist.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// New creates a client for baseURL. An empty baseURL is allowed; every call
// then fails with ErrNotConfigured.
func New(baseURL string, opts ...Option) *Client {
	jar, _ := cookiejar.New(nil)
	c := &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		timeout: DefaultTimeout,
		http:    &http.Client{Jar: jar},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http.Jar == nil {
		c.http.Jar = jar
	}
	c.http.Timeout = c.timeout
	return c
}

// Configured reports whether a base URL is set
func (c *Client) Configured() bool {
	return c.baseURL != ""
}

// Demos lists the selectable demo sets
func (c *Client) Demos(ctx context.Context) ([]models.Demo, error) {
	var demos []models.Demo
	if err := c.doJSON(ctx, "demos", http.MethodGet, "/api/demos/", nil, &demos); err != nil {
		return nil, err
	}
	return demos, nil
}

// UploadResume sends the resume as multipart form data and returns the
// question set chosen for demoID. resume may be nil.
func (c *Client) UploadResume(ctx context.Context, demoID, filename string, resume io.Reader) ([]models.Question, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := mw.WriteField("demo_id", demoID); err != nil {
		return nil, fmt.Errorf("upload-resume: failed to build form: %w", err)
	}
	if resume != nil {
		if filename == "" {
			filename = "resume"
		}
		part, err := mw.CreateFormFile("resume", filename)
		if err != nil {
			return nil, fmt.Errorf("upload-resume: failed to build form: %w", err)
		}
		if _, err := io.Copy(part, resume); err != nil {
			return nil, fmt.Errorf("upload-resume: failed to read resume: %w", err)
		}
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("upload-resume: failed to build form: %w", err)
	}

	var resp models.UploadResumeResponse
	err := c.do(ctx, "upload-resume", http.MethodPost, "/api/upload-resume/", mw.FormDataContentType(), &buf, &resp)
	if err != nil {
		return nil, err
	}
	return resp.Questions, nil
}

// SubmitAnswers posts the answers map; the server may return a submission ID
func (c *Client) SubmitAnswers(ctx context.Context, answers models.AnswersMap) (models.SubmitAnswersResponse, error) {
	var resp models.SubmitAnswersResponse
	err := c.doJSON(ctx, "submit-answers", http.MethodPost, "/api/submit-answers/", answers, &resp)
	return resp, err
}

// Analyze asks the server to score the answers
func (c *Client) Analyze(ctx context.Context, answers models.AnswersMap) (models.AnalyzeResponse, error) {
	var resp models.AnalyzeResponse
	err := c.doJSON(ctx, "analyze", http.MethodPost, "/api/analyze/", models.AnalyzeRequest{Answers: answers}, &resp)
	return resp, err
}

// Signup registers a demo account
func (c *Client) Signup(ctx context.Context, req models.SignupRequest) (*models.User, error) {
	var resp models.AuthResponse
	if err := c.doJSON(ctx, "signup", http.MethodPost, "/auth/signup", req, &resp); err != nil {
		return nil, err
	}
	return resp.User, nil
}

// Login signs in; the session cookie is kept in the client's jar
func (c *Client) Login(ctx context.Context, email, password string) (*models.User, error) {
	var resp models.AuthResponse
	req := models.LoginRequest{Email: email, Password: password}
	if err := c.doJSON(ctx, "login", http.MethodPost, "/auth/login", req, &resp); err != nil {
		return nil, err
	}
	return resp.User, nil
}

// Logout clears the session cookies
func (c *Client) Logout(ctx context.Context) error {
	var resp models.AuthResponse
	return c.doJSON(ctx, "logout", http.MethodPost, "/auth/logout", nil, &resp)
}

// Me returns the signed-in user, nil when there is none
func (c *Client) Me(ctx context.Context) (*models.User, error) {
	var resp models.MeResponse
	if err := c.doJSON(ctx, "me", http.MethodGet, "/auth/me", nil, &resp); err != nil {
		return nil, err
	}
	return resp.User, nil
}

func (c *Client) doJSON(ctx context.Context, op, method, path string, in, out any) error {
	var body io.Reader
	contentType := ""
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%s: failed to encode request: %w", op, err)
		}
		body = bytes.NewReader(data)
		contentType = "application/json"
	}
	return c.do(ctx, op, method, path, contentType, body, out)
}

func (c *Client) do(ctx context.Context, op, method, path, contentType string, body io.Reader, out any) error {
	if !c.Configured() {
		return ErrNotConfigured
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("%s: failed to build request: %w", op, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	requestID := uuid.NewString()
	req.Header.Set(RequestIDHeader, requestID)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		slog.Debug("api call failed", "op", op, "request_id", requestID, "error", err)
		if isTimeout(err) {
			return &TimeoutError{Op: op, Timeout: c.timeout}
		}
		return &NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		if isTimeout(err) {
			return &TimeoutError{Op: op, Timeout: c.timeout}
		}
		return &NetworkError{Op: op, Err: err}
	}

	slog.Debug("api call completed",
		"op", op,
		"request_id", requestID,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		se := &StatusError{Op: op, StatusCode: resp.StatusCode}
		var apiErr models.ErrorResponse
		if json.Unmarshal(data, &apiErr) == nil {
			se.Message = apiErr.Error
			if apiErr.Message != "" {
				se.Message = apiErr.Message
			}
		}
		return se
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%s: failed to decode response: %w", op, err)
	}
	return nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
