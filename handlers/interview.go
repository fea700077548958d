// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/mock-me/middleware"
	"github.com/danielhkuo/mock-me/models"
	"github.com/danielhkuo/mock-me/questionbank"
	"github.com/danielhkuo/mock-me/scoring"
	"github.com/danielhkuo/mock-me/store"
)

// MaxUploadSize caps the resume file
const MaxUploadSize = 10 << 20

// multipart framing and the demo_id field
const uploadOverhead = 1 << 20

// errResumeTooLarge is only raised for multipart uploads; JSON bodies carry
// no resume and fall back to the default set like any unreadable body
var errResumeTooLarge = errors.New("resume too large")

// SubmissionStore persists submitted answers
type SubmissionStore interface {
	Save(ctx context.Context, answers models.AnswersMap, analysis models.AnalyzeResponse) (models.Submission, error)
	Get(ctx context.Context, id string) (models.Submission, error)
}

type InterviewHandler struct {
	bank *questionbank.Bank
	subs SubmissionStore
}

// NewInterviewHandler serves the interview API. subs may be nil, in which
// case submissions are acknowledged but not kept.
func NewInterviewHandler(bank *questionbank.Bank, subs SubmissionStore) *InterviewHandler {
	return &InterviewHandler{bank: bank, subs: subs}
}

// ListDemos handles GET /api/demos/
func (h *InterviewHandler) ListDemos(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, h.bank.Demos())
}

// UploadResume handles POST /api/upload-resume/
// The resume itself is not parsed; demo_id picks the question set and any
// unreadable body falls back to the default set.
func (h *InterviewHandler) UploadResume(w http.ResponseWriter, r *http.Request) {
	demoID, err := h.readDemoID(w, r)
	if errors.Is(err, errResumeTooLarge) {
		middleware.ErrorResponse(w, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("Resume exceeds %s", humanize.IBytes(MaxUploadSize)))
		return
	}
	if err != nil {
		slog.Warn("unreadable upload body, using default questions", "error", err)
		demoID = ""
	}

	questions := h.bank.Questions(demoID)
	slog.Info("questions issued", "demo_id", demoID, "count", len(questions))

	middleware.JSONResponse(w, http.StatusOK, models.UploadResumeResponse{Questions: questions})
}

func (h *InterviewHandler) readDemoID(w http.ResponseWriter, r *http.Request) (string, error) {
	contentType := r.Header.Get("Content-Type")

	switch {
	case strings.Contains(contentType, "multipart/form-data"):
		r.Body = http.MaxBytesReader(w, r.Body, MaxUploadSize+uploadOverhead)
		if err := r.ParseMultipartForm(uploadOverhead); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				return "", fmt.Errorf("%w: %v", errResumeTooLarge, err)
			}
			return "", err
		}
		defer r.MultipartForm.RemoveAll()

		if file, hdr, err := r.FormFile("resume"); err == nil {
			file.Close()
			if hdr.Size > MaxUploadSize {
				return "", errResumeTooLarge
			}
			slog.Info("resume received",
				"filename", hdr.Filename,
				"size", humanize.Bytes(uint64(hdr.Size)),
			)
		}
		return r.FormValue("demo_id"), nil

	case strings.Contains(contentType, "application/json"):
		var req models.UploadResumeRequest
		if err := middleware.ParseJSONBody(r, &req); err != nil {
			return "", err
		}
		return demoIDString(req.DemoID), nil
	}

	return "", nil
}

// demoIDString accepts demo_id as a JSON number or string
func demoIDString(v any) string {
	switch id := v.(type) {
	case nil:
		return ""
	case string:
		return id
	case float64:
		return fmt.Sprint(id)
	default:
		return ""
	}
}

// SubmitAnswers handles POST /api/submit-answers/
func (h *InterviewHandler) SubmitAnswers(w http.ResponseWriter, r *http.Request) {
	var answers models.AnswersMap
	if err := middleware.ParseJSONBody(r, &answers); err != nil {
		// Submission is best-effort for the client; acknowledge without keeping it
		slog.Warn("unreadable submission", "error", err)
		middleware.JSONResponse(w, http.StatusOK, models.SubmitAnswersResponse{OK: true})
		return
	}

	if h.subs == nil {
		slog.Info("answers received", "count", len(answers))
		middleware.JSONResponse(w, http.StatusOK, models.SubmitAnswersResponse{OK: true})
		return
	}

	sub, err := h.subs.Save(r.Context(), answers, scoring.Analyze(answers))
	if err != nil {
		slog.Error("failed to save submission", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save submission")
		return
	}

	slog.Info("submission saved", "submission_id", sub.ID, "count", len(answers))
	middleware.JSONResponse(w, http.StatusOK, models.SubmitAnswersResponse{
		OK:           true,
		SubmissionID: sub.ID,
	})
}

// GetSubmission handles GET /api/submissions/{id}
func (h *InterviewHandler) GetSubmission(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if h.subs == nil || id == "" {
		middleware.NotFound(w, r)
		return
	}

	sub, err := h.subs.Get(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		middleware.NotFound(w, r)
		return
	}
	if err != nil {
		slog.Error("failed to load submission", "submission_id", id, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, sub)
}

// analyzeBody accepts any object keys, numeric or not
type analyzeBody struct {
	Answers map[string]models.AnswerRecord `json:"answers"`
}

// Analyze handles POST /api/analyze/
func (h *InterviewHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeBody
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.JSONResponse(w, http.StatusBadRequest, models.ErrorResponse{Error: "Bad request"})
		return
	}

	middleware.JSONResponse(w, http.StatusOK, scoring.AnalyzeKeyed(req.Answers))
}
