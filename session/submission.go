// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/danielhkuo/mock-me/client"
	"github.com/danielhkuo/mock-me/models"
)

// State of a Submission
type State int

const (
	Collecting State = iota
	Submitted
)

func (s State) String() string {
	if s == Submitted {
		return "submitted"
	}
	return "collecting"
}

var ErrAlreadySubmitted = errors.New("answers already submitted")

// AnswersSink persists the final answers for the report step
type AnswersSink interface {
	SetAnswers(models.AnswersMap) error
}

// AnswersSubmitter sends the answers to the API
type AnswersSubmitter interface {
	SubmitAnswers(ctx context.Context, answers models.AnswersMap) (models.SubmitAnswersResponse, error)
}

// Outcome of a submission. The report step always follows; Remote holds
// the network error, if any, so the caller can show it.
type Outcome struct {
	SubmissionID string
	Remote       error
}

// Submission moves from Collecting to Submitted exactly once
type Submission struct {
	mu    sync.Mutex
	state State
	sink  AnswersSink
	api   AnswersSubmitter
}

// NewSubmission builds a submission; api may be nil for offline use
func NewSubmission(sink AnswersSink, api AnswersSubmitter) *Submission {
	return &Submission{sink: sink, api: api}
}

func (s *Submission) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Submit persists the answers locally, then makes one network attempt.
// A local write failure leaves the submission collecting so it can be retried.
func (s *Submission) Submit(ctx context.Context, answers models.AnswersMap) (Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == Submitted {
		return Outcome{}, ErrAlreadySubmitted
	}

	if err := s.sink.SetAnswers(answers); err != nil {
		return Outcome{}, fmt.Errorf("failed to save answers: %w", err)
	}
	s.state = Submitted

	var out Outcome
	if s.api == nil {
		return out, nil
	}

	resp, err := s.api.SubmitAnswers(ctx, answers)
	switch {
	case errors.Is(err, client.ErrNotConfigured):
	case err != nil:
		slog.Warn("answer submission failed", "error", err)
		out.Remote = err
	default:
		out.SubmissionID = resp.SubmissionID
	}
	return out, nil
}
