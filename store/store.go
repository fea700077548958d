// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/mock-me/models"
)

// SchemaVersion is written with every submission
const SchemaVersion = 1

var (
	ErrNotFound           = errors.New("submission not found")
	ErrUnsupportedVersion = errors.New("unsupported submission schema version")
)

// SubmissionStore persists submitted interviews
type SubmissionStore struct {
	db       *sql.DB
	postgres bool
}

// NewSubmissionStore wraps an open database; postgres selects $n placeholders
func NewSubmissionStore(db *sql.DB, postgres bool) *SubmissionStore {
	return &SubmissionStore{db: db, postgres: postgres}
}

// Save stores answers with their analysis under a fresh ID
func (s *SubmissionStore) Save(ctx context.Context, answers models.AnswersMap, analysis models.AnalyzeResponse) (models.Submission, error) {
	if answers == nil {
		answers = models.AnswersMap{}
	}

	answersJSON, err := json.Marshal(answers)
	if err != nil {
		return models.Submission{}, fmt.Errorf("failed to encode answers: %w", err)
	}
	analysisJSON, err := json.Marshal(analysis)
	if err != nil {
		return models.Submission{}, fmt.Errorf("failed to encode analysis: %w", err)
	}

	sub := models.Submission{
		ID:          uuid.NewString(),
		Answers:     answers,
		Analysis:    analysis,
		SubmittedAt: time.Now().UTC(),
	}

	_, err = s.db.ExecContext(ctx, s.rebind(`
		INSERT INTO submission (id, schema_version, answers, analysis, answer_count, submitted_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`), sub.ID, SchemaVersion, string(answersJSON), string(analysisJSON), len(answers), sub.SubmittedAt.Format(time.RFC3339Nano))
	if err != nil {
		return models.Submission{}, fmt.Errorf("failed to insert submission: %w", err)
	}

	return sub, nil
}

// Get loads a submission by ID
func (s *SubmissionStore) Get(ctx context.Context, id string) (models.Submission, error) {
	var (
		version      int
		answersJSON  string
		analysisJSON string
		submittedAt  string
	)
	err := s.db.QueryRowContext(ctx, s.rebind(`
		SELECT schema_version, answers, analysis, submitted_at
		FROM submission
		WHERE id = ?
	`), id).Scan(&version, &answersJSON, &analysisJSON, &submittedAt)

	if err == sql.ErrNoRows {
		return models.Submission{}, ErrNotFound
	}
	if err != nil {
		return models.Submission{}, fmt.Errorf("failed to query submission: %w", err)
	}
	if version != SchemaVersion {
		return models.Submission{}, fmt.Errorf("%w: %d", ErrUnsupportedVersion, version)
	}

	sub := models.Submission{ID: id}
	if err := json.Unmarshal([]byte(answersJSON), &sub.Answers); err != nil {
		return models.Submission{}, fmt.Errorf("failed to decode answers: %w", err)
	}
	if err := json.Unmarshal([]byte(analysisJSON), &sub.Analysis); err != nil {
		return models.Submission{}, fmt.Errorf("failed to decode analysis: %w", err)
	}
	if t, err := time.Parse(time.RFC3339Nano, submittedAt); err == nil {
		sub.SubmittedAt = t
	}

	return sub, nil
}

// rebind turns ? placeholders into $n for postgres
func (s *SubmissionStore) rebind(query string) string {
	if !s.postgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
