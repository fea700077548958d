// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"time"
)

// QuestionType tags a question as behavioral or technical
type QuestionType string

// Question type constants
const (
	TypeBehavioral QuestionType = "behavioral"
	TypeTechnical  QuestionType = "technical"
)

// Valid reports whether t is one of the known question types
func (t QuestionType) Valid() bool {
	return t == TypeBehavioral || t == TypeTechnical
}

// IsTechnical is true only for technical questions; unknown types score as behavioral
func (t QuestionType) IsTechnical() bool {
	return t == TypeTechnical
}

// Report sources
const (
	SourceRemote = "remote"
	SourceLocal  = "local"
)

// Domain types

type Demo struct {
	ID          int    `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
}

type Question struct {
	Type QuestionType `json:"type" yaml:"type"`
	Text string       `json:"text" yaml:"text"`
}

type AnswerRecord struct {
	Question string       `json:"question"`
	Answer   string       `json:"answer"`
	Type     QuestionType `json:"type"`
}

// question index -> answer record
type AnswersMap map[int]AnswerRecord

type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role,omitempty"`
}

// Analysis types

type AnalysisResult struct {
	Question    string       `json:"question"`
	VerbalScore int          `json:"verbal_score"`
	DesignScore *int         `json:"design_score"` // nil unless technical
	Feedback    string       `json:"feedback"`
	Type        QuestionType `json:"type"`
}

type OverallScores struct {
	Verbal float64 `json:"verbal"`
	Design float64 `json:"design"`
}

type AnalyzeResponse struct {
	Results       []AnalysisResult `json:"results"`
	OverallScores OverallScores    `json:"overall_scores"`
}

type Submission struct {
	ID          string          `json:"id"`
	Answers     AnswersMap      `json:"answers"`
	Analysis    AnalyzeResponse `json:"analysis"`
	SubmittedAt time.Time       `json:"submitted_at"`
}

// Request types

type UploadResumeRequest struct {
	DemoID any `json:"demo_id"`
}

type AnalyzeRequest struct {
	Answers AnswersMap `json:"answers"`
}

type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Response types

type UploadResumeResponse struct {
	Questions []Question `json:"questions"`
}

type SubmitAnswersResponse struct {
	OK           bool   `json:"ok"`
	SubmissionID string `json:"submission_id,omitempty"`
}

type AuthResponse struct {
	OK   bool  `json:"ok"`
	User *User `json:"user,omitempty"`
}

type MeResponse struct {
	User *User `json:"user"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
