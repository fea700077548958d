// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - UploadResumeRequest: demo_id (string or number)
  - AnalyzeRequest: answers (AnswersMap)
  - SignupRequest: email, password, role
  - LoginRequest: email, password

# Response Types

Types for JSON responses:

  - UploadResumeResponse: questions
  - SubmitAnswersResponse: ok, submission_id
  - AnalyzeResponse: results, overall_scores
  - AuthResponse: ok, user
  - MeResponse: user (null when signed out)
  - ErrorResponse: error, message

# Domain Types

  - Demo: catalogue entry (id, title, description)
  - Question: type tag plus text
  - AnswerRecord: question text, answer text, type
  - AnswersMap: question index -> AnswerRecord
  - AnalysisResult: per-question scores and feedback
  - Submission: persisted answers with their analysis

AnswersMap is keyed by int; encoding/json writes the keys as decimal
strings ("0", "1", ...) which is what browser clients send.

# Constants

Question types:

	TypeBehavioral = "behavioral"
	TypeTechnical  = "technical"

Report sources:

	SourceRemote = "remote"
	SourceLocal  = "local"
*/
package models
