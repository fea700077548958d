// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"errors"
	"fmt"

	"github.com/danielhkuo/mock-me/models"
	"github.com/danielhkuo/mock-me/questionbank"
)

// ErrRedirect means there is no usable state for this step; the caller
// should send the user back to the start of the flow.
var ErrRedirect = errors.New("no interview in progress")

// QuestionSource yields the question list saved at upload time
type QuestionSource interface {
	Questions() ([]models.Question, error)
}

// Bootstrap loads the stored questions. A list shorter than
// questionbank.MinQuestions gets the coding question appended once.
func Bootstrap(src QuestionSource) ([]models.Question, error) {
	qs, err := src.Questions()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRedirect, err)
	}
	if len(qs) == 0 {
		return nil, fmt.Errorf("%w: empty question list", ErrRedirect)
	}

	out := make([]models.Question, len(qs), len(qs)+1)
	copy(out, qs)
	if len(out) < questionbank.MinQuestions {
		out = append(out, questionbank.CodingQuestion)
	}
	return out, nil
}
