// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/danielhkuo/mock-me/client"
	"github.com/danielhkuo/mock-me/models"
	"github.com/danielhkuo/mock-me/scoring"
)

// AnswersSource yields the answers saved at submission
type AnswersSource interface {
	Answers() (models.AnswersMap, error)
}

// Analyzer scores answers remotely
type Analyzer interface {
	Analyze(ctx context.Context, answers models.AnswersMap) (models.AnalyzeResponse, error)
}

// Report is the scored interview
type Report struct {
	Analysis models.AnalyzeResponse
	Source   string // models.SourceRemote or models.SourceLocal
	Remote   error  // why the remote analysis was not used, if it failed
}

// BuildReport makes one remote analysis attempt and falls back to local
// scoring on any failure. Every stored answer gets a result either way.
func BuildReport(ctx context.Context, src AnswersSource, api Analyzer) (Report, error) {
	answers, err := src.Answers()
	if err != nil {
		return Report{}, fmt.Errorf("%w: %v", ErrRedirect, err)
	}

	if api != nil {
		res, err := api.Analyze(ctx, answers)
		switch {
		case err == nil && len(res.Results) == len(answers):
			return Report{Analysis: res, Source: models.SourceRemote}, nil
		case err == nil:
			err = fmt.Errorf("analyze returned %d results for %d answers", len(res.Results), len(answers))
			fallthrough
		case !errors.Is(err, client.ErrNotConfigured):
			slog.Warn("remote analysis failed, scoring locally", "error", err)
			return Report{Analysis: scoring.Analyze(answers), Source: models.SourceLocal, Remote: err}, nil
		}
	}

	return Report{Analysis: scoring.Analyze(answers), Source: models.SourceLocal}, nil
}
