// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package scoring

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/mock-me/models"
)

func TestVerbalScore(t *testing.T) {
	tests := []struct {
		name   string
		answer string
		want   int
	}{
		{"empty clamps to minimum", "", 1},
		{"short without STAR", "I fixed it.", 1},
		{"STAR keyword bonus", "The result was good.", 2},
		{"case insensitive keyword", "SITUATION", 2},
		{"length only", strings.Repeat("x", 249), 4},
		{"length plus bonus", strings.Repeat("x", 250) + " task", 7},
		{"clamps to maximum", strings.Repeat("x", 2000), 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, VerbalScore(tt.answer))
		})
	}
}

func TestDesignScore(t *testing.T) {
	assert.Nil(t, DesignScore("anything", models.TypeBehavioral))
	assert.Nil(t, DesignScore("anything", ""))
	assert.Nil(t, DesignScore("anything", "trivia"))

	tests := []struct {
		name   string
		answer string
		want   int
	}{
		{"empty clamps to minimum", "", 1},
		{"length only", strings.Repeat("y", 350), 3},
		{"scalability bonus", strings.Repeat("y", 350) + " Scalability", 5},
		{"clamps to maximum", strings.Repeat("y", 5000), 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DesignScore(tt.answer, models.TypeTechnical)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, *got)
		})
	}
}

func TestScoreAnswer_STARScenario(t *testing.T) {
	answer := "I handled the Situation, Task, Action and got a great Result over 60 chars long."

	got := ScoreAnswer(models.AnswerRecord{Question: "Q", Answer: answer, Type: models.TypeBehavioral})

	assert.Equal(t, len(answer)/50+2, got.VerbalScore)
	assert.Equal(t, 3, got.VerbalScore)
	assert.Nil(t, got.DesignScore)
	assert.Equal(t, BehavioralWeak, got.Feedback)
	assert.Contains(t, got.Feedback, "needs more structure")
	assert.Equal(t, "Q", got.Question)
}

func TestScoreAnswer_Deterministic(t *testing.T) {
	rec := models.AnswerRecord{
		Question: "Design a cache",
		Answer:   strings.Repeat("We shard keys and discuss scalability. ", 12),
		Type:     models.TypeTechnical,
	}

	first := ScoreAnswer(rec)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, ScoreAnswer(rec))
	}
	require.NotNil(t, first.DesignScore)
	assert.GreaterOrEqual(t, *first.DesignScore, MinScore)
	assert.LessOrEqual(t, *first.DesignScore, MaxScore)
}

func TestScoreAnswer_DefaultsMissingType(t *testing.T) {
	got := ScoreAnswer(models.AnswerRecord{Question: "Q", Answer: "short"})

	assert.Equal(t, models.TypeBehavioral, got.Type)
	assert.Nil(t, got.DesignScore)
}

func TestFeedback_Tiers(t *testing.T) {
	eight, six, two := 8, 6, 2

	assert.Equal(t, BehavioralExcellent, Feedback(models.TypeBehavioral, 9, nil))
	assert.Equal(t, BehavioralGood, Feedback(models.TypeBehavioral, 6, nil))
	assert.Equal(t, BehavioralWeak, Feedback(models.TypeBehavioral, 5, nil))

	assert.Equal(t, TechnicalExcellent, Feedback(models.TypeTechnical, 1, &eight))
	assert.Equal(t, TechnicalGood, Feedback(models.TypeTechnical, 1, &six))
	assert.Equal(t, TechnicalWeak, Feedback(models.TypeTechnical, 10, &two))
}

func TestAnalyze_OrderAndCompleteness(t *testing.T) {
	answers := models.AnswersMap{
		5: {Question: "Q5", Answer: strings.Repeat("z", 300) + " scalability", Type: models.TypeTechnical},
		0: {Question: "Q0", Answer: "Situation then result", Type: models.TypeBehavioral},
		2: {Question: "Q2", Answer: "", Type: models.TypeBehavioral},
	}

	got := Analyze(answers)

	require.Len(t, got.Results, 3)
	assert.Equal(t, "Q0", got.Results[0].Question)
	assert.Equal(t, "Q2", got.Results[1].Question)
	assert.Equal(t, "Q5", got.Results[2].Question)

	for _, r := range got.Results {
		assert.Equal(t, r.Type == models.TypeTechnical, r.DesignScore != nil)
	}
}

func TestAnalyzeKeyed_Order(t *testing.T) {
	answers := map[string]models.AnswerRecord{
		"b":  {Question: "Qb"},
		"10": {Question: "Q10"},
		"a":  {Question: "Qa"},
		"2":  {Question: "Q2"},
	}

	got := AnalyzeKeyed(answers)

	require.Len(t, got.Results, 4)
	var order []string
	for _, r := range got.Results {
		order = append(order, r.Question)
	}
	assert.Equal(t, []string{"Q2", "Q10", "Qa", "Qb"}, order)
}

func TestAnalyzeKeyed_MatchesAnalyze(t *testing.T) {
	indexed := models.AnswersMap{
		1: {Question: "Q1", Answer: "Task done", Type: models.TypeBehavioral},
		0: {Question: "Q0", Answer: strings.Repeat("w", 220) + " scalability", Type: models.TypeTechnical},
	}
	keyed := map[string]models.AnswerRecord{"1": indexed[1], "0": indexed[0]}

	assert.Equal(t, Analyze(indexed), AnalyzeKeyed(keyed))
}

func TestAggregate(t *testing.T) {
	three, four := 3, 4

	tests := []struct {
		name    string
		results []models.AnalysisResult
		want    models.OverallScores
	}{
		{"no results", nil, models.OverallScores{Verbal: 0, Design: 0}},
		{
			"behavioral only leaves design at zero",
			[]models.AnalysisResult{{VerbalScore: 1}, {VerbalScore: 2}, {VerbalScore: 2}},
			models.OverallScores{Verbal: 1.7, Design: 0},
		},
		{
			"mixed kinds",
			[]models.AnalysisResult{
				{VerbalScore: 3},
				{VerbalScore: 4, DesignScore: &three},
				{VerbalScore: 6, DesignScore: &four},
			},
			models.OverallScores{Verbal: 4.3, Design: 3.5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Aggregate(tt.results))
		})
	}
}

func TestTextLength_CountsUTF16Units(t *testing.T) {
	assert.Equal(t, 5, textLength("hello"))
	assert.Equal(t, 1, textLength("é"))
	assert.Equal(t, 2, textLength("😀"))
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "Excellent", Label(8))
	assert.Equal(t, "Good", Label(7.9))
	assert.Equal(t, "Fair", Label(4))
	assert.Equal(t, "Needs Improvement", Label(3.9))
	assert.Equal(t, "Needs Improvement", Label(0))
}
