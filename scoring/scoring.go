// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package scoring

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"unicode/utf16"

	"github.com/danielhkuo/mock-me/models"
)

// Score bounds
const (
	MinScore = 1
	MaxScore = 10
)

// Keyword bonus applied when the answer mentions STAR or scalability
const keywordBonus = 2

var (
	starPattern        = regexp.MustCompile(`(?i)situation|task|action|result`)
	scalabilityPattern = regexp.MustCompile(`(?i)scalability`)
)

// Feedback tiers
const (
	BehavioralExcellent = "Excellent use of the STAR method. Your response is well-structured and provides specific examples."
	BehavioralGood      = "Good response with clear examples. Consider using the STAR method more consistently for better structure."
	BehavioralWeak      = "Your response needs more structure. Try using the STAR method (Situation, Task, Action, Result) to organize your thoughts."

	TechnicalExcellent = "Outstanding technical approach! You considered scalability, performance, and trade-offs effectively."
	TechnicalGood      = "Good technical thinking. Consider discussing more about scalability and edge cases."
	TechnicalWeak      = "Your technical approach needs more depth. Consider discussing scalability, performance, and potential trade-offs."
)

// VerbalScore rates delivery: one point per 50 characters plus a STAR bonus
func VerbalScore(answer string) int {
	score := textLength(answer) / 50
	if starPattern.MatchString(answer) {
		score += keywordBonus
	}
	return clamp(score)
}

// DesignScore rates technical depth; nil for anything but technical answers
func DesignScore(answer string, qType models.QuestionType) *int {
	if !qType.IsTechnical() {
		return nil
	}
	score := textLength(answer) / 100
	if scalabilityPattern.MatchString(answer) {
		score += keywordBonus
	}
	score = clamp(score)
	return &score
}

// Feedback picks the tier text for a result. Technical answers are judged
// by design score, everything else by verbal score.
func Feedback(qType models.QuestionType, verbal int, design *int) string {
	if qType.IsTechnical() && design != nil {
		switch {
		case *design >= 8:
			return TechnicalExcellent
		case *design >= 6:
			return TechnicalGood
		default:
			return TechnicalWeak
		}
	}

	switch {
	case verbal >= 8:
		return BehavioralExcellent
	case verbal >= 6:
		return BehavioralGood
	default:
		return BehavioralWeak
	}
}

// ScoreAnswer produces the analysis of a single answer record
func ScoreAnswer(rec models.AnswerRecord) models.AnalysisResult {
	qType := rec.Type
	if qType == "" {
		qType = models.TypeBehavioral
	}

	verbal := VerbalScore(rec.Answer)
	design := DesignScore(rec.Answer, qType)

	return models.AnalysisResult{
		Question:    rec.Question,
		VerbalScore: verbal,
		DesignScore: design,
		Feedback:    Feedback(qType, verbal, design),
		Type:        qType,
	}
}

// Analyze scores every record in ascending index order. No record is dropped.
func Analyze(answers models.AnswersMap) models.AnalyzeResponse {
	indexes := make([]int, 0, len(answers))
	for i := range answers {
		indexes = append(indexes, i)
	}
	sort.Ints(indexes)

	records := make([]models.AnswerRecord, 0, len(indexes))
	for _, i := range indexes {
		records = append(records, answers[i])
	}
	return analyzeRecords(records)
}

// AnalyzeKeyed scores an answers object whose keys need not be integers.
// Integer keys come first in ascending order, then the rest sorted by key.
func AnalyzeKeyed(answers map[string]models.AnswerRecord) models.AnalyzeResponse {
	keys := make([]string, 0, len(answers))
	for k := range answers {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(a, b int) bool {
		ia, errA := strconv.Atoi(keys[a])
		ib, errB := strconv.Atoi(keys[b])
		switch {
		case errA == nil && errB == nil:
			return ia < ib
		case errA == nil:
			return true
		case errB == nil:
			return false
		default:
			return keys[a] < keys[b]
		}
	})

	records := make([]models.AnswerRecord, 0, len(keys))
	for _, k := range keys {
		records = append(records, answers[k])
	}
	return analyzeRecords(records)
}

func analyzeRecords(records []models.AnswerRecord) models.AnalyzeResponse {
	results := make([]models.AnalysisResult, 0, len(records))
	for _, rec := range records {
		results = append(results, ScoreAnswer(rec))
	}

	return models.AnalyzeResponse{
		Results:       results,
		OverallScores: Aggregate(results),
	}
}

// Aggregate averages verbal and design scores separately, rounded to one
// decimal. A kind with no scores aggregates to 0.
func Aggregate(results []models.AnalysisResult) models.OverallScores {
	var verbal, design []int
	for _, r := range results {
		verbal = append(verbal, r.VerbalScore)
		if r.DesignScore != nil {
			design = append(design, *r.DesignScore)
		}
	}

	return models.OverallScores{
		Verbal: roundTenth(mean(verbal)),
		Design: roundTenth(mean(design)),
	}
}

// textLength counts UTF-16 code units, matching how browsers measure strings
func textLength(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}

func clamp(score int) int {
	if score < MinScore {
		return MinScore
	}
	if score > MaxScore {
		return MaxScore
	}
	return score
}

// mean calculates the arithmetic mean
func mean(values []int) float64 {
	if len(values) == 0 {
		return 0.0
	}

	sum := 0
	for _, v := range values {
		sum += v
	}
	return float64(sum) / float64(len(values))
}

// roundTenth rounds half up to one decimal place
func roundTenth(v float64) float64 {
	return math.Floor(v*10+0.5) / 10
}

// Label names a score band for display
func Label(score float64) string {
	switch {
	case score >= 8:
		return "Excellent"
	case score >= 6:
		return "Good"
	case score >= 4:
		return "Fair"
	default:
		return "Needs Improvement"
	}
}
