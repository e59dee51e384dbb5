package service

import (
	"math"

	"github.com/Sooraj-Rao/quiz-builder/internal/dto"
	"github.com/Sooraj-Rao/quiz-builder/internal/model"
)

// DisqualificationThreshold is the violation count at which an attempt is
// disqualified regardless of its score.
const DisqualificationThreshold = 3

const Unanswered = -1

// Evaluation is the outcome of scoring one answer vector against a test.
type Evaluation struct {
	Score      int
	Total      int
	Percentage int
	Status     string
	Results    []dto.QuestionResult
}

type ScoringService interface {
	Evaluate(questions []model.Question, answers []int, violations, passPercentage int) Evaluation
}

type scoringService struct{}

func NewScoringService() ScoringService {
	return &scoringService{}
}

// Evaluate compares the submitted answer vector against the question list in
// order. A vector shorter than the question list implies Unanswered for the
// missing entries; extra entries are ignored.
func (s *scoringService) Evaluate(questions []model.Question, answers []int, violations, passPercentage int) Evaluation {
	eval := Evaluation{
		Total:   len(questions),
		Results: make([]dto.QuestionResult, 0, len(questions)),
	}

	for i, q := range questions {
		selected := Unanswered
		if i < len(answers) {
			selected = answers[i]
		}
		correct := selected == q.Answer
		if correct {
			eval.Score++
		}
		eval.Results = append(eval.Results, dto.QuestionResult{
			QuestionIndex:  i,
			Question:       q.Text,
			Options:        q.Options,
			SelectedOption: selected,
			CorrectAnswer:  q.Answer,
			IsCorrect:      correct,
		})
	}

	if eval.Total > 0 {
		eval.Percentage = int(math.Round(float64(eval.Score) / float64(eval.Total) * 100))
	}
	eval.Status = DetermineStatus(violations, eval.Percentage, passPercentage)
	return eval
}

// DetermineStatus applies the precedence rules: disqualification first, then
// the pass threshold.
func DetermineStatus(violations, percentage, passPercentage int) string {
	switch {
	case violations >= DisqualificationThreshold:
		return model.StatusDisqualified
	case percentage < passPercentage:
		return model.StatusFailed
	default:
		return model.StatusCompleted
	}
}

// NormalizeAnswers pads or trims the vector to exactly total entries so the
// stored attempt always has one entry per question.
func NormalizeAnswers(answers []int, total int) []int {
	normalized := make([]int, total)
	for i := range normalized {
		if i < len(answers) {
			normalized[i] = answers[i]
		} else {
			normalized[i] = Unanswered
		}
	}
	return normalized
}
