package service

import (
	"testing"

	"github.com/Sooraj-Rao/quiz-builder/internal/model"
)

func fourQuestions() []model.Question {
	return []model.Question{
		{Text: "Q1", Options: []string{"a", "b", "c", "d"}, Answer: 0},
		{Text: "Q2", Options: []string{"a", "b", "c", "d"}, Answer: 1},
		{Text: "Q3", Options: []string{"a", "b", "c", "d"}, Answer: 2},
		{Text: "Q4", Options: []string{"a", "b", "c", "d"}, Answer: 3},
	}
}

func TestEvaluate(t *testing.T) {
	scoring := NewScoringService()

	tests := []struct {
		name           string
		answers        []int
		violations     int
		passPercentage int
		wantScore      int
		wantPercentage int
		wantStatus     string
	}{
		{
			name:           "three correct one unanswered passes",
			answers:        []int{0, 1, 2, -1},
			violations:     0,
			passPercentage: 60,
			wantScore:      3,
			wantPercentage: 75,
			wantStatus:     model.StatusCompleted,
		},
		{
			name:           "wrong first answer still passes at 75",
			answers:        []int{1, 1, 2, 3},
			violations:     0,
			passPercentage: 60,
			wantScore:      3,
			wantPercentage: 75,
			wantStatus:     model.StatusCompleted,
		},
		{
			name:           "one correct fails at 25",
			answers:        []int{0, 0, 0, 0},
			violations:     0,
			passPercentage: 60,
			wantScore:      1,
			wantPercentage: 25,
			wantStatus:     model.StatusFailed,
		},
		{
			name:           "three violations disqualify a perfect score",
			answers:        []int{0, 1, 2, 3},
			violations:     3,
			passPercentage: 60,
			wantScore:      4,
			wantPercentage: 100,
			wantStatus:     model.StatusDisqualified,
		},
		{
			name:           "short vector treats missing entries as unanswered",
			answers:        []int{0, 1},
			violations:     0,
			passPercentage: 60,
			wantScore:      2,
			wantPercentage: 50,
			wantStatus:     model.StatusFailed,
		},
		{
			name:           "extra entries are ignored",
			answers:        []int{0, 1, 2, 3, 0, 0},
			violations:     0,
			passPercentage: 60,
			wantScore:      4,
			wantPercentage: 100,
			wantStatus:     model.StatusCompleted,
		},
		{
			name:           "percentage exactly at threshold passes",
			answers:        []int{0, 1, 2, -1},
			violations:     0,
			passPercentage: 75,
			wantScore:      3,
			wantPercentage: 75,
			wantStatus:     model.StatusCompleted,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			eval := scoring.Evaluate(fourQuestions(), tc.answers, tc.violations, tc.passPercentage)
			if eval.Score != tc.wantScore {
				t.Errorf("score: expected %d, got %d", tc.wantScore, eval.Score)
			}
			if eval.Total != 4 {
				t.Errorf("total: expected 4, got %d", eval.Total)
			}
			if eval.Percentage != tc.wantPercentage {
				t.Errorf("percentage: expected %d, got %d", tc.wantPercentage, eval.Percentage)
			}
			if eval.Status != tc.wantStatus {
				t.Errorf("status: expected %s, got %s", tc.wantStatus, eval.Status)
			}
			if len(eval.Results) != 4 {
				t.Errorf("results: expected 4 rows, got %d", len(eval.Results))
			}
		})
	}
}

func TestEvaluatePercentageRounding(t *testing.T) {
	scoring := NewScoringService()
	questions := []model.Question{
		{Text: "Q1", Options: []string{"a", "b"}, Answer: 0},
		{Text: "Q2", Options: []string{"a", "b"}, Answer: 0},
		{Text: "Q3", Options: []string{"a", "b"}, Answer: 0},
	}

	// 1/3 rounds to 33, 2/3 rounds to 67.
	eval := scoring.Evaluate(questions, []int{0, 1, 1}, 0, 60)
	if eval.Percentage != 33 {
		t.Errorf("expected 33, got %d", eval.Percentage)
	}
	eval = scoring.Evaluate(questions, []int{0, 0, 1}, 0, 60)
	if eval.Percentage != 67 {
		t.Errorf("expected 67, got %d", eval.Percentage)
	}
}

func TestEvaluateResultRows(t *testing.T) {
	scoring := NewScoringService()
	eval := scoring.Evaluate(fourQuestions(), []int{0, 3}, 0, 60)

	first := eval.Results[0]
	if !first.IsCorrect || first.SelectedOption != 0 || first.CorrectAnswer != 0 {
		t.Errorf("unexpected first row: %+v", first)
	}
	second := eval.Results[1]
	if second.IsCorrect || second.SelectedOption != 3 {
		t.Errorf("unexpected second row: %+v", second)
	}
	third := eval.Results[2]
	if third.SelectedOption != Unanswered || third.IsCorrect {
		t.Errorf("expected unanswered row, got %+v", third)
	}
}

func TestEvaluateEmptyQuestionList(t *testing.T) {
	scoring := NewScoringService()
	eval := scoring.Evaluate(nil, []int{0, 1}, 0, 60)
	if eval.Total != 0 || eval.Score != 0 || eval.Percentage != 0 {
		t.Errorf("unexpected evaluation of empty test: %+v", eval)
	}
}

func TestDetermineStatusPrecedence(t *testing.T) {
	// Disqualification wins over a passing percentage.
	if got := DetermineStatus(3, 100, 60); got != model.StatusDisqualified {
		t.Errorf("expected disqualified, got %s", got)
	}
	if got := DetermineStatus(4, 0, 60); got != model.StatusDisqualified {
		t.Errorf("expected disqualified, got %s", got)
	}
	if got := DetermineStatus(2, 59, 60); got != model.StatusFailed {
		t.Errorf("expected failed with violations below the threshold, got %s", got)
	}
	if got := DetermineStatus(0, 60, 60); got != model.StatusCompleted {
		t.Errorf("expected completed at the exact threshold, got %s", got)
	}
}

func TestNormalizeAnswers(t *testing.T) {
	got := NormalizeAnswers([]int{2, 0}, 4)
	want := []int{2, 0, Unanswered, Unanswered}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d: expected %d, got %d", i, want[i], got[i])
		}
	}

	got = NormalizeAnswers([]int{1, 1, 1, 1, 1}, 3)
	if len(got) != 3 {
		t.Errorf("expected trimming to 3 entries, got %d", len(got))
	}
}
