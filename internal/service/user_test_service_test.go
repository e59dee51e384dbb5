package service

import (
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/Sooraj-Rao/quiz-builder/internal/apperr"
	"github.com/Sooraj-Rao/quiz-builder/internal/model"
	"github.com/Sooraj-Rao/quiz-builder/internal/repository"
)

type stubTestRepo struct {
	repository.TestRepository
	tests []model.Test
}

func (r *stubTestRepo) FindActiveByCode(code string) (*model.Test, error) {
	for i := range r.tests {
		if r.tests[i].Code == code && r.tests[i].IsActive {
			return &r.tests[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubTestRepo) FindActiveExcluding(codes []string) ([]model.Test, error) {
	excluded := make(map[string]bool, len(codes))
	for _, c := range codes {
		excluded[c] = true
	}
	var out []model.Test
	for _, t := range r.tests {
		if t.IsActive && !excluded[t.Code] {
			out = append(out, t)
		}
	}
	return out, nil
}

type stubAttemptRepo struct {
	repository.AttemptRepository
	attempts []model.Attempt
}

func (r *stubAttemptRepo) CodesAttemptedBy(userID uint) ([]string, error) {
	var codes []string
	for _, a := range r.attempts {
		if a.UserID == userID {
			codes = append(codes, a.TestCode)
		}
	}
	return codes, nil
}

func (r *stubAttemptRepo) ExistsForUserAndTest(userID uint, testCode string) (bool, error) {
	for _, a := range r.attempts {
		if a.UserID == userID && a.TestCode == testCode {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubAttemptRepo) FindByUser(userID uint) ([]model.Attempt, error) {
	var out []model.Attempt
	for _, a := range r.attempts {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *stubAttemptRepo) FindByIDAndUser(attemptID, userID uint) (*model.Attempt, error) {
	for i := range r.attempts {
		if r.attempts[i].ID == attemptID && r.attempts[i].UserID == userID {
			return &r.attempts[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func catalog() []model.Test {
	return []model.Test{
		{
			ID: 1, Code: "MATH101", Title: "Algebra Basics", TimeLimit: 30,
			PassPercentage: 60, IsActive: true,
			Questions: []model.Question{
				{Text: "What is two plus two?", Options: []string{"3", "4"}, Answer: 1, Level: model.LevelEasy},
			},
		},
		{ID: 2, Code: "PHYS200", Title: "Mechanics", TimeLimit: 45, PassPercentage: 70, IsActive: true},
		{ID: 3, Code: "CHEM110", Title: "Old Exam", TimeLimit: 20, PassPercentage: 60, IsActive: false},
	}
}

func TestGetAvailableTestsExcludesAttemptedAndInactive(t *testing.T) {
	svc := NewUserTestService(
		&stubTestRepo{tests: catalog()},
		&stubAttemptRepo{attempts: []model.Attempt{{UserID: 42, TestCode: "MATH101"}}},
	)

	tests, err := svc.GetAvailableTests(42)
	if err != nil {
		t.Fatalf("GetAvailableTests failed: %v", err)
	}
	if len(tests) != 1 || tests[0].TestID != "PHYS200" {
		t.Errorf("expected only PHYS200, got %+v", tests)
	}
}

func TestGetTestForTaking(t *testing.T) {
	svc := NewUserTestService(&stubTestRepo{tests: catalog()}, &stubAttemptRepo{})

	// The code is matched case-insensitively.
	detail, err := svc.GetTestForTaking(42, "math101")
	if err != nil {
		t.Fatalf("GetTestForTaking failed: %v", err)
	}
	if detail.TestID != "MATH101" || detail.TimeLimit != 30 {
		t.Errorf("unexpected detail: %+v", detail)
	}
	if len(detail.Questions) != 1 {
		t.Fatalf("expected 1 question, got %d", len(detail.Questions))
	}
	if detail.Questions[0].Level != model.LevelEasy {
		t.Errorf("expected the level to be included, got %+v", detail.Questions[0])
	}
}

func TestGetTestForTakingInactiveReadsAsNotFound(t *testing.T) {
	svc := NewUserTestService(&stubTestRepo{tests: catalog()}, &stubAttemptRepo{})

	if _, err := svc.GetTestForTaking(42, "CHEM110"); !errors.Is(err, apperr.ErrTestNotFound) {
		t.Errorf("expected ErrTestNotFound for an inactive test, got %v", err)
	}
	if _, err := svc.GetTestForTaking(42, "NOPE"); !errors.Is(err, apperr.ErrTestNotFound) {
		t.Errorf("expected ErrTestNotFound for an unknown code, got %v", err)
	}
}

func TestGetTestForTakingRejectsSecondAttempt(t *testing.T) {
	svc := NewUserTestService(
		&stubTestRepo{tests: catalog()},
		&stubAttemptRepo{attempts: []model.Attempt{{UserID: 42, TestCode: "MATH101"}}},
	)

	if _, err := svc.GetTestForTaking(42, "MATH101"); !errors.Is(err, apperr.ErrAlreadyAttempted) {
		t.Errorf("expected ErrAlreadyAttempted, got %v", err)
	}
}

func TestGetHistory(t *testing.T) {
	now := time.Now()
	svc := NewUserTestService(&stubTestRepo{}, &stubAttemptRepo{attempts: []model.Attempt{
		{
			ID: 5, UserID: 42, TestCode: "MATH101", TestTitle: "Algebra Basics",
			Score: 3, TotalQuestions: 4, Percentage: 75, Status: model.StatusCompleted,
			TimeSpent: 300, Violations: 1, ViolationTypes: []string{model.ViolationTabSwitch},
			AttemptedAt: now,
		},
		{ID: 9, UserID: 7, TestCode: "PHYS200"},
	}})

	history, err := svc.GetHistory(42)
	if err != nil {
		t.Fatalf("GetHistory failed: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(history))
	}
	entry := history[0]
	if entry.TestCode != "MATH101" || entry.Percentage != 75 || entry.Status != model.StatusCompleted {
		t.Errorf("unexpected entry: %+v", entry)
	}
	if len(entry.ViolationTypes) != 1 {
		t.Errorf("expected the violation log to be carried over, got %+v", entry.ViolationTypes)
	}
}
