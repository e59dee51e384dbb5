package service

import (
	"errors"
	"testing"

	"gorm.io/gorm"

	"github.com/Sooraj-Rao/quiz-builder/internal/apperr"
	"github.com/Sooraj-Rao/quiz-builder/internal/dto"
	"github.com/Sooraj-Rao/quiz-builder/internal/model"
	"github.com/Sooraj-Rao/quiz-builder/internal/repository"
)

type fakeTestRepo struct {
	repository.TestRepository
	test         *model.Test
	findErr      error
	incremented  []uint
	incrementErr error
}

func (r *fakeTestRepo) FindByCode(code string) (*model.Test, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	if r.test == nil || r.test.Code != code {
		return nil, gorm.ErrRecordNotFound
	}
	return r.test, nil
}

func (r *fakeTestRepo) IncrementAttempts(id uint) error {
	if r.incrementErr != nil {
		return r.incrementErr
	}
	r.incremented = append(r.incremented, id)
	return nil
}

type fakeAttemptRepo struct {
	repository.AttemptRepository
	attempted bool
	createErr error
	created   []model.Attempt
}

func (r *fakeAttemptRepo) ExistsForUserAndTest(userID uint, testCode string) (bool, error) {
	return r.attempted, nil
}

func (r *fakeAttemptRepo) Create(attempt *model.Attempt) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.created = append(r.created, *attempt)
	return nil
}

func mathTest() *model.Test {
	return &model.Test{
		ID:             7,
		Code:           "MATH101",
		Title:          "Algebra Basics",
		PassPercentage: 60,
		Questions: []model.Question{
			{Text: "Q1", Options: []string{"a", "b"}, Answer: 0},
			{Text: "Q2", Options: []string{"a", "b"}, Answer: 1},
			{Text: "Q3", Options: []string{"a", "b"}, Answer: 1},
			{Text: "Q4", Options: []string{"a", "b"}, Answer: 0},
		},
	}
}

func newSubmissionService(testRepo *fakeTestRepo, attemptRepo *fakeAttemptRepo) TestSubmissionService {
	return NewTestSubmissionService(testRepo, attemptRepo, NewScoringService())
}

func TestSubmitRecordsAttempt(t *testing.T) {
	testRepo := &fakeTestRepo{test: mathTest()}
	attemptRepo := &fakeAttemptRepo{}
	svc := newSubmissionService(testRepo, attemptRepo)

	result, err := svc.Submit(42, "math101", dto.SubmitTestRequest{
		Answers:        []int{0, 1, 0},
		TimeSpent:      120,
		Violations:     1,
		ViolationTypes: []string{model.ViolationTabSwitch},
	})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	if result.Score != 2 || result.Total != 4 || result.Percentage != 50 {
		t.Errorf("unexpected result: %+v", result)
	}
	if result.Status != model.StatusFailed {
		t.Errorf("expected failed, got %s", result.Status)
	}

	if len(attemptRepo.created) != 1 {
		t.Fatalf("expected one stored attempt, got %d", len(attemptRepo.created))
	}
	stored := attemptRepo.created[0]
	if stored.UserID != 42 || stored.TestCode != "MATH101" || stored.TestTitle != "Algebra Basics" {
		t.Errorf("unexpected stored attempt: %+v", stored)
	}
	// The stored vector is padded to one entry per question.
	if len(stored.Answers) != 4 || stored.Answers[3] != Unanswered {
		t.Errorf("expected padded answers, got %v", stored.Answers)
	}

	if len(testRepo.incremented) != 1 || testRepo.incremented[0] != 7 {
		t.Errorf("expected the attempt counter to be bumped, got %v", testRepo.incremented)
	}
}

func TestSubmitUnknownTest(t *testing.T) {
	svc := newSubmissionService(&fakeTestRepo{}, &fakeAttemptRepo{})

	_, err := svc.Submit(42, "NOPE", dto.SubmitTestRequest{Answers: []int{0}})
	if !errors.Is(err, apperr.ErrTestNotFound) {
		t.Errorf("expected ErrTestNotFound, got %v", err)
	}
}

func TestSubmitRejectsSecondAttempt(t *testing.T) {
	testRepo := &fakeTestRepo{test: mathTest()}
	attemptRepo := &fakeAttemptRepo{attempted: true}
	svc := newSubmissionService(testRepo, attemptRepo)

	_, err := svc.Submit(42, "MATH101", dto.SubmitTestRequest{Answers: []int{0, 1, 1, 0}})
	if !errors.Is(err, apperr.ErrAlreadyAttempted) {
		t.Errorf("expected ErrAlreadyAttempted, got %v", err)
	}
	if len(attemptRepo.created) != 0 {
		t.Error("expected no attempt to be stored")
	}
}

func TestSubmitDuplicateKeyMapsToAlreadyAttempted(t *testing.T) {
	// A concurrent duplicate slips past the existence check and hits the
	// unique index instead.
	testRepo := &fakeTestRepo{test: mathTest()}
	attemptRepo := &fakeAttemptRepo{createErr: gorm.ErrDuplicatedKey}
	svc := newSubmissionService(testRepo, attemptRepo)

	_, err := svc.Submit(42, "MATH101", dto.SubmitTestRequest{Answers: []int{0, 1, 1, 0}})
	if !errors.Is(err, apperr.ErrAlreadyAttempted) {
		t.Errorf("expected ErrAlreadyAttempted, got %v", err)
	}
}

func TestSubmitDisqualifiedByViolations(t *testing.T) {
	testRepo := &fakeTestRepo{test: mathTest()}
	attemptRepo := &fakeAttemptRepo{}
	svc := newSubmissionService(testRepo, attemptRepo)

	result, err := svc.Submit(42, "MATH101", dto.SubmitTestRequest{
		Answers:        []int{0, 1, 1, 0},
		Violations:     3,
		ViolationTypes: []string{model.ViolationTabSwitch, model.ViolationRightClick, model.ViolationTabSwitch},
	})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if result.Status != model.StatusDisqualified {
		t.Errorf("expected disqualified despite a perfect score, got %s", result.Status)
	}
	if result.Percentage != 100 {
		t.Errorf("expected the true percentage to be kept, got %d", result.Percentage)
	}
}

func TestSubmitEmptyTest(t *testing.T) {
	empty := mathTest()
	empty.Questions = nil
	svc := newSubmissionService(&fakeTestRepo{test: empty}, &fakeAttemptRepo{})

	if _, err := svc.Submit(42, "MATH101", dto.SubmitTestRequest{Answers: []int{}}); err == nil {
		t.Error("expected an error for a test without questions")
	}
}

func TestSubmitReportsPartialWriteOnCounterFailure(t *testing.T) {
	testRepo := &fakeTestRepo{test: mathTest(), incrementErr: errors.New("connection lost")}
	attemptRepo := &fakeAttemptRepo{}
	svc := newSubmissionService(testRepo, attemptRepo)

	_, err := svc.Submit(42, "MATH101", dto.SubmitTestRequest{Answers: []int{0, 1, 1, 0}})
	if err == nil {
		t.Fatal("expected the counter failure to surface")
	}
	// The attempt itself was committed before the counter update.
	if len(attemptRepo.created) != 1 {
		t.Errorf("expected the attempt to be stored, got %d", len(attemptRepo.created))
	}
}
