package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/Sooraj-Rao/quiz-builder/internal/apperr"
	"github.com/Sooraj-Rao/quiz-builder/internal/dto"
	"github.com/Sooraj-Rao/quiz-builder/internal/model"
	"github.com/Sooraj-Rao/quiz-builder/internal/repository"
)

type TestSubmissionService interface {
	Submit(userID uint, code string, req dto.SubmitTestRequest) (*dto.SubmitResult, error)
}

type testSubmissionService struct {
	testRepo    repository.TestRepository
	attemptRepo repository.AttemptRepository
	scoring     ScoringService
}

func NewTestSubmissionService(testRepo repository.TestRepository, attemptRepo repository.AttemptRepository, scoring ScoringService) TestSubmissionService {
	return &testSubmissionService{testRepo: testRepo, attemptRepo: attemptRepo, scoring: scoring}
}

// Submit scores the answer vector, records the attempt and bumps the test's
// attempt counter. One attempt per (user, test): the check below catches the
// common case, the unique index on attempts catches concurrent duplicates.
func (s *testSubmissionService) Submit(userID uint, code string, req dto.SubmitTestRequest) (*dto.SubmitResult, error) {
	code = strings.ToUpper(code)

	test, err := s.testRepo.FindByCode(code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrTestNotFound
		}
		return nil, fmt.Errorf("error fetching test %s: %w", code, err)
	}
	if len(test.Questions) == 0 {
		return nil, fmt.Errorf("test %s has no questions, submission is not possible", code)
	}

	attempted, err := s.attemptRepo.ExistsForUserAndTest(userID, code)
	if err != nil {
		return nil, fmt.Errorf("error checking prior attempt: %w", err)
	}
	if attempted {
		return nil, apperr.ErrAlreadyAttempted
	}

	eval := s.scoring.Evaluate(test.Questions, req.Answers, req.Violations, test.PassPercentage)

	attempt := model.Attempt{
		UserID:         userID,
		TestCode:       test.Code,
		TestTitle:      test.Title,
		Score:          eval.Score,
		TotalQuestions: eval.Total,
		Percentage:     eval.Percentage,
		Status:         eval.Status,
		TimeSpent:      req.TimeSpent,
		Violations:     req.Violations,
		ViolationTypes: req.ViolationTypes,
		Answers:        NormalizeAnswers(req.Answers, eval.Total),
	}
	if err := s.attemptRepo.Create(&attempt); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.ErrAlreadyAttempted
		}
		log.Error().Err(err).Uint("userID", userID).Str("testCode", code).Msg("Failed to record attempt")
		return nil, fmt.Errorf("error recording attempt: %w", err)
	}

	// The attempt is already committed at this point. A counter failure is
	// reported rather than hidden so the caller knows the write was partial.
	if err := s.testRepo.IncrementAttempts(test.ID); err != nil {
		log.Error().Err(err).Str("testCode", code).Msg("Attempt recorded but attempt counter update failed")
		return nil, fmt.Errorf("attempt recorded but test counter update failed: %w", err)
	}

	log.Info().
		Uint("userID", userID).
		Str("testCode", code).
		Int("score", eval.Score).
		Int("percentage", eval.Percentage).
		Str("status", eval.Status).
		Int("violations", req.Violations).
		Msg("Test attempt submitted")

	return &dto.SubmitResult{
		Score:          eval.Score,
		Total:          eval.Total,
		Percentage:     eval.Percentage,
		Status:         eval.Status,
		PassPercentage: test.PassPercentage,
		Violations:     req.Violations,
		Results:        eval.Results,
	}, nil
}
