package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/Sooraj-Rao/quiz-builder/internal/apperr"
	"github.com/Sooraj-Rao/quiz-builder/internal/dto"
	"github.com/Sooraj-Rao/quiz-builder/internal/repository"
)

type UserTestService interface {
	GetAvailableTests(userID uint) ([]dto.TestSummary, error)
	GetTestForTaking(userID uint, code string) (*dto.TestDetail, error)
	GetHistory(userID uint) ([]dto.AttemptSummary, error)
}

type userTestService struct {
	testRepo    repository.TestRepository
	attemptRepo repository.AttemptRepository
}

func NewUserTestService(testRepo repository.TestRepository, attemptRepo repository.AttemptRepository) UserTestService {
	return &userTestService{testRepo: testRepo, attemptRepo: attemptRepo}
}

// GetAvailableTests lists active tests the user has not attempted yet,
// newest first.
func (s *userTestService) GetAvailableTests(userID uint) ([]dto.TestSummary, error) {
	attempted, err := s.attemptRepo.CodesAttemptedBy(userID)
	if err != nil {
		log.Error().Err(err).Uint("userID", userID).Msg("Failed to load attempted test codes")
		return nil, fmt.Errorf("error fetching attempted tests: %w", err)
	}

	tests, err := s.testRepo.FindActiveExcluding(attempted)
	if err != nil {
		log.Error().Err(err).Uint("userID", userID).Msg("Failed to load available tests")
		return nil, fmt.Errorf("error fetching tests: %w", err)
	}

	summaries := make([]dto.TestSummary, 0, len(tests))
	for _, t := range tests {
		summaries = append(summaries, dto.TestSummary{
			TestID:         t.Code,
			Title:          t.Title,
			Description:    t.Description,
			TimeLimit:      t.TimeLimit,
			PassPercentage: t.PassPercentage,
		})
	}
	return summaries, nil
}

// GetTestForTaking returns the test definition stripped of correct-answer
// indices. Inactive or unknown codes read as not found; a prior attempt by
// the same user is rejected.
func (s *userTestService) GetTestForTaking(userID uint, code string) (*dto.TestDetail, error) {
	code = strings.ToUpper(code)

	test, err := s.testRepo.FindActiveByCode(code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrTestNotFound
		}
		return nil, fmt.Errorf("error fetching test %s: %w", code, err)
	}

	attempted, err := s.attemptRepo.ExistsForUserAndTest(userID, code)
	if err != nil {
		return nil, fmt.Errorf("error checking prior attempt: %w", err)
	}
	if attempted {
		return nil, apperr.ErrAlreadyAttempted
	}

	detail := dto.TestDetail{
		TestID:         test.Code,
		Title:          test.Title,
		Description:    test.Description,
		TimeLimit:      test.TimeLimit,
		PassPercentage: test.PassPercentage,
		Questions:      make([]dto.QuestionPublic, 0, len(test.Questions)),
	}
	for _, q := range test.Questions {
		detail.Questions = append(detail.Questions, dto.QuestionPublic{
			Text:    q.Text,
			Options: q.Options,
			Level:   q.Level,
		})
	}
	return &detail, nil
}

func (s *userTestService) GetHistory(userID uint) ([]dto.AttemptSummary, error) {
	attempts, err := s.attemptRepo.FindByUser(userID)
	if err != nil {
		log.Error().Err(err).Uint("userID", userID).Msg("Failed to load attempt history")
		return nil, fmt.Errorf("error fetching history: %w", err)
	}

	summaries := make([]dto.AttemptSummary, 0, len(attempts))
	for _, a := range attempts {
		var summary dto.AttemptSummary
		if err := copier.Copy(&summary, &a); err != nil {
			return nil, fmt.Errorf("error preparing history response: %w", err)
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}
