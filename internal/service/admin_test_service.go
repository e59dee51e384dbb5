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
	"github.com/Sooraj-Rao/quiz-builder/internal/model"
	"github.com/Sooraj-Rao/quiz-builder/internal/repository"
	"github.com/Sooraj-Rao/quiz-builder/internal/validation"
)

const defaultPassPercentage = 60

type AdminTestService interface {
	ListTests() ([]dto.AdminTest, error)
	CreateTest(req dto.CreateTestRequest) (*dto.AdminTest, error)
	GetTest(code string) (*dto.AdminTest, error)
	UpdateTest(code string, req dto.UpdateTestRequest) (*dto.AdminTest, error)
	DeleteTest(code string) error
	GetAnalytics(code string) ([]dto.AnalyticsEntry, error)
	GetAttemptDetail(userID, attemptID uint) (*dto.AttemptDetail, error)
}

type adminTestService struct {
	testRepo    repository.TestRepository
	userRepo    repository.UserRepository
	attemptRepo repository.AttemptRepository
	scoring     ScoringService
}

func NewAdminTestService(
	testRepo repository.TestRepository,
	userRepo repository.UserRepository,
	attemptRepo repository.AttemptRepository,
	scoring ScoringService,
) AdminTestService {
	return &adminTestService{
		testRepo:    testRepo,
		userRepo:    userRepo,
		attemptRepo: attemptRepo,
		scoring:     scoring,
	}
}

func (s *adminTestService) ListTests() ([]dto.AdminTest, error) {
	tests, err := s.testRepo.FindAll()
	if err != nil {
		log.Error().Err(err).Msg("Failed to list tests")
		return nil, fmt.Errorf("error fetching tests: %w", err)
	}

	out := make([]dto.AdminTest, 0, len(tests))
	for _, t := range tests {
		out = append(out, toAdminTest(&t))
	}
	return out, nil
}

func (s *adminTestService) CreateTest(req dto.CreateTestRequest) (*dto.AdminTest, error) {
	if req.PassPercentage == 0 {
		req.PassPercentage = defaultPassPercentage
	}
	if err := validation.ValidateCreateTest(req); err != nil {
		return nil, err
	}

	code := strings.ToUpper(strings.TrimSpace(req.TestID))
	exists, err := s.testRepo.CodeExists(code)
	if err != nil {
		return nil, fmt.Errorf("error checking test code: %w", err)
	}
	if exists {
		return nil, apperr.ErrTestCodeExists
	}

	test := model.Test{
		Code:           code,
		Title:          strings.TrimSpace(req.Title),
		Description:    req.Description,
		TimeLimit:      req.TimeLimit,
		PassPercentage: req.PassPercentage,
		IsActive:       true,
		Questions:      toQuestionModels(req.Questions),
	}
	if err := s.testRepo.Create(&test); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.ErrTestCodeExists
		}
		log.Error().Err(err).Str("code", code).Msg("Failed to create test")
		return nil, fmt.Errorf("error creating test: %w", err)
	}

	log.Info().Str("code", code).Int("questions", len(test.Questions)).Msg("Test created")
	resp := toAdminTest(&test)
	return &resp, nil
}

func (s *adminTestService) GetTest(code string) (*dto.AdminTest, error) {
	test, err := s.findTest(code)
	if err != nil {
		return nil, err
	}
	resp := toAdminTest(test)
	return &resp, nil
}

func (s *adminTestService) UpdateTest(code string, req dto.UpdateTestRequest) (*dto.AdminTest, error) {
	if req.PassPercentage == 0 {
		req.PassPercentage = defaultPassPercentage
	}
	if err := validation.ValidateUpdateTest(req); err != nil {
		return nil, err
	}

	test, err := s.findTest(code)
	if err != nil {
		return nil, err
	}

	test.Title = strings.TrimSpace(req.Title)
	test.Description = req.Description
	test.TimeLimit = req.TimeLimit
	test.PassPercentage = req.PassPercentage
	if req.IsActive != nil {
		test.IsActive = *req.IsActive
	}

	if err := s.testRepo.ReplaceQuestions(test, toQuestionModels(req.Questions)); err != nil {
		log.Error().Err(err).Str("code", test.Code).Msg("Failed to update test")
		return nil, fmt.Errorf("error updating test: %w", err)
	}

	resp := toAdminTest(test)
	return &resp, nil
}

func (s *adminTestService) DeleteTest(code string) error {
	code = strings.ToUpper(code)
	if err := s.testRepo.Delete(code); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.ErrTestNotFound
		}
		log.Error().Err(err).Str("code", code).Msg("Failed to delete test")
		return fmt.Errorf("error deleting test: %w", err)
	}
	log.Info().Str("code", code).Msg("Test deleted")
	return nil
}

// GetAnalytics flattens every user's attempts at the given test into one list.
func (s *adminTestService) GetAnalytics(code string) ([]dto.AnalyticsEntry, error) {
	code = strings.ToUpper(code)
	rows, err := s.attemptRepo.FindByTestCodeWithUsers(code)
	if err != nil {
		log.Error().Err(err).Str("code", code).Msg("Failed to load analytics")
		return nil, fmt.Errorf("error fetching analytics: %w", err)
	}

	entries := make([]dto.AnalyticsEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, dto.AnalyticsEntry{
			AttemptID:      row.ID,
			UserID:         row.UserID,
			UserName:       row.UserName,
			UserEmail:      row.UserEmail,
			TestCode:       row.TestCode,
			TestTitle:      row.TestTitle,
			Score:          row.Score,
			TotalQuestions: row.TotalQuestions,
			Percentage:     row.Percentage,
			Status:         row.Status,
			TimeSpent:      row.TimeSpent,
			Violations:     row.Violations,
			ViolationTypes: row.ViolationTypes,
			AttemptedAt:    row.AttemptedAt,
		})
	}
	return entries, nil
}

// GetAttemptDetail rebuilds the per-question breakdown by joining the stored
// answer vector against the test's current question set. If the questions
// were edited after the attempt, the breakdown reflects the edited set, not
// what the user actually saw.
func (s *adminTestService) GetAttemptDetail(userID, attemptID uint) (*dto.AttemptDetail, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrUserNotFound
		}
		return nil, fmt.Errorf("error fetching user: %w", err)
	}

	attempt, err := s.attemptRepo.FindByIDAndUser(attemptID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrAttemptNotFound
		}
		return nil, fmt.Errorf("error fetching attempt: %w", err)
	}

	test, err := s.testRepo.FindByCode(attempt.TestCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrTestNotFound
		}
		return nil, fmt.Errorf("error fetching test: %w", err)
	}

	eval := s.scoring.Evaluate(test.Questions, attempt.Answers, attempt.Violations, test.PassPercentage)
	for i := range eval.Results {
		eval.Results[i].Level = test.Questions[i].Level
	}

	detail := &dto.AttemptDetail{Results: eval.Results}
	detail.Student.Name = user.Name
	detail.Student.Email = user.Email
	detail.Test.Title = test.Title
	detail.Test.TestID = test.Code
	detail.Test.PassPercentage = test.PassPercentage
	detail.Attempt.Score = attempt.Score
	detail.Attempt.Total = attempt.TotalQuestions
	detail.Attempt.Percentage = attempt.Percentage
	detail.Attempt.Status = attempt.Status
	detail.Attempt.TimeSpent = attempt.TimeSpent
	detail.Attempt.Violations = attempt.Violations
	detail.Attempt.ViolationTypes = attempt.ViolationTypes
	detail.Attempt.AttemptedAt = attempt.AttemptedAt
	return detail, nil
}

func (s *adminTestService) findTest(code string) (*model.Test, error) {
	code = strings.ToUpper(code)
	test, err := s.testRepo.FindByCode(code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrTestNotFound
		}
		return nil, fmt.Errorf("error fetching test %s: %w", code, err)
	}
	return test, nil
}

func toQuestionModels(inputs []dto.QuestionInput) []model.Question {
	questions := make([]model.Question, 0, len(inputs))
	for i, in := range inputs {
		level := in.Level
		if level == "" {
			level = model.LevelMedium
		}
		questions = append(questions, model.Question{
			Text:     strings.TrimSpace(in.Text),
			Options:  in.Options,
			Answer:   in.Answer,
			Level:    level,
			Position: i,
		})
	}
	return questions
}

func toAdminTest(test *model.Test) dto.AdminTest {
	var out dto.AdminTest
	if err := copier.Copy(&out, test); err != nil {
		log.Error().Err(err).Str("code", test.Code).Msg("Failed to map test to admin DTO")
	}
	out.TestID = test.Code
	return out
}
