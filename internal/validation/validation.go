// Package validation holds the domain constraints as explicit functions so
// that every rule is visible in one place instead of scattered across
// binding tags. Each function returns nil or a *apperr.ValidationError
// listing every failed field.
package validation

import (
	"fmt"
	"strings"

	"github.com/Sooraj-Rao/quiz-builder/internal/apperr"
	"github.com/Sooraj-Rao/quiz-builder/internal/dto"
)

const (
	MinNameLength         = 2
	MinPasswordLength     = 6
	MinTitleLength        = 3
	MinQuestionTextLength = 10
	MaxDescriptionLength  = 500
	MinOptions            = 2
	MaxOptions            = 6
	MinTimeLimit          = 1
	MaxTimeLimit          = 300
)

func ValidateRegistration(req dto.RegisterRequest) error {
	ve := &apperr.ValidationError{}
	if len(strings.TrimSpace(req.Name)) < MinNameLength {
		ve.Add("name", fmt.Sprintf("name must be at least %d characters", MinNameLength))
	}
	if len(req.Password) < MinPasswordLength {
		ve.Add("password", fmt.Sprintf("password must be at least %d characters", MinPasswordLength))
	}
	if ve.HasErrors() {
		return ve
	}
	return nil
}

// validateTestFields covers the constraints shared by create and update.
func validateTestFields(ve *apperr.ValidationError, title, description string, timeLimit, passPercentage int, questions []dto.QuestionInput) {
	if len(strings.TrimSpace(title)) < MinTitleLength {
		ve.Add("title", fmt.Sprintf("test title must be at least %d characters", MinTitleLength))
	}
	if len(description) > MaxDescriptionLength {
		ve.Add("description", fmt.Sprintf("description cannot exceed %d characters", MaxDescriptionLength))
	}
	if timeLimit < MinTimeLimit || timeLimit > MaxTimeLimit {
		ve.Add("timeLimit", fmt.Sprintf("time limit must be between %d and %d minutes", MinTimeLimit, MaxTimeLimit))
	}
	if passPercentage < 0 || passPercentage > 100 {
		ve.Add("passPercentage", "pass percentage must be between 0 and 100")
	}
	if len(questions) == 0 {
		ve.Add("questions", "a test must have at least one question")
	}
	for i, q := range questions {
		validateQuestion(ve, i, q)
	}
}

func validateQuestion(ve *apperr.ValidationError, idx int, q dto.QuestionInput) {
	field := func(name string) string { return fmt.Sprintf("questions[%d].%s", idx, name) }

	if len(strings.TrimSpace(q.Text)) < MinQuestionTextLength {
		ve.Add(field("text"), fmt.Sprintf("question must be at least %d characters", MinQuestionTextLength))
	}
	if len(q.Options) < MinOptions || len(q.Options) > MaxOptions {
		ve.Add(field("options"), fmt.Sprintf("question must have between %d and %d options", MinOptions, MaxOptions))
	} else {
		for j, opt := range q.Options {
			if strings.TrimSpace(opt) == "" {
				ve.Add(field(fmt.Sprintf("options[%d]", j)), "option text cannot be empty")
			}
		}
		if q.Answer < 0 || q.Answer >= len(q.Options) {
			ve.Add(field("answer"), fmt.Sprintf("correct answer index %d is out of range for %d options", q.Answer, len(q.Options)))
		}
	}
}

func ValidateCreateTest(req dto.CreateTestRequest) error {
	ve := &apperr.ValidationError{}
	if strings.TrimSpace(req.TestID) == "" {
		ve.Add("testId", "test ID is required")
	}
	validateTestFields(ve, req.Title, req.Description, req.TimeLimit, req.PassPercentage, req.Questions)
	if ve.HasErrors() {
		return ve
	}
	return nil
}

func ValidateUpdateTest(req dto.UpdateTestRequest) error {
	ve := &apperr.ValidationError{}
	validateTestFields(ve, req.Title, req.Description, req.TimeLimit, req.PassPercentage, req.Questions)
	if ve.HasErrors() {
		return ve
	}
	return nil
}
