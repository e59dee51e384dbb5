package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/Sooraj-Rao/quiz-builder/internal/apperr"
	"github.com/Sooraj-Rao/quiz-builder/internal/dto"
)

func fieldsOf(t *testing.T, err error) map[string]bool {
	t.Helper()
	var ve *apperr.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected a ValidationError, got %v", err)
	}
	fields := make(map[string]bool)
	for _, f := range ve.Fields {
		fields[f.Field] = true
	}
	return fields
}

func validQuestion() dto.QuestionInput {
	return dto.QuestionInput{
		Text:    "What is two plus two?",
		Options: []string{"three", "four"},
		Answer:  1,
		Level:   "easy",
	}
}

func validCreateRequest() dto.CreateTestRequest {
	return dto.CreateTestRequest{
		Title:     "Algebra Basics",
		TestID:    "MATH101",
		TimeLimit: 30,
		Questions: []dto.QuestionInput{validQuestion()},
	}
}

func TestValidateRegistration(t *testing.T) {
	ok := dto.RegisterRequest{Name: "Ada", Email: "ada@example.com", Password: "secret1"}
	if err := ValidateRegistration(ok); err != nil {
		t.Errorf("expected valid registration, got %v", err)
	}

	bad := dto.RegisterRequest{Name: " a ", Email: "a@example.com", Password: "short"}
	fields := fieldsOf(t, ValidateRegistration(bad))
	if !fields["name"] || !fields["password"] {
		t.Errorf("expected both name and password to be flagged, got %v", fields)
	}
}

func TestValidateCreateTestAccepts(t *testing.T) {
	if err := ValidateCreateTest(validCreateRequest()); err != nil {
		t.Errorf("expected valid request, got %v", err)
	}
}

func TestValidateCreateTestCollectsAllFailures(t *testing.T) {
	req := dto.CreateTestRequest{
		Title:       "ab",
		TestID:      "  ",
		Description: strings.Repeat("x", 501),
		TimeLimit:   0,
		Questions:   nil,
	}
	fields := fieldsOf(t, ValidateCreateTest(req))

	for _, want := range []string{"title", "testId", "description", "timeLimit", "questions"} {
		if !fields[want] {
			t.Errorf("expected field %q to be flagged, flagged: %v", want, fields)
		}
	}
}

func TestValidateCreateTestQuestionRules(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*dto.QuestionInput)
		wantField string
	}{
		{
			name:      "short question text",
			mutate:    func(q *dto.QuestionInput) { q.Text = "2+2?" },
			wantField: "questions[0].text",
		},
		{
			name:      "too few options",
			mutate:    func(q *dto.QuestionInput) { q.Options = []string{"four"} },
			wantField: "questions[0].options",
		},
		{
			name: "too many options",
			mutate: func(q *dto.QuestionInput) {
				q.Options = []string{"a", "b", "c", "d", "e", "f", "g"}
			},
			wantField: "questions[0].options",
		},
		{
			name:      "blank option",
			mutate:    func(q *dto.QuestionInput) { q.Options = []string{"four", "  "} },
			wantField: "questions[0].options[1]",
		},
		{
			name:      "answer index out of range",
			mutate:    func(q *dto.QuestionInput) { q.Answer = 2 },
			wantField: "questions[0].answer",
		},
		{
			name:      "negative answer index",
			mutate:    func(q *dto.QuestionInput) { q.Answer = -1 },
			wantField: "questions[0].answer",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := validCreateRequest()
			tc.mutate(&req.Questions[0])
			fields := fieldsOf(t, ValidateCreateTest(req))
			if !fields[tc.wantField] {
				t.Errorf("expected %q to be flagged, flagged: %v", tc.wantField, fields)
			}
		})
	}
}

func TestValidateCreateTestPassPercentageBounds(t *testing.T) {
	req := validCreateRequest()
	req.PassPercentage = 101
	fields := fieldsOf(t, ValidateCreateTest(req))
	if !fields["passPercentage"] {
		t.Errorf("expected passPercentage to be flagged, got %v", fields)
	}

	req.PassPercentage = 100
	if err := ValidateCreateTest(req); err != nil {
		t.Errorf("expected 100 to be accepted, got %v", err)
	}
}

func TestValidateUpdateTestSkipsTestID(t *testing.T) {
	req := dto.UpdateTestRequest{
		Title:     "Algebra Basics",
		TimeLimit: 30,
		Questions: []dto.QuestionInput{validQuestion()},
	}
	if err := ValidateUpdateTest(req); err != nil {
		t.Errorf("expected valid update, got %v", err)
	}
}
