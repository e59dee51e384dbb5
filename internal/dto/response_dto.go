package dto

import (
	"time"

	"github.com/Sooraj-Rao/quiz-builder/internal/apperr"
)

type UserSummary struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// TokenResponse is returned by register, login and admin login.
type TokenResponse struct {
	Token string      `json:"token"`
	User  UserSummary `json:"user"`
}

// TestSummary lists a test without its questions.
type TestSummary struct {
	TestID         string `json:"testId"`
	Title          string `json:"title"`
	Description    string `json:"description,omitempty"`
	TimeLimit      int    `json:"timeLimit"`
	PassPercentage int    `json:"passPercentage"`
}

// QuestionPublic deliberately omits the correct answer index. It is the only
// question shape ever sent to a test taker.
type QuestionPublic struct {
	Text    string   `json:"text"`
	Options []string `json:"options"`
	Level   string   `json:"level"`
}

// TestDetail is the payload fetched when a user starts a test.
type TestDetail struct {
	TestID         string           `json:"testId"`
	Title          string           `json:"title"`
	Description    string           `json:"description,omitempty"`
	TimeLimit      int              `json:"timeLimit"`
	PassPercentage int              `json:"passPercentage"`
	Questions      []QuestionPublic `json:"questions"`
}

// QuestionResult is one row of the per-question correctness breakdown.
type QuestionResult struct {
	QuestionIndex  int      `json:"questionIndex"`
	Question       string   `json:"question"`
	Options        []string `json:"options"`
	SelectedOption int      `json:"selectedOption"`
	CorrectAnswer  int      `json:"correctAnswer"`
	IsCorrect      bool     `json:"isCorrect"`
	Level          string   `json:"level,omitempty"`
}

// SubmitResult is returned once per session from the submit endpoint.
type SubmitResult struct {
	Score          int              `json:"score"`
	Total          int              `json:"total"`
	Percentage     int              `json:"percentage"`
	Status         string           `json:"status"`
	PassPercentage int              `json:"passPercentage"`
	Violations     int              `json:"violations"`
	Results        []QuestionResult `json:"results"`
}

// AttemptSummary is one entry of a user's test history.
type AttemptSummary struct {
	ID             uint      `json:"id"`
	TestCode       string    `json:"testId"`
	TestTitle      string    `json:"testTitle"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"totalQuestions"`
	Percentage     int       `json:"percentage"`
	Status         string    `json:"status"`
	TimeSpent      int       `json:"timeSpent"`
	Violations     int       `json:"violations"`
	ViolationTypes []string  `json:"violationTypes"`
	AttemptedAt    time.Time `json:"attemptedAt"`
}

type ErrorResponse struct {
	Message string              `json:"message"`
	Fields  []apperr.FieldError `json:"fields,omitempty"`
}
