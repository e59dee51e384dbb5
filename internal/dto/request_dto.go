package dto

// RegisterRequest creates a new user account.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AdminLoginRequest is checked against the configured administrator
// credentials, not the users table.
type AdminLoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// QuestionInput is used within CreateTestRequest and UpdateTestRequest.
// Domain constraints (text length, option bounds, answer index) are checked
// by the validation package, not binding tags.
type QuestionInput struct {
	Text    string   `json:"text" binding:"required"`
	Options []string `json:"options" binding:"required"`
	Answer  int      `json:"answer"`
	Level   string   `json:"level" binding:"omitempty,oneof=easy medium hard"`
}

type CreateTestRequest struct {
	Title          string          `json:"title" binding:"required"`
	TestID         string          `json:"testId" binding:"required"`
	Description    string          `json:"description"`
	TimeLimit      int             `json:"timeLimit" binding:"required"`
	PassPercentage int             `json:"passPercentage"` // 0 means "use the default of 60"
	Questions      []QuestionInput `json:"questions" binding:"required,dive"`
}

type UpdateTestRequest struct {
	Title          string          `json:"title" binding:"required"`
	Description    string          `json:"description"`
	TimeLimit      int             `json:"timeLimit" binding:"required"`
	PassPercentage int             `json:"passPercentage"`
	IsActive       *bool           `json:"isActive"`
	Questions      []QuestionInput `json:"questions" binding:"required,dive"`
}

// SubmitTestRequest carries everything the session controller gathered:
// the full answer vector (-1 = unanswered), elapsed whole seconds, and the
// proctoring monitor's violation count and tag log.
type SubmitTestRequest struct {
	Answers        []int    `json:"answers" binding:"required"`
	TimeSpent      int      `json:"timeSpent"`
	Violations     int      `json:"violations"`
	ViolationTypes []string `json:"violationTypes"`
}

type UpdateUserRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
}
