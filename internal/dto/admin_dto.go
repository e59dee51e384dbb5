package dto

import "time"

// AdminQuestion includes the correct answer index; admin-only.
type AdminQuestion struct {
	ID       uint     `json:"id"`
	Text     string   `json:"text"`
	Options  []string `json:"options"`
	Answer   int      `json:"answer"`
	Level    string   `json:"level"`
	Position int      `json:"position"`
}

// AdminTest is the full test definition as seen by administrators.
type AdminTest struct {
	ID             uint            `json:"id"`
	TestID         string          `json:"testId"`
	Title          string          `json:"title"`
	Description    string          `json:"description,omitempty"`
	TimeLimit      int             `json:"timeLimit"`
	PassPercentage int             `json:"passPercentage"`
	IsActive       bool            `json:"isActive"`
	CreatedBy      string          `json:"createdBy"`
	TotalAttempts  int             `json:"totalAttempts"`
	Questions      []AdminQuestion `json:"questions,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// AdminUser lists a user together with their attempt history; never the
// password hash.
type AdminUser struct {
	ID        uint             `json:"id"`
	Name      string           `json:"name"`
	Email     string           `json:"email"`
	Role      string           `json:"role"`
	Attempts  []AttemptSummary `json:"testAttempts"`
	CreatedAt time.Time        `json:"createdAt"`
}

// AnalyticsEntry flattens one attempt with its owner for per-test reporting.
type AnalyticsEntry struct {
	AttemptID      uint      `json:"attemptId"`
	UserID         uint      `json:"userId"`
	UserName       string    `json:"userName"`
	UserEmail      string    `json:"userEmail"`
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

// AttemptDetail re-joins a stored attempt against the test's current question
// set for the admin result view.
type AttemptDetail struct {
	Student struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	} `json:"student"`
	Test struct {
		Title          string `json:"title"`
		TestID         string `json:"testId"`
		PassPercentage int    `json:"passPercentage"`
	} `json:"test"`
	Attempt struct {
		Score          int       `json:"score"`
		Total          int       `json:"total"`
		Percentage     int       `json:"percentage"`
		Status         string    `json:"status"`
		TimeSpent      int       `json:"timeSpent"`
		Violations     int       `json:"violations"`
		ViolationTypes []string  `json:"violationTypes"`
		AttemptedAt    time.Time `json:"attemptedAt"`
	} `json:"attempt"`
	Results []QuestionResult `json:"results"`
}
