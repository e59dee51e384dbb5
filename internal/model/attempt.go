package model

import "time"

// Attempt statuses, in precedence order: disqualification always wins,
// then the pass-percentage check.
const (
	StatusCompleted    = "completed"
	StatusFailed       = "failed"
	StatusDisqualified = "disqualified"
)

// Violation tags recorded by the proctoring monitor.
const (
	ViolationTabSwitch     = "tab_switch"
	ViolationRightClick    = "right_click"
	ViolationCopyAttempt   = "copy_attempt"
	ViolationTextSelection = "text_selection"
)

// Attempt is immutable once written; one row per (user, test code) pair,
// enforced by the composite unique index.
type Attempt struct {
	ID             uint      `gorm:"primarykey" json:"id"`
	UserID         uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_attempt_user_test"`
	TestCode       string    `json:"test_id" gorm:"not null;uniqueIndex:idx_attempt_user_test"`
	TestTitle      string    `json:"test_title" gorm:"not null"` // snapshot; the test may be edited later
	Score          int       `json:"score" gorm:"not null"`
	TotalQuestions int       `json:"total_questions" gorm:"not null"`
	Percentage     int       `json:"percentage" gorm:"not null"`
	Status         string    `json:"status" gorm:"not null"`
	TimeSpent      int       `json:"time_spent" gorm:"not null"` // seconds
	Violations     int       `json:"violations" gorm:"not null;default:0"`
	ViolationTypes []string  `json:"violation_types" gorm:"serializer:json"`
	Answers        []int     `json:"answers" gorm:"serializer:json"` // -1 = unanswered
	AttemptedAt    time.Time `json:"attempted_at" gorm:"autoCreateTime"`
}
