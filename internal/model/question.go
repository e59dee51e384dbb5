package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	LevelEasy   = "easy"
	LevelMedium = "medium"
	LevelHard   = "hard"
)

type Question struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	TestID    uint           `json:"test_id" gorm:"not null;index"`
	Text      string         `json:"text" gorm:"type:text;not null"`
	Options   []string       `json:"options" gorm:"serializer:json;not null"` // 2-6 option strings
	Answer    int            `json:"answer" gorm:"not null"`                  // index into Options; stripped from user-facing DTOs
	Level     string         `json:"level" gorm:"not null;default:'medium'"`
	Position  int            `json:"position" gorm:"not null"` // order within the test
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
