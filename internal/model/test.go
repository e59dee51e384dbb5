package model

import (
	"time"

	"gorm.io/gorm"
)

type Test struct {
	ID             uint           `gorm:"primarykey" json:"id"`
	Code           string         `json:"test_id" gorm:"not null;uniqueIndex"` // unique join code, stored uppercase
	Title          string         `json:"title" gorm:"not null"`
	Description    string         `json:"description,omitempty"`
	TimeLimit      int            `json:"time_limit" gorm:"not null"` // minutes
	PassPercentage int            `json:"pass_percentage" gorm:"not null;default:60"`
	IsActive       bool           `json:"is_active" gorm:"not null;default:true"`
	CreatedBy      string         `json:"created_by" gorm:"default:'Administrator'"`
	TotalAttempts  int            `json:"total_attempts" gorm:"not null;default:0"`
	Questions      []Question     `json:"questions,omitempty" gorm:"foreignKey:TestID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}
