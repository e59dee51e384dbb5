package repository

import (
	"github.com/Sooraj-Rao/quiz-builder/internal/model"
	"gorm.io/gorm"
)

// AttemptWithUser pairs an attempt with its owner for analytics flattening.
type AttemptWithUser struct {
	model.Attempt
	UserName  string
	UserEmail string
}

type AttemptRepository interface {
	Create(attempt *model.Attempt) error
	FindByUser(userID uint) ([]model.Attempt, error)
	FindByIDAndUser(attemptID, userID uint) (*model.Attempt, error)
	ExistsForUserAndTest(userID uint, testCode string) (bool, error)
	CodesAttemptedBy(userID uint) ([]string, error)
	FindByTestCodeWithUsers(testCode string) ([]AttemptWithUser, error)
}

type attemptRepository struct {
	db *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) AttemptRepository {
	return &attemptRepository{db: db}
}

func (r *attemptRepository) Create(attempt *model.Attempt) error {
	return r.db.Create(attempt).Error
}

func (r *attemptRepository) FindByUser(userID uint) ([]model.Attempt, error) {
	var attempts []model.Attempt
	err := r.db.Where("user_id = ?", userID).
		Order("attempted_at DESC").Find(&attempts).Error
	return attempts, err
}

func (r *attemptRepository) FindByIDAndUser(attemptID, userID uint) (*model.Attempt, error) {
	var attempt model.Attempt
	err := r.db.Where("id = ? AND user_id = ?", attemptID, userID).
		First(&attempt).Error
	return &attempt, err
}

func (r *attemptRepository) ExistsForUserAndTest(userID uint, testCode string) (bool, error) {
	var count int64
	err := r.db.Model(&model.Attempt{}).
		Where("user_id = ? AND test_code = ?", userID, testCode).
		Count(&count).Error
	return count > 0, err
}

func (r *attemptRepository) CodesAttemptedBy(userID uint) ([]string, error) {
	var codes []string
	err := r.db.Model(&model.Attempt{}).
		Where("user_id = ?", userID).
		Pluck("test_code", &codes).Error
	return codes, err
}

func (r *attemptRepository) FindByTestCodeWithUsers(testCode string) ([]AttemptWithUser, error) {
	var rows []AttemptWithUser
	err := r.db.Model(&model.Attempt{}).
		Select("attempts.*, users.name AS user_name, users.email AS user_email").
		Joins("JOIN users ON users.id = attempts.user_id AND users.deleted_at IS NULL").
		Where("attempts.test_code = ?", testCode).
		Order("attempts.attempted_at DESC").
		Scan(&rows).Error
	return rows, err
}
