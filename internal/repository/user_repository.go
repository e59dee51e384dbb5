package repository

import (
	"github.com/Sooraj-Rao/quiz-builder/internal/model"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(user *model.User) error
	FindByID(id uint) (*model.User, error)
	FindByEmail(email string) (*model.User, error)
	FindByIDWithAttempts(id uint) (*model.User, error)
	FindAllWithAttempts() ([]model.User, error)
	EmailTakenByOther(email string, userID uint) (bool, error)
	Update(user *model.User) error
	Delete(id uint) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *model.User) error {
	return r.db.Create(user).Error
}

func (r *userRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	err := r.db.First(&user, id).Error
	return &user, err
}

func (r *userRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.db.Where("email = ?", email).First(&user).Error
	return &user, err
}

func (r *userRepository) FindByIDWithAttempts(id uint) (*model.User, error) {
	var user model.User
	err := r.db.Preload("Attempts", func(db *gorm.DB) *gorm.DB {
		return db.Order("attempts.attempted_at DESC")
	}).First(&user, id).Error
	return &user, err
}

func (r *userRepository) FindAllWithAttempts() ([]model.User, error) {
	var users []model.User
	err := r.db.Preload("Attempts", func(db *gorm.DB) *gorm.DB {
		return db.Order("attempts.attempted_at DESC")
	}).Order("users.created_at DESC").Find(&users).Error
	return users, err
}

func (r *userRepository) EmailTakenByOther(email string, userID uint) (bool, error) {
	var count int64
	err := r.db.Model(&model.User{}).
		Where("email = ? AND id <> ?", email, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *userRepository) Update(user *model.User) error {
	return r.db.Save(user).Error
}

func (r *userRepository) Delete(id uint) error {
	res := r.db.Delete(&model.User{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
