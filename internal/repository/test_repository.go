package repository

import (
	"github.com/Sooraj-Rao/quiz-builder/internal/model"
	"gorm.io/gorm"
)

type TestRepository interface {
	Create(test *model.Test) error
	FindByCode(code string) (*model.Test, error)
	FindActiveByCode(code string) (*model.Test, error)
	FindAll() ([]model.Test, error)
	FindActiveExcluding(codes []string) ([]model.Test, error)
	CodeExists(code string) (bool, error)
	ReplaceQuestions(test *model.Test, questions []model.Question) error
	Update(test *model.Test) error
	Delete(code string) error
	IncrementAttempts(id uint) error
}

type testRepository struct {
	db *gorm.DB
}

func NewTestRepository(db *gorm.DB) TestRepository {
	return &testRepository{db: db}
}

func withOrderedQuestions(db *gorm.DB) *gorm.DB {
	return db.Order("questions.position ASC")
}

func (r *testRepository) Create(test *model.Test) error {
	// Create with associations persists test.Questions in one go.
	return r.db.Create(test).Error
}

func (r *testRepository) FindByCode(code string) (*model.Test, error) {
	var test model.Test
	err := r.db.Preload("Questions", withOrderedQuestions).
		Where("code = ?", code).First(&test).Error
	return &test, err
}

func (r *testRepository) FindActiveByCode(code string) (*model.Test, error) {
	var test model.Test
	err := r.db.Preload("Questions", withOrderedQuestions).
		Where("code = ? AND is_active = ?", code, true).First(&test).Error
	return &test, err
}

func (r *testRepository) FindAll() ([]model.Test, error) {
	var tests []model.Test
	err := r.db.Preload("Questions", withOrderedQuestions).
		Order("tests.created_at DESC").Find(&tests).Error
	return tests, err
}

func (r *testRepository) FindActiveExcluding(codes []string) ([]model.Test, error) {
	var tests []model.Test
	query := r.db.Where("is_active = ?", true)
	if len(codes) > 0 {
		query = query.Where("code NOT IN ?", codes)
	}
	err := query.Order("tests.created_at DESC").Find(&tests).Error
	return tests, err
}

func (r *testRepository) CodeExists(code string) (bool, error) {
	var count int64
	err := r.db.Model(&model.Test{}).Where("code = ?", code).Count(&count).Error
	return count > 0, err
}

// ReplaceQuestions swaps the test's question set atomically with the field
// update carried on test itself.
func (r *testRepository) ReplaceQuestions(test *model.Test, questions []model.Question) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("test_id = ?", test.ID).Delete(&model.Question{}).Error; err != nil {
			return err
		}
		test.Questions = nil
		if err := tx.Save(test).Error; err != nil {
			return err
		}
		for i := range questions {
			questions[i].ID = 0
			questions[i].TestID = test.ID
		}
		if len(questions) > 0 {
			if err := tx.Create(&questions).Error; err != nil {
				return err
			}
		}
		test.Questions = questions
		return nil
	})
}

func (r *testRepository) Update(test *model.Test) error {
	return r.db.Save(test).Error
}

func (r *testRepository) Delete(code string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var test model.Test
		if err := tx.Where("code = ?", code).First(&test).Error; err != nil {
			return err
		}
		if err := tx.Where("test_id = ?", test.ID).Delete(&model.Question{}).Error; err != nil {
			return err
		}
		return tx.Delete(&test).Error
	})
}

func (r *testRepository) IncrementAttempts(id uint) error {
	return r.db.Model(&model.Test{}).Where("id = ?", id).
		UpdateColumn("total_attempts", gorm.Expr("total_attempts + 1")).Error
}
