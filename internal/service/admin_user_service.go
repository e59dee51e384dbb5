package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/Sooraj-Rao/quiz-builder/internal/apperr"
	"github.com/Sooraj-Rao/quiz-builder/internal/dto"
	"github.com/Sooraj-Rao/quiz-builder/internal/model"
	"github.com/Sooraj-Rao/quiz-builder/internal/repository"
)

type AdminUserService interface {
	ListUsers() ([]dto.AdminUser, error)
	UpdateUser(userID uint, req dto.UpdateUserRequest) (*dto.AdminUser, error)
	DeleteUser(userID uint) error
}

type adminUserService struct {
	userRepo repository.UserRepository
}

func NewAdminUserService(userRepo repository.UserRepository) AdminUserService {
	return &adminUserService{userRepo: userRepo}
}

func (s *adminUserService) ListUsers() ([]dto.AdminUser, error) {
	users, err := s.userRepo.FindAllWithAttempts()
	if err != nil {
		log.Error().Err(err).Msg("Failed to list users")
		return nil, fmt.Errorf("error fetching users: %w", err)
	}

	out := make([]dto.AdminUser, 0, len(users))
	for _, u := range users {
		out = append(out, toAdminUser(&u))
	}
	return out, nil
}

func (s *adminUserService) UpdateUser(userID uint, req dto.UpdateUserRequest) (*dto.AdminUser, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	taken, err := s.userRepo.EmailTakenByOther(email, userID)
	if err != nil {
		return nil, fmt.Errorf("error checking email: %w", err)
	}
	if taken {
		return nil, apperr.ErrEmailRegistered
	}

	user, err := s.userRepo.FindByIDWithAttempts(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrUserNotFound
		}
		return nil, fmt.Errorf("error fetching user: %w", err)
	}

	user.Name = strings.TrimSpace(req.Name)
	user.Email = email
	if err := s.userRepo.Update(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.ErrEmailRegistered
		}
		log.Error().Err(err).Uint("userID", userID).Msg("Failed to update user")
		return nil, fmt.Errorf("error updating user: %w", err)
	}

	resp := toAdminUser(user)
	return &resp, nil
}

func (s *adminUserService) DeleteUser(userID uint) error {
	if err := s.userRepo.Delete(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.ErrUserNotFound
		}
		log.Error().Err(err).Uint("userID", userID).Msg("Failed to delete user")
		return fmt.Errorf("error deleting user: %w", err)
	}
	log.Info().Uint("userID", userID).Msg("User deleted")
	return nil
}

func toAdminUser(user *model.User) dto.AdminUser {
	out := dto.AdminUser{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
		Attempts:  make([]dto.AttemptSummary, 0, len(user.Attempts)),
	}
	for _, a := range user.Attempts {
		var summary dto.AttemptSummary
		if err := copier.Copy(&summary, &a); err != nil {
			log.Error().Err(err).Uint("attemptID", a.ID).Msg("Failed to map attempt summary")
			continue
		}
		out.Attempts = append(out.Attempts, summary)
	}
	return out
}
