package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Sooraj-Rao/quiz-builder/config"
	"github.com/Sooraj-Rao/quiz-builder/internal/apperr"
	"github.com/Sooraj-Rao/quiz-builder/internal/auth"
	"github.com/Sooraj-Rao/quiz-builder/internal/dto"
	"github.com/Sooraj-Rao/quiz-builder/internal/model"
	"github.com/Sooraj-Rao/quiz-builder/internal/repository"
	"github.com/Sooraj-Rao/quiz-builder/internal/validation"
)

const bcryptCost = 12

type AuthService interface {
	Register(req dto.RegisterRequest) (*dto.TokenResponse, error)
	Login(req dto.LoginRequest) (*dto.TokenResponse, error)
	AdminLogin(req dto.AdminLoginRequest) (*dto.TokenResponse, error)
}

type authService struct {
	userRepo repository.UserRepository
	cfg      *config.Config
}

func NewAuthService(userRepo repository.UserRepository, cfg *config.Config) AuthService {
	return &authService{userRepo: userRepo, cfg: cfg}
}

func (s *authService) Register(req dto.RegisterRequest) (*dto.TokenResponse, error) {
	if err := validation.ValidateRegistration(req); err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if _, err := s.userRepo.FindByEmail(email); err == nil {
		return nil, apperr.ErrEmailRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("error checking email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := model.User{
		Name:     strings.TrimSpace(req.Name),
		Email:    email,
		Password: string(hash),
		Role:     model.RoleUser,
	}
	if err := s.userRepo.Create(&user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.ErrEmailRegistered
		}
		log.Error().Err(err).Str("email", email).Msg("Failed to create user")
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return s.tokenResponse(user.ID, user.Name, user.Email, user.Role)
}

func (s *authService) Login(req dto.LoginRequest) (*dto.TokenResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error fetching user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, apperr.ErrInvalidCredentials
	}

	return s.tokenResponse(user.ID, user.Name, user.Email, user.Role)
}

// AdminLogin checks the configured administrator credentials and issues a
// token with the admin role. There is no admin row in the users table.
func (s *authService) AdminLogin(req dto.AdminLoginRequest) (*dto.TokenResponse, error) {
	if req.Email != s.cfg.Admin.Email || req.Password != s.cfg.Admin.Password {
		return nil, apperr.ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(0, s.cfg.Admin.Email, model.RoleAdmin, s.cfg.JWT.Secret, s.cfg.JWT.Expiry)
	if err != nil {
		return nil, fmt.Errorf("error signing admin token: %w", err)
	}
	return &dto.TokenResponse{
		Token: token,
		User: dto.UserSummary{
			Name:  "Administrator",
			Email: s.cfg.Admin.Email,
			Role:  model.RoleAdmin,
		},
	}, nil
}

func (s *authService) tokenResponse(id uint, name, email, role string) (*dto.TokenResponse, error) {
	token, err := auth.GenerateToken(id, email, role, s.cfg.JWT.Secret, s.cfg.JWT.Expiry)
	if err != nil {
		return nil, fmt.Errorf("error signing token: %w", err)
	}
	return &dto.TokenResponse{
		Token: token,
		User:  dto.UserSummary{ID: id, Name: name, Email: email, Role: role},
	}, nil
}
