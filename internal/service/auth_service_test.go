package service

import (
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/Sooraj-Rao/quiz-builder/config"
	"github.com/Sooraj-Rao/quiz-builder/internal/apperr"
	"github.com/Sooraj-Rao/quiz-builder/internal/auth"
	"github.com/Sooraj-Rao/quiz-builder/internal/dto"
	"github.com/Sooraj-Rao/quiz-builder/internal/model"
	"github.com/Sooraj-Rao/quiz-builder/internal/repository"
)

type fakeUserRepo struct {
	repository.UserRepository
	usersByEmail map[string]*model.User
	nextID       uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{usersByEmail: make(map[string]*model.User), nextID: 1}
}

func (r *fakeUserRepo) FindByEmail(email string) (*model.User, error) {
	if u, ok := r.usersByEmail[email]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) Create(user *model.User) error {
	if _, ok := r.usersByEmail[user.Email]; ok {
		return gorm.ErrDuplicatedKey
	}
	user.ID = r.nextID
	r.nextID++
	r.usersByEmail[user.Email] = user
	return nil
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.Expiry = time.Hour
	cfg.Admin.Email = "admin@quizapp.com"
	cfg.Admin.Password = "admin123"
	return cfg
}

func TestRegisterIssuesToken(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, testConfig())

	resp, err := svc.Register(dto.RegisterRequest{
		Name:     "Ada",
		Email:    "Ada@Example.com",
		Password: "secret1",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if resp.User.Email != "ada@example.com" {
		t.Errorf("expected the email lowercased, got %q", resp.User.Email)
	}
	if resp.User.Role != model.RoleUser {
		t.Errorf("expected user role, got %q", resp.User.Role)
	}

	claims, err := auth.ParseToken(resp.Token, "test-secret")
	if err != nil {
		t.Fatalf("token does not parse: %v", err)
	}
	if claims.UserID != resp.User.ID {
		t.Errorf("token user %d does not match response user %d", claims.UserID, resp.User.ID)
	}

	stored := repo.usersByEmail["ada@example.com"]
	if stored == nil {
		t.Fatal("expected the user to be stored")
	}
	if stored.Password == "secret1" {
		t.Error("expected the password to be hashed")
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, testConfig())

	req := dto.RegisterRequest{Name: "Ada", Email: "ada@example.com", Password: "secret1"}
	if _, err := svc.Register(req); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}
	if _, err := svc.Register(req); !errors.Is(err, apperr.ErrEmailRegistered) {
		t.Errorf("expected ErrEmailRegistered, got %v", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo(), testConfig())

	_, err := svc.Register(dto.RegisterRequest{Name: "A", Email: "a@example.com", Password: "x"})
	if _, ok := apperr.AsValidation(err); !ok {
		t.Errorf("expected a validation error, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, testConfig())

	if _, err := svc.Register(dto.RegisterRequest{Name: "Ada", Email: "ada@example.com", Password: "secret1"}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	resp, err := svc.Login(dto.LoginRequest{Email: "ADA@example.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if resp.Token == "" {
		t.Error("expected a token")
	}

	if _, err := svc.Login(dto.LoginRequest{Email: "ada@example.com", Password: "wrong"}); !errors.Is(err, apperr.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for a wrong password, got %v", err)
	}
	if _, err := svc.Login(dto.LoginRequest{Email: "nobody@example.com", Password: "secret1"}); !errors.Is(err, apperr.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for an unknown email, got %v", err)
	}
}

func TestAdminLogin(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo(), testConfig())

	resp, err := svc.AdminLogin(dto.AdminLoginRequest{Email: "admin@quizapp.com", Password: "admin123"})
	if err != nil {
		t.Fatalf("AdminLogin failed: %v", err)
	}
	if resp.User.Role != model.RoleAdmin || resp.User.Name != "Administrator" {
		t.Errorf("unexpected admin summary: %+v", resp.User)
	}

	claims, err := auth.ParseToken(resp.Token, "test-secret")
	if err != nil {
		t.Fatalf("admin token does not parse: %v", err)
	}
	if !claims.IsAdmin() {
		t.Error("expected an admin token")
	}

	if _, err := svc.AdminLogin(dto.AdminLoginRequest{Email: "admin@quizapp.com", Password: "nope"}); !errors.Is(err, apperr.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}
