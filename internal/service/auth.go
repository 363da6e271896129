package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/gabadev/furduncinho047-api/internal/domain"
	"github.com/gabadev/furduncinho047-api/internal/repository"
)

var (
	ErrUserEmailExists = repository.ErrUserEmailExists
	ErrWrongPassword   = errors.New("wrong password")
)

type AuthUserRepository interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
	TouchLastSignedIn(ctx context.Context, id uint) error
}

// RolePolicy decides whether a signup email is granted the admin role.
// The deployment's owner/allow-list lives in config, not in here.
type RolePolicy interface {
	IsPrivileged(email string) bool
}

type AuthService struct {
	repo   AuthUserRepository
	policy RolePolicy
}

func NewAuthService(repo AuthUserRepository, policy RolePolicy) *AuthService {
	return &AuthService{
		repo:   repo,
		policy: policy,
	}
}

func (s *AuthService) Signup(ctx context.Context, user domain.User) (domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, err
	}
	user.Password = string(hash)

	user.LoginMethod = "local"
	user.Role = domain.RoleUser
	if s.policy != nil && s.policy.IsPrivileged(user.Email) {
		user.Role = domain.RoleAdmin
	}
	user.LastSignedIn = time.Now()

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrUserEmailExists) {
			return domain.User{}, ErrUserEmailExists
		}

		return domain.User{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (domain.User, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domain.User{}, ErrUserNotFound
		}

		return domain.User{}, fmt.Errorf("s.repo.FindByEmail -> %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return domain.User{}, ErrWrongPassword
	}

	if err = s.repo.TouchLastSignedIn(ctx, user.ID); err != nil {
		return domain.User{}, fmt.Errorf("s.repo.TouchLastSignedIn -> %w", err)
	}

	return user, nil
}
