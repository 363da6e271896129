package service

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/gabadev/furduncinho047-api/internal/config"
	"github.com/gabadev/furduncinho047-api/internal/domain"
	"github.com/gabadev/furduncinho047-api/internal/repository"
)

type fakeUserRepo struct {
	mu     sync.Mutex
	users  map[uint]domain.User
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uint]domain.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, user domain.User) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, u := range f.users {
		if strings.EqualFold(u.Email, user.Email) {
			return domain.User{}, repository.ErrUserEmailExists
		}
	}

	f.nextID++
	user.ID = f.nextID
	f.users[user.ID] = user

	return user, nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, u := range f.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}

	return domain.User{}, repository.ErrUserNotFound
}

func (f *fakeUserRepo) TouchLastSignedIn(_ context.Context, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	user, ok := f.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}

	user.LastSignedIn = time.Now()
	f.users[id] = user

	return nil
}

func testRolePolicy() *config.APIConfig {
	return &config.APIConfig{
		OwnerEmail:  "gaba@furduncinho.com",
		AdminEmails: []string{"portaria@furduncinho.com"},
	}
}

func TestSignup(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a regular user", func(t *testing.T) {
		svc := NewAuthService(newFakeUserRepo(), testRolePolicy())

		user, err := svc.Signup(ctx, domain.User{
			Name:     "Maria Silva",
			Email:    "maria@example.com",
			Password: "senha1234",
		})
		require.NoError(t, err)

		assert.Equal(t, domain.RoleUser, user.Role)
		assert.Equal(t, "local", user.LoginMethod)
		assert.False(t, user.LastSignedIn.IsZero())

		// Never the raw password.
		assert.NotEqual(t, "senha1234", user.Password)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("senha1234")))
	})

	t.Run("owner email signs up as admin", func(t *testing.T) {
		svc := NewAuthService(newFakeUserRepo(), testRolePolicy())

		user, err := svc.Signup(ctx, domain.User{
			Name:     "Gaba",
			Email:    "Gaba@Furduncinho.com",
			Password: "senha1234",
		})
		require.NoError(t, err)
		assert.Equal(t, domain.RoleAdmin, user.Role)
	})

	t.Run("allow-listed email signs up as admin", func(t *testing.T) {
		svc := NewAuthService(newFakeUserRepo(), testRolePolicy())

		user, err := svc.Signup(ctx, domain.User{
			Name:     "Portaria",
			Email:    "portaria@furduncinho.com",
			Password: "senha1234",
		})
		require.NoError(t, err)
		assert.Equal(t, domain.RoleAdmin, user.Role)
	})

	t.Run("duplicate email", func(t *testing.T) {
		svc := NewAuthService(newFakeUserRepo(), testRolePolicy())

		_, err := svc.Signup(ctx, domain.User{Name: "A", Email: "dup@example.com", Password: "senha1234"})
		require.NoError(t, err)

		_, err = svc.Signup(ctx, domain.User{Name: "B", Email: "dup@example.com", Password: "senha1234"})
		assert.ErrorIs(t, err, ErrUserEmailExists)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	repo := newFakeUserRepo()
	svc := NewAuthService(repo, testRolePolicy())

	created, err := svc.Signup(ctx, domain.User{
		Name:     "Maria Silva",
		Email:    "maria@example.com",
		Password: "senha1234",
	})
	require.NoError(t, err)

	t.Run("right password", func(t *testing.T) {
		user, err := svc.Login(ctx, "maria@example.com", "senha1234")
		require.NoError(t, err)
		assert.Equal(t, created.ID, user.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, "maria@example.com", "senha0000")
		assert.ErrorIs(t, err, ErrWrongPassword)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(ctx, "nobody@example.com", "senha1234")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}
