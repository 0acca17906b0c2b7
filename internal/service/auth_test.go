package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/imaa0/Inventory-Management/internal/domain"
)

type fakeUserRepo struct {
	usersByEmail map[string]domain.User
	nextID       uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		usersByEmail: make(map[string]domain.User),
		nextID:       1,
	}
}

func (f *fakeUserRepo) Create(_ context.Context, user domain.User) (domain.User, error) {
	if _, ok := f.usersByEmail[user.Email]; ok {
		return domain.User{}, ErrUserEmailExists
	}

	user.ID = f.nextID
	f.nextID++
	f.usersByEmail[user.Email] = user

	return user, nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (domain.User, error) {
	user, ok := f.usersByEmail[email]
	if !ok {
		return domain.User{}, ErrUserNotFound
	}

	return user, nil
}

func TestAuthService_Signup(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo)

	created, err := svc.Signup(context.Background(), domain.User{
		Email:    "jo@example.com",
		Password: "password123",
		Name:     "Jo",
	})

	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	// The stored password must be a hash, never the plaintext.
	assert.NotEqual(t, "password123", created.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("password123")))
}

func TestAuthService_Signup_DuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo)

	_, err := svc.Signup(context.Background(), domain.User{Email: "jo@example.com", Password: "password123"})
	require.NoError(t, err)

	_, err = svc.Signup(context.Background(), domain.User{Email: "jo@example.com", Password: "password456"})
	assert.ErrorIs(t, err, ErrUserEmailExists)
}

func TestAuthService_Login(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo)

	_, err := svc.Signup(context.Background(), domain.User{Email: "jo@example.com", Password: "password123"})
	require.NoError(t, err)

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{
			name:     "correct credentials",
			email:    "jo@example.com",
			password: "password123",
		},
		{
			name:     "wrong password",
			email:    "jo@example.com",
			password: "nope",
			wantErr:  ErrWrongPassword,
		},
		{
			name:     "unknown email",
			email:    "nobody@example.com",
			password: "password123",
			wantErr:  ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := svc.Login(context.Background(), tt.email, tt.password)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.email, user.Email)
		})
	}
}
