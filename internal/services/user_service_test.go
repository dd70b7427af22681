package services

import (
	"context"
	"testing"
	"time"

	"edu-cart/internal/domain"
	"edu-cart/internal/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestUserService_RegisterAndAuthenticate(t *testing.T) {
	repo := new(mocks.MockUserRepository)
	repo.On("FindByUsername", mock.Anything, "alice").Return(nil, nil).Once()
	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.User).ID = 7
	})

	svc := NewUserService(repo, []byte("test-secret"), time.Hour)
	user, err := svc.Register(context.Background(), RegisterRequest{
		Name:     "Alice",
		Username: "alice",
		Email:    "alice@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleClient, user.Role, "role defaults to client")
	assert.NotEqual(t, "correct horse", user.PasswordHash, "password must be hashed")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("correct horse")))

	repo.On("FindByUsername", mock.Anything, "alice").Return(user, nil)

	authed, err := svc.Authenticate(context.Background(), "alice", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, uint64(7), authed.ID)

	_, err = svc.Authenticate(context.Background(), "alice", "wrong horse")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUserService_RegisterDuplicateUsername(t *testing.T) {
	repo := new(mocks.MockUserRepository)
	repo.On("FindByUsername", mock.Anything, "alice").Return(&domain.User{ID: 7, Username: "alice"}, nil)

	svc := NewUserService(repo, []byte("test-secret"), time.Hour)
	_, err := svc.Register(context.Background(), RegisterRequest{Username: "alice", Email: "a@b.c", Password: "pw12345678"})
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestUserService_TokenRoundTrip(t *testing.T) {
	user := &domain.User{ID: 7, Username: "alice", Role: domain.RoleClient}

	repo := new(mocks.MockUserRepository)
	repo.On("FindByID", mock.Anything, uint64(7)).Return(user, nil)

	svc := NewUserService(repo, []byte("test-secret"), time.Hour)
	token, err := svc.CreateAccessToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	resolved, err := svc.ResolveToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), resolved.ID)
}

func TestUserService_ResolveToken_Invalid(t *testing.T) {
	repo := new(mocks.MockUserRepository)
	svc := NewUserService(repo, []byte("test-secret"), time.Hour)

	_, err := svc.ResolveToken(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// Token signed with a different secret must not verify.
	other := NewUserService(repo, []byte("other-secret"), time.Hour)
	token, err := other.CreateAccessToken(&domain.User{ID: 7})
	require.NoError(t, err)
	_, err = svc.ResolveToken(context.Background(), token)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUserService_ResolveToken_Expired(t *testing.T) {
	user := &domain.User{ID: 7}
	repo := new(mocks.MockUserRepository)

	svc := NewUserService(repo, []byte("test-secret"), -time.Minute)
	token, err := svc.CreateAccessToken(user)
	require.NoError(t, err)

	_, err = svc.ResolveToken(context.Background(), token)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUserService_UpdateProfile_RehashesPassword(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("old password"), bcrypt.DefaultCost)
	user := &domain.User{ID: 7, Username: "alice", PasswordHash: string(hash)}

	repo := new(mocks.MockUserRepository)
	repo.On("Save", mock.Anything, user).Return(nil)

	svc := NewUserService(repo, []byte("test-secret"), time.Hour)
	newName := "Alice B."
	newPassword := "new password"
	updated, err := svc.UpdateProfile(context.Background(), user, domain.UserPatch{
		Name:     &newName,
		Password: &newPassword,
	})
	require.NoError(t, err)
	assert.Equal(t, "Alice B.", updated.Name)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(updated.PasswordHash), []byte("new password")))
	assert.Error(t, bcrypt.CompareHashAndPassword([]byte(updated.PasswordHash), []byte("old password")))
}
