package service

import (
	"testing"

	"socialite/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthFixture() (AuthService, *fakeUserRepo) {
	users := newFakeUserRepo()
	cfg := &config.Config{JWTSecret: "test-secret", JWTExpiryHour: 1}
	return NewAuthService(users, cfg), users
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newAuthFixture()

	result, err := svc.Register(RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "s3cretpass",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.NotEmpty(t, result.User.ID)
	assert.NotEqual(t, "s3cretpass", result.User.PasswordHash)

	login, err := svc.Login("alice@example.com", "s3cretpass")
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, login.User.ID)
	assert.NotEmpty(t, login.Token)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newAuthFixture()

	_, err := svc.Register(RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "s3cretpass",
	})
	require.NoError(t, err)

	_, err = svc.Register(RegisterRequest{
		Username: "alice2",
		Email:    "alice@example.com",
		Password: "s3cretpass",
	})
	require.Error(t, err)

	var domainErr *Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, KindConflict, domainErr.Kind)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newAuthFixture()

	_, err := svc.Register(RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "s3cretpass",
	})
	require.NoError(t, err)

	_, err = svc.Login("alice@example.com", "wrongpass")
	require.Error(t, err)

	var domainErr *Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, KindUnauthorized, domainErr.Kind)

	// Unknown email fails the same way, without leaking which was wrong.
	_, err = svc.Login("nobody@example.com", "s3cretpass")
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, KindUnauthorized, domainErr.Kind)
}

func TestSearchByPhone(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewUserService(users)

	alice := users.add("alice")
	phone := "+15550001111"
	alice.Phone = &phone

	found, err := svc.SearchByPhone(phone)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, found.ID)

	_, err = svc.SearchByPhone("+15559999999")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUpdateProfileUsernameConflict(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewUserService(users)

	alice := users.add("alice")
	users.add("bob")

	taken := "bob"
	_, err := svc.UpdateProfile(alice.ID, UpdateProfileRequest{Username: &taken})
	require.Error(t, err)

	var domainErr *Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, KindConflict, domainErr.Kind)

	bio := "hello there"
	updated, err := svc.UpdateProfile(alice.ID, UpdateProfileRequest{Bio: &bio})
	require.NoError(t, err)
	require.NotNil(t, updated.Bio)
	assert.Equal(t, bio, *updated.Bio)
}
