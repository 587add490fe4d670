package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"testing"

	"journal-be/internal/dto"

	"github.com/stretchr/testify/assert"
)

func newAuthFixture() (*fakeUowFactory, *fakeSessionStore, *fakeEmailService, *fakePublisher, IAuthService) {
	factory := newFakeUowFactory()
	sessions := newFakeSessionStore()
	email := &fakeEmailService{}
	publisher := &fakePublisher{}
	svc := NewAuthService(factory, sessions, email, publisher)
	return factory, sessions, email, publisher, svc
}

func TestRegisterCreatesUserAndSession(t *testing.T) {
	factory, sessions, _, _, svc := newAuthFixture()

	res, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:    "ana@example.com",
		Password: "correct horse",
		FullName: "Ana",
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, res.AccessToken)
	assert.Equal(t, "ana@example.com", res.User.Email)
	assert.Equal(t, "Ana", res.User.FullName)

	stored := factory.uow.users.users[res.User.Id]
	assert.NotNil(t, stored)
	// Password must never be stored in the clear.
	assert.NotEqual(t, "correct horse", stored.PasswordHash)
	assert.NotContains(t, stored.PasswordHash, "correct horse")

	// Registration signs the user in right away.
	assert.Len(t, sessions.sessions, 1)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	factory, _, _, _, svc := newAuthFixture()
	factory.uow.users.seedUser("taken@example.com", "pw123456", "First")

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:    "taken@example.com",
		Password: "another-pass",
		FullName: "Second",
	})

	assert.EqualError(t, err, "email already registered")
}

func TestLoginWithValidCredentials(t *testing.T) {
	factory, sessions, _, publisher, svc := newAuthFixture()
	user := factory.uow.users.seedUser("bo@example.com", "hunter2hunter2", "Bo")

	res, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "bo@example.com",
		Password: "hunter2hunter2",
	}, "10.0.0.1", "test-agent")

	assert.NoError(t, err)
	assert.NotEmpty(t, res.AccessToken)
	assert.Empty(t, res.RefreshToken)
	assert.Equal(t, user.Id, res.User.Id)
	assert.Len(t, sessions.sessions, 1)
	for _, s := range sessions.sessions {
		assert.Equal(t, user.Id.String(), s.UserID)
		assert.Equal(t, "10.0.0.1", s.IpAddress)
	}

	assert.Len(t, publisher.payloads, 1)
	assert.Contains(t, string(publisher.payloads[0]), "USER_LOGIN")
}

func TestLoginWrongPasswordAndUnknownEmailLookAlike(t *testing.T) {
	factory, _, _, _, svc := newAuthFixture()
	factory.uow.users.seedUser("bo@example.com", "hunter2hunter2", "Bo")

	_, wrongPass := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "bo@example.com",
		Password: "wrong",
	}, "", "")
	_, unknown := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "ghost@example.com",
		Password: "hunter2hunter2",
	}, "", "")

	assert.EqualError(t, wrongPass, "invalid credentials")
	assert.EqualError(t, unknown, "invalid credentials")
}

func TestLoginLookupErrorHidesDetail(t *testing.T) {
	factory, _, _, _, svc := newAuthFixture()
	factory.uow.users.findErr = errors.New("connection refused")

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "bo@example.com",
		Password: "whatever1",
	}, "", "")

	assert.EqualError(t, err, "invalid credentials")
}

func TestLoginRememberMeIssuesRefreshToken(t *testing.T) {
	factory, _, _, _, svc := newAuthFixture()
	factory.uow.users.seedUser("bo@example.com", "hunter2hunter2", "Bo")

	res, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:      "bo@example.com",
		Password:   "hunter2hunter2",
		RememberMe: true,
	}, "", "agent")

	assert.NoError(t, err)
	assert.NotEmpty(t, res.RefreshToken)

	// Only the hash is persisted.
	hasher := sha256.New()
	hasher.Write([]byte(res.RefreshToken))
	hash := hex.EncodeToString(hasher.Sum(nil))
	stored := factory.uow.users.refresh[hash]
	assert.NotNil(t, stored)
	assert.False(t, stored.Revoked)
	_, rawStored := factory.uow.users.refresh[res.RefreshToken]
	assert.False(t, rawStored)
}

func TestLogoutKillsSessionAndRevokesRefreshToken(t *testing.T) {
	factory, sessions, _, _, svc := newAuthFixture()
	factory.uow.users.seedUser("bo@example.com", "hunter2hunter2", "Bo")

	res, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:      "bo@example.com",
		Password:   "hunter2hunter2",
		RememberMe: true,
	}, "", "")
	assert.NoError(t, err)
	assert.Len(t, sessions.sessions, 1)

	var sessionID string
	for id := range sessions.sessions {
		sessionID = id
	}

	err = svc.Logout(context.Background(), sessionID, res.RefreshToken)
	assert.NoError(t, err)
	assert.Len(t, sessions.sessions, 0)

	hasher := sha256.New()
	hasher.Write([]byte(res.RefreshToken))
	hash := hex.EncodeToString(hasher.Sum(nil))
	assert.True(t, factory.uow.users.refresh[hash].Revoked)
}

func TestForgotPasswordUnknownEmailStaysQuiet(t *testing.T) {
	_, _, email, _, svc := newAuthFixture()

	err := svc.ForgotPassword(context.Background(), &dto.ForgotPasswordRequest{
		Email: "nobody@example.com",
	})

	assert.NoError(t, err)
	assert.Empty(t, email.sent)
}

func TestResetPasswordFlow(t *testing.T) {
	factory, _, _, _, svc := newAuthFixture()
	user := factory.uow.users.seedUser("bo@example.com", "old-password1", "Bo")

	err := svc.ForgotPassword(context.Background(), &dto.ForgotPasswordRequest{Email: "bo@example.com"})
	assert.NoError(t, err)

	var token string
	for tok := range factory.uow.users.resetTokens {
		token = tok
	}
	assert.NotEmpty(t, token)

	err = svc.ResetPassword(context.Background(), &dto.ResetPasswordRequest{
		Token:       token,
		NewPassword: "new-password1",
	})
	assert.NoError(t, err)

	// Old credentials stop working, new ones work.
	_, err = svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "bo@example.com",
		Password: "old-password1",
	}, "", "")
	assert.EqualError(t, err, "invalid credentials")

	res, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "bo@example.com",
		Password: "new-password1",
	}, "", "")
	assert.NoError(t, err)
	assert.Equal(t, user.Id, res.User.Id)

	// Token is single use.
	err = svc.ResetPassword(context.Background(), &dto.ResetPasswordRequest{
		Token:       token,
		NewPassword: "another-pass1",
	})
	assert.EqualError(t, err, "this password reset link has already been used")
}

func TestResetPasswordInvalidToken(t *testing.T) {
	_, _, _, _, svc := newAuthFixture()

	err := svc.ResetPassword(context.Background(), &dto.ResetPasswordRequest{
		Token:       "bogus",
		NewPassword: "whatever-pass",
	})
	assert.EqualError(t, err, "invalid or expired token")
}
