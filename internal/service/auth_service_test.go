package service

import (
	"context"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vedran77/sortinghat/internal/auth"
	"github.com/vedran77/sortinghat/internal/google"
	"github.com/vedran77/sortinghat/internal/repository/memory"
)

func newAuthService(verifier google.Verifier) (*AuthService, *auth.Tokens) {
	tokens := auth.NewTokens("test-secret", time.Hour)
	return NewAuthService(memory.NewUserRepo(), tokens, verifier), tokens
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	svc, tokens := newAuthService(nil)
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterInput{Username: "harry", Email: " Harry@Hogwarts.example ", Password: "scar123"})
	require.NoError(t, err)
	assert.Equal(t, "harry@hogwarts.example", user.Email)
	assert.Nil(t, user.House)
	assert.True(t, user.HasPassword())
	assert.NotEqual(t, "scar123", *user.PasswordHash)

	resp, err := svc.Login(ctx, LoginInput{Email: "harry@hogwarts.example", Password: "scar123"})
	require.NoError(t, err)

	id, err := tokens.Parse(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, id)
}

func TestAuthService_RegisterWithHouse(t *testing.T) {
	svc, _ := newAuthService(nil)

	user, err := svc.Register(context.Background(), RegisterInput{Username: "cedric", Email: "cedric@hogwarts.example", Password: "12345", House: "hufflepuff"})
	require.NoError(t, err)
	require.NotNil(t, user.House)
	assert.Equal(t, "Hufflepuff", *user.House)

	_, err = svc.Register(context.Background(), RegisterInput{Username: "viktor", Email: "viktor@hogwarts.example", Password: "12345", House: "Durmstrang"})
	assert.ErrorIs(t, err, ErrInvalidHouse)
}

func TestAuthService_RegisterDuplicateEmail(t *testing.T) {
	svc, _ := newAuthService(nil)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Username: "ron", Email: "ron@hogwarts.example", Password: "12345"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterInput{Username: "ronald", Email: "RON@hogwarts.example", Password: "12345"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestAuthService_LoginFailures(t *testing.T) {
	svc, _ := newAuthService(&fakeVerifier{identity: &google.Identity{Email: "luna@hogwarts.example", Name: "Luna"}})
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Username: "ron", Email: "ron@hogwarts.example", Password: "12345"})
	require.NoError(t, err)
	_, _, err = svc.GoogleLogin(ctx, GoogleLoginInput{GoogleToken: "good"})
	require.NoError(t, err)

	tests := []struct {
		name  string
		input LoginInput
	}{
		{"unknown email", LoginInput{Email: "nobody@hogwarts.example", Password: "12345"}},
		{"wrong password", LoginInput{Email: "ron@hogwarts.example", Password: "54321"}},
		{"google account without password", LoginInput{Email: "luna@hogwarts.example", Password: ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(ctx, tt.input)
			assert.ErrorIs(t, err, ErrInvalidCreds)
		})
	}
}

func TestAuthService_GoogleLogin(t *testing.T) {
	svc, tokens := newAuthService(&fakeVerifier{identity: &google.Identity{Email: "luna@hogwarts.example", Name: "Luna Lovegood"}})
	ctx := context.Background()

	first, created, err := svc.GoogleLogin(ctx, GoogleLoginInput{GoogleToken: "good"})
	require.NoError(t, err)
	assert.True(t, created)
	assert.True(t, first.User.IsGoogleAccount)
	assert.False(t, first.User.HasPassword())
	assert.Equal(t, "Luna Lovegood", first.User.Username)

	second, created, err := svc.GoogleLogin(ctx, GoogleLoginInput{GoogleToken: "good"})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.User.ID, second.User.ID)

	id, err := tokens.Parse(second.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, first.User.ID, id)
}

func TestAuthService_GoogleLoginErrors(t *testing.T) {
	svc, _ := newAuthService(&fakeVerifier{identity: &google.Identity{Email: "luna@hogwarts.example"}})
	_, _, err := svc.GoogleLogin(context.Background(), GoogleLoginInput{GoogleToken: "forged"})
	assert.ErrorIs(t, err, ErrInvalidGoogle)

	disabled, _ := newAuthService(nil)
	_, _, err = disabled.GoogleLogin(context.Background(), GoogleLoginInput{GoogleToken: "good"})
	assert.ErrorIs(t, err, ErrGoogleDisabled)
}

func TestAuthService_Profile(t *testing.T) {
	svc, _ := newAuthService(nil)
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterInput{Username: "neville", Email: "neville@hogwarts.example", Password: "12345"})
	require.NoError(t, err)

	got, err := svc.Profile(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "neville", got.Username)

	_, err = svc.Profile(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestAuthService_GoogleLoginTruncatesLongNames(t *testing.T) {
	long := strings.Repeat("Ω", 60)
	svc, _ := newAuthService(&fakeVerifier{identity: &google.Identity{Email: "long@hogwarts.example", Name: long}})

	resp, _, err := svc.GoogleLogin(context.Background(), GoogleLoginInput{GoogleToken: "good"})
	require.NoError(t, err)
	assert.Equal(t, 50, utf8.RuneCountInString(resp.User.Username))
}
