package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vedran77/sortinghat/internal/auth"
	"github.com/vedran77/sortinghat/internal/domain"
	"github.com/vedran77/sortinghat/internal/google"
	"github.com/vedran77/sortinghat/internal/repository"
)

var (
	ErrEmailTaken     = errors.New("email already taken")
	ErrInvalidCreds   = errors.New("invalid email or password")
	ErrInvalidHouse   = errors.New("unknown house")
	ErrInvalidGoogle  = errors.New("invalid google token")
	ErrUserNotFound   = errors.New("user not found")
	ErrGoogleDisabled = errors.New("google login is not configured")
)

// TokenIssuer signs access tokens for a user id.
type TokenIssuer interface {
	Issue(userID uuid.UUID) (string, error)
}

type AuthService struct {
	userRepo repository.UserRepository
	tokens   TokenIssuer
	google   google.Verifier
}

// NewAuthService wires the account operations. verifier may be nil, in which
// case GoogleLogin returns ErrGoogleDisabled.
func NewAuthService(userRepo repository.UserRepository, tokens TokenIssuer, verifier google.Verifier) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
		google:   verifier,
	}
}

type RegisterInput struct {
	Username string `json:"username" validate:"required,notblank,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=5"`
	House    string `json:"house"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type GoogleLoginInput struct {
	GoogleToken string `json:"googleToken" validate:"required"`
}

type AuthResponse struct {
	AccessToken string       `json:"access_token"`
	User        *domain.User `json:"user,omitempty"`
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	email := normalizeEmail(input.Email)

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	var house *string
	if strings.TrimSpace(input.House) != "" {
		h, ok := domain.CanonicalHouse(input.House)
		if !ok {
			return nil, ErrInvalidHouse
		}
		house = &h
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	now := time.Now()
	user := &domain.User{
		ID:           uuid.New(),
		Username:     strings.TrimSpace(input.Username),
		Email:        email,
		PasswordHash: &hash,
		House:        house,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("creating user: %w", err)
	}

	return user, nil
}

func (s *AuthService) Login(ctx context.Context, input LoginInput) (*AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, normalizeEmail(input.Email))
	if err != nil {
		return nil, err
	}
	if user == nil || !user.HasPassword() {
		return nil, ErrInvalidCreds
	}

	if !auth.VerifyPassword(input.Password, *user.PasswordHash) {
		return nil, ErrInvalidCreds
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("generating token: %w", err)
	}

	return &AuthResponse{AccessToken: token}, nil
}

// GoogleLogin verifies the ID token and finds or creates the account for its
// email. The returned bool is true when a new account was created.
func (s *AuthService) GoogleLogin(ctx context.Context, input GoogleLoginInput) (*AuthResponse, bool, error) {
	if s.google == nil {
		return nil, false, ErrGoogleDisabled
	}

	identity, err := s.google.Verify(ctx, input.GoogleToken)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrInvalidGoogle, err)
	}

	user, err := s.userRepo.GetByEmail(ctx, identity.Email)
	if err != nil {
		return nil, false, err
	}

	created := false
	if user == nil {
		now := time.Now()
		user = &domain.User{
			ID:              uuid.New(),
			Username:        truncateRunes(identity.DisplayName(), maxUsernameLen),
			Email:           identity.Email,
			IsGoogleAccount: true,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			if !errors.Is(err, repository.ErrDuplicate) {
				return nil, false, fmt.Errorf("creating user: %w", err)
			}
			// Lost a race with a concurrent first login.
			user, err = s.userRepo.GetByEmail(ctx, identity.Email)
			if err != nil || user == nil {
				return nil, false, fmt.Errorf("loading user after conflict: %w", err)
			}
		} else {
			created = true
		}
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, false, fmt.Errorf("generating token: %w", err)
	}

	return &AuthResponse{AccessToken: token, User: user}, created, nil
}

func (s *AuthService) Profile(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

const maxUsernameLen = 50

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
