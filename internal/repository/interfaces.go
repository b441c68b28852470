package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/vedran77/sortinghat/internal/domain"
)

var (
	// ErrDuplicate is returned when an insert hits a unique constraint.
	ErrDuplicate = errors.New("duplicate record")
	// ErrNotFound is returned when a delete matched no rows.
	ErrNotFound = errors.New("record not found")
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	// UpdateHouse stores the house and clears the welcome email marker.
	UpdateHouse(ctx context.Context, id uuid.UUID, house string) error
	MarkWelcomeEmailSent(ctx context.Context, id uuid.UUID, at time.Time) error
}

type FavoriteRepository interface {
	Create(ctx context.Context, fav *domain.Favorite) error
	Get(ctx context.Context, userID uuid.UUID, characterID string) (*domain.Favorite, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Favorite, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
