// Package memory holds in-process repository implementations. They back the
// "memory" store driver for running without Postgres and are used by tests.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vedran77/sortinghat/internal/domain"
	"github.com/vedran77/sortinghat/internal/repository"
)

type UserRepo struct {
	mu    sync.RWMutex
	users map[uuid.UUID]domain.User
}

func NewUserRepo() *UserRepo {
	return &UserRepo{users: make(map[uuid.UUID]domain.User)}
}

func (r *UserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if strings.EqualFold(u.Email, user.Email) {
			return repository.ErrDuplicate
		}
	}
	r.users[user.ID] = *user
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, nil
}

func (r *UserRepo) UpdateHouse(_ context.Context, id uuid.UUID, house string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return nil
	}
	u.House = &house
	u.WelcomeEmailSentAt = nil
	u.UpdatedAt = time.Now()
	r.users[id] = u
	return nil
}

func (r *UserRepo) MarkWelcomeEmailSent(_ context.Context, id uuid.UUID, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return nil
	}
	u.WelcomeEmailSentAt = &at
	u.UpdatedAt = time.Now()
	r.users[id] = u
	return nil
}

type FavoriteRepo struct {
	mu   sync.RWMutex
	favs map[uuid.UUID]domain.Favorite
}

func NewFavoriteRepo() *FavoriteRepo {
	return &FavoriteRepo{favs: make(map[uuid.UUID]domain.Favorite)}
}

func (r *FavoriteRepo) Create(_ context.Context, fav *domain.Favorite) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, f := range r.favs {
		if f.UserID == fav.UserID && f.CharacterID == fav.CharacterID {
			return repository.ErrDuplicate
		}
	}
	r.favs[fav.ID] = *fav
	return nil
}

func (r *FavoriteRepo) Get(_ context.Context, userID uuid.UUID, characterID string) (*domain.Favorite, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, f := range r.favs {
		if f.UserID == userID && f.CharacterID == characterID {
			return &f, nil
		}
	}
	return nil, nil
}

func (r *FavoriteRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]domain.Favorite, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var favs []domain.Favorite
	for _, f := range r.favs {
		if f.UserID == userID {
			favs = append(favs, f)
		}
	}
	// newest first, matching the postgres ordering
	sort.SliceStable(favs, func(i, j int) bool {
		return favs[i].CreatedAt.After(favs[j].CreatedAt)
	})
	return favs, nil
}

func (r *FavoriteRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.favs[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.favs, id)
	return nil
}
