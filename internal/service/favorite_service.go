package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/vedran77/sortinghat/internal/domain"
	"github.com/vedran77/sortinghat/internal/repository"
)

var (
	ErrAlreadyFavorite  = errors.New("character is already in favorites")
	ErrFavoriteNotFound = errors.New("favorite not found")
)

type FavoriteService struct {
	favRepo repository.FavoriteRepository
	source  CharacterSource
}

func NewFavoriteService(favRepo repository.FavoriteRepository, source CharacterSource) *FavoriteService {
	return &FavoriteService{favRepo: favRepo, source: source}
}

// Add snapshots the character's name, house and image into a new favorite.
func (s *FavoriteService) Add(ctx context.Context, userID uuid.UUID, characterID string) (*domain.Favorite, error) {
	c, err := s.source.GetCharacter(ctx, characterID)
	if err != nil {
		return nil, fmt.Errorf("fetching character: %w", err)
	}
	if c == nil {
		return nil, ErrCharacterNotFound
	}

	existing, err := s.favRepo.Get(ctx, userID, characterID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyFavorite
	}

	fav := &domain.Favorite{
		ID:            uuid.New(),
		CharacterID:   c.ID,
		CharacterName: c.Name,
		House:         c.House,
		ImageURL:      c.Image,
		UserID:        userID,
		CreatedAt:     time.Now(),
	}

	if err := s.favRepo.Create(ctx, fav); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrAlreadyFavorite
		}
		return nil, fmt.Errorf("creating favorite: %w", err)
	}

	return fav, nil
}

func (s *FavoriteService) Remove(ctx context.Context, userID uuid.UUID, characterID string) error {
	fav, err := s.favRepo.Get(ctx, userID, characterID)
	if err != nil {
		return err
	}
	if fav == nil {
		return ErrFavoriteNotFound
	}

	if err := s.favRepo.Delete(ctx, fav.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrFavoriteNotFound
		}
		return fmt.Errorf("deleting favorite: %w", err)
	}
	return nil
}

// List returns the user's favorites, newest first.
func (s *FavoriteService) List(ctx context.Context, userID uuid.UUID) ([]domain.Favorite, error) {
	favs, err := s.favRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing favorites: %w", err)
	}
	if favs == nil {
		favs = []domain.Favorite{}
	}
	return favs, nil
}
