package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/vedran77/sortinghat/internal/catalog"
	"github.com/vedran77/sortinghat/internal/domain"
)

var ErrCharacterNotFound = errors.New("character not found")

// CharacterSource is the external catalog. GetCharacter returns nil when the
// id is unknown.
type CharacterSource interface {
	ListCharacters(ctx context.Context) ([]domain.Character, error)
	GetCharacter(ctx context.Context, id string) (*domain.Character, error)
}

type CharacterService struct {
	source CharacterSource
}

func NewCharacterService(source CharacterSource) *CharacterService {
	return &CharacterService{source: source}
}

func (s *CharacterService) List(ctx context.Context, q catalog.Query) (catalog.Page, error) {
	chars, err := s.source.ListCharacters(ctx)
	if err != nil {
		return catalog.Page{}, fmt.Errorf("listing characters: %w", err)
	}
	return catalog.Apply(chars, q), nil
}

func (s *CharacterService) Detail(ctx context.Context, id string) (*domain.CharacterDetail, error) {
	c, err := s.source.GetCharacter(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("fetching character: %w", err)
	}
	if c == nil {
		return nil, ErrCharacterNotFound
	}
	d := c.Detail()
	return &d, nil
}
