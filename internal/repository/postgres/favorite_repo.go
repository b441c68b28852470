package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vedran77/sortinghat/internal/domain"
	"github.com/vedran77/sortinghat/internal/repository"
)

type FavoriteRepo struct {
	pool *pgxpool.Pool
}

func NewFavoriteRepo(pool *pgxpool.Pool) *FavoriteRepo {
	return &FavoriteRepo{pool: pool}
}

func (r *FavoriteRepo) Create(ctx context.Context, fav *domain.Favorite) error {
	query := `
		INSERT INTO favorites (id, user_id, character_id, character_name, house, image_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.pool.Exec(ctx, query,
		fav.ID, fav.UserID, fav.CharacterID, fav.CharacterName,
		fav.House, fav.ImageURL, fav.CreatedAt,
	)
	return mapError(err)
}

func (r *FavoriteRepo) Get(ctx context.Context, userID uuid.UUID, characterID string) (*domain.Favorite, error) {
	query := `
		SELECT id, user_id, character_id, character_name, house, image_url, created_at
		FROM favorites
		WHERE user_id = $1 AND character_id = $2`

	var f domain.Favorite
	err := r.pool.QueryRow(ctx, query, userID, characterID).Scan(
		&f.ID, &f.UserID, &f.CharacterID, &f.CharacterName, &f.House, &f.ImageURL, &f.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *FavoriteRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Favorite, error) {
	query := `
		SELECT id, user_id, character_id, character_name, house, image_url, created_at
		FROM favorites
		WHERE user_id = $1
		ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var favs []domain.Favorite
	for rows.Next() {
		var f domain.Favorite
		if err := rows.Scan(&f.ID, &f.UserID, &f.CharacterID, &f.CharacterName, &f.House, &f.ImageURL, &f.CreatedAt); err != nil {
			return nil, err
		}
		favs = append(favs, f)
	}
	return favs, rows.Err()
}

func (r *FavoriteRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM favorites WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}
