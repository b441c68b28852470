package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vedran77/sortinghat/internal/domain"
)

const userColumns = "id, username, email, password_hash, house, is_google_account, welcome_email_sent_at, created_at, updated_at"

type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

func (r *UserRepo) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (id, username, email, password_hash, house, is_google_account, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.pool.Exec(ctx, query,
		user.ID, user.Username, user.Email, user.PasswordHash,
		user.House, user.IsGoogleAccount, user.CreatedAt, user.UpdatedAt,
	)
	return mapError(err)
}

func (r *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return r.scanUser(ctx, "SELECT "+userColumns+" FROM users WHERE id = $1", id)
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.scanUser(ctx, "SELECT "+userColumns+" FROM users WHERE lower(email) = lower($1)", email)
}

func (r *UserRepo) UpdateHouse(ctx context.Context, id uuid.UUID, house string) error {
	query := `UPDATE users SET house = $1, welcome_email_sent_at = NULL, updated_at = NOW() WHERE id = $2`
	_, err := r.pool.Exec(ctx, query, house, id)
	return err
}

func (r *UserRepo) MarkWelcomeEmailSent(ctx context.Context, id uuid.UUID, at time.Time) error {
	query := `UPDATE users SET welcome_email_sent_at = $1, updated_at = NOW() WHERE id = $2`
	_, err := r.pool.Exec(ctx, query, at, id)
	return err
}

func (r *UserRepo) scanUser(ctx context.Context, query string, arg any) (*domain.User, error) {
	var u domain.User
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.House,
		&u.IsGoogleAccount, &u.WelcomeEmailSentAt, &u.CreatedAt, &u.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
