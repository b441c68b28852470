package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/vedran77/sortinghat/internal/repository"
)

const uniqueViolation = "23505"

// mapError translates unique violations into repository.ErrDuplicate.
func mapError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return repository.ErrDuplicate
	}
	return err
}
