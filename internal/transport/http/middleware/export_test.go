package middleware

import (
	"context"

	"github.com/vedran77/sortinghat/internal/domain"
)

func WithUser(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}
