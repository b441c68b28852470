package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/vedran77/sortinghat/internal/domain"
)

type contextKey string

const userKey contextKey = "user"

// TokenParser returns the user id carried by a valid access token.
type TokenParser interface {
	Parse(token string) (uuid.UUID, error)
}

// UserLookup loads a user by id. A nil user means the account is gone.
type UserLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

// Auth requires a bearer token for an existing user and stores that user in
// the request context.
func Auth(tokens TokenParser, users UserLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			tokenStr, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || strings.TrimSpace(tokenStr) == "" {
				writeError(w, http.StatusUnauthorized, "Invalid token")
				return
			}

			userID, err := tokens.Parse(strings.TrimSpace(tokenStr))
			if err != nil {
				writeError(w, http.StatusUnauthorized, "Invalid token")
				return
			}

			user, err := users.GetByID(r.Context(), userID)
			if err != nil {
				writeError(w, http.StatusInternalServerError, "Internal server error")
				return
			}
			if user == nil {
				writeError(w, http.StatusUnauthorized, "Invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext returns the authenticated user, or nil outside of Auth.
func UserFromContext(ctx context.Context) *domain.User {
	user, _ := ctx.Value(userKey).(*domain.User)
	return user
}

// GetUserID extracts the authenticated user's id from the request context.
func GetUserID(ctx context.Context) uuid.UUID {
	if user := UserFromContext(ctx); user != nil {
		return user.ID
	}
	return uuid.Nil
}
