package domain

import (
	"time"

	"github.com/google/uuid"
)

// Favorite is a user's bookmark of an external character. The name, house and
// image are copied from the catalog when the favorite is created and never
// refreshed afterwards.
type Favorite struct {
	ID            uuid.UUID `json:"id"`
	CharacterID   string    `json:"CharacterId"`
	CharacterName string    `json:"characterName"`
	House         string    `json:"house"`
	ImageURL      string    `json:"imageUrl"`
	UserID        uuid.UUID `json:"UserId"`
	CreatedAt     time.Time `json:"createdAt"`
}
