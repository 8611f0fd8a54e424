package entity

import (
	"time"

	"github.com/google/uuid"
)

// Favorite это закладка пользователя на объявление.
type Favorite struct {
	UserID    uuid.UUID
	ListingID uuid.UUID
	CreatedAt time.Time
}
