package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/ignatzorin/classifieds-backend/internal/domain/entity"
)

type FavoriteRepository interface {
	// Add ничего не делает, если закладка уже существует.
	Add(ctx context.Context, fav *entity.Favorite) error
	// Remove не считает ошибкой отсутствие закладки.
	Remove(ctx context.Context, userID, listingID uuid.UUID) error
	Exists(ctx context.Context, userID, listingID uuid.UUID) (bool, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]entity.Favorite, error)
}
