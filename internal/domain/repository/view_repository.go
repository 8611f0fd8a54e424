package repository

import (
	"context"

	"github.com/google/uuid"
)

type ViewRepository interface {
	// Record сохраняет уникальный просмотр и увеличивает счётчик.
	// Возвращает false, если просмотр с таким ключом уже был.
	Record(ctx context.Context, listingID uuid.UUID, viewerKey string, viewerUserID *uuid.UUID) (bool, error)
}
