package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/ignatzorin/classifieds-backend/internal/domain/entity"
)

type ListingRepository interface {
	Create(ctx context.Context, listing *entity.Listing) error
	Update(ctx context.Context, listing *entity.Listing) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Listing, error)
	FindByIDWithDetails(ctx context.Context, id uuid.UUID) (*entity.Listing, error)
	ListPublic(ctx context.Context, filter ListingFilter) ([]*entity.Listing, int, error)
	ListForModeration(ctx context.Context, filter ListingFilter) ([]*entity.Listing, int, error)
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Listing, error)

	// DeleteCascade удаляет изображения, бейджи, закладки и само объявление
	// в одной транзакции. Возвращает удалённые изображения, чтобы вызывающий
	// мог убрать файлы из хранилища.
	DeleteCascade(ctx context.Context, id uuid.UUID) ([]entity.ListingImage, error)

	AddImage(ctx context.Context, image *entity.ListingImage) error
	AttachBadge(ctx context.Context, listingID, badgeID uuid.UUID) error
	DetachBadge(ctx context.Context, listingID, badgeID uuid.UUID) error
	BadgeExists(ctx context.Context, badgeID uuid.UUID) (bool, error)
}

type ListingFilter struct {
	Status     string
	CategoryID *uuid.UUID
	City       string
	State      string
	Search     string
	Limit      int
	Offset     int
}
