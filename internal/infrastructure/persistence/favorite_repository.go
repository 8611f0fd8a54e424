package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/classifieds-backend/internal/domain/entity"
	"github.com/ignatzorin/classifieds-backend/internal/domain/repository"
)

type FavoriteRepository struct {
	db *sqlx.DB
}

func NewFavoriteRepository(db *sqlx.DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

var _ repository.FavoriteRepository = (*FavoriteRepository)(nil)

func (r *FavoriteRepository) Add(ctx context.Context, fav *entity.Favorite) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO saved_listings (user_id, listing_id, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, listing_id) DO NOTHING
	`, fav.UserID, fav.ListingID, fav.CreatedAt)
	if err != nil {
		return fmt.Errorf("save listing: %w", err)
	}
	return nil
}

func (r *FavoriteRepository) Remove(ctx context.Context, userID, listingID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM saved_listings WHERE user_id = $1 AND listing_id = $2`, userID, listingID)
	if err != nil {
		return fmt.Errorf("unsave listing: %w", err)
	}
	return nil
}

func (r *FavoriteRepository) Exists(ctx context.Context, userID, listingID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `
		SELECT EXISTS(SELECT 1 FROM saved_listings WHERE user_id = $1 AND listing_id = $2)
	`, userID, listingID)
	if err != nil {
		return false, fmt.Errorf("check saved listing: %w", err)
	}
	return exists, nil
}

func (r *FavoriteRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]entity.Favorite, error) {
	var rows []struct {
		UserID    uuid.UUID `db:"user_id"`
		ListingID uuid.UUID `db:"listing_id"`
		CreatedAt time.Time `db:"created_at"`
	}
	err := r.db.SelectContext(ctx, &rows, `
		SELECT user_id, listing_id, created_at FROM saved_listings
		WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3
	`, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list saved listings: %w", err)
	}

	favs := make([]entity.Favorite, 0, len(rows))
	for _, row := range rows {
		favs = append(favs, entity.Favorite{UserID: row.UserID, ListingID: row.ListingID, CreatedAt: row.CreatedAt})
	}
	return favs, nil
}
