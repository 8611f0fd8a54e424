package persistence

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/classifieds-backend/internal/domain/repository"
)

type ViewRepository struct {
	db *sqlx.DB
}

func NewViewRepository(db *sqlx.DB) *ViewRepository {
	return &ViewRepository{db: db}
}

var _ repository.ViewRepository = (*ViewRepository)(nil)

// Record вставляет просмотр и увеличивает счётчик в одной транзакции.
// Уникальность (listing_id, viewer_key) гарантирует первичный ключ таблицы.
func (r *ViewRepository) Record(ctx context.Context, listingID uuid.UUID, viewerKey string, viewerUserID *uuid.UUID) (bool, error) {
	var recorded bool
	err := withTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, `
			INSERT INTO listing_views (listing_id, viewer_key, viewer_user_id)
			VALUES ($1, $2, $3)
			ON CONFLICT (listing_id, viewer_key) DO NOTHING
		`, listingID, viewerKey, viewerUserID)
		if err != nil {
			return fmt.Errorf("insert listing view: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return nil
		}

		if _, err := tx.ExecContext(ctx, `UPDATE listings SET view_count = view_count + 1 WHERE id = $1`, listingID); err != nil {
			return fmt.Errorf("increment view count: %w", err)
		}
		recorded = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return recorded, nil
}
