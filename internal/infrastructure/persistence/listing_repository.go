package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/ignatzorin/classifieds-backend/internal/domain/entity"
	"github.com/ignatzorin/classifieds-backend/internal/domain/repository"
	"github.com/ignatzorin/classifieds-backend/internal/domain/valueobject"
	"github.com/ignatzorin/classifieds-backend/internal/pkg/apperror"
)

const listingColumns = `id, owner_id, category_id, title, description, price, city, state,
	status, is_active, rejection_reason, view_count, created_at, updated_at`

type listingRow struct {
	ID              uuid.UUID       `db:"id"`
	OwnerID         uuid.UUID       `db:"owner_id"`
	CategoryID      uuid.UUID       `db:"category_id"`
	Title           string          `db:"title"`
	Description     string          `db:"description"`
	Price           decimal.Decimal `db:"price"`
	City            string          `db:"city"`
	State           string          `db:"state"`
	Status          string          `db:"status"`
	IsActive        bool            `db:"is_active"`
	RejectionReason *string         `db:"rejection_reason"`
	ViewCount       int64           `db:"view_count"`
	CreatedAt       time.Time       `db:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at"`
}

func (r listingRow) toEntity() *entity.Listing {
	return &entity.Listing{
		ID:              r.ID,
		OwnerID:         r.OwnerID,
		CategoryID:      r.CategoryID,
		Title:           r.Title,
		Description:     r.Description,
		Price:           valueobject.Price{Decimal: r.Price},
		City:            r.City,
		State:           r.State,
		Status:          valueobject.ListingStatus(r.Status),
		IsActive:        r.IsActive,
		RejectionReason: r.RejectionReason,
		ViewCount:       r.ViewCount,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

type listingImageRow struct {
	ID           uuid.UUID `db:"id"`
	ListingID    uuid.UUID `db:"listing_id"`
	URL          string    `db:"url"`
	FilePath     string    `db:"file_path"`
	DisplayOrder int       `db:"display_order"`
	CreatedAt    time.Time `db:"created_at"`
}

func (r listingImageRow) toEntity() entity.ListingImage {
	return entity.ListingImage(r)
}

type listingBadgeRow struct {
	ListingID uuid.UUID `db:"listing_id"`
	ID        uuid.UUID `db:"id"`
	Name      string    `db:"name"`
	Color     string    `db:"color"`
}

type ListingRepository struct {
	db *sqlx.DB
}

func NewListingRepository(db *sqlx.DB) *ListingRepository {
	return &ListingRepository{db: db}
}

var _ repository.ListingRepository = (*ListingRepository)(nil)

func (r *ListingRepository) Create(ctx context.Context, l *entity.Listing) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO listings (`+listingColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`,
		l.ID, l.OwnerID, l.CategoryID, l.Title, l.Description, l.Price.Decimal, l.City, l.State,
		string(l.Status), l.IsActive, l.RejectionReason, l.ViewCount, l.CreatedAt, l.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert listing: %w", err)
	}
	return nil
}

// Update не трогает view_count: счётчик меняется только через ViewRepository.
func (r *ListingRepository) Update(ctx context.Context, l *entity.Listing) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE listings
		SET category_id = $2, title = $3, description = $4, price = $5, city = $6, state = $7,
		    status = $8, is_active = $9, rejection_reason = $10, updated_at = $11
		WHERE id = $1
	`,
		l.ID, l.CategoryID, l.Title, l.Description, l.Price.Decimal, l.City, l.State,
		string(l.Status), l.IsActive, l.RejectionReason, l.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update listing: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperror.ErrListingNotFound
	}
	return nil
}

func (r *ListingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Listing, error) {
	var row listingRow
	err := r.db.GetContext(ctx, &row, `SELECT `+listingColumns+` FROM listings WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.ErrListingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get listing: %w", err)
	}
	return row.toEntity(), nil
}

func (r *ListingRepository) FindByIDWithDetails(ctx context.Context, id uuid.UUID) (*entity.Listing, error) {
	l, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := r.attachDetails(ctx, []*entity.Listing{l}); err != nil {
		return nil, err
	}
	return l, nil
}

func (r *ListingRepository) ListPublic(ctx context.Context, filter repository.ListingFilter) ([]*entity.Listing, int, error) {
	where, args := buildListingWhere(filter, true)
	return r.list(ctx, where, args, filter.Limit, filter.Offset)
}

func (r *ListingRepository) ListForModeration(ctx context.Context, filter repository.ListingFilter) ([]*entity.Listing, int, error) {
	where, args := buildListingWhere(filter, false)
	return r.list(ctx, where, args, filter.Limit, filter.Offset)
}

func (r *ListingRepository) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Listing, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []listingRow
	err := r.db.SelectContext(ctx, &rows,
		`SELECT `+listingColumns+` FROM listings WHERE id = ANY($1::uuid[])`, pq.Array(uuidStrings(ids)))
	if err != nil {
		return nil, fmt.Errorf("list listings by ids: %w", err)
	}

	listings := make([]*entity.Listing, 0, len(rows))
	for _, row := range rows {
		listings = append(listings, row.toEntity())
	}
	if err := r.attachDetails(ctx, listings); err != nil {
		return nil, err
	}
	return listings, nil
}

func (r *ListingRepository) list(ctx context.Context, where string, args []any, limit, offset int) ([]*entity.Listing, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM listings `+where, args...); err != nil {
		return nil, 0, fmt.Errorf("count listings: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM listings %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		listingColumns, where, len(args)+1, len(args)+2)
	var rows []listingRow
	if err := r.db.SelectContext(ctx, &rows, query, append(args, limit, offset)...); err != nil {
		return nil, 0, fmt.Errorf("list listings: %w", err)
	}

	listings := make([]*entity.Listing, 0, len(rows))
	for _, row := range rows {
		listings = append(listings, row.toEntity())
	}
	if err := r.attachDetails(ctx, listings); err != nil {
		return nil, 0, err
	}
	return listings, total, nil
}

// buildListingWhere собирает условие выборки. Публичная выборка всегда
// ограничена одобренными и активными объявлениями.
func buildListingWhere(filter repository.ListingFilter, public bool) (string, []any) {
	var conds []string
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if public {
		conds = append(conds, "status = 'approved'", "is_active")
	} else if filter.Status != "" {
		conds = append(conds, "status = "+arg(filter.Status))
	}
	if filter.CategoryID != nil {
		conds = append(conds, "category_id = "+arg(*filter.CategoryID))
	}
	if filter.City != "" {
		conds = append(conds, "city ILIKE "+arg(filter.City))
	}
	if filter.State != "" {
		conds = append(conds, "state = "+arg(strings.ToUpper(filter.State)))
	}
	if filter.Search != "" {
		p := arg("%" + escapeLike(filter.Search) + "%")
		conds = append(conds, fmt.Sprintf("(title ILIKE %s OR description ILIKE %s)", p, p))
	}

	if len(conds) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(conds, " AND "), args
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}

// attachDetails подгружает изображения и бейджи двумя запросами на всю страницу.
func (r *ListingRepository) attachDetails(ctx context.Context, listings []*entity.Listing) error {
	if len(listings) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, 0, len(listings))
	byID := make(map[uuid.UUID]*entity.Listing, len(listings))
	for _, l := range listings {
		ids = append(ids, l.ID)
		byID[l.ID] = l
	}
	param := pq.Array(uuidStrings(ids))

	var images []listingImageRow
	if err := r.db.SelectContext(ctx, &images, `
		SELECT id, listing_id, url, file_path, display_order, created_at
		FROM listing_images
		WHERE listing_id = ANY($1::uuid[])
		ORDER BY listing_id, display_order, created_at
	`, param); err != nil {
		return fmt.Errorf("load listing images: %w", err)
	}
	for _, img := range images {
		if l, ok := byID[img.ListingID]; ok {
			l.Images = append(l.Images, img.toEntity())
		}
	}

	var badges []listingBadgeRow
	if err := r.db.SelectContext(ctx, &badges, `
		SELECT lb.listing_id, b.id, b.name, b.color
		FROM listing_badges lb
		JOIN badges b ON b.id = lb.badge_id
		WHERE lb.listing_id = ANY($1::uuid[])
		ORDER BY b.name
	`, param); err != nil {
		return fmt.Errorf("load listing badges: %w", err)
	}
	for _, b := range badges {
		if l, ok := byID[b.ListingID]; ok {
			l.Badges = append(l.Badges, entity.Badge{ID: b.ID, Name: b.Name, Color: b.Color})
		}
	}
	return nil
}

// DeleteCascade удаляет объявление и всё, что на него ссылается, в одной транзакции.
func (r *ListingRepository) DeleteCascade(ctx context.Context, id uuid.UUID) ([]entity.ListingImage, error) {
	var removed []entity.ListingImage

	err := withTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
		var locked uuid.UUID
		err := tx.GetContext(ctx, &locked, `SELECT id FROM listings WHERE id = $1 FOR UPDATE`, id)
		if errors.Is(err, sql.ErrNoRows) {
			return apperror.ErrListingNotFound
		}
		if err != nil {
			return fmt.Errorf("lock listing: %w", err)
		}

		var images []listingImageRow
		if err := tx.SelectContext(ctx, &images, `
			DELETE FROM listing_images WHERE listing_id = $1
			RETURNING id, listing_id, url, file_path, display_order, created_at
		`, id); err != nil {
			return fmt.Errorf("delete listing images: %w", err)
		}
		for _, img := range images {
			removed = append(removed, img.toEntity())
		}

		for _, q := range []string{
			`DELETE FROM listing_badges WHERE listing_id = $1`,
			`DELETE FROM saved_listings WHERE listing_id = $1`,
			`DELETE FROM listing_views WHERE listing_id = $1`,
			`DELETE FROM listings WHERE id = $1`,
		} {
			if _, err := tx.ExecContext(ctx, q, id); err != nil {
				return fmt.Errorf("cascade delete listing: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return removed, nil
}

func (r *ListingRepository) AddImage(ctx context.Context, image *entity.ListingImage) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO listing_images (id, listing_id, url, file_path, display_order, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, image.ID, image.ListingID, image.URL, image.FilePath, image.DisplayOrder, image.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert listing image: %w", err)
	}
	return nil
}

func (r *ListingRepository) AttachBadge(ctx context.Context, listingID, badgeID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO listing_badges (listing_id, badge_id) VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`, listingID, badgeID)
	if err != nil {
		return fmt.Errorf("attach badge: %w", err)
	}
	return nil
}

func (r *ListingRepository) DetachBadge(ctx context.Context, listingID, badgeID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM listing_badges WHERE listing_id = $1 AND badge_id = $2`, listingID, badgeID)
	if err != nil {
		return fmt.Errorf("detach badge: %w", err)
	}
	return nil
}

func (r *ListingRepository) BadgeExists(ctx context.Context, badgeID uuid.UUID) (bool, error) {
	var exists bool
	if err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM badges WHERE id = $1)`, badgeID); err != nil {
		return false, fmt.Errorf("check badge: %w", err)
	}
	return exists, nil
}
