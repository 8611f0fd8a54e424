package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/classifieds-backend/internal/domain/entity"
	"github.com/ignatzorin/classifieds-backend/internal/domain/repository"
	"github.com/ignatzorin/classifieds-backend/internal/domain/valueobject"
	"github.com/ignatzorin/classifieds-backend/internal/pkg/apperror"
)

type userRow struct {
	ID         uuid.UUID  `db:"id"`
	Name       string     `db:"name"`
	Email      *string    `db:"email"`
	Phone      *string    `db:"phone"`
	AvatarURL  *string    `db:"avatar_url"`
	Role       string     `db:"role"`
	IsVerified bool       `db:"is_verified"`
	IsBanned   bool       `db:"is_banned"`
	BanReason  *string    `db:"ban_reason"`
	BanUntil   *time.Time `db:"ban_until"`
	BannedAt   *time.Time `db:"banned_at"`
	BannedBy   *uuid.UUID `db:"banned_by"`
	CreatedAt  time.Time  `db:"created_at"`
	UpdatedAt  time.Time  `db:"updated_at"`
}

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

var _ repository.UserRepository = (*UserRepository)(nil)

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var row userRow
	err := r.db.GetContext(ctx, &row, `
		SELECT id, name, email, phone, avatar_url, role, is_verified,
		       is_banned, ban_reason, ban_until, banned_at, banned_by, created_at, updated_at
		FROM users WHERE id = $1
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	return &entity.User{
		ID:         row.ID,
		Name:       row.Name,
		Email:      row.Email,
		Phone:      row.Phone,
		AvatarURL:  row.AvatarURL,
		Role:       valueobject.Role(row.Role),
		IsVerified: row.IsVerified,
		Ban: entity.Ban{
			IsBanned: row.IsBanned,
			Reason:   row.BanReason,
			Until:    row.BanUntil,
			BannedAt: row.BannedAt,
			BannedBy: row.BannedBy,
		},
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}, nil
}

// UpdateBan записывает все поля блокировки целиком; пустой Ban снимает её.
func (r *UserRepository) UpdateBan(ctx context.Context, userID uuid.UUID, ban entity.Ban) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET is_banned = $2, ban_reason = $3, ban_until = $4, banned_at = $5, banned_by = $6, updated_at = NOW()
		WHERE id = $1
	`, userID, ban.IsBanned, ban.Reason, ban.Until, ban.BannedAt, ban.BannedBy)
	if err != nil {
		return fmt.Errorf("update user ban: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperror.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) SetVerified(ctx context.Context, userID uuid.UUID, verified bool) error {
	res, err := r.db.ExecContext(ctx, `UPDATE users SET is_verified = $2, updated_at = NOW() WHERE id = $1`, userID, verified)
	if err != nil {
		return fmt.Errorf("update user verification: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperror.ErrUserNotFound
	}
	return nil
}
