package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/classifieds-backend/internal/domain/entity"
)

type BanUserRequest struct {
	Reason string `json:"reason" binding:"required,max=500"`
	// DurationDays nil означает бессрочную блокировку.
	DurationDays *int `json:"duration_days" binding:"omitempty,min=1"`
}

type SetVerifiedRequest struct {
	IsVerified *bool `json:"is_verified" binding:"required"`
}

type AdminUserResponse struct {
	ID         uuid.UUID  `json:"id"`
	Name       string     `json:"name"`
	Role       string     `json:"role"`
	IsVerified bool       `json:"is_verified"`
	IsBanned   bool       `json:"is_banned"`
	BanReason  *string    `json:"ban_reason"`
	BanUntil   *time.Time `json:"ban_until"`
	BannedAt   *time.Time `json:"banned_at"`
	BannedBy   *uuid.UUID `json:"banned_by"`
}

// ToAdminUserResponse отдаёт сырые поля блокировки: это ответ
// административных эндпоинтов, а не проверка доступа.
func ToAdminUserResponse(u *entity.User) AdminUserResponse {
	return AdminUserResponse{
		ID:         u.ID,
		Name:       u.Name,
		Role:       string(u.Role),
		IsVerified: u.IsVerified,
		IsBanned:   u.Ban.IsBanned,
		BanReason:  u.Ban.Reason,
		BanUntil:   u.Ban.Until,
		BannedAt:   u.Ban.BannedAt,
		BannedBy:   u.Ban.BannedBy,
	}
}
