package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/classifieds-backend/internal/domain/valueobject"
	"github.com/ignatzorin/classifieds-backend/internal/pkg/apperror"
	"github.com/ignatzorin/classifieds-backend/internal/validation"
)

// User это продавец/пользователь портала вместе с полями блокировки.
type User struct {
	ID         uuid.UUID
	Name       string
	Email      *string
	Phone      *string
	AvatarURL  *string
	Role       valueobject.Role
	IsVerified bool
	Ban        Ban
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Ban хранится на пользователе. Пустое значение означает отсутствие блокировки.
type Ban struct {
	IsBanned bool
	Reason   *string
	Until    *time.Time
	BannedAt *time.Time
	BannedBy *uuid.UUID
}

// NewBan создаёт блокировку; durationDays == nil означает бессрочную.
func NewBan(adminID uuid.UUID, reason string, durationDays *int, at time.Time) (Ban, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return Ban{}, apperror.Validation("укажите причину блокировки")
	}
	if err := validation.ValidateReason("причина блокировки", reason); err != nil {
		return Ban{}, err
	}

	var until *time.Time
	if durationDays != nil {
		if *durationDays < 1 {
			return Ban{}, apperror.Validation("срок блокировки должен быть не меньше одного дня")
		}
		u := at.AddDate(0, 0, *durationDays)
		until = &u
	}

	return Ban{
		IsBanned: true,
		Reason:   &reason,
		Until:    until,
		BannedAt: &at,
		BannedBy: &adminID,
	}, nil
}

// ActiveAt это единственный предикат «заблокирован сейчас». Истёкшая блокировка
// не действует, даже если флаг в хранилище ещё выставлен.
func (b Ban) ActiveAt(now time.Time) bool {
	if !b.IsBanned {
		return false
	}
	return b.Until == nil || b.Until.After(now)
}

func (b Ban) IsPermanent() bool {
	return b.IsBanned && b.Until == nil
}
