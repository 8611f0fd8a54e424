package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/classifieds-backend/internal/domain/valueobject"
	"github.com/ignatzorin/classifieds-backend/internal/pkg/apperror"
	"github.com/ignatzorin/classifieds-backend/internal/validation"
)

// CancelWindow задаёт, сколько времени автор может отозвать свою жалобу.
const CancelWindow = 24 * time.Hour

// ReportTarget указывает на объект жалобы: пользователя или объявление.
type ReportTarget struct {
	Type      valueobject.ReportType
	UserID    uuid.UUID
	ListingID *uuid.UUID
}

func ListingTarget(listingID uuid.UUID) ReportTarget {
	return ReportTarget{Type: valueobject.ReportTypeListing, ListingID: &listingID}
}

func UserTarget(userID uuid.UUID) ReportTarget {
	return ReportTarget{Type: valueobject.ReportTypeUser, UserID: userID}
}

type Report struct {
	ID                uuid.UUID
	ReporterID        uuid.UUID
	Type              valueobject.ReportType
	ReportedUserID    uuid.UUID
	ReportedListingID *uuid.UUID
	Reason            valueobject.ReportReason
	Description       string
	Status            valueobject.ReportStatus
	AdminNotes        *string
	CreatedAt         time.Time
	ResolvedAt        *time.Time
	ResolvedBy        *uuid.UUID

	// CanDelete вычисляется хранилищем при чтении жалобы её автором.
	CanDelete bool
}

// NewReport проверяет только содержимое жалобы; бан, саможалобы и дубликаты
// проверяются раньше в use case.
func NewReport(reporterID uuid.UUID, target ReportTarget, reason, description string, at time.Time) (*Report, error) {
	r := valueobject.ReportReason(strings.TrimSpace(reason))
	if !r.IsValid() {
		return nil, apperror.Validation("выберите причину жалобы")
	}
	description = strings.TrimSpace(description)
	if err := validation.ValidateReportDescription(description); err != nil {
		return nil, err
	}
	if target.Type == valueobject.ReportTypeListing && target.ListingID == nil {
		return nil, apperror.Validation("не указано объявление")
	}

	return &Report{
		ID:                uuid.New(),
		ReporterID:        reporterID,
		Type:              target.Type,
		ReportedUserID:    target.UserID,
		ReportedListingID: target.ListingID,
		Reason:            r,
		Description:       description,
		Status:            valueobject.ReportStatusPending,
		CreatedAt:         at,
	}, nil
}

func (r *Report) Resolve(adminID uuid.UUID, status valueobject.ReportStatus, notes *string, at time.Time) error {
	if !r.Status.CanTransitionTo(status) {
		return apperror.Validation("жалоба уже закрыта, изменить статус нельзя")
	}
	if notes != nil {
		trimmed := strings.TrimSpace(*notes)
		if trimmed == "" {
			notes = nil
		} else {
			if err := validation.ValidateAdminNotes(trimmed); err != nil {
				return err
			}
			notes = &trimmed
		}
	}

	r.Status = status
	r.AdminNotes = notes
	if status.IsTerminal() {
		r.ResolvedAt = &at
		r.ResolvedBy = &adminID
	}
	return nil
}

func (r *Report) IsFiledBy(userID uuid.UUID) bool {
	return r.ReporterID == userID
}
