package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/classifieds-backend/internal/domain/entity"
	"github.com/ignatzorin/classifieds-backend/internal/domain/valueobject"
)

type ReportRepository interface {
	// Create должен вернуть apperror.ErrDuplicateReport при нарушении
	// уникальности (reporter, target); это окончательная проверка дубликата.
	Create(ctx context.Context, report *entity.Report) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Report, error)
	// FindByReporterAndTarget и FindForReporter возвращают (nil, nil), если жалобы нет.
	FindByReporterAndTarget(ctx context.Context, reporterID uuid.UUID, target entity.ReportTarget) (*entity.Report, error)
	// FindForReporter возвращает жалобу автора на объявление с вычисленным CanDelete.
	FindForReporter(ctx context.Context, reporterID, listingID uuid.UUID, window time.Duration) (*entity.Report, error)
	UpdateResolution(ctx context.Context, report *entity.Report) error
	List(ctx context.Context, status *valueobject.ReportStatus, limit, offset int) ([]*entity.Report, int, error)
	CountByStatus(ctx context.Context) (map[valueobject.ReportStatus]int, error)

	// DeleteOwnPending удаляет жалобу, только если она принадлежит автору,
	// ещё не рассмотрена и создана не раньше окна отмены. Окно проверяется здесь и только здесь.
	DeleteOwnPending(ctx context.Context, id, reporterID uuid.UUID, window time.Duration) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
