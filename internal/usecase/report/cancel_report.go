package report

import (
	"context"

	"github.com/google/uuid"

	"github.com/ignatzorin/classifieds-backend/internal/domain/entity"
	"github.com/ignatzorin/classifieds-backend/internal/domain/repository"
	"github.com/ignatzorin/classifieds-backend/internal/logger"
	"github.com/ignatzorin/classifieds-backend/internal/metrics"
	"github.com/ignatzorin/classifieds-backend/internal/pkg/apperror"
)

type CancelReportUseCase struct {
	reportRepo repository.ReportRepository
}

func NewCancelReportUseCase(reportRepo repository.ReportRepository) *CancelReportUseCase {
	return &CancelReportUseCase{reportRepo: reportRepo}
}

// Execute отзывает жалобу автором. Условия (автор, pending, 24 часа) проверяет
// хранилище одним условным удалением.
func (uc *CancelReportUseCase) Execute(ctx context.Context, reportID uuid.UUID, requester entity.Actor) error {
	deleted, err := uc.reportRepo.DeleteOwnPending(ctx, reportID, requester.UserID, entity.CancelWindow)
	if err != nil {
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось отменить жалобу")
	}
	if !deleted {
		return apperror.Permission("отменить можно только свою нерассмотренную жалобу в течение 24 часов")
	}

	logger.Log.WithField("report_id", reportID).WithField("reporter_id", requester.UserID).Info("report cancelled by reporter")
	return nil
}

type DeleteReportUseCase struct {
	reportRepo repository.ReportRepository
}

func NewDeleteReportUseCase(reportRepo repository.ReportRepository) *DeleteReportUseCase {
	return &DeleteReportUseCase{reportRepo: reportRepo}
}

// Execute удаляет жалобу в любом статусе.
func (uc *DeleteReportUseCase) Execute(ctx context.Context, reportID uuid.UUID, admin entity.Actor) error {
	if !admin.IsAdmin() {
		return apperror.ErrForbidden
	}

	if _, err := uc.reportRepo.FindByID(ctx, reportID); err != nil {
		return err
	}

	if err := uc.reportRepo.Delete(ctx, reportID); err != nil {
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось удалить жалобу")
	}

	logger.Moderation(admin.UserID, "report", reportID, "delete").Info("report deleted")
	metrics.RecordModeration("report", "delete")
	return nil
}
