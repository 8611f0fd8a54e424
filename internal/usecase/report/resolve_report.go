package report

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/classifieds-backend/internal/domain/entity"
	"github.com/ignatzorin/classifieds-backend/internal/domain/event"
	"github.com/ignatzorin/classifieds-backend/internal/domain/repository"
	"github.com/ignatzorin/classifieds-backend/internal/domain/valueobject"
	"github.com/ignatzorin/classifieds-backend/internal/logger"
	"github.com/ignatzorin/classifieds-backend/internal/metrics"
	"github.com/ignatzorin/classifieds-backend/internal/pkg/apperror"
)

type ResolveReportUseCase struct {
	reportRepo repository.ReportRepository
	notifier   event.Notifier
	now        func() time.Time
}

func NewResolveReportUseCase(reportRepo repository.ReportRepository, notifier event.Notifier) *ResolveReportUseCase {
	return &ResolveReportUseCase{reportRepo: reportRepo, notifier: notifier, now: time.Now}
}

func (uc *ResolveReportUseCase) SetClock(now func() time.Time) {
	uc.now = now
}

// Execute меняет только жалобу. Объявления и блокировки администратор меняет отдельными действиями.
func (uc *ResolveReportUseCase) Execute(ctx context.Context, reportID uuid.UUID, admin entity.Actor, status string, notes *string) (*entity.Report, error) {
	if !admin.IsAdmin() {
		return nil, apperror.ErrForbidden
	}

	newStatus, err := valueobject.NewResolutionStatus(status)
	if err != nil {
		return nil, err
	}

	report, err := uc.reportRepo.FindByID(ctx, reportID)
	if err != nil {
		return nil, err
	}

	previous := report.Status
	if err := report.Resolve(admin.UserID, newStatus, notes, uc.now()); err != nil {
		return nil, err
	}

	if err := uc.reportRepo.UpdateResolution(ctx, report); err != nil {
		if apperror.IsValidation(err) || apperror.IsNotFound(err) {
			return nil, err
		}
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось обновить жалобу")
	}

	logger.Moderation(admin.UserID, "report", report.ID, string(newStatus)).
		WithField("from", previous).
		Info("report status changed")
	metrics.RecordModeration("report", string(newStatus))

	if newStatus.IsTerminal() && uc.notifier != nil {
		err := uc.notifier.Notify(ctx, report.ReporterID, event.ReportResolved, map[string]any{
			"report_id": report.ID,
			"status":    report.Status,
		})
		if err != nil {
			logger.Log.WithError(err).Warn("failed to notify reporter")
		}
	}

	return report, nil
}
