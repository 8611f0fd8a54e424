package report

import (
	"context"

	"github.com/google/uuid"

	"github.com/ignatzorin/classifieds-backend/internal/domain/entity"
	"github.com/ignatzorin/classifieds-backend/internal/domain/repository"
	"github.com/ignatzorin/classifieds-backend/internal/domain/valueobject"
	"github.com/ignatzorin/classifieds-backend/internal/pkg/apperror"
)

type GetMyReportUseCase struct {
	reportRepo repository.ReportRepository
}

func NewGetMyReportUseCase(reportRepo repository.ReportRepository) *GetMyReportUseCase {
	return &GetMyReportUseCase{reportRepo: reportRepo}
}

// Execute возвращает жалобу пользователя на объявление или nil.
// CanDelete вычисляется хранилищем на момент чтения.
func (uc *GetMyReportUseCase) Execute(ctx context.Context, reporterID, listingID uuid.UUID) (*entity.Report, error) {
	return uc.reportRepo.FindForReporter(ctx, reporterID, listingID, entity.CancelWindow)
}

type ListReportsUseCase struct {
	reportRepo repository.ReportRepository
}

func NewListReportsUseCase(reportRepo repository.ReportRepository) *ListReportsUseCase {
	return &ListReportsUseCase{reportRepo: reportRepo}
}

func (uc *ListReportsUseCase) Execute(ctx context.Context, admin entity.Actor, status string, limit, offset int) ([]*entity.Report, int, error) {
	if !admin.IsAdmin() {
		return nil, 0, apperror.ErrForbidden
	}

	var filter *valueobject.ReportStatus
	if status != "" && status != "all" {
		s, err := valueobject.NewReportStatus(status)
		if err != nil {
			return nil, 0, err
		}
		filter = &s
	}

	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return uc.reportRepo.List(ctx, filter, limit, offset)
}

type ReportStats struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Reviewed  int `json:"reviewed"`
	Resolved  int `json:"resolved"`
	Dismissed int `json:"dismissed"`
}

type ReportStatsUseCase struct {
	reportRepo repository.ReportRepository
}

func NewReportStatsUseCase(reportRepo repository.ReportRepository) *ReportStatsUseCase {
	return &ReportStatsUseCase{reportRepo: reportRepo}
}

func (uc *ReportStatsUseCase) Execute(ctx context.Context, admin entity.Actor) (ReportStats, error) {
	if !admin.IsAdmin() {
		return ReportStats{}, apperror.ErrForbidden
	}

	counts, err := uc.reportRepo.CountByStatus(ctx)
	if err != nil {
		return ReportStats{}, err
	}

	stats := ReportStats{
		Pending:   counts[valueobject.ReportStatusPending],
		Reviewed:  counts[valueobject.ReportStatusReviewed],
		Resolved:  counts[valueobject.ReportStatusResolved],
		Dismissed: counts[valueobject.ReportStatusDismissed],
	}
	stats.Total = stats.Pending + stats.Reviewed + stats.Resolved + stats.Dismissed
	return stats, nil
}
