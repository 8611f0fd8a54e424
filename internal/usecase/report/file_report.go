package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/classifieds-backend/internal/domain/entity"
	"github.com/ignatzorin/classifieds-backend/internal/domain/repository"
	"github.com/ignatzorin/classifieds-backend/internal/domain/valueobject"
	"github.com/ignatzorin/classifieds-backend/internal/logger"
	"github.com/ignatzorin/classifieds-backend/internal/metrics"
	"github.com/ignatzorin/classifieds-backend/internal/pkg/apperror"
)

// BanChecker это единственный источник ответа «заблокирован ли пользователь сейчас».
type BanChecker interface {
	IsCurrentlyBanned(ctx context.Context, userID uuid.UUID) (bool, error)
}

type FileReportInput struct {
	ReporterID        uuid.UUID
	ReportType        string
	ReportedUserID    *uuid.UUID
	ReportedListingID *uuid.UUID
	Reason            string
	Description       string
}

type FileReportUseCase struct {
	reportRepo  repository.ReportRepository
	listingRepo repository.ListingRepository
	userRepo    repository.UserRepository
	bans        BanChecker
	now         func() time.Time
}

func NewFileReportUseCase(
	reportRepo repository.ReportRepository,
	listingRepo repository.ListingRepository,
	userRepo repository.UserRepository,
	bans BanChecker,
) *FileReportUseCase {
	return &FileReportUseCase{
		reportRepo:  reportRepo,
		listingRepo: listingRepo,
		userRepo:    userRepo,
		bans:        bans,
		now:         time.Now,
	}
}

func (uc *FileReportUseCase) SetClock(now func() time.Time) {
	uc.now = now
}

// Execute проверяет по порядку: бан автора, жалобу на себя, дубликат, содержимое.
// Первая же неудачная проверка прерывает операцию.
func (uc *FileReportUseCase) Execute(ctx context.Context, input FileReportInput) (*entity.Report, error) {
	banned, err := uc.bans.IsCurrentlyBanned(ctx, input.ReporterID)
	if err != nil {
		return nil, err
	}
	if banned {
		metrics.RecordReportRefused(string(apperror.ErrCodeBanned))
		return nil, apperror.ErrBanned
	}

	target, err := uc.resolveTarget(ctx, input)
	if err != nil {
		return nil, err
	}
	if target.UserID == input.ReporterID {
		metrics.RecordReportRefused(string(apperror.ErrCodeSelfReport))
		return nil, apperror.ErrSelfReport
	}

	existing, err := uc.reportRepo.FindByReporterAndTarget(ctx, input.ReporterID, target)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		metrics.RecordReportRefused(string(apperror.ErrCodeDuplicateReport))
		return nil, apperror.ErrDuplicateReport
	}

	report, err := entity.NewReport(input.ReporterID, target, input.Reason, input.Description, uc.now())
	if err != nil {
		metrics.RecordReportRefused(string(apperror.ErrCodeValidation))
		return nil, err
	}

	// Проверка выше лишь подсказка; при гонке дубликат отсекает уникальный индекс.
	if err := uc.reportRepo.Create(ctx, report); err != nil {
		if apperror.IsDuplicateReport(err) {
			metrics.RecordReportRefused(string(apperror.ErrCodeDuplicateReport))
			return nil, apperror.ErrDuplicateReport
		}
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось отправить жалобу")
	}

	logger.Log.WithFields(logrus.Fields{
		"report_id":   report.ID.String(),
		"reporter_id": report.ReporterID.String(),
		"type":        report.Type,
		"reason":      report.Reason,
	}).Info("report filed")

	return report, nil
}

func (uc *FileReportUseCase) resolveTarget(ctx context.Context, input FileReportInput) (entity.ReportTarget, error) {
	reportType, err := valueobject.NewReportType(input.ReportType)
	if err != nil {
		return entity.ReportTarget{}, err
	}

	switch reportType {
	case valueobject.ReportTypeListing:
		if input.ReportedListingID == nil {
			return entity.ReportTarget{}, apperror.Validation("не указано объявление")
		}
		listing, err := uc.listingRepo.FindByID(ctx, *input.ReportedListingID)
		if err != nil {
			return entity.ReportTarget{}, err
		}
		target := entity.ListingTarget(listing.ID)
		target.UserID = listing.OwnerID
		return target, nil
	default:
		if input.ReportedUserID == nil {
			return entity.ReportTarget{}, apperror.Validation("не указан пользователь")
		}
		if *input.ReportedUserID == input.ReporterID {
			return entity.UserTarget(*input.ReportedUserID), nil
		}
		if _, err := uc.userRepo.FindByID(ctx, *input.ReportedUserID); err != nil {
			return entity.ReportTarget{}, err
		}
		return entity.UserTarget(*input.ReportedUserID), nil
	}
}
