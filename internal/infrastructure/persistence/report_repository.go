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

const reportColumns = `id, reporter_id, report_type, reported_user_id, reported_listing_id, reason,
	description, status, admin_notes, created_at, resolved_at, resolved_by`

type reportRow struct {
	ID                uuid.UUID  `db:"id"`
	ReporterID        uuid.UUID  `db:"reporter_id"`
	ReportType        string     `db:"report_type"`
	ReportedUserID    uuid.UUID  `db:"reported_user_id"`
	ReportedListingID *uuid.UUID `db:"reported_listing_id"`
	Reason            string     `db:"reason"`
	Description       string     `db:"description"`
	Status            string     `db:"status"`
	AdminNotes        *string    `db:"admin_notes"`
	CreatedAt         time.Time  `db:"created_at"`
	ResolvedAt        *time.Time `db:"resolved_at"`
	ResolvedBy        *uuid.UUID `db:"resolved_by"`
	CanDelete         bool       `db:"can_delete"`
}

func (r reportRow) toEntity() *entity.Report {
	return &entity.Report{
		ID:                r.ID,
		ReporterID:        r.ReporterID,
		Type:              valueobject.ReportType(r.ReportType),
		ReportedUserID:    r.ReportedUserID,
		ReportedListingID: r.ReportedListingID,
		Reason:            valueobject.ReportReason(r.Reason),
		Description:       r.Description,
		Status:            valueobject.ReportStatus(r.Status),
		AdminNotes:        r.AdminNotes,
		CreatedAt:         r.CreatedAt,
		ResolvedAt:        r.ResolvedAt,
		ResolvedBy:        r.ResolvedBy,
		CanDelete:         r.CanDelete,
	}
}

type ReportRepository struct {
	db *sqlx.DB
}

func NewReportRepository(db *sqlx.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

var _ repository.ReportRepository = (*ReportRepository)(nil)

// Create полагается на уникальные индексы uq_reports_*: при гонке двух
// одинаковых жалоб вторая получает ErrDuplicateReport.
func (r *ReportRepository) Create(ctx context.Context, report *entity.Report) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO reports (`+reportColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`,
		report.ID, report.ReporterID, string(report.Type), report.ReportedUserID, report.ReportedListingID,
		string(report.Reason), report.Description, string(report.Status), report.AdminNotes,
		report.CreatedAt, report.ResolvedAt, report.ResolvedBy,
	)
	return mapReportInsertError(err)
}

func mapReportInsertError(err error) error {
	switch {
	case err == nil:
		return nil
	case isUniqueViolation(err):
		return apperror.ErrDuplicateReport
	case isCheckViolation(err, "reports_no_self_report"):
		return apperror.ErrSelfReport
	default:
		return fmt.Errorf("insert report: %w", err)
	}
}

func (r *ReportRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Report, error) {
	var row reportRow
	err := r.db.GetContext(ctx, &row, `SELECT `+reportColumns+` FROM reports WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.ErrReportNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get report: %w", err)
	}
	return row.toEntity(), nil
}

func (r *ReportRepository) FindByReporterAndTarget(ctx context.Context, reporterID uuid.UUID, target entity.ReportTarget) (*entity.Report, error) {
	var row reportRow
	var err error
	if target.Type == valueobject.ReportTypeListing && target.ListingID != nil {
		err = r.db.GetContext(ctx, &row, `
			SELECT `+reportColumns+` FROM reports
			WHERE reporter_id = $1 AND report_type = 'listing' AND reported_listing_id = $2
		`, reporterID, *target.ListingID)
	} else {
		err = r.db.GetContext(ctx, &row, `
			SELECT `+reportColumns+` FROM reports
			WHERE reporter_id = $1 AND report_type = 'user' AND reported_user_id = $2
		`, reporterID, target.UserID)
	}
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find report by target: %w", err)
	}
	return row.toEntity(), nil
}

// FindForReporter вычисляет can_delete тем же условием, что и DeleteOwnPending.
func (r *ReportRepository) FindForReporter(ctx context.Context, reporterID, listingID uuid.UUID, window time.Duration) (*entity.Report, error) {
	var row reportRow
	err := r.db.GetContext(ctx, &row, `
		SELECT `+reportColumns+`,
		       (status = 'pending' AND created_at >= NOW() - ($3 * INTERVAL '1 second')) AS can_delete
		FROM reports
		WHERE reporter_id = $1 AND report_type = 'listing' AND reported_listing_id = $2
	`, reporterID, listingID, int64(window.Seconds()))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find reporter report: %w", err)
	}
	return row.toEntity(), nil
}

// UpdateResolution не перезаписывает закрытую жалобу, даже если два администратора
// закрывают её одновременно.
func (r *ReportRepository) UpdateResolution(ctx context.Context, report *entity.Report) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE reports
		SET status = $2, admin_notes = $3, resolved_at = $4, resolved_by = $5
		WHERE id = $1 AND status NOT IN ('resolved', 'dismissed')
	`, report.ID, string(report.Status), report.AdminNotes, report.ResolvedAt, report.ResolvedBy)
	if err != nil {
		return fmt.Errorf("update report: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update report: %w", err)
	}
	if n > 0 {
		return nil
	}

	// Ноль строк: жалобу либо закрыли, либо удалили.
	var exists bool
	if err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM reports WHERE id = $1)`, report.ID); err != nil {
		return fmt.Errorf("check report: %w", err)
	}
	if !exists {
		return apperror.ErrReportNotFound
	}
	return apperror.Validation("жалоба уже закрыта, изменить статус нельзя")
}

func (r *ReportRepository) List(ctx context.Context, status *valueobject.ReportStatus, limit, offset int) ([]*entity.Report, int, error) {
	where := ""
	args := []any{}
	if status != nil {
		where = "WHERE status = $1"
		args = append(args, string(*status))
	}

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM reports `+where, args...); err != nil {
		return nil, 0, fmt.Errorf("count reports: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM reports %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		reportColumns, where, len(args)+1, len(args)+2)
	var rows []reportRow
	if err := r.db.SelectContext(ctx, &rows, query, append(args, limit, offset)...); err != nil {
		return nil, 0, fmt.Errorf("list reports: %w", err)
	}

	reports := make([]*entity.Report, 0, len(rows))
	for _, row := range rows {
		reports = append(reports, row.toEntity())
	}
	return reports, total, nil
}

func (r *ReportRepository) CountByStatus(ctx context.Context) (map[valueobject.ReportStatus]int, error) {
	var rows []struct {
		Status string `db:"status"`
		Count  int    `db:"count"`
	}
	if err := r.db.SelectContext(ctx, &rows, `SELECT status, COUNT(*) AS count FROM reports GROUP BY status`); err != nil {
		return nil, fmt.Errorf("count reports by status: %w", err)
	}

	counts := make(map[valueobject.ReportStatus]int, len(rows))
	for _, row := range rows {
		counts[valueobject.ReportStatus(row.Status)] = row.Count
	}
	return counts, nil
}

// DeleteOwnPending это единственное место, где проверяется окно отмены.
func (r *ReportRepository) DeleteOwnPending(ctx context.Context, id, reporterID uuid.UUID, window time.Duration) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM reports
		WHERE id = $1 AND reporter_id = $2 AND status = 'pending'
		  AND created_at >= NOW() - ($3 * INTERVAL '1 second')
	`, id, reporterID, int64(window.Seconds()))
	if err != nil {
		return false, fmt.Errorf("delete own report: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete own report: %w", err)
	}
	return n > 0, nil
}

func (r *ReportRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM reports WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete report: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperror.ErrReportNotFound
	}
	return nil
}
