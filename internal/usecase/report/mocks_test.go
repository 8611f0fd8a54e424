package report_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/ignatzorin/classifieds-backend/internal/domain/entity"
	"github.com/ignatzorin/classifieds-backend/internal/domain/repository"
	"github.com/ignatzorin/classifieds-backend/internal/domain/valueobject"
	"github.com/ignatzorin/classifieds-backend/internal/pkg/apperror"
)

type mockReportRepository struct {
	reports map[uuid.UUID]*entity.Report
	now     func() time.Time
	// skipPrecheck имитирует гонку: предварительная проверка дубликата ничего не видит.
	skipPrecheck bool
}

func newMockReportRepository(now func() time.Time) *mockReportRepository {
	return &mockReportRepository{reports: make(map[uuid.UUID]*entity.Report), now: now}
}

func sameTarget(r *entity.Report, reporterID uuid.UUID, t entity.ReportTarget) bool {
	if r.ReporterID != reporterID || r.Type != t.Type {
		return false
	}
	if t.Type == valueobject.ReportTypeListing {
		return r.ReportedListingID != nil && t.ListingID != nil && *r.ReportedListingID == *t.ListingID
	}
	return r.ReportedUserID == t.UserID
}

func (m *mockReportRepository) Create(ctx context.Context, r *entity.Report) error {
	for _, existing := range m.reports {
		target := entity.ReportTarget{Type: r.Type, UserID: r.ReportedUserID, ListingID: r.ReportedListingID}
		if sameTarget(existing, r.ReporterID, target) {
			return apperror.ErrDuplicateReport
		}
	}
	cp := *r
	m.reports[r.ID] = &cp
	return nil
}

func (m *mockReportRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Report, error) {
	r, ok := m.reports[id]
	if !ok {
		return nil, apperror.ErrReportNotFound
	}
	cp := *r
	return &cp, nil
}

func (m *mockReportRepository) FindByReporterAndTarget(ctx context.Context, reporterID uuid.UUID, target entity.ReportTarget) (*entity.Report, error) {
	if m.skipPrecheck {
		return nil, nil
	}
	for _, r := range m.reports {
		if sameTarget(r, reporterID, target) {
			return r, nil
		}
	}
	return nil, nil
}

func (m *mockReportRepository) FindForReporter(ctx context.Context, reporterID, listingID uuid.UUID, window time.Duration) (*entity.Report, error) {
	for _, r := range m.reports {
		if r.ReporterID == reporterID && r.ReportedListingID != nil && *r.ReportedListingID == listingID {
			cp := *r
			cp.CanDelete = m.cancellable(r, reporterID, window)
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *mockReportRepository) UpdateResolution(ctx context.Context, r *entity.Report) error {
	cp := *r
	m.reports[r.ID] = &cp
	return nil
}

func (m *mockReportRepository) List(ctx context.Context, status *valueobject.ReportStatus, limit, offset int) ([]*entity.Report, int, error) {
	var result []*entity.Report
	for _, r := range m.reports {
		if status == nil || r.Status == *status {
			result = append(result, r)
		}
	}
	return result, len(result), nil
}

func (m *mockReportRepository) CountByStatus(ctx context.Context) (map[valueobject.ReportStatus]int, error) {
	counts := make(map[valueobject.ReportStatus]int)
	for _, r := range m.reports {
		counts[r.Status]++
	}
	return counts, nil
}

func (m *mockReportRepository) cancellable(r *entity.Report, reporterID uuid.UUID, window time.Duration) bool {
	return r.ReporterID == reporterID &&
		r.Status == valueobject.ReportStatusPending &&
		!r.CreatedAt.Before(m.now().Add(-window))
}

func (m *mockReportRepository) DeleteOwnPending(ctx context.Context, id, reporterID uuid.UUID, window time.Duration) (bool, error) {
	r, ok := m.reports[id]
	if !ok || !m.cancellable(r, reporterID, window) {
		return false, nil
	}
	delete(m.reports, id)
	return true, nil
}

func (m *mockReportRepository) Delete(ctx context.Context, id uuid.UUID) error {
	delete(m.reports, id)
	return nil
}

// stubListingRepository реализует только чтение по id.
type stubListingRepository struct {
	repository.ListingRepository
	listings map[uuid.UUID]*entity.Listing
}

func (s *stubListingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Listing, error) {
	l, ok := s.listings[id]
	if !ok {
		return nil, apperror.ErrListingNotFound
	}
	return l, nil
}

type stubUserRepository struct {
	repository.UserRepository
	users map[uuid.UUID]*entity.User
}

func (s *stubUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, apperror.ErrUserNotFound
	}
	return u, nil
}

type mockBanChecker struct {
	mock.Mock
}

func (m *mockBanChecker) IsCurrentlyBanned(ctx context.Context, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}
