package handler

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/classifieds-backend/internal/domain/entity"
	"github.com/ignatzorin/classifieds-backend/internal/domain/repository"
	"github.com/ignatzorin/classifieds-backend/internal/domain/valueobject"
	"github.com/ignatzorin/classifieds-backend/internal/pkg/apperror"
)

// fakeListingRepository реализует только то, что нужно хэндлерам в тестах.
type fakeListingRepository struct {
	repository.ListingRepository

	mu       sync.Mutex
	listings map[uuid.UUID]*entity.Listing
}

func newFakeListingRepository() *fakeListingRepository {
	return &fakeListingRepository{listings: make(map[uuid.UUID]*entity.Listing)}
}

func (f *fakeListingRepository) put(l *entity.Listing) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listings[l.ID] = l
}

func (f *fakeListingRepository) Create(ctx context.Context, l *entity.Listing) error {
	f.put(l)
	return nil
}

func (f *fakeListingRepository) Update(ctx context.Context, l *entity.Listing) error {
	f.put(l)
	return nil
}

func (f *fakeListingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Listing, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	l, ok := f.listings[id]
	if !ok {
		return nil, apperror.ErrListingNotFound
	}
	cp := *l
	return &cp, nil
}

func (f *fakeListingRepository) FindByIDWithDetails(ctx context.Context, id uuid.UUID) (*entity.Listing, error) {
	return f.FindByID(ctx, id)
}

func (f *fakeListingRepository) ListPublic(ctx context.Context, filter repository.ListingFilter) ([]*entity.Listing, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*entity.Listing, 0)
	for _, l := range f.listings {
		if l.IsPubliclyVisible() {
			out = append(out, l)
		}
	}
	return out, len(out), nil
}

type fakeUserRepository struct {
	repository.UserRepository
	users map[uuid.UUID]*entity.User
}

func (f *fakeUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, apperror.ErrUserNotFound
	}
	return u, nil
}

type fakeReportRepository struct {
	repository.ReportRepository
	created []*entity.Report
}

func (f *fakeReportRepository) FindByReporterAndTarget(ctx context.Context, reporterID uuid.UUID, target entity.ReportTarget) (*entity.Report, error) {
	return nil, nil
}

func (f *fakeReportRepository) Create(ctx context.Context, r *entity.Report) error {
	f.created = append(f.created, r)
	return nil
}

func (f *fakeReportRepository) FindForReporter(ctx context.Context, reporterID, listingID uuid.UUID, window time.Duration) (*entity.Report, error) {
	for _, r := range f.created {
		if r.ReporterID == reporterID && r.ReportedListingID != nil && *r.ReportedListingID == listingID {
			cp := *r
			cp.CanDelete = r.Status == valueobject.ReportStatusPending
			return &cp, nil
		}
	}
	return nil, nil
}

type staticBans struct{ banned bool }

func (s staticBans) IsCurrentlyBanned(ctx context.Context, userID uuid.UUID) (bool, error) {
	return s.banned, nil
}
