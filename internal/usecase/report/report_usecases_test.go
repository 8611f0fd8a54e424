package report_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/classifieds-backend/internal/domain/entity"
	"github.com/ignatzorin/classifieds-backend/internal/domain/event"
	"github.com/ignatzorin/classifieds-backend/internal/domain/valueobject"
	"github.com/ignatzorin/classifieds-backend/internal/pkg/apperror"
	"github.com/ignatzorin/classifieds-backend/internal/usecase/report"
)

type fixture struct {
	now      time.Time
	reports  *mockReportRepository
	listings *stubListingRepository
	users    *stubUserRepository
	bans     *mockBanChecker
	file     *report.FileReportUseCase
	seller   uuid.UUID
	listing  *entity.Listing
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{now: time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)}
	clock := func() time.Time { return f.now }

	f.seller = uuid.New()
	f.listing = &entity.Listing{ID: uuid.New(), OwnerID: f.seller, Status: valueobject.ListingStatusApproved, IsActive: true}

	f.reports = newMockReportRepository(clock)
	f.listings = &stubListingRepository{listings: map[uuid.UUID]*entity.Listing{f.listing.ID: f.listing}}
	f.users = &stubUserRepository{users: map[uuid.UUID]*entity.User{f.seller: {ID: f.seller}}}
	f.bans = &mockBanChecker{}

	f.file = report.NewFileReportUseCase(f.reports, f.listings, f.users, f.bans)
	f.file.SetClock(clock)
	return f
}

func (f *fixture) listingInput(reporter uuid.UUID) report.FileReportInput {
	id := f.listing.ID
	return report.FileReportInput{
		ReporterID:        reporter,
		ReportType:        "listing",
		ReportedListingID: &id,
		Reason:            "scam",
		Description:       "просит предоплату",
	}
}

func TestFileReport_Success(t *testing.T) {
	f := newFixture(t)
	reporter := uuid.New()
	f.bans.On("IsCurrentlyBanned", mock.Anything, reporter).Return(false, nil)

	result, err := f.file.Execute(context.Background(), f.listingInput(reporter))
	require.NoError(t, err)

	assert.Equal(t, valueobject.ReportStatusPending, result.Status)
	assert.Equal(t, f.seller, result.ReportedUserID)
	assert.Equal(t, f.listing.ID, *result.ReportedListingID)
	assert.Equal(t, f.now, result.CreatedAt)
	assert.Nil(t, result.ResolvedAt)
	f.bans.AssertExpectations(t)
}

func TestFileReport_UserTarget(t *testing.T) {
	f := newFixture(t)
	reporter := uuid.New()
	f.bans.On("IsCurrentlyBanned", mock.Anything, reporter).Return(false, nil)

	result, err := f.file.Execute(context.Background(), report.FileReportInput{
		ReporterID:     reporter,
		ReportType:     "user",
		ReportedUserID: &f.seller,
		Reason:         "offensive_behavior",
		Description:    "грубит в переписке",
	})
	require.NoError(t, err)
	assert.Equal(t, valueobject.ReportTypeUser, result.Type)
	assert.Nil(t, result.ReportedListingID)
}

func TestFileReport_DuplicateByPrecheck(t *testing.T) {
	f := newFixture(t)
	reporter := uuid.New()
	f.bans.On("IsCurrentlyBanned", mock.Anything, reporter).Return(false, nil)

	_, err := f.file.Execute(context.Background(), f.listingInput(reporter))
	require.NoError(t, err)

	_, err = f.file.Execute(context.Background(), f.listingInput(reporter))
	assert.True(t, errors.Is(err, apperror.ErrDuplicateReport))
	assert.Len(t, f.reports.reports, 1)
}

func TestFileReport_DuplicateByUniqueIndex(t *testing.T) {
	f := newFixture(t)
	reporter := uuid.New()
	f.bans.On("IsCurrentlyBanned", mock.Anything, reporter).Return(false, nil)

	_, err := f.file.Execute(context.Background(), f.listingInput(reporter))
	require.NoError(t, err)

	f.reports.skipPrecheck = true
	_, err = f.file.Execute(context.Background(), f.listingInput(reporter))
	assert.True(t, apperror.IsDuplicateReport(err))
	assert.Len(t, f.reports.reports, 1)
}

func TestFileReport_SelfReport(t *testing.T) {
	f := newFixture(t)
	f.bans.On("IsCurrentlyBanned", mock.Anything, f.seller).Return(false, nil)

	_, err := f.file.Execute(context.Background(), f.listingInput(f.seller))
	assert.True(t, apperror.IsSelfReport(err))

	_, err = f.file.Execute(context.Background(), report.FileReportInput{
		ReporterID:     f.seller,
		ReportType:     "user",
		ReportedUserID: &f.seller,
		Reason:         "spam",
		Description:    "я",
	})
	assert.True(t, apperror.IsSelfReport(err))
	assert.Empty(t, f.reports.reports)
}

func TestFileReport_BannedFailsBeforeOtherChecks(t *testing.T) {
	f := newFixture(t)
	f.bans.On("IsCurrentlyBanned", mock.Anything, f.seller).Return(true, nil)

	// Жалоба на себя, без описания и с неверной причиной: первой срабатывает блокировка.
	input := f.listingInput(f.seller)
	input.Reason = "whatever"
	input.Description = ""

	_, err := f.file.Execute(context.Background(), input)
	assert.True(t, apperror.IsBanned(err))
	assert.Empty(t, f.reports.reports)
}

func TestFileReport_Validation(t *testing.T) {
	f := newFixture(t)
	reporter := uuid.New()
	f.bans.On("IsCurrentlyBanned", mock.Anything, reporter).Return(false, nil)

	badReason := f.listingInput(reporter)
	badReason.Reason = "annoying"
	_, err := f.file.Execute(context.Background(), badReason)
	assert.True(t, apperror.IsValidation(err))

	noDescription := f.listingInput(reporter)
	noDescription.Description = "   "
	_, err = f.file.Execute(context.Background(), noDescription)
	assert.True(t, apperror.IsValidation(err))

	noListing := f.listingInput(reporter)
	noListing.ReportedListingID = nil
	_, err = f.file.Execute(context.Background(), noListing)
	assert.True(t, apperror.IsValidation(err))

	badType := f.listingInput(reporter)
	badType.ReportType = "comment"
	_, err = f.file.Execute(context.Background(), badType)
	assert.True(t, apperror.IsValidation(err))

	assert.Empty(t, f.reports.reports)
}

func TestFileReport_UnknownListing(t *testing.T) {
	f := newFixture(t)
	reporter := uuid.New()
	f.bans.On("IsCurrentlyBanned", mock.Anything, reporter).Return(false, nil)

	input := f.listingInput(reporter)
	missing := uuid.New()
	input.ReportedListingID = &missing

	_, err := f.file.Execute(context.Background(), input)
	assert.True(t, apperror.IsNotFound(err))
}

func TestResolveReport_SetsResolution(t *testing.T) {
	f := newFixture(t)
	reporter := uuid.New()
	f.bans.On("IsCurrentlyBanned", mock.Anything, reporter).Return(false, nil)
	created, err := f.file.Execute(context.Background(), f.listingInput(reporter))
	require.NoError(t, err)

	admin := entity.Actor{UserID: uuid.New(), Role: valueobject.RoleAdmin}
	notifier := &recordingNotifier{}
	uc := report.NewResolveReportUseCase(f.reports, notifier)
	resolvedAt := f.now.Add(2 * time.Hour)
	uc.SetClock(func() time.Time { return resolvedAt })

	notes := "  на рассмотрении  "
	reviewed, err := uc.Execute(context.Background(), created.ID, admin, "reviewed", &notes)
	require.NoError(t, err)
	assert.Equal(t, valueobject.ReportStatusReviewed, reviewed.Status)
	require.NotNil(t, reviewed.AdminNotes)
	assert.Equal(t, "на рассмотрении", *reviewed.AdminNotes)
	assert.Nil(t, reviewed.ResolvedAt)
	assert.Empty(t, notifier.events)

	done := "продавец заблокирован"
	resolved, err := uc.Execute(context.Background(), created.ID, admin, "resolved", &done)
	require.NoError(t, err)
	require.NotNil(t, resolved.ResolvedAt)
	require.NotNil(t, resolved.ResolvedBy)
	assert.Equal(t, resolvedAt, *resolved.ResolvedAt)
	assert.Equal(t, admin.UserID, *resolved.ResolvedBy)
	assert.Equal(t, []string{event.ReportResolved}, notifier.events)

	_, err = uc.Execute(context.Background(), created.ID, admin, "dismissed", nil)
	assert.True(t, apperror.IsValidation(err))
	assert.Equal(t, valueobject.ReportStatusResolved, f.reports.reports[created.ID].Status)
}

func TestResolveReport_InvalidStatusAndMissing(t *testing.T) {
	f := newFixture(t)
	admin := entity.Actor{UserID: uuid.New(), Role: valueobject.RoleAdmin}
	uc := report.NewResolveReportUseCase(f.reports, event.NopNotifier{})

	_, err := uc.Execute(context.Background(), uuid.New(), admin, "pending", nil)
	assert.True(t, apperror.IsValidation(err))

	_, err = uc.Execute(context.Background(), uuid.New(), admin, "dismissed", nil)
	assert.True(t, apperror.IsNotFound(err))

	_, err = uc.Execute(context.Background(), uuid.New(), entity.Actor{UserID: uuid.New(), Role: valueobject.RoleUser}, "dismissed", nil)
	assert.True(t, apperror.IsForbidden(err))
}

func TestCancelReport(t *testing.T) {
	f := newFixture(t)
	reporter := uuid.New()
	f.bans.On("IsCurrentlyBanned", mock.Anything, reporter).Return(false, nil)
	created, err := f.file.Execute(context.Background(), f.listingInput(reporter))
	require.NoError(t, err)

	uc := report.NewCancelReportUseCase(f.reports)

	err = uc.Execute(context.Background(), created.ID, entity.Actor{UserID: uuid.New(), Role: valueobject.RoleUser})
	assert.True(t, apperror.IsForbidden(err))
	assert.Contains(t, f.reports.reports, created.ID)

	f.now = f.now.Add(23 * time.Hour)
	mine, err := report.NewGetMyReportUseCase(f.reports).Execute(context.Background(), reporter, f.listing.ID)
	require.NoError(t, err)
	assert.True(t, mine.CanDelete)

	err = uc.Execute(context.Background(), created.ID, entity.Actor{UserID: reporter, Role: valueobject.RoleUser})
	require.NoError(t, err)
	assert.NotContains(t, f.reports.reports, created.ID)
}

func TestCancelReport_WindowExpired(t *testing.T) {
	f := newFixture(t)
	reporter := uuid.New()
	f.bans.On("IsCurrentlyBanned", mock.Anything, reporter).Return(false, nil)
	created, err := f.file.Execute(context.Background(), f.listingInput(reporter))
	require.NoError(t, err)

	f.now = f.now.Add(25 * time.Hour)
	mine, err := report.NewGetMyReportUseCase(f.reports).Execute(context.Background(), reporter, f.listing.ID)
	require.NoError(t, err)
	assert.False(t, mine.CanDelete)

	err = report.NewCancelReportUseCase(f.reports).Execute(context.Background(), created.ID, entity.Actor{UserID: reporter})
	assert.True(t, apperror.IsForbidden(err))
	assert.Contains(t, f.reports.reports, created.ID)
}

func TestCancelReport_NotPending(t *testing.T) {
	f := newFixture(t)
	reporter := uuid.New()
	f.bans.On("IsCurrentlyBanned", mock.Anything, reporter).Return(false, nil)
	created, err := f.file.Execute(context.Background(), f.listingInput(reporter))
	require.NoError(t, err)

	admin := entity.Actor{UserID: uuid.New(), Role: valueobject.RoleAdmin}
	_, err = report.NewResolveReportUseCase(f.reports, nil).Execute(context.Background(), created.ID, admin, "reviewed", nil)
	require.NoError(t, err)

	err = report.NewCancelReportUseCase(f.reports).Execute(context.Background(), created.ID, entity.Actor{UserID: reporter})
	assert.True(t, apperror.IsForbidden(err))
}

func TestDeleteReport_AnyStatus(t *testing.T) {
	f := newFixture(t)
	reporter := uuid.New()
	f.bans.On("IsCurrentlyBanned", mock.Anything, reporter).Return(false, nil)
	created, err := f.file.Execute(context.Background(), f.listingInput(reporter))
	require.NoError(t, err)

	admin := entity.Actor{UserID: uuid.New(), Role: valueobject.RoleAdmin}
	_, err = report.NewResolveReportUseCase(f.reports, nil).Execute(context.Background(), created.ID, admin, "dismissed", nil)
	require.NoError(t, err)

	uc := report.NewDeleteReportUseCase(f.reports)
	require.NoError(t, uc.Execute(context.Background(), created.ID, admin))
	assert.Empty(t, f.reports.reports)

	err = uc.Execute(context.Background(), created.ID, admin)
	assert.True(t, apperror.IsNotFound(err))
}

func TestReportStatsAndList(t *testing.T) {
	f := newFixture(t)
	f.bans.On("IsCurrentlyBanned", mock.Anything, mock.Anything).Return(false, nil)
	for i := 0; i < 3; i++ {
		_, err := f.file.Execute(context.Background(), f.listingInput(uuid.New()))
		require.NoError(t, err)
	}
	admin := entity.Actor{UserID: uuid.New(), Role: valueobject.RoleAdmin}

	stats, err := report.NewReportStatsUseCase(f.reports).Execute(context.Background(), admin)
	require.NoError(t, err)
	assert.Equal(t, report.ReportStats{Total: 3, Pending: 3}, stats)

	items, total, err := report.NewListReportsUseCase(f.reports).Execute(context.Background(), admin, "pending", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Len(t, items, 3)

	_, _, err = report.NewListReportsUseCase(f.reports).Execute(context.Background(), admin, "closed", 0, 0)
	assert.True(t, apperror.IsValidation(err))
}

type recordingNotifier struct {
	events []string
}

func (r *recordingNotifier) Notify(ctx context.Context, userID uuid.UUID, name string, data any) error {
	r.events = append(r.events, name)
	return nil
}
