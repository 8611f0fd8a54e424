package user_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/classifieds-backend/internal/domain/entity"
	"github.com/ignatzorin/classifieds-backend/internal/domain/repository"
	"github.com/ignatzorin/classifieds-backend/internal/domain/valueobject"
	"github.com/ignatzorin/classifieds-backend/internal/pkg/apperror"
	"github.com/ignatzorin/classifieds-backend/internal/usecase/user"
)

type mockGuard struct {
	mock.Mock
}

func (m *mockGuard) EnsureNotBanned(ctx context.Context, userID uuid.UUID) error {
	return m.Called(userID).Error(0)
}

type listingReader struct {
	repository.ListingRepository
	listings map[uuid.UUID]*entity.Listing
}

func (r *listingReader) FindByID(ctx context.Context, id uuid.UUID) (*entity.Listing, error) {
	if l, ok := r.listings[id]; ok {
		return l, nil
	}
	return nil, apperror.ErrListingNotFound
}

type userReader struct {
	repository.UserRepository
	users map[uuid.UUID]*entity.User
}

func (r *userReader) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, apperror.ErrUserNotFound
}

func setup() (*listingReader, *userReader, *entity.Listing, *entity.User) {
	phone := "+55 19 99999-0000"
	seller := &entity.User{ID: uuid.New(), Name: "João", Phone: &phone, IsVerified: true}
	l := &entity.Listing{ID: uuid.New(), OwnerID: seller.ID, Status: valueobject.ListingStatusApproved, IsActive: true}
	return &listingReader{listings: map[uuid.UUID]*entity.Listing{l.ID: l}},
		&userReader{users: map[uuid.UUID]*entity.User{seller.ID: seller}},
		l, seller
}

func TestGetSellerContact(t *testing.T) {
	listings, users, l, seller := setup()
	viewer := entity.Actor{UserID: uuid.New(), Role: valueobject.RoleUser}
	guard := &mockGuard{}
	guard.On("EnsureNotBanned", viewer.UserID).Return(nil)

	contact, err := user.NewGetSellerContactUseCase(listings, users, guard).Execute(context.Background(), viewer, l.ID)
	require.NoError(t, err)
	assert.Equal(t, seller.ID, contact.SellerID)
	assert.Equal(t, seller.Phone, contact.Phone)
	assert.True(t, contact.IsVerified)
	guard.AssertExpectations(t)
}

func TestGetSellerContact_BannedViewer(t *testing.T) {
	listings, users, l, _ := setup()
	viewer := entity.Actor{UserID: uuid.New(), Role: valueobject.RoleUser}
	guard := &mockGuard{}
	guard.On("EnsureNotBanned", viewer.UserID).Return(apperror.ErrBanned)

	_, err := user.NewGetSellerContactUseCase(listings, users, guard).Execute(context.Background(), viewer, l.ID)
	assert.True(t, apperror.IsBanned(err))
}

func TestGetSellerContact_HiddenListing(t *testing.T) {
	listings, users, l, _ := setup()
	l.Status = valueobject.ListingStatusPending
	viewer := entity.Actor{UserID: uuid.New(), Role: valueobject.RoleUser}
	guard := &mockGuard{}
	guard.On("EnsureNotBanned", viewer.UserID).Return(nil)

	_, err := user.NewGetSellerContactUseCase(listings, users, guard).Execute(context.Background(), viewer, l.ID)
	assert.True(t, apperror.IsNotFound(err))
}

func TestGetProfile(t *testing.T) {
	_, users, _, seller := setup()
	viewer := entity.Actor{UserID: uuid.New(), Role: valueobject.RoleUser}

	guard := &mockGuard{}
	guard.On("EnsureNotBanned", viewer.UserID).Return(apperror.ErrBanned).Once()
	guard.On("EnsureNotBanned", viewer.UserID).Return(nil).Once()
	uc := user.NewGetProfileUseCase(users, guard)

	_, err := uc.Execute(context.Background(), viewer, seller.ID)
	assert.True(t, apperror.IsBanned(err))

	profile, err := uc.Execute(context.Background(), viewer, seller.ID)
	require.NoError(t, err)
	assert.Equal(t, "João", profile.Name)

	// Свой профиль доступен и заблокированному.
	_, err = uc.Execute(context.Background(), entity.Actor{UserID: seller.ID}, seller.ID)
	assert.NoError(t, err)
	guard.AssertNumberOfCalls(t, "EnsureNotBanned", 2)
}
