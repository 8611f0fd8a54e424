package listing

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/ignatzorin/classifieds-backend/internal/domain/entity"
	"github.com/ignatzorin/classifieds-backend/internal/domain/repository"
	"github.com/ignatzorin/classifieds-backend/internal/domain/valueobject"
	"github.com/ignatzorin/classifieds-backend/internal/pkg/apperror"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type GetListingUseCase struct {
	listingRepo repository.ListingRepository
}

func NewGetListingUseCase(listingRepo repository.ListingRepository) *GetListingUseCase {
	return &GetListingUseCase{listingRepo: listingRepo}
}

// Execute возвращает объявление. Скрытые объявления видят только владелец и администратор,
// остальным они отдаются как несуществующие.
func (uc *GetListingUseCase) Execute(ctx context.Context, listingID uuid.UUID, viewer *entity.Actor) (*entity.Listing, error) {
	listing, err := uc.listingRepo.FindByIDWithDetails(ctx, listingID)
	if err != nil {
		return nil, err
	}

	if listing.IsPubliclyVisible() {
		return listing, nil
	}
	if viewer != nil && listing.CanBeEditedBy(*viewer) {
		return listing, nil
	}
	return nil, apperror.ErrListingNotFound
}

type ListListingsInput struct {
	Status     string
	CategoryID *uuid.UUID
	City       string
	State      string
	Search     string
	Limit      int
	Offset     int
}

// Page возвращает нормализованные limit и offset.
func (in ListListingsInput) Page() (limit, offset int) {
	limit = in.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	offset = in.Offset
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func (in ListListingsInput) filter() repository.ListingFilter {
	limit, offset := in.Page()
	return repository.ListingFilter{
		Status:     in.Status,
		CategoryID: in.CategoryID,
		City:       strings.TrimSpace(in.City),
		State:      strings.TrimSpace(in.State),
		Search:     strings.TrimSpace(in.Search),
		Limit:      limit,
		Offset:     offset,
	}
}

type ListPublicListingsUseCase struct {
	listingRepo repository.ListingRepository
}

func NewListPublicListingsUseCase(listingRepo repository.ListingRepository) *ListPublicListingsUseCase {
	return &ListPublicListingsUseCase{listingRepo: listingRepo}
}

// Execute отдаёт только одобренные и активные объявления, фильтр статуса игнорируется.
func (uc *ListPublicListingsUseCase) Execute(ctx context.Context, input ListListingsInput) ([]*entity.Listing, int, error) {
	filter := input.filter()
	filter.Status = string(valueobject.ListingStatusApproved)
	return uc.listingRepo.ListPublic(ctx, filter)
}

type ListModerationQueueUseCase struct {
	listingRepo repository.ListingRepository
}

func NewListModerationQueueUseCase(listingRepo repository.ListingRepository) *ListModerationQueueUseCase {
	return &ListModerationQueueUseCase{listingRepo: listingRepo}
}

func (uc *ListModerationQueueUseCase) Execute(ctx context.Context, admin entity.Actor, input ListListingsInput) ([]*entity.Listing, int, error) {
	if !admin.IsAdmin() {
		return nil, 0, apperror.ErrForbidden
	}
	if input.Status != "" {
		if _, err := valueobject.NewListingStatus(input.Status); err != nil {
			return nil, 0, err
		}
	}
	return uc.listingRepo.ListForModeration(ctx, input.filter())
}
