package listing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ignatzorin/classifieds-backend/internal/domain/entity"
	"github.com/ignatzorin/classifieds-backend/internal/domain/repository"
	"github.com/ignatzorin/classifieds-backend/internal/logger"
	"github.com/ignatzorin/classifieds-backend/internal/pkg/apperror"
)

type SubmitListingInput struct {
	OwnerID     uuid.UUID
	CategoryID  uuid.UUID
	Title       string
	Description string
	Price       decimal.Decimal
	City        string
	State       string
}

type SubmitListingUseCase struct {
	listingRepo repository.ListingRepository
}

func NewSubmitListingUseCase(listingRepo repository.ListingRepository) *SubmitListingUseCase {
	return &SubmitListingUseCase{listingRepo: listingRepo}
}

// Execute создаёт объявление в статусе pending. Публично оно появится только после одобрения.
func (uc *SubmitListingUseCase) Execute(ctx context.Context, input SubmitListingInput) (*entity.Listing, error) {
	listing, err := entity.NewListing(entity.ListingDraft{
		OwnerID:     input.OwnerID,
		CategoryID:  input.CategoryID,
		Title:       input.Title,
		Description: input.Description,
		Price:       input.Price,
		City:        input.City,
		State:       input.State,
	}, time.Now())
	if err != nil {
		return nil, err
	}

	if err := uc.listingRepo.Create(ctx, listing); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось создать объявление")
	}

	logger.Log.WithField("listing_id", listing.ID).WithField("owner_id", listing.OwnerID).Info("listing submitted")
	return listing, nil
}
