package listing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ignatzorin/classifieds-backend/internal/domain/entity"
	"github.com/ignatzorin/classifieds-backend/internal/domain/repository"
	"github.com/ignatzorin/classifieds-backend/internal/logger"
	"github.com/ignatzorin/classifieds-backend/internal/metrics"
	"github.com/ignatzorin/classifieds-backend/internal/pkg/apperror"
)

type EditListingInput struct {
	Title       *string
	Description *string
	Price       *decimal.Decimal
	CategoryID  *uuid.UUID
}

type EditListingUseCase struct {
	listingRepo repository.ListingRepository
}

func NewEditListingUseCase(listingRepo repository.ListingRepository) *EditListingUseCase {
	return &EditListingUseCase{listingRepo: listingRepo}
}

// Execute меняет содержимое объявления. Статус модерации при этом не меняется.
func (uc *EditListingUseCase) Execute(ctx context.Context, listingID uuid.UUID, actor entity.Actor, input EditListingInput) (*entity.Listing, error) {
	listing, err := uc.listingRepo.FindByID(ctx, listingID)
	if err != nil {
		return nil, err
	}

	if !listing.CanBeEditedBy(actor) {
		return nil, apperror.Permission("редактировать объявление может только владелец или администратор")
	}

	if err := listing.Edit(entity.ListingEdit{
		Title:       input.Title,
		Description: input.Description,
		Price:       input.Price,
		CategoryID:  input.CategoryID,
	}, time.Now()); err != nil {
		return nil, err
	}

	if err := uc.listingRepo.Update(ctx, listing); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось обновить объявление")
	}

	if !listing.IsOwnedBy(actor.UserID) {
		logger.Moderation(actor.UserID, "listing", listing.ID, "edit").Info("listing edited by admin")
		metrics.RecordModeration("listing", "edit")
	}

	return listing, nil
}

type SetListingActiveUseCase struct {
	listingRepo repository.ListingRepository
}

func NewSetListingActiveUseCase(listingRepo repository.ListingRepository) *SetListingActiveUseCase {
	return &SetListingActiveUseCase{listingRepo: listingRepo}
}

func (uc *SetListingActiveUseCase) Execute(ctx context.Context, listingID uuid.UUID, actor entity.Actor, active bool) (*entity.Listing, error) {
	listing, err := uc.listingRepo.FindByID(ctx, listingID)
	if err != nil {
		return nil, err
	}

	if !listing.CanBeEditedBy(actor) {
		return nil, apperror.Permission("изменить активность объявления может только владелец или администратор")
	}

	if listing.IsActive == active {
		return listing, nil
	}

	listing.SetActive(active, time.Now())
	if err := uc.listingRepo.Update(ctx, listing); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось обновить объявление")
	}

	return listing, nil
}
