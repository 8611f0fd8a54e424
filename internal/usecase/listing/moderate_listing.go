package listing

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/classifieds-backend/internal/domain/entity"
	"github.com/ignatzorin/classifieds-backend/internal/domain/event"
	"github.com/ignatzorin/classifieds-backend/internal/domain/repository"
	"github.com/ignatzorin/classifieds-backend/internal/logger"
	"github.com/ignatzorin/classifieds-backend/internal/metrics"
	"github.com/ignatzorin/classifieds-backend/internal/pkg/apperror"
)

type ApproveListingUseCase struct {
	listingRepo repository.ListingRepository
	notifier    event.Notifier
}

func NewApproveListingUseCase(listingRepo repository.ListingRepository, notifier event.Notifier) *ApproveListingUseCase {
	return &ApproveListingUseCase{listingRepo: listingRepo, notifier: notifier}
}

func (uc *ApproveListingUseCase) Execute(ctx context.Context, listingID uuid.UUID, admin entity.Actor) (*entity.Listing, error) {
	if !admin.IsAdmin() {
		return nil, apperror.ErrForbidden
	}

	listing, err := uc.listingRepo.FindByID(ctx, listingID)
	if err != nil {
		return nil, err
	}

	changed, err := listing.Approve(time.Now())
	if err != nil {
		return nil, err
	}
	if !changed {
		return listing, nil
	}

	if err := uc.listingRepo.Update(ctx, listing); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось одобрить объявление")
	}

	logger.Moderation(admin.UserID, "listing", listing.ID, "approve").Info("listing approved")
	metrics.RecordModeration("listing", "approve")
	notify(ctx, uc.notifier, listing.OwnerID, event.ListingApproved, payload{"listing_id": listing.ID, "title": listing.Title})

	return listing, nil
}

type RejectListingUseCase struct {
	listingRepo repository.ListingRepository
	notifier    event.Notifier
}

func NewRejectListingUseCase(listingRepo repository.ListingRepository, notifier event.Notifier) *RejectListingUseCase {
	return &RejectListingUseCase{listingRepo: listingRepo, notifier: notifier}
}

func (uc *RejectListingUseCase) Execute(ctx context.Context, listingID uuid.UUID, admin entity.Actor, reason string) (*entity.Listing, error) {
	if !admin.IsAdmin() {
		return nil, apperror.ErrForbidden
	}

	listing, err := uc.listingRepo.FindByID(ctx, listingID)
	if err != nil {
		return nil, err
	}

	if err := listing.Reject(reason, time.Now()); err != nil {
		return nil, err
	}

	if err := uc.listingRepo.Update(ctx, listing); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось отклонить объявление")
	}

	logger.Moderation(admin.UserID, "listing", listing.ID, "reject").
		WithField("reason", *listing.RejectionReason).
		Info("listing rejected")
	metrics.RecordModeration("listing", "reject")
	notify(ctx, uc.notifier, listing.OwnerID, event.ListingRejected, payload{
		"listing_id": listing.ID,
		"title":      listing.Title,
		"reason":     *listing.RejectionReason,
	})

	return listing, nil
}
