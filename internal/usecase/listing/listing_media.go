package listing

import (
	"context"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/classifieds-backend/internal/domain/entity"
	"github.com/ignatzorin/classifieds-backend/internal/domain/repository"
	"github.com/ignatzorin/classifieds-backend/internal/logger"
	"github.com/ignatzorin/classifieds-backend/internal/metrics"
	"github.com/ignatzorin/classifieds-backend/internal/pkg/apperror"
)

// MaxImagesPerListing ограничивает количество фото у одного объявления.
const MaxImagesPerListing = 10

type AddListingImageUseCase struct {
	listingRepo repository.ListingRepository
	images      ImageStore
	baseURL     string
}

func NewAddListingImageUseCase(listingRepo repository.ListingRepository, images ImageStore, baseURL string) *AddListingImageUseCase {
	return &AddListingImageUseCase{
		listingRepo: listingRepo,
		images:      images,
		baseURL:     strings.TrimRight(baseURL, "/"),
	}
}

// Execute сохраняет файл и добавляет изображение в конец списка.
// Тип содержимого проверяется до вызова, в обработчике.
func (uc *AddListingImageUseCase) Execute(ctx context.Context, listingID uuid.UUID, actor entity.Actor, originalName string, r io.Reader) (*entity.ListingImage, error) {
	listing, err := uc.listingRepo.FindByIDWithDetails(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if !listing.CanBeEditedBy(actor) {
		return nil, apperror.Permission("добавлять фото может только владелец объявления")
	}
	if len(listing.Images) >= MaxImagesPerListing {
		return nil, apperror.Validation("достигнут лимит фотографий объявления")
	}

	relPath, _, err := uc.images.Save(ctx, listing.ID, originalName, r)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeBadRequest, "не удалось сохранить файл")
	}

	image := &entity.ListingImage{
		ID:           uuid.New(),
		ListingID:    listing.ID,
		URL:          uc.baseURL + "/" + filepath.ToSlash(relPath),
		FilePath:     relPath,
		DisplayOrder: len(listing.Images),
		CreatedAt:    time.Now(),
	}

	if err := uc.listingRepo.AddImage(ctx, image); err != nil {
		if delErr := uc.images.Delete(ctx, relPath); delErr != nil {
			logger.Log.WithError(delErr).WithField("path", relPath).Warn("failed to clean up image after db error")
		}
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось сохранить изображение")
	}

	return image, nil
}

type ManageBadgeUseCase struct {
	listingRepo repository.ListingRepository
}

func NewManageBadgeUseCase(listingRepo repository.ListingRepository) *ManageBadgeUseCase {
	return &ManageBadgeUseCase{listingRepo: listingRepo}
}

func (uc *ManageBadgeUseCase) Attach(ctx context.Context, listingID, badgeID uuid.UUID, admin entity.Actor) error {
	if err := uc.check(ctx, listingID, badgeID, admin); err != nil {
		return err
	}
	if err := uc.listingRepo.AttachBadge(ctx, listingID, badgeID); err != nil {
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось назначить бейдж")
	}
	logger.Moderation(admin.UserID, "listing", listingID, "badge_attach").WithField("badge_id", badgeID).Info("badge attached")
	metrics.RecordModeration("listing", "badge_attach")
	return nil
}

func (uc *ManageBadgeUseCase) Detach(ctx context.Context, listingID, badgeID uuid.UUID, admin entity.Actor) error {
	if err := uc.check(ctx, listingID, badgeID, admin); err != nil {
		return err
	}
	if err := uc.listingRepo.DetachBadge(ctx, listingID, badgeID); err != nil {
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось снять бейдж")
	}
	logger.Moderation(admin.UserID, "listing", listingID, "badge_detach").WithField("badge_id", badgeID).Info("badge detached")
	metrics.RecordModeration("listing", "badge_detach")
	return nil
}

func (uc *ManageBadgeUseCase) check(ctx context.Context, listingID, badgeID uuid.UUID, admin entity.Actor) error {
	if !admin.IsAdmin() {
		return apperror.ErrForbidden
	}
	if _, err := uc.listingRepo.FindByID(ctx, listingID); err != nil {
		return err
	}
	ok, err := uc.listingRepo.BadgeExists(ctx, badgeID)
	if err != nil {
		return err
	}
	if !ok {
		return apperror.ErrBadgeNotFound
	}
	return nil
}
