package listing

import (
	"context"
	"io"

	"github.com/google/uuid"

	"github.com/ignatzorin/classifieds-backend/internal/domain/entity"
	"github.com/ignatzorin/classifieds-backend/internal/domain/event"
	"github.com/ignatzorin/classifieds-backend/internal/domain/repository"
	"github.com/ignatzorin/classifieds-backend/internal/logger"
	"github.com/ignatzorin/classifieds-backend/internal/metrics"
	"github.com/ignatzorin/classifieds-backend/internal/pkg/apperror"
)

// ImageStore это файловое хранилище изображений объявлений.
type ImageStore interface {
	Save(ctx context.Context, listingID uuid.UUID, originalName string, r io.Reader) (string, int64, error)
	Delete(ctx context.Context, relativePath string) error
}

// ViewCache это кэш недавних просмотров, который чистится при удалении объявления.
type ViewCache interface {
	Forget(ctx context.Context, listingID uuid.UUID) error
}

type DeleteListingUseCase struct {
	listingRepo repository.ListingRepository
	images      ImageStore
	notifier    event.Notifier
	viewCache   ViewCache
}

func NewDeleteListingUseCase(listingRepo repository.ListingRepository, images ImageStore, notifier event.Notifier) *DeleteListingUseCase {
	return &DeleteListingUseCase{listingRepo: listingRepo, images: images, notifier: notifier}
}

func (uc *DeleteListingUseCase) SetViewCache(cache ViewCache) {
	uc.viewCache = cache
}

// Execute удаляет объявление вместе с изображениями, бейджами и закладками.
// Файлы убираются только после успешного коммита; ошибки удаления файлов не откатывают операцию.
func (uc *DeleteListingUseCase) Execute(ctx context.Context, listingID uuid.UUID, admin entity.Actor) error {
	if !admin.IsAdmin() {
		return apperror.ErrForbidden
	}

	listing, err := uc.listingRepo.FindByID(ctx, listingID)
	if err != nil {
		return err
	}

	removed, err := uc.listingRepo.DeleteCascade(ctx, listing.ID)
	if err != nil {
		// Объявление могли удалить параллельно между чтением и блокировкой.
		if apperror.IsNotFound(err) {
			return err
		}
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось удалить объявление")
	}

	if uc.images != nil {
		for _, img := range removed {
			if img.FilePath == "" {
				continue
			}
			if err := uc.images.Delete(ctx, img.FilePath); err != nil {
				logger.Log.WithError(err).WithField("path", img.FilePath).Warn("orphan listing image left in storage")
			}
		}
	}

	if uc.viewCache != nil {
		if err := uc.viewCache.Forget(ctx, listing.ID); err != nil {
			logger.Log.WithError(err).WithField("listing_id", listing.ID).Warn("failed to drop cached views")
		}
	}

	logger.Moderation(admin.UserID, "listing", listing.ID, "delete").
		WithField("images", len(removed)).
		Info("listing deleted")
	metrics.RecordModeration("listing", "delete")
	notify(ctx, uc.notifier, listing.OwnerID, event.ListingDeleted, payload{"listing_id": listing.ID, "title": listing.Title})

	return nil
}
