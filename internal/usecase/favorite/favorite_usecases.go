package favorite

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/classifieds-backend/internal/domain/entity"
	"github.com/ignatzorin/classifieds-backend/internal/domain/repository"
	"github.com/ignatzorin/classifieds-backend/internal/pkg/apperror"
)

type SaveListingUseCase struct {
	favoriteRepo repository.FavoriteRepository
	listingRepo  repository.ListingRepository
}

func NewSaveListingUseCase(favoriteRepo repository.FavoriteRepository, listingRepo repository.ListingRepository) *SaveListingUseCase {
	return &SaveListingUseCase{favoriteRepo: favoriteRepo, listingRepo: listingRepo}
}

// Execute добавляет закладку. Повторное сохранение не ошибка.
func (uc *SaveListingUseCase) Execute(ctx context.Context, userID, listingID uuid.UUID) error {
	listing, err := uc.listingRepo.FindByID(ctx, listingID)
	if err != nil {
		return err
	}
	if !listing.IsPubliclyVisible() && !listing.IsOwnedBy(userID) {
		return apperror.ErrListingNotFound
	}

	fav := &entity.Favorite{UserID: userID, ListingID: listingID, CreatedAt: time.Now()}
	if err := uc.favoriteRepo.Add(ctx, fav); err != nil {
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось сохранить объявление")
	}
	return nil
}

type UnsaveListingUseCase struct {
	favoriteRepo repository.FavoriteRepository
}

func NewUnsaveListingUseCase(favoriteRepo repository.FavoriteRepository) *UnsaveListingUseCase {
	return &UnsaveListingUseCase{favoriteRepo: favoriteRepo}
}

// Execute удаляет закладку, если она есть.
func (uc *UnsaveListingUseCase) Execute(ctx context.Context, userID, listingID uuid.UUID) error {
	if err := uc.favoriteRepo.Remove(ctx, userID, listingID); err != nil {
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось удалить закладку")
	}
	return nil
}

type IsSavedUseCase struct {
	favoriteRepo repository.FavoriteRepository
}

func NewIsSavedUseCase(favoriteRepo repository.FavoriteRepository) *IsSavedUseCase {
	return &IsSavedUseCase{favoriteRepo: favoriteRepo}
}

func (uc *IsSavedUseCase) Execute(ctx context.Context, userID, listingID uuid.UUID) (bool, error) {
	return uc.favoriteRepo.Exists(ctx, userID, listingID)
}

type SavedListing struct {
	Listing *entity.Listing
	SavedAt time.Time
}

type ListSavedUseCase struct {
	favoriteRepo repository.FavoriteRepository
	listingRepo  repository.ListingRepository
}

func NewListSavedUseCase(favoriteRepo repository.FavoriteRepository, listingRepo repository.ListingRepository) *ListSavedUseCase {
	return &ListSavedUseCase{favoriteRepo: favoriteRepo, listingRepo: listingRepo}
}

// Execute возвращает сохранённые объявления в порядке закладок.
// Объявления, которые скрыты или уже удалены, пропускаются.
func (uc *ListSavedUseCase) Execute(ctx context.Context, userID uuid.UUID, limit, offset int) ([]SavedListing, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	favs, err := uc.favoriteRepo.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	if len(favs) == 0 {
		return []SavedListing{}, nil
	}

	ids := make([]uuid.UUID, 0, len(favs))
	for _, f := range favs {
		ids = append(ids, f.ListingID)
	}
	listings, err := uc.listingRepo.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*entity.Listing, len(listings))
	for _, l := range listings {
		byID[l.ID] = l
	}

	result := make([]SavedListing, 0, len(favs))
	for _, f := range favs {
		l, ok := byID[f.ListingID]
		if !ok {
			continue
		}
		if !l.IsPubliclyVisible() && !l.IsOwnedBy(userID) {
			continue
		}
		result = append(result, SavedListing{Listing: l, SavedAt: f.CreatedAt})
	}
	return result, nil
}
