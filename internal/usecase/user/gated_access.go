package user

import (
	"context"

	"github.com/google/uuid"

	"github.com/ignatzorin/classifieds-backend/internal/domain/entity"
	"github.com/ignatzorin/classifieds-backend/internal/domain/repository"
	"github.com/ignatzorin/classifieds-backend/internal/pkg/apperror"
)

// BanGuard это проверка, которую проходят все действия, закрытые для заблокированных.
type BanGuard interface {
	EnsureNotBanned(ctx context.Context, userID uuid.UUID) error
}

type SellerContact struct {
	SellerID   uuid.UUID `json:"seller_id"`
	Name       string    `json:"name"`
	Email      *string   `json:"email,omitempty"`
	Phone      *string   `json:"phone,omitempty"`
	IsVerified bool      `json:"is_verified"`
}

type GetSellerContactUseCase struct {
	listingRepo repository.ListingRepository
	userRepo    repository.UserRepository
	guard       BanGuard
}

func NewGetSellerContactUseCase(listingRepo repository.ListingRepository, userRepo repository.UserRepository, guard BanGuard) *GetSellerContactUseCase {
	return &GetSellerContactUseCase{listingRepo: listingRepo, userRepo: userRepo, guard: guard}
}

// Execute отдаёт контакты продавца по опубликованному объявлению.
func (uc *GetSellerContactUseCase) Execute(ctx context.Context, viewer entity.Actor, listingID uuid.UUID) (*SellerContact, error) {
	if err := uc.guard.EnsureNotBanned(ctx, viewer.UserID); err != nil {
		return nil, err
	}

	listing, err := uc.listingRepo.FindByID(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if !listing.IsPubliclyVisible() && !listing.CanBeEditedBy(viewer) {
		return nil, apperror.ErrListingNotFound
	}

	seller, err := uc.userRepo.FindByID(ctx, listing.OwnerID)
	if err != nil {
		return nil, err
	}

	return &SellerContact{
		SellerID:   seller.ID,
		Name:       seller.Name,
		Email:      seller.Email,
		Phone:      seller.Phone,
		IsVerified: seller.IsVerified,
	}, nil
}

type PublicProfile struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	AvatarURL  *string   `json:"avatar_url,omitempty"`
	IsVerified bool      `json:"is_verified"`
}

type GetProfileUseCase struct {
	userRepo repository.UserRepository
	guard    BanGuard
}

func NewGetProfileUseCase(userRepo repository.UserRepository, guard BanGuard) *GetProfileUseCase {
	return &GetProfileUseCase{userRepo: userRepo, guard: guard}
}

func (uc *GetProfileUseCase) Execute(ctx context.Context, viewer entity.Actor, userID uuid.UUID) (*PublicProfile, error) {
	if viewer.UserID != userID {
		if err := uc.guard.EnsureNotBanned(ctx, viewer.UserID); err != nil {
			return nil, err
		}
	}

	u, err := uc.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &PublicProfile{
		ID:         u.ID,
		Name:       u.Name,
		AvatarURL:  u.AvatarURL,
		IsVerified: u.IsVerified,
	}, nil
}
