package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ignatzorin/classifieds-backend/internal/domain/entity"
)

type CreateListingRequest struct {
	CategoryID  string          `json:"category_id" binding:"required,uuid"`
	Title       string          `json:"title" binding:"required,max=200"`
	Description string          `json:"description" binding:"max=5000"`
	Price       decimal.Decimal `json:"price"`
	City        string          `json:"city" binding:"max=100"`
	State       string          `json:"state" binding:"max=2"`
}

// UpdateListingRequest: nil поля не меняются.
type UpdateListingRequest struct {
	Title       *string          `json:"title" binding:"omitempty,max=200"`
	Description *string          `json:"description" binding:"omitempty,max=5000"`
	Price       *decimal.Decimal `json:"price"`
	CategoryID  *string          `json:"category_id" binding:"omitempty,uuid"`
}

type SetActiveRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

type RejectListingRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type ListingImageDTO struct {
	ID           uuid.UUID `json:"id"`
	URL          string    `json:"url"`
	DisplayOrder int       `json:"display_order"`
}

type BadgeDTO struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Color string    `json:"color"`
}

type ListingResponse struct {
	ID              uuid.UUID         `json:"id"`
	OwnerID         uuid.UUID         `json:"owner_id"`
	CategoryID      uuid.UUID         `json:"category_id"`
	Title           string            `json:"title"`
	Description     string            `json:"description"`
	Price           string            `json:"price"`
	City            string            `json:"city"`
	State           string            `json:"state"`
	Status          string            `json:"status"`
	IsActive        bool              `json:"is_active"`
	RejectionReason *string           `json:"rejection_reason"`
	ViewCount       int64             `json:"view_count"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
	Images          []ListingImageDTO `json:"images"`
	Badges          []BadgeDTO        `json:"badges"`
}

func ToListingResponse(listing *entity.Listing) ListingResponse {
	resp := ListingResponse{
		ID:              listing.ID,
		OwnerID:         listing.OwnerID,
		CategoryID:      listing.CategoryID,
		Title:           listing.Title,
		Description:     listing.Description,
		Price:           listing.Price.StringFixed(2),
		City:            listing.City,
		State:           listing.State,
		Status:          string(listing.Status),
		IsActive:        listing.IsActive,
		RejectionReason: listing.RejectionReason,
		ViewCount:       listing.ViewCount,
		CreatedAt:       listing.CreatedAt,
		UpdatedAt:       listing.UpdatedAt,
		Images:          make([]ListingImageDTO, 0, len(listing.Images)),
		Badges:          make([]BadgeDTO, 0, len(listing.Badges)),
	}

	for _, img := range listing.Images {
		resp.Images = append(resp.Images, ToListingImageDTO(&img))
	}
	for _, b := range listing.Badges {
		resp.Badges = append(resp.Badges, BadgeDTO{ID: b.ID, Name: b.Name, Color: b.Color})
	}

	return resp
}

func ToListingImageDTO(img *entity.ListingImage) ListingImageDTO {
	return ListingImageDTO{
		ID:           img.ID,
		URL:          img.URL,
		DisplayOrder: img.DisplayOrder,
	}
}

func ToListingResponses(listings []*entity.Listing) []ListingResponse {
	resp := make([]ListingResponse, 0, len(listings))
	for _, l := range listings {
		resp = append(resp, ToListingResponse(l))
	}
	return resp
}

type ViewResponse struct {
	Counted bool `json:"counted"`
}
