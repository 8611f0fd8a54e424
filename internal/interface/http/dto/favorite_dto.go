package dto

import (
	"time"

	"github.com/ignatzorin/classifieds-backend/internal/usecase/favorite"
)

type SavedStatusResponse struct {
	Saved bool `json:"saved"`
}

type SavedListingResponse struct {
	Listing ListingResponse `json:"listing"`
	SavedAt time.Time       `json:"saved_at"`
}

func ToSavedListingResponses(items []favorite.SavedListing) []SavedListingResponse {
	resp := make([]SavedListingResponse, 0, len(items))
	for _, item := range items {
		resp = append(resp, SavedListingResponse{
			Listing: ToListingResponse(item.Listing),
			SavedAt: item.SavedAt,
		})
	}
	return resp
}
