package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/classifieds-backend/internal/interface/http/dto"
	"github.com/ignatzorin/classifieds-backend/internal/interface/http/response"
	"github.com/ignatzorin/classifieds-backend/internal/usecase/favorite"
)

type FavoriteHandler struct {
	saveUC   *favorite.SaveListingUseCase
	unsaveUC *favorite.UnsaveListingUseCase
	isSaved  *favorite.IsSavedUseCase
	listUC   *favorite.ListSavedUseCase
}

func NewFavoriteHandler(
	saveUC *favorite.SaveListingUseCase,
	unsaveUC *favorite.UnsaveListingUseCase,
	isSaved *favorite.IsSavedUseCase,
	listUC *favorite.ListSavedUseCase,
) *FavoriteHandler {
	return &FavoriteHandler{saveUC: saveUC, unsaveUC: unsaveUC, isSaved: isSaved, listUC: listUC}
}

// Save обрабатывает POST /favorites/:listingId. Повторный вызов не ошибка.
func (h *FavoriteHandler) Save(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	listingID, ok := uuidParam(c, "listingId", "некорректный ID объявления")
	if !ok {
		return
	}

	if err := h.saveUC.Execute(c.Request.Context(), actor.UserID, listingID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.SavedStatusResponse{Saved: true})
}

func (h *FavoriteHandler) Unsave(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	listingID, ok := uuidParam(c, "listingId", "некорректный ID объявления")
	if !ok {
		return
	}

	if err := h.unsaveUC.Execute(c.Request.Context(), actor.UserID, listingID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.SavedStatusResponse{Saved: false})
}

func (h *FavoriteHandler) IsSaved(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	listingID, ok := uuidParam(c, "listingId", "некорректный ID объявления")
	if !ok {
		return
	}

	saved, err := h.isSaved.Execute(c.Request.Context(), actor.UserID, listingID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.SavedStatusResponse{Saved: saved})
}

func (h *FavoriteHandler) List(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	items, err := h.listUC.Execute(c.Request.Context(), actor.UserID, parseIntQuery(c, "limit", 20), parseIntQuery(c, "offset", 0))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToSavedListingResponses(items))
}
