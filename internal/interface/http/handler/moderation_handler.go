package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/classifieds-backend/internal/interface/http/dto"
	"github.com/ignatzorin/classifieds-backend/internal/interface/http/response"
	"github.com/ignatzorin/classifieds-backend/internal/usecase/listing"
)

// ModerationHandler обслуживает /admin/listings.
type ModerationHandler struct {
	queueUC   *listing.ListModerationQueueUseCase
	approveUC *listing.ApproveListingUseCase
	rejectUC  *listing.RejectListingUseCase
	deleteUC  *listing.DeleteListingUseCase
	badgesUC  *listing.ManageBadgeUseCase
}

func NewModerationHandler(
	queueUC *listing.ListModerationQueueUseCase,
	approveUC *listing.ApproveListingUseCase,
	rejectUC *listing.RejectListingUseCase,
	deleteUC *listing.DeleteListingUseCase,
	badgesUC *listing.ManageBadgeUseCase,
) *ModerationHandler {
	return &ModerationHandler{
		queueUC:   queueUC,
		approveUC: approveUC,
		rejectUC:  rejectUC,
		deleteUC:  deleteUC,
		badgesUC:  badgesUC,
	}
}

// ListQueue обрабатывает GET /admin/listings?status=pending&search=...
func (h *ModerationHandler) ListQueue(c *gin.Context) {
	admin, ok := currentActor(c)
	if !ok {
		return
	}

	input := listing.ListListingsInput{
		Status: c.Query("status"),
		City:   c.Query("city"),
		State:  c.Query("state"),
		Search: c.Query("search"),
		Limit:  parseIntQuery(c, "limit", 20),
		Offset: parseIntQuery(c, "offset", 0),
	}

	listings, total, err := h.queueUC.Execute(c.Request.Context(), admin, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	limit, offset := input.Page()
	response.Paginated(c, dto.ToListingResponses(listings), total, limit, offset)
}

func (h *ModerationHandler) Approve(c *gin.Context) {
	admin, ok := currentActor(c)
	if !ok {
		return
	}
	listingID, ok := uuidParam(c, "id", "некорректный ID объявления")
	if !ok {
		return
	}

	approved, err := h.approveUC.Execute(c.Request.Context(), listingID, admin)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToListingResponse(approved))
}

func (h *ModerationHandler) Reject(c *gin.Context) {
	admin, ok := currentActor(c)
	if !ok {
		return
	}
	listingID, ok := uuidParam(c, "id", "некорректный ID объявления")
	if !ok {
		return
	}

	var req dto.RejectListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "укажите причину отклонения")
		return
	}

	rejected, err := h.rejectUC.Execute(c.Request.Context(), listingID, admin, req.Reason)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToListingResponse(rejected))
}

func (h *ModerationHandler) Delete(c *gin.Context) {
	admin, ok := currentActor(c)
	if !ok {
		return
	}
	listingID, ok := uuidParam(c, "id", "некорректный ID объявления")
	if !ok {
		return
	}

	if err := h.deleteUC.Execute(c.Request.Context(), listingID, admin); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

func (h *ModerationHandler) AttachBadge(c *gin.Context) {
	admin, ok := currentActor(c)
	if !ok {
		return
	}
	listingID, ok := uuidParam(c, "id", "некорректный ID объявления")
	if !ok {
		return
	}
	badgeID, ok := uuidParam(c, "badgeId", "некорректный ID бейджа")
	if !ok {
		return
	}

	if err := h.badgesUC.Attach(c.Request.Context(), listingID, badgeID, admin); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

func (h *ModerationHandler) DetachBadge(c *gin.Context) {
	admin, ok := currentActor(c)
	if !ok {
		return
	}
	listingID, ok := uuidParam(c, "id", "некорректный ID объявления")
	if !ok {
		return
	}
	badgeID, ok := uuidParam(c, "badgeId", "некорректный ID бейджа")
	if !ok {
		return
	}

	if err := h.badgesUC.Detach(c.Request.Context(), listingID, badgeID, admin); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
