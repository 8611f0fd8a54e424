package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/classifieds-backend/internal/interface/http/dto"
	"github.com/ignatzorin/classifieds-backend/internal/interface/http/response"
	"github.com/ignatzorin/classifieds-backend/internal/usecase/ban"
	"github.com/ignatzorin/classifieds-backend/internal/usecase/user"
)

type UserHandler struct {
	profileUC   *user.GetProfileUseCase
	banStatusUC *ban.BanStatusUseCase
	banUC       *ban.BanUserUseCase
	unbanUC     *ban.UnbanUserUseCase
	verifiedUC  *ban.SetVerifiedUseCase
}

func NewUserHandler(
	profileUC *user.GetProfileUseCase,
	banStatusUC *ban.BanStatusUseCase,
	banUC *ban.BanUserUseCase,
	unbanUC *ban.UnbanUserUseCase,
	verifiedUC *ban.SetVerifiedUseCase,
) *UserHandler {
	return &UserHandler{
		profileUC:   profileUC,
		banStatusUC: banStatusUC,
		banUC:       banUC,
		unbanUC:     unbanUC,
		verifiedUC:  verifiedUC,
	}
}

// GetProfile обрабатывает GET /users/:id.
func (h *UserHandler) GetProfile(c *gin.Context) {
	viewer, ok := currentActor(c)
	if !ok {
		return
	}
	userID, ok := uuidParam(c, "id", "некорректный ID пользователя")
	if !ok {
		return
	}

	profile, err := h.profileUC.Execute(c.Request.Context(), viewer, userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, profile)
}

// MyBanStatus обрабатывает GET /me/ban.
func (h *UserHandler) MyBanStatus(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	status, err := h.banStatusUC.GetBanStatus(c.Request.Context(), actor.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, status)
}

func (h *UserHandler) BanUser(c *gin.Context) {
	admin, ok := currentActor(c)
	if !ok {
		return
	}
	userID, ok := uuidParam(c, "id", "некорректный ID пользователя")
	if !ok {
		return
	}

	var req dto.BanUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "укажите причину и корректный срок блокировки")
		return
	}

	banned, err := h.banUC.Execute(c.Request.Context(), userID, admin, req.Reason, req.DurationDays)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToAdminUserResponse(banned))
}

func (h *UserHandler) UnbanUser(c *gin.Context) {
	admin, ok := currentActor(c)
	if !ok {
		return
	}
	userID, ok := uuidParam(c, "id", "некорректный ID пользователя")
	if !ok {
		return
	}

	unbanned, err := h.unbanUC.Execute(c.Request.Context(), userID, admin)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToAdminUserResponse(unbanned))
}

func (h *UserHandler) SetVerified(c *gin.Context) {
	admin, ok := currentActor(c)
	if !ok {
		return
	}
	userID, ok := uuidParam(c, "id", "некорректный ID пользователя")
	if !ok {
		return
	}

	var req dto.SetVerifiedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "поле is_verified обязательно")
		return
	}

	updated, err := h.verifiedUC.Execute(c.Request.Context(), userID, admin, *req.IsVerified)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToAdminUserResponse(updated))
}
