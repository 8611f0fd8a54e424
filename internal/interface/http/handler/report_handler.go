package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/classifieds-backend/internal/interface/http/dto"
	"github.com/ignatzorin/classifieds-backend/internal/interface/http/response"
	"github.com/ignatzorin/classifieds-backend/internal/usecase/report"
)

type ReportHandler struct {
	fileUC    *report.FileReportUseCase
	getMineUC *report.GetMyReportUseCase
	cancelUC  *report.CancelReportUseCase
	listUC    *report.ListReportsUseCase
	statsUC   *report.ReportStatsUseCase
	resolveUC *report.ResolveReportUseCase
	deleteUC  *report.DeleteReportUseCase
}

func NewReportHandler(
	fileUC *report.FileReportUseCase,
	getMineUC *report.GetMyReportUseCase,
	cancelUC *report.CancelReportUseCase,
	listUC *report.ListReportsUseCase,
	statsUC *report.ReportStatsUseCase,
	resolveUC *report.ResolveReportUseCase,
	deleteUC *report.DeleteReportUseCase,
) *ReportHandler {
	return &ReportHandler{
		fileUC:    fileUC,
		getMineUC: getMineUC,
		cancelUC:  cancelUC,
		listUC:    listUC,
		statsUC:   statsUC,
		resolveUC: resolveUC,
		deleteUC:  deleteUC,
	}
}

// CreateReport обрабатывает POST /reports.
func (h *ReportHandler) CreateReport(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	var req dto.CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "некорректные данные запроса")
		return
	}

	userID, err := dto.ParseOptionalUUID(req.ReportedUserID)
	if err != nil {
		response.BadRequest(c, "некорректный ID пользователя")
		return
	}
	listingID, err := dto.ParseOptionalUUID(req.ReportedListingID)
	if err != nil {
		response.BadRequest(c, "некорректный ID объявления")
		return
	}

	created, err := h.fileUC.Execute(c.Request.Context(), report.FileReportInput{
		ReporterID:        actor.UserID,
		ReportType:        req.ReportType,
		ReportedUserID:    userID,
		ReportedListingID: listingID,
		Reason:            req.Reason,
		Description:       req.Description,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.ToReportResponse(created))
}

// GetMyListingReport обрабатывает GET /reports/listing/:listingId.
// Если жалобы нет, data равна null.
func (h *ReportHandler) GetMyListingReport(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	listingID, ok := uuidParam(c, "listingId", "некорректный ID объявления")
	if !ok {
		return
	}

	found, err := h.getMineUC.Execute(c.Request.Context(), actor.UserID, listingID)
	if err != nil {
		response.Error(c, err)
		return
	}
	if found == nil {
		response.Success(c, nil)
		return
	}

	response.Success(c, dto.ToMyReportResponse(found))
}

// CancelReport обрабатывает DELETE /reports/:id (автор, pending, 24 часа).
func (h *ReportHandler) CancelReport(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	reportID, ok := uuidParam(c, "id", "некорректный ID жалобы")
	if !ok {
		return
	}

	if err := h.cancelUC.Execute(c.Request.Context(), reportID, actor); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// ListReports обрабатывает GET /admin/reports?status=pending|all.
func (h *ReportHandler) ListReports(c *gin.Context) {
	admin, ok := currentActor(c)
	if !ok {
		return
	}

	limit := parseIntQuery(c, "limit", 50)
	offset := parseIntQuery(c, "offset", 0)

	reports, total, err := h.listUC.Execute(c.Request.Context(), admin, c.Query("status"), limit, offset)
	if err != nil {
		response.Error(c, err)
		return
	}

	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	response.Paginated(c, dto.ToReportResponses(reports), total, limit, offset)
}

func (h *ReportHandler) Stats(c *gin.Context) {
	admin, ok := currentActor(c)
	if !ok {
		return
	}

	stats, err := h.statsUC.Execute(c.Request.Context(), admin)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, stats)
}

// ResolveReport обрабатывает PUT /admin/reports/:id.
func (h *ReportHandler) ResolveReport(c *gin.Context) {
	admin, ok := currentActor(c)
	if !ok {
		return
	}
	reportID, ok := uuidParam(c, "id", "некорректный ID жалобы")
	if !ok {
		return
	}

	var req dto.ResolveReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "укажите статус жалобы")
		return
	}

	resolved, err := h.resolveUC.Execute(c.Request.Context(), reportID, admin, req.Status, req.AdminNotes)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToReportResponse(resolved))
}

func (h *ReportHandler) DeleteReport(c *gin.Context) {
	admin, ok := currentActor(c)
	if !ok {
		return
	}
	reportID, ok := uuidParam(c, "id", "некорректный ID жалобы")
	if !ok {
		return
	}

	if err := h.deleteUC.Execute(c.Request.Context(), reportID, admin); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
