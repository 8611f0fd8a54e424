package handler

import (
	"io"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ignatzorin/classifieds-backend/internal/interface/http/dto"
	"github.com/ignatzorin/classifieds-backend/internal/interface/http/response"
	"github.com/ignatzorin/classifieds-backend/internal/usecase/listing"
	"github.com/ignatzorin/classifieds-backend/internal/usecase/user"
)

type ListingHandler struct {
	submitUC    *listing.SubmitListingUseCase
	editUC      *listing.EditListingUseCase
	setActiveUC *listing.SetListingActiveUseCase
	getUC       *listing.GetListingUseCase
	listUC      *listing.ListPublicListingsUseCase
	recordView  *listing.RecordViewUseCase
	addImageUC  *listing.AddListingImageUseCase
	contactUC   *user.GetSellerContactUseCase
	maxUpload   int64
}

func NewListingHandler(
	submitUC *listing.SubmitListingUseCase,
	editUC *listing.EditListingUseCase,
	setActiveUC *listing.SetListingActiveUseCase,
	getUC *listing.GetListingUseCase,
	listUC *listing.ListPublicListingsUseCase,
	recordView *listing.RecordViewUseCase,
	addImageUC *listing.AddListingImageUseCase,
	contactUC *user.GetSellerContactUseCase,
	maxUploadBytes int64,
) *ListingHandler {
	return &ListingHandler{
		submitUC:    submitUC,
		editUC:      editUC,
		setActiveUC: setActiveUC,
		getUC:       getUC,
		listUC:      listUC,
		recordView:  recordView,
		addImageUC:  addImageUC,
		contactUC:   contactUC,
		maxUpload:   maxUploadBytes,
	}
}

// ListListings обрабатывает GET /listings.
func (h *ListingHandler) ListListings(c *gin.Context) {
	input := listing.ListListingsInput{
		City:   c.Query("city"),
		State:  c.Query("state"),
		Search: c.Query("search"),
		Limit:  parseIntQuery(c, "limit", 20),
		Offset: parseIntQuery(c, "offset", 0),
	}
	if raw := c.Query("category_id"); raw != "" {
		categoryID, err := uuid.Parse(raw)
		if err != nil {
			response.BadRequest(c, "некорректный ID категории")
			return
		}
		input.CategoryID = &categoryID
	}

	listings, total, err := h.listUC.Execute(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	limit, offset := input.Page()
	response.Paginated(c, dto.ToListingResponses(listings), total, limit, offset)
}

// GetListing обрабатывает GET /listings/:id. Авторизация необязательна.
func (h *ListingHandler) GetListing(c *gin.Context) {
	listingID, ok := uuidParam(c, "id", "некорректный ID объявления")
	if !ok {
		return
	}
	viewer, _ := optionalActor(c)

	result, err := h.getUC.Execute(c.Request.Context(), listingID, viewer)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToListingResponse(result))
}

// RecordView обрабатывает POST /listings/:id/views.
func (h *ListingHandler) RecordView(c *gin.Context) {
	listingID, ok := uuidParam(c, "id", "некорректный ID объявления")
	if !ok {
		return
	}

	input := listing.RecordViewInput{
		ListingID: listingID,
		ViewerIP:  c.ClientIP(),
	}
	if viewer, ok := optionalActor(c); ok {
		input.ViewerUserID = &viewer.UserID
	}

	counted, err := h.recordView.Execute(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ViewResponse{Counted: counted})
}

func (h *ListingHandler) CreateListing(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	var req dto.CreateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "некорректные данные запроса")
		return
	}

	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		response.BadRequest(c, "некорректный ID категории")
		return
	}

	created, err := h.submitUC.Execute(c.Request.Context(), listing.SubmitListingInput{
		OwnerID:     actor.UserID,
		CategoryID:  categoryID,
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		City:        req.City,
		State:       req.State,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.ToListingResponse(created))
}

// UpdateListing обслуживает и владельца, и администратора: права
// проверяет use case.
func (h *ListingHandler) UpdateListing(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	listingID, ok := uuidParam(c, "id", "некорректный ID объявления")
	if !ok {
		return
	}

	var req dto.UpdateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "некорректные данные запроса")
		return
	}
	categoryID, err := dto.ParseOptionalUUID(req.CategoryID)
	if err != nil {
		response.BadRequest(c, "некорректный ID категории")
		return
	}

	updated, err := h.editUC.Execute(c.Request.Context(), listingID, actor, listing.EditListingInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		CategoryID:  categoryID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToListingResponse(updated))
}

func (h *ListingHandler) SetActive(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	listingID, ok := uuidParam(c, "id", "некорректный ID объявления")
	if !ok {
		return
	}

	var req dto.SetActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "поле is_active обязательно")
		return
	}

	updated, err := h.setActiveUC.Execute(c.Request.Context(), listingID, actor, *req.IsActive)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToListingResponse(updated))
}

// UploadImage обрабатывает POST /listings/:id/images (multipart, поле file).
func (h *ListingHandler) UploadImage(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	listingID, ok := uuidParam(c, "id", "некорректный ID объявления")
	if !ok {
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "поле file обязательно")
		return
	}
	if file.Size == 0 {
		response.BadRequest(c, "файл не может быть пустым")
		return
	}
	if h.maxUpload > 0 && file.Size > h.maxUpload {
		response.BadRequest(c, "файл слишком большой")
		return
	}

	src, err := file.Open()
	if err != nil {
		response.Error(c, err)
		return
	}
	defer src.Close()

	if msg, ok := checkImage(file.Filename, src); !ok {
		response.BadRequest(c, msg)
		return
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		response.Error(c, err)
		return
	}

	image, err := h.addImageUC.Execute(c.Request.Context(), listingID, actor, file.Filename, src)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.ToListingImageDTO(image))
}

// GetContact обрабатывает GET /listings/:id/contact. Забаненным отказано.
func (h *ListingHandler) GetContact(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	listingID, ok := uuidParam(c, "id", "некорректный ID объявления")
	if !ok {
		return
	}

	contact, err := h.contactUC.Execute(c.Request.Context(), actor, listingID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, contact)
}
