package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/classifieds-backend/internal/domain/entity"
	"github.com/ignatzorin/classifieds-backend/internal/domain/valueobject"
	"github.com/ignatzorin/classifieds-backend/internal/interface/http/middleware"
	"github.com/ignatzorin/classifieds-backend/internal/interface/http/response"
	"github.com/ignatzorin/classifieds-backend/internal/pkg/apperror"
	"github.com/ignatzorin/classifieds-backend/internal/usecase/listing"
	"github.com/ignatzorin/classifieds-backend/internal/usecase/report"
)

func newEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

// as подставляет пользователя в контекст так же, как middleware.Auth.
func as(userID uuid.UUID, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextUserIDKey, userID)
		c.Set(middleware.ContextRoleKey, role)
		c.Next()
	}
}

func doJSON(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotNil(t, body.Error)
	return body.Error.Code
}

func seedListing(repo *fakeListingRepository, owner uuid.UUID, status valueobject.ListingStatus) *entity.Listing {
	l, _ := entity.NewListing(entity.ListingDraft{
		OwnerID:    owner,
		CategoryID: uuid.New(),
		Title:      "Велосипед",
		Price:      decimal.NewFromInt(1500),
	}, time.Now())
	l.Status = status
	if status == valueobject.ListingStatusRejected {
		reason := "фото не соответствует"
		l.RejectionReason = &reason
	}
	repo.put(l)
	return l
}

func TestListingHandler_CreateListing_Unauthorized(t *testing.T) {
	r := newEngine()
	h := &ListingHandler{}
	r.POST("/listings", h.CreateListing)

	w := doJSON(r, http.MethodPost, "/listings", map[string]any{"title": "x"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestListingHandler_CreateListing(t *testing.T) {
	repo := newFakeListingRepository()
	h := &ListingHandler{submitUC: listing.NewSubmitListingUseCase(repo)}
	owner := uuid.New()

	r := newEngine()
	r.POST("/listings", as(owner, "user"), h.CreateListing)

	t.Run("pending после создания", func(t *testing.T) {
		w := doJSON(r, http.MethodPost, "/listings", map[string]any{
			"category_id": uuid.NewString(),
			"title":       "Диван",
			"price":       "2500.50",
			"city":        "Рио",
			"state":       "RJ",
		})
		require.Equal(t, http.StatusCreated, w.Code)

		var body struct {
			Data struct {
				Status  string `json:"status"`
				Price   string `json:"price"`
				OwnerID string `json:"owner_id"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "pending", body.Data.Status)
		assert.Equal(t, "2500.50", body.Data.Price)
		assert.Equal(t, owner.String(), body.Data.OwnerID)
	})

	t.Run("нулевая цена", func(t *testing.T) {
		w := doJSON(r, http.MethodPost, "/listings", map[string]any{
			"category_id": uuid.NewString(),
			"title":       "Диван",
			"price":       0,
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, string(apperror.ErrCodeValidation), errorCode(t, w))
	})

	t.Run("без категории", func(t *testing.T) {
		w := doJSON(r, http.MethodPost, "/listings", map[string]any{"title": "Диван", "price": 10})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestListingHandler_GetListing_HiddenFromStrangers(t *testing.T) {
	repo := newFakeListingRepository()
	owner := uuid.New()
	pending := seedListing(repo, owner, valueobject.ListingStatusPending)
	h := &ListingHandler{getUC: listing.NewGetListingUseCase(repo)}

	anon := newEngine()
	anon.GET("/listings/:id", h.GetListing)
	w := doJSON(anon, http.MethodGet, "/listings/"+pending.ID.String(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	mine := newEngine()
	mine.GET("/listings/:id", as(owner, "user"), h.GetListing)
	w = doJSON(mine, http.MethodGet, "/listings/"+pending.ID.String(), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(anon, http.MethodGet, "/listings/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListingHandler_ListListings_OnlyApproved(t *testing.T) {
	repo := newFakeListingRepository()
	seedListing(repo, uuid.New(), valueobject.ListingStatusApproved)
	seedListing(repo, uuid.New(), valueobject.ListingStatusPending)
	seedListing(repo, uuid.New(), valueobject.ListingStatusRejected)
	h := &ListingHandler{listUC: listing.NewListPublicListingsUseCase(repo)}

	r := newEngine()
	r.GET("/listings", h.ListListings)

	w := doJSON(r, http.MethodGet, "/listings?limit=500", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body response.PaginatedResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Pagination.Total)
	assert.Equal(t, 100, body.Pagination.Limit)
	assert.Len(t, body.Data, 1)

	w = doJSON(r, http.MethodGet, "/listings?category_id=nope", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestModerationHandler_RejectRequiresReason(t *testing.T) {
	repo := newFakeListingRepository()
	l := seedListing(repo, uuid.New(), valueobject.ListingStatusPending)
	h := &ModerationHandler{rejectUC: listing.NewRejectListingUseCase(repo, nil)}

	r := newEngine()
	r.POST("/admin/listings/:id/reject", as(uuid.New(), "admin"), h.Reject)

	w := doJSON(r, http.MethodPost, "/admin/listings/"+l.ID.String()+"/reject", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	stored, _ := repo.FindByID(context.Background(), l.ID)
	assert.Equal(t, valueobject.ListingStatusPending, stored.Status)
	assert.Nil(t, stored.RejectionReason)
}

func TestReportHandler_CreateReport(t *testing.T) {
	listings := newFakeListingRepository()
	owner := uuid.New()
	target := seedListing(listings, owner, valueobject.ListingStatusApproved)
	reports := &fakeReportRepository{}
	users := &fakeUserRepository{users: map[uuid.UUID]*entity.User{}}
	reporter := uuid.New()

	newRouter := func(banned bool, who uuid.UUID) *gin.Engine {
		h := &ReportHandler{
			fileUC:    report.NewFileReportUseCase(reports, listings, users, staticBans{banned: banned}),
			getMineUC: report.NewGetMyReportUseCase(reports),
		}
		r := newEngine()
		r.POST("/reports", as(who, "user"), h.CreateReport)
		r.GET("/reports/listing/:listingId", as(who, "user"), h.GetMyListingReport)
		return r
	}

	body := map[string]any{
		"report_type":         "listing",
		"reported_listing_id": target.ID.String(),
		"reason":              "scam",
		"description":         "просит предоплату",
	}

	t.Run("забаненный получает BANNED", func(t *testing.T) {
		w := doJSON(newRouter(true, reporter), http.MethodPost, "/reports", body)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, string(apperror.ErrCodeBanned), errorCode(t, w))
		assert.Empty(t, reports.created)
	})

	t.Run("жалоба на своё объявление", func(t *testing.T) {
		w := doJSON(newRouter(false, owner), http.MethodPost, "/reports", body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, string(apperror.ErrCodeSelfReport), errorCode(t, w))
	})

	t.Run("успех и can_delete", func(t *testing.T) {
		r := newRouter(false, reporter)
		w := doJSON(r, http.MethodPost, "/reports", body)
		require.Equal(t, http.StatusCreated, w.Code)

		w = doJSON(r, http.MethodGet, "/reports/listing/"+target.ID.String(), nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"can_delete":true`)
	})

	t.Run("неизвестный тип", func(t *testing.T) {
		bad := map[string]any{"report_type": "comment", "reason": "spam", "description": "x"}
		w := doJSON(newRouter(false, reporter), http.MethodPost, "/reports", bad)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestReportHandler_NoReportYieldsNullData(t *testing.T) {
	h := &ReportHandler{getMineUC: report.NewGetMyReportUseCase(&fakeReportRepository{})}
	r := newEngine()
	r.GET("/reports/listing/:listingId", as(uuid.New(), "user"), h.GetMyListingReport)

	w := doJSON(r, http.MethodGet, "/reports/listing/"+uuid.NewString(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true}`, w.Body.String())
}

func TestUserHandler_BanUser_InvalidBody(t *testing.T) {
	h := &UserHandler{}
	r := newEngine()
	r.POST("/admin/users/:id/ban", as(uuid.New(), "admin"), h.BanUser)

	w := doJSON(r, http.MethodPost, "/admin/users/"+uuid.NewString()+"/ban", map[string]any{"reason": "спам", "duration_days": 0})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodPost, "/admin/users/oops/ban", map[string]any{"reason": "спам"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFavoriteHandler_Unauthorized(t *testing.T) {
	h := &FavoriteHandler{}
	r := newEngine()
	r.POST("/favorites/:listingId", h.Save)

	w := doJSON(r, http.MethodPost, "/favorites/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestListingHandler_UploadImage_RejectsNonImages(t *testing.T) {
	h := &ListingHandler{maxUpload: 1 << 20}
	r := newEngine()
	r.POST("/listings/:id/images", as(uuid.New(), "user"), h.UploadImage)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "photo.png")
	require.NoError(t, err)
	_, _ = part.Write([]byte("#!/bin/sh\necho hi\n"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/listings/"+uuid.NewString()+"/images", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

var pngHeader = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0x0D, 'I', 'H', 'D', 'R'}

func TestCheckImage(t *testing.T) {
	_, ok := checkImage("cat.png", bytes.NewReader(pngHeader))
	assert.True(t, ok)

	msg, ok := checkImage("cat.jpg", bytes.NewReader(pngHeader))
	assert.False(t, ok)
	assert.Contains(t, msg, "не соответствует")

	_, ok = checkImage("cat.exe", bytes.NewReader(pngHeader))
	assert.False(t, ok)

	_, ok = checkImage("cat.png", bytes.NewReader([]byte("plain text")))
	assert.False(t, ok)
}
