package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/classifieds-backend/internal/domain/entity"
)

type CreateReportRequest struct {
	ReportType        string  `json:"report_type" binding:"required,oneof=user listing"`
	ReportedUserID    *string `json:"reported_user_id" binding:"omitempty,uuid"`
	ReportedListingID *string `json:"reported_listing_id" binding:"omitempty,uuid"`
	Reason            string  `json:"reason" binding:"required"`
	Description       string  `json:"description" binding:"max=2000"`
}

type ResolveReportRequest struct {
	Status     string  `json:"status" binding:"required"`
	AdminNotes *string `json:"admin_notes" binding:"omitempty,max=2000"`
}

type ReportResponse struct {
	ID                uuid.UUID  `json:"id"`
	ReporterID        uuid.UUID  `json:"reporter_id"`
	ReportType        string     `json:"report_type"`
	ReportedUserID    uuid.UUID  `json:"reported_user_id"`
	ReportedListingID *uuid.UUID `json:"reported_listing_id"`
	Reason            string     `json:"reason"`
	Description       string     `json:"description"`
	Status            string     `json:"status"`
	AdminNotes        *string    `json:"admin_notes"`
	CreatedAt         time.Time  `json:"created_at"`
	ResolvedAt        *time.Time `json:"resolved_at"`
	ResolvedBy        *uuid.UUID `json:"resolved_by"`
	// CanDelete отдаётся только автору жалобы.
	CanDelete *bool `json:"can_delete,omitempty"`
}

func ToReportResponse(r *entity.Report) ReportResponse {
	return ReportResponse{
		ID:                r.ID,
		ReporterID:        r.ReporterID,
		ReportType:        string(r.Type),
		ReportedUserID:    r.ReportedUserID,
		ReportedListingID: r.ReportedListingID,
		Reason:            string(r.Reason),
		Description:       r.Description,
		Status:            string(r.Status),
		AdminNotes:        r.AdminNotes,
		CreatedAt:         r.CreatedAt,
		ResolvedAt:        r.ResolvedAt,
		ResolvedBy:        r.ResolvedBy,
	}
}

// ToMyReportResponse добавляет вычисленный сервером признак can_delete.
func ToMyReportResponse(r *entity.Report) ReportResponse {
	resp := ToReportResponse(r)
	canDelete := r.CanDelete
	resp.CanDelete = &canDelete
	return resp
}

func ToReportResponses(reports []*entity.Report) []ReportResponse {
	resp := make([]ReportResponse, 0, len(reports))
	for _, r := range reports {
		resp = append(resp, ToReportResponse(r))
	}
	return resp
}
