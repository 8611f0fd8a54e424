package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ignatzorin/classifieds-backend/internal/domain/valueobject"
	"github.com/ignatzorin/classifieds-backend/internal/pkg/apperror"
	"github.com/ignatzorin/classifieds-backend/internal/validation"
)

type Listing struct {
	ID              uuid.UUID
	OwnerID         uuid.UUID
	CategoryID      uuid.UUID
	Title           string
	Description     string
	Price           valueobject.Price
	City            string
	State           string
	Status          valueobject.ListingStatus
	IsActive        bool
	RejectionReason *string
	ViewCount       int64
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Images []ListingImage
	Badges []Badge
}

type ListingImage struct {
	ID           uuid.UUID
	ListingID    uuid.UUID
	URL          string
	FilePath     string
	DisplayOrder int
	CreatedAt    time.Time
}

type Badge struct {
	ID    uuid.UUID
	Name  string
	Color string
}

// ListingDraft содержит данные, которые владелец заполняет при публикации.
type ListingDraft struct {
	OwnerID     uuid.UUID
	CategoryID  uuid.UUID
	Title       string
	Description string
	Price       decimal.Decimal
	City        string
	State       string
}

// ListingEdit описывает частичное обновление. nil означает «не менять».
type ListingEdit struct {
	Title       *string
	Description *string
	Price       *decimal.Decimal
	CategoryID  *uuid.UUID
}

func NewListing(draft ListingDraft, at time.Time) (*Listing, error) {
	title := strings.TrimSpace(draft.Title)
	if err := validation.ValidateListingTitle(title); err != nil {
		return nil, err
	}
	description := strings.TrimSpace(draft.Description)
	if err := validation.ValidateListingDescription(description); err != nil {
		return nil, err
	}
	city := strings.TrimSpace(draft.City)
	state := validation.NormalizeState(draft.State)
	if err := validation.ValidateLocation(city, state); err != nil {
		return nil, err
	}
	if draft.CategoryID == uuid.Nil {
		return nil, apperror.Validation("выберите категорию")
	}
	price, err := valueobject.NewPositivePrice(draft.Price)
	if err != nil {
		return nil, err
	}

	return &Listing{
		ID:          uuid.New(),
		OwnerID:     draft.OwnerID,
		CategoryID:  draft.CategoryID,
		Title:       title,
		Description: description,
		Price:       price,
		City:        city,
		State:       state,
		Status:      valueobject.ListingStatusPending,
		IsActive:    true,
		ViewCount:   0,
		CreatedAt:   at,
		UpdatedAt:   at,
	}, nil
}

// Approve публикует объявление. Возвращает false, если оно уже одобрено.
func (l *Listing) Approve(at time.Time) (bool, error) {
	if l.Status == valueobject.ListingStatusApproved {
		return false, nil
	}
	if !l.Status.CanTransitionTo(valueobject.ListingStatusApproved) {
		return false, apperror.New(apperror.ErrCodeBadRequest, "невозможно одобрить объявление в текущем статусе")
	}
	l.Status = valueobject.ListingStatusApproved
	l.RejectionReason = nil
	l.UpdatedAt = at
	return true, nil
}

func (l *Listing) Reject(reason string, at time.Time) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return apperror.Validation("укажите причину отклонения")
	}
	if err := validation.ValidateReason("причина отклонения", reason); err != nil {
		return err
	}
	if !l.Status.CanTransitionTo(valueobject.ListingStatusRejected) {
		return apperror.New(apperror.ErrCodeBadRequest, "невозможно отклонить объявление в текущем статусе")
	}
	l.Status = valueobject.ListingStatusRejected
	l.RejectionReason = &reason
	l.UpdatedAt = at
	return nil
}

// Edit применяет изменения только после проверки итогового состояния.
func (l *Listing) Edit(edit ListingEdit, at time.Time) error {
	title := l.Title
	if edit.Title != nil {
		title = strings.TrimSpace(*edit.Title)
	}
	if err := validation.ValidateListingTitle(title); err != nil {
		return err
	}
	description := l.Description
	if edit.Description != nil {
		description = strings.TrimSpace(*edit.Description)
		if err := validation.ValidateListingDescription(description); err != nil {
			return err
		}
	}

	price := l.Price
	if edit.Price != nil {
		p, err := valueobject.NewPositivePrice(*edit.Price)
		if err != nil {
			return err
		}
		price = p
	}
	if !price.IsPositive() {
		return apperror.Validation("укажите корректную цену больше нуля")
	}

	categoryID := l.CategoryID
	if edit.CategoryID != nil {
		if *edit.CategoryID == uuid.Nil {
			return apperror.Validation("выберите категорию")
		}
		categoryID = *edit.CategoryID
	}

	l.Title = title
	l.Price = price
	l.CategoryID = categoryID
	l.Description = description
	l.UpdatedAt = at
	return nil
}

func (l *Listing) SetActive(active bool, at time.Time) {
	l.IsActive = active
	l.UpdatedAt = at
}

// IsPubliclyVisible: неодобренное объявление не видно никому, независимо от IsActive.
func (l *Listing) IsPubliclyVisible() bool {
	return l.Status == valueobject.ListingStatusApproved && l.IsActive
}

func (l *Listing) IsOwnedBy(userID uuid.UUID) bool {
	return l.OwnerID == userID
}

func (l *Listing) CanBeEditedBy(actor Actor) bool {
	return actor.IsAdmin() || l.IsOwnedBy(actor.UserID)
}
