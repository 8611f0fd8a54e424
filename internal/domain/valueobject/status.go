package valueobject

import (
	"strings"

	"github.com/ignatzorin/classifieds-backend/internal/pkg/apperror"
)

type ListingStatus string

const (
	ListingStatusPending  ListingStatus = "pending"
	ListingStatusApproved ListingStatus = "approved"
	ListingStatusRejected ListingStatus = "rejected"
)

func (s ListingStatus) IsValid() bool {
	switch s {
	case ListingStatusPending, ListingStatusApproved, ListingStatusRejected:
		return true
	}
	return false
}

// Повторное отклонение допускается: администратор уточняет причину.
var listingTransitions = map[ListingStatus][]ListingStatus{
	ListingStatusPending:  {ListingStatusApproved, ListingStatusRejected},
	ListingStatusApproved: {ListingStatusRejected},
	ListingStatusRejected: {ListingStatusApproved, ListingStatusRejected},
}

func (s ListingStatus) CanTransitionTo(newStatus ListingStatus) bool {
	for _, status := range listingTransitions[s] {
		if status == newStatus {
			return true
		}
	}
	return false
}

func NewListingStatus(status string) (ListingStatus, error) {
	s := ListingStatus(strings.TrimSpace(status))
	if !s.IsValid() {
		return "", apperror.Validation("некорректный статус объявления")
	}
	return s, nil
}

type ReportStatus string

const (
	ReportStatusPending   ReportStatus = "pending"
	ReportStatusReviewed  ReportStatus = "reviewed"
	ReportStatusResolved  ReportStatus = "resolved"
	ReportStatusDismissed ReportStatus = "dismissed"
)

func (s ReportStatus) IsValid() bool {
	switch s {
	case ReportStatusPending, ReportStatusReviewed, ReportStatusResolved, ReportStatusDismissed:
		return true
	}
	return false
}

// IsTerminal сообщает, закрыта ли жалоба окончательно.
func (s ReportStatus) IsTerminal() bool {
	return s == ReportStatusResolved || s == ReportStatusDismissed
}

var reportTransitions = map[ReportStatus][]ReportStatus{
	ReportStatusPending:   {ReportStatusReviewed, ReportStatusResolved, ReportStatusDismissed},
	ReportStatusReviewed:  {ReportStatusReviewed, ReportStatusResolved, ReportStatusDismissed},
	ReportStatusResolved:  {},
	ReportStatusDismissed: {},
}

func (s ReportStatus) CanTransitionTo(newStatus ReportStatus) bool {
	for _, status := range reportTransitions[s] {
		if status == newStatus {
			return true
		}
	}
	return false
}

// NewResolutionStatus принимает только статусы, которые может выставить администратор.
func NewResolutionStatus(status string) (ReportStatus, error) {
	s := ReportStatus(strings.TrimSpace(status))
	switch s {
	case ReportStatusReviewed, ReportStatusResolved, ReportStatusDismissed:
		return s, nil
	}
	return "", apperror.Validation("статус должен быть reviewed, resolved или dismissed")
}

func NewReportStatus(status string) (ReportStatus, error) {
	s := ReportStatus(strings.TrimSpace(status))
	if !s.IsValid() {
		return "", apperror.Validation("некорректный статус жалобы")
	}
	return s, nil
}

type ReportType string

const (
	ReportTypeUser    ReportType = "user"
	ReportTypeListing ReportType = "listing"
)

func NewReportType(t string) (ReportType, error) {
	switch ReportType(t) {
	case ReportTypeUser, ReportTypeListing:
		return ReportType(t), nil
	}
	return "", apperror.Validation("тип жалобы должен быть user или listing")
}

type ReportReason string

const (
	ReasonSpam                 ReportReason = "spam"
	ReasonInappropriateContent ReportReason = "inappropriate_content"
	ReasonFakeProduct          ReportReason = "fake_product"
	ReasonScam                 ReportReason = "scam"
	ReasonOffensiveBehavior    ReportReason = "offensive_behavior"
	ReasonCopyright            ReportReason = "copyright"
	ReasonOther                ReportReason = "other"
)

func (r ReportReason) IsValid() bool {
	switch r {
	case ReasonSpam, ReasonInappropriateContent, ReasonFakeProduct, ReasonScam,
		ReasonOffensiveBehavior, ReasonCopyright, ReasonOther:
		return true
	}
	return false
}

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}
