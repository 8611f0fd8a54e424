package event

import (
	"context"

	"github.com/google/uuid"
)

// Имена событий, которые получает затронутый пользователь.
const (
	ListingApproved = "listing.approved"
	ListingRejected = "listing.rejected"
	ListingDeleted  = "listing.deleted"
	ReportResolved  = "report.resolved"
	UserBanned      = "user.banned"
	UserUnbanned    = "user.unbanned"
)

// Notifier доставляет сообщение пользователю (в вебсокет, тост и т.п.).
type Notifier interface {
	Notify(ctx context.Context, userID uuid.UUID, event string, data any) error
}

// NopNotifier используется, когда доставка уведомлений не настроена.
type NopNotifier struct{}

func (NopNotifier) Notify(context.Context, uuid.UUID, string, any) error { return nil }
