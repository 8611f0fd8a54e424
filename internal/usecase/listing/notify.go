package listing

import (
	"context"

	"github.com/google/uuid"

	"github.com/ignatzorin/classifieds-backend/internal/domain/event"
	"github.com/ignatzorin/classifieds-backend/internal/logger"
)

type payload = map[string]any

// notify не прерывает операцию: уведомление вторично по отношению к изменению состояния.
func notify(ctx context.Context, notifier event.Notifier, userID uuid.UUID, name string, data any) {
	if notifier == nil {
		return
	}
	if err := notifier.Notify(ctx, userID, name, data); err != nil {
		logger.Log.WithError(err).WithField("event", name).Warn("failed to deliver notification")
	}
}
