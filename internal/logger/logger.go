package logger

import (
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Log доступен сразу, чтобы тесты и утилиты работали без Init.
var Log = logrus.New()

// Init настраивает структурированный логгер под окружение.
func Init(level, env string) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	Log.SetLevel(lvl)

	// JSON для production, текст для development
	if env == "development" {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
		return
	}
	Log.SetFormatter(&logrus.JSONFormatter{})
}

// Moderation возвращает запись с полями действия модерации.
func Moderation(actorID uuid.UUID, entity string, entityID uuid.UUID, action string) *logrus.Entry {
	return Log.WithFields(logrus.Fields{
		"actor_id":  actorID.String(),
		"entity":    entity,
		"entity_id": entityID.String(),
		"action":    action,
	})
}
