package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ignatzorin/classifieds-backend/internal/domain/entity"
	"github.com/ignatzorin/classifieds-backend/internal/interface/http/middleware"
	"github.com/ignatzorin/classifieds-backend/internal/interface/http/response"
)

// currentActor достаёт пользователя, положенного middleware.Auth. При
// отсутствии сам пишет 401 и возвращает false.
func currentActor(c *gin.Context) (entity.Actor, bool) {
	actor, ok := optionalActor(c)
	if !ok {
		response.Unauthorized(c, "требуется авторизация")
		return entity.Actor{}, false
	}
	return *actor, true
}

// optionalActor возвращает nil для анонимного запроса.
func optionalActor(c *gin.Context) (*entity.Actor, bool) {
	value, exists := c.Get(middleware.ContextUserIDKey)
	if !exists {
		return nil, false
	}
	userID, ok := value.(uuid.UUID)
	if !ok || userID == uuid.Nil {
		return nil, false
	}
	actor := entity.NewActor(userID, c.GetString(middleware.ContextRoleKey))
	return &actor, true
}

func uuidParam(c *gin.Context, name, message string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.BadRequest(c, message)
		return uuid.Nil, false
	}
	return id, true
}

func parseIntQuery(c *gin.Context, key string, defaultValue int) int {
	valueStr := c.Query(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}
