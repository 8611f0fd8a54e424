package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/ignatzorin/classifieds-backend/internal/domain/entity"
)

type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	UpdateBan(ctx context.Context, userID uuid.UUID, ban entity.Ban) error
	SetVerified(ctx context.Context, userID uuid.UUID, verified bool) error
}
