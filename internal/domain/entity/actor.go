package entity

import (
	"github.com/google/uuid"

	"github.com/ignatzorin/classifieds-backend/internal/domain/valueobject"
)

// Actor это тот, от чьего имени выполняется операция. Передаётся в каждый use case явно.
type Actor struct {
	UserID uuid.UUID
	Role   valueobject.Role
}

func NewActor(userID uuid.UUID, role string) Actor {
	return Actor{UserID: userID, Role: valueobject.Role(role)}
}

func (a Actor) IsAdmin() bool {
	return a.Role.IsAdmin()
}
