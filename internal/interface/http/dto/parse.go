package dto

import "github.com/google/uuid"

// ParseOptionalUUID разбирает необязательный идентификатор из запроса.
func ParseOptionalUUID(raw *string) (*uuid.UUID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(*raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
