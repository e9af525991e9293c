package database

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type Resume struct {
	ID               uuid.UUID
	OriginalFilename string
	Mime             string
	ObjectKey        string
	SessionID        uuid.UUID
}

type AnalysesResult struct {
	ID        uuid.UUID
	Results   json.RawMessage
	SessionID uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}
