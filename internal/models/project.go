package models

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

const (
	StatusLocked   = "locked"
	StatusUnlocked = "unlocked"
)

// Project is one enhancement request and its derived assets. A row is
// created once by the enhancement pipeline with status "locked" and mutated
// exactly once by the unlock pipeline, which sets the three nullable
// columns and flips status.
type Project struct {
	ID               uuid.UUID
	OwnerID          uuid.UUID
	StyleID          string
	Status           string
	OriginalPath     string
	PreviewPath      string
	PreviewURL       string
	DownloadURL      sql.NullString
	Vision           string
	PaymentReference sql.NullString
	CreatedAt        time.Time
	UnlockedAt       sql.NullTime
}
