package db

import (
	"time"

	"gorm.io/datatypes"
)

// Event is one entry of the browse journal: searches, failures, facet loads.
type Event struct {
	ID        uint           `gorm:"primaryKey"`
	SessionID string         `gorm:"size:64;index;not null"`
	Type      string         `gorm:"size:64;not null"`
	Payload   datatypes.JSON `gorm:"type:jsonb;not null"`
	CreatedAt time.Time      `gorm:"not null"`
}
