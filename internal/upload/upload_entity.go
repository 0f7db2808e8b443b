package upload

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// Upload is one submitted spreadsheet batch. Status only moves forward:
// pending -> processing -> {completed, failed}, and processing is never a
// final state, including on timeout and cancellation paths.
type Upload struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID         uuid.UUID `gorm:"type:uuid;not null;index"`
	Filename       string    `gorm:"size:255;not null"`
	Status         string    `gorm:"size:20;not null;default:pending"`
	TotalEmployees int       `gorm:"not null;default:0"`
	ErrorMessage   *string   `gorm:"size:500"`
	Diagnostics    []byte    `gorm:"type:jsonb"`
	UploadDate     time.Time `gorm:"autoCreateTime"`
	ProcessedDate  *time.Time
	UpdatedAt      time.Time
}

func (Upload) TableName() string {
	return "uploads"
}
