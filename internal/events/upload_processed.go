package events

import "time"

const UploadLifecycleTopic = "payroll.upload.lifecycle.v1"

// UploadProcessedEvent is emitted once per batch after its final status is
// committed, for both completed and failed outcomes.
type UploadProcessedEvent struct {
	EventType      string    `json:"event_type"`
	RequestID      string    `json:"request_id,omitempty"`
	UploadID       string    `json:"upload_id"`
	UserID         string    `json:"user_id"`
	Status         string    `json:"status"`
	TotalEmployees int       `json:"total_employees"`
	RowErrors      int       `json:"row_errors"`
	OccurredAt     time.Time `json:"occurred_at"`
}
