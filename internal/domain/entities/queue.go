package entities

import (
	"time"

	"github.com/google/uuid"
)

// ProcessingTask identifies which pipeline stages a processing invocation runs
type ProcessingTask string

const (
	ProcessingTaskTranscribe ProcessingTask = "transcribe"
	ProcessingTaskAnalyze    ProcessingTask = "analyze"
	ProcessingTaskAll        ProcessingTask = "all"
)

// QueueStatus represents the status of a processing queue entry
type QueueStatus string

const (
	QueueStatusPending    QueueStatus = "pending"
	QueueStatusProcessing QueueStatus = "processing"
	QueueStatusCompleted  QueueStatus = "completed"
	QueueStatusFailed     QueueStatus = "failed"
)

// ProcessingQueueEntry tracks one (recording, task) processing attempt.
// Entries always reach a terminal state: completed on success, failed with
// the error message on failure.
type ProcessingQueueEntry struct {
	ID           uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	RecordingID  uuid.UUID      `json:"recording_id" gorm:"type:uuid;not null;index"`
	Task         ProcessingTask `json:"task" gorm:"type:varchar(20);not null"`
	Status       QueueStatus    `json:"status" gorm:"type:varchar(20);not null;default:'pending';index"`
	StartedAt    *time.Time     `json:"started_at,omitempty"`
	CompletedAt  *time.Time     `json:"completed_at,omitempty"`
	DurationMs   *int64         `json:"duration_ms,omitempty"`
	ErrorMessage *string        `json:"error_message,omitempty" gorm:"type:text"`
	CreatedAt    time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (ProcessingQueueEntry) TableName() string {
	return "processing_queue"
}

// MarkProcessing marks the entry as in flight
func (q *ProcessingQueueEntry) MarkProcessing() {
	q.Status = QueueStatusProcessing
	now := time.Now()
	q.StartedAt = &now
}

// MarkCompleted marks the entry completed and records its duration
func (q *ProcessingQueueEntry) MarkCompleted() {
	q.Status = QueueStatusCompleted
	now := time.Now()
	q.CompletedAt = &now
	if q.StartedAt != nil {
		d := now.Sub(*q.StartedAt).Milliseconds()
		q.DurationMs = &d
	}
}

// MarkFailed marks the entry failed with the error message
func (q *ProcessingQueueEntry) MarkFailed(errorMsg string) {
	q.Status = QueueStatusFailed
	now := time.Now()
	q.CompletedAt = &now
	q.ErrorMessage = &errorMsg
	if q.StartedAt != nil {
		d := now.Sub(*q.StartedAt).Milliseconds()
		q.DurationMs = &d
	}
}

// ValidTask reports whether the task value is one of the accepted task types
func ValidTask(task ProcessingTask) bool {
	switch task {
	case ProcessingTaskTranscribe, ProcessingTaskAnalyze, ProcessingTaskAll:
		return true
	}
	return false
}
