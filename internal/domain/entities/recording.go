package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// RecordingStatus represents the processing status of a recording
type RecordingStatus string

const (
	RecordingStatusUploaded     RecordingStatus = "uploaded"
	RecordingStatusTranscribing RecordingStatus = "transcribing"
	RecordingStatusTranscribed  RecordingStatus = "transcribed"
	RecordingStatusAnalyzing    RecordingStatus = "analyzing"
	RecordingStatusProcessed    RecordingStatus = "processed"
	RecordingStatusFailed       RecordingStatus = "failed"
)

// ReportStatus tracks the report stage independently of the recording status:
// a report failure does not roll back a successful processing run.
type ReportStatus string

const (
	ReportStatusPending   ReportStatus = "pending"
	ReportStatusCompleted ReportStatus = "completed"
	ReportStatusFailed    ReportStatus = "failed"
)

// TranscriptSegment is an ordered unit of speech. The same speaker label
// denotes the same person throughout one recording's segment list.
type TranscriptSegment struct {
	Speaker    string   `json:"speaker"`
	Text       string   `json:"text"`
	StartTime  *float64 `json:"startTime,omitempty"`
	EndTime    *float64 `json:"endTime,omitempty"`
	Confidence *float64 `json:"confidence,omitempty"`
}

// SpeakerStat is the per-speaker summary derived from segments
type SpeakerStat struct {
	Speaker      string  `json:"speaker"`
	SegmentCount int     `json:"segment_count"`
	TalkTime     float64 `json:"talk_time"`
}

// Recording represents one media artifact submitted for processing
type Recording struct {
	ID                 uuid.UUID           `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	OrganizationID     uuid.UUID           `json:"organization_id" gorm:"type:uuid;not null;index"`
	MemberID           uuid.UUID           `json:"member_id" gorm:"type:uuid;not null;index"`
	CaseID             *uuid.UUID          `json:"case_id,omitempty" gorm:"type:uuid;index"`
	MeetingTypeID      *uuid.UUID          `json:"meeting_type_id,omitempty" gorm:"type:uuid;index"`
	Title              string              `json:"title" gorm:"type:varchar(500);not null"`
	MimeType           string              `json:"mime_type" gorm:"type:varchar(100);default:'audio/mpeg'"`
	StartTime          *time.Time          `json:"start_time,omitempty"`
	EndTime            *time.Time          `json:"end_time,omitempty"`
	DurationMs         *int64              `json:"duration_ms,omitempty"`
	StorageKey         *string             `json:"storage_key,omitempty" gorm:"type:text"`
	Status             RecordingStatus     `json:"status" gorm:"type:varchar(20);not null;default:'uploaded';index"`
	TranscriptText     *string             `json:"transcript_text,omitempty" gorm:"type:text"`
	TranscriptSegments []TranscriptSegment `json:"transcript_segments,omitempty" gorm:"type:jsonb;serializer:json"`
	SpeakerSummary     []SpeakerStat       `json:"speaker_summary,omitempty" gorm:"type:jsonb;serializer:json"`
	AIAnalysis         datatypes.JSON      `json:"ai_analysis,omitempty" gorm:"type:jsonb"`
	AISummary          *string             `json:"ai_summary,omitempty" gorm:"type:text"`
	KeyTopics          []string            `json:"key_topics,omitempty" gorm:"type:jsonb;serializer:json"`
	Sentiment          *string             `json:"sentiment,omitempty" gorm:"type:varchar(20)"`
	CaseIdentifier     *string             `json:"case_identifier,omitempty" gorm:"type:varchar(255)"`
	ProcessingError    *string             `json:"processing_error,omitempty" gorm:"type:text"`
	ReportKey          *string             `json:"report_key,omitempty" gorm:"type:text"`
	ReportURL          *string             `json:"report_url,omitempty" gorm:"type:text"`
	ReportStatus       *ReportStatus       `json:"report_status,omitempty" gorm:"type:varchar(20)"`
	ProcessedAt        *time.Time          `json:"processed_at,omitempty"`
	CreatedAt          time.Time           `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt          time.Time           `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (Recording) TableName() string {
	return "call_recordings"
}

// IsLegalKind reports whether a recording kind gets the legal report branch
func IsLegalKind(kind string) bool {
	return kind == "call" || kind == "consultation"
}

// MarkTranscribing moves the recording into the transcribing state
func (r *Recording) MarkTranscribing() {
	r.Status = RecordingStatusTranscribing
	r.ProcessingError = nil
}

// MarkTranscribed stores the transcription output
func (r *Recording) MarkTranscribed(text string, segments []TranscriptSegment, summary []SpeakerStat) {
	r.Status = RecordingStatusTranscribed
	r.TranscriptText = &text
	r.TranscriptSegments = segments
	r.SpeakerSummary = summary
}

// MarkAnalyzing moves the recording into the analyzing state
func (r *Recording) MarkAnalyzing() {
	r.Status = RecordingStatusAnalyzing
	r.ProcessingError = nil
}

// MarkProcessed marks the recording as fully processed
func (r *Recording) MarkProcessed() {
	r.Status = RecordingStatusProcessed
	now := time.Now()
	r.ProcessedAt = &now
}

// MarkFailed marks the recording as failed with the given error message
func (r *Recording) MarkFailed(errorMsg string) {
	r.Status = RecordingStatusFailed
	r.ProcessingError = &errorMsg
}

// SetReportStatus records the outcome of the reporting stage
func (r *Recording) SetReportStatus(status ReportStatus) {
	r.ReportStatus = &status
}
