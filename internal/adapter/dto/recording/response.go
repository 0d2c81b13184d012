package recording

import (
	"encoding/json"
	"time"

	"github.com/callcaps/callcaps-server/internal/domain/entities"
)

// RecordingResponse represents a recording in responses
type RecordingResponse struct {
	ID                 string                       `json:"id"`
	CaseID             *string                      `json:"case_id,omitempty"`
	MeetingTypeID      *string                      `json:"meeting_type_id,omitempty"`
	Title              string                       `json:"title"`
	MimeType           string                       `json:"mime_type"`
	StartTime          *time.Time                   `json:"start_time,omitempty"`
	EndTime            *time.Time                   `json:"end_time,omitempty"`
	DurationMs         *int64                       `json:"duration_ms,omitempty"`
	Status             string                       `json:"status"`
	TranscriptText     *string                      `json:"transcript_text,omitempty"`
	TranscriptSegments []entities.TranscriptSegment `json:"transcript_segments,omitempty"`
	SpeakerSummary     []entities.SpeakerStat       `json:"speaker_summary,omitempty"`
	AIAnalysis         json.RawMessage              `json:"ai_analysis,omitempty"`
	AISummary          *string                      `json:"ai_summary,omitempty"`
	KeyTopics          []string                     `json:"key_topics,omitempty"`
	Sentiment          *string                      `json:"sentiment,omitempty"`
	CaseIdentifier     *string                      `json:"case_identifier,omitempty"`
	ProcessingError    *string                      `json:"processing_error,omitempty"`
	ReportURL          *string                      `json:"report_url,omitempty"`
	ReportStatus       *string                      `json:"report_status,omitempty"`
	ProcessedAt        *time.Time                   `json:"processed_at,omitempty"`
	CreatedAt          time.Time                    `json:"created_at"`
	UpdatedAt          time.Time                    `json:"updated_at"`
}

// RecordingDetailResponse is a recording with its fan-out rows
type RecordingDetailResponse struct {
	Recording    *RecordingResponse     `json:"recording"`
	Participants []*ParticipantResponse `json:"participants"`
	ActionItems  []*ActionItemResponse  `json:"action_items"`
	Decisions    []*DecisionResponse    `json:"decisions"`
	Topics       []*TopicResponse       `json:"topics"`
	TaskInsights []*TaskInsightResponse `json:"task_insights,omitempty"`
}

// RecordingListResponse represents a paginated list of recordings
type RecordingListResponse struct {
	Recordings []*RecordingResponse `json:"recordings"`
	Total      int64                `json:"total"`
	Limit      int                  `json:"limit"`
	Offset     int                  `json:"offset"`
}

// ProcessResponse reports the outcome of a processing invocation
type ProcessResponse struct {
	Success bool   `json:"success"`
	Status  string `json:"status"`
	Error   string `json:"error,omitempty"`
}

// ParticipantResponse represents a participant in responses
type ParticipantResponse struct {
	ID          string  `json:"id"`
	DisplayName string  `json:"display_name"`
	Role        string  `json:"role"`
	TalkTime    float64 `json:"talk_time"`
}

// ActionItemResponse represents an action item in responses
type ActionItemResponse struct {
	ID       string  `json:"id"`
	Task     string  `json:"task"`
	Assignee *string `json:"assignee,omitempty"`
	Speaker  *string `json:"speaker,omitempty"`
	DueDate  *string `json:"due_date,omitempty"`
	Priority string  `json:"priority"`
	Context  *string `json:"context,omitempty"`
	Status   string  `json:"status"`
}

// DecisionResponse represents a decision in responses
type DecisionResponse struct {
	ID                 string  `json:"id"`
	Decision           string  `json:"decision"`
	DecisionMaker      *string `json:"decision_maker,omitempty"`
	Context            *string `json:"context,omitempty"`
	Impact             string  `json:"impact"`
	ImplementationDate *string `json:"implementation_date,omitempty"`
}

// TopicResponse represents a topic in responses
type TopicResponse struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Importance float64  `json:"importance"`
	Speakers   []string `json:"speakers,omitempty"`
}

// TaskInsightResponse represents a task suggestion in responses
type TaskInsightResponse struct {
	ID                   string  `json:"id"`
	ActionItemID         string  `json:"action_item_id"`
	CaseID               string  `json:"case_id"`
	SuggestedTitle       string  `json:"suggested_title"`
	SuggestedDescription *string `json:"suggested_description,omitempty"`
	SuggestedPriority    string  `json:"suggested_priority"`
	SuggestedDueDate     *string `json:"suggested_due_date,omitempty"`
	SuggestedAssigneeID  *string `json:"suggested_assignee_id,omitempty"`
	Confidence           float64 `json:"confidence"`
}

// AnalyticsResponse aggregates the organization's recording activity
type AnalyticsResponse struct {
	TotalRecordings  int64            `json:"total_recordings"`
	ByStatus         map[string]int64 `json:"by_status"`
	TotalActionItems int64            `json:"total_action_items"`
	TotalDecisions   int64            `json:"total_decisions"`
}

// ExportResponse is the JSON export payload
type ExportResponse struct {
	Recording    *RecordingResponse     `json:"recording"`
	Participants []*ParticipantResponse `json:"participants"`
	ActionItems  []*ActionItemResponse  `json:"action_items"`
	Decisions    []*DecisionResponse    `json:"decisions"`
	Topics       []*TopicResponse       `json:"topics"`
	ExportedAt   time.Time              `json:"exported_at"`
}
