package recording

// CreateRecordingRequest creates a metadata row before or without a media
// upload. Timestamps arrive as RFC3339 strings and are parsed in the handler.
type CreateRecordingRequest struct {
	Title         string  `json:"title" validate:"required,min=1,max=500"`
	MimeType      string  `json:"mime_type,omitempty" validate:"omitempty,max=100"`
	CaseID        *string `json:"case_id,omitempty" validate:"omitempty,uuid"`
	MeetingTypeID *string `json:"meeting_type_id,omitempty" validate:"omitempty,uuid"`
	StartTime     *string `json:"start_time,omitempty"`
	EndTime       *string `json:"end_time,omitempty"`
	DurationMs    *int64  `json:"duration_ms,omitempty" validate:"omitempty,min=0"`
}

// ProcessRecordingRequest selects which pipeline stages to run.
// An empty task defaults to "all".
type ProcessRecordingRequest struct {
	Task string `json:"task,omitempty" validate:"omitempty,oneof=transcribe analyze all"`
}

// ListRecordingsRequest represents query parameters for listing recordings
type ListRecordingsRequest struct {
	Status      *string `query:"status" validate:"omitempty,oneof=uploaded transcribing transcribed analyzing processed failed"`
	MeetingType *string `query:"meeting_type" validate:"omitempty,uuid"`
	Search      string  `query:"search"`
	StartDate   *string `query:"start_date"`
	EndDate     *string `query:"end_date"`
	Limit       int     `query:"limit" validate:"omitempty,min=1,max=100"`
	Offset      int     `query:"offset" validate:"omitempty,min=0"`
}

// UpdateActionItemRequest updates a single action item's lifecycle fields
type UpdateActionItemRequest struct {
	Status   *string `json:"status,omitempty" validate:"omitempty,oneof=pending completed cancelled"`
	Assignee *string `json:"assignee,omitempty" validate:"omitempty,max=255"`
	Priority *string `json:"priority,omitempty" validate:"omitempty,oneof=low medium high urgent"`
	DueDate  *string `json:"due_date,omitempty" validate:"omitempty,max=255"`
}

// ExportRequest selects the export payload format
type ExportRequest struct {
	Format string `json:"format" validate:"required,oneof=json csv"`
}
