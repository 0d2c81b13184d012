package meetingtype

import "time"

// MeetingTypeResponse represents a meeting type in responses
type MeetingTypeResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	DisplayName  string    `json:"display_name"`
	SystemPrompt *string   `json:"system_prompt,omitempty"`
	OutputFormat string    `json:"output_format"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// MeetingTypeListResponse represents a list of meeting types
type MeetingTypeListResponse struct {
	MeetingTypes []*MeetingTypeResponse `json:"meeting_types"`
	Total        int                    `json:"total"`
}
