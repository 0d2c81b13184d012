package meetingtype

// CreateMeetingTypeRequest creates a member-scoped analysis template.
// Names are machine keys: lowercase letters, digits and underscores.
type CreateMeetingTypeRequest struct {
	Name         string  `json:"name" validate:"required,min=1,max=100,lowercase_key"`
	DisplayName  string  `json:"display_name,omitempty" validate:"omitempty,max=255"`
	SystemPrompt *string `json:"system_prompt,omitempty"`
	OutputFormat string  `json:"output_format,omitempty" validate:"omitempty,oneof=json markdown text"`
}

// UpdateMeetingTypeRequest updates a meeting type in place
type UpdateMeetingTypeRequest struct {
	DisplayName  *string `json:"display_name,omitempty" validate:"omitempty,max=255"`
	SystemPrompt *string `json:"system_prompt,omitempty"`
	OutputFormat *string `json:"output_format,omitempty" validate:"omitempty,oneof=json markdown text"`
}
