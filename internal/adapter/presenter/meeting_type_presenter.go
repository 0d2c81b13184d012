package presenter

import (
	"github.com/callcaps/callcaps-server/internal/adapter/dto/meetingtype"
	"github.com/callcaps/callcaps-server/internal/domain/entities"
)

// ToMeetingTypeResponse converts a MeetingType entity to its response DTO
func ToMeetingTypeResponse(mt *entities.MeetingType) *meetingtype.MeetingTypeResponse {
	if mt == nil {
		return nil
	}
	return &meetingtype.MeetingTypeResponse{
		ID:           mt.ID.String(),
		Name:         mt.Name,
		DisplayName:  mt.DisplayName,
		SystemPrompt: mt.SystemPrompt,
		OutputFormat: mt.OutputFormat,
		IsActive:     mt.IsActive,
		CreatedAt:    mt.CreatedAt,
		UpdatedAt:    mt.UpdatedAt,
	}
}

// ToMeetingTypeListResponse converts meeting type entities to a list response
func ToMeetingTypeListResponse(types []*entities.MeetingType) *meetingtype.MeetingTypeListResponse {
	items := make([]*meetingtype.MeetingTypeResponse, 0, len(types))
	for _, mt := range types {
		items = append(items, ToMeetingTypeResponse(mt))
	}
	return &meetingtype.MeetingTypeListResponse{
		MeetingTypes: items,
		Total:        len(items),
	}
}
