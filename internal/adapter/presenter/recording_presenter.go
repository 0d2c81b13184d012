package presenter

import (
	"encoding/json"
	"time"

	"github.com/callcaps/callcaps-server/internal/adapter/dto/recording"
	"github.com/callcaps/callcaps-server/internal/domain/entities"
)

// ToRecordingResponse converts a Recording entity to its response DTO
func ToRecordingResponse(r *entities.Recording) *recording.RecordingResponse {
	if r == nil {
		return nil
	}

	resp := &recording.RecordingResponse{
		ID:                 r.ID.String(),
		Title:              r.Title,
		MimeType:           r.MimeType,
		StartTime:          r.StartTime,
		EndTime:            r.EndTime,
		DurationMs:         r.DurationMs,
		Status:             string(r.Status),
		TranscriptText:     r.TranscriptText,
		TranscriptSegments: r.TranscriptSegments,
		SpeakerSummary:     r.SpeakerSummary,
		AISummary:          r.AISummary,
		KeyTopics:          r.KeyTopics,
		Sentiment:          r.Sentiment,
		CaseIdentifier:     r.CaseIdentifier,
		ProcessingError:    r.ProcessingError,
		ReportURL:          r.ReportURL,
		ProcessedAt:        r.ProcessedAt,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}

	if r.CaseID != nil {
		caseID := r.CaseID.String()
		resp.CaseID = &caseID
	}
	if r.MeetingTypeID != nil {
		meetingTypeID := r.MeetingTypeID.String()
		resp.MeetingTypeID = &meetingTypeID
	}
	if len(r.AIAnalysis) > 0 {
		resp.AIAnalysis = json.RawMessage(r.AIAnalysis)
	}
	if r.ReportStatus != nil {
		status := string(*r.ReportStatus)
		resp.ReportStatus = &status
	}

	return resp
}

// ToRecordingListResponse converts a recording page to its response DTO
func ToRecordingListResponse(recordings []*entities.Recording, total int64, limit, offset int) *recording.RecordingListResponse {
	items := make([]*recording.RecordingResponse, 0, len(recordings))
	for _, r := range recordings {
		items = append(items, ToRecordingResponse(r))
	}
	return &recording.RecordingListResponse{
		Recordings: items,
		Total:      total,
		Limit:      limit,
		Offset:     offset,
	}
}

// ToParticipantResponses converts participant entities to response DTOs
func ToParticipantResponses(participants []*entities.Participant) []*recording.ParticipantResponse {
	out := make([]*recording.ParticipantResponse, 0, len(participants))
	for _, p := range participants {
		out = append(out, &recording.ParticipantResponse{
			ID:          p.ID.String(),
			DisplayName: p.DisplayName,
			Role:        p.Role,
			TalkTime:    p.TalkTime,
		})
	}
	return out
}

// ToActionItemResponse converts one action item entity to its response DTO
func ToActionItemResponse(item *entities.ActionItem) *recording.ActionItemResponse {
	if item == nil {
		return nil
	}
	return &recording.ActionItemResponse{
		ID:       item.ID.String(),
		Task:     item.Task,
		Assignee: item.Assignee,
		Speaker:  item.Speaker,
		DueDate:  item.DueDate,
		Priority: item.Priority,
		Context:  item.Context,
		Status:   item.Status,
	}
}

// ToActionItemResponses converts action item entities to response DTOs
func ToActionItemResponses(items []*entities.ActionItem) []*recording.ActionItemResponse {
	out := make([]*recording.ActionItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, ToActionItemResponse(item))
	}
	return out
}

// ToDecisionResponses converts decision entities to response DTOs
func ToDecisionResponses(decisions []*entities.Decision) []*recording.DecisionResponse {
	out := make([]*recording.DecisionResponse, 0, len(decisions))
	for _, d := range decisions {
		out = append(out, &recording.DecisionResponse{
			ID:                 d.ID.String(),
			Decision:           d.Decision,
			DecisionMaker:      d.DecisionMaker,
			Context:            d.Context,
			Impact:             d.Impact,
			ImplementationDate: d.ImplementationDate,
		})
	}
	return out
}

// ToTopicResponses converts topic entities to response DTOs
func ToTopicResponses(topics []*entities.Topic) []*recording.TopicResponse {
	out := make([]*recording.TopicResponse, 0, len(topics))
	for _, t := range topics {
		out = append(out, &recording.TopicResponse{
			ID:         t.ID.String(),
			Name:       t.Name,
			Importance: t.Importance,
			Speakers:   t.Speakers,
		})
	}
	return out
}

// ToTaskInsightResponses converts task insight entities to response DTOs
func ToTaskInsightResponses(insights []*entities.TaskInsight) []*recording.TaskInsightResponse {
	out := make([]*recording.TaskInsightResponse, 0, len(insights))
	for _, i := range insights {
		resp := &recording.TaskInsightResponse{
			ID:                   i.ID.String(),
			ActionItemID:         i.ActionItemID.String(),
			CaseID:               i.CaseID.String(),
			SuggestedTitle:       i.SuggestedTitle,
			SuggestedDescription: i.SuggestedDescription,
			SuggestedPriority:    i.SuggestedPriority,
			SuggestedDueDate:     i.SuggestedDueDate,
			Confidence:           i.Confidence,
		}
		if i.SuggestedAssigneeID != nil {
			assigneeID := i.SuggestedAssigneeID.String()
			resp.SuggestedAssigneeID = &assigneeID
		}
		out = append(out, resp)
	}
	return out
}

// ToExportResponse assembles the full JSON export payload
func ToExportResponse(r *entities.Recording, participants []*entities.Participant, items []*entities.ActionItem, decisions []*entities.Decision, topics []*entities.Topic) *recording.ExportResponse {
	return &recording.ExportResponse{
		Recording:    ToRecordingResponse(r),
		Participants: ToParticipantResponses(participants),
		ActionItems:  ToActionItemResponses(items),
		Decisions:    ToDecisionResponses(decisions),
		Topics:       ToTopicResponses(topics),
		ExportedAt:   time.Now().UTC(),
	}
}
