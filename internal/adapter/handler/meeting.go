package handler

import (
	"encoding/csv"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "github.com/callcaps/callcaps-server/errors"
	recordingdto "github.com/callcaps/callcaps-server/internal/adapter/dto/recording"
	"github.com/callcaps/callcaps-server/internal/adapter/presenter"
	"github.com/callcaps/callcaps-server/internal/domain/entities"
	"github.com/callcaps/callcaps-server/internal/domain/repositories"
)

// Meeting handles the read-side meeting intelligence endpoints
type Meeting struct {
	recordingRepo   repositories.RecordingRepository
	participantRepo repositories.ParticipantRepository
	analysisRepo    repositories.AnalysisRepository
	logger          *zap.Logger
}

// NewMeetingHandler creates a new meeting handler
func NewMeetingHandler(
	recordingRepo repositories.RecordingRepository,
	participantRepo repositories.ParticipantRepository,
	analysisRepo repositories.AnalysisRepository,
	logger *zap.Logger,
) *Meeting {
	return &Meeting{
		recordingRepo:   recordingRepo,
		participantRepo: participantRepo,
		analysisRepo:    analysisRepo,
		logger:          logger,
	}
}

// Analytics handles GET /meetings/analytics
// @Summary      Meeting analytics
// @Description  Aggregates the organization's recording activity
// @Tags         Meetings
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  recordingdto.AnalyticsResponse
// @Router       /meetings/analytics [get]
func (h *Meeting) Analytics(c echo.Context) error {
	organizationID, _, err := requestScope(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	ctx := c.Request().Context()

	byStatus, err := h.recordingRepo.CountByStatus(ctx, organizationID)
	if err != nil {
		return HandleError(h.logger, c, apperrors.ErrDBFailed("count recordings", err))
	}

	totalActionItems, err := h.analysisRepo.CountActionItems(ctx, organizationID)
	if err != nil {
		return HandleError(h.logger, c, apperrors.ErrDBFailed("count action items", err))
	}
	totalDecisions, err := h.analysisRepo.CountDecisions(ctx, organizationID)
	if err != nil {
		return HandleError(h.logger, c, apperrors.ErrDBFailed("count decisions", err))
	}

	resp := &recordingdto.AnalyticsResponse{
		ByStatus:         make(map[string]int64, len(byStatus)),
		TotalActionItems: totalActionItems,
		TotalDecisions:   totalDecisions,
	}
	for status, count := range byStatus {
		resp.ByStatus[string(status)] = count
		resp.TotalRecordings += count
	}

	return HandleSuccess(h.logger, c, resp)
}

// Participants handles GET /meetings/:id/participants
// @Summary      Meeting participants
// @Tags         Meetings
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Recording ID (UUID)"
// @Success      200  {array}  recordingdto.ParticipantResponse
// @Router       /meetings/{id}/participants [get]
func (h *Meeting) Participants(c echo.Context) error {
	recording, err := h.loadScoped(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	participants, err := h.participantRepo.FindByRecording(c.Request().Context(), recording.ID)
	if err != nil {
		return HandleError(h.logger, c, apperrors.ErrDBFailed("load participants", err))
	}
	return HandleSuccess(h.logger, c, presenter.ToParticipantResponses(participants))
}

// ActionItems handles GET /meetings/:id/action-items
// @Summary      Meeting action items
// @Tags         Meetings
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Recording ID (UUID)"
// @Success      200  {array}  recordingdto.ActionItemResponse
// @Router       /meetings/{id}/action-items [get]
func (h *Meeting) ActionItems(c echo.Context) error {
	recording, err := h.loadScoped(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	items, err := h.analysisRepo.FindActionItems(c.Request().Context(), recording.ID)
	if err != nil {
		return HandleError(h.logger, c, apperrors.ErrDBFailed("load action items", err))
	}
	return HandleSuccess(h.logger, c, presenter.ToActionItemResponses(items))
}

// Decisions handles GET /meetings/:id/decisions
// @Summary      Meeting decisions
// @Tags         Meetings
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Recording ID (UUID)"
// @Success      200  {array}  recordingdto.DecisionResponse
// @Router       /meetings/{id}/decisions [get]
func (h *Meeting) Decisions(c echo.Context) error {
	recording, err := h.loadScoped(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	decisions, err := h.analysisRepo.FindDecisions(c.Request().Context(), recording.ID)
	if err != nil {
		return HandleError(h.logger, c, apperrors.ErrDBFailed("load decisions", err))
	}
	return HandleSuccess(h.logger, c, presenter.ToDecisionResponses(decisions))
}

// Topics handles GET /meetings/:id/topics
// @Summary      Meeting topics
// @Tags         Meetings
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Recording ID (UUID)"
// @Success      200  {array}  recordingdto.TopicResponse
// @Router       /meetings/{id}/topics [get]
func (h *Meeting) Topics(c echo.Context) error {
	recording, err := h.loadScoped(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	topics, err := h.analysisRepo.FindTopics(c.Request().Context(), recording.ID)
	if err != nil {
		return HandleError(h.logger, c, apperrors.ErrDBFailed("load topics", err))
	}
	return HandleSuccess(h.logger, c, presenter.ToTopicResponses(topics))
}

// UpdateActionItem handles PUT /meetings/:id/action-items/:actionId
// @Summary      Update an action item
// @Tags         Meetings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id        path      string  true  "Recording ID (UUID)"
// @Param        actionId  path      string  true  "Action item ID (UUID)"
// @Param        request   body      recordingdto.UpdateActionItemRequest  true  "Fields to update"
// @Success      200       {object}  recordingdto.ActionItemResponse
// @Router       /meetings/{id}/action-items/{actionId} [put]
func (h *Meeting) UpdateActionItem(c echo.Context) error {
	recording, err := h.loadScoped(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	actionID, err := parseIDParam(c, "actionId")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req recordingdto.UpdateActionItemRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument(err.Error()))
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument(err.Error()))
	}

	ctx := c.Request().Context()
	item, err := h.analysisRepo.FindActionItemByID(ctx, actionID)
	if err != nil {
		return HandleError(h.logger, c, apperrors.ErrDBFailed("load action item", err))
	}
	if item == nil || item.RecordingID != recording.ID {
		return HandleError(h.logger, c, apperrors.ErrActionItemNotFound(actionID.String()))
	}

	if req.Status != nil {
		item.Status = *req.Status
	}
	if req.Assignee != nil {
		item.Assignee = req.Assignee
	}
	if req.Priority != nil {
		item.Priority = *req.Priority
	}
	if req.DueDate != nil {
		item.DueDate = req.DueDate
	}

	if err := h.analysisRepo.UpdateActionItem(ctx, item); err != nil {
		return HandleError(h.logger, c, apperrors.ErrDBFailed("update action item", err))
	}

	return HandleSuccess(h.logger, c, presenter.ToActionItemResponse(item))
}

// Export handles POST /meetings/:id/export
// @Summary      Export a meeting
// @Description  Exports the full nested payload as JSON or the flattened action items as CSV
// @Tags         Meetings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path  string  true  "Recording ID (UUID)"
// @Param        request  body  recordingdto.ExportRequest  true  "Export format"
// @Success      200
// @Router       /meetings/{id}/export [post]
func (h *Meeting) Export(c echo.Context) error {
	recording, err := h.loadScoped(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req recordingdto.ExportRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument(err.Error()))
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrExportFormatInvalid(req.Format))
	}

	ctx := c.Request().Context()
	items, err := h.analysisRepo.FindActionItems(ctx, recording.ID)
	if err != nil {
		return HandleError(h.logger, c, apperrors.ErrDBFailed("load action items", err))
	}

	switch req.Format {
	case "json":
		participants, err := h.participantRepo.FindByRecording(ctx, recording.ID)
		if err != nil {
			return HandleError(h.logger, c, apperrors.ErrDBFailed("load participants", err))
		}
		decisions, err := h.analysisRepo.FindDecisions(ctx, recording.ID)
		if err != nil {
			return HandleError(h.logger, c, apperrors.ErrDBFailed("load decisions", err))
		}
		topics, err := h.analysisRepo.FindTopics(ctx, recording.ID)
		if err != nil {
			return HandleError(h.logger, c, apperrors.ErrDBFailed("load topics", err))
		}
		return HandleSuccess(h.logger, c, presenter.ToExportResponse(recording, participants, items, decisions, topics))

	case "csv":
		return h.exportCSV(c, recording, items)

	default:
		return HandleError(h.logger, c, apperrors.ErrExportFormatInvalid(req.Format))
	}
}

// exportCSV streams the flattened action items as a CSV attachment
func (h *Meeting) exportCSV(c echo.Context, recording *entities.Recording, items []*entities.ActionItem) error {
	c.Response().Header().Set(echo.HeaderContentType, "text/csv")
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="meeting-export.csv"`)
	c.Response().WriteHeader(http.StatusOK)

	w := csv.NewWriter(c.Response())
	if err := w.Write([]string{"recording_id", "title", "task", "assignee", "speaker", "due_date", "priority", "status"}); err != nil {
		return err
	}
	for _, item := range items {
		row := []string{
			recording.ID.String(),
			recording.Title,
			item.Task,
			derefString(item.Assignee),
			derefString(item.Speaker),
			derefString(item.DueDate),
			item.Priority,
			item.Status,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// loadScoped loads the recording and enforces organization scoping
func (h *Meeting) loadScoped(c echo.Context) (*entities.Recording, error) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return nil, err
	}

	organizationID, _, err := requestScope(c)
	if err != nil {
		return nil, err
	}

	recording, err := h.recordingRepo.FindByID(c.Request().Context(), id)
	if err != nil {
		return nil, apperrors.ErrDBFailed("load recording", err)
	}
	if recording == nil || recording.OrganizationID != organizationID {
		return nil, apperrors.ErrRecordingNotFound(id.String())
	}
	return recording, nil
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
