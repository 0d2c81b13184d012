package handler

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "github.com/callcaps/callcaps-server/errors"
	meetingtypedto "github.com/callcaps/callcaps-server/internal/adapter/dto/meetingtype"
	"github.com/callcaps/callcaps-server/internal/adapter/presenter"
	"github.com/callcaps/callcaps-server/internal/domain/entities"
	"github.com/callcaps/callcaps-server/internal/domain/repositories"
)

// MeetingType handles meeting-type CRUD requests
type MeetingType struct {
	meetingTypeRepo repositories.MeetingTypeRepository
	logger          *zap.Logger
}

// NewMeetingTypeHandler creates a new meeting type handler
func NewMeetingTypeHandler(meetingTypeRepo repositories.MeetingTypeRepository, logger *zap.Logger) *MeetingType {
	return &MeetingType{
		meetingTypeRepo: meetingTypeRepo,
		logger:          logger,
	}
}

// List handles GET /call-recordings/meeting-types
// @Summary      List meeting types
// @Description  Gets the caller's active meeting types
// @Tags         MeetingTypes
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  meetingtypedto.MeetingTypeListResponse
// @Router       /call-recordings/meeting-types [get]
func (h *MeetingType) List(c echo.Context) error {
	_, memberID, err := requestScope(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	types, err := h.meetingTypeRepo.ListByMember(c.Request().Context(), memberID)
	if err != nil {
		return HandleError(h.logger, c, apperrors.ErrDBFailed("list meeting types", err))
	}

	return HandleSuccess(h.logger, c, presenter.ToMeetingTypeListResponse(types))
}

// Create handles POST /call-recordings/meeting-types
// @Summary      Create a meeting type
// @Description  Creates a member-scoped analysis template; names are unique per member
// @Tags         MeetingTypes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      meetingtypedto.CreateMeetingTypeRequest  true  "Meeting type"
// @Success      200      {object}  meetingtypedto.MeetingTypeResponse
// @Router       /call-recordings/meeting-types [post]
func (h *MeetingType) Create(c echo.Context) error {
	var req meetingtypedto.CreateMeetingTypeRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument(err.Error()))
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument(err.Error()))
	}

	organizationID, memberID, err := requestScope(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	ctx := c.Request().Context()

	existing, err := h.meetingTypeRepo.FindByName(ctx, memberID, req.Name)
	if err != nil {
		return HandleError(h.logger, c, apperrors.ErrDBFailed("check meeting type name", err))
	}
	if existing != nil {
		return HandleError(h.logger, c, apperrors.ErrAlreadyExists("meeting type "+req.Name))
	}

	meetingType := &entities.MeetingType{
		ID:             uuid.New(),
		OrganizationID: organizationID,
		MemberID:       memberID,
		Name:           req.Name,
		DisplayName:    req.DisplayName,
		SystemPrompt:   req.SystemPrompt,
		OutputFormat:   req.OutputFormat,
		IsActive:       true,
	}
	if meetingType.DisplayName == "" {
		meetingType.DisplayName = req.Name
	}
	if meetingType.OutputFormat == "" {
		meetingType.OutputFormat = entities.MeetingTypeOutputJSON
	}

	if err := h.meetingTypeRepo.Create(ctx, meetingType); err != nil {
		return HandleError(h.logger, c, apperrors.ErrDBFailed("create meeting type", err))
	}

	return HandleSuccess(h.logger, c, presenter.ToMeetingTypeResponse(meetingType))
}

// Get handles GET /call-recordings/meeting-types/:id
// @Summary      Get a meeting type
// @Tags         MeetingTypes
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Meeting type ID (UUID)"
// @Success      200  {object}  meetingtypedto.MeetingTypeResponse
// @Router       /call-recordings/meeting-types/{id} [get]
func (h *MeetingType) Get(c echo.Context) error {
	meetingType, err := h.loadScoped(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToMeetingTypeResponse(meetingType))
}

// Update handles PUT /call-recordings/meeting-types/:id
// @Summary      Update a meeting type
// @Tags         MeetingTypes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string  true  "Meeting type ID (UUID)"
// @Param        request  body      meetingtypedto.UpdateMeetingTypeRequest  true  "Fields to update"
// @Success      200      {object}  meetingtypedto.MeetingTypeResponse
// @Router       /call-recordings/meeting-types/{id} [put]
func (h *MeetingType) Update(c echo.Context) error {
	meetingType, err := h.loadScoped(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req meetingtypedto.UpdateMeetingTypeRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument(err.Error()))
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument(err.Error()))
	}

	if req.DisplayName != nil {
		meetingType.DisplayName = *req.DisplayName
	}
	if req.SystemPrompt != nil {
		meetingType.SystemPrompt = req.SystemPrompt
	}
	if req.OutputFormat != nil {
		meetingType.OutputFormat = *req.OutputFormat
	}

	if err := h.meetingTypeRepo.Update(c.Request().Context(), meetingType); err != nil {
		return HandleError(h.logger, c, apperrors.ErrDBFailed("update meeting type", err))
	}

	return HandleSuccess(h.logger, c, presenter.ToMeetingTypeResponse(meetingType))
}

// Delete handles DELETE /call-recordings/meeting-types/:id
// @Summary      Delete a meeting type
// @Description  Soft delete: flips is_active so existing recordings keep their reference
// @Tags         MeetingTypes
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Meeting type ID (UUID)"
// @Success      200
// @Router       /call-recordings/meeting-types/{id} [delete]
func (h *MeetingType) Delete(c echo.Context) error {
	meetingType, err := h.loadScoped(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	if err := h.meetingTypeRepo.Deactivate(c.Request().Context(), meetingType.ID); err != nil {
		return HandleError(h.logger, c, apperrors.ErrDBFailed("deactivate meeting type", err))
	}

	return HandleSuccess(h.logger, c, map[string]string{"id": meetingType.ID.String(), "status": "deleted"})
}

// loadScoped loads the meeting type and enforces member scoping
func (h *MeetingType) loadScoped(c echo.Context) (*entities.MeetingType, error) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return nil, err
	}

	_, memberID, err := requestScope(c)
	if err != nil {
		return nil, err
	}

	meetingType, err := h.meetingTypeRepo.FindByID(c.Request().Context(), id)
	if err != nil {
		return nil, apperrors.ErrDBFailed("load meeting type", err)
	}
	if meetingType == nil || !meetingType.IsActive || meetingType.MemberID != memberID {
		return nil, apperrors.ErrMeetingTypeNotFound(id.String())
	}
	return meetingType, nil
}
