package handler

import (
	"context"
	"io"
	"net/http"
	"path"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "github.com/callcaps/callcaps-server/errors"
	recordingdto "github.com/callcaps/callcaps-server/internal/adapter/dto/recording"
	"github.com/callcaps/callcaps-server/internal/adapter/presenter"
	"github.com/callcaps/callcaps-server/internal/domain/entities"
	"github.com/callcaps/callcaps-server/internal/domain/repositories"
	"github.com/callcaps/callcaps-server/internal/infrastructure/storage"
	"github.com/callcaps/callcaps-server/internal/usecase/processing"
)

// MediaStore is the blob storage surface the recording handler needs
type MediaStore interface {
	UploadFile(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) error
	OpenObject(ctx context.Context, objectName string) (io.ReadSeekCloser, *storage.ObjectInfo, error)
}

// Recording handles recording-related HTTP requests
type Recording struct {
	recordingRepo   repositories.RecordingRepository
	meetingTypeRepo repositories.MeetingTypeRepository
	participantRepo repositories.ParticipantRepository
	analysisRepo    repositories.AnalysisRepository
	queueRepo       repositories.QueueRepository
	media           MediaStore
	processor       *processing.Service
	logger          *zap.Logger
}

// NewRecordingHandler creates a new recording handler
func NewRecordingHandler(
	recordingRepo repositories.RecordingRepository,
	meetingTypeRepo repositories.MeetingTypeRepository,
	participantRepo repositories.ParticipantRepository,
	analysisRepo repositories.AnalysisRepository,
	queueRepo repositories.QueueRepository,
	media MediaStore,
	processor *processing.Service,
	logger *zap.Logger,
) *Recording {
	return &Recording{
		recordingRepo:   recordingRepo,
		meetingTypeRepo: meetingTypeRepo,
		participantRepo: participantRepo,
		analysisRepo:    analysisRepo,
		queueRepo:       queueRepo,
		media:           media,
		processor:       processor,
		logger:          logger,
	}
}

// List handles GET /call-recordings
// @Summary      List call recordings
// @Description  Gets a paginated list of the organization's recordings
// @Tags         Recordings
// @Produce      json
// @Security     BearerAuth
// @Param        status        query  string  false  "Status filter"
// @Param        meeting_type  query  string  false  "Meeting type ID filter"
// @Param        search        query  string  false  "Search by title"
// @Param        start_date    query  string  false  "Created-after filter (RFC3339)"
// @Param        end_date      query  string  false  "Created-before filter (RFC3339)"
// @Param        limit         query  int     false  "Page size (default 20, max 100)"
// @Param        offset        query  int     false  "Page offset"
// @Success      200  {object}  recordingdto.RecordingListResponse
// @Router       /call-recordings [get]
func (h *Recording) List(c echo.Context) error {
	var req recordingdto.ListRecordingsRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument(err.Error()))
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument(err.Error()))
	}

	organizationID, _, err := requestScope(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	filters, err := buildRecordingFilters(organizationID, &req)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	recordings, total, err := h.recordingRepo.List(c.Request().Context(), filters)
	if err != nil {
		return HandleError(h.logger, c, apperrors.ErrDBFailed("list recordings", err))
	}

	return HandleSuccess(h.logger, c, presenter.ToRecordingListResponse(recordings, total, filters.Limit, filters.Offset))
}

// Get handles GET /call-recordings/:id
// @Summary      Get recording details
// @Description  Gets a recording with its participants, action items, decisions and topics
// @Tags         Recordings
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Recording ID (UUID)"
// @Success      200  {object}  recordingdto.RecordingDetailResponse
// @Router       /call-recordings/{id} [get]
func (h *Recording) Get(c echo.Context) error {
	recording, err := h.loadScoped(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	ctx := c.Request().Context()

	participants, err := h.participantRepo.FindByRecording(ctx, recording.ID)
	if err != nil {
		return HandleError(h.logger, c, apperrors.ErrDBFailed("load participants", err))
	}
	actionItems, err := h.analysisRepo.FindActionItems(ctx, recording.ID)
	if err != nil {
		return HandleError(h.logger, c, apperrors.ErrDBFailed("load action items", err))
	}
	decisions, err := h.analysisRepo.FindDecisions(ctx, recording.ID)
	if err != nil {
		return HandleError(h.logger, c, apperrors.ErrDBFailed("load decisions", err))
	}
	topics, err := h.analysisRepo.FindTopics(ctx, recording.ID)
	if err != nil {
		return HandleError(h.logger, c, apperrors.ErrDBFailed("load topics", err))
	}
	insights, err := h.analysisRepo.FindTaskInsights(ctx, recording.ID)
	if err != nil {
		return HandleError(h.logger, c, apperrors.ErrDBFailed("load task insights", err))
	}

	return HandleSuccess(h.logger, c, &recordingdto.RecordingDetailResponse{
		Recording:    presenter.ToRecordingResponse(recording),
		Participants: presenter.ToParticipantResponses(participants),
		ActionItems:  presenter.ToActionItemResponses(actionItems),
		Decisions:    presenter.ToDecisionResponses(decisions),
		Topics:       presenter.ToTopicResponses(topics),
		TaskInsights: presenter.ToTaskInsightResponses(insights),
	})
}

// Create handles POST /call-recordings
// @Summary      Create a recording
// @Description  Creates a recording metadata row without media
// @Tags         Recordings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      recordingdto.CreateRecordingRequest  true  "Recording metadata"
// @Success      200      {object}  recordingdto.RecordingResponse
// @Router       /call-recordings [post]
func (h *Recording) Create(c echo.Context) error {
	var req recordingdto.CreateRecordingRequest
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

	recording, err := h.buildRecording(c.Request().Context(), organizationID, memberID, &req)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	if err := h.recordingRepo.Create(c.Request().Context(), recording); err != nil {
		return HandleError(h.logger, c, apperrors.ErrDBFailed("create recording", err))
	}

	h.enqueueTranscribe(c.Request().Context(), recording.ID)

	return HandleSuccess(h.logger, c, presenter.ToRecordingResponse(recording))
}

// Upload handles POST /call-recordings/upload
// @Summary      Upload a recording with media
// @Description  Creates a recording from a multipart upload and stores its media blob
// @Tags         Recordings
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file   formData  file    true   "Media file"
// @Param        title  formData  string  false  "Recording title (defaults to file name)"
// @Success      200    {object}  recordingdto.RecordingResponse
// @Router       /call-recordings/upload [post]
func (h *Recording) Upload(c echo.Context) error {
	organizationID, memberID, err := requestScope(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument("file is required"))
	}

	title := c.FormValue("title")
	if title == "" {
		title = fileHeader.Filename
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	req := recordingdto.CreateRecordingRequest{Title: title, MimeType: mimeType}
	if meetingTypeID := c.FormValue("meeting_type_id"); meetingTypeID != "" {
		req.MeetingTypeID = &meetingTypeID
	}
	if caseID := c.FormValue("case_id"); caseID != "" {
		req.CaseID = &caseID
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument(err.Error()))
	}

	ctx := c.Request().Context()
	recording, err := h.buildRecording(ctx, organizationID, memberID, &req)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	src, err := fileHeader.Open()
	if err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument("cannot read uploaded file"))
	}
	defer src.Close()

	storageKey := "media/" + recording.ID.String() + path.Ext(fileHeader.Filename)
	if err := h.media.UploadFile(ctx, storageKey, src, fileHeader.Size, mimeType); err != nil {
		return HandleError(h.logger, c, apperrors.ErrStorageFailed("upload media", err))
	}
	recording.StorageKey = &storageKey

	if err := h.recordingRepo.Create(ctx, recording); err != nil {
		return HandleError(h.logger, c, apperrors.ErrDBFailed("create recording", err))
	}

	h.enqueueTranscribe(ctx, recording.ID)

	if h.logger != nil {
		h.logger.Info("recording uploaded",
			zap.String("recording_id", recording.ID.String()),
			zap.String("storage_key", storageKey),
			zap.Int64("size", fileHeader.Size),
		)
	}

	return HandleSuccess(h.logger, c, presenter.ToRecordingResponse(recording))
}

// Process handles POST /call-recordings/:id/process
// @Summary      Process a recording
// @Description  Runs the requested pipeline stages (transcribe, analyze or all)
// @Tags         Recordings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string  true  "Recording ID (UUID)"
// @Param        request  body      recordingdto.ProcessRecordingRequest  false  "Task selection"
// @Success      200      {object}  recordingdto.ProcessResponse
// @Router       /call-recordings/{id}/process [post]
func (h *Recording) Process(c echo.Context) error {
	recording, err := h.loadScoped(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req recordingdto.ProcessRecordingRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument(err.Error()))
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument(err.Error()))
	}

	result, err := h.processor.ProcessRecording(c.Request().Context(), recording.ID, entities.ProcessingTask(req.Task))
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, &recordingdto.ProcessResponse{
		Success: result.Success,
		Status:  string(result.Status),
		Error:   result.Error,
	})
}

// StreamVideo handles GET /call-recordings/:id/video
// @Summary      Stream recording media
// @Description  Proxies the stored media blob with range support
// @Tags         Recordings
// @Produce      octet-stream
// @Security     BearerAuth
// @Param        id  path  string  true  "Recording ID (UUID)"
// @Success      200
// @Router       /call-recordings/{id}/video [get]
func (h *Recording) StreamVideo(c echo.Context) error {
	recording, err := h.loadScoped(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	if recording.StorageKey == nil || *recording.StorageKey == "" {
		return HandleError(h.logger, c, apperrors.ErrMissingMedia(recording.ID.String()))
	}

	obj, info, err := h.media.OpenObject(c.Request().Context(), *recording.StorageKey)
	if err != nil {
		return HandleError(h.logger, c, apperrors.ErrStorageFailed("open media", err))
	}
	defer obj.Close()

	contentType := info.ContentType
	if contentType == "" {
		contentType = recording.MimeType
	}
	c.Response().Header().Set(echo.HeaderContentType, contentType)

	// http.ServeContent handles Range and conditional headers
	http.ServeContent(c.Response(), c.Request(), recording.Title, info.ModTime, obj)
	return nil
}

// loadScoped loads the recording and enforces organization scoping
func (h *Recording) loadScoped(c echo.Context) (*entities.Recording, error) {
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

// buildRecording assembles a new Recording entity from a create request
func (h *Recording) buildRecording(ctx context.Context, organizationID, memberID uuid.UUID, req *recordingdto.CreateRecordingRequest) (*entities.Recording, error) {
	recording := &entities.Recording{
		ID:             uuid.New(),
		OrganizationID: organizationID,
		MemberID:       memberID,
		Title:          req.Title,
		MimeType:       req.MimeType,
		DurationMs:     req.DurationMs,
		Status:         entities.RecordingStatusUploaded,
	}
	if recording.MimeType == "" {
		recording.MimeType = "audio/mpeg"
	}

	if req.CaseID != nil {
		caseID, err := uuid.Parse(*req.CaseID)
		if err != nil {
			return nil, apperrors.ErrInvalidArgument("case_id must be a valid UUID")
		}
		recording.CaseID = &caseID
	}

	if req.MeetingTypeID != nil {
		meetingTypeID, err := uuid.Parse(*req.MeetingTypeID)
		if err != nil {
			return nil, apperrors.ErrInvalidArgument("meeting_type_id must be a valid UUID")
		}
		meetingType, err := h.meetingTypeRepo.FindByID(ctx, meetingTypeID)
		if err != nil {
			return nil, apperrors.ErrDBFailed("load meeting type", err)
		}
		if meetingType == nil || !meetingType.IsActive {
			return nil, apperrors.ErrMeetingTypeNotFound(meetingTypeID.String())
		}
		recording.MeetingTypeID = &meetingTypeID
	}

	if req.StartTime != nil {
		startTime, err := time.Parse(time.RFC3339, *req.StartTime)
		if err != nil {
			return nil, apperrors.ErrInvalidArgument("start_time must be RFC3339")
		}
		recording.StartTime = &startTime
	}
	if req.EndTime != nil {
		endTime, err := time.Parse(time.RFC3339, *req.EndTime)
		if err != nil {
			return nil, apperrors.ErrInvalidArgument("end_time must be RFC3339")
		}
		recording.EndTime = &endTime
	}
	if recording.DurationMs == nil && recording.StartTime != nil && recording.EndTime != nil {
		d := recording.EndTime.Sub(*recording.StartTime).Milliseconds()
		recording.DurationMs = &d
	}

	return recording, nil
}

// enqueueTranscribe creates the pending transcribe queue entry for a new
// recording. Queue bookkeeping failures are logged, never fatal.
func (h *Recording) enqueueTranscribe(ctx context.Context, recordingID uuid.UUID) {
	entry := &entities.ProcessingQueueEntry{
		ID:          uuid.New(),
		RecordingID: recordingID,
		Task:        entities.ProcessingTaskTranscribe,
		Status:      entities.QueueStatusPending,
	}
	if err := h.queueRepo.Create(ctx, entry); err != nil && h.logger != nil {
		h.logger.Warn("failed to enqueue transcribe task",
			zap.String("recording_id", recordingID.String()),
			zap.Error(err),
		)
	}
}

// buildRecordingFilters converts a list request to repository filters
func buildRecordingFilters(organizationID uuid.UUID, req *recordingdto.ListRecordingsRequest) (repositories.RecordingFilters, error) {
	filters := repositories.RecordingFilters{
		OrganizationID: organizationID,
		Search:         req.Search,
		Limit:          req.Limit,
		Offset:         req.Offset,
	}

	if req.Status != nil {
		status := entities.RecordingStatus(*req.Status)
		filters.Status = &status
	}
	if req.MeetingType != nil {
		meetingTypeID, err := uuid.Parse(*req.MeetingType)
		if err != nil {
			return filters, apperrors.ErrInvalidArgument("meeting_type must be a valid UUID")
		}
		filters.MeetingTypeID = &meetingTypeID
	}
	if req.StartDate != nil {
		startDate, err := time.Parse(time.RFC3339, *req.StartDate)
		if err != nil {
			return filters, apperrors.ErrInvalidArgument("start_date must be RFC3339")
		}
		filters.StartDate = &startDate
	}
	if req.EndDate != nil {
		endDate, err := time.Parse(time.RFC3339, *req.EndDate)
		if err != nil {
			return filters, apperrors.ErrInvalidArgument("end_date must be RFC3339")
		}
		filters.EndDate = &endDate
	}

	return filters, nil
}
