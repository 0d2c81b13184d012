package processing

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "github.com/callcaps/callcaps-server/errors"
	"github.com/callcaps/callcaps-server/internal/domain/entities"
	"github.com/callcaps/callcaps-server/internal/domain/repositories"
	"github.com/callcaps/callcaps-server/internal/infrastructure/cache"
)

// Transcriber is the transcription stage contract
type Transcriber interface {
	TranscribeWithSpeakerDiarization(ctx context.Context, media []byte, mimeType, displayName, kind string) (*TranscriptionResult, error)
}

// Analyzer is the analysis stage contract
type Analyzer interface {
	AnalyzeMeetingIntelligence(ctx context.Context, title, transcript string, segments []entities.TranscriptSegment) (*entities.AnalysisResult, error)
	AnalyzeWithCustomPrompt(ctx context.Context, transcript string, segments []entities.TranscriptSegment, systemPrompt, outputFormat string) (*entities.CustomAnalysisResult, error)
}

// BlobStore is the blob storage surface the orchestrator needs
type BlobStore interface {
	DownloadFile(ctx context.Context, objectName string) ([]byte, error)
	UploadText(ctx context.Context, objectName, content, contentType string) error
	GetFileURL(ctx context.Context, objectName string, expiry time.Duration) (string, error)
}

// ProcessResult is what every processing invocation returns to its caller.
// Stage failures are reported here, never thrown past the orchestrator.
type ProcessResult struct {
	Success bool                     `json:"success"`
	Status  entities.RecordingStatus `json:"status"`
	Error   string                   `json:"error,omitempty"`
}

// Service drives a recording through the processing state machine:
// uploaded → transcribing → transcribed → analyzing → processed, with failed
// reachable from the transcribing and analyzing states. A failure is terminal
// for the invocation; retrying re-runs the requested stages from scratch.
type Service struct {
	recordingRepo   repositories.RecordingRepository
	meetingTypeRepo repositories.MeetingTypeRepository
	participantRepo repositories.ParticipantRepository
	analysisRepo    repositories.AnalysisRepository
	queueRepo       repositories.QueueRepository
	blobs           BlobStore
	transcriber     Transcriber
	analyzer        Analyzer
	insights        *InsightsService
	locks           cache.LockStore
	lockTTL         time.Duration
	logger          *zap.Logger
}

// NewService constructs the processing orchestrator
func NewService(
	recordingRepo repositories.RecordingRepository,
	meetingTypeRepo repositories.MeetingTypeRepository,
	participantRepo repositories.ParticipantRepository,
	analysisRepo repositories.AnalysisRepository,
	queueRepo repositories.QueueRepository,
	blobs BlobStore,
	transcriber Transcriber,
	analyzer Analyzer,
	insights *InsightsService,
	locks cache.LockStore,
	lockTTL time.Duration,
	logger *zap.Logger,
) *Service {
	return &Service{
		recordingRepo:   recordingRepo,
		meetingTypeRepo: meetingTypeRepo,
		participantRepo: participantRepo,
		analysisRepo:    analysisRepo,
		queueRepo:       queueRepo,
		blobs:           blobs,
		transcriber:     transcriber,
		analyzer:        analyzer,
		insights:        insights,
		locks:           locks,
		lockTTL:         lockTTL,
		logger:          logger,
	}
}

// ProcessRecording runs the requested pipeline stages for one recording.
// Pre-flight problems (unknown task, missing recording, a concurrent run
// holding the lock) return an error; once the pipeline starts, stage failures
// are recorded on the recording and reported through the ProcessResult.
func (s *Service) ProcessRecording(ctx context.Context, recordingID uuid.UUID, task entities.ProcessingTask) (*ProcessResult, error) {
	if task == "" {
		task = entities.ProcessingTaskAll
	}
	if !entities.ValidTask(task) {
		return nil, apperrors.ErrInvalidTaskType(string(task))
	}

	recording, err := s.recordingRepo.FindByID(ctx, recordingID)
	if err != nil {
		return nil, apperrors.ErrDBFailed("load recording", err)
	}
	if recording == nil {
		return nil, apperrors.ErrRecordingNotFound(recordingID.String())
	}

	lockKey := "processing:" + recordingID.String()
	acquired, err := s.locks.Acquire(ctx, lockKey, s.lockTTL)
	if err != nil {
		return nil, apperrors.ErrCacheFailed("acquire processing lock", err)
	}
	if !acquired {
		return nil, apperrors.ErrProcessingInFlight(recordingID.String())
	}
	defer func() {
		if err := s.locks.Release(context.WithoutCancel(ctx), lockKey); err != nil && s.logger != nil {
			s.logger.Warn("failed to release processing lock", zap.Error(err))
		}
	}()

	started := time.Now()
	if s.logger != nil {
		s.logger.Info("processing started",
			zap.String("recording_id", recordingID.String()),
			zap.String("task", string(task)),
		)
	}

	entries := s.claimQueueEntries(ctx, recording.ID, task)

	kind, customPrompt, outputFormat := s.resolveMeetingType(ctx, recording)

	var (
		transcript string
		segments   []entities.TranscriptSegment
		analysis   *entities.AnalysisResult
	)

	// Transcription stage
	if task == entities.ProcessingTaskTranscribe || task == entities.ProcessingTaskAll {
		recording.MarkTranscribing()
		if err := s.recordingRepo.Update(ctx, recording); err != nil {
			return s.failStage(ctx, recording, entries, apperrors.ErrDBFailed("update recording", err)), nil
		}

		if recording.StorageKey == nil || *recording.StorageKey == "" {
			return s.failStage(ctx, recording, entries, apperrors.ErrMissingMedia(recording.ID.String())), nil
		}

		media, err := s.blobs.DownloadFile(ctx, *recording.StorageKey)
		if err != nil {
			return s.failStage(ctx, recording, entries, apperrors.ErrStorageFailed("download media", err)), nil
		}

		result, err := s.transcriber.TranscribeWithSpeakerDiarization(ctx, media, recording.MimeType, recording.Title, kind)
		if err != nil {
			return s.failStage(ctx, recording, entries, err), nil
		}

		summary := SpeakerSummary(result.Segments)
		recording.MarkTranscribed(result.FullTranscript, result.Segments, summary)
		if err := s.recordingRepo.Update(ctx, recording); err != nil {
			return s.failStage(ctx, recording, entries, apperrors.ErrDBFailed("persist transcript", err)), nil
		}

		participants := make([]*entities.Participant, 0, len(summary))
		for _, stat := range summary {
			participants = append(participants, &entities.Participant{
				ID:          uuid.New(),
				RecordingID: recording.ID,
				DisplayName: stat.Speaker,
				Role:        entities.ParticipantRoleParticipant,
				TalkTime:    stat.TalkTime,
			})
		}
		if err := s.participantRepo.ReplaceForRecording(ctx, recording.ID, participants); err != nil {
			return s.failStage(ctx, recording, entries, apperrors.ErrDBFailed("replace participants", err)), nil
		}

		transcript = result.FullTranscript
		segments = result.Segments

		if s.logger != nil {
			s.logger.Info("transcription completed",
				zap.String("recording_id", recording.ID.String()),
				zap.Int("segments", len(segments)),
				zap.Int("speakers", len(summary)),
			)
		}
	}

	// Analysis stage
	if task == entities.ProcessingTaskAnalyze || task == entities.ProcessingTaskAll {
		if transcript == "" {
			// Not transcribed in this invocation: use the persisted transcript.
			// No implicit transcription is triggered.
			if recording.TranscriptText == nil || *recording.TranscriptText == "" {
				return s.failStage(ctx, recording, entries, apperrors.ErrNoTranscript(recording.ID.String())), nil
			}
			transcript = *recording.TranscriptText
			segments = recording.TranscriptSegments
		}

		recording.MarkAnalyzing()
		if err := s.recordingRepo.Update(ctx, recording); err != nil {
			return s.failStage(ctx, recording, entries, apperrors.ErrDBFailed("update recording", err)), nil
		}

		if customPrompt != "" {
			if err := s.runCustomAnalysis(ctx, recording, transcript, segments, customPrompt, outputFormat); err != nil {
				return s.failStage(ctx, recording, entries, err), nil
			}
		} else {
			analysis, err = s.runDefaultAnalysis(ctx, recording, transcript, segments)
			if err != nil {
				return s.failStage(ctx, recording, entries, err), nil
			}
		}

		if s.logger != nil {
			s.logger.Info("analysis completed", zap.String("recording_id", recording.ID.String()))
		}
	}

	recording.MarkProcessed()
	if err := s.recordingRepo.Update(ctx, recording); err != nil {
		return s.failStage(ctx, recording, entries, apperrors.ErrDBFailed("mark processed", err)), nil
	}

	// Reporting stage: a failure here never rolls back the processed status;
	// it is recorded on report_status instead.
	s.runReportStage(ctx, recording, kind, transcript, analysis)

	for _, entry := range entries {
		entry.MarkCompleted()
		if err := s.queueRepo.Update(ctx, entry); err != nil && s.logger != nil {
			s.logger.Warn("failed to complete queue entry", zap.Error(err))
		}
	}

	if s.logger != nil {
		s.logger.Info("processing completed",
			zap.String("recording_id", recording.ID.String()),
			zap.Duration("duration", time.Since(started)),
		)
	}

	return &ProcessResult{Success: true, Status: recording.Status}, nil
}

// coveredTasks lists the queue tasks a run settles: the run's own task plus
// the stage tasks an all run subsumes. Upload enqueues a transcribe entry,
// so an all run must settle that entry too instead of leaving it pending
// beside its own.
func coveredTasks(task entities.ProcessingTask) []entities.ProcessingTask {
	if task == entities.ProcessingTaskAll {
		return []entities.ProcessingTask{
			entities.ProcessingTaskAll,
			entities.ProcessingTaskTranscribe,
			entities.ProcessingTaskAnalyze,
		}
	}
	return []entities.ProcessingTask{task}
}

// claimQueueEntries finds every pending queue entry this run settles and
// marks them processing, creating the run's own entry when none is pending.
// Queue bookkeeping failures are logged, never fatal.
func (s *Service) claimQueueEntries(ctx context.Context, recordingID uuid.UUID, task entities.ProcessingTask) []*entities.ProcessingQueueEntry {
	var entries []*entities.ProcessingQueueEntry
	for _, covered := range coveredTasks(task) {
		entry, err := s.queueRepo.FindPendingByRecording(ctx, recordingID, covered)
		if err != nil {
			if s.logger != nil {
				s.logger.Warn("queue entry lookup failed", zap.Error(err))
			}
			continue
		}
		if entry == nil {
			if covered != task {
				continue
			}
			entry = &entities.ProcessingQueueEntry{
				ID:          uuid.New(),
				RecordingID: recordingID,
				Task:        task,
				Status:      entities.QueueStatusPending,
			}
			if err := s.queueRepo.Create(ctx, entry); err != nil {
				if s.logger != nil {
					s.logger.Warn("queue entry create failed", zap.Error(err))
				}
				continue
			}
		}

		entry.MarkProcessing()
		if err := s.queueRepo.Update(ctx, entry); err != nil && s.logger != nil {
			s.logger.Warn("queue entry update failed", zap.Error(err))
		}
		entries = append(entries, entry)
	}
	return entries
}

// resolveMeetingType loads the recording's configured meeting type, if any.
// Returns the recording kind (the meeting type name) plus the custom prompt
// and output format when one is configured.
func (s *Service) resolveMeetingType(ctx context.Context, recording *entities.Recording) (kind, customPrompt, outputFormat string) {
	if recording.MeetingTypeID == nil {
		return "", "", ""
	}

	meetingType, err := s.meetingTypeRepo.FindByID(ctx, *recording.MeetingTypeID)
	if err != nil || meetingType == nil {
		if err != nil && s.logger != nil {
			s.logger.Warn("meeting type lookup failed", zap.Error(err))
		}
		return "", "", ""
	}

	kind = meetingType.Name
	outputFormat = meetingType.OutputFormat
	if meetingType.SystemPrompt != nil {
		customPrompt = *meetingType.SystemPrompt
	}
	return kind, customPrompt, outputFormat
}

// runDefaultAnalysis runs the structured analysis and persists scalars plus
// the fan-out rows atomically.
func (s *Service) runDefaultAnalysis(ctx context.Context, recording *entities.Recording, transcript string, segments []entities.TranscriptSegment) (*entities.AnalysisResult, error) {
	analysis, err := s.analyzer.AnalyzeMeetingIntelligence(ctx, recording.Title, transcript, segments)
	if err != nil {
		return nil, err
	}

	actionItems := make([]*entities.ActionItem, 0, len(analysis.ActionItems))
	for _, item := range analysis.ActionItems {
		actionItems = append(actionItems, &entities.ActionItem{
			ID:          uuid.New(),
			RecordingID: recording.ID,
			Task:        item.Task,
			Assignee:    item.Assignee,
			Speaker:     item.Speaker,
			DueDate:     item.DueDate,
			Priority:    defaultString(item.Priority, entities.ActionItemPriorityMedium),
			Context:     item.Context,
			Status:      entities.ActionItemStatusPending,
		})
	}

	decisions := make([]*entities.Decision, 0, len(analysis.Decisions))
	for _, d := range analysis.Decisions {
		decisions = append(decisions, &entities.Decision{
			ID:                 uuid.New(),
			RecordingID:        recording.ID,
			Decision:           d.Decision,
			DecisionMaker:      d.DecisionMaker,
			Context:            d.Context,
			Impact:             defaultString(d.Impact, entities.DecisionImpactMedium),
			ImplementationDate: d.ImplementationDate,
		})
	}

	topics := make([]*entities.Topic, 0, len(analysis.Topics))
	topicNames := make([]string, 0, len(analysis.Topics))
	for _, t := range analysis.Topics {
		topics = append(topics, &entities.Topic{
			ID:          uuid.New(),
			RecordingID: recording.ID,
			Name:        t.Name,
			Importance:  t.Importance,
			Speakers:    t.Speakers,
		})
		topicNames = append(topicNames, t.Name)
	}

	caseID := s.insights.ResolveCase(ctx, recording, analysis.CaseIdentifier)
	taskInsights := s.insights.BuildTaskInsights(ctx, recording, caseID, actionItems)

	// Action items live in their own table; the stored payload omits them
	stored := *analysis
	stored.ActionItems = nil
	payload, err := json.Marshal(stored)
	if err != nil {
		return nil, apperrors.ErrInternal(err)
	}

	recording.AIAnalysis = payload
	recording.AISummary = &analysis.Summary
	recording.KeyTopics = topicNames
	if analysis.Sentiment != "" {
		sentiment := analysis.Sentiment
		recording.Sentiment = &sentiment
	}
	recording.CaseIdentifier = analysis.CaseIdentifier

	if err := s.analysisRepo.ReplaceFanOut(ctx, recording.ID, actionItems, decisions, topics, taskInsights); err != nil {
		return nil, apperrors.ErrDBFailed("persist analysis fan-out", err)
	}
	if err := s.recordingRepo.Update(ctx, recording); err != nil {
		return nil, apperrors.ErrDBFailed("persist analysis", err)
	}

	return analysis, nil
}

// runCustomAnalysis runs a meeting type's custom prompt and stores its
// result payload on the recording. No fan-out rows are produced: custom
// prompts do not promise the structured schema.
func (s *Service) runCustomAnalysis(ctx context.Context, recording *entities.Recording, transcript string, segments []entities.TranscriptSegment, customPrompt, outputFormat string) error {
	result, err := s.analyzer.AnalyzeWithCustomPrompt(ctx, transcript, segments, customPrompt, outputFormat)
	if err != nil {
		return err
	}

	payload, err := json.Marshal(result)
	if err != nil {
		return apperrors.ErrInternal(err)
	}
	recording.AIAnalysis = payload

	if summary, ok := result.Parsed["summary"].(string); ok && summary != "" {
		recording.AISummary = &summary
	}

	if err := s.recordingRepo.Update(ctx, recording); err != nil {
		return apperrors.ErrDBFailed("persist custom analysis", err)
	}
	return nil
}

// runReportStage renders, uploads and records the Markdown report
func (s *Service) runReportStage(ctx context.Context, recording *entities.Recording, kind, transcript string, analysis *entities.AnalysisResult) {
	if transcript == "" && recording.TranscriptText != nil {
		transcript = *recording.TranscriptText
	}

	report := GenerateReport(recording, kind, transcript, analysis)
	reportKey := "reports/" + recording.ID.String() + ".md"

	if err := s.blobs.UploadText(ctx, reportKey, report, "text/markdown"); err != nil {
		s.recordReportFailure(ctx, recording, err)
		return
	}

	url, err := s.blobs.GetFileURL(ctx, reportKey, 24*time.Hour)
	if err != nil {
		s.recordReportFailure(ctx, recording, err)
		return
	}

	recording.ReportKey = &reportKey
	recording.ReportURL = &url
	recording.SetReportStatus(entities.ReportStatusCompleted)
	if err := s.recordingRepo.Update(ctx, recording); err != nil && s.logger != nil {
		s.logger.Warn("failed to persist report reference", zap.Error(err))
	}
}

func (s *Service) recordReportFailure(ctx context.Context, recording *entities.Recording, cause error) {
	if s.logger != nil {
		s.logger.Error("report stage failed",
			zap.String("recording_id", recording.ID.String()),
			zap.Error(cause),
		)
	}
	recording.SetReportStatus(entities.ReportStatusFailed)
	if err := s.recordingRepo.Update(ctx, recording); err != nil && s.logger != nil {
		s.logger.Warn("failed to persist report status", zap.Error(err))
	}
}

// failStage records a terminal stage failure on the recording and every
// claimed queue entry and converts it into an unsuccessful result for the
// caller.
func (s *Service) failStage(ctx context.Context, recording *entities.Recording, entries []*entities.ProcessingQueueEntry, stageErr error) *ProcessResult {
	if s.logger != nil {
		s.logger.Error("processing stage failed",
			zap.String("recording_id", recording.ID.String()),
			zap.Error(stageErr),
		)
	}

	recording.MarkFailed(stageErr.Error())
	if err := s.recordingRepo.Update(ctx, recording); err != nil && s.logger != nil {
		s.logger.Warn("failed to persist failure state", zap.Error(err))
	}

	for _, entry := range entries {
		entry.MarkFailed(stageErr.Error())
		if err := s.queueRepo.Update(ctx, entry); err != nil && s.logger != nil {
			s.logger.Warn("failed to persist queue failure", zap.Error(err))
		}
	}

	return &ProcessResult{Success: false, Status: recording.Status, Error: stageErr.Error()}
}

func defaultString(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
