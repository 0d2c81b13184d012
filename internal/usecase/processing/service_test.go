package processing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/callcaps/callcaps-server/errors"
	"github.com/callcaps/callcaps-server/internal/domain/entities"
	"github.com/callcaps/callcaps-server/internal/infrastructure/cache"
	"github.com/callcaps/callcaps-server/pkg/ai"
)

type orchestratorFixture struct {
	svc          *Service
	recordings   *fakeRecordingRepo
	meetingTypes *fakeMeetingTypeRepo
	participants *fakeParticipantRepo
	analysis     *fakeAnalysisRepo
	queue        *fakeQueueRepo
	blobs        *fakeBlobStore
	provider     *fakeProvider
	locks        *cache.MemoryLockStore
}

func newFixture() *orchestratorFixture {
	provider := &fakeProvider{
		fileStates:            []string{ai.FileStateActive},
		transcriptionResponse: fencedSegments,
		analysisResponse:      analysisJSON,
	}
	cfg := testGeminiConfig()

	f := &orchestratorFixture{
		recordings:   newFakeRecordingRepo(),
		meetingTypes: newFakeMeetingTypeRepo(),
		participants: newFakeParticipantRepo(),
		analysis:     newFakeAnalysisRepo(),
		queue:        &fakeQueueRepo{},
		blobs:        newFakeBlobStore(),
		provider:     provider,
		locks:        cache.NewMemoryLockStore(),
	}
	insights := NewInsightsService(newFakeMemberRepo(), newFakeCaseRepo(), nil)
	f.svc = NewService(
		f.recordings,
		f.meetingTypes,
		f.participants,
		f.analysis,
		f.queue,
		f.blobs,
		NewTranscriptionService(provider, cfg, nil),
		NewAnalysisService(provider, cfg, nil),
		insights,
		f.locks,
		time.Minute,
		nil,
	)
	return f
}

func (f *orchestratorFixture) addRecording() *entities.Recording {
	duration := int64(600000)
	key := "media/rec-1.webm"
	recording := &entities.Recording{
		ID:             uuid.New(),
		OrganizationID: uuid.New(),
		MemberID:       uuid.New(),
		Title:          "Discovery Call",
		MimeType:       "video/webm",
		DurationMs:     &duration,
		StorageKey:     &key,
		Status:         entities.RecordingStatusUploaded,
	}
	f.recordings.recordings[recording.ID] = recording
	f.blobs.files[key] = []byte("fake-webm-bytes")
	return recording
}

func TestProcessRecordingEndToEnd(t *testing.T) {
	f := newFixture()
	recording := f.addRecording()

	result, err := f.svc.ProcessRecording(context.Background(), recording.ID, entities.ProcessingTaskAll)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Success {
		t.Fatalf("expected success, got error %q", result.Error)
	}

	if recording.Status != entities.RecordingStatusProcessed {
		t.Errorf("status = %q, want processed", recording.Status)
	}
	if recording.TranscriptText == nil || *recording.TranscriptText == "" {
		t.Error("expected non-empty transcript text")
	}

	participants, _ := f.participants.FindByRecording(context.Background(), recording.ID)
	if len(participants) != 2 {
		t.Errorf("expected one participant per distinct speaker, got %d", len(participants))
	}

	if recording.ReportURL == nil || *recording.ReportURL == "" {
		t.Error("expected report URL on the recording")
	}
	if recording.ReportStatus == nil || *recording.ReportStatus != entities.ReportStatusCompleted {
		t.Error("expected report status completed")
	}

	if len(f.queue.entries) != 1 || f.queue.entries[0].Status != entities.QueueStatusCompleted {
		t.Errorf("expected a completed queue entry, got %+v", f.queue.entries)
	}
	if f.queue.entries[0].DurationMs == nil {
		t.Error("completed queue entry must record its duration")
	}

	items, _ := f.analysis.FindActionItems(context.Background(), recording.ID)
	if len(items) != 1 {
		t.Errorf("expected fan-out action items, got %d", len(items))
	}
}

func TestProcessRecordingAllSettlesUploadedTranscribeEntry(t *testing.T) {
	f := newFixture()
	recording := f.addRecording()
	enqueued := &entities.ProcessingQueueEntry{
		ID:          uuid.New(),
		RecordingID: recording.ID,
		Task:        entities.ProcessingTaskTranscribe,
		Status:      entities.QueueStatusPending,
	}
	f.queue.entries = append(f.queue.entries, enqueued)

	result, err := f.svc.ProcessRecording(context.Background(), recording.ID, entities.ProcessingTaskAll)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Success {
		t.Fatalf("expected success, got %q", result.Error)
	}

	if enqueued.Status != entities.QueueStatusCompleted {
		t.Errorf("upload-enqueued transcribe entry must complete with the all run, got %q", enqueued.Status)
	}
	for _, entry := range f.queue.entries {
		if entry.Status != entities.QueueStatusCompleted {
			t.Errorf("entry for task %q left non-terminal: %q", entry.Task, entry.Status)
		}
	}
}

func TestProcessRecordingInvalidTask(t *testing.T) {
	f := newFixture()
	recording := f.addRecording()

	_, err := f.svc.ProcessRecording(context.Background(), recording.ID, entities.ProcessingTask("everything"))
	var appErr apperrors.AppError
	if !errors.As(err, &appErr) || appErr.Code != apperrors.ErrorCode_INVALID_TASK_TYPE {
		t.Errorf("expected INVALID_TASK_TYPE, got %v", err)
	}
}

func TestProcessRecordingNotFound(t *testing.T) {
	f := newFixture()

	_, err := f.svc.ProcessRecording(context.Background(), uuid.New(), entities.ProcessingTaskAll)
	var appErr apperrors.AppError
	if !errors.As(err, &appErr) || appErr.Code != apperrors.ErrorCode_RECORDING_NOT_FOUND {
		t.Errorf("expected RECORDING_NOT_FOUND, got %v", err)
	}
}

func TestProcessRecordingLockContention(t *testing.T) {
	f := newFixture()
	recording := f.addRecording()

	acquired, _ := f.locks.Acquire(context.Background(), "processing:"+recording.ID.String(), time.Minute)
	if !acquired {
		t.Fatal("test setup: could not pre-acquire lock")
	}

	_, err := f.svc.ProcessRecording(context.Background(), recording.ID, entities.ProcessingTaskAll)
	var appErr apperrors.AppError
	if !errors.As(err, &appErr) || appErr.Code != apperrors.ErrorCode_PROCESSING_IN_FLIGHT {
		t.Errorf("expected PROCESSING_IN_FLIGHT, got %v", err)
	}
}

func TestProcessRecordingTranscriptionFailure(t *testing.T) {
	f := newFixture()
	recording := f.addRecording()
	f.provider.generateErr = errors.New("model unavailable")

	result, err := f.svc.ProcessRecording(context.Background(), recording.ID, entities.ProcessingTaskAll)
	if err != nil {
		t.Fatalf("stage failures must not surface as errors: %v", err)
	}
	if result.Success {
		t.Fatal("expected unsuccessful result")
	}
	if recording.Status != entities.RecordingStatusFailed {
		t.Errorf("status = %q, want failed", recording.Status)
	}
	if recording.ProcessingError == nil {
		t.Error("expected processing error recorded on the recording")
	}
	if len(f.queue.entries) != 1 || f.queue.entries[0].Status != entities.QueueStatusFailed {
		t.Errorf("queue entry must reach failed, got %+v", f.queue.entries)
	}
}

func TestProcessRecordingAnalyzeWithoutTranscript(t *testing.T) {
	f := newFixture()
	recording := f.addRecording()

	result, err := f.svc.ProcessRecording(context.Background(), recording.ID, entities.ProcessingTaskAnalyze)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Success {
		t.Fatal("analyze without a stored transcript must fail")
	}
	if recording.Status != entities.RecordingStatusFailed {
		t.Errorf("status = %q, want failed", recording.Status)
	}
}

func TestProcessRecordingAnalyzeFromStoredTranscript(t *testing.T) {
	f := newFixture()
	recording := f.addRecording()
	stored := "Speaker 1: stored transcript line"
	recording.TranscriptText = &stored
	recording.TranscriptSegments = []entities.TranscriptSegment{{Speaker: "Speaker 1", Text: "stored transcript line"}}

	result, err := f.svc.ProcessRecording(context.Background(), recording.ID, entities.ProcessingTaskAnalyze)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Success {
		t.Fatalf("expected success, got %q", result.Error)
	}
	if f.provider.generateCalls != 1 {
		t.Errorf("expected exactly one provider call (analysis only), got %d", f.provider.generateCalls)
	}
	if recording.AISummary == nil || *recording.AISummary != "Discovery planning call." {
		t.Error("expected summary persisted from analysis")
	}
}

func TestProcessRecordingReportFailureKeepsProcessed(t *testing.T) {
	f := newFixture()
	recording := f.addRecording()
	f.blobs.uploadTextErr = errors.New("bucket unavailable")

	result, err := f.svc.ProcessRecording(context.Background(), recording.ID, entities.ProcessingTaskAll)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Success {
		t.Fatalf("report failure must not fail the run: %q", result.Error)
	}
	if recording.Status != entities.RecordingStatusProcessed {
		t.Errorf("status = %q, want processed", recording.Status)
	}
	if recording.ReportStatus == nil || *recording.ReportStatus != entities.ReportStatusFailed {
		t.Error("expected report_status=failed")
	}
	if recording.ReportURL != nil {
		t.Error("no report URL should be set on failure")
	}
}

func TestProcessRecordingCustomPromptSkipsFanOut(t *testing.T) {
	f := newFixture()
	recording := f.addRecording()

	prompt := "Summarize the call for the client file."
	meetingType := &entities.MeetingType{
		ID:           uuid.New(),
		MemberID:     recording.MemberID,
		Name:         "client_update",
		SystemPrompt: &prompt,
		OutputFormat: entities.MeetingTypeOutputJSON,
		IsActive:     true,
	}
	f.meetingTypes.types[meetingType.ID] = meetingType
	recording.MeetingTypeID = &meetingType.ID
	f.provider.analysisResponse = `{"summary":"client call recap"}`

	result, err := f.svc.ProcessRecording(context.Background(), recording.ID, entities.ProcessingTaskAll)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Success {
		t.Fatalf("expected success, got %q", result.Error)
	}

	items, _ := f.analysis.FindActionItems(context.Background(), recording.ID)
	if len(items) != 0 {
		t.Errorf("custom prompt path must not fan out rows, got %d", len(items))
	}
	if recording.AISummary == nil || *recording.AISummary != "client call recap" {
		t.Error("expected summary lifted from parsed custom payload")
	}
}

func TestProcessRecordingMissingMedia(t *testing.T) {
	f := newFixture()
	recording := f.addRecording()
	recording.StorageKey = nil

	result, err := f.svc.ProcessRecording(context.Background(), recording.ID, entities.ProcessingTaskTranscribe)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Success {
		t.Fatal("expected failure for missing media")
	}
	if recording.Status != entities.RecordingStatusFailed {
		t.Errorf("status = %q, want failed", recording.Status)
	}
}
