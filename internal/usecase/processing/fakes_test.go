package processing

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/callcaps/callcaps-server/internal/domain/entities"
	"github.com/callcaps/callcaps-server/internal/domain/repositories"
	"github.com/callcaps/callcaps-server/pkg/ai"
)

// fakeProvider scripts provider behavior. GenerateContent answers with the
// transcription response when a file part is present, the analysis response
// otherwise.
type fakeProvider struct {
	uploadErr             error
	uploadState           string
	fileStates            []string
	fileStateIdx          int
	generateErr           error
	transcriptionResponse string
	analysisResponse      string
	generateCalls         int
	lastPrompt            string
}

func (f *fakeProvider) UploadFile(_ context.Context, _ []byte, mimeType, displayName string) (*ai.FileInfo, error) {
	if f.uploadErr != nil {
		return nil, f.uploadErr
	}
	state := f.uploadState
	if state == "" {
		state = ai.FileStateProcessing
	}
	return &ai.FileInfo{
		Name:     "files/fake",
		URI:      "https://provider.test/files/fake",
		MimeType: mimeType,
		State:    state,
	}, nil
}

func (f *fakeProvider) GetFile(_ context.Context, name string) (*ai.FileInfo, error) {
	state := ai.FileStateActive
	if f.fileStateIdx < len(f.fileStates) {
		state = f.fileStates[f.fileStateIdx]
		f.fileStateIdx++
	} else if len(f.fileStates) > 0 {
		state = f.fileStates[len(f.fileStates)-1]
	}
	fi := &ai.FileInfo{Name: name, URI: "https://provider.test/" + name, State: state}
	if state == ai.FileStateFailed {
		fi.Error.Message = "media could not be decoded"
	}
	return fi, nil
}

func (f *fakeProvider) GenerateContent(_ context.Context, _ string, parts []ai.Part) (string, error) {
	f.generateCalls++
	if f.generateErr != nil {
		return "", f.generateErr
	}
	for _, p := range parts {
		if p.Text != "" {
			f.lastPrompt = p.Text
		}
	}
	for _, p := range parts {
		if p.FileURI != "" {
			return f.transcriptionResponse, nil
		}
	}
	return f.analysisResponse, nil
}

type fakeRecordingRepo struct {
	recordings map[uuid.UUID]*entities.Recording
	updateErr  error
}

func newFakeRecordingRepo() *fakeRecordingRepo {
	return &fakeRecordingRepo{recordings: make(map[uuid.UUID]*entities.Recording)}
}

func (r *fakeRecordingRepo) Create(_ context.Context, recording *entities.Recording) error {
	r.recordings[recording.ID] = recording
	return nil
}

func (r *fakeRecordingRepo) FindByID(_ context.Context, id uuid.UUID) (*entities.Recording, error) {
	return r.recordings[id], nil
}

func (r *fakeRecordingRepo) Update(_ context.Context, recording *entities.Recording) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	r.recordings[recording.ID] = recording
	return nil
}

func (r *fakeRecordingRepo) List(_ context.Context, _ repositories.RecordingFilters) ([]*entities.Recording, int64, error) {
	var out []*entities.Recording
	for _, rec := range r.recordings {
		out = append(out, rec)
	}
	return out, int64(len(out)), nil
}

func (r *fakeRecordingRepo) CountByStatus(_ context.Context, _ uuid.UUID) (map[entities.RecordingStatus]int64, error) {
	counts := make(map[entities.RecordingStatus]int64)
	for _, rec := range r.recordings {
		counts[rec.Status]++
	}
	return counts, nil
}

type fakeMeetingTypeRepo struct {
	types map[uuid.UUID]*entities.MeetingType
}

func newFakeMeetingTypeRepo() *fakeMeetingTypeRepo {
	return &fakeMeetingTypeRepo{types: make(map[uuid.UUID]*entities.MeetingType)}
}

func (r *fakeMeetingTypeRepo) Create(_ context.Context, mt *entities.MeetingType) error {
	r.types[mt.ID] = mt
	return nil
}

func (r *fakeMeetingTypeRepo) FindByID(_ context.Context, id uuid.UUID) (*entities.MeetingType, error) {
	return r.types[id], nil
}

func (r *fakeMeetingTypeRepo) FindByName(_ context.Context, memberID uuid.UUID, name string) (*entities.MeetingType, error) {
	for _, mt := range r.types {
		if mt.MemberID == memberID && mt.Name == name && mt.IsActive {
			return mt, nil
		}
	}
	return nil, nil
}

func (r *fakeMeetingTypeRepo) ListByMember(_ context.Context, memberID uuid.UUID) ([]*entities.MeetingType, error) {
	var out []*entities.MeetingType
	for _, mt := range r.types {
		if mt.MemberID == memberID && mt.IsActive {
			out = append(out, mt)
		}
	}
	return out, nil
}

func (r *fakeMeetingTypeRepo) Update(_ context.Context, mt *entities.MeetingType) error {
	r.types[mt.ID] = mt
	return nil
}

func (r *fakeMeetingTypeRepo) Deactivate(_ context.Context, id uuid.UUID) error {
	if mt, ok := r.types[id]; ok {
		mt.IsActive = false
	}
	return nil
}

type fakeParticipantRepo struct {
	byRecording map[uuid.UUID][]*entities.Participant
}

func newFakeParticipantRepo() *fakeParticipantRepo {
	return &fakeParticipantRepo{byRecording: make(map[uuid.UUID][]*entities.Participant)}
}

func (r *fakeParticipantRepo) ReplaceForRecording(_ context.Context, recordingID uuid.UUID, participants []*entities.Participant) error {
	r.byRecording[recordingID] = participants
	return nil
}

func (r *fakeParticipantRepo) FindByRecording(_ context.Context, recordingID uuid.UUID) ([]*entities.Participant, error) {
	return r.byRecording[recordingID], nil
}

type fakeAnalysisRepo struct {
	actionItems map[uuid.UUID][]*entities.ActionItem
	decisions   map[uuid.UUID][]*entities.Decision
	topics      map[uuid.UUID][]*entities.Topic
	insights    map[uuid.UUID][]*entities.TaskInsight
	replaceErr  error
}

func newFakeAnalysisRepo() *fakeAnalysisRepo {
	return &fakeAnalysisRepo{
		actionItems: make(map[uuid.UUID][]*entities.ActionItem),
		decisions:   make(map[uuid.UUID][]*entities.Decision),
		topics:      make(map[uuid.UUID][]*entities.Topic),
		insights:    make(map[uuid.UUID][]*entities.TaskInsight),
	}
}

func (r *fakeAnalysisRepo) ReplaceFanOut(_ context.Context, recordingID uuid.UUID, actionItems []*entities.ActionItem, decisions []*entities.Decision, topics []*entities.Topic, insights []*entities.TaskInsight) error {
	if r.replaceErr != nil {
		return r.replaceErr
	}
	r.actionItems[recordingID] = actionItems
	r.decisions[recordingID] = decisions
	r.topics[recordingID] = topics
	r.insights[recordingID] = insights
	return nil
}

func (r *fakeAnalysisRepo) FindActionItems(_ context.Context, recordingID uuid.UUID) ([]*entities.ActionItem, error) {
	return r.actionItems[recordingID], nil
}

func (r *fakeAnalysisRepo) FindActionItemByID(_ context.Context, id uuid.UUID) (*entities.ActionItem, error) {
	for _, items := range r.actionItems {
		for _, item := range items {
			if item.ID == id {
				return item, nil
			}
		}
	}
	return nil, nil
}

func (r *fakeAnalysisRepo) UpdateActionItem(_ context.Context, _ *entities.ActionItem) error {
	return nil
}

func (r *fakeAnalysisRepo) FindDecisions(_ context.Context, recordingID uuid.UUID) ([]*entities.Decision, error) {
	return r.decisions[recordingID], nil
}

func (r *fakeAnalysisRepo) FindTopics(_ context.Context, recordingID uuid.UUID) ([]*entities.Topic, error) {
	return r.topics[recordingID], nil
}

func (r *fakeAnalysisRepo) FindTaskInsights(_ context.Context, recordingID uuid.UUID) ([]*entities.TaskInsight, error) {
	return r.insights[recordingID], nil
}

func (r *fakeAnalysisRepo) CountActionItems(_ context.Context, _ uuid.UUID) (int64, error) {
	var n int64
	for _, items := range r.actionItems {
		n += int64(len(items))
	}
	return n, nil
}

func (r *fakeAnalysisRepo) CountDecisions(_ context.Context, _ uuid.UUID) (int64, error) {
	var n int64
	for _, ds := range r.decisions {
		n += int64(len(ds))
	}
	return n, nil
}

type fakeQueueRepo struct {
	entries []*entities.ProcessingQueueEntry
}

func (r *fakeQueueRepo) Create(_ context.Context, entry *entities.ProcessingQueueEntry) error {
	r.entries = append(r.entries, entry)
	return nil
}

func (r *fakeQueueRepo) FindPendingByRecording(_ context.Context, recordingID uuid.UUID, task entities.ProcessingTask) (*entities.ProcessingQueueEntry, error) {
	for i := len(r.entries) - 1; i >= 0; i-- {
		e := r.entries[i]
		if e.RecordingID == recordingID && e.Task == task &&
			(e.Status == entities.QueueStatusPending || e.Status == entities.QueueStatusProcessing) {
			return e, nil
		}
	}
	return nil, nil
}

func (r *fakeQueueRepo) Update(_ context.Context, _ *entities.ProcessingQueueEntry) error {
	return nil
}

type fakeMemberRepo struct {
	byName map[string][]*entities.OrganizationMember
}

func newFakeMemberRepo() *fakeMemberRepo {
	return &fakeMemberRepo{byName: make(map[string][]*entities.OrganizationMember)}
}

func (r *fakeMemberRepo) add(member *entities.OrganizationMember) {
	key := strings.ToLower(member.FullName)
	r.byName[key] = append(r.byName[key], member)
}

func (r *fakeMemberRepo) FindActiveByName(_ context.Context, _ uuid.UUID, fullName string) ([]*entities.OrganizationMember, error) {
	return r.byName[strings.ToLower(fullName)], nil
}

func (r *fakeMemberRepo) FindByID(_ context.Context, id uuid.UUID) (*entities.OrganizationMember, error) {
	for _, members := range r.byName {
		for _, m := range members {
			if m.ID == id {
				return m, nil
			}
		}
	}
	return nil, nil
}

type fakeCaseRepo struct {
	cases map[uuid.UUID]*entities.LegalCase
}

func newFakeCaseRepo() *fakeCaseRepo {
	return &fakeCaseRepo{cases: make(map[uuid.UUID]*entities.LegalCase)}
}

func (r *fakeCaseRepo) FindByID(_ context.Context, id uuid.UUID) (*entities.LegalCase, error) {
	return r.cases[id], nil
}

func (r *fakeCaseRepo) FindByCaseNumber(_ context.Context, organizationID uuid.UUID, caseNumber string) (*entities.LegalCase, error) {
	for _, c := range r.cases {
		if c.OrganizationID == organizationID && c.CaseNumber == caseNumber {
			return c, nil
		}
	}
	return nil, nil
}

type fakeBlobStore struct {
	files         map[string][]byte
	downloadErr   error
	uploadTextErr error
	urlErr        error
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{files: make(map[string][]byte)}
}

func (b *fakeBlobStore) DownloadFile(_ context.Context, objectName string) ([]byte, error) {
	if b.downloadErr != nil {
		return nil, b.downloadErr
	}
	return b.files[objectName], nil
}

func (b *fakeBlobStore) UploadText(_ context.Context, objectName, content, _ string) error {
	if b.uploadTextErr != nil {
		return b.uploadTextErr
	}
	b.files[objectName] = []byte(content)
	return nil
}

func (b *fakeBlobStore) GetFileURL(_ context.Context, objectName string, _ time.Duration) (string, error) {
	if b.urlErr != nil {
		return "", b.urlErr
	}
	return "https://blob.test/" + objectName, nil
}
