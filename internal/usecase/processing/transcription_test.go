package processing

import (
	"context"
	"errors"
	"testing"
	"time"

	apperrors "github.com/callcaps/callcaps-server/errors"
	"github.com/callcaps/callcaps-server/internal/domain/entities"
	"github.com/callcaps/callcaps-server/pkg/ai"
	"github.com/callcaps/callcaps-server/pkg/config"
)

func testGeminiConfig() *config.GeminiConfig {
	return &config.GeminiConfig{
		TranscribeModel: "gemini-2.5-flash",
		AnalysisModel:   "gemini-2.5-flash",
		PollInterval:    time.Millisecond,
		MaxPollAttempts: 5,
	}
}

const fencedSegments = "```json\n" +
	`[{"speaker":"Speaker 1","text":"Good morning everyone."},` +
	`{"speaker":"Speaker 2","text":"Morning, shall we start?"}]` +
	"\n```"

func TestTranscribeWithSpeakerDiarization(t *testing.T) {
	provider := &fakeProvider{
		fileStates:            []string{ai.FileStateProcessing, ai.FileStateActive},
		transcriptionResponse: fencedSegments,
	}
	svc := NewTranscriptionService(provider, testGeminiConfig(), nil)

	result, err := svc.TranscribeWithSpeakerDiarization(context.Background(), []byte("media"), "audio/mpeg", "standup.mp3", "meeting")
	if err != nil {
		t.Fatalf("transcription failed: %v", err)
	}
	if len(result.Segments) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(result.Segments))
	}
	want := "Speaker 1: Good morning everyone.\nSpeaker 2: Morning, shall we start?"
	if result.FullTranscript != want {
		t.Errorf("unexpected full transcript:\n%q\nwant:\n%q", result.FullTranscript, want)
	}
}

func TestTranscribePollTimeout(t *testing.T) {
	provider := &fakeProvider{
		fileStates:            []string{ai.FileStateProcessing},
		transcriptionResponse: fencedSegments,
	}
	svc := NewTranscriptionService(provider, testGeminiConfig(), nil)

	_, err := svc.TranscribeWithSpeakerDiarization(context.Background(), []byte("media"), "audio/mpeg", "x.mp3", "meeting")
	if err == nil {
		t.Fatal("expected timeout error")
	}
	var appErr apperrors.AppError
	if !errors.As(err, &appErr) || appErr.Code != apperrors.ErrorCode_PROVIDER_FILE_TIMEOUT {
		t.Errorf("expected PROVIDER_FILE_TIMEOUT, got %v", err)
	}
}

func TestTranscribeFileFailed(t *testing.T) {
	provider := &fakeProvider{
		fileStates: []string{ai.FileStateFailed},
	}
	svc := NewTranscriptionService(provider, testGeminiConfig(), nil)

	_, err := svc.TranscribeWithSpeakerDiarization(context.Background(), []byte("media"), "audio/mpeg", "x.mp3", "meeting")
	if err == nil {
		t.Fatal("expected failed-file error")
	}
	var appErr apperrors.AppError
	if !errors.As(err, &appErr) || appErr.Code != apperrors.ErrorCode_PROVIDER_FILE_FAILED {
		t.Errorf("expected PROVIDER_FILE_FAILED, got %v", err)
	}
}

func TestTranscribeParseFailureIsFatal(t *testing.T) {
	provider := &fakeProvider{
		uploadState:           ai.FileStateActive,
		transcriptionResponse: "Sorry, I could not transcribe this recording.",
	}
	svc := NewTranscriptionService(provider, testGeminiConfig(), nil)

	_, err := svc.TranscribeWithSpeakerDiarization(context.Background(), []byte("media"), "audio/mpeg", "x.mp3", "meeting")
	if err == nil {
		t.Fatal("expected parse error")
	}
	var appErr apperrors.AppError
	if !errors.As(err, &appErr) || appErr.Code != apperrors.ErrorCode_RESPONSE_PARSE_FAILED {
		t.Errorf("expected RESPONSE_PARSE_FAILED, got %v", err)
	}
}

func TestJoinTranscriptDeterminism(t *testing.T) {
	segments := []entities.TranscriptSegment{
		{Speaker: "A", Text: "first"},
		{Speaker: "B", Text: "second"},
		{Speaker: "A", Text: "third"},
	}
	want := "A: first\nB: second\nA: third"
	if got := JoinTranscript(segments); got != want {
		t.Errorf("JoinTranscript = %q, want %q", got, want)
	}
	// idempotent under repetition
	if got := JoinTranscript(segments); got != want {
		t.Errorf("second JoinTranscript differs: %q", got)
	}
}

func TestExtractJSONStripsFences(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"```\n[1,2]\n```", `[1,2]`},
		{`{"a":1}`, `{"a":1}`},
		{"  [1]  ", `[1]`},
	}
	for _, tc := range cases {
		if got := extractJSON(tc.in); got != tc.want {
			t.Errorf("extractJSON(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
