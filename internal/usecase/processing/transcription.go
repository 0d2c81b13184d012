package processing

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	apperrors "github.com/callcaps/callcaps-server/errors"
	"github.com/callcaps/callcaps-server/internal/domain/entities"
	"github.com/callcaps/callcaps-server/pkg/ai"
	"github.com/callcaps/callcaps-server/pkg/config"
	"github.com/callcaps/callcaps-server/pkg/prompts"
)

// ProviderClient is the generative-AI surface the pipeline needs. Satisfied
// by *ai.GeminiClient; tests substitute an httptest-backed or fake client.
type ProviderClient interface {
	UploadFile(ctx context.Context, data []byte, mimeType, displayName string) (*ai.FileInfo, error)
	GetFile(ctx context.Context, name string) (*ai.FileInfo, error)
	GenerateContent(ctx context.Context, model string, parts []ai.Part) (string, error)
}

// TranscriptionResult is the output of one transcription run
type TranscriptionResult struct {
	Segments       []entities.TranscriptSegment
	FullTranscript string
}

// TranscriptionService turns a media blob into speaker-labeled transcript
// segments via the provider's file-upload + completion flow.
type TranscriptionService struct {
	provider ProviderClient
	cfg      *config.GeminiConfig
	logger   *zap.Logger
}

// NewTranscriptionService creates a transcription service
func NewTranscriptionService(provider ProviderClient, cfg *config.GeminiConfig, logger *zap.Logger) *TranscriptionService {
	return &TranscriptionService{
		provider: provider,
		cfg:      cfg,
		logger:   logger,
	}
}

// TranscribeWithSpeakerDiarization uploads the media, waits for the provider
// file to become active, and requests a diarized transcription. The readiness
// poll is bounded: after MaxPollAttempts checks a distinct timeout error is
// returned instead of looping forever.
func (s *TranscriptionService) TranscribeWithSpeakerDiarization(ctx context.Context, media []byte, mimeType, displayName, kind string) (*TranscriptionResult, error) {
	// Upload with retry; transient provider errors are common on large files
	var file *ai.FileInfo
	submitFn := func() error {
		var err error
		file, err = s.provider.UploadFile(ctx, media, mimeType, displayName)
		return err
	}

	expBackoff := backoff.NewExponentialBackOff()
	expBackoff.InitialInterval = 2 * time.Second
	expBackoff.MaxElapsedTime = 60 * time.Second

	if err := backoff.Retry(submitFn, backoff.WithContext(expBackoff, ctx)); err != nil {
		return nil, apperrors.ErrProviderUploadFailed(err)
	}

	if s.logger != nil {
		s.logger.Info("media uploaded to provider",
			zap.String("file", file.Name),
			zap.String("state", file.State),
		)
	}

	file, err := s.waitForFile(ctx, file)
	if err != nil {
		return nil, err
	}

	template := prompts.ForKind(kind)
	text, err := s.provider.GenerateContent(ctx, s.cfg.TranscribeModel, []ai.Part{
		{FileURI: file.URI, MimeType: mimeType},
		{Text: template.Content},
	})
	if err != nil {
		return nil, apperrors.ErrProviderRequestFailed(err)
	}

	segments, err := parseSegments(text)
	if err != nil {
		// Parse failure is fatal for this stage: no retry, no partial recovery
		return nil, apperrors.ErrResponseParseFailed(err)
	}

	return &TranscriptionResult{
		Segments:       segments,
		FullTranscript: JoinTranscript(segments),
	}, nil
}

// waitForFile polls the provider until the file is active, failed, or the
// attempt budget runs out.
func (s *TranscriptionService) waitForFile(ctx context.Context, file *ai.FileInfo) (*ai.FileInfo, error) {
	for attempt := 0; attempt < s.cfg.MaxPollAttempts; attempt++ {
		switch file.State {
		case ai.FileStateActive:
			return file, nil
		case ai.FileStateFailed:
			return nil, apperrors.ErrProviderFileFailed(file.Error.Message)
		}

		select {
		case <-ctx.Done():
			return nil, apperrors.ErrProviderRequestFailed(ctx.Err())
		case <-time.After(s.cfg.PollInterval):
		}

		refreshed, err := s.provider.GetFile(ctx, file.Name)
		if err != nil {
			return nil, apperrors.ErrProviderRequestFailed(err)
		}
		file = refreshed
	}
	return nil, apperrors.ErrProviderFileTimeout(s.cfg.MaxPollAttempts)
}

// parseSegments parses the model response as a JSON segment array, stripping
// code-fence markup first.
func parseSegments(text string) ([]entities.TranscriptSegment, error) {
	cleaned := extractJSON(text)

	var segments []entities.TranscriptSegment
	if err := json.Unmarshal([]byte(cleaned), &segments); err != nil {
		return nil, fmt.Errorf("failed to parse segment array: %w", err)
	}
	return segments, nil
}

// JoinTranscript is the deterministic "{speaker}: {text}" join of segments
// in input order.
func JoinTranscript(segments []entities.TranscriptSegment) string {
	lines := make([]string, 0, len(segments))
	for _, seg := range segments {
		lines = append(lines, fmt.Sprintf("%s: %s", seg.Speaker, seg.Text))
	}
	return strings.Join(lines, "\n")
}

// extractJSON extracts JSON content from markdown code blocks or plain text
func extractJSON(content string) string {
	content = strings.TrimSpace(content)

	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		if idx := strings.LastIndex(content, "```"); idx != -1 {
			content = content[:idx]
		}
	} else if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		if idx := strings.LastIndex(content, "```"); idx != -1 {
			content = content[:idx]
		}
	}

	return strings.TrimSpace(content)
}
