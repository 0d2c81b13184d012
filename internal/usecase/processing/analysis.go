package processing

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	apperrors "github.com/callcaps/callcaps-server/errors"
	"github.com/callcaps/callcaps-server/internal/domain/entities"
	"github.com/callcaps/callcaps-server/pkg/ai"
	"github.com/callcaps/callcaps-server/pkg/config"
	"github.com/callcaps/callcaps-server/pkg/prompts"
)

// AnalysisService extracts structured meeting intelligence from a transcript
type AnalysisService struct {
	provider ProviderClient
	cfg      *config.GeminiConfig
	logger   *zap.Logger
}

// NewAnalysisService creates an analysis service
func NewAnalysisService(provider ProviderClient, cfg *config.GeminiConfig, logger *zap.Logger) *AnalysisService {
	return &AnalysisService{
		provider: provider,
		cfg:      cfg,
		logger:   logger,
	}
}

// AnalyzeMeetingIntelligence runs the default structured analysis prompt.
// The default prompt is trusted to conform to its schema, so a parse failure
// here raises instead of degrading.
func (s *AnalysisService) AnalyzeMeetingIntelligence(ctx context.Context, title, transcript string, segments []entities.TranscriptSegment) (*entities.AnalysisResult, error) {
	template := prompts.Get(prompts.AnalyzeDefault)
	prompt := prompts.Fill(template, map[string]string{
		"title":      title,
		"segments":   segmentLines(segments),
		"transcript": transcript,
	})

	text, err := s.provider.GenerateContent(ctx, s.cfg.AnalysisModel, []ai.Part{{Text: prompt}})
	if err != nil {
		return nil, apperrors.ErrProviderRequestFailed(err)
	}

	var result entities.AnalysisResult
	if err := json.Unmarshal([]byte(extractJSON(text)), &result); err != nil {
		return nil, apperrors.ErrResponseParseFailed(fmt.Errorf("default analysis response: %w", err))
	}
	normalizeAnalysis(&result)

	return &result, nil
}

// AnalyzeWithCustomPrompt runs a caller-supplied system prompt. Custom, less
// constrained prompts are expected to occasionally violate their declared
// format; for json output a parse failure degrades to a flagged raw-text
// result instead of raising.
func (s *AnalysisService) AnalyzeWithCustomPrompt(ctx context.Context, transcript string, segments []entities.TranscriptSegment, systemPrompt, outputFormat string) (*entities.CustomAnalysisResult, error) {
	prompt := buildCustomPrompt(systemPrompt, transcript, segments)

	text, err := s.provider.GenerateContent(ctx, s.cfg.AnalysisModel, []ai.Part{{Text: prompt}})
	if err != nil {
		return nil, apperrors.ErrProviderRequestFailed(err)
	}

	result := &entities.CustomAnalysisResult{RawText: text}
	if outputFormat == entities.MeetingTypeOutputJSON {
		var parsed map[string]interface{}
		if err := json.Unmarshal([]byte(extractJSON(text)), &parsed); err != nil {
			result.ParseError = true
			if s.logger != nil {
				s.logger.Warn("custom prompt response did not parse as json",
					zap.Error(err),
				)
			}
		} else {
			result.Parsed = parsed
		}
	}
	return result, nil
}

// buildCustomPrompt combines the caller's instructions with the segmented
// and full transcript text.
func buildCustomPrompt(systemPrompt, transcript string, segments []entities.TranscriptSegment) string {
	var b strings.Builder
	b.WriteString(systemPrompt)
	b.WriteString("\n\nTranscript segments:\n")
	b.WriteString(segmentLines(segments))
	b.WriteString("\nFull transcript:\n")
	b.WriteString(transcript)
	return b.String()
}

// segmentLines renders one "[speaker] text" line per segment
func segmentLines(segments []entities.TranscriptSegment) string {
	var b strings.Builder
	for _, seg := range segments {
		fmt.Fprintf(&b, "[%s] %s\n", seg.Speaker, seg.Text)
	}
	return b.String()
}

// ComputeTalkTimes recomputes per-speaker talk time from segments only,
// never from the model's participant guesses. Per segment the larger of a
// character-rate estimate (text length / 10) and the explicit duration wins.
func ComputeTalkTimes(segments []entities.TranscriptSegment) map[string]float64 {
	talkTimes := make(map[string]float64)
	for _, seg := range segments {
		estimate := float64(len(seg.Text)) / 10.0
		if seg.StartTime != nil && seg.EndTime != nil {
			if d := *seg.EndTime - *seg.StartTime; d > estimate {
				estimate = d
			}
		}
		talkTimes[seg.Speaker] += estimate
	}
	return talkTimes
}

// SpeakerSummary derives the per-speaker stats from segments, preserving
// first-appearance order.
func SpeakerSummary(segments []entities.TranscriptSegment) []entities.SpeakerStat {
	talkTimes := ComputeTalkTimes(segments)

	var order []string
	counts := make(map[string]int)
	for _, seg := range segments {
		if _, seen := counts[seg.Speaker]; !seen {
			order = append(order, seg.Speaker)
		}
		counts[seg.Speaker]++
	}

	stats := make([]entities.SpeakerStat, 0, len(order))
	for _, speaker := range order {
		stats = append(stats, entities.SpeakerStat{
			Speaker:      speaker,
			SegmentCount: counts[speaker],
			TalkTime:     talkTimes[speaker],
		})
	}
	return stats
}

// normalizeAnalysis replaces nil lists so downstream consumers never branch
// on nil.
func normalizeAnalysis(result *entities.AnalysisResult) {
	if result.Participants == nil {
		result.Participants = make([]entities.AnalysisPerson, 0)
	}
	if result.ActionItems == nil {
		result.ActionItems = make([]entities.AnalysisActionItem, 0)
	}
	if result.Decisions == nil {
		result.Decisions = make([]entities.AnalysisDecision, 0)
	}
	if result.Topics == nil {
		result.Topics = make([]entities.AnalysisTopic, 0)
	}
	if result.KeyTakeaways == nil {
		result.KeyTakeaways = make([]string, 0)
	}
}
