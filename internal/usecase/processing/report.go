package processing

import (
	"fmt"
	"strings"
	"time"

	"github.com/callcaps/callcaps-server/internal/domain/entities"
)

// Placeholder literals for empty report sections. Section headers are never
// omitted; an empty list renders its placeholder instead.
const (
	noSummary      = "No summary available."
	noTakeaways    = "No key takeaways identified"
	noActionItems  = "No action items identified"
	noDecisions    = "No decisions recorded"
	noParticipants = "No participants identified"
	noTopics       = "No topics identified"
	noRiskFindings = "No specific risks identified in this conversation."
	noTranscript   = "No transcript available."
)

const legalNotice = "CONFIDENTIAL: This report contains attorney-client privileged communication. " +
	"Do not distribute outside the legal team without prior authorization."

const genericNotice = "CONFIDENTIAL: This report is intended for internal use only. " +
	"Do not distribute without authorization."

// GenerateReport renders the Markdown report for a processed recording.
// Deterministic given its inputs; kind selects the legal or general branch.
func GenerateReport(recording *entities.Recording, kind, transcript string, analysis *entities.AnalysisResult) string {
	var b strings.Builder

	writeHeader(&b, recording, kind)
	writeSummary(&b, analysis)
	writeTakeaways(&b, analysis)
	writeActionItems(&b, analysis)
	writeDecisions(&b, analysis)

	if entities.IsLegalKind(kind) {
		writeLegalSections(&b, analysis)
	} else {
		writeGeneralSections(&b, recording, analysis)
	}

	writeTopics(&b, analysis)
	writeTranscript(&b, transcript)

	b.WriteString("\n---\n\n")
	if entities.IsLegalKind(kind) {
		b.WriteString(legalNotice)
	} else {
		b.WriteString(genericNotice)
	}
	b.WriteString("\n")

	return b.String()
}

func writeHeader(b *strings.Builder, recording *entities.Recording, kind string) {
	fmt.Fprintf(b, "# %s\n\n", recording.Title)

	date := recording.CreatedAt
	if recording.StartTime != nil {
		date = *recording.StartTime
	}
	fmt.Fprintf(b, "- **Date:** %s\n", date.Format("January 2, 2006"))
	if recording.DurationMs != nil {
		fmt.Fprintf(b, "- **Duration:** %s\n", formatDuration(*recording.DurationMs))
	}
	if kind != "" {
		fmt.Fprintf(b, "- **Type:** %s\n", kind)
	}
	if recording.CaseIdentifier != nil && *recording.CaseIdentifier != "" {
		fmt.Fprintf(b, "- **Case:** %s\n", *recording.CaseIdentifier)
	}
	if recording.Sentiment != nil && *recording.Sentiment != "" {
		fmt.Fprintf(b, "- **Sentiment:** %s\n", *recording.Sentiment)
	}
	b.WriteString("\n")
}

func writeSummary(b *strings.Builder, analysis *entities.AnalysisResult) {
	b.WriteString("## Executive Summary\n\n")
	if analysis != nil && analysis.Summary != "" {
		b.WriteString(analysis.Summary)
	} else {
		b.WriteString(noSummary)
	}
	b.WriteString("\n\n")
}

func writeTakeaways(b *strings.Builder, analysis *entities.AnalysisResult) {
	b.WriteString("## Key Takeaways\n\n")
	if analysis == nil || len(analysis.KeyTakeaways) == 0 {
		b.WriteString(noTakeaways)
		b.WriteString("\n")
	} else {
		for _, takeaway := range analysis.KeyTakeaways {
			fmt.Fprintf(b, "- %s\n", takeaway)
		}
	}
	b.WriteString("\n")
}

func writeActionItems(b *strings.Builder, analysis *entities.AnalysisResult) {
	b.WriteString("## Action Items\n\n")
	if analysis == nil || len(analysis.ActionItems) == 0 {
		b.WriteString(noActionItems)
		b.WriteString("\n")
	} else {
		for _, item := range analysis.ActionItems {
			line := fmt.Sprintf("- [ ] %s", item.Task)
			var notes []string
			if item.Assignee != nil && *item.Assignee != "" {
				notes = append(notes, "assignee: "+*item.Assignee)
			}
			if item.DueDate != nil && *item.DueDate != "" {
				notes = append(notes, "due: "+*item.DueDate)
			}
			if item.Priority != "" {
				notes = append(notes, "priority: "+item.Priority)
			}
			if len(notes) > 0 {
				line += " (" + strings.Join(notes, ", ") + ")"
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")
}

func writeDecisions(b *strings.Builder, analysis *entities.AnalysisResult) {
	b.WriteString("## Decisions\n\n")
	if analysis == nil || len(analysis.Decisions) == 0 {
		b.WriteString(noDecisions)
		b.WriteString("\n")
	} else {
		for i, decision := range analysis.Decisions {
			fmt.Fprintf(b, "%d. %s\n", i+1, decision.Decision)
			if decision.DecisionMaker != nil && *decision.DecisionMaker != "" {
				fmt.Fprintf(b, "   - Decision maker: %s\n", *decision.DecisionMaker)
			}
			if decision.Context != nil && *decision.Context != "" {
				fmt.Fprintf(b, "   - Context: %s\n", *decision.Context)
			}
			if decision.Impact != "" {
				fmt.Fprintf(b, "   - Impact: %s\n", decision.Impact)
			}
		}
	}
	b.WriteString("\n")
}

func writeLegalSections(b *strings.Builder, analysis *entities.AnalysisResult) {
	b.WriteString("## Risk Analysis\n\n")
	b.WriteString(noRiskFindings)
	b.WriteString("\n\n")

	b.WriteString("## Compliance Notes\n\n")
	b.WriteString("Review this conversation for compliance obligations and deadlines. " +
		"Flag any statements requiring follow-up with opposing counsel or the court.\n\n")

	b.WriteString("## Follow-up Required\n\n")
	if analysis != nil && len(analysis.ActionItems) > 0 {
		fmt.Fprintf(b, "%d open action item(s) require follow-up; see Action Items above.\n", len(analysis.ActionItems))
	} else {
		b.WriteString("No follow-up items identified.\n")
	}
	b.WriteString("\n")
}

func writeGeneralSections(b *strings.Builder, recording *entities.Recording, analysis *entities.AnalysisResult) {
	b.WriteString("## Participants\n\n")
	switch {
	case len(recording.SpeakerSummary) > 0:
		for _, stat := range recording.SpeakerSummary {
			fmt.Fprintf(b, "- %s (talk time: %.0fs, segments: %d)\n", stat.Speaker, stat.TalkTime, stat.SegmentCount)
		}
	case analysis != nil && len(analysis.Participants) > 0:
		for _, p := range analysis.Participants {
			fmt.Fprintf(b, "- %s (%s)\n", p.Name, p.Role)
		}
	default:
		b.WriteString(noParticipants)
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString("## Meeting Topics\n\n")
	if analysis == nil || len(analysis.Topics) == 0 {
		b.WriteString(noTopics)
		b.WriteString("\n")
	} else {
		for _, topic := range analysis.Topics {
			fmt.Fprintf(b, "- %s (importance: %.2f)\n", topic.Name, topic.Importance)
		}
	}
	b.WriteString("\n")
}

func writeTopics(b *strings.Builder, analysis *entities.AnalysisResult) {
	b.WriteString("## Topics Discussed\n\n")
	if analysis == nil || len(analysis.Topics) == 0 {
		b.WriteString(noTopics)
		b.WriteString("\n")
	} else {
		for _, topic := range analysis.Topics {
			line := "- " + topic.Name
			if len(topic.Speakers) > 0 {
				line += " (" + strings.Join(topic.Speakers, ", ") + ")"
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")
}

func writeTranscript(b *strings.Builder, transcript string) {
	b.WriteString("## Full Transcript\n\n")
	if transcript == "" {
		b.WriteString(noTranscript)
	} else {
		b.WriteString(transcript)
	}
	b.WriteString("\n")
}

func formatDuration(durationMs int64) string {
	d := time.Duration(durationMs) * time.Millisecond
	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%dm %02ds", minutes, seconds)
}
