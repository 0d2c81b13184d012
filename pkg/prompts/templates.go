package prompts

// OutputFormat declares how a template's model response should be parsed.
type OutputFormat string

const (
	OutputJSON     OutputFormat = "json"
	OutputMarkdown OutputFormat = "markdown"
	OutputText     OutputFormat = "text"
)

// Template is a static, versionless prompt definition.
type Template struct {
	Name         string
	Description  string
	Content      string
	OutputFormat OutputFormat
}

// Template names.
const (
	TranscribeMeeting      = "transcribe_meeting"
	TranscribeInterview    = "transcribe_interview"
	TranscribeConsultation = "transcribe_consultation"
	AnalyzeDefault         = "analyze_default"
	SummarizeBrief         = "summarize_brief"
)

const segmentSchema = `Return ONLY a JSON array of segment objects, no prose and no markdown fences. Each object has:
- "speaker": string label ("Speaker 1", "Speaker 2", ...) kept consistent for the same voice throughout
- "text": the transcribed speech
- "startTime": start offset in seconds (number, omit if unknown)
- "endTime": end offset in seconds (number, omit if unknown)
- "confidence": 0-1 transcription confidence (number, omit if unknown)
Segments must appear in the order they were spoken.`

var catalog = []Template{
	{
		Name:         TranscribeMeeting,
		Description:  "Speaker-diarized transcription of a general meeting recording",
		OutputFormat: OutputJSON,
		Content: `Transcribe this meeting recording with speaker diarization.
Identify each distinct speaker and label them consistently.

` + segmentSchema,
	},
	{
		Name:         TranscribeInterview,
		Description:  "Speaker-diarized transcription biased toward question/answer exchanges",
		OutputFormat: OutputJSON,
		Content: `Transcribe this interview recording with speaker diarization.
This is a question-and-answer conversation: expect one participant asking questions and another answering. Label the interviewer and interviewee as distinct consistent speakers and keep question/answer boundaries as separate segments.

` + segmentSchema,
	},
	{
		Name:         TranscribeConsultation,
		Description:  "Speaker-diarized transcription biased toward advice-giving framing",
		OutputFormat: OutputJSON,
		Content: `Transcribe this consultation recording with speaker diarization.
This is a professional consultation: expect one participant describing a situation and another giving advice or guidance. Keep the advisor's recommendations as distinct segments and label speakers consistently.

` + segmentSchema,
	},
	{
		Name:         AnalyzeDefault,
		Description:  "Default structured meeting-intelligence analysis",
		OutputFormat: OutputJSON,
		Content: `You are a meeting-intelligence analyst. Analyze the transcript below and return ONLY a JSON object, no prose and no markdown fences, with exactly these fields:
{
  "caseIdentifier": string or null - a case/matter number if one is mentioned in the conversation,
  "participants": [{"name": string, "role": "host"|"participant"|"presenter"|"observer"}],
  "actionItems": [{"task": string, "assignee": string|null, "speaker": string|null, "dueDate": string|null, "priority": "low"|"medium"|"high"|"urgent", "context": string|null}],
  "decisions": [{"decision": string, "decisionMaker": string|null, "context": string|null, "impact": "low"|"medium"|"high", "implementationDate": string|null}],
  "topics": [{"name": string, "importance": number between 0 and 1, "speakers": [string]}],
  "summary": string - an executive summary of the conversation,
  "keyTakeaways": [string],
  "sentiment": "positive"|"neutral"|"negative"
}
Use null for unknown optional fields and empty arrays for absent lists. Do not invent participants who do not speak.

Transcript of {{title}}, segmented by speaker:

{{segments}}
Full transcript:

{{transcript}}`,
	},
	{
		Name:         SummarizeBrief,
		Description:  "Short plain-text summary of a transcript",
		OutputFormat: OutputText,
		Content: `Summarize the following transcript in at most five sentences. Return plain text only.

{{transcript}}`,
	},
}
