package entities

// AnalysisResult is the structured output of the default analysis prompt.
// Scalar fields are written onto the Recording; each list fans out into its
// own table.
type AnalysisResult struct {
	CaseIdentifier *string              `json:"caseIdentifier,omitempty"`
	Participants   []AnalysisPerson     `json:"participants"`
	ActionItems    []AnalysisActionItem `json:"actionItems"`
	Decisions      []AnalysisDecision   `json:"decisions"`
	Topics         []AnalysisTopic      `json:"topics"`
	Summary        string               `json:"summary"`
	KeyTakeaways   []string             `json:"keyTakeaways"`
	Sentiment      string               `json:"sentiment"`
}

// AnalysisPerson is a participant as guessed by the model. Talk time is
// never taken from here; it is recomputed from segments.
type AnalysisPerson struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

// AnalysisActionItem mirrors the actionItems schema of the default prompt
type AnalysisActionItem struct {
	Task     string  `json:"task"`
	Assignee *string `json:"assignee,omitempty"`
	Speaker  *string `json:"speaker,omitempty"`
	DueDate  *string `json:"dueDate,omitempty"`
	Priority string  `json:"priority"`
	Context  *string `json:"context,omitempty"`
}

// AnalysisDecision mirrors the decisions schema of the default prompt
type AnalysisDecision struct {
	Decision           string  `json:"decision"`
	DecisionMaker      *string `json:"decisionMaker,omitempty"`
	Context            *string `json:"context,omitempty"`
	Impact             string  `json:"impact"`
	ImplementationDate *string `json:"implementationDate,omitempty"`
}

// AnalysisTopic mirrors the topics schema of the default prompt
type AnalysisTopic struct {
	Name       string   `json:"name"`
	Importance float64  `json:"importance"`
	Speakers   []string `json:"speakers"`
}

// CustomAnalysisResult is the outcome of a custom-prompt analysis. For json
// output formats that fail to parse, ParseError is set and RawText preserved
// instead of raising.
type CustomAnalysisResult struct {
	Parsed     map[string]interface{} `json:"parsed,omitempty"`
	RawText    string                 `json:"rawText"`
	ParseError bool                   `json:"parseError"`
}
