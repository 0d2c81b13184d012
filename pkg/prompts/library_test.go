package prompts

import (
	"strings"
	"testing"
)

func TestGetKnownAndUnknown(t *testing.T) {
	if tpl := Get(AnalyzeDefault); tpl == nil {
		t.Fatal("expected analyze_default template")
	}
	if tpl := Get("nope"); tpl != nil {
		t.Errorf("expected nil for unknown template, got %q", tpl.Name)
	}
}

func TestAllReturnsCatalogCopy(t *testing.T) {
	first := All()
	if len(first) == 0 {
		t.Fatal("expected non-empty catalog")
	}
	first[0].Content = "mutated"
	second := All()
	if second[0].Content == "mutated" {
		t.Error("All must return a copy, not the backing catalog")
	}
}

func TestForKind(t *testing.T) {
	cases := map[string]string{
		"interview":    TranscribeInterview,
		"consultation": TranscribeConsultation,
		"meeting":      TranscribeMeeting,
		"call":         TranscribeMeeting,
		"":             TranscribeMeeting,
	}
	for kind, want := range cases {
		if got := ForKind(kind); got.Name != want {
			t.Errorf("ForKind(%q) = %q, want %q", kind, got.Name, want)
		}
	}
}

func TestFillSubstitutesAllOccurrences(t *testing.T) {
	tpl := &Template{Content: "{{a}} and {{a}} with {{b}}"}
	out := Fill(tpl, map[string]string{"a": "x", "b": "y"})
	if out != "x and x with y" {
		t.Errorf("unexpected fill result: %q", out)
	}
}

func TestFillLeavesUnmatchedPlaceholders(t *testing.T) {
	tpl := &Template{Content: "hello {{name}}, today is {{day}}"}
	out := Fill(tpl, map[string]string{"name": "Ana"})
	if !strings.Contains(out, "{{day}}") {
		t.Errorf("unmatched placeholder must stay verbatim, got %q", out)
	}
	if !strings.Contains(out, "hello Ana") {
		t.Errorf("supplied key must be substituted, got %q", out)
	}
}

func TestTranscriptionTemplatesDeclareJSON(t *testing.T) {
	for _, name := range []string{TranscribeMeeting, TranscribeInterview, TranscribeConsultation, AnalyzeDefault} {
		tpl := Get(name)
		if tpl == nil {
			t.Fatalf("missing template %q", name)
		}
		if tpl.OutputFormat != OutputJSON {
			t.Errorf("%s: expected json output format, got %q", name, tpl.OutputFormat)
		}
	}
}
