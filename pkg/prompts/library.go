package prompts

import "strings"

// Get returns the template with the given name, or nil if unknown.
func Get(name string) *Template {
	for i := range catalog {
		if catalog[i].Name == name {
			t := catalog[i]
			return &t
		}
	}
	return nil
}

// All returns the full catalog in declaration order.
func All() []Template {
	out := make([]Template, len(catalog))
	copy(out, catalog)
	return out
}

// ForKind returns the transcription template matching a recording kind.
// Unknown kinds fall back to the plain meeting template.
func ForKind(kind string) *Template {
	switch kind {
	case "interview":
		return Get(TranscribeInterview)
	case "consultation":
		return Get(TranscribeConsultation)
	default:
		return Get(TranscribeMeeting)
	}
}

// Fill substitutes every {{key}} occurrence in the template content with the
// corresponding value. Placeholders with no matching key are left verbatim.
func Fill(t *Template, vars map[string]string) string {
	out := t.Content
	for key, value := range vars {
		out = strings.ReplaceAll(out, "{{"+key+"}}", value)
	}
	return out
}
