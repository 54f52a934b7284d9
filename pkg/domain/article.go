package domain

// Article is a normalized search result. Fields the provider did not return stay empty.
type Article struct {
	Title         string `json:"title,omitempty" jsonschema:"description=article title"`
	URL           string `json:"url,omitempty" jsonschema:"description=article link"`
	Summary       string `json:"summary,omitempty" jsonschema:"description=short article summary"`
	PublishedDate string `json:"publishedDate,omitempty" jsonschema:"description=publication date as reported by the provider"`
}

// Summary is the output of news summarization. Warning is set when the model call
// failed and the text is the local fallback rendering.
type Summary struct {
	Text    string `json:"summary"`
	Warning string `json:"warning,omitempty"`
}

// Style parameterizes summarization output
type Style struct {
	Interaction string
	Format      string
	Language    string
	Tone        string
}

// default style values used when a preference is not set
const (
	DefaultInteraction = "concise"
	DefaultFormat      = "bullet points"
	DefaultLanguage    = "English"
	DefaultTone        = "neutral"
)

// WithDefaults fills empty fields with default style values
func (s Style) WithDefaults() Style {
	if s.Interaction == "" {
		s.Interaction = DefaultInteraction
	}
	if s.Format == "" {
		s.Format = DefaultFormat
	}
	if s.Language == "" {
		s.Language = DefaultLanguage
	}
	if s.Tone == "" {
		s.Tone = DefaultTone
	}
	return s
}
