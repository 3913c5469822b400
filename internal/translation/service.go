package translation

import "context"

// Provider translates free-form text between languages.
type Provider interface {
	Translate(ctx context.Context, req TranslateRequest) (*TranslateResponse, error)
	Name() string
	SupportedLanguages() []string
}

// RemoteDetector is an optional provider capability for backend-side
// language detection. Discovered by type assertion.
type RemoteDetector interface {
	DetectLanguage(ctx context.Context, text string) (*RemoteDetection, error)
}

// TranslateRequest describes one translation request.
type TranslateRequest struct {
	Text       string
	SourceLang string // ISO 639-1 (for example: "hi", "en")
	TargetLang string
}

// TranslateResponse contains translated text and provider metadata.
type TranslateResponse struct {
	Text         string
	SourceLang   string
	TargetLang   string
	ProviderName string
	Confidence   float64
	LatencyMs    int64
}

// RemoteDetection is a backend detection outcome, already remapped to a
// canonical registry code.
type RemoteDetection struct {
	Code       string
	Confidence float64
}
