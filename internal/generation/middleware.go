package generation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"studyloop.dev/backend/internal/detect"
	"studyloop.dev/backend/internal/language"
	"studyloop.dev/backend/internal/translation"
)

// DefaultCallTimeout bounds the translation work around one generation
// call. Expiry degrades to passthrough, never to a hanging or failed
// request.
const DefaultCallTimeout = 10 * time.Second

// Normalizer is the slice of the translation orchestrator the middleware
// needs. Satisfied by *translation.Service.
type Normalizer interface {
	ProcessForGeneration(ctx context.Context, content string, opts translation.ProcessOptions) (*translation.ProcessResult, error)
	ProcessResponse(ctx context.Context, responseText, targetLang string) translation.ResponseResult
	CanonicalLanguage() string
}

// TranslationMeta describes what the normalization pipeline did around a
// generation call. It is additive: attached next to the generated output
// without altering any other response shape.
type TranslationMeta struct {
	OriginalLanguage     string        `json:"original_language"`
	OriginalLanguageName string        `json:"original_language_name,omitempty"`
	WasTranslated        bool          `json:"was_translated"`
	ResponseTranslated   bool          `json:"response_translated"`
	Confidence           float64       `json:"confidence"`
	LowConfidence        bool          `json:"low_confidence,omitempty"`
	DetectionMethod      detect.Method `json:"detection_method"`
	ProcessingTimeMs     int64         `json:"processing_time_ms"`
	Error                string        `json:"error,omitempty"`
}

// Result is a generation outcome plus translation metadata.
type Result struct {
	Output          string          `json:"output"`
	Mode            Mode            `json:"mode"`
	Model           string          `json:"model,omitempty"`
	TranslationMeta TranslationMeta `json:"translation_meta"`
}

// Options configures one request through the middleware.
type Options struct {
	// Language is an explicit caller language selection; empty or "auto"
	// enables detection.
	Language string
	// TranslateResponse requests translation of the generated output back
	// to the caller's language.
	TranslateResponse bool
	QuestionCount     int
}

// Middleware wraps the content-generation component with inbound and
// outbound translation. Translation trouble degrades to passthrough;
// only generator failures and malformed input surface as errors.
type Middleware struct {
	normalizer  Normalizer
	generator   Generator
	callTimeout time.Duration
	logger      zerolog.Logger
}

func NewMiddleware(normalizer Normalizer, generator Generator, callTimeout time.Duration, logger zerolog.Logger) *Middleware {
	if callTimeout <= 0 {
		callTimeout = DefaultCallTimeout
	}
	return &Middleware{
		normalizer:  normalizer,
		generator:   generator,
		callTimeout: callTimeout,
		logger:      logger.With().Str("component", "generation").Logger(),
	}
}

// Generate translates content into the canonical language, invokes the
// generator, and optionally translates the output back to the caller's
// language.
func (m *Middleware) Generate(ctx context.Context, content string, mode Mode, opts Options) (*Result, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("content is required")
	}

	started := time.Now()

	inboundCtx, cancelInbound := context.WithTimeout(ctx, m.callTimeout)
	processed, err := m.normalizer.ProcessForGeneration(inboundCtx, content, translation.ProcessOptions{
		Language:          opts.Language,
		TranslateResponse: opts.TranslateResponse,
	})
	cancelInbound()
	if err != nil {
		return nil, err
	}

	generated, err := m.generator.Generate(ctx, Request{
		Content:       processed.CanonicalText,
		Mode:          mode,
		QuestionCount: opts.QuestionCount,
	})
	if err != nil {
		return nil, fmt.Errorf("generation failed: %w", err)
	}

	meta := TranslationMeta{
		OriginalLanguage: processed.DetectedLanguage,
		WasTranslated:    processed.TranslationNeeded,
		Confidence:       processed.Confidence,
		LowConfidence:    processed.LowConfidence,
		DetectionMethod:  processed.Method,
		Error:            processed.Error,
	}
	if info, ok := language.Lookup(processed.DetectedLanguage); ok {
		meta.OriginalLanguageName = info.Name
	}

	output := generated.Output
	if opts.TranslateResponse && processed.DetectedLanguage != m.normalizer.CanonicalLanguage() {
		outboundCtx, cancelOutbound := context.WithTimeout(ctx, m.callTimeout)
		translated := m.normalizer.ProcessResponse(outboundCtx, generated.Output, processed.DetectedLanguage)
		cancelOutbound()

		if translated.TranslationApplied {
			output = translated.Response
			meta.ResponseTranslated = true
		} else if translated.Error != "" && meta.Error == "" {
			meta.Error = translated.Error
		}
	}

	meta.ProcessingTimeMs = time.Since(started).Milliseconds() - generated.LatencyMs
	if meta.ProcessingTimeMs < 0 {
		meta.ProcessingTimeMs = 0
	}

	m.logger.Debug().
		Str("mode", string(mode)).
		Str("language", meta.OriginalLanguage).
		Bool("was_translated", meta.WasTranslated).
		Bool("response_translated", meta.ResponseTranslated).
		Int64("processing_time_ms", meta.ProcessingTimeMs).
		Msg("generation call completed")

	return &Result{
		Output:          output,
		Mode:            mode,
		Model:           generated.Model,
		TranslationMeta: meta,
	}, nil
}
