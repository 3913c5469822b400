package translation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"studyloop.dev/backend/internal/cache"
	"studyloop.dev/backend/internal/detect"
	"studyloop.dev/backend/internal/language"
)

const (
	// DefaultGatewayTimeout bounds every remote gateway call.
	DefaultGatewayTimeout = 10 * time.Second
	// DefaultBatchInterval paces batch items to respect backend rate limits.
	DefaultBatchInterval = 200 * time.Millisecond
	// DefaultConfidenceFloor marks results below it as low confidence.
	DefaultConfidenceFloor = 0.6

	serviceNone = "none"
)

// ScriptClassifier is the local script/pattern detection step.
type ScriptClassifier interface {
	Classify(text string) *detect.Result
}

// StatisticalDetector is the local n-gram detection step.
type StatisticalDetector interface {
	Detect(text string) detect.Result
}

// Options configures a Service. Zero values use the defaults above.
type Options struct {
	CanonicalLanguage string
	ConfidenceFloor   float64
	GatewayTimeout    time.Duration
	BatchInterval     time.Duration
	DetectionCache    cache.Options
	TranslationCache  cache.Options

	// Classifier and Statistical override the built-in local detectors.
	Classifier  ScriptClassifier
	Statistical StatisticalDetector
}

// Service coordinates detection strategy order, confidence thresholds,
// cache lookups, gateway calls, and fallback policy. Its outward contract
// is availability: a request never fails because of translation trouble.
type Service struct {
	registry    *Registry
	classifier  ScriptClassifier
	statistical StatisticalDetector

	detectionCache   *cache.Cache[detect.Result]
	translationCache *cache.Cache[Result]

	canonical       string
	confidenceFloor float64
	gatewayTimeout  time.Duration
	batchInterval   time.Duration

	logger zerolog.Logger
}

// Detection is one caller-facing detection outcome.
type Detection struct {
	Code       string        `json:"code"`
	Confidence float64       `json:"confidence"`
	Supported  bool          `json:"supported"`
	Name       string        `json:"name,omitempty"`
	Native     string        `json:"native,omitempty"`
	Method     detect.Method `json:"method"`
}

// Result is one translation outcome. Gateway trouble surfaces as a
// passthrough result with Error set, never as a Go error.
type Result struct {
	TranslatedText string  `json:"translated_text"`
	OriginalText   string  `json:"original_text"`
	SourceLang     string  `json:"source_lang"`
	TargetLang     string  `json:"target_lang"`
	Confidence     float64 `json:"confidence"`
	ServiceUsed    string  `json:"service_used"`
	Translated     bool    `json:"translated"`
	Error          string  `json:"error,omitempty"`
}

// ProcessOptions controls request-side processing.
type ProcessOptions struct {
	// Language is an explicit caller selection; empty or "auto" enables
	// detection. Explicit selections are ground truth with confidence 1.
	Language string
	// TranslateResponse requests response-side translation back to the
	// detected language.
	TranslateResponse bool
}

// ProcessResult is the request-scoped envelope produced before content
// reaches generation logic. CanonicalText is never empty when the input
// was non-empty.
type ProcessResult struct {
	OriginalText                 string        `json:"original_text"`
	CanonicalText                string        `json:"canonical_text"`
	DetectedLanguage             string        `json:"detected_language"`
	TranslationNeeded            bool          `json:"translation_needed"`
	ProcessingLanguage           string        `json:"processing_language"`
	Confidence                   float64       `json:"confidence"`
	Method                       detect.Method `json:"method"`
	LowConfidence                bool          `json:"low_confidence"`
	ResponseTranslationRequested bool          `json:"response_translation_requested"`
	Error                        string        `json:"error,omitempty"`
}

// ResponseResult is the response-side translation outcome.
type ResponseResult struct {
	Response           string  `json:"response"`
	OriginalResponse   string  `json:"original_response"`
	TargetLanguage     string  `json:"target_language"`
	TranslationApplied bool    `json:"translation_applied"`
	Confidence         float64 `json:"confidence"`
	Error              string  `json:"error,omitempty"`
}

// Health reports pipeline readiness.
type Health struct {
	Status             string `json:"status"` // healthy, degraded, unhealthy
	ConfigurationValid bool   `json:"configuration_valid"`
	Message            string `json:"message"`
}

func NewService(registry *Registry, logger zerolog.Logger, opts Options) *Service {
	canonical := language.NormalizeCode(opts.CanonicalLanguage)
	if canonical == "" {
		canonical = language.Canonical
	}
	floor := opts.ConfidenceFloor
	if floor <= 0 {
		floor = DefaultConfidenceFloor
	}
	gatewayTimeout := opts.GatewayTimeout
	if gatewayTimeout <= 0 {
		gatewayTimeout = DefaultGatewayTimeout
	}
	batchInterval := opts.BatchInterval
	if batchInterval <= 0 {
		batchInterval = DefaultBatchInterval
	}
	classifier := opts.Classifier
	if classifier == nil {
		classifier = detect.NewScriptClassifier()
	}
	statistical := opts.Statistical
	if statistical == nil {
		statistical = detect.NewStatisticalDetector()
	}

	return &Service{
		registry:         registry,
		classifier:       classifier,
		statistical:      statistical,
		detectionCache:   cache.New[detect.Result](opts.DetectionCache),
		translationCache: cache.New[Result](opts.TranslationCache),
		canonical:        canonical,
		confidenceFloor:  floor,
		gatewayTimeout:   gatewayTimeout,
		batchInterval:    batchInterval,
		logger:           logger.With().Str("component", "translation").Logger(),
	}
}

// CanonicalLanguage returns the processing language.
func (s *Service) CanonicalLanguage() string {
	return s.canonical
}

// ConfidenceFloor returns the low-confidence threshold.
func (s *Service) ConfidenceFloor() float64 {
	return s.confidenceFloor
}

// SupportedLanguages returns the registry table in display order.
func (s *Service) SupportedLanguages() []language.Info {
	return language.All()
}

// Detect identifies the language of text. It never returns an error for
// detection trouble; inconclusive input defaults to the canonical
// language with confidence 0.
func (s *Service) Detect(ctx context.Context, text string) Detection {
	result := s.detectLocal(ctx, text)

	detection := Detection{
		Code:       result.Code,
		Confidence: result.Confidence,
		Supported:  result.Supported,
		Method:     result.Method,
	}
	if info, ok := language.Lookup(result.Code); ok {
		detection.Name = info.Name
		detection.Native = info.Native
	}
	return detection
}

// detectLocal runs the detection strategy order: short-circuit, cache,
// script classifier, statistical detector, remote escalation. Only
// conclusive results are cached; failures are retried on the next call.
func (s *Service) detectLocal(ctx context.Context, text string) detect.Result {
	normalized := strings.TrimSpace(text)
	if detect.SignificantRunes(normalized) < detect.MinSignificantRunes {
		return s.defaultDetection()
	}

	key := cache.Key(normalized)
	if hit, ok := s.detectionCache.Get(key); ok {
		return hit
	}

	if scriptResult := s.classifier.Classify(normalized); scriptResult != nil {
		s.detectionCache.Put(key, *scriptResult)
		return *scriptResult
	}

	result := s.statistical.Detect(normalized)
	if result.Ambiguous || !result.Supported {
		if external, ok := s.detectRemote(ctx, normalized); ok {
			s.detectionCache.Put(key, external)
			return external
		}
	}

	if result.Code == "" {
		// Inconclusive everywhere; not cached so the next call retries.
		return s.defaultDetection()
	}

	s.detectionCache.Put(key, result)
	return result
}

func (s *Service) detectRemote(ctx context.Context, text string) (detect.Result, bool) {
	provider, err := s.registry.Provider("")
	if err != nil {
		return detect.Result{}, false
	}
	remote, ok := provider.(RemoteDetector)
	if !ok {
		return detect.Result{}, false
	}

	callCtx, cancel := context.WithTimeout(ctx, s.gatewayTimeout)
	defer cancel()

	detection, err := remote.DetectLanguage(callCtx, text)
	if err != nil {
		s.logger.Debug().Err(err).Msg("remote detection failed")
		return detect.Result{}, false
	}

	return detect.Result{
		Code:       detection.Code,
		Confidence: clampConfidence(detection.Confidence),
		Method:     detect.MethodExternal,
		Supported:  language.Supported(detection.Code),
	}, true
}

func (s *Service) defaultDetection() detect.Result {
	return detect.Result{
		Code:       s.canonical,
		Confidence: 0,
		Method:     detect.MethodDefault,
		Supported:  true,
	}
}

// Translate converts text into targetLang. Gateway trouble degrades to a
// passthrough of the original text with Error set; the only hard error is
// malformed input.
func (s *Service) Translate(ctx context.Context, text, sourceLang, targetLang string) (Result, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return Result{}, fmt.Errorf("text is required")
	}
	target := language.RemapBackendCode(targetLang)
	if target == "" {
		return Result{}, fmt.Errorf("target language is required")
	}

	source := language.RemapBackendCode(sourceLang)
	confidence := 1.0
	if source == "" || source == "auto" {
		detected := s.detectLocal(ctx, trimmed)
		source = detected.Code
		confidence = detected.Confidence
	}

	if source == target {
		return Result{
			TranslatedText: text,
			OriginalText:   text,
			SourceLang:     source,
			TargetLang:     target,
			Confidence:     confidence,
			ServiceUsed:    serviceNone,
		}, nil
	}

	key := cache.Key(trimmed, target)
	if hit, ok := s.translationCache.Get(key); ok {
		return hit, nil
	}

	provider, err := s.registry.Provider("")
	if err != nil {
		return s.passthrough(text, source, target, confidence, err), nil
	}

	callCtx, cancel := context.WithTimeout(ctx, s.gatewayTimeout)
	defer cancel()

	resp, err := provider.Translate(callCtx, TranslateRequest{
		Text:       trimmed,
		SourceLang: source,
		TargetLang: target,
	})
	if err != nil {
		s.logger.Warn().Err(err).Str("source", source).Str("target", target).Msg("translation fell back to passthrough")
		return s.passthrough(text, source, target, confidence, err), nil
	}

	resolvedSource := language.RemapBackendCode(resp.SourceLang)
	if resolvedSource == "" {
		resolvedSource = source
	}

	result := Result{
		TranslatedText: resp.Text,
		OriginalText:   text,
		SourceLang:     resolvedSource,
		TargetLang:     target,
		Confidence:     clampConfidence(resp.Confidence),
		ServiceUsed:    resp.ProviderName,
		Translated:     true,
	}
	s.translationCache.Put(key, result)
	return result, nil
}

// passthrough returns the original text verbatim with error metadata.
// Failed results are never cached.
func (s *Service) passthrough(text, source, target string, confidence float64, err error) Result {
	return Result{
		TranslatedText: text,
		OriginalText:   text,
		SourceLang:     source,
		TargetLang:     target,
		Confidence:     clampConfidence(confidence),
		ServiceUsed:    serviceNone,
		Error:          err.Error(),
	}
}

// BatchTranslate translates texts one by one with inter-item pacing so a
// large batch does not trip backend rate limits. Per-item trouble follows
// the same passthrough policy as Translate.
func (s *Service) BatchTranslate(ctx context.Context, texts []string, sourceLang, targetLang string) []Result {
	limiter := rate.NewLimiter(rate.Every(s.batchInterval), 1)

	results := make([]Result, 0, len(texts))
	for _, text := range texts {
		if err := limiter.Wait(ctx); err != nil {
			results = append(results, s.passthrough(text, language.RemapBackendCode(sourceLang), language.RemapBackendCode(targetLang), 0, err))
			continue
		}

		result, err := s.Translate(ctx, text, sourceLang, targetLang)
		if err != nil {
			result = s.passthrough(text, language.RemapBackendCode(sourceLang), language.RemapBackendCode(targetLang), 0, err)
		}
		results = append(results, result)
	}
	return results
}

// ProcessForGeneration normalizes content into the canonical processing
// language before it reaches generation logic. The only hard error is
// empty content.
func (s *Service) ProcessForGeneration(ctx context.Context, content string, opts ProcessOptions) (*ProcessResult, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("content is required")
	}

	var detected detect.Result
	if explicit := language.RemapBackendCode(opts.Language); explicit != "" && explicit != "auto" {
		detected = detect.Result{
			Code:       explicit,
			Confidence: 1,
			Method:     detect.MethodExplicit,
			Supported:  language.Supported(explicit),
		}
	} else {
		detected = s.detectLocal(ctx, content)
	}

	result := &ProcessResult{
		OriginalText:                 content,
		CanonicalText:                content,
		DetectedLanguage:             detected.Code,
		ProcessingLanguage:           s.canonical,
		Confidence:                   detected.Confidence,
		Method:                       detected.Method,
		LowConfidence:                detected.Confidence < s.confidenceFloor,
		ResponseTranslationRequested: opts.TranslateResponse,
	}

	if detected.Code == s.canonical {
		return result, nil
	}

	translated, err := s.Translate(ctx, content, detected.Code, s.canonical)
	if err != nil {
		return nil, err
	}
	if translated.Translated {
		result.CanonicalText = translated.TranslatedText
		result.TranslationNeeded = true
	} else {
		result.Error = translated.Error
	}
	return result, nil
}

// ProcessResponse translates generated output back to the caller's
// language, mirroring the request-side fallback policy.
func (s *Service) ProcessResponse(ctx context.Context, responseText, targetLang string) ResponseResult {
	target := language.RemapBackendCode(targetLang)
	out := ResponseResult{
		Response:         responseText,
		OriginalResponse: responseText,
		TargetLanguage:   target,
	}

	if strings.TrimSpace(responseText) == "" || target == "" || target == s.canonical {
		return out
	}

	translated, err := s.Translate(ctx, responseText, s.canonical, target)
	if err != nil {
		out.Error = err.Error()
		return out
	}
	if translated.Translated {
		out.Response = translated.TranslatedText
		out.TranslationApplied = true
		out.Confidence = translated.Confidence
	} else {
		out.Error = translated.Error
	}
	return out
}

// HealthCheck reports whether the pipeline is fully operational. Missing
// gateway configuration degrades to local detection plus passthrough
// rather than failing.
func (s *Service) HealthCheck() Health {
	if !language.Supported(s.canonical) {
		return Health{
			Status:             "unhealthy",
			ConfigurationValid: false,
			Message:            fmt.Sprintf("canonical language %q is not in the registry", s.canonical),
		}
	}

	provider, err := s.registry.Provider("")
	if err != nil {
		return Health{
			Status:             "degraded",
			ConfigurationValid: true,
			Message:            "no translation provider registered; detection is local-only and translation degrades to passthrough",
		}
	}

	return Health{
		Status:             "healthy",
		ConfigurationValid: true,
		Message: fmt.Sprintf(
			"provider %s ready; detection cache %d entries, translation cache %d entries",
			provider.Name(),
			s.detectionCache.Stats().Size,
			s.translationCache.Stats().Size,
		),
	}
}

// EvictExpired drops expired entries from both caches and returns the
// total evicted.
func (s *Service) EvictExpired() int {
	return s.detectionCache.EvictExpired() + s.translationCache.EvictExpired()
}

func clampConfidence(value float64) float64 {
	if value < 0 {
		return 0
	}
	if value > 1 {
		return 1
	}
	return value
}
