package translation

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"studyloop.dev/backend/internal/language"
)

// DefaultRemoteEndpoint points to a LibreTranslate-compatible backend.
const DefaultRemoteEndpoint = "http://127.0.0.1:5000"

// translationConfidence is attached to successful remote translations;
// the backend reports detection confidence but not translation quality.
const translationConfidence = 0.9

// RemoteProvider is the sole network boundary to the external
// detection/translation backend. It speaks the LibreTranslate wire
// format: POST /translate and POST /detect with JSON bodies.
type RemoteProvider struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewRemoteProvider builds a remote provider for the given endpoint.
// Per-call deadlines come from the caller's context; the client timeout
// is a hard upper bound only.
func NewRemoteProvider(endpoint, apiKey string) *RemoteProvider {
	return &RemoteProvider{
		baseURL: normalizeBaseURL(endpoint),
		apiKey:  strings.TrimSpace(apiKey),
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

func (p *RemoteProvider) Name() string {
	return "remote"
}

func (p *RemoteProvider) SupportedLanguages() []string {
	return language.Codes()
}

type remoteTranslateRequest struct {
	Q      string `json:"q"`
	Source string `json:"source"`
	Target string `json:"target"`
	Format string `json:"format"`
	APIKey string `json:"api_key,omitempty"`
}

type remoteTranslateResponse struct {
	TranslatedText   string `json:"translatedText"`
	DetectedLanguage *struct {
		Confidence float64 `json:"confidence"`
		Language   string  `json:"language"`
	} `json:"detectedLanguage,omitempty"`
}

type remoteDetectRequest struct {
	Q      string `json:"q"`
	APIKey string `json:"api_key,omitempty"`
}

type remoteDetectCandidate struct {
	Confidence float64 `json:"confidence"`
	Language   string  `json:"language"`
}

type remoteErrorResponse struct {
	Error string `json:"error"`
}

func (p *RemoteProvider) Translate(ctx context.Context, req TranslateRequest) (*TranslateResponse, error) {
	if p == nil {
		return nil, fmt.Errorf("remote provider is nil")
	}
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, fmt.Errorf("text is required")
	}
	targetLang := language.RemapBackendCode(req.TargetLang)
	if targetLang == "" {
		return nil, fmt.Errorf("target language is required")
	}
	sourceLang := language.RemapBackendCode(req.SourceLang)
	if sourceLang == "" {
		sourceLang = "auto"
	}

	body := remoteTranslateRequest{
		Q:      text,
		Source: sourceLang,
		Target: targetLang,
		Format: "text",
		APIKey: p.apiKey,
	}

	started := time.Now()
	var parsed remoteTranslateResponse
	if err := p.post(ctx, "translate", body, &parsed); err != nil {
		return nil, err
	}

	translated := strings.TrimSpace(parsed.TranslatedText)
	if translated == "" {
		return nil, &GatewayError{Op: "translate", Err: fmt.Errorf("%w: empty translation", ErrGatewayUnavailable)}
	}

	resolvedSource := sourceLang
	if parsed.DetectedLanguage != nil {
		if remapped := language.RemapBackendCode(parsed.DetectedLanguage.Language); remapped != "" {
			resolvedSource = remapped
		}
	}

	return &TranslateResponse{
		Text:         translated,
		SourceLang:   resolvedSource,
		TargetLang:   targetLang,
		ProviderName: p.Name(),
		Confidence:   translationConfidence,
		LatencyMs:    time.Since(started).Milliseconds(),
	}, nil
}

// DetectLanguage asks the backend to detect the language of text and
// remaps the backend code to a canonical registry code.
func (p *RemoteProvider) DetectLanguage(ctx context.Context, text string) (*RemoteDetection, error) {
	if p == nil {
		return nil, fmt.Errorf("remote provider is nil")
	}
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, fmt.Errorf("text is required")
	}

	var candidates []remoteDetectCandidate
	if err := p.post(ctx, "detect", remoteDetectRequest{Q: trimmed, APIKey: p.apiKey}, &candidates); err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, &GatewayError{Op: "detect", Err: fmt.Errorf("%w: no detection candidates", ErrGatewayUnavailable)}
	}

	best := candidates[0]
	for _, candidate := range candidates[1:] {
		if candidate.Confidence > best.Confidence {
			best = candidate
		}
	}

	code := language.RemapBackendCode(best.Language)
	if code == "" {
		return nil, &GatewayError{Op: "detect", Err: fmt.Errorf("%w: unusable language code %q", ErrGatewayUnavailable, best.Language)}
	}

	confidence := best.Confidence
	if confidence > 1 {
		// The backend reports percentages.
		confidence /= 100
	}
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}

	return &RemoteDetection{Code: code, Confidence: confidence}, nil
}

func (p *RemoteProvider) post(ctx context.Context, op string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s request: %w", op, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/"+op, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build %s request: %w", op, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(httpReq)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return &GatewayError{Op: op, Err: fmt.Errorf("%w: %v", ErrGatewayTimeout, err)}
		}
		if errors.Is(err, context.Canceled) {
			return &GatewayError{Op: op, Err: err}
		}
		return &GatewayError{Op: op, Err: fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &GatewayError{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("%w: read response: %v", ErrGatewayUnavailable, err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &GatewayError{Op: op, Status: resp.StatusCode, Err: classifyStatus(resp.StatusCode, respBody)}
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return &GatewayError{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("%w: decode response: %v", ErrGatewayUnavailable, err)}
	}
	return nil
}

func classifyStatus(status int, body []byte) error {
	message := strings.TrimSpace(string(body))
	var payload remoteErrorResponse
	if err := json.Unmarshal(body, &payload); err == nil && strings.TrimSpace(payload.Error) != "" {
		message = strings.TrimSpace(payload.Error)
	}

	switch {
	case status == http.StatusTooManyRequests:
		return fmt.Errorf("%w: %s", ErrRateLimited, message)
	case status == http.StatusBadRequest && strings.Contains(strings.ToLower(message), "language"):
		return fmt.Errorf("%w: %s", ErrUnsupportedLanguagePair, message)
	case status >= 400 && status < 500:
		return fmt.Errorf("%w: status %d: %s", ErrGatewayUnavailable, status, message)
	default:
		return fmt.Errorf("%w: status %d: %s", ErrGatewayUnavailable, status, message)
	}
}

func normalizeBaseURL(raw string) string {
	endpoint := strings.TrimSpace(raw)
	if endpoint == "" {
		return DefaultRemoteEndpoint
	}
	if !strings.Contains(endpoint, "://") {
		endpoint = "http://" + endpoint
	}

	parsed, err := url.Parse(endpoint)
	if err != nil || strings.TrimSpace(parsed.Host) == "" {
		return DefaultRemoteEndpoint
	}
	parsed.Path = strings.TrimRight(parsed.Path, "/")
	return parsed.String()
}
