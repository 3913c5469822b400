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

const (
	// DefaultLLMEndpoint points to a local OpenAI-compatible endpoint.
	DefaultLLMEndpoint = "http://127.0.0.1:8845/v1"
	// DefaultLLMModel is the default translation model name.
	DefaultLLMModel = "tencent/HY-MT1.5-7B"

	llmTranslationConfidence = 0.85
)

// LLMProvider translates text by calling an OpenAI-compatible chat
// completions endpoint. It has no detection capability.
type LLMProvider struct {
	endpointURL string
	model       string
	client      *http.Client
}

// NewLLMProvider builds an LLM provider for the given endpoint/model.
func NewLLMProvider(endpoint, model string) *LLMProvider {
	trimmedModel := strings.TrimSpace(model)
	if trimmedModel == "" {
		trimmedModel = DefaultLLMModel
	}
	return &LLMProvider{
		endpointURL: chatCompletionsURL(normalizeLLMEndpoint(endpoint)),
		model:       trimmedModel,
		client: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

func (p *LLMProvider) Name() string {
	return "llm"
}

// ModelName returns the configured model identifier.
func (p *LLMProvider) ModelName() string {
	if p == nil {
		return ""
	}
	return p.model
}

func (p *LLMProvider) SupportedLanguages() []string {
	return language.Codes()
}

func (p *LLMProvider) Translate(ctx context.Context, req TranslateRequest) (*TranslateResponse, error) {
	if p == nil {
		return nil, fmt.Errorf("llm provider is nil")
	}
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, fmt.Errorf("text is required")
	}

	sourceLang := language.RemapBackendCode(req.SourceLang)
	targetLang := language.RemapBackendCode(req.TargetLang)
	if targetLang == "" {
		return nil, fmt.Errorf("target language is required")
	}

	prompt := buildTranslationPrompt(text, targetLang)
	body, err := json.Marshal(llmChatRequest{
		Model: p.model,
		Messages: []llmChatMessage{
			{
				Role:    "user",
				Content: prompt,
			},
		},
		Temperature: 0.7,
		TopP:        0.6,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal translation request: %w", err)
	}

	started := time.Now()
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpointURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build translation request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(httpReq)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, &GatewayError{Op: "translate", Err: fmt.Errorf("%w: %v", ErrGatewayTimeout, err)}
		}
		return nil, &GatewayError{Op: "translate", Err: fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &GatewayError{Op: "translate", Status: resp.StatusCode, Err: fmt.Errorf("%w: read response: %v", ErrGatewayUnavailable, err)}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errPayload llmChatErrorResponse
		message := strings.TrimSpace(string(respBody))
		if unmarshalErr := json.Unmarshal(respBody, &errPayload); unmarshalErr == nil {
			if msg := strings.TrimSpace(errPayload.Error.Message); msg != "" {
				message = msg
			}
		}
		return nil, &GatewayError{Op: "translate", Status: resp.StatusCode, Err: classifyStatus(resp.StatusCode, []byte(message))}
	}

	var parsed llmChatResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, &GatewayError{Op: "translate", Status: resp.StatusCode, Err: fmt.Errorf("%w: decode response: %v", ErrGatewayUnavailable, err)}
	}
	if len(parsed.Choices) == 0 {
		return nil, &GatewayError{Op: "translate", Status: resp.StatusCode, Err: fmt.Errorf("%w: response missing choices", ErrGatewayUnavailable)}
	}

	translated := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if translated == "" {
		return nil, &GatewayError{Op: "translate", Status: resp.StatusCode, Err: fmt.Errorf("%w: empty translation", ErrGatewayUnavailable)}
	}

	return &TranslateResponse{
		Text:         translated,
		SourceLang:   sourceLang,
		TargetLang:   targetLang,
		ProviderName: p.Name(),
		Confidence:   llmTranslationConfidence,
		LatencyMs:    time.Since(started).Milliseconds(),
	}, nil
}

type llmChatRequest struct {
	Model       string           `json:"model"`
	Messages    []llmChatMessage `json:"messages"`
	Temperature float64          `json:"temperature,omitempty"`
	TopP        float64          `json:"top_p,omitempty"`
}

type llmChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type llmChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type llmChatErrorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

func buildTranslationPrompt(text, targetLang string) string {
	target := targetLang
	if info, ok := language.Lookup(targetLang); ok {
		target = info.Name
	}
	return fmt.Sprintf("Translate the following segment into %s, without additional explanation.\n\n%s", target, text)
}

func normalizeLLMEndpoint(raw string) string {
	endpoint := strings.TrimSpace(raw)
	if endpoint == "" {
		return DefaultLLMEndpoint
	}
	if !strings.Contains(endpoint, "://") {
		endpoint = "http://" + endpoint
	}

	parsed, err := url.Parse(endpoint)
	if err != nil || strings.TrimSpace(parsed.Host) == "" {
		return DefaultLLMEndpoint
	}
	parsed.Path = strings.TrimRight(parsed.Path, "/")
	if parsed.Path == "" {
		parsed.Path = "/v1"
	}
	return parsed.String()
}

func chatCompletionsURL(endpoint string) string {
	parsed, err := url.Parse(endpoint)
	if err != nil || strings.TrimSpace(parsed.Host) == "" {
		return DefaultLLMEndpoint + "/chat/completions"
	}

	path := strings.TrimRight(parsed.Path, "/")
	switch {
	case strings.HasSuffix(path, "/chat/completions"):
		parsed.Path = path
	case strings.HasSuffix(path, "/v1"):
		parsed.Path = path + "/chat/completions"
	case path == "":
		parsed.Path = "/v1/chat/completions"
	default:
		parsed.Path = path + "/v1/chat/completions"
	}

	return parsed.String()
}
