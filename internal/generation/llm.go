package generation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// DefaultEndpoint points to a local OpenAI-compatible endpoint.
	DefaultEndpoint = "http://127.0.0.1:8845/v1"
	// DefaultModel is the default generation model name.
	DefaultModel = "qwen/Qwen2.5-7B-Instruct"

	defaultQuestionCount = 5
)

// LLMGenerator produces summaries and exam questions by calling an
// OpenAI-compatible chat completions endpoint.
type LLMGenerator struct {
	endpointURL string
	model       string
	client      *http.Client
}

func NewLLMGenerator(endpoint, model string) *LLMGenerator {
	trimmedModel := strings.TrimSpace(model)
	if trimmedModel == "" {
		trimmedModel = DefaultModel
	}
	return &LLMGenerator{
		endpointURL: chatCompletionsURL(endpoint),
		model:       trimmedModel,
		client: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

func (g *LLMGenerator) Name() string {
	return "llm"
}

// ModelName returns the configured model identifier.
func (g *LLMGenerator) ModelName() string {
	if g == nil {
		return ""
	}
	return g.model
}

func (g *LLMGenerator) Generate(ctx context.Context, req Request) (*Response, error) {
	if g == nil {
		return nil, fmt.Errorf("llm generator is nil")
	}
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, fmt.Errorf("content is required")
	}

	prompt, err := buildPrompt(req.Mode, content, req.QuestionCount)
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(chatRequest{
		Model: g.model,
		Messages: []chatMessage{
			{
				Role:    "user",
				Content: prompt,
			},
		},
		Temperature: 0.7,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal generation request: %w", err)
	}

	started := time.Now()
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpointURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build generation request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("generation endpoint call failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read generation response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		message := strings.TrimSpace(string(respBody))
		var errPayload chatErrorResponse
		if unmarshalErr := json.Unmarshal(respBody, &errPayload); unmarshalErr == nil {
			if msg := strings.TrimSpace(errPayload.Error.Message); msg != "" {
				message = msg
			}
		}
		return nil, fmt.Errorf("generation endpoint returned status %d: %s", resp.StatusCode, message)
	}

	var parsed chatResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("decode generation response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return nil, fmt.Errorf("generation response missing choices")
	}

	output := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if output == "" {
		return nil, fmt.Errorf("generation response was empty")
	}

	return &Response{
		Output:    output,
		Model:     g.model,
		LatencyMs: time.Since(started).Milliseconds(),
	}, nil
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type chatErrorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

func buildPrompt(mode Mode, content string, questionCount int) (string, error) {
	switch mode {
	case ModeSummary:
		return fmt.Sprintf("Summarize the following study material in clear, concise prose. Keep key terms and facts.\n\n%s", content), nil
	case ModeExam:
		count := questionCount
		if count <= 0 {
			count = defaultQuestionCount
		}
		return fmt.Sprintf("Write %d exam questions covering the following study material. Number each question and include an answer key at the end.\n\n%s", count, content), nil
	default:
		return "", fmt.Errorf("unknown generation mode %q", mode)
	}
}

func chatCompletionsURL(raw string) string {
	endpoint := strings.TrimSpace(raw)
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if !strings.Contains(endpoint, "://") {
		endpoint = "http://" + endpoint
	}

	parsed, err := url.Parse(endpoint)
	if err != nil || strings.TrimSpace(parsed.Host) == "" {
		return DefaultEndpoint + "/chat/completions"
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
