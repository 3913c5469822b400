package generation

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestLLMGeneratorGenerate(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if len(req.Messages) != 1 || !strings.Contains(req.Messages[0].Content, "photosynthesis") {
			t.Errorf("unexpected prompt: %+v", req.Messages)
		}
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"A summary."}}]}`))
	}))
	defer server.Close()

	generator := NewLLMGenerator(server.URL, "test-model")
	resp, err := generator.Generate(context.Background(), Request{
		Content: "Notes about photosynthesis.",
		Mode:    ModeSummary,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Output != "A summary." {
		t.Fatalf("unexpected output: %q", resp.Output)
	}
	if resp.Model != "test-model" {
		t.Fatalf("unexpected model: %q", resp.Model)
	}
}

func TestLLMGeneratorSurfacesBackendErrors(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"message":"model overloaded"}}`))
	}))
	defer server.Close()

	generator := NewLLMGenerator(server.URL, "")
	_, err := generator.Generate(context.Background(), Request{Content: "notes", Mode: ModeSummary})
	if err == nil || !strings.Contains(err.Error(), "model overloaded") {
		t.Fatalf("expected backend error message, got %v", err)
	}
}

func TestBuildPrompt(t *testing.T) {
	t.Parallel()

	summary, err := buildPrompt(ModeSummary, "content", 0)
	if err != nil || !strings.Contains(summary, "Summarize") {
		t.Fatalf("unexpected summary prompt: %q %v", summary, err)
	}

	exam, err := buildPrompt(ModeExam, "content", 7)
	if err != nil || !strings.Contains(exam, "7 exam questions") {
		t.Fatalf("unexpected exam prompt: %q %v", exam, err)
	}

	defaulted, err := buildPrompt(ModeExam, "content", 0)
	if err != nil || !strings.Contains(defaulted, "5 exam questions") {
		t.Fatalf("expected default question count, got %q %v", defaulted, err)
	}

	if _, err := buildPrompt(Mode("essay"), "content", 0); err == nil {
		t.Fatalf("expected error for unknown mode")
	}
}

func TestChatCompletionsURL(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"":                                DefaultEndpoint + "/chat/completions",
		"localhost:8845":                  "http://localhost:8845/v1/chat/completions",
		"http://host/v1":                  "http://host/v1/chat/completions",
		"http://host/v1/chat/completions": "http://host/v1/chat/completions",
	}
	for raw, want := range cases {
		if got := chatCompletionsURL(raw); got != want {
			t.Fatalf("chatCompletionsURL(%q) = %q, want %q", raw, got, want)
		}
	}
}
