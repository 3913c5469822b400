package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"studyloop.dev/backend/internal/generation"
	"studyloop.dev/backend/internal/translation"
)

type stubGenerator struct{}

func (stubGenerator) Name() string { return "stub" }

func (stubGenerator) Generate(_ context.Context, req generation.Request) (*generation.Response, error) {
	return &generation.Response{Output: "generated: " + req.Content, Model: "stub-model"}, nil
}

func newTestServer(t *testing.T) *Server {
	t.Helper()

	// No provider registered: detection is local-only and translation
	// degrades to passthrough, which is exactly the availability contract
	// the API guarantees.
	service := translation.NewService(translation.NewRegistry(""), zerolog.Nop(), translation.Options{})
	middleware := generation.NewMiddleware(service, stubGenerator{}, 0, zerolog.Nop())
	return NewServer(service, middleware, zerolog.Nop(), Options{})
}

func doRequest(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.buildEcho().ServeHTTP(rec, req)
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var envelope struct {
		Status string         `json:"status"`
		Data   map[string]any `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v (%s)", err, rec.Body.String())
	}
	if envelope.Status != "success" {
		t.Fatalf("unexpected status %q: %s", envelope.Status, rec.Body.String())
	}
	return envelope.Data
}

func TestHealthEndpoint(t *testing.T) {
	t.Parallel()

	rec := doRequest(t, newTestServer(t), http.MethodGet, "/api/v1/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}

	data := decodeData(t, rec)
	if data["status"] != "degraded" {
		t.Fatalf("expected degraded without a provider, got %v", data["status"])
	}
	if data["configuration_valid"] != true {
		t.Fatalf("expected valid configuration, got %v", data["configuration_valid"])
	}
}

func TestLanguagesEndpoint(t *testing.T) {
	t.Parallel()

	rec := doRequest(t, newTestServer(t), http.MethodGet, "/api/v1/languages", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}

	data := decodeData(t, rec)
	if count, _ := data["count"].(float64); count != 16 {
		t.Fatalf("expected 16 languages, got %v", data["count"])
	}
	if data["canonical_language"] != "en" {
		t.Fatalf("unexpected canonical language: %v", data["canonical_language"])
	}

	items, ok := data["items"].([]any)
	if !ok || len(items) != 16 {
		t.Fatalf("unexpected items: %v", data["items"])
	}
	seen := make(map[string]struct{}, len(items))
	for _, raw := range items {
		item := raw.(map[string]any)
		code := item["code"].(string)
		if _, dup := seen[code]; dup {
			t.Fatalf("duplicate language code %s", code)
		}
		seen[code] = struct{}{}
	}
}

func TestDetectEndpoint(t *testing.T) {
	t.Parallel()

	rec := doRequest(t, newTestServer(t), http.MethodPost, "/api/v1/detect", `{"text":"Hello world"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d (%s)", rec.Code, rec.Body.String())
	}

	data := decodeData(t, rec)
	if data["code"] != "en" {
		t.Fatalf("expected en, got %v", data["code"])
	}
	if data["supported"] != true {
		t.Fatalf("expected supported=true")
	}
}

func TestDetectEndpointRejectsInvalidBody(t *testing.T) {
	t.Parallel()

	server := newTestServer(t)
	for _, body := range []string{``, `{}`, `{"text":""}`, `{"text":123}`, `{"text":"hi","extra":1}`} {
		rec := doRequest(t, server, http.MethodPost, "/api/v1/detect", body)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("body %q: expected 400, got %d", body, rec.Code)
		}
	}
}

func TestTranslateEndpointDegradesToPassthrough(t *testing.T) {
	t.Parallel()

	rec := doRequest(t, newTestServer(t), http.MethodPost, "/api/v1/translate",
		`{"text":"Hello world","source_lang":"en","target_lang":"hi"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("translation trouble must not fail the request, got %d (%s)", rec.Code, rec.Body.String())
	}

	data := decodeData(t, rec)
	if data["translated_text"] != "Hello world" {
		t.Fatalf("expected passthrough text, got %v", data["translated_text"])
	}
	if errMsg, _ := data["error"].(string); errMsg == "" {
		t.Fatalf("expected error metadata on passthrough")
	}
}

func TestBatchTranslateEndpoint(t *testing.T) {
	t.Parallel()

	rec := doRequest(t, newTestServer(t), http.MethodPost, "/api/v1/translate/batch",
		`{"texts":["one","two"],"target_lang":"en","source_lang":"en"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d (%s)", rec.Code, rec.Body.String())
	}

	data := decodeData(t, rec)
	if count, _ := data["count"].(float64); count != 2 {
		t.Fatalf("expected 2 results, got %v", data["count"])
	}
}

func TestGenerateEndpoint(t *testing.T) {
	t.Parallel()

	rec := doRequest(t, newTestServer(t), http.MethodPost, "/api/v1/generate",
		`{"content":"Notes about photosynthesis and cell biology.","type":"summary"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d (%s)", rec.Code, rec.Body.String())
	}

	data := decodeData(t, rec)
	output, _ := data["output"].(string)
	if !strings.HasPrefix(output, "generated: ") {
		t.Fatalf("unexpected output: %q", output)
	}

	meta, ok := data["translation_meta"].(map[string]any)
	if !ok {
		t.Fatalf("expected translation_meta, got %v", data)
	}
	if meta["original_language"] != "en" {
		t.Fatalf("unexpected original language: %v", meta["original_language"])
	}
	if meta["was_translated"] != false {
		t.Fatalf("English content must not be translated")
	}
}

func TestGenerateEndpointRejectsUnknownType(t *testing.T) {
	t.Parallel()

	rec := doRequest(t, newTestServer(t), http.MethodPost, "/api/v1/generate",
		`{"content":"Notes.","type":"essay"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d (%s)", rec.Code, rec.Body.String())
	}
}
