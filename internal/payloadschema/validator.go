// Package payloadschema validates API request bodies against embedded
// JSON Schemas. Schema violations are the only hard 4xx errors the API
// produces; translation trouble never fails a request.
package payloadschema

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed detect_request.schema.json
var detectRequestSchemaJSON string

//go:embed translate_request.schema.json
var translateRequestSchemaJSON string

//go:embed batch_translate_request.schema.json
var batchTranslateRequestSchemaJSON string

//go:embed generate_request.schema.json
var generateRequestSchemaJSON string

type DetectRequest struct {
	Text string `json:"text"`
}

type TranslateRequest struct {
	Text       string `json:"text"`
	SourceLang string `json:"source_lang,omitempty"`
	TargetLang string `json:"target_lang"`
}

type BatchTranslateRequest struct {
	Texts      []string `json:"texts"`
	SourceLang string   `json:"source_lang,omitempty"`
	TargetLang string   `json:"target_lang"`
}

type GenerateRequest struct {
	Content           string `json:"content"`
	Type              string `json:"type"`
	Language          string `json:"language,omitempty"`
	TranslateResponse bool   `json:"translate_response,omitempty"`
	QuestionCount     int    `json:"question_count,omitempty"`
}

var (
	compileOnce        sync.Once
	compiledSchemas    map[string]*jsonschema.Schema
	compiledSchemasErr error
)

func ValidateDetectRequest(payload json.RawMessage) (*DetectRequest, error) {
	var req DetectRequest
	if err := validate("detect_request.schema.json", payload, &req); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Text) == "" {
		return nil, fmt.Errorf("text must not be blank")
	}
	return &req, nil
}

func ValidateTranslateRequest(payload json.RawMessage) (*TranslateRequest, error) {
	var req TranslateRequest
	if err := validate("translate_request.schema.json", payload, &req); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Text) == "" {
		return nil, fmt.Errorf("text must not be blank")
	}
	return &req, nil
}

func ValidateBatchTranslateRequest(payload json.RawMessage) (*BatchTranslateRequest, error) {
	var req BatchTranslateRequest
	if err := validate("batch_translate_request.schema.json", payload, &req); err != nil {
		return nil, err
	}
	for i, text := range req.Texts {
		if strings.TrimSpace(text) == "" {
			return nil, fmt.Errorf("texts[%d] must not be blank", i)
		}
	}
	return &req, nil
}

func ValidateGenerateRequest(payload json.RawMessage) (*GenerateRequest, error) {
	var req GenerateRequest
	if err := validate("generate_request.schema.json", payload, &req); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Content) == "" {
		return nil, fmt.Errorf("content must not be blank")
	}
	return &req, nil
}

func validate(schemaName string, payload json.RawMessage, out any) error {
	value, err := decodeStrictJSON(payload)
	if err != nil {
		return fmt.Errorf("decode payload JSON: %w", err)
	}

	schema, err := loadSchema(schemaName)
	if err != nil {
		return fmt.Errorf("load schema: %w", err)
	}

	if err := schema.Validate(value); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}

	normalized, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("normalize payload JSON: %w", err)
	}
	if err := json.Unmarshal(normalized, out); err != nil {
		return fmt.Errorf("unmarshal payload: %w", err)
	}
	return nil
}

func loadSchema(name string) (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		sources := map[string]string{
			"detect_request.schema.json":          detectRequestSchemaJSON,
			"translate_request.schema.json":       translateRequestSchemaJSON,
			"batch_translate_request.schema.json": batchTranslateRequestSchemaJSON,
			"generate_request.schema.json":        generateRequestSchemaJSON,
		}

		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		compiler.AssertFormat = true

		compiled := make(map[string]*jsonschema.Schema, len(sources))
		for schemaName, source := range sources {
			if err := compiler.AddResource(schemaName, strings.NewReader(source)); err != nil {
				compiledSchemasErr = fmt.Errorf("add schema resource %s: %w", schemaName, err)
				return
			}
			schema, err := compiler.Compile(schemaName)
			if err != nil {
				compiledSchemasErr = fmt.Errorf("compile schema %s: %w", schemaName, err)
				return
			}
			compiled[schemaName] = schema
		}
		compiledSchemas = compiled
	})

	if compiledSchemasErr != nil {
		return nil, compiledSchemasErr
	}
	schema, ok := compiledSchemas[name]
	if !ok {
		return nil, fmt.Errorf("schema %s not initialized", name)
	}
	return schema, nil
}

func decodeStrictJSON(raw []byte) (any, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("payload is empty")
	}

	decoder := json.NewDecoder(bytes.NewReader(trimmed))
	decoder.UseNumber()

	var value any
	if err := decoder.Decode(&value); err != nil {
		return nil, err
	}

	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		return nil, fmt.Errorf("payload contains trailing content")
	}

	return value, nil
}
