package httpapi

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"studyloop.dev/backend/internal/generation"
	"studyloop.dev/backend/internal/payloadschema"
)

// maxBodyBytes bounds request bodies well above the schema text limits.
const maxBodyBytes = 1 << 20

func (s *Server) handleHealth(c echo.Context) error {
	health := s.translator.HealthCheck()
	return success(c, map[string]any{
		"service":             "studyloop",
		"status":              health.Status,
		"configuration_valid": health.ConfigurationValid,
		"message":             health.Message,
	})
}

func (s *Server) handleLanguages(c echo.Context) error {
	languages := s.translator.SupportedLanguages()
	return success(c, map[string]any{
		"items":              languages,
		"count":              len(languages),
		"canonical_language": s.translator.CanonicalLanguage(),
	})
}

func (s *Server) handleDetect(c echo.Context) error {
	payload, err := readBody(c)
	if err != nil {
		return failValidation(c, map[string]string{"body": err.Error()})
	}

	req, err := payloadschema.ValidateDetectRequest(payload)
	if err != nil {
		return failValidation(c, map[string]string{"body": err.Error()})
	}

	detection := s.translator.Detect(c.Request().Context(), req.Text)
	return success(c, detection)
}

func (s *Server) handleTranslate(c echo.Context) error {
	payload, err := readBody(c)
	if err != nil {
		return failValidation(c, map[string]string{"body": err.Error()})
	}

	req, err := payloadschema.ValidateTranslateRequest(payload)
	if err != nil {
		return failValidation(c, map[string]string{"body": err.Error()})
	}

	result, err := s.translator.Translate(c.Request().Context(), req.Text, req.SourceLang, req.TargetLang)
	if err != nil {
		return failValidation(c, map[string]string{"body": err.Error()})
	}
	return success(c, result)
}

func (s *Server) handleBatchTranslate(c echo.Context) error {
	payload, err := readBody(c)
	if err != nil {
		return failValidation(c, map[string]string{"body": err.Error()})
	}

	req, err := payloadschema.ValidateBatchTranslateRequest(payload)
	if err != nil {
		return failValidation(c, map[string]string{"body": err.Error()})
	}

	results := s.translator.BatchTranslate(c.Request().Context(), req.Texts, req.SourceLang, req.TargetLang)
	return success(c, map[string]any{
		"items": results,
		"count": len(results),
	})
}

func (s *Server) handleGenerate(c echo.Context) error {
	if s.generator == nil {
		return fail(c, http.StatusServiceUnavailable, "Generation is not configured", nil)
	}

	payload, err := readBody(c)
	if err != nil {
		return failValidation(c, map[string]string{"body": err.Error()})
	}

	req, err := payloadschema.ValidateGenerateRequest(payload)
	if err != nil {
		return failValidation(c, map[string]string{"body": err.Error()})
	}

	mode, err := generation.ParseMode(req.Type)
	if err != nil {
		return failValidation(c, map[string]string{"type": err.Error()})
	}

	result, err := s.generator.Generate(c.Request().Context(), req.Content, mode, generation.Options{
		Language:          req.Language,
		TranslateResponse: req.TranslateResponse,
		QuestionCount:     req.QuestionCount,
	})
	if err != nil {
		s.logger.Error().Err(err).Str("mode", string(mode)).Msg("generation failed")
		return internalError(c, "Generation failed")
	}

	return successWithStatus(c, http.StatusOK, result)
}

func readBody(c echo.Context) (json.RawMessage, error) {
	body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxBodyBytes))
	if err != nil {
		return nil, err
	}
	return json.RawMessage(body), nil
}
