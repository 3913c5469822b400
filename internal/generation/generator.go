package generation

import (
	"context"
	"fmt"
	"strings"
)

// Mode selects what the generator produces from study content.
type Mode string

const (
	ModeSummary Mode = "summary"
	ModeExam    Mode = "exam"
)

// ParseMode validates a caller-supplied mode string.
func ParseMode(raw string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(raw))) {
	case ModeSummary:
		return ModeSummary, nil
	case ModeExam:
		return ModeExam, nil
	default:
		return "", fmt.Errorf("unknown generation mode %q", raw)
	}
}

// Request carries canonical-language content into the generator.
type Request struct {
	Content string
	Mode    Mode
	// QuestionCount applies to exam mode only; zero uses the default.
	QuestionCount int
}

// Response is the generated output. Its internal structure is opaque to
// the normalization pipeline.
type Response struct {
	Output    string
	Model     string
	LatencyMs int64
}

// Generator is the boundary to the content-generation component. It
// receives canonical-language text; language handling never leaks past
// this interface.
type Generator interface {
	Generate(ctx context.Context, req Request) (*Response, error)
	Name() string
}
