package translation

import (
	"errors"
	"fmt"
)

// Gateway error taxonomy. Providers always return one of these wrapped in
// a GatewayError; they never return an empty result silently. The
// orchestrator is the single place that converts gateway errors into a
// graceful fallback, so none of them propagate past it.
var (
	ErrGatewayUnavailable      = errors.New("translation gateway unavailable")
	ErrUnsupportedLanguagePair = errors.New("unsupported language pair")
	ErrGatewayTimeout          = errors.New("translation gateway timeout")
	ErrRateLimited             = errors.New("translation gateway rate limited")
)

// GatewayError wraps a backend failure with the failing operation.
type GatewayError struct {
	Op     string // "translate" or "detect"
	Status int    // HTTP status, 0 for transport errors
	Err    error
}

func (e *GatewayError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("gateway %s failed with status %d: %v", e.Op, e.Status, e.Err)
	}
	return fmt.Sprintf("gateway %s failed: %v", e.Op, e.Err)
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}
