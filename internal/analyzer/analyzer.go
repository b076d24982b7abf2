package analyzer

import (
	"context"
	"time"

	"github.com/Hemanth-2OOT/Care-cloud/internal/models"
)

// Adapter is one risk analyzer. Analyze returns the analyzer's raw payload;
// normalization into a RiskSignal happens downstream.
type Adapter interface {
	Source() models.Source
	Analyze(ctx context.Context, content string) (map[string]any, error)
}

// Result is one adapter's raw outcome. A failed adapter carries its error
// and a nil payload; it never aborts the request.
type Result struct {
	Source   models.Source
	Payload  map[string]any
	Err      error
	Duration time.Duration
}
