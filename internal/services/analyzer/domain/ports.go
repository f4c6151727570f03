// Package domain defines the analyzer port
package domain

import (
	"context"

	"criticode/internal/core/analysis"
)

// InvokerPort runs one code review through the model and returns the
// normalized result
type InvokerPort interface {
	Analyze(ctx context.Context, code, language string) (analysis.Result, error)
}
