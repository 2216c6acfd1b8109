package ports

import (
	"context"

	"kustomate/internal/core/domain"
)

// IntentParser turns a free-form natural language request into one or more
// structured modification intents. A single request may expand into several
// intents; the parser decides how many.
type IntentParser interface {
	Parse(ctx context.Context, request string) ([]domain.Intent, error)
}
