package ports

import (
	"context"

	"kustomate/internal/core/domain"
)

// PatchApplier issues a strategic merge patch against the real object a
// record identifies. The core's responsibility ends at producing the record;
// application failures are reported per record, never batch-fatal.
type PatchApplier interface {
	Apply(ctx context.Context, record *domain.PatchRecord) error
}
