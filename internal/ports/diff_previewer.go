package ports

import "kustomate/internal/core/domain"

// DiffPreviewer renders a preview of what applying a patch would change on
// the live cluster.
type DiffPreviewer interface {
	Preview(record *domain.PatchRecord) (string, error)
}
