package ports

import "kustomate/internal/core/domain"

// Exporter renders a set of patch records into files on disk, for example a
// kustomize overlay directory that can be reviewed and applied later.
type Exporter interface {
	// Export writes the records into outputDir. The directory is created
	// if it does not exist.
	Export(records []*domain.PatchRecord, outputDir string) error
}
