package kustomize

import (
	"fmt"
	"path/filepath"

	"kustomate/internal/core/domain"
	"kustomate/internal/ports"

	"gopkg.in/yaml.v3"
)

var _ ports.Exporter = (*Exporter)(nil)

// Kustomization represents a kustomization.yaml file.
type Kustomization struct {
	APIVersion string  `yaml:"apiVersion"`
	Kind       string  `yaml:"kind"`
	Patches    []Patch `yaml:"patches,omitempty"`
}

// Patch references one strategic merge patch file.
type Patch struct {
	Path   string `yaml:"path"`
	Target Target `yaml:"target"`
}

// Target identifies which resources a patch applies to.
type Target struct {
	Kind      string `yaml:"kind,omitempty"`
	Name      string `yaml:"name,omitempty"`
	Namespace string `yaml:"namespace,omitempty"`
}

// Exporter writes patch records as a kustomize overlay: one patch file per
// record plus a kustomization.yaml referencing them by target.
type Exporter struct {
	fileSystem ports.FileSystem
}

// ProvideExporter creates an Exporter for Wire dependency injection.
func ProvideExporter(fileSystem ports.FileSystem) *Exporter {
	return &Exporter{
		fileSystem: fileSystem,
	}
}

// Export writes the overlay into outputDir, creating it if necessary.
func (e *Exporter) Export(records []*domain.PatchRecord, outputDir string) error {
	kustomization := Kustomization{
		APIVersion: "kustomize.config.k8s.io/v1beta1",
		Kind:       "Kustomization",
	}

	for _, record := range records {
		filename := fmt.Sprintf("patch-%s.yaml", record.Name)

		if err := e.fileSystem.WriteFile(filepath.Join(outputDir, filename), []byte(record.YAML), ports.ReadAllWriteOwner); err != nil {
			return fmt.Errorf("failed to write patch file %s: %w", filename, err)
		}

		kustomization.Patches = append(kustomization.Patches, Patch{
			Path: filename,
			Target: Target{
				Kind:      record.Kind,
				Name:      record.TargetName(),
				Namespace: record.Namespace,
			},
		})
	}

	kustomizationYAML, err := yaml.Marshal(kustomization)
	if err != nil {
		return fmt.Errorf("failed to marshal kustomization: %w", err)
	}

	if err := e.fileSystem.WriteFile(filepath.Join(outputDir, "kustomization.yaml"), kustomizationYAML, ports.ReadAllWriteOwner); err != nil {
		return fmt.Errorf("failed to write kustomization.yaml: %w", err)
	}

	return nil
}
