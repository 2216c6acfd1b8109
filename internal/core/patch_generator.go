package core

import (
	"fmt"

	"kustomate/internal/cli/output"
	"kustomate/internal/core/domain"
	"kustomate/internal/core/transform"

	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
)

// PatchGenerator runs the kind transformers over every matched object for
// one intent and wraps the results into patch records.
type PatchGenerator struct {
	registry *transform.Registry
}

func ProvidePatchGenerator() *PatchGenerator {
	return &PatchGenerator{
		registry: transform.NewRegistry(),
	}
}

// Generate produces one patch record per matched object the intent applies
// to. An invalid intent yields no records at all. Objects the intent's
// (kind, target field) pair does not support are skipped silently; objects
// missing their identity fields are skipped with a warning. Neither aborts
// the batch.
func (g *PatchGenerator) Generate(intent domain.Intent, resources []*unstructured.Unstructured) []*domain.PatchRecord {
	var records []*domain.PatchRecord

	if !ValidateIntent(intent) {
		return records
	}

	for _, resource := range resources {
		record, err := g.generateOne(intent, resource)
		if err != nil {
			output.PrintWarning(fmt.Sprintf("failed to generate patch for %s: %v", resource.GetName(), err))
			continue
		}
		if record != nil {
			records = append(records, record)
		}
	}

	return records
}

func (g *PatchGenerator) generateOne(intent domain.Intent, resource *unstructured.Unstructured) (*domain.PatchRecord, error) {
	kind := resource.GetKind()
	if kind == "" {
		return nil, fmt.Errorf("object has no kind")
	}
	if resource.GetName() == "" {
		return nil, fmt.Errorf("object has no metadata.name")
	}

	patch := g.registry.ForKind(kind).Transform(resource, intent)
	if patch == nil {
		return nil, nil
	}

	namespace := resource.GetNamespace()
	if namespace == "" {
		namespace = domain.DefaultNamespace
	}

	record := &domain.PatchRecord{
		Name:      domain.Slug(kind, resource.GetName()),
		Kind:      kind,
		Namespace: namespace,
		Patch:     patch,
	}
	if err := record.Render(); err != nil {
		return nil, err
	}

	return record, nil
}
