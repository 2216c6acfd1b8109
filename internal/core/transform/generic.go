package transform

import (
	"kustomate/internal/core/domain"

	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
)

// GenericTransformer is the fallback for kinds without a dedicated
// transformer. It only knows how to patch top-level metadata.
type GenericTransformer struct{}

var _ Transformer = GenericTransformer{}

func (t GenericTransformer) Transform(resource *unstructured.Unstructured, intent domain.Intent) domain.PatchTree {
	switch intent.TargetField {
	case "labels":
		return t.metadata(resource, "labels", intent.Value)
	case "annotations":
		return t.metadata(resource, "annotations", intent.Value)
	default:
		return nil
	}
}

func (t GenericTransformer) metadata(resource *unstructured.Unstructured, field string, value any) domain.PatchTree {
	patch := patchBase(resource)
	metadata := patch["metadata"].(map[string]any)
	metadata[field] = value
	return patch
}
