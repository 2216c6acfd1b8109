package transform

import (
	"strings"

	"kustomate/internal/core/domain"

	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
)

// PodTransformer patches bare Pod objects. Pods have no template level, so
// containers live at spec.containers and labels/annotations go on the
// top-level metadata.
type PodTransformer struct{}

var _ Transformer = PodTransformer{}

func (t PodTransformer) Transform(resource *unstructured.Unstructured, intent domain.Intent) domain.PatchTree {
	field := intent.TargetField

	switch {
	case strings.Contains(field, "resources.limits.memory"),
		strings.Contains(field, "resources.limits.cpu"),
		strings.Contains(field, "resources.limits"),
		strings.Contains(field, "resources"):
		return t.resourceLimits(resource, intent)
	case field == "labels":
		return t.metadata(resource, "labels", intent.Value)
	case field == "annotations":
		return t.metadata(resource, "annotations", intent.Value)
	case strings.Contains(field, "securityContext"):
		return t.securityContext(resource, intent)
	default:
		return nil
	}
}

func (t PodTransformer) resourceLimits(resource *unstructured.Unstructured, intent domain.Intent) domain.PatchTree {
	limits := normalizeLimits(intent.Value, intent.TargetField)

	// conditions.container_name restricts the patch to one container; the
	// others are simply absent from the patch, never zeroed.
	var patched []any
	for _, container := range containersAt(resource, "spec", "containers") {
		name := containerName(container)
		if intent.Conditions.ContainerName != "" && name != intent.Conditions.ContainerName {
			continue
		}
		patched = append(patched, map[string]any{
			"name": name,
			"resources": map[string]any{
				"limits": limits,
			},
		})
	}

	patch := patchBase(resource)
	patch["spec"] = map[string]any{
		"containers": patched,
	}
	return patch
}

// normalizeLimits converts the intent value into a limits mapping. A bare
// string is interpreted as the memory or cpu quantity based on which keyword
// the target field mentions, defaulting to memory.
func normalizeLimits(value any, targetField string) map[string]any {
	field := strings.ToLower(targetField)

	switch v := value.(type) {
	case string:
		if strings.Contains(field, "memory") {
			return map[string]any{"memory": v}
		}
		if strings.Contains(field, "cpu") {
			return map[string]any{"cpu": v}
		}
		return map[string]any{"memory": v}
	case map[string]any:
		return v
	default:
		return defaultResourceLimits()
	}
}

func (t PodTransformer) metadata(resource *unstructured.Unstructured, field string, value any) domain.PatchTree {
	patch := patchBase(resource)
	metadata := patch["metadata"].(map[string]any)
	metadata[field] = value
	return patch
}

func (t PodTransformer) securityContext(resource *unstructured.Unstructured, intent domain.Intent) domain.PatchTree {
	securityContext := mappingValue(intent.Value)
	if securityContext == nil {
		securityContext = map[string]any{"runAsNonRoot": true}
	}

	patch := patchBase(resource)
	patch["spec"] = map[string]any{
		"securityContext": securityContext,
	}
	return patch
}
