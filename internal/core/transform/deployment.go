package transform

import (
	"strconv"
	"strings"

	"kustomate/internal/core/domain"

	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
)

// DeploymentTransformer patches Deployment objects. Container-level changes
// are addressed through the pod template at spec.template.spec.containers;
// labels and annotations land on the pod template metadata because those
// drive selector matching downstream, not on the top-level metadata.
type DeploymentTransformer struct{}

var _ Transformer = DeploymentTransformer{}

func (t DeploymentTransformer) Transform(resource *unstructured.Unstructured, intent domain.Intent) domain.PatchTree {
	field := intent.TargetField

	// First match wins: the exact limit fields shadow the combined
	// "resources" forms, and the metadata fields shadow the substring
	// matches below them.
	switch {
	case strings.Contains(field, "resources.limits.memory"),
		strings.Contains(field, "resources.limits.cpu"),
		strings.Contains(field, "resources.limits"),
		strings.Contains(field, "resources"):
		return t.resourceLimits(resource, intent)
	case field == "image":
		return t.updateImage(resource, intent)
	case field == "labels":
		return t.templateMetadata(resource, "labels", intent.Value)
	case field == "annotations":
		return t.templateMetadata(resource, "annotations", intent.Value)
	case strings.Contains(field, "securityContext"):
		return t.securityContext(resource, intent)
	case strings.Contains(field, "replicas"):
		return t.replicas(resource, intent)
	case strings.Contains(strings.ToLower(field), "probe"):
		return t.probe(resource, intent)
	default:
		return nil
	}
}

func (t DeploymentTransformer) resourceLimits(resource *unstructured.Unstructured, intent domain.Intent) domain.PatchTree {
	limits := normalizeLimits(intent.Value, intent.TargetField)

	var patched []any
	for _, container := range containersAt(resource, "spec", "template", "spec", "containers") {
		patched = append(patched, map[string]any{
			"name": containerName(container),
			"resources": map[string]any{
				"limits": limits,
			},
		})
	}

	patch := patchBase(resource)
	patch["spec"] = templateContainers(patched)
	return patch
}

func (t DeploymentTransformer) updateImage(resource *unstructured.Unstructured, intent domain.Intent) domain.PatchTree {
	fromPrefix := ""
	toImage, _ := intent.Value.(string)
	if mapping := mappingValue(intent.Value); mapping != nil {
		fromPrefix, _ = mapping["from"].(string)
		toImage, _ = mapping["to"].(string)
	}

	var patched []any
	for _, container := range containersAt(resource, "spec", "template", "spec", "containers") {
		currentImage, _ := container["image"].(string)
		patched = append(patched, map[string]any{
			"name":  containerName(container),
			"image": resolveImage(currentImage, fromPrefix, toImage),
		})
	}

	patch := patchBase(resource)
	patch["spec"] = templateContainers(patched)
	return patch
}

// resolveImage decides the replacement image for a container.
// Resolution order:
//  1. an explicit "from" substring of the current image is replaced with "to"
//  2. registry-less tagged images on both sides are a whole-image swap
//  3. a "to" carrying a registry path is used verbatim
//  4. otherwise "to" is treated as a registry prefix for the current basename
func resolveImage(currentImage, fromPrefix, toImage string) string {
	switch {
	case fromPrefix != "" && strings.Contains(currentImage, fromPrefix):
		return strings.ReplaceAll(currentImage, fromPrefix, toImage)
	case !strings.Contains(currentImage, "/") && !strings.Contains(toImage, "/") &&
		strings.Contains(currentImage, ":") && strings.Contains(toImage, ":"):
		return toImage
	case strings.Contains(toImage, "/"):
		return toImage
	default:
		parts := strings.Split(currentImage, "/")
		return toImage + "/" + parts[len(parts)-1]
	}
}

func (t DeploymentTransformer) probe(resource *unstructured.Unstructured, intent domain.Intent) domain.PatchTree {
	probeKey := "readinessProbe"
	if strings.Contains(strings.ToLower(intent.TargetField), "liveness") {
		probeKey = "livenessProbe"
	}

	port := any(8080)
	if mapping := mappingValue(intent.Value); mapping != nil {
		if configured, ok := mapping["port"]; ok {
			port = configured
		}
	}

	probe := map[string]any{
		"httpGet": map[string]any{
			"path": "/health",
			"port": port,
		},
		"initialDelaySeconds": 10,
		"periodSeconds":       10,
	}

	var patched []any
	for _, container := range containersAt(resource, "spec", "template", "spec", "containers") {
		patched = append(patched, map[string]any{
			"name":   containerName(container),
			probeKey: probe,
		})
	}

	patch := patchBase(resource)
	patch["spec"] = templateContainers(patched)
	return patch
}

func (t DeploymentTransformer) templateMetadata(resource *unstructured.Unstructured, field string, value any) domain.PatchTree {
	patch := patchBase(resource)
	patch["spec"] = map[string]any{
		"template": map[string]any{
			"metadata": map[string]any{
				field: value,
			},
		},
	}
	return patch
}

func (t DeploymentTransformer) securityContext(resource *unstructured.Unstructured, intent domain.Intent) domain.PatchTree {
	securityContext := mappingValue(intent.Value)
	if securityContext == nil {
		securityContext = map[string]any{"runAsNonRoot": true}
	}

	patch := patchBase(resource)
	patch["spec"] = map[string]any{
		"template": map[string]any{
			"spec": map[string]any{
				"securityContext": securityContext,
			},
		},
	}
	return patch
}

func (t DeploymentTransformer) replicas(resource *unstructured.Unstructured, intent domain.Intent) domain.PatchTree {
	patch := patchBase(resource)
	patch["spec"] = map[string]any{
		"replicas": coerceReplicas(intent.Value),
	}
	return patch
}

// coerceReplicas normalizes the replica count to an int. Parsers hand the
// value over as a string or a JSON number depending on the provider.
func coerceReplicas(value any) any {
	switch v := value.(type) {
	case string:
		if count, err := strconv.Atoi(v); err == nil {
			return count
		}
		return v
	case float64:
		return int(v)
	default:
		return v
	}
}

func templateContainers(containers []any) map[string]any {
	return map[string]any{
		"template": map[string]any{
			"spec": map[string]any{
				"containers": containers,
			},
		},
	}
}
