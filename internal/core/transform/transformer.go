package transform

import (
	"strings"

	"kustomate/internal/core/domain"

	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
)

// Transformer converts an object snapshot plus an intent into a sparse
// strategic merge patch. A nil result means the (kind, target field)
// combination is not supported by this transformer; that is not an error.
type Transformer interface {
	Transform(resource *unstructured.Unstructured, intent domain.Intent) domain.PatchTree
}

// Registry selects the transformer for an object kind. Kinds without a
// registered transformer fall back to the generic one, which only knows how
// to patch metadata. New kinds are supported by registering a new
// transformer, never by branching inside an existing one.
type Registry struct {
	byKind   map[string]Transformer
	fallback Transformer
}

// NewRegistry returns a registry with the built-in transformers registered.
func NewRegistry() *Registry {
	registry := &Registry{
		byKind:   make(map[string]Transformer),
		fallback: GenericTransformer{},
	}
	registry.Register("Deployment", DeploymentTransformer{})
	registry.Register("Pod", PodTransformer{})
	return registry
}

// Register adds or replaces the transformer for a kind. Matching is
// case-insensitive.
func (r *Registry) Register(kind string, transformer Transformer) {
	r.byKind[strings.ToLower(kind)] = transformer
}

// ForKind returns the transformer responsible for the given object kind.
func (r *Registry) ForKind(kind string) Transformer {
	if transformer, ok := r.byKind[strings.ToLower(kind)]; ok {
		return transformer
	}
	return r.fallback
}

// patchBase builds the minimal patch skeleton every transformer starts
// from: apiVersion, kind and metadata.name, plus metadata.namespace when
// the source object has one.
func patchBase(resource *unstructured.Unstructured) domain.PatchTree {
	metadata := map[string]any{
		"name": resource.GetName(),
	}
	if namespace := resource.GetNamespace(); namespace != "" {
		metadata["namespace"] = namespace
	}

	return domain.PatchTree{
		"apiVersion": resource.GetAPIVersion(),
		"kind":       resource.GetKind(),
		"metadata":   metadata,
	}
}

// containersAt returns the container list at the given path inside the
// object, or nil when the path is absent or malformed.
func containersAt(resource *unstructured.Unstructured, path ...string) []map[string]any {
	list, found, err := unstructured.NestedSlice(resource.Object, path...)
	if !found || err != nil {
		return nil
	}

	var containers []map[string]any
	for _, item := range list {
		if container, ok := item.(map[string]any); ok {
			containers = append(containers, container)
		}
	}
	return containers
}

func containerName(container map[string]any) string {
	name, _ := container["name"].(string)
	return name
}

// mappingValue returns the intent value as a mapping, or nil when it has a
// different shape.
func mappingValue(value any) map[string]any {
	mapping, _ := value.(map[string]any)
	return mapping
}

// defaultResourceLimits is the fallback applied when a resource-limit intent
// carries a value of an unexpected shape.
func defaultResourceLimits() map[string]any {
	return map[string]any{"memory": "512Mi", "cpu": "500m"}
}
