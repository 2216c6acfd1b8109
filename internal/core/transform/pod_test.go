package transform

import (
	"testing"

	"kustomate/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
)

func testPod(name, namespace string, containers ...map[string]any) *unstructured.Unstructured {
	list := make([]any, 0, len(containers))
	for _, container := range containers {
		list = append(list, container)
	}

	metadata := map[string]any{"name": name}
	if namespace != "" {
		metadata["namespace"] = namespace
	}

	return &unstructured.Unstructured{
		Object: map[string]any{
			"apiVersion": "v1",
			"kind":       "Pod",
			"metadata":   metadata,
			"spec": map[string]any{
				"containers": list,
			},
		},
	}
}

func TestPodTransformer_StringValueInterpretedAsMemory(t *testing.T) {
	resource := testPod("worker", "batch", map[string]any{"name": "main"})
	intent := domain.Intent{TargetField: "resources.limits.memory", Value: "256Mi"}

	patch := PodTransformer{}.Transform(resource, intent)

	assert.Equal(t, map[string]any{
		"containers": []any{
			map[string]any{
				"name": "main",
				"resources": map[string]any{
					"limits": map[string]any{"memory": "256Mi"},
				},
			},
		},
	}, patch["spec"])
}

func TestPodTransformer_StringValueInterpretedAsCPU(t *testing.T) {
	resource := testPod("worker", "", map[string]any{"name": "main"})
	intent := domain.Intent{TargetField: "resources.limits.cpu", Value: "250m"}

	patch := PodTransformer{}.Transform(resource, intent)

	containers := patch["spec"].(map[string]any)["containers"].([]any)
	limits := containers[0].(map[string]any)["resources"].(map[string]any)["limits"]
	assert.Equal(t, map[string]any{"cpu": "250m"}, limits)
}

func TestPodTransformer_StringValueDefaultsToMemory(t *testing.T) {
	assert.Equal(t, map[string]any{"memory": "1Gi"}, normalizeLimits("1Gi", "resources.limits"))
}

func TestPodTransformer_UnexpectedValueShapeFallsBack(t *testing.T) {
	assert.Equal(t, map[string]any{"memory": "512Mi", "cpu": "500m"}, normalizeLimits(7, "resources"))
}

func TestPodTransformer_ContainerNameConditionRestrictsPatch(t *testing.T) {
	resource := testPod("worker", "",
		map[string]any{"name": "main"},
		map[string]any{"name": "sidecar"},
	)
	intent := domain.Intent{
		TargetField: "resources.limits",
		Value:       map[string]any{"memory": "128Mi"},
		Conditions:  domain.Conditions{ContainerName: "sidecar"},
	}

	patch := PodTransformer{}.Transform(resource, intent)

	containers := patch["spec"].(map[string]any)["containers"].([]any)
	assert.Len(t, containers, 1)
	assert.Equal(t, "sidecar", containers[0].(map[string]any)["name"])
}

func TestPodTransformer_LabelsLandOnTopLevelMetadata(t *testing.T) {
	resource := testPod("worker", "batch")
	intent := domain.Intent{TargetField: "labels", Value: map[string]any{"team": "data"}}

	patch := PodTransformer{}.Transform(resource, intent)

	assert.Equal(t, map[string]any{
		"name":      "worker",
		"namespace": "batch",
		"labels":    map[string]any{"team": "data"},
	}, patch["metadata"])
	assert.NotContains(t, patch, "spec")
}

func TestPodTransformer_SecurityContextAtSpecLevel(t *testing.T) {
	resource := testPod("worker", "")
	intent := domain.Intent{
		TargetField: "securityContext",
		Value:       map[string]any{"runAsUser": 1000},
	}

	patch := PodTransformer{}.Transform(resource, intent)

	assert.Equal(t, map[string]any{
		"securityContext": map[string]any{"runAsUser": 1000},
	}, patch["spec"])
}

func TestPodTransformer_UnsupportedFieldReturnsNil(t *testing.T) {
	resource := testPod("worker", "")

	assert.Nil(t, PodTransformer{}.Transform(resource, domain.Intent{TargetField: "image"}))
	assert.Nil(t, PodTransformer{}.Transform(resource, domain.Intent{TargetField: "replicas"}))
}
