package handler

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"

	"kustomate/internal/core"
	"kustomate/internal/core/domain"
	"kustomate/internal/testutil"
)

func deploymentFixture(name, namespace string) *unstructured.Unstructured {
	return &unstructured.Unstructured{Object: map[string]any{
		"apiVersion": "apps/v1",
		"kind":       "Deployment",
		"metadata": map[string]any{
			"name":      name,
			"namespace": namespace,
		},
		"spec": map[string]any{
			"template": map[string]any{
				"spec": map[string]any{
					"containers": []any{
						map[string]any{"name": "app", "image": "nginx:1.25"},
					},
				},
			},
		},
	}}
}

func memoryLimitIntent() domain.Intent {
	return domain.Intent{
		Action:       domain.ActionAdd,
		ResourceType: "deployments",
		TargetField:  "resources.limits.memory",
		Value:        "512Mi",
		Description:  "Add memory limit 512Mi",
	}
}

func TestPlanCommandHandler_Handle_PlansClusterPatches(t *testing.T) {
	intentParser := new(testutil.MockIntentParser)
	intentParser.On("Parse", mock.Anything, "add memory limit to deployments").
		Return([]domain.Intent{memoryLimitIntent()}, nil)

	scanner := new(testutil.MockResourceScanner)
	scanner.On("Scan", domain.ResourceQuery{ResourceType: "deployments"}).
		Return([]*unstructured.Unstructured{deploymentFixture("web", "staging")}, nil)

	scannerFactory := new(testutil.MockScannerFactory)
	scannerFactory.On("ClusterScanner").Return(scanner, nil)

	sut := ProvidePlanCommandHandler(intentParser, scannerFactory, core.ProvidePatchGenerator())

	err := sut.Handle("add memory limit to deployments", PlanOptions{})

	assert.NoError(t, err)
	intentParser.AssertExpectations(t)
	scanner.AssertExpectations(t)
	scannerFactory.AssertExpectations(t)
}

func TestPlanCommandHandler_Handle_UsesManifestScannerWhenPathGiven(t *testing.T) {
	intentParser := new(testutil.MockIntentParser)
	intentParser.On("Parse", mock.Anything, mock.Anything).
		Return([]domain.Intent{memoryLimitIntent()}, nil)

	scanner := new(testutil.MockResourceScanner)
	scanner.On("Scan", mock.Anything).
		Return([]*unstructured.Unstructured{deploymentFixture("web", "")}, nil)

	scannerFactory := new(testutil.MockScannerFactory)
	scannerFactory.On("ManifestScanner", "./k8s").Return(scanner, nil)

	sut := ProvidePlanCommandHandler(intentParser, scannerFactory, core.ProvidePatchGenerator())

	err := sut.Handle("add memory limit to deployments", PlanOptions{ManifestPath: "./k8s"})

	assert.NoError(t, err)
	scannerFactory.AssertExpectations(t)
	scannerFactory.AssertNotCalled(t, "ClusterScanner")
}

func TestPlanCommandHandler_Handle_NamespaceOverrideWinsOverIntent(t *testing.T) {
	intent := memoryLimitIntent()
	intent.Namespace = "staging"

	intentParser := new(testutil.MockIntentParser)
	intentParser.On("Parse", mock.Anything, mock.Anything).Return([]domain.Intent{intent}, nil)

	scanner := new(testutil.MockResourceScanner)
	scanner.On("Scan", domain.ResourceQuery{ResourceType: "deployments", Namespace: "production"}).
		Return([]*unstructured.Unstructured{}, nil)

	scannerFactory := new(testutil.MockScannerFactory)
	scannerFactory.On("ClusterScanner").Return(scanner, nil)

	sut := ProvidePlanCommandHandler(intentParser, scannerFactory, core.ProvidePatchGenerator())

	err := sut.Handle("add memory limit to deployments", PlanOptions{Namespace: "production"})

	assert.NoError(t, err)
	scanner.AssertExpectations(t)
}

func TestPlanCommandHandler_Handle_ParseError(t *testing.T) {
	intentParser := new(testutil.MockIntentParser)
	intentParser.On("Parse", mock.Anything, mock.Anything).
		Return(nil, errors.New("model unavailable"))

	scannerFactory := new(testutil.MockScannerFactory)

	sut := ProvidePlanCommandHandler(intentParser, scannerFactory, core.ProvidePatchGenerator())

	err := sut.Handle("add memory limit to deployments", PlanOptions{})

	assert.ErrorContains(t, err, "failed to parse request")
	scannerFactory.AssertNotCalled(t, "ClusterScanner")
}

func TestPlanCommandHandler_Handle_EmptyIntents(t *testing.T) {
	intentParser := new(testutil.MockIntentParser)
	intentParser.On("Parse", mock.Anything, mock.Anything).Return([]domain.Intent{}, nil)

	sut := ProvidePlanCommandHandler(intentParser, new(testutil.MockScannerFactory), core.ProvidePatchGenerator())

	err := sut.Handle("gibberish", PlanOptions{})

	assert.ErrorContains(t, err, "could not derive any intent")
}
