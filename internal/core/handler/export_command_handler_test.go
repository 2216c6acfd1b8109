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

func TestExportCommandHandler_Handle_ExportsRecords(t *testing.T) {
	intentParser := new(testutil.MockIntentParser)
	intentParser.On("Parse", mock.Anything, mock.Anything).
		Return([]domain.Intent{memoryLimitIntent()}, nil)

	scanner := new(testutil.MockResourceScanner)
	scanner.On("Scan", mock.Anything).
		Return([]*unstructured.Unstructured{deploymentFixture("web", "staging")}, nil)

	scannerFactory := new(testutil.MockScannerFactory)
	scannerFactory.On("ManifestScanner", "./k8s").Return(scanner, nil)

	exporter := new(testutil.MockExporter)
	exporter.On("Export", mock.MatchedBy(func(records []*domain.PatchRecord) bool {
		return len(records) == 1 && records[0].Name == "deployment-web"
	}), "patches").Return(nil)

	sut := ProvideExportCommandHandler(intentParser, scannerFactory, core.ProvidePatchGenerator(), exporter)

	err := sut.Handle("add memory limit to deployments", "patches", PlanOptions{ManifestPath: "./k8s"})

	assert.NoError(t, err)
	exporter.AssertExpectations(t)
}

func TestExportCommandHandler_Handle_NothingToExport(t *testing.T) {
	intentParser := new(testutil.MockIntentParser)
	intentParser.On("Parse", mock.Anything, mock.Anything).
		Return([]domain.Intent{memoryLimitIntent()}, nil)

	scanner := new(testutil.MockResourceScanner)
	scanner.On("Scan", mock.Anything).Return([]*unstructured.Unstructured{}, nil)

	scannerFactory := new(testutil.MockScannerFactory)
	scannerFactory.On("ClusterScanner").Return(scanner, nil)

	exporter := new(testutil.MockExporter)

	sut := ProvideExportCommandHandler(intentParser, scannerFactory, core.ProvidePatchGenerator(), exporter)

	err := sut.Handle("add memory limit to deployments", "patches", PlanOptions{})

	assert.NoError(t, err)
	exporter.AssertNotCalled(t, "Export")
}

func TestExportCommandHandler_Handle_ExportError(t *testing.T) {
	intentParser := new(testutil.MockIntentParser)
	intentParser.On("Parse", mock.Anything, mock.Anything).
		Return([]domain.Intent{memoryLimitIntent()}, nil)

	scanner := new(testutil.MockResourceScanner)
	scanner.On("Scan", mock.Anything).
		Return([]*unstructured.Unstructured{deploymentFixture("web", "staging")}, nil)

	scannerFactory := new(testutil.MockScannerFactory)
	scannerFactory.On("ClusterScanner").Return(scanner, nil)

	exporter := new(testutil.MockExporter)
	exporter.On("Export", mock.Anything, "patches").Return(errors.New("disk full"))

	sut := ProvideExportCommandHandler(intentParser, scannerFactory, core.ProvidePatchGenerator(), exporter)

	err := sut.Handle("add memory limit to deployments", "patches", PlanOptions{})

	assert.ErrorContains(t, err, "failed to export patches")
}
