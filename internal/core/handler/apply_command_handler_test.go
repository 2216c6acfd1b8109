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

func applyFixtures(t *testing.T, confirmAnswer bool) (*testutil.MockIntentParser, *testutil.MockScannerFactory, *testutil.MockDiffPreviewer, *testutil.MockTerminalInput, *testutil.MockPatchApplier) {
	t.Helper()

	intentParser := new(testutil.MockIntentParser)
	intentParser.On("Parse", mock.Anything, mock.Anything).
		Return([]domain.Intent{memoryLimitIntent()}, nil)

	scanner := new(testutil.MockResourceScanner)
	scanner.On("Scan", mock.Anything).
		Return([]*unstructured.Unstructured{deploymentFixture("web", "staging")}, nil)

	scannerFactory := new(testutil.MockScannerFactory)
	scannerFactory.On("ClusterScanner").Return(scanner, nil)

	diffPreviewer := new(testutil.MockDiffPreviewer)
	diffPreviewer.On("Preview", mock.Anything).Return("+  memory: 512Mi\n", nil)

	terminalInput := new(testutil.MockTerminalInput)
	terminalInput.On("IsTerminal").Return(true)
	terminalInput.On("Confirm", "Apply 1 patch?").Return(confirmAnswer, nil)

	applier := new(testutil.MockPatchApplier)

	return intentParser, scannerFactory, diffPreviewer, terminalInput, applier
}

func TestApplyCommandHandler_Handle_AppliesAfterConfirmation(t *testing.T) {
	intentParser, scannerFactory, diffPreviewer, terminalInput, applier := applyFixtures(t, true)
	scannerFactory.On("ClusterApplier").Return(applier, nil)
	applier.On("Apply", mock.Anything, mock.MatchedBy(func(record *domain.PatchRecord) bool {
		return record.Kind == "Deployment" && record.Namespace == "staging"
	})).Return(nil)

	sut := ProvideApplyCommandHandler(intentParser, scannerFactory, core.ProvidePatchGenerator(), diffPreviewer, terminalInput)

	err := sut.Handle("add memory limit to deployments", ApplyOptions{})

	assert.NoError(t, err)
	applier.AssertExpectations(t)
	terminalInput.AssertExpectations(t)
}

func TestApplyCommandHandler_Handle_CancelledByUser(t *testing.T) {
	intentParser, scannerFactory, diffPreviewer, terminalInput, applier := applyFixtures(t, false)

	sut := ProvideApplyCommandHandler(intentParser, scannerFactory, core.ProvidePatchGenerator(), diffPreviewer, terminalInput)

	err := sut.Handle("add memory limit to deployments", ApplyOptions{})

	assert.NoError(t, err)
	applier.AssertNotCalled(t, "Apply")
	scannerFactory.AssertNotCalled(t, "ClusterApplier")
}

func TestApplyCommandHandler_Handle_DryRunSkipsApply(t *testing.T) {
	intentParser, scannerFactory, diffPreviewer, terminalInput, applier := applyFixtures(t, true)

	sut := ProvideApplyCommandHandler(intentParser, scannerFactory, core.ProvidePatchGenerator(), diffPreviewer, terminalInput)

	err := sut.Handle("add memory limit to deployments", ApplyOptions{DryRun: true})

	assert.NoError(t, err)
	applier.AssertNotCalled(t, "Apply")
	terminalInput.AssertNotCalled(t, "Confirm")
}

func TestApplyCommandHandler_Handle_YesSkipsConfirmation(t *testing.T) {
	intentParser, scannerFactory, diffPreviewer, terminalInput, applier := applyFixtures(t, true)
	scannerFactory.On("ClusterApplier").Return(applier, nil)
	applier.On("Apply", mock.Anything, mock.Anything).Return(nil)

	sut := ProvideApplyCommandHandler(intentParser, scannerFactory, core.ProvidePatchGenerator(), diffPreviewer, terminalInput)

	err := sut.Handle("add memory limit to deployments", ApplyOptions{Yes: true})

	assert.NoError(t, err)
	applier.AssertExpectations(t)
	terminalInput.AssertNotCalled(t, "Confirm")
}

func TestApplyCommandHandler_Handle_CountsFailures(t *testing.T) {
	intentParser, scannerFactory, diffPreviewer, terminalInput, applier := applyFixtures(t, true)
	scannerFactory.On("ClusterApplier").Return(applier, nil)
	applier.On("Apply", mock.Anything, mock.Anything).Return(errors.New("patch rejected"))

	sut := ProvideApplyCommandHandler(intentParser, scannerFactory, core.ProvidePatchGenerator(), diffPreviewer, terminalInput)

	err := sut.Handle("add memory limit to deployments", ApplyOptions{Yes: true})

	assert.ErrorContains(t, err, "applied 0 of 1 patches, 1 failed")
}

func TestApplyCommandHandler_Handle_FallsBackToLocalDiff(t *testing.T) {
	intentParser, scannerFactory, _, terminalInput, applier := applyFixtures(t, true)
	scannerFactory.On("ClusterApplier").Return(applier, nil)
	applier.On("Apply", mock.Anything, mock.Anything).Return(nil)

	diffPreviewer := new(testutil.MockDiffPreviewer)
	diffPreviewer.On("Preview", mock.Anything).Return("", errors.New("kubectl not found"))

	sut := ProvideApplyCommandHandler(intentParser, scannerFactory, core.ProvidePatchGenerator(), diffPreviewer, terminalInput)

	err := sut.Handle("add memory limit to deployments", ApplyOptions{})

	assert.NoError(t, err)
	applier.AssertExpectations(t)
}

func TestApplyCommandHandler_Handle_NoTerminalWithoutYes(t *testing.T) {
	intentParser, scannerFactory, diffPreviewer, _, applier := applyFixtures(t, true)

	terminalInput := new(testutil.MockTerminalInput)
	terminalInput.On("IsTerminal").Return(false)

	sut := ProvideApplyCommandHandler(intentParser, scannerFactory, core.ProvidePatchGenerator(), diffPreviewer, terminalInput)

	err := sut.Handle("add memory limit to deployments", ApplyOptions{})

	assert.ErrorContains(t, err, "--yes")
	applier.AssertNotCalled(t, "Apply")
}
