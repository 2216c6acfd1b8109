package testutil

import (
	"github.com/stretchr/testify/mock"

	"kustomate/internal/ports"
)

// MockScannerFactory provides a testify mock for ports.ScannerFactory
type MockScannerFactory struct {
	mock.Mock
}

func (m *MockScannerFactory) ClusterScanner() (ports.ResourceScanner, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(ports.ResourceScanner), args.Error(1)
}

func (m *MockScannerFactory) ManifestScanner(path string) (ports.ResourceScanner, error) {
	args := m.Called(path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(ports.ResourceScanner), args.Error(1)
}

func (m *MockScannerFactory) ClusterApplier() (ports.PatchApplier, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(ports.PatchApplier), args.Error(1)
}
