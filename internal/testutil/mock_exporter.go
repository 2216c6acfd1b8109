package testutil

import (
	"kustomate/internal/core/domain"

	"github.com/stretchr/testify/mock"
)

type MockExporter struct {
	mock.Mock
}

func (m *MockExporter) Export(records []*domain.PatchRecord, outputDir string) error {
	args := m.Called(records, outputDir)
	return args.Error(0)
}
