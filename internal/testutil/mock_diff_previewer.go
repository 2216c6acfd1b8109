package testutil

import (
	"github.com/stretchr/testify/mock"

	"kustomate/internal/core/domain"
)

// MockDiffPreviewer provides a testify mock for ports.DiffPreviewer
type MockDiffPreviewer struct {
	mock.Mock
}

func (m *MockDiffPreviewer) Preview(record *domain.PatchRecord) (string, error) {
	args := m.Called(record)
	return args.String(0), args.Error(1)
}
