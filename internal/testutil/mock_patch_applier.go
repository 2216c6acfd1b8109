package testutil

import (
	"context"

	"kustomate/internal/core/domain"

	"github.com/stretchr/testify/mock"
)

type MockPatchApplier struct {
	mock.Mock
}

func (m *MockPatchApplier) Apply(ctx context.Context, record *domain.PatchRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}
