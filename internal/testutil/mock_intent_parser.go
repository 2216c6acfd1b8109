package testutil

import (
	"context"

	"kustomate/internal/core/domain"

	"github.com/stretchr/testify/mock"
)

type MockIntentParser struct {
	mock.Mock
}

func (m *MockIntentParser) Parse(ctx context.Context, request string) ([]domain.Intent, error) {
	args := m.Called(ctx, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Intent), args.Error(1)
}
