package testutil

import (
	"kustomate/internal/core/domain"

	"github.com/stretchr/testify/mock"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
)

type MockResourceScanner struct {
	mock.Mock
}

func (m *MockResourceScanner) Scan(query domain.ResourceQuery) ([]*unstructured.Unstructured, error) {
	args := m.Called(query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*unstructured.Unstructured), args.Error(1)
}
