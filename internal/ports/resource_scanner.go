package ports

import (
	"kustomate/internal/core/domain"

	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
)

// ResourceScanner lists the Kubernetes objects matching a query, either from
// a live cluster or from local manifest files. Returned objects are
// snapshots; the core treats them as read-only.
type ResourceScanner interface {
	Scan(query domain.ResourceQuery) ([]*unstructured.Unstructured, error)
}
