package cluster

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"kustomate/internal/cli/output"
	"kustomate/internal/core/domain"
	"kustomate/internal/ports"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/types"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
)

// Compile-time interface compliance checks
var (
	_ ports.ResourceScanner = (*Scanner)(nil)
	_ ports.PatchApplier    = (*Scanner)(nil)
	_ ports.NamespaceLister = (*Scanner)(nil)
)

// kindForAlias maps the resource-type aliases the intent parser emits to
// canonical object kinds.
var kindForAlias = map[string]string{
	"deployments": "Deployment",
	"deployment":  "Deployment",
	"deploy":      "Deployment",
	"services":    "Service",
	"service":     "Service",
	"svc":         "Service",
	"pods":        "Pod",
	"pod":         "Pod",
	"po":          "Pod",
	"configmaps":  "ConfigMap",
	"configmap":   "ConfigMap",
	"cm":          "ConfigMap",
}

// Scanner lists objects from a live cluster and applies strategic merge
// patches back to it.
type Scanner struct {
	clientSet kubernetes.Interface
}

// NewScanner connects to the cluster. In-cluster config is tried first;
// outside a pod it falls back to the kubeconfig file, honoring an explicit
// path and context override.
func NewScanner(kubeconfig, kubeContext string) (*Scanner, error) {
	config, err := rest.InClusterConfig()
	if err != nil {
		config, err = buildKubeconfig(kubeconfig, kubeContext)
		if err != nil {
			return nil, fmt.Errorf("failed to create kubernetes config: %w", err)
		}
	}

	clientSet, err := kubernetes.NewForConfig(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create kubernetes client: %w", err)
	}

	return &Scanner{clientSet: clientSet}, nil
}

// NewScannerWithClient wires an existing client set, for tests.
func NewScannerWithClient(clientSet kubernetes.Interface) *Scanner {
	return &Scanner{clientSet: clientSet}
}

func buildKubeconfig(kubeconfig, kubeContext string) (*rest.Config, error) {
	if kubeconfig == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		kubeconfig = filepath.Join(home, ".kube", "config")
	}

	loadingRules := &clientcmd.ClientConfigLoadingRules{ExplicitPath: kubeconfig}
	overrides := &clientcmd.ConfigOverrides{CurrentContext: kubeContext}
	return clientcmd.NewNonInteractiveDeferredLoadingClientConfig(loadingRules, overrides).ClientConfig()
}

// Scan lists the objects matching the query as unstructured snapshots.
// An empty namespace means all namespaces.
func (s *Scanner) Scan(query domain.ResourceQuery) ([]*unstructured.Unstructured, error) {
	if query.ResourceType == "all" {
		var all []*unstructured.Unstructured
		for _, kind := range []string{"Deployment", "Service", "Pod"} {
			resources, err := s.scanKind(kind, query)
			if err != nil {
				return nil, err
			}
			all = append(all, resources...)
		}
		return all, nil
	}

	kind, ok := kindForAlias[query.ResourceType]
	if !ok {
		output.PrintWarning(fmt.Sprintf("unknown resource type: %s", query.ResourceType))
		return nil, nil
	}

	return s.scanKind(kind, query)
}

func (s *Scanner) scanKind(kind string, query domain.ResourceQuery) ([]*unstructured.Unstructured, error) {
	ctx := context.Background()
	options := metav1.ListOptions{LabelSelector: query.LabelSelector}

	var (
		items      []any
		apiVersion string
	)

	switch kind {
	case "Deployment":
		list, err := s.clientSet.AppsV1().Deployments(query.Namespace).List(ctx, options)
		if err != nil {
			return nil, fmt.Errorf("failed to list deployments: %w", err)
		}
		apiVersion = "apps/v1"
		for i := range list.Items {
			items = append(items, &list.Items[i])
		}
	case "Service":
		list, err := s.clientSet.CoreV1().Services(query.Namespace).List(ctx, options)
		if err != nil {
			return nil, fmt.Errorf("failed to list services: %w", err)
		}
		apiVersion = "v1"
		for i := range list.Items {
			items = append(items, &list.Items[i])
		}
	case "Pod":
		list, err := s.clientSet.CoreV1().Pods(query.Namespace).List(ctx, options)
		if err != nil {
			return nil, fmt.Errorf("failed to list pods: %w", err)
		}
		apiVersion = "v1"
		for i := range list.Items {
			items = append(items, &list.Items[i])
		}
	case "ConfigMap":
		list, err := s.clientSet.CoreV1().ConfigMaps(query.Namespace).List(ctx, options)
		if err != nil {
			return nil, fmt.Errorf("failed to list configmaps: %w", err)
		}
		apiVersion = "v1"
		for i := range list.Items {
			items = append(items, &list.Items[i])
		}
	default:
		return nil, fmt.Errorf("unsupported kind %s", kind)
	}

	resources := make([]*unstructured.Unstructured, 0, len(items))
	for _, item := range items {
		converted, err := runtime.DefaultUnstructuredConverter.ToUnstructured(item)
		if err != nil {
			return nil, fmt.Errorf("failed to convert %s: %w", kind, err)
		}

		resource := &unstructured.Unstructured{Object: converted}
		// Typed list items come back without their type metadata.
		resource.SetKind(kind)
		resource.SetAPIVersion(apiVersion)
		resources = append(resources, resource)
	}

	return resources, nil
}

// Namespaces lists the cluster's namespace names.
func (s *Scanner) Namespaces() ([]string, error) {
	list, err := s.clientSet.CoreV1().Namespaces().List(context.Background(), metav1.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to list namespaces: %w", err)
	}

	names := make([]string, 0, len(list.Items))
	for _, namespace := range list.Items {
		names = append(names, namespace.Name)
	}
	return names, nil
}

// Apply issues the record's patch as a strategic merge patch against the
// live object.
func (s *Scanner) Apply(ctx context.Context, record *domain.PatchRecord) error {
	body, err := json.Marshal(map[string]any(record.Patch))
	if err != nil {
		return fmt.Errorf("failed to serialize patch for %s: %w", record.Key(), err)
	}

	name := record.TargetName()
	if name == "" {
		return fmt.Errorf("patch for %s has no target name", record.Key())
	}

	options := metav1.PatchOptions{}
	switch record.Kind {
	case "Deployment":
		_, err = s.clientSet.AppsV1().Deployments(record.Namespace).Patch(ctx, name, types.StrategicMergePatchType, body, options)
	case "Service":
		_, err = s.clientSet.CoreV1().Services(record.Namespace).Patch(ctx, name, types.StrategicMergePatchType, body, options)
	case "Pod":
		_, err = s.clientSet.CoreV1().Pods(record.Namespace).Patch(ctx, name, types.StrategicMergePatchType, body, options)
	case "ConfigMap":
		_, err = s.clientSet.CoreV1().ConfigMaps(record.Namespace).Patch(ctx, name, types.StrategicMergePatchType, body, options)
	default:
		return fmt.Errorf("cannot apply patch for kind %s", record.Kind)
	}

	if err != nil {
		return fmt.Errorf("failed to patch %s/%s: %w", record.Kind, name, err)
	}
	return nil
}
