package manifest

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"kustomate/internal/cli/output"
	"kustomate/internal/core/domain"
	"kustomate/internal/ports"

	"gopkg.in/yaml.v3"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/labels"
)

var _ ports.ResourceScanner = (*Scanner)(nil)

// kindForAlias matches the cluster scanner's alias table so either scanner
// can serve the same intents.
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

// Scanner loads object snapshots from local YAML manifest files instead of
// a live cluster.
type Scanner struct {
	path string
}

// NewScanner creates a scanner rooted at path, which may be a single
// manifest file or a directory searched recursively.
func NewScanner(path string) (*Scanner, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("manifest path does not exist: %w", err)
	}
	return &Scanner{path: path}, nil
}

// Scan returns the manifests matching the query. Files that fail to parse
// are skipped with a warning; they never fail the scan.
func (s *Scanner) Scan(query domain.ResourceQuery) ([]*unstructured.Unstructured, error) {
	all, err := s.loadAll()
	if err != nil {
		return nil, err
	}

	selector := labels.Everything()
	if query.LabelSelector != "" {
		selector, err = labels.Parse(query.LabelSelector)
		if err != nil {
			return nil, fmt.Errorf("invalid label selector %q: %w", query.LabelSelector, err)
		}
	}

	kind := ""
	if query.ResourceType != "all" {
		var ok bool
		kind, ok = kindForAlias[query.ResourceType]
		if !ok {
			// Unknown aliases pass through: custom kinds can still be
			// matched verbatim.
			kind = query.ResourceType
		}
	}

	var matched []*unstructured.Unstructured
	for _, resource := range all {
		if kind != "" && !strings.EqualFold(resource.GetKind(), kind) {
			continue
		}
		if query.Namespace != "" && resource.GetNamespace() != query.Namespace {
			continue
		}
		if !selector.Matches(labels.Set(resource.GetLabels())) {
			continue
		}
		matched = append(matched, resource)
	}

	return matched, nil
}

func (s *Scanner) loadAll() ([]*unstructured.Unstructured, error) {
	info, err := os.Stat(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat manifest path: %w", err)
	}

	if !info.IsDir() {
		return loadFile(s.path), nil
	}

	var resources []*unstructured.Unstructured
	err = filepath.WalkDir(s.path, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			return nil
		}
		switch filepath.Ext(path) {
		case ".yaml", ".yml":
			resources = append(resources, loadFile(path)...)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk manifest path: %w", err)
	}

	return resources, nil
}

// loadFile reads every document in a multi-document YAML file. Parse
// failures are logged and skipped.
func loadFile(path string) []*unstructured.Unstructured {
	file, err := os.Open(path)
	if err != nil {
		output.PrintWarning(fmt.Sprintf("failed to read %s: %v", path, err))
		return nil
	}
	defer file.Close()

	var resources []*unstructured.Unstructured
	decoder := yaml.NewDecoder(file)
	for {
		var document map[string]any
		err := decoder.Decode(&document)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			output.PrintWarning(fmt.Sprintf("failed to parse %s: %v", path, err))
			break
		}
		if document == nil {
			continue
		}

		resources = append(resources, &unstructured.Unstructured{Object: normalize(document)})
	}

	return resources
}

// normalize rewrites yaml.v3 output into the string-keyed tree shape the
// rest of the pipeline works with.
func normalize(document map[string]any) map[string]any {
	normalized := make(map[string]any, len(document))
	for key, value := range document {
		normalized[key] = normalizeValue(value)
	}
	return normalized
}

func normalizeValue(value any) any {
	switch v := value.(type) {
	case map[string]any:
		return normalize(v)
	case map[any]any:
		normalized := make(map[string]any, len(v))
		for key, item := range v {
			normalized[fmt.Sprintf("%v", key)] = normalizeValue(item)
		}
		return normalized
	case []any:
		normalized := make([]any, len(v))
		for i, item := range v {
			normalized[i] = normalizeValue(item)
		}
		return normalized
	default:
		return v
	}
}
