package domain

import (
	"fmt"
	"reflect"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultNamespace is used in patch identities for objects without a
// namespace of their own.
const DefaultNamespace = "default"

// PatchTree is a sparse strategic-merge patch: a nested mapping carrying
// only the fields to change on the target object, always rooted at
// apiVersion/kind/metadata.name.
type PatchTree map[string]any

// listMergeKeys are the container-style lists whose elements are merged by
// their "name" field instead of appended. This mirrors how the strategic
// merge patch on the server side treats these lists.
var listMergeKeys = map[string]bool{
	"containers":     true,
	"initContainers": true,
}

// Merge folds incoming into the tree in place.
//
// Rules, applied per key:
//   - mapping on both sides: recurse
//   - containers/initContainers list on both sides: merge elements by name,
//     appending incoming elements with no existing match
//   - any other list on both sides: append incoming elements not already
//     present, preserving order
//   - everything else (scalar, one side missing, shape mismatch): the
//     incoming value wins
func (t PatchTree) Merge(incoming PatchTree) {
	mergeMaps(t, incoming)
}

func mergeMaps(existing, incoming map[string]any) {
	for key, incomingValue := range incoming {
		existingValue, present := existing[key]
		if !present {
			existing[key] = incomingValue
			continue
		}

		existingMap, existingIsMap := asMap(existingValue)
		incomingMap, incomingIsMap := asMap(incomingValue)
		if existingIsMap && incomingIsMap {
			mergeMaps(existingMap, incomingMap)
			existing[key] = existingMap
			continue
		}

		existingList, existingIsList := asList(existingValue)
		incomingList, incomingIsList := asList(incomingValue)
		if existingIsList && incomingIsList {
			if listMergeKeys[key] {
				existing[key] = mergeNamedList(existingList, incomingList)
			} else {
				existing[key] = appendMissing(existingList, incomingList)
			}
			continue
		}

		// Scalar or shape mismatch: last write wins.
		existing[key] = incomingValue
	}
}

// mergeNamedList merges list elements keyed by their "name" field. Existing
// elements keep their order; incoming elements without a match are appended
// in incoming order.
func mergeNamedList(existing, incoming []any) []any {
	for _, incomingItem := range incoming {
		incomingMap, ok := asMap(incomingItem)
		if !ok {
			existing = append(existing, incomingItem)
			continue
		}

		name, _ := incomingMap["name"].(string)
		merged := false
		for _, existingItem := range existing {
			existingMap, ok := asMap(existingItem)
			if !ok {
				continue
			}
			if existingName, _ := existingMap["name"].(string); name != "" && existingName == name {
				mergeMaps(existingMap, incomingMap)
				merged = true
				break
			}
		}

		if !merged {
			existing = append(existing, incomingItem)
		}
	}

	return existing
}

// appendMissing appends incoming elements not structurally present in
// existing, without duplication.
func appendMissing(existing, incoming []any) []any {
	for _, incomingItem := range incoming {
		found := false
		for _, existingItem := range existing {
			if reflect.DeepEqual(existingItem, incomingItem) {
				found = true
				break
			}
		}
		if !found {
			existing = append(existing, incomingItem)
		}
	}

	return existing
}

func asMap(value any) (map[string]any, bool) {
	switch v := value.(type) {
	case PatchTree:
		return v, true
	case map[string]any:
		return v, true
	default:
		return nil, false
	}
}

func asList(value any) ([]any, bool) {
	v, ok := value.([]any)
	return v, ok
}

// PatchRecord is one generated patch together with the identity of the
// object it targets and its rendered text forms.
type PatchRecord struct {
	// Name is a lower-kind-dash-name slug, e.g. "deployment-web".
	Name      string
	Kind      string
	Namespace string
	Patch     PatchTree
	// YAML and Diff are derived from Patch and must be regenerated after
	// every merge; see Render.
	YAML string
	Diff string
}

// Key is the identity a patch record is merged under. Two records with
// equal keys always collapse into one; records with different keys never do.
func (r *PatchRecord) Key() string {
	return fmt.Sprintf("%s/%s/%s", r.Kind, r.Name, r.Namespace)
}

// Render regenerates the YAML and Diff text forms from the patch tree.
func (r *PatchRecord) Render() error {
	rendered, err := yaml.Marshal(map[string]any(r.Patch))
	if err != nil {
		return fmt.Errorf("failed to render patch for %s: %w", r.Key(), err)
	}
	r.YAML = string(rendered)

	changes := r.Patch["spec"]
	if changes == nil {
		changes = r.Patch["metadata"]
	}
	changesYAML, err := yaml.Marshal(changes)
	if err != nil {
		return fmt.Errorf("failed to render diff for %s: %w", r.Key(), err)
	}

	var diff strings.Builder
	fmt.Fprintf(&diff, "Resource: %s/%s\n", r.Kind, r.TargetName())
	fmt.Fprintf(&diff, "Namespace: %s\n", r.Namespace)
	diff.WriteString("\nChanges:\n")
	diff.Write(changesYAML)
	r.Diff = diff.String()

	return nil
}

// TargetName returns the metadata.name of the object the patch addresses.
func (r *PatchRecord) TargetName() string {
	metadata, ok := asMap(r.Patch["metadata"])
	if !ok {
		return ""
	}
	name, _ := metadata["name"].(string)
	return name
}

// Slug builds the record name for an object kind and name.
func Slug(kind, name string) string {
	return fmt.Sprintf("%s-%s", strings.ToLower(kind), name)
}
