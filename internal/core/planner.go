package core

import (
	"fmt"

	"kustomate/internal/cli/output"
	"kustomate/internal/core/domain"
	"kustomate/internal/ports"
)

// Planner runs the full intent pipeline: for each intent it scans for
// matching objects, generates per-object patches and folds them into one
// record per object identity. Failures stay scoped to the intent or object
// that caused them; the caller always receives the partial result.
type Planner struct {
	scanner   ports.ResourceScanner
	generator *PatchGenerator
}

func ProvidePlanner(scanner ports.ResourceScanner, generator *PatchGenerator) *Planner {
	return &Planner{
		scanner:   scanner,
		generator: generator,
	}
}

// Plan compiles the intents into merged patch records. The overrides, when
// non-empty, win over the namespace and label selector the parser extracted.
func (p *Planner) Plan(intents []domain.Intent, namespaceOverride, selectorOverride string) ([]*domain.PatchRecord, error) {
	patchSet := NewPatchSet()

	for _, intent := range intents {
		resources, err := p.scanner.Scan(domain.QueryForIntent(intent, namespaceOverride, selectorOverride))
		if err != nil {
			output.PrintWarning(fmt.Sprintf("scan failed for %s: %v", intent, err))
			continue
		}

		for _, record := range p.generator.Generate(intent, resources) {
			if err := patchSet.Add(record); err != nil {
				return nil, fmt.Errorf("failed to merge patch for %s: %w", record.Key(), err)
			}
		}
	}

	return patchSet.Records(), nil
}
