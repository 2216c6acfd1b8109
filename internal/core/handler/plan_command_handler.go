package handler

import (
	"context"
	"fmt"

	"kustomate/internal/cli/output"
	"kustomate/internal/core"
	"kustomate/internal/core/domain"
	"kustomate/internal/ports"
)

// PlanOptions carries the flags shared by plan, apply and export.
type PlanOptions struct {
	// Namespace overrides any namespace the parsed intents carry.
	Namespace string
	// Selector overrides any label selector the parsed intents carry.
	Selector string
	// ManifestPath switches scanning from the cluster to local YAML files.
	ManifestPath string
}

type PlanCommandHandler struct {
	intentParser   ports.IntentParser
	scannerFactory ports.ScannerFactory
	patchGenerator *core.PatchGenerator
}

func ProvidePlanCommandHandler(
	intentParser ports.IntentParser,
	scannerFactory ports.ScannerFactory,
	patchGenerator *core.PatchGenerator,
) PlanCommandHandler {
	return PlanCommandHandler{
		intentParser:   intentParser,
		scannerFactory: scannerFactory,
		patchGenerator: patchGenerator,
	}
}

func (h *PlanCommandHandler) Handle(request string, options PlanOptions) error {
	records, err := planRequest(h.intentParser, h.scannerFactory, h.patchGenerator, request, options)
	if err != nil {
		return err
	}

	if len(records) == 0 {
		output.PrintInfo("No matching resources found, nothing to do")
		return nil
	}

	for _, record := range records {
		output.PrintHeader(record.Key())
		fmt.Println()
		fmt.Println(record.Diff)
		fmt.Println(record.YAML)
	}

	output.PrintSuccess(fmt.Sprintf("Planned %d %s",
		len(records), output.Plural(len(records), "patch", "patches")))
	return nil
}

// planRequest is the parse-scan-compile pipeline shared by plan, apply and
// export.
func planRequest(
	intentParser ports.IntentParser,
	scannerFactory ports.ScannerFactory,
	patchGenerator *core.PatchGenerator,
	request string,
	options PlanOptions,
) ([]*domain.PatchRecord, error) {
	intents, err := intentParser.Parse(context.Background(), request)
	if err != nil {
		return nil, fmt.Errorf("failed to parse request: %w", err)
	}
	if len(intents) == 0 {
		return nil, fmt.Errorf("could not derive any intent from '%s'", request)
	}

	output.PrintStep(fmt.Sprintf("Parsed %d %s",
		len(intents), output.Plural(len(intents), "intent", "intents")))
	for _, intent := range intents {
		output.PrintSecondary("  " + intent.String())
	}

	scanner, err := selectScanner(scannerFactory, options)
	if err != nil {
		return nil, err
	}

	planner := core.ProvidePlanner(scanner, patchGenerator)
	return planner.Plan(intents, options.Namespace, options.Selector)
}

func selectScanner(scannerFactory ports.ScannerFactory, options PlanOptions) (ports.ResourceScanner, error) {
	if options.ManifestPath != "" {
		return scannerFactory.ManifestScanner(options.ManifestPath)
	}
	return scannerFactory.ClusterScanner()
}
