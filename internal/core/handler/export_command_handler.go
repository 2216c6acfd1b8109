package handler

import (
	"fmt"

	"kustomate/internal/cli/output"
	"kustomate/internal/core"
	"kustomate/internal/ports"
)

type ExportCommandHandler struct {
	intentParser   ports.IntentParser
	scannerFactory ports.ScannerFactory
	patchGenerator *core.PatchGenerator
	exporter       ports.Exporter
}

func ProvideExportCommandHandler(
	intentParser ports.IntentParser,
	scannerFactory ports.ScannerFactory,
	patchGenerator *core.PatchGenerator,
	exporter ports.Exporter,
) ExportCommandHandler {
	return ExportCommandHandler{
		intentParser:   intentParser,
		scannerFactory: scannerFactory,
		patchGenerator: patchGenerator,
		exporter:       exporter,
	}
}

func (h *ExportCommandHandler) Handle(request string, outputDir string, options PlanOptions) error {
	records, err := planRequest(h.intentParser, h.scannerFactory, h.patchGenerator, request, options)
	if err != nil {
		return err
	}

	if len(records) == 0 {
		output.PrintInfo("No matching resources found, nothing to export")
		return nil
	}

	if err := h.exporter.Export(records, outputDir); err != nil {
		return fmt.Errorf("failed to export patches: %w", err)
	}

	output.PrintSuccess(fmt.Sprintf("Exported %d %s to %s",
		len(records), output.Plural(len(records), "patch", "patches"), outputDir))
	return nil
}
