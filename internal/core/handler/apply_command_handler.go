package handler

import (
	"context"
	"fmt"
	"time"

	"kustomate/internal/cli/output"
	"kustomate/internal/cli/progress"
	"kustomate/internal/core"
	"kustomate/internal/ports"

	"golang.org/x/sync/errgroup"
)

const maxConcurrentApplies = 4

type ApplyOptions struct {
	// Namespace overrides any namespace the parsed intents carry.
	Namespace string
	// Selector overrides any label selector the parsed intents carry.
	Selector string
	// Yes skips the confirmation prompt.
	Yes bool
	// DryRun shows the server-side diff without patching anything.
	DryRun bool
}

type ApplyCommandHandler struct {
	intentParser   ports.IntentParser
	scannerFactory ports.ScannerFactory
	patchGenerator *core.PatchGenerator
	diffPreviewer  ports.DiffPreviewer
	terminalInput  ports.TerminalInput
}

func ProvideApplyCommandHandler(
	intentParser ports.IntentParser,
	scannerFactory ports.ScannerFactory,
	patchGenerator *core.PatchGenerator,
	diffPreviewer ports.DiffPreviewer,
	terminalInput ports.TerminalInput,
) ApplyCommandHandler {
	return ApplyCommandHandler{
		intentParser:   intentParser,
		scannerFactory: scannerFactory,
		patchGenerator: patchGenerator,
		diffPreviewer:  diffPreviewer,
		terminalInput:  terminalInput,
	}
}

func (h *ApplyCommandHandler) Handle(request string, options ApplyOptions) error {
	planOptions := PlanOptions{Namespace: options.Namespace, Selector: options.Selector}
	records, err := planRequest(h.intentParser, h.scannerFactory, h.patchGenerator, request, planOptions)
	if err != nil {
		return err
	}

	if len(records) == 0 {
		output.PrintInfo("No matching resources found, nothing to apply")
		return nil
	}

	for _, record := range records {
		output.PrintHeader(record.Key())
		fmt.Println()

		preview, err := h.diffPreviewer.Preview(record)
		if err != nil {
			output.PrintWarning(fmt.Sprintf("server-side diff unavailable: %v", err))
			fmt.Println(record.Diff)
			continue
		}
		if preview == "" {
			output.PrintSecondary("  no changes against live state")
			continue
		}
		fmt.Println(preview)
	}

	if options.DryRun {
		output.PrintInfo(fmt.Sprintf("Dry run, %d %s not applied",
			len(records), output.Plural(len(records), "patch", "patches")))
		return nil
	}

	if !options.Yes {
		if !h.terminalInput.IsTerminal() {
			return fmt.Errorf("confirmation requires a terminal; pass --yes to apply without prompting")
		}
		confirmed, err := h.terminalInput.Confirm(fmt.Sprintf("Apply %d %s?",
			len(records), output.Plural(len(records), "patch", "patches")))
		if err != nil {
			return fmt.Errorf("failed to read confirmation: %w", err)
		}
		if !confirmed {
			output.PrintInfo("Apply cancelled")
			return nil
		}
	}

	applier, err := h.scannerFactory.ClusterApplier()
	if err != nil {
		return err
	}

	applyStartTime := time.Now()
	output.PrintHeader("Applying patches")
	fmt.Println()

	names := make([]string, len(records))
	for i, record := range records {
		names[i] = record.Key()
	}

	tracker := progress.NewConcurrentTracker(names, "Applying")
	tracker.Start()

	g := new(errgroup.Group)
	g.SetLimit(maxConcurrentApplies)

	// Patches target distinct objects, so one failure never stops the rest.
	applyErrors := make([]error, len(records))
	for i, record := range records {
		g.Go(func() error {
			tracker.StartItem(i)
			applyErrors[i] = applier.Apply(context.Background(), record)
			tracker.CompleteItem(i, applyErrors[i])
			return nil
		})
	}
	_ = g.Wait()
	tracker.Stop()

	var applied, failed int
	for i, applyError := range applyErrors {
		if applyError != nil {
			output.PrintError(fmt.Sprintf("failed to apply %s: %v", records[i].Key(), applyError))
			failed++
			continue
		}
		applied++
	}

	fmt.Println()
	if failed > 0 {
		return fmt.Errorf("applied %d of %d patches, %d failed", applied, len(records), failed)
	}

	output.PrintSuccess(fmt.Sprintf(
		"Applied %d %s in %s",
		applied,
		output.Plural(applied, "patch", "patches"),
		progress.FormatDuration(time.Since(applyStartTime)),
	))
	return nil
}
