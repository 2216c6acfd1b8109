package kubectl

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"kustomate/internal/core/domain"
	"kustomate/internal/ports"
)

var _ ports.DiffPreviewer = (*DiffPreviewer)(nil)

// DiffPreviewer shells out to kubectl to diff a patch against the live
// cluster. When kubectl is unavailable callers fall back to the locally
// rendered diff.
type DiffPreviewer struct {
	commandRunner ports.CommandRunner
}

func ProvideDiffPreviewer(commandRunner ports.CommandRunner) *DiffPreviewer {
	return &DiffPreviewer{commandRunner: commandRunner}
}

func (p *DiffPreviewer) Preview(record *domain.PatchRecord) (string, error) {
	args := []string{"diff", "-f", "-"}
	if record.Namespace != "" {
		args = append(args, "-n", record.Namespace)
	}

	stdout, err := p.commandRunner.RunWithStdin(strings.NewReader(record.YAML), "kubectl", args...)
	if err != nil {
		// kubectl diff exits 1 when the live object differs from the patch.
		var exitError *exec.ExitError
		if errors.As(err, &exitError) && exitError.ExitCode() == 1 {
			return string(stdout), nil
		}
		return "", fmt.Errorf("kubectl diff failed for %s: %w", record.Key(), err)
	}

	return string(stdout), nil
}
