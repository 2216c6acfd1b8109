package cmd

import (
	"fmt"
	"strings"

	"kustomate/cmd/cli/app"
	"kustomate/internal/core/handler"

	"github.com/spf13/cobra"
)

var applyYes bool
var applyDryRun bool

func init() {
	applyCmd.Flags().BoolVarP(&applyYes, "yes", "y", false, "apply without asking for confirmation")
	applyCmd.Flags().BoolVar(&applyDryRun, "dry-run", false, "show the server-side diff without patching anything")
	rootCmd.AddCommand(applyCmd)
}

var applyCmd = &cobra.Command{
	Use:   "apply <request>",
	Short: "Applies the patches a request produces to the cluster",
	Long:  `Parses the request, previews each patch against the live cluster and applies it after confirmation`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if *manifestPath != "" {
			return fmt.Errorf("apply works against the cluster; use plan or export for local manifests")
		}

		applyHandler, err := app.InjectApplyCommandHandler()
		if err != nil {
			return err
		}

		return applyHandler.Handle(strings.Join(args, " "), handler.ApplyOptions{
			Namespace: *namespace,
			Selector:  *labelSelector,
			Yes:       applyYes,
			DryRun:    applyDryRun,
		})
	},
}
