package cmd

import (
	"strings"

	"kustomate/cmd/cli/app"
	"kustomate/internal/core/handler"

	"github.com/spf13/cobra"
)

var exportOutputDir string

func init() {
	exportCmd.Flags().StringVarP(&exportOutputDir, "output", "o", "patches", "directory to write the kustomize overlay to")
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export <request>",
	Short: "Exports the patches a request produces as a kustomize overlay",
	Long:  `Parses the request and writes one patch file per matched resource plus a kustomization.yaml referencing them`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		exportHandler, err := app.InjectExportCommandHandler()
		if err != nil {
			return err
		}

		return exportHandler.Handle(strings.Join(args, " "), exportOutputDir, handler.PlanOptions{
			Namespace:    *namespace,
			Selector:     *labelSelector,
			ManifestPath: *manifestPath,
		})
	},
}
