package cmd

import (
	"strings"

	"kustomate/cmd/cli/app"
	"kustomate/internal/core/handler"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(planCmd)
}

var planCmd = &cobra.Command{
	Use:   "plan <request>",
	Short: "Shows the patches a request would produce",
	Long:  `Parses the request, scans for matching resources and prints the resulting strategic merge patches without changing anything`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		planHandler, err := app.InjectPlanCommandHandler()
		if err != nil {
			return err
		}

		return planHandler.Handle(strings.Join(args, " "), handler.PlanOptions{
			Namespace:    *namespace,
			Selector:     *labelSelector,
			ManifestPath: *manifestPath,
		})
	},
}
