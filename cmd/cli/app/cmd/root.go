package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var namespace *string
var labelSelector *string
var manifestPath *string

var rootCmd = &cobra.Command{
	Use:   "kustomate",
	Short: "Natural language Kubernetes configuration management",
	Long: `Kustomate turns natural language requests into Kubernetes strategic
merge patches. It scans the cluster or local manifests for matching objects,
compiles the requested change into one patch per object and can preview,
apply or export the result as a kustomize overlay.

Configuration is stored in ~/.kustomate.yaml. Run 'kustomate auth set-key'
to store an API key for the language model; without one requests fall back
to keyword parsing.

Common workflows:
  kustomate plan "add memory limit 512Mi to all deployments"
  kustomate apply "update images from docker.io to ecr.aws" -n staging
  kustomate export "add label team=platform to services" -o patches
  kustomate serve --addr :8800`,
}

func Execute() {
	namespace = rootCmd.PersistentFlags().StringP("namespace", "n", "", "Restrict matching to one namespace")
	labelSelector = rootCmd.PersistentFlags().StringP("selector", "l", "", "Restrict matching to objects with these labels (e.g. app=web)")
	manifestPath = rootCmd.PersistentFlags().StringP("file", "f", "", "Scan local manifests at this path instead of the cluster")
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
