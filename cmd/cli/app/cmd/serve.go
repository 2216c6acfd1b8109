package cmd

import (
	"fmt"

	"kustomate/cmd/cli/app"
	"kustomate/internal/cli/output"

	"github.com/spf13/cobra"
)

var serveAddress string

func init() {
	serveCmd.Flags().StringVar(&serveAddress, "addr", ":8800", "address to listen on")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the intent pipeline as an HTTP API",
	Long:  `Starts an HTTP server exposing plan and apply over JSON for other tooling`,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := app.InjectAPIServer()
		if err != nil {
			return err
		}

		output.PrintInfo(fmt.Sprintf("Listening on %s", serveAddress))
		return server.ListenAndServe(serveAddress)
	},
}
