package cmd

import (
	"kustomate/cmd/cli/app"

	"github.com/spf13/cobra"
)

func init() {
	authCmd.AddCommand(authSetKeyCmd)
	authCmd.AddCommand(authStatusCmd)
	rootCmd.AddCommand(authCmd)
}

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manages language model credentials",
}

var authSetKeyCmd = &cobra.Command{
	Use:   "set-key",
	Short: "Stores the language model API key in the system keyring",
	RunE: func(cmd *cobra.Command, args []string) error {
		authHandler, err := app.InjectAuthCommandHandler()
		if err != nil {
			return err
		}

		return authHandler.HandleSetKey()
	},
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Shows whether an API key is configured",
	RunE: func(cmd *cobra.Command, args []string) error {
		authHandler, err := app.InjectAuthCommandHandler()
		if err != nil {
			return err
		}

		return authHandler.HandleStatus()
	},
}
