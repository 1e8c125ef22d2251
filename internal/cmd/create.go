package cmd

import (
	"github.com/spf13/cobra"
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new service interactively",
	Long: `Ask for the service settings, register a domain when the service
listens on a port, write the unit file and reload systemd.

Port answers: empty or "auto" allocates a free port from the registrar,
"-" or "none" creates a service without a port, anything else is used
as the port number.`,
	Args: cobra.NoArgs,
	RunE: runCreate,
}

func init() {
	rootCmd.AddCommand(createCmd)
}

func runCreate(cmd *cobra.Command, args []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}

	orch, err := a.orchestrator(true)
	if err != nil {
		return err
	}

	_, err = orch.Create()
	return finish(err)
}
