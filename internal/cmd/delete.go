package cmd

import (
	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Stop, disable and remove a service",
	Long: `Stop and disable a service, remove its registered domain and delete
its unit file. Asks for confirmation unless --force is given.`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

var deleteForce bool

func init() {
	rootCmd.AddCommand(deleteCmd)
	deleteCmd.Flags().BoolVarP(&deleteForce, "force", "f", false, "Skip the confirmation prompt")
}

func runDelete(cmd *cobra.Command, args []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}

	orch, err := a.orchestrator(false)
	if err != nil {
		return err
	}

	return finish(orch.Delete(args[0], deleteForce))
}
