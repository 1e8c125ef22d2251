package cmd

import (
	"github.com/spf13/cobra"
)

var startCmd = &cobra.Command{
	Use:   "start <name>",
	Short: "Start a service",
	Args:  cobra.ExactArgs(1),
	RunE:  runStart,
}

var stopCmd = &cobra.Command{
	Use:   "stop <name>",
	Short: "Stop a service",
	Args:  cobra.ExactArgs(1),
	RunE:  runStop,
}

var enableCmd = &cobra.Command{
	Use:   "enable <name>",
	Short: "Enable a service at login",
	Long:  `Enable a service so it starts with the user session. With --now it is started as well.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runEnable,
}

var disableCmd = &cobra.Command{
	Use:   "disable <name>",
	Short: "Disable a service at login",
	Long:  `Disable a service so it no longer starts with the user session. With --now it is stopped as well.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runDisable,
}

var (
	enableNow  bool
	disableNow bool
)

func init() {
	rootCmd.AddCommand(startCmd, stopCmd, enableCmd, disableCmd)
	enableCmd.Flags().BoolVarP(&enableNow, "now", "n", false, "Start the service as well")
	disableCmd.Flags().BoolVarP(&disableNow, "now", "n", false, "Stop the service as well")
}

func runStart(cmd *cobra.Command, args []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	orch, err := a.orchestrator(false)
	if err != nil {
		return err
	}
	return orch.Start(args[0])
}

func runStop(cmd *cobra.Command, args []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	orch, err := a.orchestrator(false)
	if err != nil {
		return err
	}
	return orch.Stop(args[0])
}

func runEnable(cmd *cobra.Command, args []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	orch, err := a.orchestrator(false)
	if err != nil {
		return err
	}
	return orch.Enable(args[0], enableNow)
}

func runDisable(cmd *cobra.Command, args []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	orch, err := a.orchestrator(false)
	if err != nil {
		return err
	}
	return orch.Disable(args[0], disableNow)
}
