package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ahmabora1/usvc/internal/catalog"
	"github.com/ahmabora1/usvc/internal/unit"
)

var showCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show the unit file of a service",
	Long:  `Print the stored unit file of a service, or with --yaml its parsed settings and systemd state.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

var showYAML bool

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().BoolVar(&showYAML, "yaml", false, "Print the parsed settings as YAML")
}

func runShow(cmd *cobra.Command, args []string) error {
	name := args[0]
	if err := unit.ValidateName(name); err != nil {
		return err
	}

	a, err := loadApp()
	if err != nil {
		return err
	}

	if !showYAML {
		content, err := a.store.Read(name)
		if err != nil {
			return err
		}
		fmt.Print(content)
		return nil
	}

	entry, err := catalog.Get(a.store, a.systemd, name)
	if err != nil {
		return err
	}

	out, err := yaml.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	fmt.Print(string(out))
	return nil
}
