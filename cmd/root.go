package cmd

import (
	"github.com/spf13/cobra"
)

// NewRootCommand assembles the CLI.
func NewRootCommand() *cobra.Command {
	var cfgPath string

	root := &cobra.Command{
		Use:           "shift-scheduler",
		Short:         "Weekly shift schedule generator",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "configuration file (yaml or json); defaults and SHIFT_* env when empty")

	root.AddCommand(newGenerateCommand(&cfgPath))
	root.AddCommand(newServeCommand(&cfgPath))
	return root
}

// Execute runs the CLI.
func Execute() error { return NewRootCommand().Execute() }
