package commands

import (
	"github.com/spf13/cobra"
)

// NewRootCmd builds the alpsctl command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "alpsctl",
		Short: "AlpsConnect demo data tooling",
		Long: `alpsctl prints the mock data the AlpsConnect demo serves, so fixtures
can be inspected or exported without starting the API.`,
		SilenceUsage: true,
	}
	root.AddCommand(newGenerateCmd())
	root.AddCommand(newEquipmentCmd())
	return root
}

// Execute runs the root command against os.Args.
func Execute() error {
	return NewRootCmd().Execute()
}
