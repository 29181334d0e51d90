package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/scorg/pkg/scorg"
)

const modulePath = "github.com/mesh-intelligence/scorg"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the scorg version",
		// No directories or logger are needed.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "scorg v%s\nmodule: %s\n", scorg.Version, modulePath)
			return nil
		},
	}
}
