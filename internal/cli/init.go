package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newInitCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize scorg storage",
		Long:  "Create the configuration and data directories, write a default\nconfig.yaml if none exists, and create the database schema.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := e.dirs.Ensure(); err != nil {
				return systemError{err}
			}
			s := e.settings
			if e.dataFlag != "" {
				s.DataDir = e.dirs.Data
			}
			written, err := writeConfigIfMissing(e.dirs.Config, s)
			if err != nil {
				return systemError{fmt.Errorf("write config: %w", err)}
			}
			if err := e.open(); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if written {
				fmt.Fprintf(out, "Wrote %s/%s\n", e.dirs.Config, configFileExt)
			}
			success(out, "scorg initialized in %s", e.dirs.Data)
			return nil
		},
	}
}
