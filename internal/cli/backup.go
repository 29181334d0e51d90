package cli

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/scorg/internal/backup"
)

func newExportCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "export <dir>",
		Short: "Write every student and score to JSON Lines files in dir",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := e.open(); err != nil {
				return err
			}
			c, err := backup.Export(args[0], e.students, e.scores)
			if err != nil {
				return systemError{err}
			}
			if e.jsonMode {
				return printJSON(cmd.OutOrStdout(), c)
			}
			success(cmd.OutOrStdout(), "Exported %d students and %d scores to %s", c.Students, c.Scores, args[0])
			return nil
		},
	}
}

func newRestoreCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "restore <dir>",
		Short: "Load students and scores from an export directory",
		Long:  "Restore adds students that are not already stored and replaces any\nstored score on the same date as a restored one.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := e.open(); err != nil {
				return err
			}
			c, err := backup.Restore(args[0], e.students, e.scores)
			if err != nil {
				return err
			}
			if e.jsonMode {
				return printJSON(cmd.OutOrStdout(), c)
			}
			success(cmd.OutOrStdout(), "Restored %d students and %d scores", c.Students, c.Scores)
			return nil
		},
	}
}
