package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/scorg/internal/report"
)

func newChartCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "chart <first-names> <last-name> <out.xlsx>",
		Short: "Write a student's scores and a line chart to a workbook",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			student, err := e.lookup(args[0], args[1])
			if err != nil {
				return err
			}
			scores, err := e.scores.ForStudent(student.ID)
			if err != nil {
				return fmt.Errorf("get scores: %w", err)
			}
			if err := report.WriteScoreChart(args[2], student, scores); err != nil {
				return err
			}
			success(cmd.OutOrStdout(), "Wrote %d scores for %s to %s", len(scores), student.FullName(), args[2])
			return nil
		},
	}
}
