package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/scorg/pkg/types"
)

func newScoreCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Record and list scores",
	}
	cmd.AddCommand(newScoreAddCmd(e), newScoreListCmd(e))
	return cmd
}

func newScoreAddCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:     "add <first-names> <last-name> <date> <correct> <incorrect>",
		Short:   "Record a score for a student",
		Example: `  scorg score add Ben Jones 2022-01-02 87 8`,
		Args:    cobra.ExactArgs(5),
		RunE: func(cmd *cobra.Command, args []string) error {
			correct, err := parseCount(args[3])
			if err != nil {
				return err
			}
			incorrect, err := parseCount(args[4])
			if err != nil {
				return err
			}
			student, err := e.lookup(args[0], args[1])
			if err != nil {
				return err
			}
			score, err := types.NewScore(student.ID, correct, incorrect, args[2])
			if err != nil {
				return err
			}
			if err := e.scores.Add(score); err != nil {
				return fmt.Errorf("add score: %w", err)
			}
			if e.jsonMode {
				return printJSON(cmd.OutOrStdout(), viewScores([]*types.Score{score})[0])
			}
			success(cmd.OutOrStdout(), "Recorded %d/%d for %s on %s", correct, incorrect, student.FullName(), types.FormatDate(score.Date))
			return nil
		},
	}
}

func newScoreListCmd(e *env) *cobra.Command {
	var before string
	cmd := &cobra.Command{
		Use:   "list <first-names> <last-name>",
		Short: "List a student's scores, oldest first",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			student, err := e.lookup(args[0], args[1])
			if err != nil {
				return err
			}
			var scores []*types.Score
			if before != "" {
				cutoff, err := types.ParseDate(before)
				if err != nil {
					return err
				}
				scores, err = e.scores.Before(student.ID, cutoff)
				if err != nil {
					return fmt.Errorf("list scores: %w", err)
				}
			} else {
				scores, err = e.scores.ForStudent(student.ID)
				if err != nil {
					return fmt.Errorf("list scores: %w", err)
				}
			}
			if e.jsonMode {
				return printJSON(cmd.OutOrStdout(), viewScores(scores))
			}
			printScores(cmd.OutOrStdout(), viewScores(scores))
			return nil
		},
	}
	cmd.Flags().StringVar(&before, "before", "", "only scores dated before this day (YYYY-MM-DD)")
	return cmd
}

func parseCount(s string) (int32, error) {
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", types.ErrParseInt, err.Error())
	}
	return int32(n), nil
}
