package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/scorg/pkg/types"
)

func newStudentCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "student",
		Short: "Add, list, show, update and delete students",
	}
	cmd.AddCommand(
		newStudentAddCmd(e),
		newStudentListCmd(e),
		newStudentShowCmd(e),
		newStudentUpdateCmd(e),
		newStudentDeleteCmd(e),
	)
	return cmd
}

func newStudentAddCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:     "add <first-names> <last-name> <date-of-birth>",
		Short:   "Add a student",
		Example: `  scorg student add "Gemma Victoria" Forbes 1988-09-30`,
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			student, err := types.NewStudent(args[0], args[1], args[2])
			if err != nil {
				return err
			}
			if err := e.open(); err != nil {
				return err
			}
			if err := e.students.Add(student); err != nil {
				return fmt.Errorf("add student: %w", err)
			}
			if e.jsonMode {
				return printJSON(cmd.OutOrStdout(), viewStudent(student))
			}
			success(cmd.OutOrStdout(), "Added %s (%s)", student.FullName(), student.ID)
			return nil
		},
	}
}

func newStudentListCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all students",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := e.open(); err != nil {
				return err
			}
			students, err := e.students.All()
			if err != nil {
				return fmt.Errorf("list students: %w", err)
			}
			views := make([]studentView, 0, len(students))
			for _, s := range students {
				views = append(views, viewStudent(s))
			}
			if e.jsonMode {
				return printJSON(cmd.OutOrStdout(), views)
			}
			printStudents(cmd.OutOrStdout(), views)
			return nil
		},
	}
}

func newStudentShowCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "show <first-names> <last-name>",
		Short: "Show a student and their scores",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			student, err := e.lookup(args[0], args[1])
			if err != nil {
				return err
			}
			scores, err := e.scores.ForStudent(student.ID)
			if err != nil {
				return fmt.Errorf("get scores: %w", err)
			}
			view := viewStudent(student)
			view.Scores = viewScores(scores)
			if e.jsonMode {
				return printJSON(cmd.OutOrStdout(), view)
			}
			out := cmd.OutOrStdout()
			printStudents(out, []studentView{view})
			fmt.Fprintln(out)
			printScores(out, view.Scores)
			return nil
		},
	}
}

func newStudentUpdateCmd(e *env) *cobra.Command {
	var first, last, dob string
	cmd := &cobra.Command{
		Use:     "update <first-names> <last-name>",
		Short:   "Change a student's names or date of birth",
		Example: `  scorg student update Ben Jones --last-name Jones-Smith`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			student, err := e.lookup(args[0], args[1])
			if err != nil {
				return err
			}
			if first == "" {
				first = student.FirstNames
			}
			if last == "" {
				last = student.LastName
			}
			if dob == "" {
				dob = types.FormatDate(student.DateOfBirth)
			}
			updated, err := types.NewStudent(first, last, dob)
			if err != nil {
				return err
			}
			updated.ID = student.ID

			if _, err := e.students.Update(updated); err != nil {
				return fmt.Errorf("update student: %w", err)
			}
			if e.jsonMode {
				return printJSON(cmd.OutOrStdout(), viewStudent(updated))
			}
			success(cmd.OutOrStdout(), "Updated %s", updated.FullName())
			return nil
		},
	}
	cmd.Flags().StringVar(&first, "first-names", "", "new first names")
	cmd.Flags().StringVar(&last, "last-name", "", "new last name")
	cmd.Flags().StringVar(&dob, "dob", "", "new date of birth (YYYY-MM-DD)")
	return cmd
}

func newStudentDeleteCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <first-names> <last-name>",
		Short: "Delete a student and all of their scores",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := e.open(); err != nil {
				return err
			}
			id, err := e.students.IDForName(args[0], args[1])
			if err != nil {
				return err
			}
			n, err := e.students.Delete(id)
			if err != nil {
				return fmt.Errorf("delete student: %w", err)
			}
			if e.jsonMode {
				return printJSON(cmd.OutOrStdout(), map[string]any{"id": id, "deleted": n})
			}
			success(cmd.OutOrStdout(), "Deleted %s %s", args[0], args[1])
			return nil
		},
	}
}

// lookup opens the store and returns the student named first last.
func (e *env) lookup(first, last string) (*types.Student, error) {
	if err := e.open(); err != nil {
		return nil, err
	}
	id, err := e.students.IDForName(first, last)
	if err != nil {
		return nil, err
	}
	return e.students.Get(id)
}
