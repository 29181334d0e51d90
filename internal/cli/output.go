package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/mesh-intelligence/scorg/pkg/types"
)

// studentView is the printed form of a student. Dates are YYYY-MM-DD.
type studentView struct {
	ID          string      `json:"id"`
	FirstNames  string      `json:"first_names"`
	LastName    string      `json:"last_name"`
	DateOfBirth string      `json:"date_of_birth"`
	Scores      []scoreView `json:"scores,omitempty"`
}

type scoreView struct {
	Date      string `json:"date"`
	Correct   int32  `json:"correct"`
	Incorrect int32  `json:"incorrect"`
}

func viewStudent(s *types.Student) studentView {
	return studentView{
		ID:          s.ID,
		FirstNames:  s.FirstNames,
		LastName:    s.LastName,
		DateOfBirth: types.FormatDate(s.DateOfBirth),
	}
}

func viewScores(scores []*types.Score) []scoreView {
	out := make([]scoreView, 0, len(scores))
	for _, s := range scores {
		out = append(out, scoreView{Date: types.FormatDate(s.Date), Correct: s.Correct, Incorrect: s.Incorrect})
	}
	return out
}

func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	fmt.Fprintln(w, string(data))
	return nil
}

func printStudents(w io.Writer, students []studentView) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tFIRST NAMES\tLAST NAME\tDATE OF BIRTH")
	for _, s := range students {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", s.ID, s.FirstNames, s.LastName, s.DateOfBirth)
	}
	tw.Flush()
}

func printScores(w io.Writer, scores []scoreView) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tCORRECT\tINCORRECT")
	for _, s := range scores {
		fmt.Fprintf(tw, "%s\t%d\t%d\n", s.Date, s.Correct, s.Incorrect)
	}
	tw.Flush()
}

// success prints a confirmation line, green on a terminal.
func success(w io.Writer, format string, a ...any) {
	color.New(color.FgGreen).Fprintf(w, format+"\n", a...)
}
