package cli

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/scorg/internal/importer"
)

func newImportCmd(e *env) *cobra.Command {
	var sheet string
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import students and scores from a .csv or .xlsx file",
		Long: `Import reads a header row of first_names, last_name, date_of_birth
followed by one YYYY-MM-DD column per test day. Score cells hold
"correct/incorrect"; blank cells are skipped. Students already in the
store are matched by name.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := e.open(); err != nil {
				return err
			}
			im := importer.New(e.students, e.scores)

			var students, scores int64
			var err error
			if sheet != "" {
				students, scores, err = im.ImportXLSX(args[0], sheet)
			} else {
				students, scores, err = im.ImportFile(args[0])
			}
			if err != nil {
				return err
			}
			if e.jsonMode {
				return printJSON(cmd.OutOrStdout(), map[string]int64{"students": students, "scores": scores})
			}
			success(cmd.OutOrStdout(), "Imported %d new students and %d scores", students, scores)
			return nil
		},
	}
	cmd.Flags().StringVar(&sheet, "sheet", "", "worksheet to read from an .xlsx file (default: first)")
	return cmd
}
