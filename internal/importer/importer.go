// Package importer bulk-loads students and scores from a spreadsheet.
//
// The first row is a header: first_names, last_name, date_of_birth, then
// one YYYY-MM-DD date per remaining column. Each data row holds a
// student's names and date of birth followed by "correct/incorrect" cells
// under each date. A blank cell means no score that day.
package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/scorg/internal/services"
	"github.com/mesh-intelligence/scorg/pkg/types"
)

// dateHeader matches a score column header before it is parsed.
var dateHeader = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// leading columns before the score dates
const nameColumns = 3

// Importer adds the rows of a file through the student and score services.
type Importer struct {
	students *services.StudentService
	scores   *services.ScoreService
	log      *zap.SugaredLogger
}

// New returns an Importer writing through students and scores.
func New(students *services.StudentService, scores *services.ScoreService) *Importer {
	return &Importer{students: students, scores: scores, log: zap.S().Named("importer")}
}

// ImportFile imports path, choosing the reader by extension: .csv or
// .xlsx (first sheet).
func (im *Importer) ImportFile(path string) (students, scores int64, err error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return 0, 0, fmt.Errorf("%w: %s", types.ErrImporter, err.Error())
		}
		defer f.Close()
		return im.ImportCSV(f)
	case ".xlsx":
		return im.ImportXLSX(path, "")
	default:
		return 0, 0, fmt.Errorf("%w: unsupported file type %q", types.ErrImporter, filepath.Ext(path))
	}
}

// ImportCSV imports comma-separated rows from r.
func (im *Importer) ImportCSV(r io.Reader) (students, scores int64, err error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %s", types.ErrImporter, err.Error())
	}
	return im.importRows(rows)
}

// ImportXLSX imports the named sheet of the workbook at path. An empty
// sheet name selects the first sheet.
func (im *Importer) ImportXLSX(path, sheet string) (students, scores int64, err error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: open %s: %s", types.ErrImporter, path, err.Error())
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return 0, 0, fmt.Errorf("%w: %s has no sheets", types.ErrImporter, path)
		}
		sheet = sheets[0]
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: read sheet %s: %s", types.ErrImporter, sheet, err.Error())
	}
	return im.importRows(rows)
}

// importRows validates every row before writing anything, then adds new
// students in one batch and all scores in a second.
func (im *Importer) importRows(rows [][]string) (int64, int64, error) {
	if len(rows) == 0 {
		return 0, 0, fmt.Errorf("%w: no header row", types.ErrImporter)
	}
	dates := rows[0]
	if len(dates) > nameColumns {
		dates = dates[nameColumns:]
	} else {
		dates = nil
	}

	var newStudents []*types.Student
	var newScores []*types.Score
	pending := make(map[[2]string]string)
	for _, row := range rows[1:] {
		if blankRow(row) {
			continue
		}
		first, last, dob, err := extractStudent(row)
		if err != nil {
			return 0, 0, err
		}
		im.log.Debugw("found student", "first_names", first, "last_name", last)

		key := [2]string{first, last}
		id, ok := pending[key]
		if !ok {
			id, err = im.students.IDForName(first, last)
			switch {
			case errors.Is(err, types.ErrNoStudent):
				student, err := types.NewStudent(first, last, dob)
				if err != nil {
					return 0, 0, fmt.Errorf("%w: %s %s: %w", types.ErrImporter, first, last, err)
				}
				im.log.Debugw("will add new student", "name", student.FullName())
				newStudents = append(newStudents, student)
				id = student.ID
			case err != nil:
				return 0, 0, fmt.Errorf("look up %s %s: %w", first, last, err)
			}
			pending[key] = id
		}

		scores, err := parseScores(id, row[nameColumns:], dates)
		if err != nil {
			return 0, 0, err
		}
		newScores = append(newScores, scores...)
	}

	im.log.Debugw("adding new students", "count", len(newStudents))
	studentsAdded, err := im.students.AddMany(newStudents)
	if err != nil {
		return 0, 0, err
	}
	im.log.Debugw("adding scores", "count", len(newScores))
	scoresAdded, err := im.scores.AddMany(newScores)
	if err != nil {
		return studentsAdded, 0, err
	}
	im.log.Infow("import finished", "students", studentsAdded, "scores", scoresAdded)
	return studentsAdded, scoresAdded, nil
}

// extractStudent returns the trimmed name and dob cells of row.
func extractStudent(row []string) (first, last, dob string, err error) {
	cells := [nameColumns]string{}
	labels := [nameColumns]string{"first names", "last name", "dob"}
	for i := range cells {
		if i >= len(row) {
			return "", "", "", fmt.Errorf("%w: no %s found", types.ErrImporter, labels[i])
		}
		cells[i] = strings.TrimSpace(row[i])
		if cells[i] == "" {
			return "", "", "", fmt.Errorf("%w: blank %s", types.ErrImporter, labels[i])
		}
	}
	return cells[0], cells[1], cells[2], nil
}

// parseScores pairs each score cell with its date header. Cells beyond the
// last header are ignored.
func parseScores(id string, cells, dates []string) ([]*types.Score, error) {
	var scores []*types.Score
	for i, cell := range cells {
		if i >= len(dates) {
			break
		}
		score, err := parseScore(id, cell, dates[i])
		if err != nil {
			return nil, err
		}
		if score != nil {
			scores = append(scores, score)
		}
	}
	return scores, nil
}

// parseScore parses a "correct/incorrect" cell. A blank cell returns nil.
func parseScore(id, cell, date string) (*types.Score, error) {
	parts := strings.Split(cell, "/")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	switch {
	case len(parts) == 1 && parts[0] == "":
		return nil, nil
	case len(parts) != 2:
		return nil, fmt.Errorf("%w: must provide 2 scores per date", types.ErrImporter)
	}

	correct, err := parseInt(parts[0])
	if err != nil {
		return nil, err
	}
	incorrect, err := parseInt(parts[1])
	if err != nil {
		return nil, err
	}
	date = strings.TrimSpace(date)
	if !dateHeader.MatchString(date) {
		return nil, fmt.Errorf("%w: %s is not a valid date", types.ErrImporter, date)
	}
	return types.NewScore(id, correct, incorrect, date)
}

func parseInt(s string) (int32, error) {
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", types.ErrParseInt, err.Error())
	}
	return int32(n), nil
}

func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
