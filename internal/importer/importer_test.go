package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/mesh-intelligence/scorg/internal/memdao"
	"github.com/mesh-intelligence/scorg/internal/services"
	"github.com/mesh-intelligence/scorg/internal/sqlite"
	"github.com/mesh-intelligence/scorg/pkg/types"
)

const sampleCSV = `first_names,last_name,date_of_birth,2021-01-01,2021-01-02,2021-01-03
Ben,Jones,1990-01-23,89/12,,
Gemma Victoria,Forbes,1988-09-30,, 90 / 1 ,91/2
`

func newImporter(t *testing.T) (*Importer, *services.StudentService, *services.ScoreService, *memdao.Dao) {
	t.Helper()
	dao := memdao.New()
	students := services.NewStudentService(dao)
	require.NoError(t, students.Init())
	scores := services.NewScoreService(dao)
	return New(students, scores), students, scores, dao
}

func TestImportCSV(t *testing.T) {
	im, students, scores, _ := newImporter(t)

	nStudents, nScores, err := im.ImportCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	assert.Equal(t, int64(2), nStudents)
	assert.Equal(t, int64(3), nScores)

	id, err := students.IDForName("Gemma Victoria", "Forbes")
	require.NoError(t, err)
	got, err := scores.ForStudent(id)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int32(90), got[0].Correct)
	assert.Equal(t, int32(1), got[0].Incorrect)
	assert.Equal(t, "2021-01-02", types.FormatDate(got[0].Date))
}

func TestImportCSV_ReusesExistingStudent(t *testing.T) {
	im, students, scores, _ := newImporter(t)
	ben, err := types.NewStudent("Ben", "Jones", "1990-01-23")
	require.NoError(t, err)
	require.NoError(t, students.Add(ben))

	nStudents, nScores, err := im.ImportCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	assert.Equal(t, int64(1), nStudents)
	assert.Equal(t, int64(3), nScores)

	got, err := scores.ForStudent(ben.ID)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestImportCSV_RepeatedNameAddsOneStudent(t *testing.T) {
	im, _, _, dao := newImporter(t)
	data := "first_names,last_name,date_of_birth,2021-01-01,2021-01-02\n" +
		"Ben,Jones,1990-01-23,1/1,\n" +
		"Ben,Jones,1990-01-23,,2/2\n"

	nStudents, nScores, err := im.ImportCSV(strings.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, int64(1), nStudents)
	assert.Equal(t, int64(2), nScores)
	assert.Len(t, dao.Rows(types.StudentTable), 1)
}

func TestImportCSV_Errors(t *testing.T) {
	header := "first_names,last_name,date_of_birth,2021-01-01\n"
	tests := []struct {
		name    string
		data    string
		wantErr error
		wantMsg string
	}{
		{"blank first names", header + " ,Jones,1990-01-23,1/1\n", types.ErrImporter, "blank first names"},
		{"blank last name", header + "Ben,,1990-01-23,1/1\n", types.ErrImporter, "blank last name"},
		{"blank dob", header + "Ben,Jones, ,1/1\n", types.ErrImporter, "blank dob"},
		{"missing dob", header + "Ben,Jones\n", types.ErrImporter, "no dob found"},
		{"bad dob", header + "Ben,Jones,23/01/1990,1/1\n", types.ErrBadDate, "not a valid date-formatted string"},
		{"one score", header + "Ben,Jones,1990-01-23,23\n", types.ErrImporter, "must provide 2 scores per date"},
		{"three scores", header + "Ben,Jones,1990-01-23,1/2/3\n", types.ErrImporter, "must provide 2 scores per date"},
		{"empty correct", header + "Ben,Jones,1990-01-23,/23\n", types.ErrParseInt, "invalid syntax"},
		{"empty incorrect", header + "Ben,Jones,1990-01-23,89/\n", types.ErrParseInt, "invalid syntax"},
		{"not a number", header + "Ben,Jones,1990-01-23,a/1\n", types.ErrParseInt, "invalid syntax"},
		{
			"bad date header",
			"first_names,last_name,date_of_birth,2021-01 \nBen,Jones,1990-01-23,89/1\n",
			types.ErrImporter, "2021-01 is not a valid date",
		},
		{
			"impossible date header",
			"first_names,last_name,date_of_birth,2021-13-01\nBen,Jones,1990-01-23,89/1\n",
			types.ErrBadDate, "2021-13-01",
		},
		{"no header", "", types.ErrImporter, "no header row"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			im, _, _, dao := newImporter(t)

			_, _, err := im.ImportCSV(strings.NewReader(tt.data))
			require.ErrorIs(t, err, tt.wantErr)
			assert.Contains(t, err.Error(), tt.wantMsg)
			assert.Empty(t, dao.Rows(types.StudentTable), "nothing is written on a bad file")
		})
	}
}

func TestImportCSV_BadDateIgnoredForBlankCells(t *testing.T) {
	im, _, _, _ := newImporter(t)
	data := "first_names,last_name,date_of_birth,not-a-date\nBen,Jones,1990-01-23,\n"

	nStudents, nScores, err := im.ImportCSV(strings.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, int64(1), nStudents)
	assert.Zero(t, nScores)
}

func writeWorkbook(t *testing.T, rows [][]any) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	path := filepath.Join(t.TempDir(), "scores.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestImportCSV_LookupFailureStopsImport(t *testing.T) {
	// No student table: the name lookup fails in the store, which must
	// not be mistaken for an unknown student.
	dao := memdao.New()
	dao.CreateTable(types.ScoreTable)
	im := New(services.NewStudentService(dao), services.NewScoreService(dao))

	_, _, err := im.ImportCSV(strings.NewReader(sampleCSV))
	require.ErrorIs(t, err, types.ErrStore)
	assert.Contains(t, err.Error(), "no such table: student")
	for _, c := range dao.Calls() {
		assert.NotEqual(t, "insert", c.Op)
	}
}

func TestImportXLSX(t *testing.T) {
	im, students, _, _ := newImporter(t)
	path := writeWorkbook(t, [][]any{
		{"first_names", "last_name", "date_of_birth", "2021-01-01", "2021-01-02", "2021-01-03"},
		{"Ben", "Jones", "1990-01-23", "89/12", "90/10"},
		{},
		{"Gemma", "Forbes", "1988-09-30", "", "", "75/3"},
	})

	nStudents, nScores, err := im.ImportXLSX(path, "")
	require.NoError(t, err)
	assert.Equal(t, int64(2), nStudents)
	assert.Equal(t, int64(3), nScores)

	_, err = students.IDForName("Gemma", "Forbes")
	assert.NoError(t, err)
}

func TestImportXLSX_MissingSheet(t *testing.T) {
	im, _, _, _ := newImporter(t)
	path := writeWorkbook(t, [][]any{{"first_names", "last_name", "date_of_birth"}})

	_, _, err := im.ImportXLSX(path, "Nope")
	assert.ErrorIs(t, err, types.ErrImporter)
}

func TestImportFile(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "scores.CSV")
	require.NoError(t, os.WriteFile(csvPath, []byte(sampleCSV), 0o644))

	im, _, _, _ := newImporter(t)
	nStudents, _, err := im.ImportFile(csvPath)
	require.NoError(t, err)
	assert.Equal(t, int64(2), nStudents)

	_, _, err = im.ImportFile(filepath.Join(dir, "scores.txt"))
	assert.ErrorIs(t, err, types.ErrImporter)

	_, _, err = im.ImportFile(filepath.Join(dir, "missing.csv"))
	assert.ErrorIs(t, err, types.ErrImporter)
}

func TestImportCSV_SQLite(t *testing.T) {
	dao, err := sqlite.OpenMemory()
	require.NoError(t, err)
	defer dao.Close()
	students := services.NewStudentService(dao)
	require.NoError(t, students.Init())
	scores := services.NewScoreService(dao)
	im := New(students, scores)

	nStudents, nScores, err := im.ImportCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	assert.Equal(t, int64(2), nStudents)
	assert.Equal(t, int64(3), nScores)

	// A second import of the same file reuses both students and collides
	// on the unique score dates.
	nStudents, _, err = im.ImportCSV(strings.NewReader(sampleCSV))
	assert.ErrorIs(t, err, types.ErrStore)
	assert.Zero(t, nStudents)
}
