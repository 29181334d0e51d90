// Package backup exports the store to JSON Lines files and restores it
// from them. Each directory holds students.jsonl and scores.jsonl with one
// entity per line and dates as YYYY-MM-DD.
package backup

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/scorg/internal/services"
	"github.com/mesh-intelligence/scorg/pkg/types"
)

// File names inside a backup directory.
const (
	StudentsFile = "students.jsonl"
	ScoresFile   = "scores.jsonl"
)

type studentLine struct {
	ID          string `json:"id"`
	FirstNames  string `json:"first_names"`
	LastName    string `json:"last_name"`
	DateOfBirth string `json:"date_of_birth"`
}

type scoreLine struct {
	ID        string `json:"id"`
	Correct   int32  `json:"correct"`
	Incorrect int32  `json:"incorrect"`
	Date      string `json:"date"`
}

// Counts reports how many entities an export or restore handled.
type Counts struct {
	Students int64 `json:"students"`
	Scores   int64 `json:"scores"`
}

// Export writes every student and score to dir, creating it if needed.
// Existing backup files are replaced atomically.
func Export(dir string, students *services.StudentService, scores *services.ScoreService) (Counts, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Counts{}, fmt.Errorf("create backup dir: %w", err)
	}
	all, err := students.All()
	if err != nil {
		return Counts{}, err
	}
	allScores, err := scores.All()
	if err != nil {
		return Counts{}, err
	}

	studentLines := make([]studentLine, 0, len(all))
	for _, s := range all {
		studentLines = append(studentLines, studentLine{
			ID:          s.ID,
			FirstNames:  s.FirstNames,
			LastName:    s.LastName,
			DateOfBirth: types.FormatDate(s.DateOfBirth),
		})
	}
	scoreLines := make([]scoreLine, 0, len(allScores))
	for _, s := range allScores {
		scoreLines = append(scoreLines, scoreLine{
			ID:        s.ID,
			Correct:   s.Correct,
			Incorrect: s.Incorrect,
			Date:      types.FormatDate(s.Date),
		})
	}

	if err := writeJSONL(filepath.Join(dir, StudentsFile), studentLines); err != nil {
		return Counts{}, err
	}
	if err := writeJSONL(filepath.Join(dir, ScoresFile), scoreLines); err != nil {
		return Counts{}, err
	}
	c := Counts{Students: int64(len(studentLines)), Scores: int64(len(scoreLines))}
	zap.S().Named("backup").Infow("exported", "dir", dir, "students", c.Students, "scores", c.Scores)
	return c, nil
}

// Restore loads a backup from dir. Students whose id is already stored are
// left alone; scores replace any stored score on the same date. Restoring
// the same backup twice is therefore harmless.
func Restore(dir string, students *services.StudentService, scores *services.ScoreService) (Counts, error) {
	studentLines, err := readJSONL[studentLine](filepath.Join(dir, StudentsFile))
	if err != nil {
		return Counts{}, err
	}
	scoreLines, err := readJSONL[scoreLine](filepath.Join(dir, ScoresFile))
	if err != nil {
		return Counts{}, err
	}

	existing, err := students.All()
	if err != nil {
		return Counts{}, err
	}
	known := make(map[string]bool, len(existing))
	for _, s := range existing {
		known[s.ID] = true
	}

	var newStudents []*types.Student
	for _, l := range studentLines {
		if known[l.ID] {
			continue
		}
		s, err := types.NewStudent(l.FirstNames, l.LastName, l.DateOfBirth)
		if err != nil {
			return Counts{}, fmt.Errorf("student %s: %w", l.ID, err)
		}
		s.ID = l.ID
		newStudents = append(newStudents, s)
		known[l.ID] = true
	}
	var restored []*types.Score
	for _, l := range scoreLines {
		s, err := types.NewScore(l.ID, l.Correct, l.Incorrect, l.Date)
		if err != nil {
			return Counts{}, fmt.Errorf("score %s: %w", l.ID, err)
		}
		restored = append(restored, s)
	}

	var c Counts
	if c.Students, err = students.AddMany(newStudents); err != nil {
		return Counts{}, err
	}
	if c.Scores, err = scores.Put(restored); err != nil {
		return c, err
	}
	zap.S().Named("backup").Infow("restored", "dir", dir, "students", c.Students, "scores", c.Scores)
	return c, nil
}
