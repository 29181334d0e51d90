// Package report renders a student's scores as an XLSX workbook with a
// line chart of correct and incorrect answers over time.
package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/scorg/pkg/types"
)

// SheetName is the worksheet holding the score table and chart.
const SheetName = "Scores"

// Header row of the score table.
var header = []any{"Date", "Correct", "Incorrect"}

// WriteScoreChart writes scores to a new workbook at path, one row per
// score in the given order, and adds a line chart beside the table.
// It returns ErrNoScores when scores is empty.
func WriteScoreChart(path string, student *types.Student, scores []*types.Score) error {
	if len(scores) == 0 {
		return fmt.Errorf("%w: %s", types.ErrNoScores, student.FullName())
	}
	log := zap.S().Named("report")

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, s := range scores {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{types.FormatDate(s.Date), s.Correct, s.Incorrect}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := f.AddChart(SheetName, "E2", scoreChart(student, len(scores))); err != nil {
		return fmt.Errorf("add chart: %w", err)
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	log.Infow("wrote score chart", "path", path, "student", student.FullName(), "scores", len(scores))
	return nil
}

// scoreChart plots columns B and C against the dates in column A for rows
// 2 through n+1.
func scoreChart(student *types.Student, n int) *excelize.Chart {
	last := n + 1
	series := func(col string) excelize.ChartSeries {
		return excelize.ChartSeries{
			Name:       fmt.Sprintf("%s!$%s$1", SheetName, col),
			Categories: fmt.Sprintf("%s!$A$2:$A$%d", SheetName, last),
			Values:     fmt.Sprintf("%s!$%s$2:$%s$%d", SheetName, col, col, last),
			Marker:     excelize.ChartMarker{Symbol: "circle", Size: 6},
		}
	}
	return &excelize.Chart{
		Type:   excelize.Line,
		Series: []excelize.ChartSeries{series("B"), series("C")},
		Title:  []excelize.RichTextRun{{Text: student.FullName()}},
		Legend: excelize.ChartLegend{Position: "bottom"},
		XAxis:  excelize.ChartAxis{Title: []excelize.RichTextRun{{Text: "Date"}}},
		YAxis:  excelize.ChartAxis{Title: []excelize.RichTextRun{{Text: "Count"}}},
		Dimension: excelize.ChartDimension{
			Width:  720,
			Height: 420,
		},
	}
}
