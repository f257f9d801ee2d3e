// Package export writes screening results to an Excel workbook for
// reviewers who work outside the shared sheet.
package export

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/mkandie/resume-screener/internal/models"
	"github.com/mkandie/resume-screener/internal/ranking"
)

const (
	summarySheet = "Summary"
	resultsSheet = "Ranked Candidates"
)

// WriteReport generates an Excel report for one role's screening run and
// saves it to outputPath. Outcomes are expected in rank order.
func WriteReport(outputPath, role string, outcomes []models.ScoringOutcome) error {
	f := excelize.NewFile()
	defer f.Close()

	if !strings.HasSuffix(strings.ToLower(outputPath), ".xlsx") {
		outputPath += ".xlsx"
	}

	f.SetSheetName("Sheet1", summarySheet)
	if _, err := f.NewSheet(resultsSheet); err != nil {
		return fmt.Errorf("create results sheet: %w", err)
	}

	if err := writeSummarySheet(f, role, outcomes); err != nil {
		return fmt.Errorf("write summary sheet: %w", err)
	}
	if err := writeResultsSheet(f, outcomes); err != nil {
		return fmt.Errorf("write results sheet: %w", err)
	}

	if err := f.SaveAs(outputPath); err != nil {
		return fmt.Errorf("save report: %w", err)
	}
	return nil
}

func writeSummarySheet(f *excelize.File, role string, outcomes []models.ScoringOutcome) error {
	f.SetColWidth(summarySheet, "A", "A", 25)
	f.SetColWidth(summarySheet, "B", "B", 40)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
	})
	if err != nil {
		return err
	}

	f.SetCellValue(summarySheet, "A1", "Resume Screening Report")
	f.SetCellStyle(summarySheet, "A1", "B1", headerStyle)
	f.MergeCell(summarySheet, "A1", "B1")

	summary := ranking.Summarize(outcomes)
	labels := [][2]interface{}{
		{"Role:", role},
		{"Total Candidates:", len(outcomes)},
		{"Strong Yes:", summary.StrongYes},
		{"Yes:", summary.Yes},
		{"Maybe:", summary.Maybe},
		{"No:", summary.No},
	}
	for i, pair := range labels {
		row := i + 3
		f.SetCellValue(summarySheet, fmt.Sprintf("A%d", row), pair[0])
		f.SetCellValue(summarySheet, fmt.Sprintf("B%d", row), pair[1])
	}

	return nil
}

func writeResultsSheet(f *excelize.File, outcomes []models.ScoringOutcome) error {
	widths := map[string]float64{"A": 8, "B": 10, "C": 16, "D": 14, "E": 40, "F": 40, "G": 60}
	for col, width := range widths {
		f.SetColWidth(resultsSheet, col, col, width)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return err
	}

	// Color bands by score, matching the reviewer's mental buckets.
	bandStyle := func(color string) int {
		style, _ := f.NewStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1},
		})
		return style
	}
	excellentStyle := bandStyle("C6EFCE")
	goodStyle := bandStyle("FFEB9C")
	fairStyle := bandStyle("FFC7CE")
	poorStyle := bandStyle("FF9999")

	headers := []string{"Rank", "Score", "Recommendation", "Priority", "Strengths", "Gaps", "Justification"}
	for col, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+col)
		f.SetCellValue(resultsSheet, cell, header)
		f.SetCellStyle(resultsSheet, cell, cell, headerStyle)
	}

	for i, outcome := range outcomes {
		row := i + 2
		f.SetCellValue(resultsSheet, fmt.Sprintf("A%d", row), outcome.Rank)
		f.SetCellValue(resultsSheet, fmt.Sprintf("B%d", row), outcome.Score)
		f.SetCellValue(resultsSheet, fmt.Sprintf("C%d", row), string(outcome.Recommendation))
		f.SetCellValue(resultsSheet, fmt.Sprintf("D%d", row), outcome.InterviewPriority)
		f.SetCellValue(resultsSheet, fmt.Sprintf("E%d", row), strings.Join(outcome.Strengths, "\n"))
		f.SetCellValue(resultsSheet, fmt.Sprintf("F%d", row), strings.Join(outcome.Gaps, "\n"))
		f.SetCellValue(resultsSheet, fmt.Sprintf("G%d", row), outcome.Justification)

		var style int
		switch {
		case outcome.Score >= 90:
			style = excellentStyle
		case outcome.Score >= 70:
			style = goodStyle
		case outcome.Score >= 50:
			style = fairStyle
		default:
			style = poorStyle
		}
		f.SetCellStyle(resultsSheet, fmt.Sprintf("A%d", row), fmt.Sprintf("G%d", row), style)
	}

	return nil
}
