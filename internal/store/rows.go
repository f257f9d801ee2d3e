package store

import (
	"fmt"

	"github.com/mkandie/resume-screener/internal/models"
)

// Header is the fixed, ordered 13-column schema written to row 1 of every
// role's sheet tab. Column order is significant: rows are always written as
// the full tuple in this order.
var Header = []string{
	"jd",
	"resume",
	"uploadedAt",
	"role",
	"jd_clarifications",
	"rank",
	"jd_clarification",
	"score",
	"strengths",
	"gaps",
	"justification",
	"recommendation",
	"interview_priority",
}

// rowValues flattens a candidate row into the 13-cell tuple for a sheet
// write, in Header order.
func rowValues(row models.CandidateRow) []interface{} {
	return []interface{}{
		row.JD,
		row.Resume,
		row.UploadedAt,
		row.Role,
		row.ClarifyingQuestions,
		row.Rank,
		row.HRAnswersJSON,
		row.Score,
		row.Strengths,
		row.Gaps,
		row.Justification,
		row.Recommendation,
		row.InterviewPriority,
	}
}

// rowFromCells maps one sheet row onto a CandidateRow using the header row
// for column lookup. Cells beyond the row's length and columns missing from
// the header default to the empty string.
func rowFromCells(header []string, cells []interface{}, rowNumber int) models.CandidateRow {
	row := models.CandidateRow{RowNumber: rowNumber}

	for i, column := range header {
		var value string
		if i < len(cells) {
			value = cellString(cells[i])
		}
		if field := fieldFor(&row, column); field != nil {
			*field = value
		}
	}

	return row
}

func fieldFor(row *models.CandidateRow, column string) *string {
	switch column {
	case "jd":
		return &row.JD
	case "resume":
		return &row.Resume
	case "uploadedAt":
		return &row.UploadedAt
	case "role":
		return &row.Role
	case "jd_clarifications":
		return &row.ClarifyingQuestions
	case "rank":
		return &row.Rank
	case "jd_clarification":
		return &row.HRAnswersJSON
	case "score":
		return &row.Score
	case "strengths":
		return &row.Strengths
	case "gaps":
		return &row.Gaps
	case "justification":
		return &row.Justification
	case "recommendation":
		return &row.Recommendation
	case "interview_priority":
		return &row.InterviewPriority
	default:
		return nil
	}
}

func cellString(v interface{}) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
