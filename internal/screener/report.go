package screener

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mkandie/resume-screener/internal/export"
	"github.com/mkandie/resume-screener/internal/models"
)

// ExportReport rebuilds the role's scoring outcomes from the stored rows
// and writes an Excel report into dir, returning the file path. Ranked rows
// come first in rank order; rows not yet scored trail behind.
func (s *Screener) ExportReport(ctx context.Context, role, dir string) (string, error) {
	if strings.TrimSpace(role) == "" {
		return "", &ValidationError{Field: "role"}
	}

	rows, err := s.store.ReadAll(ctx, role)
	if err != nil {
		return "", &StoreError{Op: "read", Err: err}
	}
	if len(rows) == 0 {
		return "", &NotFoundError{Role: role}
	}

	outcomes := make([]models.ScoringOutcome, 0, len(rows))
	for _, row := range rows {
		outcomes = append(outcomes, outcomeFromRow(row))
	}
	sort.SliceStable(outcomes, func(i, j int) bool {
		ri, rj := outcomes[i].Rank, outcomes[j].Rank
		if ri == 0 {
			return false
		}
		if rj == 0 {
			return true
		}
		return ri < rj
	})

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create report directory: %w", err)
	}

	filename := fmt.Sprintf("%s-screening-%s.xlsx", fileSafe(role), time.Now().Format("20060102-150405"))
	path := filepath.Join(dir, filename)

	if err := export.WriteReport(path, role, outcomes); err != nil {
		return "", fmt.Errorf("export report: %w", err)
	}

	s.logger.Info("report exported", zap.String("role", role), zap.String("path", path))
	return path, nil
}

// outcomeFromRow reverses the scoring write-back projection. Cells written
// by this system always parse; hand-edited cells degrade to zero values.
func outcomeFromRow(row models.CandidateRow) models.ScoringOutcome {
	score, _ := strconv.Atoi(row.Score)
	rank, _ := strconv.Atoi(row.Rank)

	return models.ScoringOutcome{
		RowNumber:         row.RowNumber,
		Score:             score,
		Rank:              rank,
		Strengths:         unmarshalStrings(row.Strengths),
		Gaps:              unmarshalStrings(row.Gaps),
		Justification:     row.Justification,
		Recommendation:    models.Recommendation(row.Recommendation),
		InterviewPriority: row.InterviewPriority,
	}
}

func unmarshalStrings(cell string) []string {
	if cell == "" {
		return nil
	}
	var values []string
	if err := json.Unmarshal([]byte(cell), &values); err != nil {
		return nil
	}
	return values
}

func fileSafe(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '-'
		}
	}, name)
}
