// Package store persists candidate rows in a Google Sheets spreadsheet,
// one tab per role. Rows are addressed positionally: row 1 is the header
// and data rows start at 2. There is no locking or versioning; two
// concurrent screening runs for the same role can interleave their writes
// and overwrite each other, matching the upstream spreadsheet semantics.
package store

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/sheets/v4"

	"github.com/mkandie/resume-screener/internal/models"
)

const valueInputRaw = "RAW"

// SheetsStore is a positional row store backed by one Google Sheets
// spreadsheet.
type SheetsStore struct {
	svc           *sheets.Service
	spreadsheetID string
	logger        *zap.Logger
}

// New creates a store over the given spreadsheet.
func New(svc *sheets.Service, spreadsheetID string, logger *zap.Logger) *SheetsStore {
	return &SheetsStore{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		logger:        logger,
	}
}

// EnsureSheet creates the role's tab with the fixed 13-column header if it
// does not exist yet. Safe to call repeatedly: an existing tab is left
// untouched, so the header is written exactly once.
func (s *SheetsStore) EnsureSheet(ctx context.Context, role string) error {
	spreadsheet, err := s.svc.Spreadsheets.Get(s.spreadsheetID).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("get spreadsheet: %w", err)
	}

	for _, sheet := range spreadsheet.Sheets {
		if sheet.Properties != nil && sheet.Properties.Title == role {
			return nil
		}
	}

	req := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			AddSheet: &sheets.AddSheetRequest{
				Properties: &sheets.SheetProperties{Title: role},
			},
		}},
	}
	if _, err := s.svc.Spreadsheets.BatchUpdate(s.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("create sheet tab %q: %w", role, err)
	}
	s.logger.Info("created sheet tab", zap.String("role", role))

	header := make([]interface{}, len(Header))
	for i, column := range Header {
		header[i] = column
	}
	vr := &sheets.ValueRange{Values: [][]interface{}{header}}
	headerRange := fmt.Sprintf("'%s'!A1:M1", role)
	if _, err := s.svc.Spreadsheets.Values.Update(s.spreadsheetID, headerRange, vr).
		ValueInputOption(valueInputRaw).Context(ctx).Do(); err != nil {
		return fmt.Errorf("write header for %q: %w", role, err)
	}

	return nil
}

// Append adds the row after the last existing row of the role's tab,
// bootstrapping the tab first. Duplicate (jd, resume) pairs are permitted.
func (s *SheetsStore) Append(ctx context.Context, role string, row models.CandidateRow) error {
	if err := s.EnsureSheet(ctx, role); err != nil {
		return err
	}

	vr := &sheets.ValueRange{Values: [][]interface{}{rowValues(row)}}
	appendRange := fmt.Sprintf("'%s'!A:M", role)
	if _, err := s.svc.Spreadsheets.Values.Append(s.spreadsheetID, appendRange, vr).
		ValueInputOption(valueInputRaw).Context(ctx).Do(); err != nil {
		return fmt.Errorf("append to %q: %w", role, err)
	}

	return nil
}

// ReadAll returns the role's data rows in sheet order, with RowNumber
// starting at 2. A tab with no data rows and a tab that does not exist at
// all both yield an empty slice, not an error.
func (s *SheetsStore) ReadAll(ctx context.Context, role string) ([]models.CandidateRow, error) {
	readRange := fmt.Sprintf("'%s'!A:M", role)
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, readRange).Context(ctx).Do()
	if err != nil {
		if isMissingSheet(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %q: %w", role, err)
	}

	if len(resp.Values) <= 1 {
		return nil, nil
	}

	header := make([]string, len(resp.Values[0]))
	for i, cell := range resp.Values[0] {
		header[i] = cellString(cell)
	}

	rows := make([]models.CandidateRow, 0, len(resp.Values)-1)
	for i, cells := range resp.Values[1:] {
		rows = append(rows, rowFromCells(header, cells, i+2))
	}

	return rows, nil
}

// Update overwrites the full 13-cell range of the addressed row with the
// provided tuple. No merge happens: the caller supplies every value,
// including the logically unchanged ones.
func (s *SheetsStore) Update(ctx context.Context, role string, rowNumber int, row models.CandidateRow) error {
	vr := &sheets.ValueRange{Values: [][]interface{}{rowValues(row)}}
	updateRange := fmt.Sprintf("'%s'!A%d:M%d", role, rowNumber, rowNumber)
	if _, err := s.svc.Spreadsheets.Values.Update(s.spreadsheetID, updateRange, vr).
		ValueInputOption(valueInputRaw).Context(ctx).Do(); err != nil {
		return fmt.Errorf("update row %d of %q: %w", rowNumber, role, err)
	}

	return nil
}

// isMissingSheet detects the "unable to parse range" error the Sheets API
// returns when the tab named in the range does not exist.
func isMissingSheet(err error) bool {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code == 400
	}
	return false
}
