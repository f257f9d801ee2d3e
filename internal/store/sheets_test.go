package store

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/mkandie/resume-screener/internal/models"
)

func TestRowValuesOrder(t *testing.T) {
	row := models.CandidateRow{
		JD:                  "jd text",
		Resume:              "resume text",
		UploadedAt:          "2026-08-29T10:00:00Z",
		Role:                "Eng",
		ClarifyingQuestions: "questions",
		Rank:                "1",
		HRAnswersJSON:       `{"role_context":"x"}`,
		Score:               "88",
		Strengths:           `["a"]`,
		Gaps:                `["b"]`,
		Justification:       "solid",
		Recommendation:      "Yes",
		InterviewPriority:   "High",
	}

	values := rowValues(row)

	if len(values) != len(Header) {
		t.Fatalf("got %d values, want %d", len(values), len(Header))
	}
	want := []string{
		"jd text", "resume text", "2026-08-29T10:00:00Z", "Eng", "questions",
		"1", `{"role_context":"x"}`, "88", `["a"]`, `["b"]`, "solid", "Yes", "High",
	}
	for i, w := range want {
		if values[i] != w {
			t.Errorf("column %s = %v, want %q", Header[i], values[i], w)
		}
	}
}

func TestRowFromCells(t *testing.T) {
	tests := []struct {
		name   string
		header []string
		cells  []interface{}
		check  func(t *testing.T, row models.CandidateRow)
	}{
		{
			name:   "short row defaults trailing columns to empty",
			header: Header,
			cells:  []interface{}{"jd", "resume", "ts", "Eng"},
			check: func(t *testing.T, row models.CandidateRow) {
				if row.JD != "jd" || row.Role != "Eng" {
					t.Errorf("row = %+v", row)
				}
				if row.ClarifyingQuestions != "" || row.Score != "" {
					t.Errorf("unset columns not empty: %+v", row)
				}
			},
		},
		{
			name:   "unknown header column is ignored",
			header: []string{"jd", "mystery", "resume"},
			cells:  []interface{}{"the jd", "???", "the resume"},
			check: func(t *testing.T, row models.CandidateRow) {
				if row.JD != "the jd" || row.Resume != "the resume" {
					t.Errorf("row = %+v", row)
				}
			},
		},
		{
			name:   "non-string cell is stringified",
			header: []string{"jd", "resume", "uploadedAt", "role", "jd_clarifications", "rank"},
			cells:  []interface{}{"jd", "r", "ts", "Eng", "", float64(3)},
			check: func(t *testing.T, row models.CandidateRow) {
				if row.Rank != "3" {
					t.Errorf("rank = %q, want %q", row.Rank, "3")
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := rowFromCells(tt.header, tt.cells, 2)
			if row.RowNumber != 2 {
				t.Errorf("row number = %d, want 2", row.RowNumber)
			}
			tt.check(t, row)
		})
	}
}

// fakeSheets simulates the subset of the Sheets API the store uses and
// records write traffic.
type fakeSheets struct {
	tabs         map[string]bool
	values       map[string][][]interface{} // by tab name
	addSheets    int
	headerWrites int
	missingRead  bool
}

func (f *fakeSheets) handler(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		switch {
		case strings.HasSuffix(r.URL.Path, ":batchUpdate"):
			f.addSheets++
			f.tabs["Eng"] = true
			json.NewEncoder(w).Encode(map[string]any{})

		case strings.Contains(r.URL.Path, "/values/"):
			if r.Method == http.MethodPut {
				f.headerWrites++
				json.NewEncoder(w).Encode(map[string]any{})
				return
			}
			if f.missingRead {
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(map[string]any{
					"error": map[string]any{"code": 400, "message": "Unable to parse range: 'Eng'!A:M"},
				})
				return
			}
			json.NewEncoder(w).Encode(map[string]any{"values": f.values["Eng"]})

		default:
			// spreadsheet metadata get
			var tabs []map[string]any
			for name := range f.tabs {
				tabs = append(tabs, map[string]any{"properties": map[string]any{"title": name}})
			}
			json.NewEncoder(w).Encode(map[string]any{"sheets": tabs})
		}
	})
}

func newTestStore(t *testing.T, fake *fakeSheets) *SheetsStore {
	t.Helper()

	srv := httptest.NewServer(fake.handler(t))
	t.Cleanup(srv.Close)

	svc, err := sheets.NewService(context.Background(),
		option.WithoutAuthentication(), option.WithEndpoint(srv.URL+"/"))
	if err != nil {
		t.Fatalf("sheets.NewService() failed: %v", err)
	}

	return New(svc, "test-spreadsheet", zap.NewNop())
}

func TestEnsureSheet_Idempotent(t *testing.T) {
	fake := &fakeSheets{tabs: map[string]bool{}, values: map[string][][]interface{}{}}
	s := newTestStore(t, fake)

	for i := 0; i < 2; i++ {
		if err := s.EnsureSheet(context.Background(), "Eng"); err != nil {
			t.Fatalf("EnsureSheet() call %d failed: %v", i+1, err)
		}
	}

	if fake.addSheets != 1 {
		t.Errorf("tab created %d times, want 1", fake.addSheets)
	}
	if fake.headerWrites != 1 {
		t.Errorf("header written %d times, want 1", fake.headerWrites)
	}
}

func TestReadAll_MapsRowsWithAddresses(t *testing.T) {
	header := make([]interface{}, len(Header))
	for i, c := range Header {
		header[i] = c
	}
	fake := &fakeSheets{
		tabs: map[string]bool{"Eng": true},
		values: map[string][][]interface{}{
			"Eng": {
				header,
				{"jd one", "resume one", "t1", "Eng"},
				{"jd one", "resume two", "t2", "Eng"},
			},
		},
	}
	s := newTestStore(t, fake)

	rows, err := s.ReadAll(context.Background(), "Eng")
	if err != nil {
		t.Fatalf("ReadAll() failed: %v", err)
	}

	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0].RowNumber != 2 || rows[1].RowNumber != 3 {
		t.Errorf("row numbers = %d, %d, want 2, 3", rows[0].RowNumber, rows[1].RowNumber)
	}
	if rows[1].Resume != "resume two" {
		t.Errorf("row 3 resume = %q", rows[1].Resume)
	}
}

func TestReadAll_EmptyCases(t *testing.T) {
	t.Run("tab with only a header", func(t *testing.T) {
		header := make([]interface{}, len(Header))
		for i, c := range Header {
			header[i] = c
		}
		fake := &fakeSheets{
			tabs:   map[string]bool{"Eng": true},
			values: map[string][][]interface{}{"Eng": {header}},
		}
		s := newTestStore(t, fake)

		rows, err := s.ReadAll(context.Background(), "Eng")
		if err != nil {
			t.Fatalf("ReadAll() failed: %v", err)
		}
		if len(rows) != 0 {
			t.Errorf("got %d rows, want 0", len(rows))
		}
	})

	t.Run("missing tab", func(t *testing.T) {
		fake := &fakeSheets{tabs: map[string]bool{}, values: map[string][][]interface{}{}, missingRead: true}
		s := newTestStore(t, fake)

		rows, err := s.ReadAll(context.Background(), "Eng")
		if err != nil {
			t.Fatalf("ReadAll() on a missing tab errored: %v", err)
		}
		if len(rows) != 0 {
			t.Errorf("got %d rows, want 0", len(rows))
		}
	})
}
