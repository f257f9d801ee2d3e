package mailer

import (
	"context"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/mkandie/resume-screener/internal/models"
)

func TestSendResults_SkipsWhenUnconfigured(t *testing.T) {
	m, err := New(Config{Host: "smtp.gmail.com", Port: 587}, zap.NewNop())
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	// No credentials: sending must be a silent no-op, never an error.
	if err := m.SendResults(context.Background(), "Eng", nil); err != nil {
		t.Errorf("SendResults() = %v, want nil skip", err)
	}
}

func TestBuildBody(t *testing.T) {
	outcomes := []models.ScoringOutcome{
		{Score: 92, Recommendation: models.RecommendationStrongYes, Rank: 1},
		{Score: 74, Recommendation: models.RecommendationYes, Rank: 2},
		{Score: 0, Recommendation: models.RecommendationError, Rank: 3},
	}

	body := buildBody("Backend Engineer", "https://docs.google.com/spreadsheets/d/abc/edit", outcomes)

	for _, want := range []string{
		"Backend Engineer",
		"Total Candidates: 3",
		"Strong Yes: 1",
		"Yes:        1",
		"Maybe:      0",
		"No:         0",
		"https://docs.google.com/spreadsheets/d/abc/edit",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q\nbody:\n%s", want, body)
		}
	}
}
