package ranking

import (
	"testing"

	"github.com/mkandie/resume-screener/internal/models"
)

func outcomesWithScores(scores ...int) []models.ScoringOutcome {
	outcomes := make([]models.ScoringOutcome, len(scores))
	for i, s := range scores {
		outcomes[i] = models.ScoringOutcome{RowNumber: i + 2, Score: s}
	}
	return outcomes
}

func TestRank_OrderAndTies(t *testing.T) {
	// Scores 50, 90, 90, 10 in input order: the first 90 wins the tie, the
	// 50 lands at rank 3 and the 10 at rank 4.
	outcomes := outcomesWithScores(50, 90, 90, 10)

	ranked := Rank(outcomes)

	if len(ranked) != 4 {
		t.Fatalf("got %d outcomes, want 4", len(ranked))
	}

	wantRowNumbers := []int{3, 4, 2, 5} // rows by original position of 90, 90, 50, 10
	wantScores := []int{90, 90, 50, 10}
	for i := range ranked {
		if ranked[i].Rank != i+1 {
			t.Errorf("position %d rank = %d, want %d", i, ranked[i].Rank, i+1)
		}
		if ranked[i].Score != wantScores[i] {
			t.Errorf("position %d score = %d, want %d", i, ranked[i].Score, wantScores[i])
		}
		if ranked[i].RowNumber != wantRowNumbers[i] {
			t.Errorf("position %d row = %d, want %d (stable tie order)", i, ranked[i].RowNumber, wantRowNumbers[i])
		}
	}
}

func TestRank_DensePermutation(t *testing.T) {
	outcomes := outcomesWithScores(10, 80, 80, 80, 55, 0, 100)

	ranked := Rank(outcomes)

	if len(ranked) != len(outcomes) {
		t.Fatalf("got %d outcomes, want %d", len(ranked), len(outcomes))
	}

	seen := make(map[int]bool)
	for _, o := range ranked {
		if o.Rank < 1 || o.Rank > len(outcomes) {
			t.Errorf("rank %d out of range 1..%d", o.Rank, len(outcomes))
		}
		if seen[o.Rank] {
			t.Errorf("rank %d assigned twice", o.Rank)
		}
		seen[o.Rank] = true
	}
	if ranked[0].Score != 100 {
		t.Errorf("rank 1 score = %d, want the strictly highest score 100", ranked[0].Score)
	}
}

func TestRank_DoesNotModifyInput(t *testing.T) {
	outcomes := outcomesWithScores(10, 90)

	Rank(outcomes)

	if outcomes[0].Score != 10 || outcomes[0].Rank != 0 {
		t.Errorf("input slice was modified: %+v", outcomes[0])
	}
}

func TestSummarize(t *testing.T) {
	outcomes := []models.ScoringOutcome{
		{Recommendation: models.RecommendationStrongYes},
		{Recommendation: models.RecommendationStrongYes},
		{Recommendation: models.RecommendationYes},
		{Recommendation: models.RecommendationMaybe},
		{Recommendation: models.RecommendationNo},
		{Recommendation: models.RecommendationError},
		{Recommendation: "Enthusiastic Yes"}, // unknown value, dropped
	}

	summary := Summarize(outcomes)

	if summary.StrongYes != 2 || summary.Yes != 1 || summary.Maybe != 1 || summary.No != 1 {
		t.Errorf("summary = %+v", summary)
	}

	counted := summary.StrongYes + summary.Yes + summary.Maybe + summary.No
	if counted > len(outcomes) {
		t.Errorf("summary counts %d outcomes out of %d", counted, len(outcomes))
	}
}

func TestSummarize_Empty(t *testing.T) {
	summary := Summarize(nil)
	if summary != (models.ScreeningSummary{}) {
		t.Errorf("summary of no outcomes = %+v, want zero value", summary)
	}
}
