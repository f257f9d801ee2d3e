// Package ranking orders and summarizes a batch of scoring outcomes.
package ranking

import (
	"sort"

	"github.com/mkandie/resume-screener/internal/models"
)

// Rank returns the outcomes sorted by score descending with a dense rank
// 1..N assigned. The sort is stable, so equal scores keep their original
// relative order and an earlier candidate wins the tie. The input slice is
// not modified.
func Rank(outcomes []models.ScoringOutcome) []models.ScoringOutcome {
	ranked := make([]models.ScoringOutcome, len(outcomes))
	copy(ranked, outcomes)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	for i := range ranked {
		ranked[i].Rank = i + 1
	}

	return ranked
}

// Summarize counts outcomes per recommendation across the four hiring
// buckets. Error outcomes and unrecognized values are not counted; the
// caller reports the total candidate count separately.
func Summarize(outcomes []models.ScoringOutcome) models.ScreeningSummary {
	var summary models.ScreeningSummary

	for _, o := range outcomes {
		switch o.Recommendation {
		case models.RecommendationStrongYes:
			summary.StrongYes++
		case models.RecommendationYes:
			summary.Yes++
		case models.RecommendationMaybe:
			summary.Maybe++
		case models.RecommendationNo:
			summary.No++
		case models.RecommendationError:
			// failed candidates stay out of the summary
		}
	}

	return summary
}
