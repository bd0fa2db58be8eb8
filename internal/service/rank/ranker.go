package rank

import (
	"sort"
	"time"

	"github.com/SitetrackLabs/sitetrack-deadline-alerting/internal/domain"
	"github.com/SitetrackLabs/sitetrack-deadline-alerting/internal/service/urgency"
)

type Ranker struct {
	classifier *urgency.Classifier
}

func NewRanker(classifier *urgency.Classifier) *Ranker {
	return &Ranker{
		classifier: classifier,
	}
}

// Rank classifies every candidate against now and produces the display
// order: score descending, then daysRemaining ascending. The sort is stable
// so repeated calls over identical input yield identical output. A limit of
// 0 or less means unbounded.
func (r *Ranker) Rank(candidates []domain.TaskDeadline, now time.Time, limit int) []domain.RankedTask {
	ranked := make([]domain.RankedTask, 0, len(candidates))
	for _, task := range candidates {
		ranked = append(ranked, r.classifier.Rank(task, task.DaysRemaining(now)))
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].DaysRemaining < ranked[j].DaysRemaining
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}

	return ranked
}
