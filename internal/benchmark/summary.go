package benchmark

import (
	"sort"

	"github.com/bayesbench/bayesbench/internal/metrics"
	"github.com/bayesbench/bayesbench/internal/statistics"
)

// confidenceLevel for the per-metric bootstrap intervals.
const confidenceLevel = 0.95

// Summary aggregates one (dataset, model) pair's metrics across splits.
type Summary struct {
	Dataset string
	Model   string
	Splits  int
	Metrics map[string]statistics.Interval
}

// Summarize groups runs by (dataset, model) and computes, for each metric,
// the mean across splits with a bootstrap confidence interval. Groups are
// returned sorted by dataset then model.
func Summarize(runs []SuiteRun) []Summary {
	type key struct{ dataset, model string }
	grouped := make(map[key][]SuiteRun)
	for _, r := range runs {
		k := key{r.Config.Dataset, r.Config.Model}
		grouped[k] = append(grouped[k], r)
	}

	summaries := make([]Summary, 0, len(grouped))
	for k, group := range grouped {
		s := Summary{
			Dataset: k.dataset,
			Model:   k.model,
			Splits:  len(group),
			Metrics: make(map[string]statistics.Interval, len(metrics.Keys)),
		}
		for _, name := range metrics.Keys {
			values := make([]float64, len(group))
			for i, r := range group {
				values[i] = r.Metrics[name]
			}
			// Seeded so repeated summaries of the same runs agree.
			s.Metrics[name] = statistics.Bootstrap(values, confidenceLevel, 0)
		}
		summaries = append(summaries, s)
	}

	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].Dataset != summaries[j].Dataset {
			return summaries[i].Dataset < summaries[j].Dataset
		}
		return summaries[i].Model < summaries[j].Model
	})
	return summaries
}
