package planner

import (
	"github.com/slotworks/relocation-engine/internal/storage/postgres"
)

// DefaultHistoryLimit is the default number of stored runs scanned when
// reconstructing solve history.
const DefaultHistoryLimit = 500

// BestKnownCosts scans recent stored runs and returns the cheapest
// successful cost seen per scenario. Returns nil if client is nil; the
// engine degrades gracefully without storage.
func BestKnownCosts(client *postgres.Client, limit int) (map[string]int, error) {
	if client == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	runs, err := client.RecentRuns(limit)
	if err != nil {
		return nil, err
	}

	best := make(map[string]int)
	for _, run := range runs {
		if !run.OK || run.Cost == nil {
			continue
		}
		if cur, ok := best[run.Scenario]; !ok || *run.Cost < cur {
			best[run.Scenario] = *run.Cost
		}
	}
	return best, nil
}
