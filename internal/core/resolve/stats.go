package resolve

import "github.com/inkwell/continuity/internal/core/model"

// Statistics summarizes one resolution pass. Diagnostic only; nothing in
// the pipeline reads these counts back to make decisions.
type Statistics struct {
	Total         int                              `json:"total"`
	ByStatus      map[model.ConflictStatus]int     `json:"by_status"`
	BySource      map[model.AssignmentSource]int   `json:"by_source"`
	ByType        map[string]int                   `json:"by_type"`
	DubiousCount  int                              `json:"dubious_count"`
	DubiousRatio  float64                          `json:"dubious_ratio"`
	AvgConfidence float64                          `json:"avg_confidence"`
}

// GetStatistics tallies a resolved attribute set.
func GetStatistics(results []model.ResolvedAttribute) Statistics {
	stats := Statistics{
		Total:    len(results),
		ByStatus: map[model.ConflictStatus]int{},
		BySource: map[model.AssignmentSource]int{},
		ByType:   map[string]int{},
	}
	if len(results) == 0 {
		return stats
	}

	total := 0.0
	for _, attr := range results {
		stats.ByStatus[attr.Status]++
		stats.BySource[attr.Source]++
		stats.ByType[attr.AttributeType]++
		if attr.IsDubious {
			stats.DubiousCount++
		}
		total += attr.FinalConfidence
	}
	stats.DubiousRatio = float64(stats.DubiousCount) / float64(len(results))
	stats.AvgConfidence = total / float64(len(results))
	return stats
}
