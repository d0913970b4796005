package resolve

import (
	"fmt"

	"github.com/inkwell/continuity/internal/core/model"
)

// ConflictResolver classifies a group of candidates that all describe the
// same textual instance and picks the winning entity. Groups arrive from the
// resolver's instance grouping, so disagreement inside a group means two
// extractors attributed the same assertion to different entities.
type ConflictResolver struct{}

func NewConflictResolver() *ConflictResolver {
	return &ConflictResolver{}
}

// Resolution is the outcome of classifying one instance group.
type Resolution struct {
	Status     model.ConflictStatus
	EntityID   string
	Confidence float64
	Source     model.AssignmentSource
	Notes      []string
}

// Classify determines the conflict status of a non-empty candidate group and
// the winning entity. An empty group is a caller contract violation.
//
//  1. A syntactic-tier candidate (genitive or explicit subject) disagreeing
//     with at least one other candidate wins outright: CONFIRMED.
//  2. Everyone proposing the same entity: UNANIMOUS, confidence is the max
//     of the group.
//  3. Disagreement with no syntax to settle it: CONFLICT, the highest
//     confidence candidate wins but the result is dubious.
func (r *ConflictResolver) Classify(candidates []model.AttributeCandidate) (Resolution, error) {
	if len(candidates) == 0 {
		return Resolution{}, fmt.Errorf("conflict resolver called with empty candidate group")
	}

	entities := map[string]bool{}
	for _, c := range candidates {
		entities[c.AssignedEntityID] = true
	}
	disagreement := len(entities) > 1

	if best, ok := bestSyntactic(candidates); ok && disagreement {
		return Resolution{
			Status:     model.StatusConfirmed,
			EntityID:   best.AssignedEntityID,
			Confidence: best.BaseConfidence,
			Source:     best.Source,
			Notes: []string{fmt.Sprintf("confirmed by syntactic evidence (%s): %s",
				best.Source, best.SyntacticEvidence)},
		}, nil
	}

	if !disagreement {
		best := maxByConfidence(candidates)
		return Resolution{
			Status:     model.StatusUnanimous,
			EntityID:   best.AssignedEntityID,
			Confidence: best.BaseConfidence,
			Source:     best.Source,
			Notes:      []string{fmt.Sprintf("unanimous across %d candidate(s)", len(candidates))},
		}, nil
	}

	best := maxByConfidence(candidates)
	return Resolution{
		Status:     model.StatusConflict,
		EntityID:   best.AssignedEntityID,
		Confidence: best.BaseConfidence,
		Source:     best.Source,
		Notes: []string{fmt.Sprintf("unresolved disagreement between %d entities, kept highest confidence",
			len(entities))},
	}, nil
}

// bestSyntactic returns the highest-priority syntactic candidate, ties
// broken by base confidence.
func bestSyntactic(candidates []model.AttributeCandidate) (model.AttributeCandidate, bool) {
	var best model.AttributeCandidate
	found := false
	for _, c := range candidates {
		if !c.Source.Syntactic() {
			continue
		}
		if !found || c.Source.Priority() > best.Source.Priority() ||
			(c.Source.Priority() == best.Source.Priority() && c.BaseConfidence > best.BaseConfidence) {
			best = c
			found = true
		}
	}
	return best, found
}

func maxByConfidence(candidates []model.AttributeCandidate) model.AttributeCandidate {
	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.BaseConfidence > best.BaseConfidence {
			best = c
		}
	}
	return best
}
