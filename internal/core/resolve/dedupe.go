package resolve

import (
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/inkwell/continuity/internal/core/model"
)

// AttributeDeduplicator collapses residual duplicate assertions left after
// per-group conflict resolution. The classic false positive it kills: the
// genitive "ojos azules de Pedro" attributed to Pedro by syntax AND to Juan
// by proximity: two resolved attributes for one piece of text.
type AttributeDeduplicator struct{}

func NewAttributeDeduplicator() *AttributeDeduplicator {
	return &AttributeDeduplicator{}
}

// dedupeKey identifies one textual assertion. It includes positional
// identity (sentence + evidence), never just type+value, so two entities
// that legitimately share a value in different sentences are never merged.
type dedupeKey struct {
	attributeType string
	value         string
	sentenceIdx   int
	textEvidence  string
}

// Deduplicate keeps one survivor per textual assertion, chosen by assignment
// source priority and then final confidence. Groups with distinct keys never
// interact. Output order is deterministic (by sentence, then evidence).
func (d *AttributeDeduplicator) Deduplicate(resolved []model.ResolvedAttribute) []model.ResolvedAttribute {
	if len(resolved) == 0 {
		return nil
	}

	groups := map[dedupeKey][]model.ResolvedAttribute{}
	order := []dedupeKey{}
	for _, attr := range resolved {
		key := dedupeKey{
			attributeType: attr.AttributeType,
			value:         strings.ToLower(strings.TrimSpace(attr.Value)),
			sentenceIdx:   attr.SentenceIdx,
			textEvidence:  attr.TextEvidence,
		}
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], attr)
	}

	deduplicated := make([]model.ResolvedAttribute, 0, len(groups))
	for _, key := range order {
		group := groups[key]
		if len(group) == 1 {
			deduplicated = append(deduplicated, group[0])
			continue
		}

		sort.SliceStable(group, func(i, j int) bool {
			pi, pj := group[i].Source.Priority(), group[j].Source.Priority()
			if pi != pj {
				return pi > pj
			}
			return group[i].FinalConfidence > group[j].FinalConfidence
		})

		best := group[0]
		for _, dropped := range group[1:] {
			if dropped.EntityID != best.EntityID {
				log.Printf("[dedupe] dropping false positive: %s=%q assigned to %s (kept %s via %s)",
					key.attributeType, key.value, dropped.EntityID, best.EntityID, best.Source)
			}
		}
		best.ResolutionNotes = append(best.ResolutionNotes,
			fmt.Sprintf("deduplicated: %d weaker assignment(s) dropped", len(group)-1))
		deduplicated = append(deduplicated, best)
	}

	return deduplicated
}
