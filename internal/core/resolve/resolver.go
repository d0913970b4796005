package resolve

import (
	"context"
	"fmt"
	"log"
	"sort"

	"github.com/inkwell/continuity/internal/core/model"
)

// Base confidences for heuristic assignment, and the floor a syntactically
// confirmed resolution is boosted to.
const (
	ConfidenceImplicitSubject = 0.78
	ConfidenceProximityMin    = 0.55
	ConfidenceProximityMax    = 0.70
	ConfirmedFloor            = 0.90

	// proximityMaxDistance is the character distance at which proximity
	// confidence bottoms out at ConfidenceProximityMin.
	proximityMaxDistance = 150

	// DefaultSpanTolerance bounds how far apart two extractors' spans may
	// start while still describing the same textual instance.
	DefaultSpanTolerance = 30
)

// CESPAttributeResolver orchestrates cascading extraction with syntactic
// priority: group raw candidates by instance, resolve each group's conflict,
// then deduplicate the resolved set. The whole pass is a pure batch
// transformation; a nil Arbiter (the default) keeps it fully deterministic.
type CESPAttributeResolver struct {
	conflicts *ConflictResolver
	dedupe    *AttributeDeduplicator

	// Arbiter, when set, is consulted for CONFLICT groups before falling
	// back to the highest-confidence rule.
	Arbiter Arbiter

	// SpanTolerance for instance grouping. Zero means DefaultSpanTolerance.
	SpanTolerance int
}

func NewCESPAttributeResolver() *CESPAttributeResolver {
	return &CESPAttributeResolver{
		conflicts: NewConflictResolver(),
		dedupe:    NewAttributeDeduplicator(),
	}
}

// instanceKey groups candidates describing the same detection event.
type instanceKey struct {
	attributeType string
	value         string
	sentenceIdx   int
}

type instanceGroup struct {
	key        instanceKey
	start      int // span anchor of the first candidate seen
	candidates []model.AttributeCandidate
}

// Resolve turns conflicting extractor opinions into one ranked attribute per
// fact. Candidates referencing entities absent from mentions are dropped
// with an audit note; nothing aborts the run.
func (r *CESPAttributeResolver) Resolve(ctx context.Context, candidates []model.AttributeCandidate,
	mentions []model.EntityMention, text string) []model.ResolvedAttribute {

	if len(candidates) == 0 {
		return nil
	}

	valid := r.validateReferences(candidates, mentions)
	assigned := r.ensureAssignments(valid, mentions)
	groups := r.groupByInstance(assigned)

	resolved := make([]model.ResolvedAttribute, 0, len(groups))
	for _, group := range groups {
		attr, ok := r.resolveGroup(ctx, group, mentions, text)
		if ok {
			resolved = append(resolved, attr)
		}
	}

	final := r.dedupe.Deduplicate(resolved)
	log.Printf("[resolve] %d candidates -> %d groups -> %d attributes",
		len(candidates), len(groups), len(final))
	return final
}

// validateReferences drops candidates whose assigned entity does not appear
// in the mention set. Unassigned candidates pass through; they get a
// proximity assignment later.
func (r *CESPAttributeResolver) validateReferences(candidates []model.AttributeCandidate,
	mentions []model.EntityMention) []model.AttributeCandidate {

	known := map[string]bool{}
	for _, m := range mentions {
		known[m.EntityID] = true
	}

	valid := make([]model.AttributeCandidate, 0, len(candidates))
	for _, c := range candidates {
		if c.Assigned() && !known[c.AssignedEntityID] {
			log.Printf("[resolve] dropping candidate %s=%q: entity %q not in mention set",
				c.AttributeType, c.Value, c.AssignedEntityID)
			continue
		}
		valid = append(valid, c)
	}
	return valid
}

// ensureAssignments attaches orphan candidates to the nearest mention in the
// same sentence (preferring mentions before the span, as Spanish prose puts
// the owner first) or inherits the last mention of the previous sentence as
// an implicit subject. Candidates with no plausible entity are discarded.
func (r *CESPAttributeResolver) ensureAssignments(candidates []model.AttributeCandidate,
	mentions []model.EntityMention) []model.AttributeCandidate {

	assigned := make([]model.AttributeCandidate, 0, len(candidates))
	for _, c := range candidates {
		if c.Assigned() {
			assigned = append(assigned, c)
			continue
		}
		if updated, ok := r.assignByProximity(c, mentions); ok {
			assigned = append(assigned, updated)
		} else {
			log.Printf("[resolve] discarding unassignable candidate %s=%q (sentence %d)",
				c.AttributeType, c.Value, c.SentenceIdx)
		}
	}
	return assigned
}

func (r *CESPAttributeResolver) assignByProximity(c model.AttributeCandidate,
	mentions []model.EntityMention) (model.AttributeCandidate, bool) {

	var sameSentence []model.EntityMention
	var prevSentence []model.EntityMention
	for _, m := range mentions {
		switch m.SentenceIdx {
		case c.SentenceIdx:
			sameSentence = append(sameSentence, m)
		case c.SentenceIdx - 1:
			prevSentence = append(prevSentence, m)
		}
	}

	if len(sameSentence) > 0 {
		closest := closestMention(sameSentence, c.Start)
		distance := abs(closest.Start - c.Start)
		// Confidence decays linearly with distance.
		norm := float64(distance) / proximityMaxDistance
		if norm > 1 {
			norm = 1
		}
		confidence := ConfidenceProximityMax - norm*(ConfidenceProximityMax-ConfidenceProximityMin)

		c.AssignedEntityID = closest.EntityID
		c.Source = model.SourceProximity
		c.BaseConfidence = confidence
		c.IsDubious = true
		return c, true
	}

	if len(prevSentence) > 0 {
		last := prevSentence[len(prevSentence)-1]
		c.AssignedEntityID = last.EntityID
		c.Source = model.SourceImplicitSubject
		c.BaseConfidence = ConfidenceImplicitSubject
		c.IsDubious = true
		return c, true
	}

	return c, false
}

// closestMention prefers the nearest mention that ends before the candidate
// span; only when none precedes it does a following mention win.
func closestMention(mentions []model.EntityMention, start int) model.EntityMention {
	best := mentions[0]
	bestBefore := start-best.End > 0
	bestDist := abs(start - best.End)
	for _, m := range mentions[1:] {
		before := start-m.End > 0
		dist := abs(start - m.End)
		if (before && !bestBefore) || (before == bestBefore && dist < bestDist) {
			best, bestBefore, bestDist = m, before, dist
		}
	}
	return best
}

// groupByInstance buckets candidates by (type, value, sentence) and an
// approximate span: a candidate joins an existing bucket only when its start
// lies within SpanTolerance of the bucket anchor, so the same value asserted
// twice in one sentence stays two instances.
func (r *CESPAttributeResolver) groupByInstance(candidates []model.AttributeCandidate) []instanceGroup {
	tolerance := r.SpanTolerance
	if tolerance <= 0 {
		tolerance = DefaultSpanTolerance
	}

	sorted := make([]model.AttributeCandidate, len(candidates))
	copy(sorted, candidates)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].SentenceIdx != sorted[j].SentenceIdx {
			return sorted[i].SentenceIdx < sorted[j].SentenceIdx
		}
		return sorted[i].Start < sorted[j].Start
	})

	var groups []instanceGroup
	for _, c := range sorted {
		key := instanceKey{
			attributeType: c.AttributeType,
			value:         c.NormalizedValue(),
			sentenceIdx:   c.SentenceIdx,
		}
		joined := false
		for i := range groups {
			if groups[i].key == key && abs(c.Start-groups[i].start) <= tolerance {
				groups[i].candidates = append(groups[i].candidates, c)
				joined = true
				break
			}
		}
		if !joined {
			groups = append(groups, instanceGroup{key: key, start: c.Start, candidates: []model.AttributeCandidate{c}})
		}
	}
	return groups
}

// resolveGroup classifies one instance group and builds its ResolvedAttribute.
func (r *CESPAttributeResolver) resolveGroup(ctx context.Context, group instanceGroup,
	mentions []model.EntityMention, text string) (model.ResolvedAttribute, bool) {

	res, err := r.conflicts.Classify(group.candidates)
	if err != nil {
		return model.ResolvedAttribute{}, false
	}

	if res.Status == model.StatusConflict && r.Arbiter != nil {
		if arb, ok := r.arbitrate(ctx, group.candidates, mentions, text); ok {
			res = arb
		}
	}

	confidence := res.Confidence
	if res.Status == model.StatusConfirmed && confidence < ConfirmedFloor {
		res.Notes = append(res.Notes, fmt.Sprintf("confidence boosted %.2f -> %.2f (confirmed)",
			confidence, ConfirmedFloor))
		confidence = ConfirmedFloor
	}

	extractors := contributingExtractors(group.candidates)
	first := group.candidates[0]

	return model.ResolvedAttribute{
		AttributeType:   group.key.attributeType,
		Value:           group.key.value,
		EntityID:        res.EntityID,
		FinalConfidence: confidence,
		Status:          res.Status,
		Source:          res.Source,
		IsDubious:       res.Source.Heuristic() || res.Status == model.StatusConflict,
		IsNegated:       first.IsNegated,
		Extractors:      extractors,
		TextEvidence:    first.TextEvidence,
		SentenceIdx:     group.key.sentenceIdx,
		Start:           group.start,
		ChapterID:       first.ChapterID,
		ResolutionNotes: res.Notes,
	}, true
}

func contributingExtractors(candidates []model.AttributeCandidate) []model.ExtractorType {
	seen := map[model.ExtractorType]bool{}
	var extractors []model.ExtractorType
	for _, c := range candidates {
		if !seen[c.Extractor] {
			seen[c.Extractor] = true
			extractors = append(extractors, c.Extractor)
		}
	}
	sort.Slice(extractors, func(i, j int) bool { return extractors[i] < extractors[j] })
	return extractors
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
