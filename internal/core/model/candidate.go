package model

import "strings"

// ExtractorType identifies which upstream extractor produced a candidate.
type ExtractorType string

const (
	ExtractorPattern    ExtractorType = "pattern"
	ExtractorDependency ExtractorType = "dependency"
	ExtractorEmbedding  ExtractorType = "embedding"
	ExtractorLLM        ExtractorType = "llm"
)

// AssignmentSource records how a candidate was attached to an entity.
// The string values match the dependency relations used upstream.
type AssignmentSource string

const (
	SourceGenitive        AssignmentSource = "genitive"
	SourceExplicitSubject AssignmentSource = "nsubj"
	SourceArbitration     AssignmentSource = "llm_arbitration"
	SourceImplicitSubject AssignmentSource = "inherited"
	SourceProximity       AssignmentSource = "proximity"
)

// Priority returns the ordinal rank of an assignment source. Higher wins.
// The ordering is a strict total order so ties between candidates are only
// ever broken by confidence, never by string comparison.
func (s AssignmentSource) Priority() int {
	switch s {
	case SourceGenitive:
		return 100
	case SourceExplicitSubject:
		return 90
	case SourceArbitration:
		return 80
	case SourceImplicitSubject:
		return 50
	case SourceProximity:
		return 10
	default:
		// Unknown tags are a programmer error upstream. In debug builds this
		// panics immediately; in release builds the candidate is demoted to
		// the weakest tier so a long batch run survives one bad record.
		panicUnknownSource(s)
		return 10
	}
}

// Syntactic reports whether the source is hard syntactic evidence
// (a genitive construction or an explicit grammatical subject).
func (s AssignmentSource) Syntactic() bool {
	return s == SourceGenitive || s == SourceExplicitSubject
}

// Heuristic reports whether the source is a positional guess rather than
// syntax. Heuristic assignments are flagged dubious throughout.
func (s AssignmentSource) Heuristic() bool {
	return s == SourceProximity || s == SourceImplicitSubject
}

// ConflictStatus classifies how a group of same-instance candidates agreed.
type ConflictStatus string

const (
	// StatusConfirmed: a syntactic-tier candidate disagreed with at least one
	// other candidate and won on evidence strength.
	StatusConfirmed ConflictStatus = "confirmed"
	// StatusUnanimous: every candidate in the group proposed the same entity.
	StatusUnanimous ConflictStatus = "unanimous"
	// StatusConflict: disagreement with no syntactic evidence present.
	StatusConflict ConflictStatus = "conflict"
)

// AttributeCandidate is one extractor's opinion about one fact: that a trait
// with some value, observed at a span of text, belongs to some entity.
// Candidates are untrusted input; the resolver never mutates them.
type AttributeCandidate struct {
	AttributeType     string           `json:"attribute_type"`
	Value             string           `json:"value"`
	TextEvidence      string           `json:"text_evidence"`
	SentenceIdx       int              `json:"sentence_idx"`
	Start             int              `json:"start"`
	End               int              `json:"end"`
	Extractor         ExtractorType    `json:"extractor_type"`
	AssignedEntityID  string           `json:"assigned_entity_id,omitempty"`
	Source            AssignmentSource `json:"assignment_source,omitempty"`
	BaseConfidence    float64          `json:"base_confidence"`
	SyntacticEvidence string           `json:"syntactic_evidence,omitempty"`
	IsDubious         bool             `json:"is_dubious"`
	IsNegated         bool             `json:"is_negated,omitempty"`
	ChapterID         int              `json:"chapter_id,omitempty"`
}

// NormalizedValue lowercases and trims the value for grouping keys.
func (c AttributeCandidate) NormalizedValue() string {
	return strings.ToLower(strings.TrimSpace(c.Value))
}

// Assigned reports whether any upstream extractor attached this candidate
// to an entity.
func (c AttributeCandidate) Assigned() bool {
	return c.AssignedEntityID != ""
}

// EntityMention is a read-only reference record from the external mention /
// coreference subsystem. The engine uses mentions only to validate candidate
// entity references and to assign orphan candidates by proximity.
type EntityMention struct {
	EntityID    string `json:"entity_id"`
	Text        string `json:"text"`
	Start       int    `json:"start"`
	End         int    `json:"end"`
	SentenceIdx int    `json:"sentence_idx"`
	EntityType  string `json:"entity_type,omitempty"`
}
