package model

// ResolvedAttribute is the final, single owner decision for one textual
// assertion. Exactly one ResolvedAttribute is emitted per instance key
// (attribute type, value, sentence, span); distinct instances are always
// preserved independently even when type and value coincide.
// Immutable once returned by the resolver.
type ResolvedAttribute struct {
	AttributeType   string           `json:"attribute_type"`
	Value           string           `json:"value"`
	EntityID        string           `json:"entity_id"`
	FinalConfidence float64          `json:"final_confidence"`
	Status          ConflictStatus   `json:"conflict_status"`
	Source          AssignmentSource `json:"assignment_source"`
	IsDubious       bool             `json:"is_dubious"`
	IsNegated       bool             `json:"is_negated,omitempty"`
	Start           int              `json:"start"`
	Extractors      []ExtractorType  `json:"contributing_extractors,omitempty"`
	TextEvidence    string           `json:"text_evidence"`
	SentenceIdx     int              `json:"sentence_idx"`
	ChapterID       int              `json:"chapter_id,omitempty"`
	// ResolutionNotes is the ordered audit trail of why this owner won.
	ResolutionNotes []string `json:"resolution_notes,omitempty"`
}
