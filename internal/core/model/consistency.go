package model

import "strings"

// AttributeKey names a known trait channel. Keys partition comparison:
// values under different keys are never compared against each other, which
// is what keeps real age and perceived age on separate channels.
type AttributeKey string

const (
	// Characters: physical
	KeyEyeColor           AttributeKey = "eye_color"
	KeyHairColor          AttributeKey = "hair_color"
	KeyHairType           AttributeKey = "hair_type"
	KeyHairModification   AttributeKey = "hair_modification"
	KeyAge                AttributeKey = "age"
	KeyApparentAge        AttributeKey = "apparent_age"
	KeyHeight             AttributeKey = "height"
	KeyBuild              AttributeKey = "build"
	KeySkin               AttributeKey = "skin"
	KeyDistinctiveFeature AttributeKey = "distinctive_feature"
	KeyFacialHair         AttributeKey = "facial_hair"

	// Characters: psychological and social
	KeyPersonality AttributeKey = "personality"
	KeyTemperament AttributeKey = "temperament"
	KeyFear        AttributeKey = "fear"
	KeyDesire      AttributeKey = "desire"
	KeyProfession  AttributeKey = "profession"
	KeyTitle       AttributeKey = "title"
	KeyNationality AttributeKey = "nationality"

	// Places and objects
	KeyClimate   AttributeKey = "climate"
	KeyTerrain   AttributeKey = "terrain"
	KeySize      AttributeKey = "size"
	KeyLocation  AttributeKey = "location"
	KeyMaterial  AttributeKey = "material"
	KeyColor     AttributeKey = "color"
	KeyCondition AttributeKey = "condition"

	KeyOther AttributeKey = "other"
)

// ExtractedAttribute is one occurrence of a trait value in the document, as
// handed to the consistency checker after resolution. It carries the chapter
// and excerpt so an inconsistency report can point at both places.
type ExtractedAttribute struct {
	EntityName  string       `json:"entity_name"`
	EntityID    string       `json:"entity_id,omitempty"`
	Key         AttributeKey `json:"attribute_key"`
	Value       string       `json:"value"`
	SourceText  string       `json:"source_text"`
	StartChar   int          `json:"start_char"`
	EndChar     int          `json:"end_char"`
	Confidence  float64      `json:"confidence"`
	IsNegated   bool         `json:"is_negated,omitempty"`
	ChapterID   int          `json:"chapter_id,omitempty"`
	SentenceIdx int          `json:"sentence_idx,omitempty"`
}

// NormalizedValue lowercases and trims the value.
func (a ExtractedAttribute) NormalizedValue() string {
	return strings.ToLower(strings.TrimSpace(a.Value))
}

// InconsistencyType classifies a detected contradiction.
type InconsistencyType string

const (
	// InconsistencyAntonym: the two values are known opposites.
	InconsistencyAntonym InconsistencyType = "antonym"
	// InconsistencyDifferentValue: values differ with no stronger signal;
	// emitted at low confidence for human review.
	InconsistencyDifferentValue InconsistencyType = "different_value"
	// InconsistencyNumericContradiction: numeric values that cannot both
	// hold (ages whose ranges do not overlap).
	InconsistencyNumericContradiction InconsistencyType = "numeric_contradiction"
)

// Occurrence is one side of a contradiction: a value with its location.
type Occurrence struct {
	Value    string `json:"value"`
	Chapter  int    `json:"chapter,omitempty"`
	Excerpt  string `json:"excerpt"`
	Position int    `json:"position"`
}

// AttributeInconsistency reports that one entity carries two incompatible
// values for the same attribute at different points of the document.
// Severity mapping of the confidence is owned downstream.
type AttributeInconsistency struct {
	ID          string            `json:"id,omitempty"`
	EntityName  string            `json:"entity_name"`
	EntityID    string            `json:"entity_id,omitempty"`
	Key         AttributeKey      `json:"attribute_key"`
	First       Occurrence        `json:"value1"`
	Second      Occurrence        `json:"value2"`
	Type        InconsistencyType `json:"inconsistency_type"`
	Confidence  float64           `json:"confidence"`
	Explanation string            `json:"explanation"`
}
