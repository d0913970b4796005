package consistency

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/inkwell/continuity/internal/core/model"
)

// DefaultMinConfidence keeps the generic different-value fallback (0.5) in
// the report while still letting callers raise the bar.
const DefaultMinConfidence = 0.4

const (
	confidenceAntonym        = 0.90
	confidenceNumericExact   = 0.95
	confidenceNumericRange   = 0.85
	confidenceDifferentValue = 0.50
)

// Checker detects contradictory attribute values for the same entity across
// a document. Values are only ever compared within the same entity and the
// same attribute key.
type Checker struct {
	lexicon       *Lexicon
	MinConfidence float64
}

// NewChecker builds a checker over a lexicon. The lexicon is shared and
// read-only; a nil lexicon falls back to the built-in vocabulary.
func NewChecker(lexicon *Lexicon) *Checker {
	if lexicon == nil {
		lexicon = DefaultLexicon()
	}
	return &Checker{lexicon: lexicon, MinConfidence: DefaultMinConfidence}
}

// Check compares every entity's attribute values and returns the detected
// contradictions, ordered by entity name, key and document position.
// Negated and temporal occurrences are excluded before comparison, and
// equivalent values (repeats, synonyms) collapse so each genuine conflict
// is reported once regardless of how often either value appears.
func (c *Checker) Check(attrs []model.ExtractedAttribute) []model.AttributeInconsistency {
	canonical := c.canonicalNames(attrs)

	type bucketKey struct {
		entity string
		key    model.AttributeKey
	}
	buckets := map[bucketKey][]model.ExtractedAttribute{}
	var order []bucketKey
	for _, a := range attrs {
		if a.IsNegated || strings.TrimSpace(a.Value) == "" || strings.TrimSpace(a.EntityName) == "" {
			continue
		}
		if c.lexicon.IsTemporal(a.Key, a.Value) {
			continue
		}
		bk := bucketKey{entity: canonical[nameKey(a.EntityName)], key: a.Key}
		if _, seen := buckets[bk]; !seen {
			order = append(order, bk)
		}
		buckets[bk] = append(buckets[bk], a)
	}

	sort.Slice(order, func(i, j int) bool {
		if order[i].entity != order[j].entity {
			return order[i].entity < order[j].entity
		}
		return order[i].key < order[j].key
	})

	var out []model.AttributeInconsistency
	for _, bk := range order {
		groups := c.groupEquivalent(bk.key, buckets[bk])
		for i := 0; i < len(groups); i++ {
			for j := i + 1; j < len(groups); j++ {
				inc := c.compare(bk.key, groups[i], groups[j])
				if inc == nil || inc.Confidence < c.MinConfidence {
					continue
				}
				inc.EntityName = bk.entity
				inc.EntityID = groups[i].EntityID
				out = append(out, *inc)
			}
		}
	}
	return out
}

// canonicalNames maps every surface name to its canonical variant. A bare
// first name folds into a longer name only when exactly one longer name in
// the document starts with it; "María" stays separate if both "María
// Sánchez" and "María López" appear.
func (c *Checker) canonicalNames(attrs []model.ExtractedAttribute) map[string]string {
	display := map[string]string{}
	for _, a := range attrs {
		name := strings.TrimSpace(a.EntityName)
		if name == "" {
			continue
		}
		display[nameKey(name)] = name
	}

	canonical := map[string]string{}
	for short, shortName := range display {
		canonical[short] = shortName
		if strings.ContainsRune(short, ' ') {
			continue
		}
		var match string
		ambiguous := false
		for long := range display {
			if long == short || !strings.HasPrefix(long, short+" ") {
				continue
			}
			if match != "" {
				ambiguous = true
				break
			}
			match = long
		}
		if match != "" && !ambiguous {
			canonical[short] = display[match]
		}
	}
	return canonical
}

func nameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// groupEquivalent collapses a bucket's occurrences into groups of mutually
// compatible values and returns the earliest occurrence of each group.
func (c *Checker) groupEquivalent(key model.AttributeKey, occurrences []model.ExtractedAttribute) []model.ExtractedAttribute {
	sort.SliceStable(occurrences, func(i, j int) bool {
		if occurrences[i].ChapterID != occurrences[j].ChapterID {
			return occurrences[i].ChapterID < occurrences[j].ChapterID
		}
		return occurrences[i].StartChar < occurrences[j].StartChar
	})

	var reps []model.ExtractedAttribute
	for _, occ := range occurrences {
		joined := false
		for _, rep := range reps {
			if c.equivalent(key, rep.Value, occ.Value) {
				joined = true
				break
			}
		}
		if !joined {
			reps = append(reps, occ)
		}
	}
	return reps
}

// equivalent reports whether two values name the same state of the
// attribute: identical after normalization, known synonyms, matching
// descriptors of the same body region or facial-hair dimension, or
// overlapping age ranges.
func (c *Checker) equivalent(key model.AttributeKey, v1, v2 string) bool {
	n1 := c.lexicon.Normalize(v1)
	n2 := c.lexicon.Normalize(v2)
	if n1 == n2 {
		return true
	}
	if c.lexicon.AreSynonyms(key, n1, n2) {
		return true
	}
	if key == model.KeyDistinctiveFeature {
		r1, r2 := c.lexicon.BodyRegion(v1), c.lexicon.BodyRegion(v2)
		if r1 != "" && r1 == r2 {
			d1 := c.lexicon.Normalize(c.lexicon.FeatureDescriptor(v1))
			d2 := c.lexicon.Normalize(c.lexicon.FeatureDescriptor(v2))
			if d1 == d2 || c.lexicon.AreSynonyms(key, d1, d2) {
				return true
			}
		}
	}
	if key == model.KeyFacialHair {
		d1 := c.lexicon.FacialHairDescriptor(v1)
		d2 := c.lexicon.FacialHairDescriptor(v2)
		if d1 != "" && (d1 == d2 || c.lexicon.AreSynonyms(key, d1, d2)) {
			return true
		}
	}
	if key == model.KeyAge || key == model.KeyApparentAge {
		min1, max1, ok1 := c.lexicon.AgeRange(n1)
		min2, max2, ok2 := c.lexicon.AgeRange(n2)
		if ok1 && ok2 && min1 <= max2 && min2 <= max1 {
			return true
		}
	}
	return false
}

// compare runs the contradiction cascade over two group representatives and
// returns the inconsistency, or nil when the values can coexist.
func (c *Checker) compare(key model.AttributeKey, a, b model.ExtractedAttribute) *model.AttributeInconsistency {
	n1 := c.lexicon.Normalize(a.Value)
	n2 := c.lexicon.Normalize(b.Value)

	switch key {
	case model.KeyDistinctiveFeature:
		r1, r2 := c.lexicon.BodyRegion(a.Value), c.lexicon.BodyRegion(b.Value)
		if r1 != "" && r2 != "" && r1 != r2 {
			// Features of different body regions coexist.
			return nil
		}
		if r1 != "" && r1 == r2 {
			d1 := c.lexicon.Normalize(c.lexicon.FeatureDescriptor(a.Value))
			d2 := c.lexicon.Normalize(c.lexicon.FeatureDescriptor(b.Value))
			if d1 == "" || d2 == "" {
				return nil
			}
			if c.lexicon.AreAntonyms(key, d1, d2) {
				return c.report(key, a, b, model.InconsistencyAntonym, confidenceAntonym,
					fmt.Sprintf("'%s' and '%s' are opposite descriptions of the %s", d1, d2, r1))
			}
			if d1 != d2 && !c.lexicon.AreSynonyms(key, d1, d2) {
				// Same body part described two incompatible ways.
				return c.report(key, a, b, model.InconsistencyDifferentValue, confidenceAntonym,
					fmt.Sprintf("the %s is described as '%s' and as '%s'", r1, d1, d2))
			}
			return nil
		}

	case model.KeyFacialHair:
		d1 := c.lexicon.FacialHairDescriptor(n1)
		d2 := c.lexicon.FacialHairDescriptor(n2)
		dim1 := c.lexicon.FacialHairDimension(n1)
		dim2 := c.lexicon.FacialHairDimension(n2)
		if dim1 != "" && dim2 != "" && dim1 != dim2 {
			// Descriptors of independent dimensions (density vs color).
			return nil
		}
		if dim1 != "" && dim1 == dim2 {
			if d1 == d2 || c.lexicon.AreSynonyms(key, d1, d2) {
				return nil
			}
			if c.lexicon.AreAntonyms(key, d1, d2) {
				return c.report(key, a, b, model.InconsistencyAntonym, confidenceAntonym,
					fmt.Sprintf("'%s' and '%s' are opposite %s descriptors", d1, d2, dim1))
			}
			return c.report(key, a, b, model.InconsistencyDifferentValue, confidenceDifferentValue,
				fmt.Sprintf("'%s' and '%s' describe the same facial hair %s differently", d1, d2, dim1))
		}

	case model.KeyAge, model.KeyApparentAge:
		min1, max1, ok1 := c.lexicon.AgeRange(n1)
		min2, max2, ok2 := c.lexicon.AgeRange(n2)
		if ok1 && ok2 {
			if min1 <= max2 && min2 <= max1 {
				return nil
			}
			confidence := confidenceNumericRange
			if min1 == max1 && min2 == max2 {
				confidence = confidenceNumericExact
			}
			return c.report(key, a, b, model.InconsistencyNumericContradiction, confidence,
				fmt.Sprintf("age ranges %d-%d and %d-%d cannot both hold", min1, max1, min2, max2))
		}
	}

	if c.lexicon.AreAntonyms(key, n1, n2) {
		return c.report(key, a, b, model.InconsistencyAntonym, confidenceAntonym,
			fmt.Sprintf("'%s' and '%s' are known opposites for %s", n1, n2, key))
	}

	return c.report(key, a, b, model.InconsistencyDifferentValue, confidenceDifferentValue,
		fmt.Sprintf("'%s' and '%s' differ with no known relation", n1, n2))
}

func (c *Checker) report(key model.AttributeKey, a, b model.ExtractedAttribute, kind model.InconsistencyType, confidence float64, explanation string) *model.AttributeInconsistency {
	return &model.AttributeInconsistency{
		ID:          uuid.NewString(),
		Key:         key,
		First:       occurrence(a),
		Second:      occurrence(b),
		Type:        kind,
		Confidence:  confidence,
		Explanation: explanation,
	}
}

func occurrence(a model.ExtractedAttribute) model.Occurrence {
	return model.Occurrence{
		Value:    a.Value,
		Chapter:  a.ChapterID,
		Excerpt:  a.SourceText,
		Position: a.StartChar,
	}
}
