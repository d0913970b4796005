package consistency

import (
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/inkwell/continuity/internal/core/model"
)

// Lexicon holds every lookup table the checker consults: lemma
// normalization, synonym and antonym sets, body-region keywords for
// distinctive features, facial-hair dimensions, and age-descriptor ranges.
// Built once at startup and treated as immutable, shared configuration;
// the checker receives it explicitly and never writes to it.
type Lexicon struct {
	// Lemmas maps inflected forms to a canonical form (plural and feminine
	// variants mostly: "verdes" -> "verde", "alta" -> "alto").
	Lemmas map[string]string `toml:"lemmas"`

	// Synonyms and Antonyms are named tables (colors, build, personality,
	// hair_type, location, facial_hair); attribute keys bind to tables in
	// tableFor. Word -> compatible/opposite words.
	Synonyms map[string]map[string][]string `toml:"synonyms"`
	Antonyms map[string]map[string][]string `toml:"antonyms"`

	// Regions maps a body region name to the keywords that place a
	// distinctive-feature value in that region.
	Regions map[string][]string `toml:"regions"`

	// FacialHairDimensions maps a dimension (density, color, length, style)
	// to the descriptors living in it.
	FacialHairDimensions map[string][]string `toml:"facial_hair_dimensions"`

	// AgeRanges maps age descriptors to [min, max] year ranges.
	AgeRanges map[string][]int `toml:"age_ranges"`

	// TemporalKeys lists attribute keys whose values legitimately change
	// over a story (hairstyles). TemporalMarkers are words that mark a
	// value as a deliberate change (dye) rather than a contradiction.
	TemporalKeys    []string `toml:"temporal_keys"`
	TemporalMarkers []string `toml:"temporal_markers"`

	// Inverted indexes, built once by index().
	regionOf    map[string]string
	dimensionOf map[string]string
}

// tableFor binds attribute keys to their synonym/antonym table. Keys without
// a table have no synonym or antonym semantics.
func tableFor(key model.AttributeKey) string {
	switch key {
	case model.KeyEyeColor, model.KeyHairColor, model.KeyColor:
		return "colors"
	case model.KeyBuild, model.KeyHeight:
		return "build"
	case model.KeyPersonality, model.KeyTemperament:
		return "personality"
	case model.KeyHairType:
		return "hair_type"
	case model.KeyLocation:
		return "location"
	case model.KeyFacialHair:
		return "facial_hair"
	default:
		return ""
	}
}

// Normalize lowercases, trims and lemmatizes a value.
func (l *Lexicon) Normalize(value string) string {
	v := strings.ToLower(strings.TrimSpace(value))
	if lemma, ok := l.Lemmas[v]; ok {
		return lemma
	}
	// Multi-word values are lemmatized token by token.
	if strings.ContainsRune(v, ' ') {
		words := strings.Fields(v)
		for i, w := range words {
			if lemma, ok := l.Lemmas[w]; ok {
				words[i] = lemma
			}
		}
		return strings.Join(words, " ")
	}
	return v
}

// AreSynonyms reports whether two normalized values name the same concept
// for the given attribute key.
func (l *Lexicon) AreSynonyms(key model.AttributeKey, v1, v2 string) bool {
	table := l.Synonyms[tableFor(key)]
	if table == nil {
		return false
	}
	return contains(table[v1], v2) || contains(table[v2], v1)
}

// AreAntonyms reports whether two normalized values are known opposites for
// the given attribute key.
func (l *Lexicon) AreAntonyms(key model.AttributeKey, v1, v2 string) bool {
	table := l.Antonyms[tableFor(key)]
	if table == nil {
		return false
	}
	return contains(table[v1], v2) || contains(table[v2], v1)
}

// BodyRegion returns the body region a distinctive-feature value refers to,
// or "" when none of its words is a known region keyword. With several
// keywords present ("cicatriz en la mejilla") the earliest one wins, since
// the leading noun names the feature itself.
func (l *Lexicon) BodyRegion(value string) string {
	v := strings.ToLower(strings.TrimSpace(value))
	best := ""
	bestIdx := -1
	for keyword, region := range l.regionOf {
		idx := strings.Index(v, keyword)
		if idx < 0 {
			continue
		}
		if bestIdx == -1 || idx < bestIdx {
			best, bestIdx = region, idx
		}
	}
	return best
}

// FeatureDescriptor strips the leading region keyword from a distinctive
// feature, leaving the descriptor: "nariz aguileña" -> "aguileña".
// Returns "" when the value is a bare region mention.
func (l *Lexicon) FeatureDescriptor(value string) string {
	v := strings.ToLower(strings.TrimSpace(value))
	for keyword := range l.regionOf {
		if strings.HasPrefix(v, keyword) {
			rest := strings.TrimSpace(v[len(keyword):])
			// "labios gruesos" with keyword "labio": swallow the plural s.
			rest = strings.TrimPrefix(rest, "s ")
			return strings.TrimSpace(rest)
		}
	}
	return ""
}

// FacialHairDimension returns the dimension (density, color, length, style)
// a facial-hair value lives in, or "" when unknown. Values often carry the
// hair noun itself ("barba espesa"), so each word is tried against the
// dimension tables and the first known descriptor decides.
func (l *Lexicon) FacialHairDimension(value string) string {
	return l.dimensionOf[l.FacialHairDescriptor(value)]
}

// FacialHairDescriptor extracts the dimension-bearing word from a
// facial-hair value: "barba espesa" -> "espesa". Returns "" when no word is
// a known descriptor.
func (l *Lexicon) FacialHairDescriptor(value string) string {
	for _, word := range strings.Fields(strings.ToLower(strings.TrimSpace(value))) {
		if _, known := l.dimensionOf[word]; known {
			return word
		}
	}
	return ""
}

// AgeRange converts an age value, numeric or descriptive, to a year range.
func (l *Lexicon) AgeRange(value string) (min, max int, ok bool) {
	v := strings.ToLower(strings.TrimSpace(value))
	if n, err := parseLeadingInt(v); err == nil {
		return n, n, true
	}
	if r, found := l.AgeRanges[v]; found && len(r) == 2 {
		return r[0], r[1], true
	}
	return 0, 0, false
}

// IsTemporal reports whether an attribute records a state that changes over
// a story rather than a stable trait, so differing values are not a
// contradiction. Hairstyles always qualify; other values qualify when they
// carry a change marker ("teñido", "se cortó").
func (l *Lexicon) IsTemporal(key model.AttributeKey, value string) bool {
	if contains(l.TemporalKeys, string(key)) {
		return true
	}
	v := strings.ToLower(value)
	for _, marker := range l.TemporalMarkers {
		if strings.Contains(v, marker) {
			return true
		}
	}
	return false
}

// index builds the inverted keyword lookups. Called once after construction.
func (l *Lexicon) index() {
	l.regionOf = map[string]string{}
	for region, keywords := range l.Regions {
		for _, kw := range keywords {
			l.regionOf[kw] = region
		}
	}
	l.dimensionOf = map[string]string{}
	for dim, words := range l.FacialHairDimensions {
		for _, w := range words {
			l.dimensionOf[w] = dim
		}
	}
}

// LoadLexicon reads a TOML lexicon file and merges it over the defaults, so
// a project can add vocabulary without re-declaring the built-in tables.
// TOML bare keys are ASCII-only; Spanish words with accents must be quoted
// on the left-hand side ("grisáceos" = "gris").
func LoadLexicon(path string) (*Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read lexicon file '%s': %w", path, err)
	}

	var overlay Lexicon
	if err := toml.Unmarshal(data, &overlay); err != nil {
		return nil, fmt.Errorf("failed to parse lexicon TOML: %w", err)
	}

	base := DefaultLexicon()
	for form, lemma := range overlay.Lemmas {
		base.Lemmas[form] = lemma
	}
	mergeTables(base.Synonyms, overlay.Synonyms)
	mergeTables(base.Antonyms, overlay.Antonyms)
	mergeLists(base.Regions, overlay.Regions)
	mergeLists(base.FacialHairDimensions, overlay.FacialHairDimensions)
	for desc, r := range overlay.AgeRanges {
		base.AgeRanges[desc] = r
	}
	base.TemporalKeys = append(base.TemporalKeys, overlay.TemporalKeys...)
	base.TemporalMarkers = append(base.TemporalMarkers, overlay.TemporalMarkers...)
	base.index()
	return base, nil
}

func mergeTables(base, overlay map[string]map[string][]string) {
	for table, words := range overlay {
		if base[table] == nil {
			base[table] = map[string][]string{}
		}
		for word, list := range words {
			base[table][word] = append(base[table][word], list...)
		}
	}
}

func mergeLists(base, overlay map[string][]string) {
	for name, list := range overlay {
		base[name] = append(base[name], list...)
	}
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

func parseLeadingInt(s string) (int, error) {
	n := 0
	digits := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			break
		}
		n = n*10 + int(r-'0')
		digits++
	}
	if digits == 0 || (digits < len(s) && !strings.HasPrefix(s[digits:], " ")) {
		return 0, fmt.Errorf("not a number: %q", s)
	}
	return n, nil
}
