package consistency

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell/continuity/internal/core/model"
)

func attr(entity string, key model.AttributeKey, value string, chapter int) model.ExtractedAttribute {
	return model.ExtractedAttribute{
		EntityName: entity,
		Key:        key,
		Value:      value,
		SourceText: value,
		ChapterID:  chapter,
		Confidence: 0.9,
	}
}

func TestCheckAntonymEyeColors(t *testing.T) {
	checker := NewChecker(nil)
	out := checker.Check([]model.ExtractedAttribute{
		attr("Juan", model.KeyEyeColor, "azules", 1),
		attr("Juan", model.KeyEyeColor, "marrones", 3),
	})

	require.Len(t, out, 1)
	assert.Equal(t, model.InconsistencyAntonym, out[0].Type)
	assert.Equal(t, "Juan", out[0].EntityName)
	assert.Equal(t, "azules", out[0].First.Value)
	assert.Equal(t, "marrones", out[0].Second.Value)
	assert.GreaterOrEqual(t, out[0].Confidence, 0.9)
}

func TestCheckSynonymsAreCompatible(t *testing.T) {
	checker := NewChecker(nil)
	out := checker.Check([]model.ExtractedAttribute{
		attr("Pedro", model.KeyBuild, "delgado", 1),
		attr("Pedro", model.KeyBuild, "flaco", 2),
		attr("Pedro", model.KeyHairColor, "castaño", 1),
		attr("Pedro", model.KeyHairColor, "marrón", 4),
	})

	assert.Empty(t, out)
}

func TestCheckFacialHairDimensionsIndependent(t *testing.T) {
	checker := NewChecker(nil)
	// Density and color describe different aspects of the same beard.
	out := checker.Check([]model.ExtractedAttribute{
		attr("Ramírez", model.KeyFacialHair, "espesa", 1),
		attr("Ramírez", model.KeyFacialHair, "canosa", 2),
	})

	assert.Empty(t, out)
}

func TestCheckFacialHairFullPhraseDimensionsIndependent(t *testing.T) {
	checker := NewChecker(nil)
	// The value usually carries the noun itself; the dimension lookup must
	// still find the descriptor word.
	out := checker.Check([]model.ExtractedAttribute{
		attr("Ramírez", model.KeyFacialHair, "barba espesa", 1),
		attr("Ramírez", model.KeyFacialHair, "barba canosa", 2),
	})

	assert.Empty(t, out)
}

func TestCheckFacialHairSameDimensionAntonyms(t *testing.T) {
	checker := NewChecker(nil)
	out := checker.Check([]model.ExtractedAttribute{
		attr("Ramírez", model.KeyFacialHair, "espesa", 1),
		attr("Ramírez", model.KeyFacialHair, "rala", 5),
	})

	require.Len(t, out, 1)
	assert.Equal(t, model.InconsistencyAntonym, out[0].Type)
}

func TestCheckFacialHairFullPhraseAntonyms(t *testing.T) {
	checker := NewChecker(nil)
	out := checker.Check([]model.ExtractedAttribute{
		attr("Ramírez", model.KeyFacialHair, "barba espesa", 1),
		attr("Ramírez", model.KeyFacialHair, "barba rala", 5),
	})

	require.Len(t, out, 1)
	assert.Equal(t, model.InconsistencyAntonym, out[0].Type)
	assert.GreaterOrEqual(t, out[0].Confidence, 0.9)
}

func TestCheckFacialHairPhraseCollapsesWithBareDescriptor(t *testing.T) {
	checker := NewChecker(nil)
	// "barba espesa" and "espesa" are one claim, not two to cross-compare.
	out := checker.Check([]model.ExtractedAttribute{
		attr("Ramírez", model.KeyFacialHair, "barba espesa", 1),
		attr("Ramírez", model.KeyFacialHair, "espesa", 3),
		attr("Ramírez", model.KeyFacialHair, "barba rala", 6),
	})

	require.Len(t, out, 1)
	assert.Equal(t, model.InconsistencyAntonym, out[0].Type)
	assert.Equal(t, "barba espesa", out[0].First.Value)
	assert.Equal(t, "barba rala", out[0].Second.Value)
}

func TestCheckBodyRegionsSeparateFeatures(t *testing.T) {
	checker := NewChecker(nil)
	out := checker.Check([]model.ExtractedAttribute{
		attr("Elena", model.KeyDistinctiveFeature, "nariz aguileña", 1),
		attr("Elena", model.KeyDistinctiveFeature, "cicatriz en la mejilla", 2),
	})

	assert.Empty(t, out)
}

func TestCheckSameRegionContradiction(t *testing.T) {
	checker := NewChecker(nil)
	out := checker.Check([]model.ExtractedAttribute{
		attr("Elena", model.KeyDistinctiveFeature, "nariz aguileña", 1),
		attr("Elena", model.KeyDistinctiveFeature, "nariz chata", 4),
	})

	require.Len(t, out, 1)
	assert.GreaterOrEqual(t, out[0].Confidence, 0.9)
	assert.Contains(t, out[0].Explanation, "nose")
}

func TestCheckRepeatedValuesReportOnce(t *testing.T) {
	checker := NewChecker(nil)
	out := checker.Check([]model.ExtractedAttribute{
		attr("Elena", model.KeyDistinctiveFeature, "nariz aguileña", 1),
		attr("Elena", model.KeyDistinctiveFeature, "nariz aguileña", 2),
		attr("Elena", model.KeyDistinctiveFeature, "nariz chata", 4),
		attr("Elena", model.KeyDistinctiveFeature, "nariz chata", 6),
	})

	assert.Len(t, out, 1)
}

func TestCheckNumericAges(t *testing.T) {
	checker := NewChecker(nil)
	out := checker.Check([]model.ExtractedAttribute{
		attr("Carlos", model.KeyAge, "25", 1),
		attr("Carlos", model.KeyAge, "40", 7),
	})

	require.Len(t, out, 1)
	assert.Equal(t, model.InconsistencyNumericContradiction, out[0].Type)
	assert.InDelta(t, 0.95, out[0].Confidence, 0.001)
}

func TestCheckAgeDescriptorRanges(t *testing.T) {
	checker := NewChecker(nil)

	out := checker.Check([]model.ExtractedAttribute{
		attr("Carlos", model.KeyAge, "25", 1),
		attr("Carlos", model.KeyAge, "joven", 3),
	})
	assert.Empty(t, out, "25 falls inside the 'joven' range")

	out = checker.Check([]model.ExtractedAttribute{
		attr("Carlos", model.KeyAge, "25", 1),
		attr("Carlos", model.KeyAge, "anciano", 3),
	})
	require.Len(t, out, 1)
	assert.Equal(t, model.InconsistencyNumericContradiction, out[0].Type)
}

func TestCheckAgeAndApparentAgeNeverCompared(t *testing.T) {
	checker := NewChecker(nil)
	// A 70-year-old who looks young is characterization, not an error.
	out := checker.Check([]model.ExtractedAttribute{
		attr("Marta", model.KeyAge, "70", 1),
		attr("Marta", model.KeyApparentAge, "joven", 2),
	})

	assert.Empty(t, out)
}

func TestCheckDifferentEntitiesNeverCompared(t *testing.T) {
	checker := NewChecker(nil)
	out := checker.Check([]model.ExtractedAttribute{
		attr("Juan", model.KeyEyeColor, "azules", 1),
		attr("Pedro", model.KeyEyeColor, "marrones", 1),
	})

	assert.Empty(t, out)
}

func TestCheckNameVariantFoldsIntoFullName(t *testing.T) {
	checker := NewChecker(nil)
	out := checker.Check([]model.ExtractedAttribute{
		attr("María Sánchez", model.KeyEyeColor, "verdes", 1),
		attr("María", model.KeyEyeColor, "negros", 5),
	})

	require.Len(t, out, 1)
	assert.Equal(t, "María Sánchez", out[0].EntityName)
}

func TestCheckAmbiguousNameStaysSeparate(t *testing.T) {
	checker := NewChecker(nil)
	out := checker.Check([]model.ExtractedAttribute{
		attr("María Sánchez", model.KeyEyeColor, "verdes", 1),
		attr("María López", model.KeyEyeColor, "negros", 2),
		attr("María", model.KeyEyeColor, "azules", 5),
	})

	assert.Empty(t, out)
}

func TestCheckSkipsNegatedAndTemporal(t *testing.T) {
	checker := NewChecker(nil)

	negated := attr("Juan", model.KeyEyeColor, "azules", 1)
	negated.IsNegated = true
	out := checker.Check([]model.ExtractedAttribute{
		negated,
		attr("Juan", model.KeyEyeColor, "marrones", 2),
	})
	assert.Empty(t, out, "negated occurrences must not seed conflicts")

	out = checker.Check([]model.ExtractedAttribute{
		attr("Ana", model.KeyHairModification, "recogido en un moño", 1),
		attr("Ana", model.KeyHairModification, "suelto", 2),
	})
	assert.Empty(t, out, "hairstyles are legitimate change")

	out = checker.Check([]model.ExtractedAttribute{
		attr("Ana", model.KeyHairColor, "rubio teñido", 1),
		attr("Ana", model.KeyHairColor, "negro", 2),
	})
	assert.Empty(t, out, "dyed hair marks a deliberate change")
}

func TestCheckGenericFallbackLowConfidence(t *testing.T) {
	checker := NewChecker(nil)
	out := checker.Check([]model.ExtractedAttribute{
		attr("Juan", model.KeyProfession, "herrero", 1),
		attr("Juan", model.KeyProfession, "panadero", 8),
	})

	require.Len(t, out, 1)
	assert.Equal(t, model.InconsistencyDifferentValue, out[0].Type)
	assert.Less(t, out[0].Confidence, 0.6)
}

func TestCheckMinConfidenceFilters(t *testing.T) {
	checker := NewChecker(nil)
	checker.MinConfidence = 0.8

	out := checker.Check([]model.ExtractedAttribute{
		attr("Juan", model.KeyProfession, "herrero", 1),
		attr("Juan", model.KeyProfession, "panadero", 8),
	})
	assert.Empty(t, out)
}

func TestLexiconNormalize(t *testing.T) {
	lex := DefaultLexicon()

	assert.Equal(t, "azul", lex.Normalize("Azules"))
	assert.Equal(t, "alto", lex.Normalize(" alta "))
	assert.Equal(t, "pelo negro", lex.Normalize("pelo negros"))
	assert.Equal(t, "desconocido", lex.Normalize("desconocido"))
}

func TestLexiconAgeRange(t *testing.T) {
	lex := DefaultLexicon()

	min, max, ok := lex.AgeRange("25")
	require.True(t, ok)
	assert.Equal(t, 25, min)
	assert.Equal(t, 25, max)

	min, max, ok = lex.AgeRange("anciano")
	require.True(t, ok)
	assert.Equal(t, 65, min)
	assert.Equal(t, 99, max)

	min, max, ok = lex.AgeRange("25 años")
	require.True(t, ok)
	assert.Equal(t, 25, min)

	_, _, ok = lex.AgeRange("indeterminada")
	assert.False(t, ok)
}

func TestLoadLexiconMergesOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lexicon.toml")
	overlay := `
[lemmas]
"grisáceos" = "gris"

[synonyms.colors]
gris = ["plateado"]

[antonyms.colors]
gris = ["negro"]

[regions]
forehead = ["frente"]

[age_ranges]
centenario = [100, 120]
`
	require.NoError(t, os.WriteFile(path, []byte(overlay), 0o644))

	lex, err := LoadLexicon(path)
	require.NoError(t, err)

	assert.Equal(t, "gris", lex.Normalize("grisáceos"))
	assert.True(t, lex.AreSynonyms(model.KeyEyeColor, "gris", "plateado"))
	assert.True(t, lex.AreAntonyms(model.KeyEyeColor, "gris", "negro"))
	assert.Equal(t, "forehead", lex.BodyRegion("frente despejada"))

	min, max, ok := lex.AgeRange("centenario")
	require.True(t, ok)
	assert.Equal(t, 100, min)
	assert.Equal(t, 120, max)

	assert.True(t, lex.AreSynonyms(model.KeyEyeColor, "azul", "celeste"))
}

func TestLoadLexiconMissingFile(t *testing.T) {
	_, err := LoadLexicon(filepath.Join(t.TempDir(), "absent.toml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read lexicon file")
}
