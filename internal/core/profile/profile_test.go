package profile

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell/continuity/internal/config"
	"github.com/inkwell/continuity/internal/core/model"
)

func TestProfileEntity(t *testing.T) {
	mockJSON := `{
		"profile": "Juan es un herrero de ojos azules, delgado y de carácter serio."
	}`
	profiler := NewProfiler(&MockLLMClient{Response: mockJSON}, config.ProfilePrompts{})

	attrs := []model.ResolvedAttribute{
		{EntityID: "Juan", AttributeType: "eye_color", Value: "azules", ChapterID: 1},
		{EntityID: "Juan", AttributeType: "build", Value: "delgado", ChapterID: 2, IsDubious: true},
		{EntityID: "Pedro", AttributeType: "build", Value: "fuerte", ChapterID: 1},
		{EntityID: "Juan", AttributeType: "facial_hair", Value: "barba", ChapterID: 3, IsNegated: true},
	}

	out, err := profiler.ProfileEntity(context.Background(), "Juan", attrs)

	require.NoError(t, err)
	assert.Contains(t, out, "herrero")
}

func TestProfileEntityNoAttributes(t *testing.T) {
	profiler := NewProfiler(&MockLLMClient{Response: "should not be called"}, config.ProfilePrompts{})

	out, err := profiler.ProfileEntity(context.Background(), "Juan", nil)

	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestProfileCastSmall(t *testing.T) {
	mockJSON := `{"profile": "Two rivals in a mountain village."}`
	profiler := NewProfiler(&MockLLMClient{Response: mockJSON}, config.ProfilePrompts{})

	out, err := profiler.ProfileCast(context.Background(), map[string]string{
		"Juan":  "A blacksmith.",
		"Pedro": "A baker.",
	})

	require.NoError(t, err)
	assert.Equal(t, "Two rivals in a mountain village.", out)
}

func TestProfileCastEmpty(t *testing.T) {
	profiler := NewProfiler(&MockLLMClient{}, config.ProfilePrompts{})

	out, err := profiler.ProfileCast(context.Background(), map[string]string{"Juan": ""})

	require.NoError(t, err)
	assert.Equal(t, "No significant information.", out)
}

func TestProfileCastChunked(t *testing.T) {
	mockJSON := `{"profile": "A sprawling cast."}`
	profiler := NewProfiler(&MockLLMClient{Response: mockJSON}, config.ProfilePrompts{})

	profiles := map[string]string{}
	for i := 0; i < 45; i++ {
		profiles[string(rune('A'+i%26))+string(rune('a'+i/26))] = "Someone."
	}

	out, err := profiler.ProfileCast(context.Background(), profiles)

	require.NoError(t, err)
	assert.Equal(t, "A sprawling cast.", out)
}
