//go:build integration

package integration

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell/continuity/internal/config"
	"github.com/inkwell/continuity/internal/core"
	"github.com/inkwell/continuity/internal/driver"
	"github.com/inkwell/continuity/internal/llm"
)

func memgraphDriver(t *testing.T) *driver.MemgraphDriver {
	t.Helper()
	_ = godotenv.Load("../../.env")

	uri := os.Getenv("MEMGRAPH_URI")
	if uri == "" {
		t.Skip("Skipping integration test: MEMGRAPH_URI not set")
	}
	d, err := driver.NewMemgraphDriver(uri, os.Getenv("MEMGRAPH_USER"), os.Getenv("MEMGRAPH_PASSWORD"))
	require.NoError(t, err)
	return d
}

func cleanup(d *driver.MemgraphDriver, groupID string) {
	cypher := `MATCH (n {group_id: $gid}) DETACH DELETE n`
	_, _ = d.ExecuteQuery(context.Background(), cypher, map[string]interface{}{"gid": groupID})
}

// TestAnalyzePipeline runs the full extract-resolve-check-persist flow
// against a live Memgraph and a live LLM. Assertions stay loose where the
// LLM output is involved.
func TestAnalyzePipeline(t *testing.T) {
	d := memgraphDriver(t)
	defer d.Close(context.Background())

	provider := os.Getenv("LLM_PROVIDER")
	model := os.Getenv("LLM_MODEL")
	baseURL := os.Getenv("LLM_BASE_URL")
	if provider == "" {
		provider = "ollama"
	}
	if model == "" {
		model = "gpt-oss:latest"
	}
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}

	ctx := context.Background()
	llmClient, embedder, err := llm.NewClient(ctx, config.LLMConfig{
		Provider: provider,
		Model:    model,
		BaseURL:  baseURL,
		APIKey:   os.Getenv("LLM_API_KEY"),
	})
	require.NoError(t, err)

	engine := core.NewEngine(d, llmClient, embedder, &config.Config{})
	require.NoError(t, engine.BuildIndices(ctx))

	groupID := fmt.Sprintf("test-group-%s", uuid.New().String())
	defer cleanup(d, groupID)

	chapters := []core.Chapter{
		{ID: 1, Text: "Juan entró en la taberna. Sus ojos azules brillaban bajo la luz."},
		{ID: 5, Text: "Juan la miró fijamente con aquellos ojos marrones que ella recordaba."},
	}

	report, err := engine.AnalyzeDocument(ctx, groupID, chapters)
	require.NoError(t, err)
	assert.NotEmpty(t, report.Entities)
	t.Logf("Entities: %v", report.Entities)
	t.Logf("Resolved: %d, Inconsistencies: %d", len(report.Resolved), len(report.Inconsistencies))

	// Entities must have landed in the graph.
	res, err := d.ExecuteQuery(ctx, `MATCH (n:Entity {group_id: $gid}) RETURN count(n) AS count`,
		map[string]interface{}{"gid": groupID})
	require.NoError(t, err)
	require.NotEmpty(t, res.Records)
	count, _ := res.Records[0].Get("count")
	assert.Greater(t, count.(int64), int64(0))
}

// TestGraphPersistence exercises the Cypher surface directly, without an
// LLM: save an entity, attach an attribute and an inconsistency, read them
// back through the engine.
func TestGraphPersistence(t *testing.T) {
	d := memgraphDriver(t)
	defer d.Close(context.Background())

	ctx := context.Background()
	require.NoError(t, d.BuildIndices(ctx))

	groupID := fmt.Sprintf("test-group-%s", uuid.New().String())
	defer cleanup(d, groupID)

	entityUUID := uuid.New().String()
	_, err := d.ExecuteQuery(ctx, driver.SaveEntityNodeQuery, map[string]interface{}{
		"uuid":           entityUUID,
		"name":           "Juan",
		"group_id":       groupID,
		"entity_type":    "character",
		"created_at":     "2026-01-01T00:00:00Z",
		"name_embedding": []float32(nil),
		"summary":        "",
	})
	require.NoError(t, err)

	// Saving the same name again must not create a second node.
	_, err = d.ExecuteQuery(ctx, driver.SaveEntityNodeQuery, map[string]interface{}{
		"uuid":           uuid.New().String(),
		"name":           "Juan",
		"group_id":       groupID,
		"entity_type":    "character",
		"created_at":     "2026-01-02T00:00:00Z",
		"name_embedding": []float32(nil),
		"summary":        "",
	})
	require.NoError(t, err)

	res, err := d.ExecuteQuery(ctx, `MATCH (n:Entity {group_id: $gid}) RETURN count(n) AS count`,
		map[string]interface{}{"gid": groupID})
	require.NoError(t, err)
	count, _ := res.Records[0].Get("count")
	assert.Equal(t, int64(1), count.(int64))

	_, err = d.ExecuteQuery(ctx, driver.SaveAttributeNodeQuery, map[string]interface{}{
		"uuid":              uuid.New().String(),
		"entity_uuid":       entityUUID,
		"attribute_type":    "eye_color",
		"value":             "azules",
		"group_id":          groupID,
		"chapter_id":        1,
		"sentence_idx":      0,
		"confidence":        0.92,
		"conflict_status":   "unanimous",
		"assignment_source": "nsubj",
		"is_dubious":        false,
		"text_evidence":     "sus ojos azules",
		"resolution_notes":  []string{"unanimous across 1 candidate(s)"},
		"created_at":        "2026-01-01T00:00:00Z",
	})
	require.NoError(t, err)

	incUUID := uuid.New().String()
	_, err = d.ExecuteQuery(ctx, driver.SaveInconsistencyNodeQuery, map[string]interface{}{
		"uuid":               incUUID,
		"entity_uuid":        entityUUID,
		"attribute_key":      "eye_color",
		"inconsistency_type": "antonym",
		"value1":             "azules",
		"chapter1":           1,
		"value2":             "marrones",
		"chapter2":           5,
		"confidence":         0.9,
		"explanation":        "'azul' and 'marrón' are known opposites for eye_color",
		"group_id":           groupID,
		"created_at":         "2026-01-01T00:00:00Z",
	})
	require.NoError(t, err)

	engine := core.NewEngine(d, nil, nil, &config.Config{})
	stored, err := engine.StoredInconsistencies(ctx, groupID)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, incUUID, stored[0].UUID)
	assert.Equal(t, "Juan", stored[0].EntityName)
	assert.Equal(t, "antonym", stored[0].Type)
}
