package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell/continuity/internal/config"
	"github.com/inkwell/continuity/internal/core"
	"github.com/inkwell/continuity/internal/core/model"
)

func testServer() *Server {
	gin.SetMode(gin.TestMode)
	return &Server{Engine: core.NewEngine(nil, nil, nil, &config.Config{})}
}

func postJSON(t *testing.T, router *gin.Engine, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	router := testServer().SetupRouter()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ok")
}

func TestResolveEndpoint(t *testing.T) {
	router := testServer().SetupRouter()

	payload := ResolveRequest{
		Mentions: []model.EntityMention{
			{EntityID: "Juan", Text: "Juan", Start: 0, End: 4, SentenceIdx: 0},
			{EntityID: "Pedro", Text: "Pedro", Start: 30, End: 35, SentenceIdx: 0},
		},
		Candidates: []model.AttributeCandidate{
			{
				AttributeType: "eye_color", Value: "azules",
				TextEvidence: "los ojos azules de Pedro", SentenceIdx: 0,
				Start: 10, End: 34, Extractor: model.ExtractorDependency,
				AssignedEntityID: "Pedro", Source: model.SourceGenitive,
				BaseConfidence: 0.92,
			},
			{
				AttributeType: "eye_color", Value: "azules",
				TextEvidence: "los ojos azules de Pedro", SentenceIdx: 0,
				Start: 10, End: 34, Extractor: model.ExtractorPattern,
				AssignedEntityID: "Juan", Source: model.SourceProximity,
				BaseConfidence: 0.70,
			},
		},
	}

	w := postJSON(t, router, "/resolve", payload)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Resolved []model.ResolvedAttribute `json:"resolved"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Resolved, 1)
	assert.Equal(t, "Pedro", resp.Resolved[0].EntityID)
	assert.Equal(t, model.StatusConfirmed, resp.Resolved[0].Status)
}

func TestResolveEndpointBadRequest(t *testing.T) {
	router := testServer().SetupRouter()

	req := httptest.NewRequest(http.MethodPost, "/resolve", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestConsistencyEndpoint(t *testing.T) {
	router := testServer().SetupRouter()

	payload := ConsistencyRequest{
		Attributes: []model.ExtractedAttribute{
			{EntityName: "Juan", Key: model.KeyEyeColor, Value: "azules", SourceText: "sus ojos azules", ChapterID: 1},
			{EntityName: "Juan", Key: model.KeyEyeColor, Value: "marrones", SourceText: "aquellos ojos marrones", ChapterID: 5},
		},
	}

	w := postJSON(t, router, "/consistency", payload)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Inconsistencies []model.AttributeInconsistency `json:"inconsistencies"`
		Count           int                            `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Count)
	require.Len(t, resp.Inconsistencies, 1)
	assert.Equal(t, model.InconsistencyAntonym, resp.Inconsistencies[0].Type)
}

func TestAnalyzeEndpointRejectsEmpty(t *testing.T) {
	router := testServer().SetupRouter()

	w := postJSON(t, router, "/analyze", AnalyzeRequest{GroupID: "novel-1"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
