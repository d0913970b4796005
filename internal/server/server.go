package server

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/inkwell/continuity/internal/config"
	"github.com/inkwell/continuity/internal/core"
	"github.com/inkwell/continuity/internal/core/model"
	"github.com/inkwell/continuity/internal/driver"
	"github.com/inkwell/continuity/internal/llm"
)

type Server struct {
	Engine *core.Engine
}

func NewServer() *Server {
	dbURI := os.Getenv("MEMGRAPH_URI")
	if dbURI == "" {
		dbURI = "bolt://localhost:7687"
	}
	dbUser := os.Getenv("MEMGRAPH_USER")
	dbPass := os.Getenv("MEMGRAPH_PASSWORD")

	d, err := driver.NewMemgraphDriver(dbURI, dbUser, dbPass)
	if err != nil {
		log.Fatalf("Failed to connect to Memgraph: %v", err)
	}

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config/config.toml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Printf("Warning: could not load %s: %v. Using defaults", cfgPath, err)
		cfg = &config.Config{}
	}

	// Env vars override the file.
	if envProvider := os.Getenv("LLM_PROVIDER"); envProvider != "" {
		cfg.LLM.Provider = envProvider
	}
	if envModel := os.Getenv("LLM_MODEL"); envModel != "" {
		cfg.LLM.Model = envModel
	}
	if envEmbeddingModel := os.Getenv("LLM_EMBEDDING_MODEL"); envEmbeddingModel != "" {
		cfg.LLM.EmbeddingModel = envEmbeddingModel
	}
	if envAPIKey := os.Getenv("LLM_API_KEY"); envAPIKey != "" {
		cfg.LLM.APIKey = envAPIKey
	}
	if envBaseURL := os.Getenv("LLM_BASE_URL"); envBaseURL != "" {
		cfg.LLM.BaseURL = envBaseURL
	}

	// Default to Ollama if provider is empty
	if cfg.LLM.Provider == "" {
		cfg.LLM.Provider = "ollama"
		cfg.LLM.Model = "gpt-oss:latest"
		cfg.LLM.BaseURL = "http://localhost:11434"
	}

	llmClient, embedderClient, err := llm.NewClient(context.Background(), cfg.LLM)
	if err != nil {
		log.Fatalf("Failed to initialize LLM client: %v", err)
	}

	return &Server{
		Engine: core.NewEngine(d, llmClient, embedderClient, cfg),
	}
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.Default()

	r.GET("/health", s.Health)
	r.POST("/resolve", s.Resolve)
	r.POST("/consistency", s.Consistency)
	r.POST("/analyze", s.Analyze)
	r.GET("/inconsistencies/:group_id", s.Inconsistencies)

	return r
}

func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type ResolveRequest struct {
	Candidates []model.AttributeCandidate `json:"candidates"`
	Mentions   []model.EntityMention      `json:"mentions"`
	Text       string                     `json:"text"`
}

func (s *Server) Resolve(c *gin.Context) {
	var req ResolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	resolved, stats := s.Engine.Resolve(c.Request.Context(), req.Candidates, req.Mentions, req.Text)

	c.JSON(http.StatusOK, gin.H{
		"resolved":   resolved,
		"statistics": stats,
	})
}

type ConsistencyRequest struct {
	Attributes []model.ExtractedAttribute `json:"attributes"`
}

func (s *Server) Consistency(c *gin.Context) {
	var req ConsistencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	inconsistencies := s.Engine.CheckConsistency(req.Attributes)

	c.JSON(http.StatusOK, gin.H{
		"inconsistencies": inconsistencies,
		"count":           len(inconsistencies),
	})
}

type AnalyzeRequest struct {
	GroupID  string         `json:"group_id"`
	Chapters []core.Chapter `json:"chapters"`
}

func (s *Server) Analyze(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Chapters) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	report, err := s.Engine.AnalyzeDocument(c.Request.Context(), req.GroupID, req.Chapters)
	if err != nil {
		log.Printf("Failed to analyze document: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to analyze document"})
		return
	}

	c.JSON(http.StatusOK, report)
}

func (s *Server) Inconsistencies(c *gin.Context) {
	groupID := c.Param("group_id")

	items, err := s.Engine.StoredInconsistencies(c.Request.Context(), groupID)
	if err != nil {
		log.Printf("Failed to fetch inconsistencies: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch inconsistencies"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"inconsistencies": items})
}
