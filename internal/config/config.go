package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

type ExtractionPrompts struct {
	Mentions   string `toml:"mentions"`
	Attributes string `toml:"attributes"`
}

type ArbitrationPrompts struct {
	Conflict string `toml:"conflict"`
}

type ProfilePrompts struct {
	Entity string `toml:"entity"`
	Cast   string `toml:"cast"`
}

type ProfileConfig struct {
	// Enabled turns per-entity profile generation on. Off by default; it
	// costs one LLM call per entity.
	Enabled bool           `toml:"enabled"`
	Prompts ProfilePrompts `toml:"prompts"`
}

type LLMConfig struct {
	Provider       string `toml:"provider"`
	Model          string `toml:"model"`
	EmbeddingModel string `toml:"embedding_model"`
	APIKey         string `toml:"api_key"`
	BaseURL        string `toml:"base_url"`
}

type MemgraphConfig struct {
	URI      string `toml:"uri"`
	User     string `toml:"user"`
	Password string `toml:"password"`
}

type ResolverConfig struct {
	// SpanTolerance is the character slack when grouping candidates that
	// refer to the same textual instance. 0 means the built-in default.
	SpanTolerance int `toml:"span_tolerance"`
	// ArbitrationEnabled turns the LLM tie-breaker for conflict groups on.
	ArbitrationEnabled bool `toml:"arbitration_enabled"`
}

type ConsistencyConfig struct {
	// MinConfidence drops inconsistencies below the threshold. 0 means the
	// built-in default.
	MinConfidence float64 `toml:"min_confidence"`
	// LexiconPath points at an optional TOML vocabulary overlay.
	LexiconPath string `toml:"lexicon_path"`
}

type Config struct {
	LLM         LLMConfig          `toml:"llm"`
	Memgraph    MemgraphConfig     `toml:"memgraph"`
	Extraction  ExtractionPrompts  `toml:"extraction"`
	Arbitration ArbitrationPrompts `toml:"arbitration"`
	Resolver    ResolverConfig     `toml:"resolver"`
	Consistency ConsistencyConfig  `toml:"consistency"`
	Profile     ProfileConfig      `toml:"profile"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	return &cfg, nil
}
