package core

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/inkwell/continuity/internal/config"
	"github.com/inkwell/continuity/internal/core/consistency"
	"github.com/inkwell/continuity/internal/core/extraction"
	"github.com/inkwell/continuity/internal/core/model"
	"github.com/inkwell/continuity/internal/core/profile"
	"github.com/inkwell/continuity/internal/core/resolve"
	"github.com/inkwell/continuity/internal/driver"
	"github.com/inkwell/continuity/internal/llm"
)

// Engine wires extraction, attribute resolution and consistency checking
// into one pipeline, with optional persistence to Memgraph. Driver, LLM and
// Embedder may each be nil; the corresponding stage is then skipped, which
// keeps Resolve and CheckConsistency usable as pure batch operations.
type Engine struct {
	Driver   driver.GraphDriver
	LLM      llm.LLMClient
	Embedder llm.EmbedderClient

	Extractor *extraction.Extractor
	Resolver  *resolve.CESPAttributeResolver
	Checker   *consistency.Checker

	// Profiler is nil unless profile generation is enabled in config.
	Profiler *profile.Profiler
}

func NewEngine(d driver.GraphDriver, llmClient llm.LLMClient, embedder llm.EmbedderClient, cfg *config.Config) *Engine {
	resolver := resolve.NewCESPAttributeResolver()
	resolver.SpanTolerance = cfg.Resolver.SpanTolerance
	if cfg.Resolver.ArbitrationEnabled && llmClient != nil {
		resolver.Arbiter = &resolve.LLMArbiter{LLM: llmClient, Prompt: cfg.Arbitration.Conflict}
	}

	lexicon := consistency.DefaultLexicon()
	if cfg.Consistency.LexiconPath != "" {
		loaded, err := consistency.LoadLexicon(cfg.Consistency.LexiconPath)
		if err != nil {
			log.Printf("Warning: could not load lexicon %s: %v. Using defaults", cfg.Consistency.LexiconPath, err)
		} else {
			lexicon = loaded
		}
	}
	checker := consistency.NewChecker(lexicon)
	if cfg.Consistency.MinConfidence > 0 {
		checker.MinConfidence = cfg.Consistency.MinConfidence
	}

	var profiler *profile.Profiler
	if cfg.Profile.Enabled && llmClient != nil {
		profiler = profile.NewProfiler(llmClient, cfg.Profile.Prompts)
	}

	return &Engine{
		Driver:    d,
		LLM:       llmClient,
		Embedder:  embedder,
		Extractor: extraction.NewExtractor(llmClient, cfg.Extraction),
		Resolver:  resolver,
		Checker:   checker,
		Profiler:  profiler,
	}
}

func (e *Engine) BuildIndices(ctx context.Context) error {
	return e.Driver.BuildIndices(ctx)
}

// Resolve runs the resolution cascade over externally supplied candidates
// and mentions. Pure with a nil arbiter.
func (e *Engine) Resolve(ctx context.Context, candidates []model.AttributeCandidate,
	mentions []model.EntityMention, text string) ([]model.ResolvedAttribute, resolve.Statistics) {

	resolved := e.Resolver.Resolve(ctx, candidates, mentions, text)
	return resolved, resolve.GetStatistics(resolved)
}

// CheckConsistency compares externally supplied attribute occurrences.
func (e *Engine) CheckConsistency(attrs []model.ExtractedAttribute) []model.AttributeInconsistency {
	return e.Checker.Check(attrs)
}

// Chapter is one unit of manuscript text for analysis.
type Chapter struct {
	ID   int    `json:"id"`
	Text string `json:"text"`
}

// Report is the outcome of a full document analysis.
type Report struct {
	Entities        []string                       `json:"entities"`
	Attributes      []model.ExtractedAttribute     `json:"attributes"`
	Resolved        []model.ResolvedAttribute      `json:"resolved"`
	Inconsistencies []model.AttributeInconsistency `json:"inconsistencies"`
	Statistics      resolve.Statistics             `json:"statistics"`
	Profiles        map[string]string              `json:"profiles,omitempty"`
	CastOverview    string                         `json:"cast_overview,omitempty"`
}

// AnalyzeDocument runs the full pipeline over a document: extract mentions
// and candidates per chapter, resolve ownership, check cross-chapter
// consistency, and persist the outcome under groupID when a driver is set.
func (e *Engine) AnalyzeDocument(ctx context.Context, groupID string, chapters []Chapter) (*Report, error) {
	if e.Extractor == nil || e.LLM == nil {
		return nil, fmt.Errorf("document analysis requires an LLM client")
	}

	var resolved []model.ResolvedAttribute
	var attrs []model.ExtractedAttribute
	entities := map[string]bool{}
	var entityOrder []string

	for _, ch := range chapters {
		mentions, err := e.Extractor.ExtractMentions(ctx, ch.Text)
		if err != nil {
			return nil, fmt.Errorf("chapter %d: %w", ch.ID, err)
		}
		candidates, err := e.Extractor.ExtractCandidates(ctx, ch.Text, ch.ID, mentions)
		if err != nil {
			return nil, fmt.Errorf("chapter %d: %w", ch.ID, err)
		}

		chapterResolved := e.Resolver.Resolve(ctx, candidates, mentions, ch.Text)
		for i := range chapterResolved {
			chapterResolved[i].ChapterID = ch.ID
		}
		resolved = append(resolved, chapterResolved...)
		attrs = append(attrs, toExtracted(chapterResolved)...)

		for _, m := range mentions {
			if !entities[m.EntityID] {
				entities[m.EntityID] = true
				entityOrder = append(entityOrder, m.EntityID)
			}
		}
	}

	inconsistencies := e.Checker.Check(attrs)

	var profiles map[string]string
	var castOverview string
	if e.Profiler != nil {
		profiles = map[string]string{}
		for _, name := range entityOrder {
			p, err := e.Profiler.ProfileEntity(ctx, name, resolved)
			if err != nil {
				log.Printf("Warning: profile generation failed for %q: %v", name, err)
				continue
			}
			if p != "" {
				profiles[name] = p
			}
		}
		if len(profiles) > 0 {
			overview, err := e.Profiler.ProfileCast(ctx, profiles)
			if err != nil {
				log.Printf("Warning: cast overview generation failed: %v", err)
			} else {
				castOverview = overview
			}
		}
	}

	if e.Driver != nil {
		if err := e.persist(ctx, groupID, entityOrder, profiles, resolved, inconsistencies); err != nil {
			return nil, fmt.Errorf("failed to persist analysis: %w", err)
		}
	}

	return &Report{
		Entities:        entityOrder,
		Attributes:      attrs,
		Resolved:        resolved,
		Inconsistencies: inconsistencies,
		Statistics:      resolve.GetStatistics(resolved),
		Profiles:        profiles,
		CastOverview:    castOverview,
	}, nil
}

// toExtracted bridges resolved attributes to the checker's occurrence form.
// Resolved entity IDs are canonical entity names at this stage.
func toExtracted(resolved []model.ResolvedAttribute) []model.ExtractedAttribute {
	attrs := make([]model.ExtractedAttribute, 0, len(resolved))
	for _, r := range resolved {
		attrs = append(attrs, model.ExtractedAttribute{
			EntityName:  r.EntityID,
			Key:         model.AttributeKey(r.AttributeType),
			Value:       r.Value,
			SourceText:  r.TextEvidence,
			StartChar:   r.Start,
			Confidence:  r.FinalConfidence,
			IsNegated:   r.IsNegated,
			ChapterID:   r.ChapterID,
			SentenceIdx: r.SentenceIdx,
		})
	}
	return attrs
}

func (e *Engine) persist(ctx context.Context, groupID string, entities []string, profiles map[string]string,
	resolved []model.ResolvedAttribute, inconsistencies []model.AttributeInconsistency) error {

	now := time.Now().UTC().Format(time.RFC3339)

	entityUUIDs := map[string]string{}
	for _, name := range entities {
		var embedding []float32
		if e.Embedder != nil {
			if vec, err := e.Embedder.Embed(ctx, name); err == nil {
				embedding = vec
			}
		}
		params := map[string]interface{}{
			"uuid":           uuid.New().String(),
			"name":           name,
			"group_id":       groupID,
			"entity_type":    "character",
			"created_at":     now,
			"name_embedding": embedding,
			"summary":        profiles[name],
		}
		result, err := e.Driver.ExecuteQuery(ctx, driver.SaveEntityNodeQuery, params)
		if err != nil {
			return fmt.Errorf("failed to save entity %q: %w", name, err)
		}
		entityUUIDs[name] = params["uuid"].(string)
		if len(result.Records) > 0 {
			if id, ok := result.Records[0].Get("uuid"); ok {
				if s, ok := id.(string); ok && s != "" {
					entityUUIDs[name] = s
				}
			}
		}
	}

	for _, r := range resolved {
		entityUUID, ok := entityUUIDs[r.EntityID]
		if !ok {
			continue
		}
		params := map[string]interface{}{
			"uuid":              uuid.New().String(),
			"entity_uuid":       entityUUID,
			"attribute_type":    r.AttributeType,
			"value":             r.Value,
			"group_id":          groupID,
			"chapter_id":        r.ChapterID,
			"sentence_idx":      r.SentenceIdx,
			"confidence":        r.FinalConfidence,
			"conflict_status":   string(r.Status),
			"assignment_source": string(r.Source),
			"is_dubious":        r.IsDubious,
			"text_evidence":     r.TextEvidence,
			"resolution_notes":  r.ResolutionNotes,
			"created_at":        now,
		}
		if _, err := e.Driver.ExecuteQuery(ctx, driver.SaveAttributeNodeQuery, params); err != nil {
			return fmt.Errorf("failed to save attribute %s=%q: %w", r.AttributeType, r.Value, err)
		}
	}

	for _, inc := range inconsistencies {
		entityUUID, ok := entityUUIDs[inc.EntityName]
		if !ok {
			continue
		}
		params := map[string]interface{}{
			"uuid":               inc.ID,
			"entity_uuid":        entityUUID,
			"attribute_key":      string(inc.Key),
			"inconsistency_type": string(inc.Type),
			"value1":             inc.First.Value,
			"chapter1":           inc.First.Chapter,
			"value2":             inc.Second.Value,
			"chapter2":           inc.Second.Chapter,
			"confidence":         inc.Confidence,
			"explanation":        inc.Explanation,
			"group_id":           groupID,
			"created_at":         now,
		}
		if _, err := e.Driver.ExecuteQuery(ctx, driver.SaveInconsistencyNodeQuery, params); err != nil {
			return fmt.Errorf("failed to save inconsistency for %q: %w", inc.EntityName, err)
		}
	}

	return nil
}

// StoredInconsistency is the persisted view of a contradiction, as read back
// from the graph.
type StoredInconsistency struct {
	UUID        string  `json:"uuid"`
	EntityName  string  `json:"entity_name"`
	Key         string  `json:"attribute_key"`
	Type        string  `json:"inconsistency_type"`
	Value1      string  `json:"value1"`
	Value2      string  `json:"value2"`
	Confidence  float64 `json:"confidence"`
	Explanation string  `json:"explanation"`
}

// StoredInconsistencies reads back every persisted contradiction for a
// group, strongest first.
func (e *Engine) StoredInconsistencies(ctx context.Context, groupID string) ([]StoredInconsistency, error) {
	result, err := e.Driver.ExecuteQuery(ctx, driver.GetGroupInconsistenciesQuery,
		map[string]interface{}{"group_id": groupID})
	if err != nil {
		return nil, err
	}

	var out []StoredInconsistency
	for _, rec := range result.Records {
		item := StoredInconsistency{}
		if v, ok := rec.Get("uuid"); ok {
			item.UUID, _ = v.(string)
		}
		if v, ok := rec.Get("entity_name"); ok {
			item.EntityName, _ = v.(string)
		}
		if v, ok := rec.Get("attribute_key"); ok {
			item.Key, _ = v.(string)
		}
		if v, ok := rec.Get("inconsistency_type"); ok {
			item.Type, _ = v.(string)
		}
		if v, ok := rec.Get("value1"); ok {
			item.Value1, _ = v.(string)
		}
		if v, ok := rec.Get("value2"); ok {
			item.Value2, _ = v.(string)
		}
		if v, ok := rec.Get("confidence"); ok {
			item.Confidence, _ = v.(float64)
		}
		if v, ok := rec.Get("explanation"); ok {
			item.Explanation, _ = v.(string)
		}
		out = append(out, item)
	}
	return out, nil
}
