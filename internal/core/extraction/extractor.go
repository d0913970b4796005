package extraction

import (
	"context"
	"fmt"
	"strings"

	"github.com/inkwell/continuity/internal/config"
	"github.com/inkwell/continuity/internal/core/common"
	"github.com/inkwell/continuity/internal/core/model"
	"github.com/inkwell/continuity/internal/llm"
)

// Base confidence for LLM-produced candidates. The model attributes the
// trait itself, so an attributed candidate enters at the explicit-subject
// tier; an unattributed one is left for positional assignment downstream.
const llmAssignedConfidence = 0.92

type Extractor struct {
	LLM     llm.LLMClient
	Prompts config.ExtractionPrompts
}

func NewExtractor(llmClient llm.LLMClient, prompts config.ExtractionPrompts) *Extractor {
	return &Extractor{
		LLM:     llmClient,
		Prompts: prompts,
	}
}

type mentionsPayload struct {
	Mentions []struct {
		Entity      string `json:"entity"`
		Text        string `json:"text"`
		Start       int    `json:"start"`
		End         int    `json:"end"`
		SentenceIdx int    `json:"sentence_idx"`
		EntityType  string `json:"entity_type"`
	} `json:"mentions"`
}

type candidatesPayload struct {
	Attributes []struct {
		AttributeType string `json:"attribute_type"`
		Value         string `json:"value"`
		Entity        string `json:"entity"`
		TextEvidence  string `json:"text_evidence"`
		SentenceIdx   int    `json:"sentence_idx"`
		Start         int    `json:"start"`
		End           int    `json:"end"`
		IsNegated     bool   `json:"is_negated"`
	} `json:"attributes"`
}

// ExtractMentions asks the LLM for every entity mention in a chapter.
// Mention EntityIDs are the canonical entity names; the engine maps names to
// stored node IDs when persisting.
func (e *Extractor) ExtractMentions(ctx context.Context, text string) ([]model.EntityMention, error) {
	prompt := e.Prompts.Mentions
	if prompt == "" {
		prompt = defaultMentionsPrompt
	}
	response, err := e.LLM.Generate(ctx, fmt.Sprintf(prompt, text))
	if err != nil {
		return nil, fmt.Errorf("failed to generate mentions: %w", err)
	}

	payload, err := common.ParseJSON[mentionsPayload](response)
	if err != nil {
		return nil, fmt.Errorf("failed to parse mentions: %w", err)
	}

	mentions := make([]model.EntityMention, 0, len(payload.Mentions))
	for _, m := range payload.Mentions {
		if strings.TrimSpace(m.Entity) == "" {
			continue
		}
		mentions = append(mentions, model.EntityMention{
			EntityID:    strings.TrimSpace(m.Entity),
			Text:        m.Text,
			Start:       m.Start,
			End:         clampEnd(m.Start, m.End),
			SentenceIdx: m.SentenceIdx,
			EntityType:  m.EntityType,
		})
	}
	return mentions, nil
}

// ExtractCandidates asks the LLM for attribute candidates, attributing each
// to one of the known entities when the text supports it. Attributed
// candidates carry explicit-subject evidence; unattributed ones stay orphan
// and are assigned positionally by the resolver.
func (e *Extractor) ExtractCandidates(ctx context.Context, text string, chapterID int, mentions []model.EntityMention) ([]model.AttributeCandidate, error) {
	known := knownEntities(mentions)

	prompt := e.Prompts.Attributes
	if prompt == "" {
		prompt = defaultAttributesPrompt
	}
	response, err := e.LLM.Generate(ctx, fmt.Sprintf(prompt, strings.Join(known, ", "), text))
	if err != nil {
		return nil, fmt.Errorf("failed to generate attribute candidates: %w", err)
	}

	payload, err := common.ParseJSON[candidatesPayload](response)
	if err != nil {
		return nil, fmt.Errorf("failed to parse attribute candidates: %w", err)
	}

	candidates := make([]model.AttributeCandidate, 0, len(payload.Attributes))
	for _, a := range payload.Attributes {
		if strings.TrimSpace(a.AttributeType) == "" || strings.TrimSpace(a.Value) == "" {
			continue
		}
		c := model.AttributeCandidate{
			AttributeType:  strings.ToLower(strings.TrimSpace(a.AttributeType)),
			Value:          a.Value,
			TextEvidence:   a.TextEvidence,
			SentenceIdx:    a.SentenceIdx,
			Start:          a.Start,
			End:            clampEnd(a.Start, a.End),
			Extractor:      model.ExtractorLLM,
			BaseConfidence: llmAssignedConfidence,
			IsNegated:      a.IsNegated,
			ChapterID:      chapterID,
		}
		if entity := matchEntity(a.Entity, known); entity != "" {
			c.AssignedEntityID = entity
			c.Source = model.SourceExplicitSubject
			c.SyntacticEvidence = a.TextEvidence
		}
		candidates = append(candidates, c)
	}
	return candidates, nil
}

// knownEntities returns the distinct mention entity names in first-seen order.
func knownEntities(mentions []model.EntityMention) []string {
	seen := map[string]bool{}
	var names []string
	for _, m := range mentions {
		key := strings.ToLower(m.EntityID)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		names = append(names, m.EntityID)
	}
	return names
}

// matchEntity maps the model's entity attribution onto a known entity name,
// case-insensitively. Unknown attributions are discarded rather than
// trusted, so a hallucinated owner cannot enter the pipeline.
func matchEntity(entity string, known []string) string {
	entity = strings.TrimSpace(entity)
	if entity == "" {
		return ""
	}
	for _, name := range known {
		if strings.EqualFold(name, entity) {
			return name
		}
	}
	return ""
}

func clampEnd(start, end int) int {
	if end < start {
		return start
	}
	return end
}

const defaultMentionsPrompt = `You are analyzing a chapter of a Spanish-language manuscript. List every mention of a named entity (characters, places, objects) as JSON:

{"mentions": [{"entity": "canonical name", "text": "surface form", "start": 0, "end": 0, "sentence_idx": 0, "entity_type": "character"}]}

Character offsets are into the chapter text. Use the same canonical name for every mention of the same entity.

Chapter text:
%s`

const defaultAttributesPrompt = `You are analyzing a chapter of a Spanish-language manuscript. Known entities: %s

Extract every physical, psychological or descriptive attribute stated in the text as JSON:

{"attributes": [{"attribute_type": "eye_color", "value": "azules", "entity": "Juan", "text_evidence": "sus ojos azules", "sentence_idx": 0, "start": 0, "end": 0, "is_negated": false}]}

Set "entity" only when the text itself makes the owner clear; leave it empty otherwise. Keep values verbatim in Spanish. Mark attributes stated under negation with is_negated.

Chapter text:
%s`
