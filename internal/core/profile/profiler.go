package profile

import (
	"context"
	"fmt"
	"sort"

	"github.com/inkwell/continuity/internal/config"
	"github.com/inkwell/continuity/internal/core/common"
	"github.com/inkwell/continuity/internal/core/model"
	"github.com/inkwell/continuity/internal/llm"
)

// Profiler condenses an entity's resolved attributes into a short prose
// profile, and merges per-entity profiles into a cast overview.
type Profiler struct {
	LLM     llm.LLMClient
	Prompts config.ProfilePrompts
}

func NewProfiler(llmClient llm.LLMClient, prompts config.ProfilePrompts) *Profiler {
	return &Profiler{
		LLM:     llmClient,
		Prompts: prompts,
	}
}

type profilePayload struct {
	Profile string `json:"profile"`
}

// ProfileEntity writes a profile for one entity from its resolved
// attributes. Dubious attributes are included but marked, so the profile
// reflects what the text actually supports.
func (p *Profiler) ProfileEntity(ctx context.Context, name string, attrs []model.ResolvedAttribute) (string, error) {
	traits := ""
	for _, a := range attrs {
		if a.EntityID != name || a.IsNegated {
			continue
		}
		line := fmt.Sprintf("- %s: %s (chapter %d)", a.AttributeType, a.Value, a.ChapterID)
		if a.IsDubious {
			line += " [uncertain]"
		}
		traits += line + "\n"
	}
	if traits == "" {
		return "", nil
	}

	prompt := p.Prompts.Entity
	if prompt == "" {
		prompt = defaultEntityPrompt
	}

	response, err := p.LLM.Generate(ctx, fmt.Sprintf(prompt, name, traits))
	if err != nil {
		return "", fmt.Errorf("failed to generate profile: %w", err)
	}

	result, err := common.ParseJSON[profilePayload](response)
	if err != nil {
		return "", fmt.Errorf("failed to parse profile result: %w", err)
	}
	return result.Profile, nil
}

// ProfileCast merges per-entity profiles into one overview. Large casts are
// split into chunks and reduced recursively.
func (p *Profiler) ProfileCast(ctx context.Context, profiles map[string]string) (string, error) {
	const chunkSize = 20

	names := make([]string, 0, len(profiles))
	for name := range profiles {
		names = append(names, name)
	}
	sort.Strings(names)

	if len(names) <= chunkSize {
		block := ""
		for _, name := range names {
			if profiles[name] != "" {
				block += fmt.Sprintf("- %s: %s\n", name, profiles[name])
			}
		}
		if block == "" {
			return "No significant information.", nil
		}

		prompt := p.Prompts.Cast
		if prompt == "" {
			prompt = defaultCastPrompt
		}
		response, err := p.LLM.Generate(ctx, fmt.Sprintf(prompt, block))
		if err != nil {
			return "", fmt.Errorf("failed to generate cast overview: %w", err)
		}
		result, err := common.ParseJSON[profilePayload](response)
		if err == nil {
			return result.Profile, nil
		}
		return response, nil
	}

	// Split and reduce.
	merged := map[string]string{}
	part := 0
	for i := 0; i < len(names); i += chunkSize {
		end := i + chunkSize
		if end > len(names) {
			end = len(names)
		}
		chunk := map[string]string{}
		for _, name := range names[i:end] {
			chunk[name] = profiles[name]
		}
		summary, err := p.ProfileCast(ctx, chunk)
		if err != nil {
			continue
		}
		part++
		merged[fmt.Sprintf("Part %d", part)] = summary
	}
	if len(merged) == 0 {
		return "", fmt.Errorf("failed to generate cast overview")
	}
	return p.ProfileCast(ctx, merged)
}

const defaultEntityPrompt = `Write a one-paragraph profile of %s from these attributes extracted from a manuscript:

%s

Return JSON: {"profile": "..."}`

const defaultCastPrompt = `Merge these character profiles into one short cast overview:

%s

Return JSON: {"profile": "..."}`
