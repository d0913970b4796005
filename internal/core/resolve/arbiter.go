package resolve

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/inkwell/continuity/internal/core/model"
	"github.com/inkwell/continuity/internal/llm"
)

// ConfidenceArbitration is the confidence attached to an LLM-arbitrated
// decision. Deliberately below the syntactic tier: arbitration settles a
// conflict, it does not outrank grammar.
const ConfidenceArbitration = 0.82

// Arbiter breaks CONFLICT groups no heuristic can settle. Implementations
// may fail or abstain; the resolver then falls back to the deterministic
// highest-confidence rule.
type Arbiter interface {
	Arbitrate(ctx context.Context, candidates []model.AttributeCandidate,
		mentions []model.EntityMention, text string) (entityID string, ok bool, err error)
}

// LLMArbiter asks a language model which entity owns the disputed trait.
// The answer is only accepted when it names one of the known mentions.
type LLMArbiter struct {
	LLM llm.LLMClient
	// Prompt overrides the built-in prompt. It receives attribute type,
	// value, evidence and the option list, in that order.
	Prompt string
}

func NewLLMArbiter(client llm.LLMClient) *LLMArbiter {
	return &LLMArbiter{LLM: client}
}

func (a *LLMArbiter) Arbitrate(ctx context.Context, candidates []model.AttributeCandidate,
	mentions []model.EntityMention, text string) (string, bool, error) {

	if len(candidates) == 0 || len(mentions) == 0 {
		return "", false, nil
	}

	first := candidates[0]
	names := make([]string, 0, len(mentions))
	for _, m := range mentions {
		names = append(names, m.Text)
	}

	template := a.Prompt
	if template == "" {
		template = `In the following passage, which character does the attribute %q with value %q belong to?

Passage: %q

Options: %s

Answer with ONLY the character's name.`
	}
	prompt := fmt.Sprintf(template,
		first.AttributeType, first.Value, first.TextEvidence, strings.Join(names, ", "))

	response, err := a.LLM.Generate(ctx, prompt)
	if err != nil {
		return "", false, fmt.Errorf("arbitration call failed: %w", err)
	}

	answer := strings.ToLower(strings.TrimSpace(response))
	for _, m := range mentions {
		if strings.Contains(answer, strings.ToLower(m.Text)) {
			return m.EntityID, true, nil
		}
	}
	return "", false, nil
}

// arbitrate wraps the configured Arbiter. An arbitrated decision keeps the
// CONFLICT status (downstream still knows the extractors disagreed) but
// carries the arbitration source and confidence.
func (r *CESPAttributeResolver) arbitrate(ctx context.Context, candidates []model.AttributeCandidate,
	mentions []model.EntityMention, text string) (Resolution, bool) {

	entityID, ok, err := r.Arbiter.Arbitrate(ctx, candidates, mentions, text)
	if err != nil {
		log.Printf("[resolve] arbitration unavailable, using heuristic fallback: %v", err)
		return Resolution{}, false
	}
	if !ok {
		return Resolution{}, false
	}
	return Resolution{
		Status:     model.StatusConflict,
		EntityID:   entityID,
		Confidence: ConfidenceArbitration,
		Source:     model.SourceArbitration,
		Notes:      []string{"conflict settled by arbitration"},
	}, true
}
