package script

import (
	"context"
	"fmt"

	"github.com/DannyChee1/Two-Host-AI-Newscast/internal/news"
)

// Sampling parameters for the dialogue model call.
const (
	temperature = 0.9
	maxTokens   = 4000
)

// GenerateOptions controls a single script generation run.
type GenerateOptions struct {
	TargetMinutes   int
	ProfanityFilter bool
}

// Generator produces a validated script from stories and a host pair.
type Generator interface {
	Generate(ctx context.Context, stories []news.Story, hosts HostPair, opts GenerateOptions) (*Script, *Report, error)
}

// NewGenerator creates a generator for the named model backend.
func NewGenerator(model string) (Generator, error) {
	switch model {
	case "openai":
		return newOpenAIGenerator(), nil
	case "claude":
		return newClaudeGenerator(), nil
	default:
		return nil, fmt.Errorf("unknown script model %q: choose openai or claude", model)
	}
}

// completer is the single blocking call to a dialogue model backend: it
// takes the instruction and data blocks and returns the raw reply text.
type completer interface {
	complete(ctx context.Context, system, user string) (string, error)
	name() string
}

// generator runs the shared flow around any backend: input checks, word
// budgeting, prompt composition, the model call, parsing, and validation.
// There is no retry loop here; a failed or malformed response surfaces
// immediately and the caller owns any retry policy.
type generator struct {
	backend completer
}

func (g *generator) Generate(ctx context.Context, stories []news.Story, hosts HostPair, opts GenerateOptions) (*Script, *Report, error) {
	if len(stories) < 1 {
		return nil, nil, inputErr("need at least 1 story to generate script")
	}

	targetWords := TargetWordCount(opts.TargetMinutes)
	systemPrompt := BuildSystemPrompt(PromptInputs{
		Hosts:           hosts,
		StoryCount:      len(stories),
		TargetMinutes:   opts.TargetMinutes,
		TargetWords:     targetWords,
		ProfanityFilter: opts.ProfanityFilter,
	})
	userPrompt := BuildUserPrompt(stories)

	reply, err := g.backend.complete(ctx, systemPrompt, userPrompt)
	if err != nil {
		return nil, nil, &GenerationError{
			Kind:    ErrKindModel,
			Message: fmt.Sprintf("%s API error", g.backend.name()),
			Err:     err,
		}
	}

	raw, err := ParseResponse(reply)
	if err != nil {
		return nil, nil, err
	}

	return Validate(raw, stories, targetWords)
}
