package script

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
)

const (
	claudeModel        = "claude-sonnet-4-5-20250929"
	claudeMaxAttempts  = 3
	claudeInitialDelay = 1 * time.Second
)

// claudeCompleter calls the Anthropic messages API as an alternate
// dialogue model backend.
type claudeCompleter struct {
	client anthropic.Client
}

func newClaudeGenerator() *generator {
	return &generator{backend: &claudeCompleter{client: anthropic.NewClient()}}
}

func (c *claudeCompleter) name() string { return "Claude" }

func (c *claudeCompleter) complete(ctx context.Context, system, user string) (string, error) {
	return completeWithBackoff(ctx, claudeMaxAttempts, claudeInitialDelay, func() (string, error) {
		message, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
			Model:       anthropic.Model(claudeModel),
			MaxTokens:   maxTokens,
			Temperature: anthropic.Float(temperature),
			System: []anthropic.TextBlockParam{
				{Text: system},
			},
			Messages: []anthropic.MessageParam{
				anthropic.NewUserMessage(anthropic.NewTextBlock(user)),
			},
		})
		if err != nil {
			return "", err
		}

		text := extractText(message)
		if text == "" {
			return "", fmt.Errorf("empty response")
		}
		return text, nil
	})
}

// completeWithBackoff retries a completion call with doubling delays.
// API errors and empty replies are transient here; malformed JSON is not
// retried because parsing happens after the backend returns.
func completeWithBackoff(ctx context.Context, attempts int, delay time.Duration, fn func() (string, error)) (string, error) {
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}

		text, err := fn()
		if err == nil {
			return text, nil
		}
		lastErr = fmt.Errorf("attempt %d/%d: %w", attempt, attempts, err)

		if attempt < attempts {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(delay):
			}
			delay *= 2
		}
	}
	return "", lastErr
}

func extractText(msg *anthropic.Message) string {
	var parts []string
	for _, block := range msg.Content {
		if tb, ok := block.AsAny().(anthropic.TextBlock); ok {
			parts = append(parts, tb.Text)
		}
	}
	return strings.Join(parts, "")
}
