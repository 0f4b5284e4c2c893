package script

import (
	"context"
	"fmt"
	"os"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const openaiModel = openai.ChatModelGPT4o

// openaiCompleter calls the OpenAI chat completions API. This is the
// default dialogue model backend.
type openaiCompleter struct {
	client *openai.Client
}

func newOpenAIGenerator() *generator {
	client := openai.NewClient(option.WithAPIKey(os.Getenv("OPENAI_API_KEY")))
	return &generator{backend: &openaiCompleter{client: &client}}
}

func (c *openaiCompleter) name() string { return "OpenAI" }

func (c *openaiCompleter) complete(ctx context.Context, system, user string) (string, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:       openaiModel,
		Temperature: openai.Float(temperature),
		MaxTokens:   openai.Int(maxTokens),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}
	return resp.Choices[0].Message.Content, nil
}
