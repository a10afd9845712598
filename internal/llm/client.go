package llm

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/packages/param"
)

// Client is a CompletionClient backed by the OpenAI chat completions API.
type Client struct {
	client openai.Client
	model  string
}

// NewClient creates a new completion client. baseURL may be empty to use the
// default OpenAI endpoint.
func NewClient(apiKey, baseURL, model string) *Client {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if strings.TrimSpace(baseURL) != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	return &Client{
		client: openai.NewClient(opts...),
		model:  model,
	}
}

// Complete sends a chat completion request and returns the trimmed text of
// the first choice.
func (c *Client) Complete(ctx context.Context, messages []Message, params ChatParams) (string, error) {
	openaiMessages := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, msg := range messages {
		switch msg.Role {
		case RoleSystem:
			openaiMessages = append(openaiMessages, openai.SystemMessage(msg.Content))
		default:
			openaiMessages = append(openaiMessages, openai.UserMessage(msg.Content))
		}
	}

	req := openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(c.model),
		Messages:    openaiMessages,
		Temperature: param.NewOpt(params.Temperature),
	}
	if params.MaxTokens > 0 {
		req.MaxCompletionTokens = param.NewOpt(params.MaxTokens)
	}

	completion, err := c.client.Chat.Completions.New(ctx, req)
	if err != nil {
		return "", fmt.Errorf("chat completion request failed: %w", err)
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("no choices returned")
	}

	return strings.TrimSpace(completion.Choices[0].Message.Content), nil
}
