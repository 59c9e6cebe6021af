// Package analyst turns a finished report into a short natural-language
// assessment using an OpenAI chat model. The model only ever sees a
// compact digest, never the full AST output.
package analyst

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/YassineDev91/smart-contract-eval/internal/types"
)

const (
	defaultModel = "gpt-4o-mini"
	maxTokens    = 2048
)

// Client calls the chat completion API with a fixed report-review prompt.
type Client struct {
	*openai.Client
	Model string
}

// NewClient creates a client for the given API key. An empty model falls
// back to defaultModel at request time.
func NewClient(apiKey, model string) *Client {
	return &Client{Client: openai.NewClient(apiKey), Model: model}
}

// Summarize sends the report digest to the model and returns its JSON
// assessment.
func (c *Client) Summarize(ctx context.Context, r types.Report) (string, error) {
	model := c.Model
	if model == "" {
		model = defaultModel
	}

	req := openai.ChatCompletionRequest{
		Model: model,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: SystemPrompt()},
			{Role: openai.ChatMessageRoleUser, Content: UserPrompt(r)},
		},
	}
	// Reasoning models (o1/o3/o4/gpt-5*) take MaxCompletionTokens instead of MaxTokens
	if isReasoningModel(model) {
		req.MaxCompletionTokens = maxTokens
	} else {
		req.MaxTokens = maxTokens
	}

	resp, err := c.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("analyst: chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("analyst: empty response from %s", model)
	}
	return resp.Choices[0].Message.Content, nil
}

func isReasoningModel(model string) bool {
	for _, prefix := range []string{"o1", "o3", "o4", "gpt-5"} {
		if strings.HasPrefix(model, prefix) {
			return true
		}
	}
	return false
}
