package llm

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// openAISystemPrompt frames every extraction call against the chat API.
const openAISystemPrompt = "You are an expert at extracting job posting information from social media posts. " +
	"Extract structured information accurately and return it as valid JSON."

// OpenAIClient implements Client for OpenAI-compatible chat backends.
type OpenAIClient struct {
	client *openai.Client
	model  string
}

// NewOpenAIClient creates an OpenAI-backed generation client.
func NewOpenAIClient(apiKey, model string) (*OpenAIClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if model == "" {
		return nil, fmt.Errorf("model name is required")
	}

	return &OpenAIClient{
		client: openai.NewClient(apiKey),
		model:  model,
	}, nil
}

// GenerateJSON generates a single JSON object reply for the prompt.
// TopK has no equivalent in the chat API and is ignored.
func (c *OpenAIClient) GenerateJSON(ctx context.Context, prompt string, params Params) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: openAISystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: params.Temperature,
		TopP:        params.TopP,
		MaxTokens:   int(params.MaxOutputTokens),
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}
	content := resp.Choices[0].Message.Content
	if content == "" {
		return "", fmt.Errorf("empty response content")
	}

	return CleanJSONBlock(content), nil
}

// Model returns the configured model name.
func (c *OpenAIClient) Model() string {
	return c.model
}

// Close releases resources held by the client.
func (c *OpenAIClient) Close() error {
	return nil
}
