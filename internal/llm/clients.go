package llm

import (
	"context"
	"fmt"

	generativeAI "github.com/FACorreiaa/go-genai-sdk/lib"
	"github.com/sashabaranov/go-openai"
	"google.golang.org/genai"
)

// ChatCompleter abstracts the conversational completion provider used by the
// advice service in direct mode.
type ChatCompleter interface {
	Complete(ctx context.Context, systemPrompt, userMessage string) (string, error)
}

// ConditionsGenerator abstracts the generative provider used by the real-time
// conditions service in direct mode.
type ConditionsGenerator interface {
	GenerateResponse(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// OpenAICompleter adapts the OpenAI chat-completion API to ChatCompleter.
// Truncation parameters are fixed configuration, not caller-controlled.
type OpenAICompleter struct {
	client      *openai.Client
	model       string
	maxTokens   int
	temperature float32
}

func NewOpenAICompleter(apiKey string) *OpenAICompleter {
	return &OpenAICompleter{
		client:      openai.NewClient(apiKey),
		model:       openai.GPT3Dot5Turbo,
		maxTokens:   500,
		temperature: 0.7,
	}
}

func (o *OpenAICompleter) Complete(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userMessage},
		},
		MaxTokens:   o.maxTokens,
		Temperature: o.temperature,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// GeminiGenerator adapts the generativeAI LLM client to ConditionsGenerator.
type GeminiGenerator struct {
	client *generativeAI.LLMChatClient
}

func NewGeminiGenerator(ctx context.Context, apiKey string) (*GeminiGenerator, error) {
	client, err := generativeAI.NewLLMChatClient(ctx, apiKey)
	if err != nil {
		return nil, err
	}
	return &GeminiGenerator{client: client}, nil
}

func (g *GeminiGenerator) GenerateResponse(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	return g.client.GenerateResponse(ctx, prompt, config)
}

// ResponseText extracts the first candidate's text from a generation response.
func ResponseText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	for _, candidate := range resp.Candidates {
		if candidate.Content != nil && len(candidate.Content.Parts) > 0 {
			return candidate.Content.Parts[0].Text
		}
	}
	return ""
}
