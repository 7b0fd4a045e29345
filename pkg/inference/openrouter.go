package inference

import (
	"cmp"
	"context"
	"errors"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const openRouterBaseURL = "https://openrouter.ai/api/v1"

// OpenRouterInferencer implements Inferencer against OpenRouter's
// OpenAI-compatible chat completion endpoint.
type OpenRouterInferencer struct {
	client *openai.Client
	apiKey string
	model  string
}

// NewOpenRouterInferencer creates a new inferencer instance using the OpenAI
// client pointed at OpenRouter.
func NewOpenRouterInferencer(apiKey string, model string) *OpenRouterInferencer {
	if model == "" {
		model = "google/gemini-2.0-flash-lite-001"
	}
	client := openai.NewClient(
		option.WithBaseURL(openRouterBaseURL),
		option.WithAPIKey(apiKey),
	)
	return &OpenRouterInferencer{
		client: &client,
		apiKey: apiKey,
		model:  model,
	}
}

func (o *OpenRouterInferencer) ChangeBaseURL(baseURL string) {
	client := openai.NewClient(
		option.WithAPIKey(o.apiKey),
		option.WithBaseURL(baseURL),
	)
	o.client = &client
}

func (o *OpenRouterInferencer) SetModel(model string) {
	o.model = model
}

// Infer sends text to the OpenRouter chat completion endpoint and returns the output.
func (o *OpenRouterInferencer) Infer(ctx context.Context, params *openai.ChatCompletionNewParams, system, user string) (string, error) {
	if params == nil {
		params = new(openai.ChatCompletionNewParams)
	} else {
		params = &(*params)
	}
	params.Messages = promptMessages(system, user)
	return o.complete(ctx, params)
}

// Chat sends a conversation history and returns the next assistant message.
func (o *OpenRouterInferencer) Chat(ctx context.Context, params *openai.ChatCompletionNewParams, system string, turns []Turn) (string, error) {
	if params == nil {
		params = new(openai.ChatCompletionNewParams)
	} else {
		params = &(*params)
	}
	params.Messages = chatMessages(system, turns)
	return o.complete(ctx, params)
}

func (o *OpenRouterInferencer) complete(ctx context.Context, params *openai.ChatCompletionNewParams) (string, error) {
	params.Model = cmp.Or(params.Model, o.model)
	params.MaxCompletionTokens = openai.Int(cmp.Or(params.MaxCompletionTokens.Value, 4096))
	params.Temperature = openai.Float(cmp.Or(params.Temperature.Value, 0.3))
	params.TopP = openai.Float(cmp.Or(params.TopP.Value, 1.0))

	resp, err := o.client.Chat.Completions.New(ctx, *params)
	if err != nil {
		return "", fmt.Errorf("openrouter inference error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no choices returned")
	}
	if resp.Choices[0].Message.Content == "" {
		return "", errors.New("empty completion content")
	}

	return resp.Choices[0].Message.Content, nil
}
