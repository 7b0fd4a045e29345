package inference

import (
	"context"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/packages/param"
)

// Turn is one prior exchange in a conversation. Role is "user" or
// "assistant".
type Turn struct {
	Role    string
	Content string
}

// Inferencer defines an interface for running model inference.
type Inferencer interface {
	// Infer sends a single system+user prompt pair and returns the completion text.
	Infer(ctx context.Context, params *openai.ChatCompletionNewParams, system, user string) (string, error)
	// Chat sends a system prompt plus conversation history and returns the
	// next assistant message.
	Chat(ctx context.Context, params *openai.ChatCompletionNewParams, system string, turns []Turn) (string, error)
}

func systemMessage(content string) openai.ChatCompletionMessageParamUnion {
	return openai.ChatCompletionMessageParamUnion{
		OfSystem: &openai.ChatCompletionSystemMessageParam{
			Role: "system",
			Content: openai.ChatCompletionSystemMessageParamContentUnion{
				OfString: param.Opt[string]{Value: content},
			},
		},
	}
}

func userMessage(content string) openai.ChatCompletionMessageParamUnion {
	return openai.ChatCompletionMessageParamUnion{
		OfUser: &openai.ChatCompletionUserMessageParam{
			Role: "user",
			Content: openai.ChatCompletionUserMessageParamContentUnion{
				OfString: param.Opt[string]{Value: content},
			},
		},
	}
}

func assistantMessage(content string) openai.ChatCompletionMessageParamUnion {
	return openai.ChatCompletionMessageParamUnion{
		OfAssistant: &openai.ChatCompletionAssistantMessageParam{
			Role: "assistant",
			Content: openai.ChatCompletionAssistantMessageParamContentUnion{
				OfString: param.Opt[string]{Value: content},
			},
		},
	}
}

func promptMessages(system, user string) []openai.ChatCompletionMessageParamUnion {
	return []openai.ChatCompletionMessageParamUnion{
		systemMessage(system),
		userMessage(user),
	}
}

func chatMessages(system string, turns []Turn) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(turns)+1)
	out = append(out, systemMessage(system))
	for _, t := range turns {
		if t.Role == "assistant" {
			out = append(out, assistantMessage(t.Content))
		} else {
			out = append(out, userMessage(t.Content))
		}
	}
	return out
}
