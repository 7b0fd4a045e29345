package schema

import (
	"github.com/invopop/jsonschema"
	"github.com/openai/openai-go/v3"
)

func generateSchema[T any]() any {
	r := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	return r.Reflect(v)
}

var (
	TrueFalseSchema      = generateSchema[TrueFalseSet]()
	MultipleChoiceSchema = generateSchema[MultipleChoiceSet]()
	FillInBlankSchema    = generateSchema[FillInBlankSet]()
	FlashcardSchema      = generateSchema[CardSet]()
	KeyTermSchema        = generateSchema[KeyTermSet]()
	EvaluationSchema     = generateSchema[Evaluation]()
	ChatSummarySchema    = generateSchema[ChatSummary]()
)

func responseFormat(name, description string, schema any) openai.ChatCompletionNewParamsResponseFormatUnion {
	p := openai.ResponseFormatJSONSchemaJSONSchemaParam{
		Name:        name,
		Description: openai.String(description),
		Schema:      schema,
		Strict:      openai.Bool(true),
	}
	return openai.ChatCompletionNewParamsResponseFormatUnion{
		OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{JSONSchema: p},
	}
}

func TrueFalseResponseFormat() openai.ChatCompletionNewParamsResponseFormatUnion {
	return responseFormat("true_false_questions", "True/false questions synthesized from the source text", TrueFalseSchema)
}

func MultipleChoiceResponseFormat() openai.ChatCompletionNewParamsResponseFormatUnion {
	return responseFormat("multiple_choice_questions", "Multiple choice questions synthesized from the source text", MultipleChoiceSchema)
}

func FillInBlankResponseFormat() openai.ChatCompletionNewParamsResponseFormatUnion {
	return responseFormat("fill_in_blank_questions", "Fill-in-the-blank questions synthesized from the source text", FillInBlankSchema)
}

func FlashcardResponseFormat() openai.ChatCompletionNewParamsResponseFormatUnion {
	return responseFormat("flashcards", "Flashcards extracted from the source text", FlashcardSchema)
}

func KeyTermResponseFormat() openai.ChatCompletionNewParamsResponseFormatUnion {
	return responseFormat("key_terms", "Key terms extracted from the source text", KeyTermSchema)
}

func EvaluationResponseFormat() openai.ChatCompletionNewParamsResponseFormatUnion {
	return responseFormat("feynman_evaluation", "Scores and feedback for a self-explanation", EvaluationSchema)
}

func ChatSummaryResponseFormat() openai.ChatCompletionNewParamsResponseFormatUnion {
	return responseFormat("chat_summary", "Summary of a tutoring conversation", ChatSummarySchema)
}
