package schema

type TrueFalseSet struct {
	Questions []TrueFalseQuestion `json:"questions" jsonschema_description:"True/false questions derived from the source text"`
}

type TrueFalseQuestion struct {
	Question  string `json:"question" jsonschema_description:"A specific statement to be judged true or false"`
	Answer    bool   `json:"answer" jsonschema_description:"Whether the statement is true"`
	Rationale string `json:"rationale" jsonschema_description:"Explanation of why the answer is correct"`
	Citation  string `json:"citation,omitempty" jsonschema_description:"Sentence from the source text the question is based on"`
}

type MultipleChoiceSet struct {
	Questions []MultipleChoiceQuestion `json:"questions" jsonschema_description:"Multiple choice questions derived from the source text"`
}

type MultipleChoiceQuestion struct {
	Question  string   `json:"question" jsonschema_description:"A specific question about the source text"`
	Choices   []string `json:"choices" jsonschema_description:"Four potential answers"`
	Answer    string   `json:"answer" jsonschema_description:"The correct choice, verbatim from choices"`
	Rationale string   `json:"rationale" jsonschema_description:"Explanation of why the answer is correct"`
	Citation  string   `json:"citation,omitempty" jsonschema_description:"Sentence from the source text the question is based on"`
}

type FillInBlankSet struct {
	Questions []FillInBlankQuestion `json:"questions" jsonschema_description:"Fill-in-the-blank questions derived from the source text"`
}

type FillInBlankQuestion struct {
	Question  string `json:"question" jsonschema_description:"Excerpt from the source text with the key term replaced by ___"`
	Answer    string `json:"answer" jsonschema_description:"The term that fills the blank"`
	Rationale string `json:"rationale" jsonschema_description:"Explanation of why the answer is correct"`
	Citation  string `json:"citation,omitempty" jsonschema_description:"Sentence from the source text the question is based on"`
}
