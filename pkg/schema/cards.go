package schema

type CardSet struct {
	Cards []Flashcard `json:"cards" jsonschema_description:"Flashcards extracted from the source text"`
}

type Flashcard struct {
	Front string   `json:"front" jsonschema_description:"A term that is meaningful in the context of the text"`
	Back  CardBack `json:"back" jsonschema_description:"The reverse side of the flashcard"`
}

type CardBack struct {
	Definition  string `json:"definition" jsonschema_description:"A concise explanation of the term"`
	FillInBlank string `json:"fill_in_the_blank" jsonschema_description:"A short verbatim excerpt from the text with the term replaced by ___"`
}

type KeyTermSet struct {
	Terms []KeyTerm `json:"terms" jsonschema_description:"Important proper nouns and concepts from the source text"`
}

type KeyTerm struct {
	Term         string `json:"term" jsonschema_description:"The keyword as it appears in the text"`
	Significance string `json:"significance,omitempty" jsonschema_description:"One sentence on why the term matters in this context"`
}
