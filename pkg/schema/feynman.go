package schema

// Evaluation is the grader's verdict on a Feynman-technique explanation.
// Scores are out of ten.
type Evaluation struct {
	Clarity      int    `json:"clarity" jsonschema_description:"How clearly the explanation reads, out of ten"`
	Accuracy     int    `json:"accuracy" jsonschema_description:"How faithful the explanation is to the source, out of ten"`
	Completeness int    `json:"completeness" jsonschema_description:"How much of the source material the explanation covers, out of ten"`
	Feedback     string `json:"feedback" jsonschema_description:"How the response could be improved, with specifics from the source"`

	// MissedTerms is filled in locally from a word diff against the source,
	// not by the model.
	MissedTerms []string `json:"missed_terms,omitempty" jsonschema:"-"`
}
