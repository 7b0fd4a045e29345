package schema

// ChatSummary is the model's digest of a tutoring conversation.
type ChatSummary struct {
	Summary string   `json:"summary" jsonschema_description:"A short paragraph summarizing the conversation so far"`
	Topics  []string `json:"topics" jsonschema_description:"Topics the student asked about"`
}

// Turn is one exchange entry in a tutoring session. Role is "user" or
// "assistant".
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Session is a stored tutoring conversation, persisted across restarts.
type Session struct {
	ID        string `json:"id"`
	Turns     []Turn `json:"turns"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}
