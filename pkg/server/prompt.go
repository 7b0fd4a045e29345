package server

import (
	"fmt"
	"strings"
)

const trueFalsePrompt = `Based on the context provided by the user, write as many true/false questions as possible in a structured JSON format.
Each question should have a "question" field and an "answer" field (true or false). Each question must also be specific.
Additionally, you should add a "rationale" field that explains the answer to the question.

Return only valid JSON with no explanations or additional text.`

const multipleChoicePrompt = `Based on the context provided by the user, write as many multiple choice questions as possible in a structured JSON format.
Each question should have a "question" field, a "choices" field of four potential answers, and an "answer" field which is one of the choices. Each question must also be specific.
Additionally, you should add a "rationale" field that explains the answer to the question.

Return only valid JSON with no explanations or additional text.`

const fillInBlankPrompt = `Based on the context provided by the user, write as many fill-in-the-blank questions as possible in a structured JSON format. Ensure that the items that are
being asked to be filled in are pertinent proper nouns that are important in the context. Each question should have a "question" field and an "answer" field. Each question must also be specific.
Additionally, you should add a "rationale" field that explains the answer to the question.

Return only valid JSON with no explanations or additional text.`

const cardsPrompt = `Based on the context provided by the user, write as many flashcard relationships as possible in a structured JSON format. Ensure that
each term chosen as the "front" of a flashcard is meaningful in the context of the text. For each flashcard, the "back" should be an object containing:
- "definition": a concise explanation of the term,
- "fill_in_the_blank": information from the text VERBATIM where the key term needs to be substituted in. Have short excerpts, and substitute the term with a "___".

DO NOT ADD ANY ADDITIONAL INFORMATION NOT PRESENTED IN THE TEXT.

Return the result as a JSON object with a "cards" array, where each card has the keys "front" and "back". Do not include any extra text outside of the JSON structure.`

const keyTermsPrompt = `Based on the context provided by the user, extract as many keywords relating to concepts discussed in the text as possible. These must be important proper nouns
considering the provided context. For each keyword, add a one-sentence "significance" field.

Return only valid JSON with no explanations or additional text.`

const feynmanPrompt = `You are an expert in the Feynman technique for active recall.
Evaluate the quality of a user's explanation based on the provided term, source text, and their response.
Out of ten, provide a clarity score, accuracy score, and completeness score. Additionally, add a "feedback" section
that describes how the response could be improved WITH SPECIFICS FROM THE SOURCE.

Return your evaluation as valid JSON only, with no additional commentary or explanation.`

const tutorPrompt = `You are a patient, encouraging tutor. Answer the student's questions using plain language,
check their understanding with a short follow-up question when appropriate, and keep answers grounded in the
material they are studying. Do not invent facts. Keep responses concise.`

const chatSummaryPrompt = `Summarize the following tutoring conversation. Capture what the student asked about,
what they struggled with, and what was explained. List the topics covered.

Return only valid JSON with no explanations or additional text.`

const transcriptPrompt = `Based on the following YouTube video transcript, clear up the text to be coherent while maintaining meaning.

Return only the text.`

// promptDirectives renders the optional request knobs (difficulty, item cap,
// citations) as extra instructions appended to the system prompt.
func promptDirectives(req *TextRequest) string {
	var b strings.Builder
	if req.Count > 0 {
		fmt.Fprintf(&b, "\nWrite at most %d items.", req.Count)
	}
	switch req.Difficulty {
	case "easy":
		b.WriteString("\nKeep the questions simple, testing recall of facts stated directly in the text.")
	case "medium":
		b.WriteString("\nMix recall questions with questions that require connecting two facts from the text.")
	case "hard":
		b.WriteString("\nPrefer questions that require synthesizing multiple parts of the text; avoid questions answerable from a single sentence.")
	}
	if req.Citations {
		b.WriteString("\nFor each item, add a \"citation\" field containing the sentence from the text it is based on, verbatim.")
	}
	return b.String()
}
