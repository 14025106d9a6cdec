package chat

import (
	"strings"

	"legal-backend/internal/llm"
)

// HistoryTurns is how many earlier messages are replayed to the model.
const HistoryTurns = 5

const assistantPreamble = "You are a legal assistant. Please respond to this query in a professional and helpful manner."

// BuildPrompt renders the earlier turns as a transcript followed by the new query.
func BuildPrompt(history []Message, query string) string {
	var b strings.Builder
	b.WriteString(assistantPreamble)
	b.WriteString("\n\nContext:\n")
	for _, m := range history {
		role := "Assistant"
		if m.IsUser {
			role = "User"
		}
		b.WriteString(role)
		b.WriteString(": ")
		b.WriteString(m.Content)
		b.WriteString("\n")
	}
	b.WriteString("\nUser Query: ")
	b.WriteString(query)
	return b.String()
}

// Prompt wraps BuildPrompt as a single-part text request for model.
func Prompt(model string, history []Message, query string) llm.Prompt {
	return llm.Prompt{Model: model, Parts: []llm.Part{llm.TextPart(BuildPrompt(history, query))}}
}
