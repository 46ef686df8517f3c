package openai

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Message is one chat message sent to the model.
type Message struct {
	Role    string
	Content string
}

// maxContentRunes bounds how much document text is sent per request.
const maxContentRunes = 60000

const systemPrompt = `You are a document analyst. You will be given the full text of one document.
Respond with a single JSON object and nothing else, using exactly these keys:
{
  "executive_summary": "3-6 sentence summary of the document",
  "domain": "the document's subject area, e.g. economics, physics, philosophy",
  "key_arguments": ["the main arguments or claims, in order"],
  "key_models_or_frameworks": [{"name": "...", "description": "..."}],
  "key_variables_or_concepts": [{"term": "...", "explanation": "..."}]
}
Every field is required. Arrays may be empty only for key_models_or_frameworks
and key_variables_or_concepts. Do not add any other keys.`

// BuildPrompt assembles the chat messages for one document.
func BuildPrompt(filename, content string) []Message {
	return []Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: fmt.Sprintf("Document: %s\n\n%s", filename, truncateRunes(content, maxContentRunes))},
	}
}

// buildFixPrompt asks the model to repair malformed JSON output.
func buildFixPrompt(raw []byte) []Message {
	return []Message{
		{Role: "system", Content: "The following was supposed to be a single valid JSON object describing a document. Fix it so it parses and keeps the same content. Output JSON only."},
		{Role: "user", Content: string(raw)},
	}
}

func truncateRunes(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	var b strings.Builder
	b.WriteString(string(runes[:max]))
	b.WriteString("\n[truncated]")
	return b.String()
}
