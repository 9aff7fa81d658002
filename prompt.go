package linkex

import (
	"fmt"
	"strings"
)

// SystemInstruction frames every answer as grounded on extracted records.
const SystemInstruction = "You are a helpful assistant analyzing public professional profile data. " +
	"Answer based only on the context provided. If the answer is not in the context, say so."

// CondenseInstruction asks the model to rewrite a follow-up question so that
// it can be understood without the conversation.
const CondenseInstruction = "Given the conversation and a follow-up question, rephrase the follow-up " +
	"question to be a standalone question. Reply with the question only."

// BuildQAPrompt builds the user prompt containing retrieved context and the question.
func BuildQAPrompt(results []SearchResult, question string) string {
	var sb strings.Builder
	sb.WriteString("<context>\n")
	for i, r := range results {
		if r.Chunk == nil {
			continue
		}
		sb.WriteString("<chunk>\n")
		fmt.Fprintf(&sb, "<index>%d</index>\n", i+1)
		if r.Chunk.Metadata.SourceURL != "" {
			fmt.Fprintf(&sb, "<source>%s</source>\n", r.Chunk.Metadata.SourceURL)
		}
		fmt.Fprintf(&sb, "<content>%s</content>\n", r.Chunk.Content)
		sb.WriteString("</chunk>\n")
	}
	sb.WriteString("</context>\n\n")
	fmt.Fprintf(&sb, "Question: %s", question)
	return sb.String()
}

// BuildCondensePrompt builds the prompt that turns a follow-up into a
// standalone question using the earlier turns.
func BuildCondensePrompt(history []*Turn, question string) string {
	var sb strings.Builder
	sb.WriteString("<conversation>\n")
	for _, t := range history {
		fmt.Fprintf(&sb, "Human: %s\n", t.Question)
		fmt.Fprintf(&sb, "Assistant: %s\n", t.Answer)
	}
	sb.WriteString("</conversation>\n\n")
	fmt.Fprintf(&sb, "Follow-up question: %s\nStandalone question:", question)
	return sb.String()
}
