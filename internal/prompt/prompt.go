// Package prompt builds structured prompts and runs stateful chat
// exchanges over an llm.Invoker.
package prompt

import (
	"context"
	"fmt"
	"strings"

	"genaikit/internal/llm"
)

// Prepare builds a task prompt following the PREPARE framework:
// Prompt, Role, Explicit, Parameters, Ask, Rate, Emotion.
type Prepare struct {
	Task      string
	Role      string // defaults to "AI expert"
	Tone      string // defaults to "neutral"
	WordLimit int    // defaults to 300
}

// Build renders the framework sections around the task.
func (p Prepare) Build() string {
	role := p.Role
	if role == "" {
		role = "AI expert"
	}
	tone := p.Tone
	if tone == "" {
		tone = "neutral"
	}
	wordLimit := p.WordLimit
	if wordLimit <= 0 {
		wordLimit = 300
	}

	var b strings.Builder
	fmt.Fprintf(&b, "[P] Prompt: Please work on the following task:\n%s\n\n", p.Task)
	fmt.Fprintf(&b, "[R] Role: You are an %s with expertise in this area.\n\n", role)
	b.WriteString("[E] Explicit: Work through the task step by step and keep the reasoning easy to follow.\n\n")
	fmt.Fprintf(&b, "[P] Parameters: Answer in a %q tone. Limit the answer to at most %d words.\n\n", tone, wordLimit)
	b.WriteString("[A] Ask: If anything is unclear, say so and ask follow-up questions where needed.\n\n")
	b.WriteString("[R] Rate: Rate your own answer at the end on a scale of 0-10 and suggest improvements.\n\n")
	b.WriteString("[E] Emotion: Use an encouraging style that keeps the reader engaged.")
	return b.String()
}

// ChatPrompt formats a conversation: system instruction first, then
// the running history, then the new user input.
type ChatPrompt struct {
	System string
}

// Format assembles the full message list for one invocation.
func (p ChatPrompt) Format(history []llm.Message, userInput string) []llm.Message {
	messages := make([]llm.Message, 0, len(history)+2)
	if p.System != "" {
		messages = append(messages, llm.Message{Role: llm.RoleSystem, Content: p.System})
	}
	messages = append(messages, history...)
	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: userInput})
	return messages
}

// RunChat sends one user turn through the invoker and returns the
// reply text together with the extended history (user turn plus model
// reply appended).
func RunChat(ctx context.Context, invoker llm.Invoker, p ChatPrompt, history []llm.Message, userInput string) (string, []llm.Message, error) {
	resp, err := invoker.Invoke(ctx, p.Format(history, userInput))
	if err != nil {
		return "", history, fmt.Errorf("chat invocation failed: %w", err)
	}

	text := strings.TrimSpace(resp.Text)
	history = append(history,
		llm.Message{Role: llm.RoleUser, Content: userInput},
		llm.Message{Role: llm.RoleModel, Content: text},
	)
	return text, history, nil
}
