// Package dedupe removes exactly-repeated passages from a text through
// the completion endpoint. It is an independent stage: the default
// processing path does not run it, and its failure mode is always
// pass-through of the original text.
package dedupe

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"

	"newsbrief/internal/llm"
)

const systemMessage = "You are an expert in text deduplication and optimization."

// ErrEmptyCompletion indicates the model returned no usable text.
var ErrEmptyCompletion = errors.New("empty completion")

// Result carries the deduplicated text. When Degraded is set, Text is the
// input unchanged and Cause explains why deduplication was skipped.
type Result struct {
	Text     string
	Degraded bool
	Cause    error
}

// Deduplicator asks the model to drop redundant sentences and paragraphs
// while preserving content. Deduplication failure must never block the
// caller, so Dedupe degrades to returning the input verbatim.
type Deduplicator struct {
	Client llm.Client
	Model  string
	Logger zerolog.Logger
}

// Dedupe returns the deduplicated text, or the input unchanged on any
// failure. It never returns a Go error; see Result.
func (d *Deduplicator) Dedupe(ctx context.Context, text string) Result {
	req := openai.ChatCompletionRequest{
		Model: d.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemMessage},
			{Role: openai.ChatMessageRoleUser, Content: buildPrompt(text)},
		},
		Temperature: 0.3,
		MaxTokens:   len(text) * 2,
		TopP:        1.0,
	}

	resp, err := d.Client.CreateChatCompletion(ctx, req)
	if err != nil {
		d.Logger.Error().Err(err).Msg("deduplication failed, returning original text")
		return Result{Text: text, Degraded: true, Cause: err}
	}
	if len(resp.Choices) == 0 {
		return Result{Text: text, Degraded: true, Cause: ErrEmptyCompletion}
	}
	out := strings.TrimSpace(resp.Choices[0].Message.Content)
	if out == "" {
		return Result{Text: text, Degraded: true, Cause: ErrEmptyCompletion}
	}
	return Result{Text: out}
}

func buildPrompt(text string) string {
	var sb strings.Builder
	sb.WriteString("Review the given text and perform the following tasks:\n\n")
	sb.WriteString("### Deduplication Guidelines\n\n")
	sb.WriteString("1. **Redundancy Removal:**\n")
	sb.WriteString("- Identify and remove completely repeated sentences or paragraphs\n")
	sb.WriteString("- Keep the most concise and informative version of repeated content\n\n")
	sb.WriteString("2. **Content Preservation:**\n")
	sb.WriteString("- Maintain the original text's core meaning and key information\n")
	sb.WriteString("- Do NOT reduce the overall length of the text unnecessarily\n")
	sb.WriteString("- Only remove text that adds no additional value\n\n")
	sb.WriteString("3. **Formatting:**\n")
	sb.WriteString("- Preserve the original structure (paragraphs, headings)\n")
	sb.WriteString("- Ensure smooth flow and readability after removing redundancies\n\n")
	sb.WriteString("4. **Special Instructions:**\n")
	sb.WriteString("- If no significant redundancies are found, return the original text EXACTLY as provided\n")
	sb.WriteString("- Do not artificially shorten the text\n")
	sb.WriteString("- Maintain a neutral, factual, and professional tone\n")
	sb.WriteString("- Output must be in English\n\n")
	sb.WriteString("5. **Mandatory Structure:**\n")
	sb.WriteString("- Always create the output with two sections:\n")
	sb.WriteString("  - **Headline**: Provide an impactful summary headline that shows the most important information in it (20 - 50 words).\n")
	sb.WriteString("  - **Body**: Organize detailed paragraphs logically, retaining key information from the original text.\n")
	sb.WriteString("  - You must include both sections in the output.\n\n")
	sb.WriteString("### Input Text:\n")
	sb.WriteString(text)
	return sb.String()
}
