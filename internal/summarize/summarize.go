package summarize

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"

	"newsbrief/internal/llm"
)

const systemMessage = "You are a news summarization expert."

// DefaultMaxLength is the upper word target for generated summaries.
// The token budget sent to the model is twice this value.
const DefaultMaxLength = 800

// ErrEmptyCompletion indicates the model returned no usable text.
var ErrEmptyCompletion = errors.New("empty completion")

// Result distinguishes a genuine summary from a degraded one. When
// Degraded is set, Text holds a visible error message rather than model
// prose, and Cause carries the underlying failure.
type Result struct {
	Text     string
	Degraded bool
	Cause    error
}

// Summarizer produces a structured prose summary of article text through
// the completion endpoint. Failures degrade to a visible error string
// instead of propagating; callers inspect Result.Degraded to tell the
// difference.
type Summarizer struct {
	Client llm.Client
	Model  string
	// MaxLength is the target summary ceiling in words. Zero means
	// DefaultMaxLength.
	MaxLength int
	Logger    zerolog.Logger
}

// Summarize sends the normalized article text to the model and returns
// its trimmed response. It never returns a Go error; see Result.
func (s *Summarizer) Summarize(ctx context.Context, text string) Result {
	maxLen := s.MaxLength
	if maxLen <= 0 {
		maxLen = DefaultMaxLength
	}

	req := openai.ChatCompletionRequest{
		Model: s.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemMessage},
			{Role: openai.ChatMessageRoleUser, Content: buildPrompt(text)},
		},
		Temperature: 0.3,
		MaxTokens:   maxLen * 2,
		TopP:        1.0,
	}

	resp, err := s.Client.CreateChatCompletion(ctx, req)
	if err != nil {
		s.Logger.Error().Err(err).Msg("summary generation failed")
		return Result{
			Text:     fmt.Sprintf("Error generating summary: %v", err),
			Degraded: true,
			Cause:    err,
		}
	}
	if len(resp.Choices) == 0 {
		s.Logger.Error().Msg("summary completion had no choices")
		return Result{
			Text:     "Error generating summary: empty completion",
			Degraded: true,
			Cause:    ErrEmptyCompletion,
		}
	}
	out := strings.TrimSpace(resp.Choices[0].Message.Content)
	if out == "" {
		return Result{
			Text:     "Error generating summary: empty completion",
			Degraded: true,
			Cause:    ErrEmptyCompletion,
		}
	}
	return Result{Text: out}
}

func buildPrompt(text string) string {
	var sb strings.Builder
	sb.WriteString("Generate a structured and precise summary of the given text, adhering to these guidelines:\n\n")
	sb.WriteString("1. **Content**: Cover key details: Who, What, When, Where, Why, and How. Include essential events, dates, and entities. Exclude irrelevant or redundant information.\n")
	sb.WriteString("2. **Structure**:\n")
	sb.WriteString("- **Introduction**: Brief topic overview.\n")
	sb.WriteString("- **Key Points**: Major events or findings.\n")
	sb.WriteString("- **Implications**: Broader impacts.\n")
	sb.WriteString("- **Conclusion**: Final wrap-up.\n")
	sb.WriteString("3. **Tone**: Neutral, factual, and professional. Use any provided quotes, stats, or references accurately.\n")
	sb.WriteString("4. **Length**: Keep summaries between 300 and 800 words for long texts or proportionally shorter for brief inputs.\n")
	sb.WriteString("\n### Input Text:\n")
	sb.WriteString(text)
	sb.WriteString("\n\n### Output Guidelines\n")
	sb.WriteString("- Begin each section with a bolded heading.\n")
	sb.WriteString("- Use bullet points or numbered lists for concise details where appropriate.\n")
	sb.WriteString("- Ensure the summary is logically structured, easy to read, and complete.")
	return sb.String()
}
