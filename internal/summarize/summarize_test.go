package summarize

import (
	"context"
	"errors"
	"strings"
	"testing"

	openai "github.com/sashabaranov/go-openai"
)

type capturingClient struct {
	lastReq openai.ChatCompletionRequest
	reply   string
}

func (c *capturingClient) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	c.lastReq = req
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{{
			Message: openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: c.reply},
		}},
	}, nil
}

type failingClient struct{ err error }

func (c *failingClient) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	return openai.ChatCompletionResponse{}, c.err
}

func TestSummarize_RequestShape(t *testing.T) {
	cc := &capturingClient{reply: "  **Introduction** fine summary  "}
	s := &Summarizer{Client: cc, Model: "test-model"}

	res := s.Summarize(context.Background(), "some article text")
	if res.Degraded {
		t.Fatalf("unexpected degrade: %v", res.Cause)
	}
	if res.Text != "**Introduction** fine summary" {
		t.Fatalf("expected trimmed reply, got %q", res.Text)
	}

	req := cc.lastReq
	if req.Model != "test-model" {
		t.Fatalf("unexpected model %q", req.Model)
	}
	if req.Temperature != 0.3 {
		t.Fatalf("unexpected temperature %v", req.Temperature)
	}
	if req.MaxTokens != DefaultMaxLength*2 {
		t.Fatalf("unexpected token budget %d", req.MaxTokens)
	}
	if len(req.Messages) != 2 || req.Messages[0].Content != systemMessage {
		t.Fatalf("unexpected messages: %+v", req.Messages)
	}
	user := req.Messages[1].Content
	for _, want := range []string{"Who, What, When, Where, Why, and How", "**Introduction**", "**Key Points**", "**Implications**", "**Conclusion**", "some article text"} {
		if !strings.Contains(user, want) {
			t.Fatalf("user prompt missing %q:\n%s", want, user)
		}
	}
}

func TestSummarize_DegradesOnError(t *testing.T) {
	cause := errors.New("boom")
	s := &Summarizer{Client: &failingClient{err: cause}, Model: "test-model"}

	res := s.Summarize(context.Background(), "text")
	if !res.Degraded {
		t.Fatalf("expected degraded result")
	}
	if !strings.HasPrefix(res.Text, "Error generating summary:") {
		t.Fatalf("expected visible error text, got %q", res.Text)
	}
	if !errors.Is(res.Cause, cause) {
		t.Fatalf("expected cause to be preserved, got %v", res.Cause)
	}
}

func TestSummarize_DegradesOnEmptyCompletion(t *testing.T) {
	s := &Summarizer{Client: &capturingClient{reply: "   "}, Model: "test-model"}

	res := s.Summarize(context.Background(), "text")
	if !res.Degraded || !errors.Is(res.Cause, ErrEmptyCompletion) {
		t.Fatalf("expected empty-completion degrade, got %+v", res)
	}
}
