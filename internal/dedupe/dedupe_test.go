package dedupe

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

func TestDedupe_Success(t *testing.T) {
	cc := &capturingClient{reply: "**Headline**: h\n\n**Body**: b"}
	d := &Deduplicator{Client: cc, Model: "test-model"}

	res := d.Dedupe(context.Background(), "repeated text repeated text")
	if res.Degraded {
		t.Fatalf("unexpected degrade: %v", res.Cause)
	}
	if res.Text != "**Headline**: h\n\n**Body**: b" {
		t.Fatalf("unexpected text %q", res.Text)
	}
	user := cc.lastReq.Messages[1].Content
	for _, want := range []string{"**Headline**", "**Body**", "repeated text repeated text", "EXACTLY as provided"} {
		if !strings.Contains(user, want) {
			t.Fatalf("prompt missing %q", want)
		}
	}
	if cc.lastReq.MaxTokens != len("repeated text repeated text")*2 {
		t.Fatalf("unexpected token budget %d", cc.lastReq.MaxTokens)
	}
}

func TestDedupe_FallsBackToInputOnError(t *testing.T) {
	in := "original text, byte for byte"
	d := &Deduplicator{Client: &failingClient{err: errors.New("down")}, Model: "m"}

	res := d.Dedupe(context.Background(), in)
	if !res.Degraded {
		t.Fatalf("expected degraded result")
	}
	if res.Text != in {
		t.Fatalf("expected input returned unchanged, got %q", res.Text)
	}
}

func TestDedupe_FallsBackToInputOnEmptyReply(t *testing.T) {
	in := "some input"
	d := &Deduplicator{Client: &capturingClient{reply: "  "}, Model: "m"}

	res := d.Dedupe(context.Background(), in)
	if !res.Degraded || res.Text != in {
		t.Fatalf("expected pass-through, got %+v", res)
	}
	if !errors.Is(res.Cause, ErrEmptyCompletion) {
		t.Fatalf("expected ErrEmptyCompletion, got %v", res.Cause)
	}
}
