package normalize

import (
	"strings"
	"testing"
)

func TestText_CollapsesWhitespace(t *testing.T) {
	in := "  one\ttwo\n\nthree   four \r\n five  "
	got := Text(in)
	if got != "one two three four five" {
		t.Fatalf("unexpected result %q", got)
	}
}

func TestText_Empty(t *testing.T) {
	if got := Text("   \n\t "); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
}

func TestTruncateWords_UnderBudgetUnchanged(t *testing.T) {
	in := "a few words only"
	if got := TruncateWords(in, 10); got != in {
		t.Fatalf("expected unchanged, got %q", got)
	}
}

func TestTruncateWords_AppliesBudget(t *testing.T) {
	words := make([]string, 3000)
	for i := range words {
		words[i] = "w"
	}
	// Mix in newlines and runs of spaces before normalizing.
	raw := strings.Join(words[:1500], " ") + "\n\n  " + strings.Join(words[1500:], "   ")
	got := TruncateWords(Text(raw), DefaultWordBudget)
	if n := len(strings.Fields(got)); n != DefaultWordBudget {
		t.Fatalf("expected exactly %d words, got %d", DefaultWordBudget, n)
	}
	if strings.Contains(got, "  ") || strings.Contains(got, "\n") {
		t.Fatalf("whitespace not collapsed")
	}
}
