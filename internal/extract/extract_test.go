package extract

import (
	"strings"
	"testing"
)

func TestFromHTML_SelectorPrecedence(t *testing.T) {
	html := `<html><body>
		<p>This stray paragraph sits outside every content container on the page.</p>
		<div class="article-body">
			<p>The first real paragraph of the article carries enough words to qualify.</p>
			<p>The second real paragraph also carries enough words to qualify here.</p>
		</div>
	</body></html>`

	page, err := FromHTML([]byte(html), "https://example.com/story")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page.Paragraphs) != 2 {
		t.Fatalf("expected 2 paragraphs, got %d: %v", len(page.Paragraphs), page.Paragraphs)
	}
	for _, p := range page.Paragraphs {
		if strings.Contains(p, "stray") {
			t.Fatalf("paragraph outside the matched selector leaked in: %q", p)
		}
	}
}

func TestFromHTML_KeywordFilter(t *testing.T) {
	html := `<html><body><article>
		<p>Sponsored content here, more than five words in total for sure.</p>
		<p>An actual news paragraph with plenty of words that should survive filtering.</p>
	</article></body></html>`

	page, err := FromHTML([]byte(html), "https://example.com/a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page.Paragraphs) != 1 {
		t.Fatalf("expected 1 paragraph, got %d", len(page.Paragraphs))
	}
	if strings.Contains(strings.ToLower(page.Paragraphs[0]), "sponsored") {
		t.Fatalf("sponsored paragraph was not filtered")
	}
}

func TestFromHTML_ShortParagraphFilter(t *testing.T) {
	html := `<html><body><main>
		<p>Too short to keep.</p>
		<p>This longer paragraph easily clears the five word threshold applied here.</p>
	</main></body></html>`

	page, err := FromHTML([]byte(html), "https://example.com/a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page.Paragraphs) != 1 {
		t.Fatalf("expected 1 paragraph, got %d: %v", len(page.Paragraphs), page.Paragraphs)
	}
}

func TestFromHTML_FallbackUsesStricterThreshold(t *testing.T) {
	// No content selector matches, so the bare-paragraph fallback applies
	// with its >10 word threshold.
	html := `<html><body>
		<p>Exactly ten words are not enough for the fallback scan.</p>
		<p>Eleven words however are just enough for the stricter fallback scan here.</p>
	</body></html>`

	page, err := FromHTML([]byte(html), "https://example.com/a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page.Paragraphs) != 1 {
		t.Fatalf("expected 1 fallback paragraph, got %d: %v", len(page.Paragraphs), page.Paragraphs)
	}
	if !strings.HasPrefix(page.Paragraphs[0], "Eleven") {
		t.Fatalf("wrong paragraph survived: %q", page.Paragraphs[0])
	}
}

func TestFromHTML_LeadImageFromMeta(t *testing.T) {
	html := `<html><head>
		<meta property="og:image" content="/img/lead.jpg">
	</head><body>
		<img src="/img/other.png">
		<article><p>Body paragraph with more than five words to keep extraction happy.</p></article>
	</body></html>`

	page, err := FromHTML([]byte(html), "https://example.com/news/story")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.Image != "https://example.com/img/lead.jpg" {
		t.Fatalf("expected absolutized og:image, got %q", page.Image)
	}
}

func TestFromHTML_LeadImageFallsBackToFirstImg(t *testing.T) {
	html := `<html><body>
		<img src="pic.png">
		<article><p>Body paragraph with more than five words to keep extraction happy.</p></article>
	</body></html>`

	page, err := FromHTML([]byte(html), "https://example.com/news/story")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.Image != "https://example.com/news/pic.png" {
		t.Fatalf("expected image resolved against page URL, got %q", page.Image)
	}
}

func TestFromHTML_NoContent(t *testing.T) {
	page, err := FromHTML([]byte("<html><body><div>nothing here</div></body></html>"), "https://example.com/x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page.Paragraphs) != 0 {
		t.Fatalf("expected no paragraphs, got %v", page.Paragraphs)
	}
	if page.Image != "" {
		t.Fatalf("expected no image, got %q", page.Image)
	}
}
