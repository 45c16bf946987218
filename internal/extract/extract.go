package extract

import (
	"bytes"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Page is the extracted content of one article page.
type Page struct {
	// Paragraphs holds accepted body paragraphs in document order.
	Paragraphs []string
	// Image is the lead image URL, absolutized against the page URL.
	// Empty when the page declares no usable image.
	Image string
}

// contentSelectors is ordered from most to least specific. The first
// selector that yields any accepted paragraph wins.
var contentSelectors = []string{
	"div.article-main",
	"article .article-body",
	"article .story-body",
	"div.article-body",
	"div.article-content",
	"div.content",
	"div.post-content",
	"main",
	"article",
	`div[role="main"]`,
	".article-text",
	".story-content",
}

// unwantedKeywords marks boilerplate paragraphs; matched as
// case-insensitive substrings.
var unwantedKeywords = []string{
	"advertisement",
	"sponsored",
	"copyright",
	"related",
	"disclaimer",
}

// Word-count thresholds for accepting a paragraph. The bare-paragraph
// fallback is stricter because it scans the whole page.
const (
	minWordsSelector = 5
	minWordsFallback = 10
)

// FromHTML parses the page and returns its lead image and body paragraphs.
// An empty Paragraphs slice means no meaningful content was found; the
// caller decides whether that is worth another fetch attempt.
func FromHTML(input []byte, pageURL string) (Page, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(input))
	if err != nil {
		return Page{}, err
	}
	base, _ := url.Parse(pageURL)

	return Page{
		Paragraphs: bodyParagraphs(doc),
		Image:      leadImage(doc, base),
	}, nil
}

// leadImage prefers the social-preview meta tag over the first <img>.
func leadImage(doc *goquery.Document, base *url.URL) string {
	if content, ok := doc.Find(`meta[property="og:image"]`).First().Attr("content"); ok && strings.TrimSpace(content) != "" {
		return absolutize(base, content)
	}
	if src, ok := doc.Find("img").First().Attr("src"); ok && strings.TrimSpace(src) != "" {
		return absolutize(base, src)
	}
	return ""
}

func absolutize(base *url.URL, ref string) string {
	ref = strings.TrimSpace(ref)
	if base == nil {
		return ref
	}
	u, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return base.ResolveReference(u).String()
}

func bodyParagraphs(doc *goquery.Document) []string {
	for _, selector := range contentSelectors {
		var accepted []string
		doc.Find(selector).Each(func(_ int, block *goquery.Selection) {
			block.Find("p").Each(func(_ int, p *goquery.Selection) {
				if text := strings.TrimSpace(p.Text()); acceptParagraph(text, minWordsSelector) {
					accepted = append(accepted, text)
				}
			})
		})
		if len(accepted) > 0 {
			return accepted
		}
	}

	// Fallback: scan every paragraph with a stricter length threshold.
	var accepted []string
	doc.Find("p").Each(func(_ int, p *goquery.Selection) {
		if text := strings.TrimSpace(p.Text()); acceptParagraph(text, minWordsFallback) {
			accepted = append(accepted, text)
		}
	})
	return accepted
}

func acceptParagraph(text string, minWords int) bool {
	if text == "" || len(strings.Fields(text)) <= minWords {
		return false
	}
	lower := strings.ToLower(text)
	for _, kw := range unwantedKeywords {
		if strings.Contains(lower, kw) {
			return false
		}
	}
	return true
}
