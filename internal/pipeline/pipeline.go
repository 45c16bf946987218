// Package pipeline sequences URL validation, fetching, extraction,
// normalization and summarization into one article-processing run. It is
// the single point where every lower-level failure is converted into a
// tagged Error; nothing below it escapes the boundary.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"newsbrief/internal/extract"
	"newsbrief/internal/fetch"
	"newsbrief/internal/normalize"
	"newsbrief/internal/summarize"
	"newsbrief/internal/validate"
)

// Defaults for the outer attempt loop.
const (
	DefaultMaxAttempts = 3
	DefaultRetryDelay  = 2 * time.Second
)

// Kind discriminates pipeline failures.
type Kind int

const (
	// KindInput means the input string held no usable URL.
	KindInput Kind = iota
	// KindTimeout means every fetch attempt timed out.
	KindTimeout
	// KindConnection means fetch attempts exhausted on transport errors.
	KindConnection
	// KindContent means the page was reachable but yielded no paragraphs.
	KindContent
	// KindInternal covers anything unexpected, recovered at the boundary.
	KindInternal
)

func (k Kind) String() string {
	switch k {
	case KindInput:
		return "input"
	case KindTimeout:
		return "timeout"
	case KindConnection:
		return "connection"
	case KindContent:
		return "content"
	case KindInternal:
		return "internal"
	}
	return "unknown"
}

// Error is the single failure shape crossing the pipeline boundary.
type Error struct {
	Kind    Kind
	Message string
	// Type optionally names the unexpected failure, set for KindInternal.
	Type string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Article is the pipeline's terminal artifact on success.
type Article struct {
	Summary string
	Link    string
	Image   string
	// Degraded marks a summary that is an error message rather than
	// model prose; the pipeline still counts such runs as successes.
	Degraded bool
}

// Fetcher retrieves raw HTML for a validated URL.
type Fetcher interface {
	Get(ctx context.Context, url string) ([]byte, error)
}

// Summarizer turns normalized text into a summary result.
type Summarizer interface {
	Summarize(ctx context.Context, text string) summarize.Result
}

// Processor runs the article pipeline. Components are injected so tests
// can substitute fakes; a zero MaxAttempts/RetryDelay/WordBudget falls
// back to the defaults.
type Processor struct {
	Fetcher    Fetcher
	Summarizer Summarizer
	// MaxAttempts is the outer fetch+extract attempt ceiling.
	MaxAttempts int
	// RetryDelay is the fixed wait between outer attempts.
	RetryDelay time.Duration
	// WordBudget truncates normalized text before summarization.
	WordBudget int
	Logger     zerolog.Logger

	// sleep is replaceable in tests.
	sleep func(time.Duration)
}

// outcome is the typed result of one fetch+extract attempt.
type outcome int

const (
	outcomeSuccess outcome = iota
	outcomeRetryEmpty
	outcomeRetryTransport
	outcomeFatal
)

// Process validates the input, runs the attempt loop, and summarizes.
// Every failure comes back as *Error; panics are recovered here so no
// failure mode can take the serving layer down.
func (p *Processor) Process(ctx context.Context, input string) (article Article, perr *Error) {
	defer func() {
		if r := recover(); r != nil {
			p.Logger.Error().Interface("panic", r).Msg("unexpected failure during article processing")
			perr = &Error{
				Kind:    KindInternal,
				Message: fmt.Sprintf("unexpected error during article processing: %v", r),
				Type:    fmt.Sprintf("%T", r),
			}
		}
	}()

	pageURL, err := validate.URL(input)
	if err != nil {
		p.Logger.Error().Err(err).Msg("input validation failed")
		return Article{}, &Error{Kind: KindInput, Message: err.Error()}
	}

	page, ferr := p.fetchContent(ctx, pageURL)
	if ferr != nil {
		return Article{}, ferr
	}

	text := normalize.TruncateWords(normalize.Text(strings.Join(page.Paragraphs, " ")), p.WordBudget)
	res := p.Summarizer.Summarize(ctx, text)
	if res.Degraded {
		p.Logger.Warn().Err(res.Cause).Str("url", pageURL).Msg("summary degraded to error text")
	}

	return Article{
		Summary:  res.Text,
		Link:     pageURL,
		Image:    page.Image,
		Degraded: res.Degraded,
	}, nil
}

// fetchContent runs the outer attempt loop: each attempt fetches the page
// and extracts paragraphs, producing one typed outcome. Empty extractions
// and transport errors are retried up to the ceiling with a fixed delay;
// hard HTTP failures stop immediately.
func (p *Processor) fetchContent(ctx context.Context, pageURL string) (extract.Page, *Error) {
	attempts := p.MaxAttempts
	if attempts <= 0 {
		attempts = DefaultMaxAttempts
	}
	delay := p.RetryDelay
	if delay <= 0 {
		delay = DefaultRetryDelay
	}

	var (
		lastOutcome outcome
		lastFetch   *fetch.Error
	)
	for attempt := 1; attempt <= attempts; attempt++ {
		page, out, ferr := p.tryAttempt(ctx, pageURL)
		switch out {
		case outcomeSuccess:
			return page, nil
		case outcomeFatal:
			p.Logger.Error().Err(ferr).Str("url", pageURL).Msg("fetch failed hard")
			return extract.Page{}, &Error{Kind: KindConnection, Message: ferr.Error()}
		}
		lastOutcome, lastFetch = out, ferr
		if attempt < attempts {
			p.Logger.Warn().Int("attempt", attempt).Str("url", pageURL).Msg("no content yet, retrying")
			p.doSleep(delay)
		}
	}

	switch {
	case lastOutcome == outcomeRetryEmpty:
		return extract.Page{}, &Error{Kind: KindContent, Message: "no meaningful text could be extracted from the article"}
	case lastFetch != nil && lastFetch.Kind == fetch.KindTimeout:
		return extract.Page{}, &Error{Kind: KindTimeout, Message: fmt.Sprintf("failed to fetch article after %d attempts: connection timeout", attempts)}
	default:
		msg := "transport failure"
		if lastFetch != nil {
			msg = lastFetch.Error()
		}
		return extract.Page{}, &Error{Kind: KindConnection, Message: fmt.Sprintf("failed to fetch article after %d attempts: %s", attempts, msg)}
	}
}

func (p *Processor) tryAttempt(ctx context.Context, pageURL string) (extract.Page, outcome, *fetch.Error) {
	body, err := p.Fetcher.Get(ctx, pageURL)
	if err != nil {
		var fe *fetch.Error
		if !errors.As(err, &fe) {
			fe = &fetch.Error{Kind: fetch.KindConnection, Err: err}
		}
		if fe.Kind == fetch.KindStatus {
			return extract.Page{}, outcomeFatal, fe
		}
		return extract.Page{}, outcomeRetryTransport, fe
	}

	page, err := extract.FromHTML(body, pageURL)
	if err != nil {
		return extract.Page{}, outcomeRetryEmpty, &fetch.Error{Kind: fetch.KindConnection, Err: err}
	}
	if len(page.Paragraphs) == 0 {
		return extract.Page{}, outcomeRetryEmpty, nil
	}
	return page, outcomeSuccess, nil
}

func (p *Processor) doSleep(d time.Duration) {
	if p.sleep != nil {
		p.sleep(d)
		return
	}
	time.Sleep(d)
}
