// Package pipeline composes the scraper, cleaner, and summarizer into
// a single fetch → clean → summarize run.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"pagebrief/internal/cleaner"
	"pagebrief/internal/scraper"
	"pagebrief/internal/summarizer"
)

// Fetcher retrieves raw HTML for a URL.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) (*scraper.Page, error)
}

// Summary is the terminal result of a run.
type Summary struct {
	URL   string
	Title string
	Text  string
}

// StageError wraps a component failure with the stage it occurred in.
// The underlying cause is propagated unchanged.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// Pipeline runs the three stages in sequence. It holds no state across
// invocations; concurrent Run calls are independent.
type Pipeline struct {
	fetcher        Fetcher
	summarizer     summarizer.Summarizer
	removeElements []string
	log            *slog.Logger
}

func New(
	fetcher Fetcher,
	s summarizer.Summarizer,
	removeElements []string,
	log *slog.Logger,
) *Pipeline {
	return &Pipeline{
		fetcher:        fetcher,
		summarizer:     s,
		removeElements: removeElements,
		log:            log,
	}
}

// Run fetches the page, cleans it, and produces a summary. Any stage
// failure aborts the run; no partial result is returned.
func (p *Pipeline) Run(ctx context.Context, rawURL string) (*Summary, error) {
	page, err := p.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return nil, &StageError{Stage: "fetch", Err: err}
	}

	page.Title, page.Text = cleaner.Clean(page.RawHTML, p.removeElements)

	title := page.Title
	if title == "" {
		title = page.URL
	}

	p.log.InfoContext(ctx, "Page is fetched and cleaned",
		"url", page.URL,
		"title", title,
		"textChars", len(page.Text))

	summaryText, err := p.summarizer.Summarize(ctx, summarizer.Input{
		Title:     title,
		Text:      page.Text,
		SourceURL: page.URL,
	})
	if err != nil {
		return nil, &StageError{Stage: "summarize", Err: err}
	}

	p.log.InfoContext(ctx, "Summary is generated",
		"url", page.URL,
		"summaryChars", len(summaryText))

	return &Summary{
		URL:   page.URL,
		Title: title,
		Text:  summaryText,
	}, nil
}
