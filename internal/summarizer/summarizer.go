package summarizer

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// NoContentSummary is returned without any API call when the cleaned
// page text is empty.
const NoContentSummary = "No content to summarize."

const (
	defaultModel           = "gpt-4o-mini"
	defaultMaxOutputTokens = 1000
	defaultTemperature     = 0.7
	defaultMaxRetries      = 3
	defaultRetryDelay      = time.Second
)

// Input describes the payload for a summary request.
type Input struct {
	// Title is the page title embedded in the prompt.
	Title string
	// Text contains the cleaned page text to summarize.
	Text string
	// SourceURL is optional metadata that helps the model reference the origin.
	SourceURL string
}

// Summarizer produces a single summary for a given input.
type Summarizer interface {
	Summarize(ctx context.Context, input Input) (string, error)
}

// Config holds per-run generation settings.
type Config struct {
	Model           string
	MaxOutputTokens int64
	Temperature     float64
	MaxRetries      int
	RetryDelay      time.Duration
}

// DefaultConfig returns the standard generation settings.
func DefaultConfig() Config {
	return Config{
		Model:           defaultModel,
		MaxOutputTokens: defaultMaxOutputTokens,
		Temperature:     defaultTemperature,
		MaxRetries:      defaultMaxRetries,
		RetryDelay:      defaultRetryDelay,
	}
}

func (c Config) validate() error {
	if c.Model == "" {
		return errors.New("model is empty")
	}
	if c.MaxOutputTokens <= 0 {
		return errors.New("max output tokens must be positive")
	}
	if c.Temperature < 0 || c.Temperature > 1 {
		return errors.New("temperature must be within [0, 1]")
	}
	if c.MaxRetries < 0 {
		return errors.New("max retries must be non-negative")
	}
	if c.RetryDelay < 0 {
		return errors.New("retry delay must be non-negative")
	}

	return nil
}

// SummarizationError reports a generation request that failed, either
// immediately for non-retryable causes or after exhausting retries.
type SummarizationError struct {
	Attempts int
	Err      error
}

func (e *SummarizationError) Error() string {
	return fmt.Sprintf("summarization failed after %d attempt(s): %v", e.Attempts, e.Err)
}

func (e *SummarizationError) Unwrap() error {
	return e.Err
}
