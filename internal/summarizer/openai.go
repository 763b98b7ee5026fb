package summarizer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"pagebrief/internal/backoff"
)

const systemPrompt = `You are an assistant that analyzes the contents of a web page
and provides a short summary, ignoring text that might be navigation related.
Respond in markdown.`

// OpenAISummarizer calls OpenAI's Chat Completions API to produce summaries.
type OpenAISummarizer struct {
	cfg    Config
	client openai.Client
	policy backoff.Policy
	log    *slog.Logger

	// create performs a single generation request; tests substitute it.
	create func(ctx context.Context, prompt string) (string, error)
}

// NewOpenAISummarizer builds a new summarizer instance with the given
// API credential.
func NewOpenAISummarizer(apiKey string, cfg Config, log *slog.Logger) (*OpenAISummarizer, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("API key is empty")
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	s := &OpenAISummarizer{
		cfg:    cfg,
		client: openai.NewClient(option.WithAPIKey(apiKey)),
		policy: backoff.Policy{MaxRetries: cfg.MaxRetries, Delay: cfg.RetryDelay},
		log:    log,
	}
	s.create = s.createChatCompletion

	return s, nil
}

// Summarize produces a short summary of the cleaned page text. Empty
// text short-circuits with NoContentSummary and no API call. Transient
// API failures are retried with exponential backoff; credential and
// validation failures are surfaced immediately.
func (s *OpenAISummarizer) Summarize(ctx context.Context, input Input) (string, error) {
	text := strings.TrimSpace(input.Text)
	if text == "" {
		return NoContentSummary, nil
	}

	prompt := buildPrompt(input.Title, text, input.SourceURL)

	maxAttempts := s.cfg.MaxRetries + 1

	var lastErr error
	attempts := 0
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		attempts = attempt

		summary, err := s.create(ctx, prompt)
		if err == nil {
			summary = strings.TrimSpace(summary)
			if summary == "" {
				return "", &SummarizationError{Attempts: attempts, Err: errors.New("completion is empty")}
			}

			return summary, nil
		}
		lastErr = err

		if !retryable(err) {
			return "", &SummarizationError{Attempts: attempts, Err: err}
		}

		s.log.WarnContext(ctx, "Summarization attempt failed",
			"error", err,
			"model", s.cfg.Model,
			"attempt", attempt,
			"maxAttempts", maxAttempts)

		if attempt == maxAttempts {
			break
		}

		if waitErr := s.policy.Wait(ctx, attempt); waitErr != nil {
			lastErr = waitErr
			break
		}
	}

	return "", &SummarizationError{Attempts: attempts, Err: lastErr}
}

func (s *OpenAISummarizer) createChatCompletion(ctx context.Context, prompt string) (string, error) {
	resp, err := s.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(s.cfg.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(prompt),
		},
		MaxCompletionTokens: openai.Int(s.cfg.MaxOutputTokens),
		Temperature:         openai.Float(s.cfg.Temperature),
	})
	if err != nil {
		return "", fmt.Errorf("do request: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("response has no choices")
	}

	return resp.Choices[0].Message.Content, nil
}

func buildPrompt(title, text, sourceURL string) string {
	b := strings.Builder{}

	fmt.Fprintf(&b, "You are looking at a web page titled %q.\n\n", title)
	b.WriteString("The contents of this page are as follows; please provide a short summary ")
	b.WriteString("of this page in markdown. If it includes news or announcements, summarize these too.\n\n")

	if sourceURL = strings.TrimSpace(sourceURL); sourceURL != "" {
		b.WriteString("Source:\n")
		b.WriteString(sourceURL)
		b.WriteString("\n\n")
	}

	b.WriteString(text)

	return b.String()
}

// retryable reports whether a generation failure is transient. API
// errors carry a status code: rate limits, timeouts, and server errors
// are retried while credential and validation failures are not.
// Transport-level failures carry no status and are treated as transient.
func retryable(err error) bool {
	var apiErr *openai.Error
	if !errors.As(err, &apiErr) {
		return true
	}

	switch {
	case apiErr.StatusCode == http.StatusTooManyRequests:
		return true
	case apiErr.StatusCode == http.StatusRequestTimeout:
		return true
	case apiErr.StatusCode >= http.StatusInternalServerError:
		return true
	default:
		return false
	}
}
