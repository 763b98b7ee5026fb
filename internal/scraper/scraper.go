package scraper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"pagebrief/internal/backoff"
)

const (
	defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
		"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/127.0.0.0 Safari/537.36"

	defaultTimeout    = 30 * time.Second
	defaultMaxRetries = 3
	defaultRetryDelay = time.Second

	// Body reads are capped so a pathological page cannot exhaust memory.
	maxBodyBytes = 10 << 20
)

// DefaultRemoveElements returns the tag names stripped from pages
// before text extraction.
func DefaultRemoveElements() []string {
	return []string{"script", "style", "nav", "footer", "header", "aside", "form"}
}

// Config holds per-run scrape settings.
type Config struct {
	Timeout        time.Duration
	MaxRetries     int
	RetryDelay     time.Duration
	UserAgent      string
	RemoveElements []string
}

// DefaultConfig returns the standard scrape settings.
func DefaultConfig() Config {
	return Config{
		Timeout:        defaultTimeout,
		MaxRetries:     defaultMaxRetries,
		RetryDelay:     defaultRetryDelay,
		UserAgent:      defaultUserAgent,
		RemoveElements: DefaultRemoveElements(),
	}
}

func (c Config) validate() error {
	if c.Timeout <= 0 {
		return errors.New("timeout must be positive")
	}
	if c.MaxRetries < 0 {
		return errors.New("max retries must be non-negative")
	}
	if c.RetryDelay < 0 {
		return errors.New("retry delay must be non-negative")
	}
	if strings.TrimSpace(c.UserAgent) == "" {
		return errors.New("user agent is empty")
	}

	return nil
}

// Page is a fetched web page. Title and Text are filled in by the
// cleaner after the raw HTML is retrieved.
type Page struct {
	URL     string
	RawHTML string
	Title   string
	Text    string
}

// Scraper retrieves raw HTML for absolute http(s) URLs, retrying
// transient failures with exponential backoff.
type Scraper struct {
	cfg    Config
	client *http.Client
	policy backoff.Policy
	log    *slog.Logger
}

func New(cfg Config, log *slog.Logger) (*Scraper, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &Scraper{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		policy: backoff.Policy{MaxRetries: cfg.MaxRetries, Delay: cfg.RetryDelay},
		log:    log,
	}, nil
}

// Fetch retrieves the page at rawURL. URLs without an absolute http(s)
// scheme fail immediately with *InvalidURLError and no network I/O.
// Network errors, timeouts, and non-2xx statuses are retried up to
// MaxRetries times; exhaustion yields *FetchError.
func (s *Scraper) Fetch(ctx context.Context, rawURL string) (*Page, error) {
	pageURL, err := validateURL(rawURL)
	if err != nil {
		return nil, err
	}

	maxAttempts := s.cfg.MaxRetries + 1

	var lastErr error
	attempts := 0
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		attempts = attempt

		html, getErr := s.get(ctx, pageURL)
		if getErr == nil {
			return &Page{URL: pageURL, RawHTML: html}, nil
		}
		lastErr = getErr

		s.log.WarnContext(ctx, "Fetch attempt failed",
			"error", getErr,
			"url", pageURL,
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

	return nil, &FetchError{URL: pageURL, Attempts: attempts, Err: lastErr}
}

func validateURL(rawURL string) (string, error) {
	trimmed := strings.TrimSpace(rawURL)
	if trimmed == "" {
		return "", &InvalidURLError{URL: rawURL, Reason: "URL is empty"}
	}

	u, err := url.Parse(trimmed)
	if err != nil {
		return "", &InvalidURLError{URL: trimmed, Reason: err.Error()}
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return "", &InvalidURLError{URL: trimmed, Reason: fmt.Sprintf("unsupported scheme %q", u.Scheme)}
	}

	if u.Host == "" {
		return "", &InvalidURLError{URL: trimmed, Reason: "URL has no host"}
	}

	return u.String(), nil
}

func (s *Scraper) get(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", s.cfg.UserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("do request: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			s.log.ErrorContext(ctx, "Failed to close response body",
				"error", closeErr,
				"url", pageURL)
		}
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", fmt.Errorf("do request: unexpected status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}

	return string(body), nil
}
