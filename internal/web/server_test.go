package web

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"pagebrief/internal/pipeline"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeRunner struct {
	calls   int
	lastURL string
	summary *pipeline.Summary
	err     error
}

func (f *fakeRunner) Run(ctx context.Context, rawURL string) (*pipeline.Summary, error) {
	f.calls++
	f.lastURL = rawURL

	if f.err != nil {
		return nil, f.err
	}

	return f.summary, nil
}

func newTestServer(t *testing.T, runner Runner) *Server {
	t.Helper()

	s, err := NewServer(runner, testLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	return s
}

func postForm(t *testing.T, s *Server, value string) *httptest.ResponseRecorder {
	t.Helper()

	form := url.Values{"url": {value}}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	return rec
}

func TestGetRendersForm(t *testing.T) {
	s := newTestServer(t, &fakeRunner{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}

	body := rec.Body.String()
	if !strings.Contains(body, "<form") || !strings.Contains(body, `name="url"`) {
		t.Fatalf("expected form markup, got: %s", body)
	}
}

func TestPostRendersSummary(t *testing.T) {
	runner := &fakeRunner{summary: &pipeline.Summary{
		URL:   "https://example.com",
		Title: "Example",
		Text:  "A brief greeting.",
	}}

	s := newTestServer(t, runner)
	rec := postForm(t, s, "https://example.com")

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}

	body := rec.Body.String()
	if !strings.Contains(body, "Example") || !strings.Contains(body, "A brief greeting.") {
		t.Fatalf("expected summary markup, got: %s", body)
	}

	if runner.lastURL != "https://example.com" {
		t.Fatalf("unexpected URL passed to runner: %q", runner.lastURL)
	}
}

func TestPostExtractsURLFromPastedText(t *testing.T) {
	runner := &fakeRunner{summary: &pipeline.Summary{Title: "T", Text: "S"}}

	s := newTestServer(t, runner)
	postForm(t, s, "check this out: https://example.com/article and tell me more")

	if runner.lastURL != "https://example.com/article" {
		t.Fatalf("unexpected URL passed to runner: %q", runner.lastURL)
	}
}

func TestPostRejectsInputWithoutURL(t *testing.T) {
	runner := &fakeRunner{}

	s := newTestServer(t, runner)
	rec := postForm(t, s, "not a url at all")

	if !strings.Contains(rec.Body.String(), "valid http(s) URL") {
		t.Fatalf("expected inline error, got: %s", rec.Body.String())
	}

	if runner.calls != 0 {
		t.Fatalf("expected runner not to be called, got %d calls", runner.calls)
	}
}

func TestPostRendersPipelineError(t *testing.T) {
	runner := &fakeRunner{err: &pipeline.StageError{Stage: "fetch", Err: errors.New("boom")}}

	s := newTestServer(t, runner)
	rec := postForm(t, s, "https://example.com")

	if !strings.Contains(rec.Body.String(), "Could not generate summary") {
		t.Fatalf("expected inline error, got: %s", rec.Body.String())
	}
}

func TestUnsupportedMethod(t *testing.T) {
	s := newTestServer(t, &fakeRunner{})

	req := httptest.NewRequest(http.MethodDelete, "/", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
}
