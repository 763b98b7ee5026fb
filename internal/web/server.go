// Package web serves the summarizer form: a single page that accepts a
// URL and renders the resulting summary or an inline error.
package web

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"regexp"

	"mvdan.cc/xurls/v2"

	"pagebrief/internal/pipeline"
)

//go:embed index.html.tmpl
var templateFS embed.FS

// Runner executes a single fetch → clean → summarize run.
type Runner interface {
	Run(ctx context.Context, rawURL string) (*pipeline.Summary, error)
}

type Server struct {
	runner Runner
	tmpl   *template.Template
	urlRe  *regexp.Regexp
	log    *slog.Logger
}

func NewServer(runner Runner, log *slog.Logger) (*Server, error) {
	tmpl, err := template.ParseFS(templateFS, "index.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse template: %w", err)
	}

	urlRe, err := xurls.StrictMatchingScheme("https?://")
	if err != nil {
		return nil, fmt.Errorf("create regexp: %w", err)
	}

	return &Server{
		runner: runner,
		tmpl:   tmpl,
		urlRe:  urlRe,
		log:    log,
	}, nil
}

// Handler returns the root handler for the form.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)

	return mux
}

type pageData struct {
	URL     string
	Title   string
	Summary string
	Error   string
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	switch r.Method {
	case http.MethodGet:
		s.render(w, r, pageData{})
	case http.MethodPost:
		s.handleSubmit(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	input := r.FormValue("url")
	data := pageData{URL: input}

	pageURL := s.urlRe.FindString(input)
	if pageURL == "" {
		data.Error = "Please enter a valid http(s) URL."
		s.render(w, r, data)

		return
	}
	data.URL = pageURL

	summary, err := s.runner.Run(ctx, pageURL)
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to summarize page",
			"error", err,
			"url", pageURL)

		data.Error = fmt.Sprintf("Could not generate summary: %v", err)
		s.render(w, r, data)

		return
	}

	data.Title = summary.Title
	data.Summary = summary.Text
	s.render(w, r, data)
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	if err := s.tmpl.Execute(w, data); err != nil {
		s.log.ErrorContext(r.Context(), "Failed to render template",
			"error", err)
	}
}
