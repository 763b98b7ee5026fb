package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"pagebrief/internal/config"
	"pagebrief/internal/pipeline"
	"pagebrief/internal/scraper"
	"pagebrief/internal/summarizer"
	"pagebrief/internal/web"
)

const (
	readHeaderTimeout = 10 * time.Second
	writeTimeout      = 5 * time.Minute
	shutdownTimeout   = 10 * time.Second
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(log)

	start := time.Now()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		log.ErrorContext(ctx, "Failed to load config",
			"error", err)

		return
	}

	if strings.TrimSpace(cfg.OpenAIAPIKey) == "" {
		log.ErrorContext(ctx, "OPENAI_API_KEY is required",
			"envVar", "OPENAI_API_KEY")

		return
	}

	scrapeCfg := scraper.DefaultConfig()
	s, err := scraper.New(scrapeCfg, log)
	if err != nil {
		log.ErrorContext(ctx, "Failed to create scraper",
			"error", err)

		return
	}

	sum, err := summarizer.NewOpenAISummarizer(cfg.OpenAIAPIKey, summarizer.DefaultConfig(), log)
	if err != nil {
		log.ErrorContext(ctx, "Failed to create summarizer",
			"error", err)

		return
	}

	p := pipeline.New(s, sum, scrapeCfg.RemoveElements, log)

	server, err := web.NewServer(p, log)
	if err != nil {
		log.ErrorContext(ctx, "Failed to create server",
			"error", err)

		return
	}

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           server.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      writeTimeout,
	}

	go func() {
		log.InfoContext(ctx, "Server is started",
			"addr", cfg.Addr)

		if serveErr := httpServer.ListenAndServe(); serveErr != nil &&
			!errors.Is(serveErr, http.ErrServerClosed) {
			log.ErrorContext(ctx, "Server failed",
				"error", serveErr,
				"addr", cfg.Addr)
			cancel()
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-c:
		log.InfoContext(ctx, "Shutdown signal is received",
			"signal", sig.String())
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err = httpServer.Shutdown(shutdownCtx); err != nil {
		log.ErrorContext(ctx, "Failed to shut down server",
			"error", err)
	}

	log.InfoContext(ctx, "Exiting...",
		"uptimeSeconds", time.Since(start).Seconds())
}
