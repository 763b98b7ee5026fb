package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"pagebrief/internal/config"
	"pagebrief/internal/pipeline"
	"pagebrief/internal/scraper"
	"pagebrief/internal/summarizer"
)

var (
	flagURL         string
	flagModel       string
	flagMaxTokens   int64
	flagTemperature float64
	flagTimeout     time.Duration
	flagRetries     int
	flagRetryDelay  time.Duration
	flagOutput      string
	flagQuiet       bool
	flagVerbose     bool
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	dividerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
)

var rootCmd = &cobra.Command{
	Use:           "pagebrief",
	Short:         "Summarize a web page with OpenAI",
	Long:          "pagebrief fetches a web page, strips non-content markup, and generates a short AI summary.",
	RunE:          run,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.Flags().StringVarP(&flagURL, "url", "u", "", "URL to fetch and summarize")
	rootCmd.Flags().StringVar(&flagModel, "model", "gpt-4o-mini", "OpenAI model to use")
	rootCmd.Flags().Int64Var(&flagMaxTokens, "max-tokens", 1000, "maximum tokens for the summary")
	rootCmd.Flags().Float64Var(&flagTemperature, "temperature", 0.7, "sampling temperature (0.0-1.0)")
	rootCmd.Flags().DurationVar(&flagTimeout, "timeout", 30*time.Second, "request timeout")
	rootCmd.Flags().IntVar(&flagRetries, "retries", 3, "maximum retry attempts")
	rootCmd.Flags().DurationVar(&flagRetryDelay, "retry-delay", time.Second, "base delay between retries")
	rootCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "file to save the summary to")
	rootCmd.Flags().BoolVarP(&flagQuiet, "quiet", "q", false, "suppress logging output")
	rootCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable verbose logging")

	_ = rootCmd.MarkFlagRequired("url")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("error: ")+err.Error())
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	log := newLogger(flagQuiet, flagVerbose)
	slog.SetDefault(log)

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if strings.TrimSpace(cfg.OpenAIAPIKey) == "" {
		return errors.New("OPENAI_API_KEY environment variable is required")
	}

	scrapeCfg := scraper.DefaultConfig()
	scrapeCfg.Timeout = flagTimeout
	scrapeCfg.MaxRetries = flagRetries
	scrapeCfg.RetryDelay = flagRetryDelay

	genCfg := summarizer.DefaultConfig()
	genCfg.Model = flagModel
	genCfg.MaxOutputTokens = flagMaxTokens
	genCfg.Temperature = flagTemperature
	genCfg.MaxRetries = flagRetries
	genCfg.RetryDelay = flagRetryDelay

	s, err := scraper.New(scrapeCfg, log)
	if err != nil {
		return err
	}

	sum, err := summarizer.NewOpenAISummarizer(cfg.OpenAIAPIKey, genCfg, log)
	if err != nil {
		return err
	}

	p := pipeline.New(s, sum, scrapeCfg.RemoveElements, log)

	ctx := cmd.Context()
	log.InfoContext(ctx, "Summarizing page",
		"url", flagURL,
		"model", genCfg.Model)

	result, err := p.Run(ctx, flagURL)
	if err != nil {
		return err
	}

	fmt.Println(headerStyle.Render(result.Title))
	fmt.Println(dividerStyle.Render(strings.Repeat("─", 40)))
	fmt.Println(result.Text)

	if flagOutput != "" {
		if err := saveSummary(flagOutput, result); err != nil {
			return fmt.Errorf("save summary: %w", err)
		}

		log.InfoContext(ctx, "Summary is saved",
			"path", flagOutput)
	}

	return nil
}

func saveSummary(path string, result *pipeline.Summary) error {
	content := fmt.Sprintf("# Summary of %s\n\n%s\n", result.URL, result.Text)

	return os.WriteFile(path, []byte(content), 0o644)
}

func newLogger(quiet, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	switch {
	case quiet:
		level = slog.LevelError
	case verbose:
		level = slog.LevelDebug
	}

	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
