package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/pkarpov/rigor/internal/model"
	"github.com/pkarpov/rigor/internal/pipeline"
	"github.com/pkarpov/rigor/internal/worker"
	"github.com/spf13/cobra"
)

var (
	outJSON     string
	outMD       string
	timeout     time.Duration
	userAgent   string
	maxBytes    int64
	noCache     bool
	noFooter    bool
	noRobots    bool
	llmProvider string
	llmModel    string
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check <file|url|->",
	Short: "Check one document: validity gate, study classification, quality",
	Long: `Check analyzes a single document excerpt to:
- Decide whether the text is a genuine biomedical methods section
- Classify the study design against a closed taxonomy
- Infer the applicable reporting framework (CONSORT, PRISMA, ...)
- Assess methodological quality, discounted when input confidence is low

The source can be a local file, an http(s) URL, or "-" for stdin.

Example:
  rigor check methods.txt
  rigor check https://example.org/trial-methods --json report.json
  rigor check - < methods.txt
  rigor check methods.txt --llm openai --llm-model gpt-4o-mini`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	// Output flags
	checkCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path")
	checkCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")

	// HTTP flags
	checkCmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall check timeout")
	checkCmd.Flags().StringVar(&userAgent, "ua", "Rigor/0.1 (+https://github.com/pkarpov/rigor)", "HTTP User-Agent")
	checkCmd.Flags().Int64Var(&maxBytes, "max-bytes", 2_000_000, "max response bytes to read")
	checkCmd.Flags().BoolVar(&noRobots, "no-robots", false, "skip robots.txt check when fetching URLs")
	checkCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable oracle response cache")
	checkCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")

	// LLM flags
	checkCmd.Flags().StringVar(&llmProvider, "llm", "", "oracle provider (openai, anthropic, ollama); empty disables the oracle")
	checkCmd.Flags().StringVar(&llmModel, "llm-model", "", "oracle model name (provider default when empty)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	source := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	p, err := pipeline.New(cfg)
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Checking: %s\n", source)
		if cfg.LLM.Provider != "" {
			fmt.Fprintf(os.Stderr, "Oracle: %s/%s\n", cfg.LLM.Provider, cfg.LLM.Model)
		} else {
			fmt.Fprintln(os.Stderr, "Oracle: disabled (deterministic checks only)")
		}
		fmt.Fprintln(os.Stderr)
	}

	var report *model.Report
	switch {
	case source == "-":
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		report = p.CheckText(ctx, "stdin", "stdin", string(data))
	case worker.IsURL(source):
		report, err = p.CheckURL(ctx, source)
		if err != nil {
			return fmt.Errorf("check failed: %w", err)
		}
	default:
		data, err := os.ReadFile(source)
		if err != nil {
			return fmt.Errorf("read file: %w", err)
		}
		report = p.CheckText(ctx, source, source, string(data))
	}

	if err := p.RenderReport(report, outJSON, outMD, verbose); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	return nil
}

// buildConfig assembles the runtime configuration from defaults and flags,
// pulling API credentials from the environment only.
func buildConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	cfg.HTTP.Timeout = timeout
	cfg.HTTP.UserAgent = userAgent
	cfg.HTTP.MaxBodyBytes = maxBytes
	cfg.HTTP.RespectRobots = !noRobots
	cfg.Cache.Enabled = !noCache
	cfg.Output.Verbose = verbose
	cfg.Output.IncludeFooter = !noFooter

	if llmProvider == "" {
		return cfg, nil
	}

	cfg.LLM.Provider = llmProvider
	cfg.LLM.Model = llmModel

	switch llmProvider {
	case "openai":
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.LLM.APIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	case "anthropic", "claude":
		cfg.LLM.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		if cfg.LLM.APIKey == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
		}
	case "ollama":
		// Ollama doesn't need an API key
		if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
			cfg.LLM.BaseURL = baseURL
		}
	}

	return cfg, nil
}
