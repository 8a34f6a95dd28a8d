package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/pkarpov/rigor/internal/pipeline"
	"github.com/pkarpov/rigor/internal/worker"
	"github.com/spf13/cobra"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Check multiple documents from a list file in parallel",
	Long: `Batch checks multiple documents concurrently:
- Read sources from an input file (one file path or URL per line)
- Process sources in parallel with configurable worker count
- Generate individual JSON and Markdown reports per document

Example:
  rigor batch sources.txt
  rigor batch sources.txt --concurrency 10 --output-dir ./reports
  rigor batch sources.txt --llm openai --llm-model gpt-4o-mini`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	// Concurrency flags
	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./rigor-reports", "output directory for reports")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")

	// Shared check flags
	batchCmd.Flags().DurationVar(&timeout, "check-timeout", 30*time.Second, "timeout for individual fetches")
	batchCmd.Flags().StringVar(&userAgent, "ua", "Rigor/0.1 (+https://github.com/pkarpov/rigor)", "HTTP User-Agent")
	batchCmd.Flags().BoolVar(&noRobots, "no-robots", false, "skip robots.txt check when fetching URLs")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable oracle response cache")
	batchCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")

	// LLM flags
	batchCmd.Flags().StringVar(&llmProvider, "llm", "", "oracle provider (openai, anthropic, ollama); empty disables the oracle")
	batchCmd.Flags().StringVar(&llmModel, "llm-model", "", "oracle model name (provider default when empty)")
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg, err := buildConfig()
	if err != nil {
		return err
	}
	cfg.Concurrency.BatchWorkers = concurrency

	fmt.Fprintf(os.Stderr, "Rigor batch: %s (%d workers, output %s)\n", file, concurrency, outputDir)
	if cfg.LLM.Provider != "" {
		fmt.Fprintf(os.Stderr, "Oracle: %s/%s\n", cfg.LLM.Provider, cfg.LLM.Model)
	}
	fmt.Fprintln(os.Stderr)

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	p, err := pipeline.New(cfg)
	if err != nil {
		return err
	}

	processor := worker.NewBatchProcessor(p, concurrency)
	results, err := processor.ProcessFile(ctx, file)
	if err != nil {
		return fmt.Errorf("process file: %w", err)
	}

	renderer := pipeline.NewRenderer(cfg.Output.IncludeFooter)

	successCount := 0
	failureCount := 0
	for _, result := range results {
		if result.Error != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "FAIL %s: %v\n", result.Source, result.Error)
			continue
		}
		successCount++

		slug := sanitizeFilename(result.Report.Subject)
		jsonPath := filepath.Join(outputDir, slug+".json")
		mdPath := filepath.Join(outputDir, slug+".md")

		if err := renderer.RenderJSON(result.Report, jsonPath); err != nil {
			fmt.Fprintf(os.Stderr, "FAIL %s: write JSON: %v\n", result.Source, err)
			continue
		}
		if err := renderer.RenderMarkdown(result.Report, mdPath); err != nil {
			fmt.Fprintf(os.Stderr, "FAIL %s: write Markdown: %v\n", result.Source, err)
			continue
		}

		status := "valid"
		if !result.Report.Validation.IsValid {
			status = "invalid"
		}
		fmt.Fprintf(os.Stderr, "OK   %s (%s, %d/100)\n",
			result.Report.Subject, status, result.Report.Validation.Confidence)
	}

	fmt.Fprintf(os.Stderr, "\nProcessed %d sources: %d succeeded, %d failed. Reports in %s\n",
		len(results), successCount, failureCount, outputDir)

	return nil
}

// sanitizeFilename makes a subject safe to use as a file name.
func sanitizeFilename(s string) string {
	replacer := strings.NewReplacer(
		"/", "_",
		"\\", "_",
		":", "_",
		"*", "_",
		"?", "_",
		"\"", "_",
		"<", "_",
		">", "_",
		"|", "_",
		" ", "-",
	)
	s = replacer.Replace(s)

	if len(s) > 100 {
		s = s[:100]
	}
	if s == "" {
		s = "report"
	}
	return s
}
