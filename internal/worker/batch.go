package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkarpov/rigor/internal/model"
)

// Checker runs the document check on one source. Satisfied by the pipeline.
type Checker interface {
	CheckURL(ctx context.Context, url string) (*model.Report, error)
	CheckText(ctx context.Context, subject, source, text string) *model.Report
}

// CheckJob checks a single source: a URL or a local file path.
type CheckJob struct {
	Source  string
	Checker Checker
}

// Execute runs the check job
func (j *CheckJob) Execute(ctx context.Context) Result {
	if IsURL(j.Source) {
		report, err := j.Checker.CheckURL(ctx, j.Source)
		return &CheckResult{Source: j.Source, Report: report, Error: err}
	}

	data, err := os.ReadFile(j.Source)
	if err != nil {
		return &CheckResult{Source: j.Source, Error: fmt.Errorf("read file: %w", err)}
	}

	report := j.Checker.CheckText(ctx, subjectFromPath(j.Source), j.Source, string(data))
	return &CheckResult{Source: j.Source, Report: report}
}

// CheckResult is the outcome of one check job
type CheckResult struct {
	Source string
	Report *model.Report
	Error  error
}

// GetError returns the error from the check result
func (r *CheckResult) GetError() error {
	return r.Error
}

// BatchProcessor checks multiple sources concurrently
type BatchProcessor struct {
	checker     Checker
	concurrency int
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(checker Checker, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		checker:     checker,
		concurrency: concurrency,
	}
}

// ProcessSources checks multiple sources concurrently
func (b *BatchProcessor) ProcessSources(ctx context.Context, sources []string) []*CheckResult {
	if len(sources) == 0 {
		return []*CheckResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	for _, source := range sources {
		pool.Submit(&CheckJob{Source: source, Checker: b.checker})
	}

	results := pool.Wait()

	checkResults := make([]*CheckResult, len(results))
	for i, result := range results {
		checkResults[i] = result.(*CheckResult)
	}

	return checkResults
}

// ProcessFile reads sources from a list file and checks them concurrently
func (b *BatchProcessor) ProcessFile(ctx context.Context, listPath string) ([]*CheckResult, error) {
	sources, err := ReadSourcesFromFile(listPath)
	if err != nil {
		return nil, fmt.Errorf("read sources: %w", err)
	}

	return b.ProcessSources(ctx, sources), nil
}

// ReadSourcesFromFile reads sources from a file, one per line. Empty lines
// and #-comments are skipped, duplicates removed.
func ReadSourcesFromFile(listPath string) ([]string, error) {
	file, err := os.Open(listPath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var sources []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !seen[line] {
			seen[line] = true
			sources = append(sources, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return sources, nil
}

// IsURL reports whether the source is a fetchable URL rather than a file path.
func IsURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// subjectFromPath derives a subject label from a file name.
func subjectFromPath(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = strings.ReplaceAll(base, "_", " ")
	base = strings.ReplaceAll(base, "-", " ")
	return base
}
