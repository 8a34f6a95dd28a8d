package worker

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pkarpov/rigor/internal/model"
)

// MockChecker implements the Checker interface
type MockChecker struct {
	ShouldError bool
}

func (m *MockChecker) CheckURL(ctx context.Context, url string) (*model.Report, error) {
	time.Sleep(10 * time.Millisecond) // Simulate work
	if m.ShouldError {
		return nil, errors.New("fetch error")
	}
	return &model.Report{Subject: "Test Subject", Source: url}, nil
}

func (m *MockChecker) CheckText(ctx context.Context, subject, source, text string) *model.Report {
	time.Sleep(10 * time.Millisecond)
	return &model.Report{Subject: subject, Source: source}
}

func TestBatchProcessor_ProcessSources_URLs(t *testing.T) {
	checker := &MockChecker{}
	processor := NewBatchProcessor(checker, 2)

	sources := []string{"http://example.com", "https://example.org", "http://example.net"}
	results := processor.ProcessSources(context.Background(), sources)

	if len(results) != 3 {
		t.Errorf("expected 3 results, got %d", len(results))
	}

	for _, res := range results {
		if res.Error != nil {
			t.Errorf("unexpected error for %s: %v", res.Source, res.Error)
		}
		if res.Report == nil {
			t.Error("expected report for successful check")
		}
	}
}

func TestBatchProcessor_ProcessSources_Files(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "methods_section.txt")
	if err := os.WriteFile(path, []byte("some text"), 0o644); err != nil {
		t.Fatal(err)
	}

	checker := &MockChecker{}
	processor := NewBatchProcessor(checker, 2)

	results := processor.ProcessSources(context.Background(), []string{path})
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Error != nil {
		t.Fatalf("unexpected error: %v", results[0].Error)
	}
	if results[0].Report.Subject != "methods section" {
		t.Errorf("subject = %q, want %q", results[0].Report.Subject, "methods section")
	}
}

func TestBatchProcessor_ProcessSources_MissingFile(t *testing.T) {
	checker := &MockChecker{}
	processor := NewBatchProcessor(checker, 2)

	results := processor.ProcessSources(context.Background(), []string{"no_such_file.txt"})
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Error == nil {
		t.Error("expected error for missing file")
	}
	if results[0].Report != nil {
		t.Error("expected nil report on error")
	}
}

func TestBatchProcessor_ProcessSources_URLError(t *testing.T) {
	checker := &MockChecker{ShouldError: true}
	processor := NewBatchProcessor(checker, 2)

	results := processor.ProcessSources(context.Background(), []string{"http://example.com"})
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Error == nil {
		t.Error("expected error, got nil")
	}
}

func TestBatchProcessor_ProcessSources_Empty(t *testing.T) {
	checker := &MockChecker{}
	processor := NewBatchProcessor(checker, 2)

	results := processor.ProcessSources(context.Background(), []string{})
	if len(results) != 0 {
		t.Errorf("expected 0 results, got %d", len(results))
	}
}

func TestReadSourcesFromFile(t *testing.T) {
	content := `http://example.com
# comment
https://example.org

papers/methods.txt   `

	path := filepath.Join(t.TempDir(), "sources")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	sources, err := ReadSourcesFromFile(path)
	if err != nil {
		t.Fatalf("ReadSourcesFromFile failed: %v", err)
	}

	expected := []string{"http://example.com", "https://example.org", "papers/methods.txt"}
	if len(sources) != len(expected) {
		t.Fatalf("expected %d sources, got %d", len(expected), len(sources))
	}
	for i, source := range sources {
		if source != expected[i] {
			t.Errorf("expected %s at index %d, got %s", expected[i], i, source)
		}
	}
}

func TestReadSourcesFromFile_Deduplication(t *testing.T) {
	content := "http://example.com\nhttp://example.com\n"

	path := filepath.Join(t.TempDir(), "sources_dedup")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	sources, err := ReadSourcesFromFile(path)
	if err != nil {
		t.Fatalf("ReadSourcesFromFile failed: %v", err)
	}
	if len(sources) != 1 {
		t.Errorf("expected 1 source after deduplication, got %d", len(sources))
	}
}

func TestReadSourcesFromFile_NonExistent(t *testing.T) {
	if _, err := ReadSourcesFromFile("non_existent_file.txt"); err == nil {
		t.Error("expected error for non-existent file, got nil")
	}
}

func TestBatchProcessor_ProcessFile(t *testing.T) {
	content := "http://example.com\nhttps://example.org\n# comment\n\nhttp://example.net\n"

	path := filepath.Join(t.TempDir(), "batch_sources")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	checker := &MockChecker{}
	processor := NewBatchProcessor(checker, 2)

	results, err := processor.ProcessFile(context.Background(), path)
	if err != nil {
		t.Fatalf("ProcessFile failed: %v", err)
	}
	if len(results) != 3 {
		t.Errorf("expected 3 results, got %d", len(results))
	}
}

func TestBatchProcessor_ProcessFile_NonExistent(t *testing.T) {
	checker := &MockChecker{}
	processor := NewBatchProcessor(checker, 2)

	if _, err := processor.ProcessFile(context.Background(), "no_such_file.txt"); err == nil {
		t.Error("expected error for non-existent file, got nil")
	}
}

func TestIsURL(t *testing.T) {
	tests := []struct {
		source string
		want   bool
	}{
		{"http://example.com", true},
		{"https://example.com/page", true},
		{"papers/methods.txt", false},
		{"/absolute/path.txt", false},
		{"ftp://example.com", false},
	}
	for _, tt := range tests {
		if got := IsURL(tt.source); got != tt.want {
			t.Errorf("IsURL(%q) = %v, want %v", tt.source, got, tt.want)
		}
	}
}

func TestCheckResult_GetError(t *testing.T) {
	r1 := &CheckResult{Source: "http://example.com"}
	if r1.GetError() != nil {
		t.Errorf("expected nil error, got %v", r1.GetError())
	}

	expected := errors.New("check failed")
	r2 := &CheckResult{Source: "http://example.com", Error: expected}
	if r2.GetError() != expected {
		t.Errorf("expected %v, got %v", expected, r2.GetError())
	}
}
