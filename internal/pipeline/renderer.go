package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/pkarpov/rigor/internal/model"
)

// Renderer writes reports as JSON, Markdown, or a terminal summary.
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a renderer
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderJSON writes the report as indented JSON to the given path.
func (r *Renderer) RenderJSON(report *model.Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// RenderMarkdown writes the report as a Markdown document to the given path.
func (r *Renderer) RenderMarkdown(report *model.Report, path string) error {
	return os.WriteFile(path, []byte(r.Markdown(report)), 0o644)
}

// Markdown formats the report as a Markdown document.
func (r *Renderer) Markdown(report *model.Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Rigor Report: %s\n\n", report.Subject)
	fmt.Fprintf(&b, "- **Source**: %s\n", report.Source)
	fmt.Fprintf(&b, "- **Checked**: %s\n\n", report.CheckedAt.Format("2006-01-02 15:04 UTC"))

	fmt.Fprintf(&b, "## Content Validity\n\n")
	fmt.Fprintf(&b, "- **Valid methods text**: %v\n", report.Validation.IsValid)
	fmt.Fprintf(&b, "- **Confidence**: %d/100 (threshold %d)\n", report.Validation.Confidence, report.Validation.Threshold)
	fmt.Fprintf(&b, "- **Reason**: %s\n", report.Validation.Reason)
	details := report.Validation.Details
	fmt.Fprintf(&b, "- **Evidence**: %d matches across %d categories, %d anti-patterns\n\n",
		details.TotalMatches, details.CategoriesWithMatches, details.AntiPatternMatches)

	if c := report.Classification; c != nil {
		fmt.Fprintf(&b, "## Study Classification\n\n")
		fmt.Fprintf(&b, "- **Study type**: %s\n", c.StudyType)
		fmt.Fprintf(&b, "- **Reporting framework**: %s\n", c.Framework)
		if c.Confidence != nil {
			fmt.Fprintf(&b, "- **Oracle confidence**: %.2f\n", *c.Confidence)
		}
		if len(c.Reasons) > 0 {
			fmt.Fprintf(&b, "\n**Reasoning trail:**\n\n")
			for _, reason := range c.Reasons {
				fmt.Fprintf(&b, "- %s\n", reason)
			}
		}
		b.WriteString("\n")
	}

	if a := report.Assessment; a != nil {
		fmt.Fprintf(&b, "## Quality Assessment\n\n")
		fmt.Fprintf(&b, "- **Overall score**: %d/100", a.OverallScore)
		if a.Dampened {
			b.WriteString(" (discounted for low input confidence)")
		}
		b.WriteString("\n")
		if a.Confidence != nil {
			fmt.Fprintf(&b, "- **Self-reported confidence**: %d/100\n", *a.Confidence)
		}
		b.WriteString("\n")

		if len(a.Blocks) > 0 {
			b.WriteString("| Criterion | Score |\n|---|---|\n")
			for _, block := range a.Blocks {
				fmt.Fprintf(&b, "| %s | %d/5 |\n", block.Name, block.Score)
			}
			b.WriteString("\n")
		}

		if len(a.Strengths) > 0 {
			b.WriteString("**Strengths:**\n\n")
			for _, s := range a.Strengths {
				fmt.Fprintf(&b, "- %s\n", s)
			}
			b.WriteString("\n")
		}
		if len(a.Limitations) > 0 {
			b.WriteString("**Limitations:**\n\n")
			for _, l := range a.Limitations {
				fmt.Fprintf(&b, "- %s\n", l)
			}
			b.WriteString("\n")
		}
	}

	if len(report.Warnings) > 0 {
		b.WriteString("## Warnings\n\n")
		for _, w := range report.Warnings {
			fmt.Fprintf(&b, "- %s\n", w)
		}
		b.WriteString("\n")
	}

	if o := report.Oracle; o != nil {
		fmt.Fprintf(&b, "## Oracle\n\n")
		fmt.Fprintf(&b, "- **Provider**: %s\n", o.Provider)
		if o.Model != "" {
			fmt.Fprintf(&b, "- **Model**: %s\n", o.Model)
		}
		if o.TokensUsed > 0 {
			fmt.Fprintf(&b, "- **Tokens**: %d\n", o.TokensUsed)
		}
		if o.FromCache {
			b.WriteString("- **From cache**: yes\n")
		}
		b.WriteString("\n")
	}

	if r.includeFooter {
		b.WriteString("---\n\n")
		b.WriteString("*Validation and reconciliation are deterministic; oracle output is treated as untrusted input. ")
		b.WriteString("Generated by [rigor](https://github.com/pkarpov/rigor).*\n")
	}

	return b.String()
}

// RenderSummary prints a short human-readable summary to stdout.
func (r *Renderer) RenderSummary(report *model.Report) {
	fmt.Printf("\n%s\n", report.Subject)
	fmt.Printf("  Source: %s\n", report.Source)

	if report.Validation.IsValid {
		fmt.Printf("  Validity: PASS (%d/100)\n", report.Validation.Confidence)
	} else {
		fmt.Printf("  Validity: FAIL (%d/100): %s\n", report.Validation.Confidence, report.Validation.Reason)
	}

	if c := report.Classification; c != nil {
		fmt.Printf("  Study type: %s (framework: %s)\n", c.StudyType, c.Framework)
	}
	if a := report.Assessment; a != nil {
		suffix := ""
		if a.Dampened {
			suffix = " (discounted)"
		}
		fmt.Printf("  Quality: %d/100%s\n", a.OverallScore, suffix)
	}
	for _, w := range report.Warnings {
		fmt.Printf("  Warning: %s\n", w)
	}
}

// RenderReport renders the report to the configured outputs.
func (p *Pipeline) RenderReport(report *model.Report, jsonPath string, mdPath string, verbose bool) error {
	renderer := NewRenderer(p.cfg.Output.IncludeFooter)

	if jsonPath != "" {
		if err := renderer.RenderJSON(report, jsonPath); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Printf("Wrote JSON: %s\n", jsonPath)
		}
	}

	if mdPath != "" {
		if err := renderer.RenderMarkdown(report, mdPath); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if verbose {
			fmt.Printf("Wrote Markdown: %s\n", mdPath)
		}
	}

	renderer.RenderSummary(report)
	return nil
}
