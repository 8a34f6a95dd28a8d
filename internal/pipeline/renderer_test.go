package pipeline

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pkarpov/rigor/internal/model"
)

func sampleReport() *model.Report {
	conf := 0.9
	selfReported := 85
	return &model.Report{
		Subject:   "trial methods",
		Source:    "methods.txt",
		CheckedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Validation: model.ValidationRecord{
			IsValid:    true,
			Confidence: 82,
			Threshold:  60,
			Reason:     "Found 7 methodology indicators across 4 categories",
			Details: model.ValidationDetails{
				TotalMatches:          7,
				CategoriesWithMatches: 4,
			},
		},
		Classification: &model.ClassificationRecord{
			StudyType:  model.StudyRCT,
			Framework:  model.FrameworkCONSORT,
			Confidence: &conf,
			Reasons:    []string{"participants were randomly assigned"},
		},
		Assessment: &model.QualityAssessment{
			Blocks:       []model.ScoreBlock{{Name: "randomization", Score: 4}},
			OverallScore: 78,
			Confidence:   &selfReported,
			Strengths:    []string{"prespecified analysis plan"},
			Limitations:  []string{"single center"},
		},
		Oracle:     &model.OracleMeta{Provider: "openai", Model: "gpt-4o-mini", TokensUsed: 420},
		Principles: model.DefaultPrinciples(),
	}
}

func TestMarkdownContainsSections(t *testing.T) {
	md := NewRenderer(true).Markdown(sampleReport())

	for _, want := range []string{
		"# Rigor Report: trial methods",
		"## Content Validity",
		"82/100",
		"## Study Classification",
		"RCT",
		"CONSORT",
		"participants were randomly assigned",
		"## Quality Assessment",
		"78/100",
		"| randomization | 4/5 |",
		"## Oracle",
		"gpt-4o-mini",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q", want)
		}
	}
}

func TestMarkdownFooterToggle(t *testing.T) {
	report := sampleReport()

	with := NewRenderer(true).Markdown(report)
	if !strings.Contains(with, "Generated by") {
		t.Error("expected footer when enabled")
	}

	without := NewRenderer(false).Markdown(report)
	if strings.Contains(without, "Generated by") {
		t.Error("expected no footer when disabled")
	}
}

func TestMarkdownGateFailureOmitsOracleSections(t *testing.T) {
	report := &model.Report{
		Subject: "abstract",
		Source:  "stdin",
		Validation: model.ValidationRecord{
			IsValid:    false,
			Confidence: 12,
			Threshold:  60,
			Reason:     "Insufficient methodology evidence (1 indicators found)",
		},
		Principles: model.DefaultPrinciples(),
	}

	md := NewRenderer(false).Markdown(report)
	if strings.Contains(md, "## Study Classification") || strings.Contains(md, "## Quality Assessment") {
		t.Error("invalid document must not render classification or assessment sections")
	}
	if !strings.Contains(md, "Insufficient methodology evidence") {
		t.Error("markdown missing the rejection reason")
	}
}

func TestRenderJSONRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")

	if err := NewRenderer(true).RenderJSON(sampleReport(), path); err != nil {
		t.Fatalf("RenderJSON: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	var decoded model.Report
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.Subject != "trial methods" || decoded.Classification.StudyType != model.StudyRCT {
		t.Errorf("decoded report = %+v", decoded)
	}
	if !decoded.Principles.UntrustedOracle {
		t.Error("principles must survive the round trip")
	}
}
