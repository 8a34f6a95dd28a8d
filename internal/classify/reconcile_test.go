package classify

import (
	"strings"
	"testing"

	"github.com/pkarpov/rigor/internal/model"
)

func TestReconcile_RationaleOverridesSentinel(t *testing.T) {
	// Oracle returned the sentinel pair but its rationale clearly describes
	// a trial: the override engine supplies RCT, the framework table CONSORT.
	record := Reconcile("Other", "None", nil, []string{
		"patients were randomized to receive drug or placebo",
	})

	if record.StudyType != model.StudyRCT {
		t.Errorf("expected RCT, got %s", record.StudyType)
	}
	if record.Framework != model.FrameworkCONSORT {
		t.Errorf("expected CONSORT, got %s", record.Framework)
	}
}

func TestReconcile_NegatedReviewLabelDemoted(t *testing.T) {
	// The label says "Systematic Review" but the rationale denies it; the
	// primary-study cascade over the rationale wins.
	record := Reconcile("Systematic Review", "", nil, []string{
		"this is not a systematic review, it is a randomized trial that cites several systematic reviews",
	})

	if record.StudyType != model.StudyRCT {
		t.Errorf("expected RCT after negated review label, got %s", record.StudyType)
	}
	if record.Framework != model.FrameworkCONSORT {
		t.Errorf("expected CONSORT, got %s", record.Framework)
	}

	demoted := false
	for _, reason := range record.Reasons {
		if strings.Contains(reason, "contradicted by rationale") {
			demoted = true
		}
	}
	if !demoted {
		t.Error("expected a diagnostic trail entry for the demoted label")
	}
}

func TestReconcile_NonSentinelNeverOverwritten(t *testing.T) {
	// The rationale mentions a review, but the established cohort label must
	// survive untouched.
	record := Reconcile("Cohort", "STROBE", nil, []string{
		"we ran a systematic review of prior cohorts before designing this",
	})

	if record.StudyType != model.StudyCohort {
		t.Errorf("expected Cohort, got %s", record.StudyType)
	}
	if record.Framework != model.FrameworkSTROBE {
		t.Errorf("expected STROBE, got %s", record.Framework)
	}
}

func TestReconcile_FrameworkCompletedFromStudyType(t *testing.T) {
	record := Reconcile("case-control study", "", nil, nil)

	if record.StudyType != model.StudyCaseControl {
		t.Errorf("expected CaseControl, got %s", record.StudyType)
	}
	if record.Framework != model.FrameworkSTROBE {
		t.Errorf("expected STROBE inferred from study type, got %s", record.Framework)
	}
}

func TestReconcile_AmbiguousResolvesToSentinelPair(t *testing.T) {
	record := Reconcile("", "", nil, []string{"the text does not describe any recognizable design"})

	if record.StudyType != model.StudyOther {
		t.Errorf("expected Other, got %s", record.StudyType)
	}
	if record.Framework != model.FrameworkNone {
		t.Errorf("expected None, got %s", record.Framework)
	}
}

func TestInferFromReasons_Empty(t *testing.T) {
	studyType, framework := InferFromReasons("   ")
	if studyType != model.StudyOther || framework != model.FrameworkNone {
		t.Errorf("expected sentinel pair for empty rationale, got %s/%s", studyType, framework)
	}
}

func TestInferFromReasons_ContextualPhrases(t *testing.T) {
	cases := []struct {
		text string
		want model.StudyType
	}{
		{"a phase 3 study where participants were randomly assigned", model.StudyRCT},
		{"1200 participants were enrolled at 14 centers", model.StudyRCT},
		{"results were combined in a pooled analysis with a forest plot", model.StudyMetaAnalysis},
		{"subjects were followed over time for incident events", model.StudyCohort},
		{"semi-structured interviews analysed with thematic analysis", model.StudyQualitative},
		{"experiments used a murine model and cell culture", model.StudyBasicScience},
	}

	for _, tc := range cases {
		got, _ := InferFromReasons(tc.text)
		if got != tc.want {
			t.Errorf("InferFromReasons(%q) = %s, want %s", tc.text, got, tc.want)
		}
	}
}
