package classify

import (
	"strings"

	"github.com/pkarpov/rigor/internal/model"
)

// typeRule maps substring triggers to a study type. Rules are evaluated in
// slice order, first match wins, so more specific terms must precede terms
// they contain or commonly co-occur with ("randomized controlled" before bare
// "trial"). Guarded rules are rejected when every trigger occurrence is
// preceded by a negation marker ("this is not a systematic review").
type typeRule struct {
	result  model.StudyType
	terms   []string
	guarded bool
}

// labelTypeRules is the cascade applied to a raw oracle label. Primary-study
// indicators come strictly before secondary-literature indicators: a primary
// study's abstract routinely mentions prior reviews without being one.
var labelTypeRules = []typeRule{
	// "systematic review of X" and "meta-analysis of X" mention primary
	// designs in X, so these review-of phrasings must be checked before the
	// primary block. Negation ("not a systematic review of trials") rejects
	// the rule and lets the cascade fall through to the primary checks.
	{result: model.StudyMetaAnalysis, guarded: true, terms: []string{
		"meta-analysis of", "meta analysis of",
	}},
	{result: model.StudySystematicReview, guarded: true, terms: []string{
		"systematic review of",
	}},
	{result: model.StudyRCT, terms: []string{
		"randomized controlled", "randomised controlled",
		"randomized clinical trial", "randomised clinical trial",
		"placebo-controlled", "double-blind", "rct",
	}},
	{result: model.StudyDiagnosticAccuracy, terms: []string{
		"diagnostic accuracy", "diagnostic test accuracy",
		"sensitivity and specificity", "index test", "reference standard",
	}},
	{result: model.StudyCaseControl, terms: []string{
		"case-control", "case control",
	}},
	{result: model.StudyCrossSectional, terms: []string{
		"cross-sectional", "cross sectional", "prevalence survey",
	}},
	{result: model.StudyCohort, terms: []string{
		"cohort", "longitudinal study", "prospective study", "retrospective study",
	}},
	{result: model.StudyCaseSeries, terms: []string{
		"case series",
	}},
	{result: model.StudyCaseReport, terms: []string{
		"case report",
	}},
	{result: model.StudyQualitative, terms: []string{
		"qualitative", "focus group", "thematic analysis",
		"semi-structured interview", "grounded theory",
	}},
	{result: model.StudyBasicScience, terms: []string{
		"in vitro", "animal model", "cell line", "basic science",
		"preclinical", "bench study",
	}},
	// Weak primary indicators sit after the specific primary designs so that
	// "randomized cohort" style labels resolve by their stronger term first.
	{result: model.StudyRCT, terms: []string{
		"randomized", "randomised", "clinical trial", "trial",
	}},
	// Secondary literature last, negation-guarded.
	{result: model.StudyMetaAnalysis, guarded: true, terms: []string{
		"meta-analysis", "meta analysis", "metaanalysis",
	}},
	{result: model.StudySystematicReview, guarded: true, terms: []string{
		"systematic review", "scoping review", "umbrella review",
	}},
}

// reasonTypeRules extends the label cascade with contextual phrases that only
// show up in free-text rationale, never in a bare label.
var reasonTypeRules = []typeRule{
	{result: model.StudyMetaAnalysis, guarded: true, terms: []string{
		"meta-analysis of", "meta analysis of",
	}},
	{result: model.StudySystematicReview, guarded: true, terms: []string{
		"systematic review of",
	}},
	{result: model.StudyRCT, terms: []string{
		"randomized controlled", "randomised controlled",
		"randomly assigned", "randomized to receive", "randomised to receive",
		"placebo", "double-blind", "single-blind", "allocation concealment",
		"phase 2", "phase 3", "phase ii", "phase iii",
	}},
	{result: model.StudyDiagnosticAccuracy, terms: []string{
		"diagnostic accuracy", "sensitivity and specificity",
		"index test", "reference standard", "receiver operating characteristic",
	}},
	{result: model.StudyCaseControl, terms: []string{
		"case-control", "case control", "matched controls",
	}},
	{result: model.StudyCrossSectional, terms: []string{
		"cross-sectional", "cross sectional", "prevalence survey",
		"single time point",
	}},
	{result: model.StudyCohort, terms: []string{
		"cohort", "followed over time", "longitudinal", "prospective study",
		"retrospective study", "follow-up period",
	}},
	{result: model.StudyCaseSeries, terms: []string{
		"case series", "consecutive patients",
	}},
	{result: model.StudyCaseReport, terms: []string{
		"case report", "we report a case", "a rare case of",
	}},
	{result: model.StudyQualitative, terms: []string{
		"qualitative", "focus group", "thematic analysis",
		"semi-structured interview", "interviews were", "grounded theory",
	}},
	{result: model.StudyBasicScience, terms: []string{
		"in vitro", "animal model", "cell line", "mice", "murine",
		"cell culture", "western blot",
	}},
	{result: model.StudyRCT, terms: []string{
		"randomized", "randomised", "enrolled", "clinical trial", "trial",
	}},
	{result: model.StudyMetaAnalysis, guarded: true, terms: []string{
		"meta-analysis", "meta analysis", "metaanalysis", "pooled analysis",
		"pooled estimate", "forest plot",
	}},
	{result: model.StudySystematicReview, guarded: true, terms: []string{
		"systematic review", "systematic search", "search strategy",
		"prisma flow",
	}},
}

// frameworkRule maps substring triggers to a reporting framework.
type frameworkRule struct {
	result model.ReportingFramework
	terms  []string
}

var frameworkRules = []frameworkRule{
	{result: model.FrameworkCONSORT, terms: []string{"consort"}},
	{result: model.FrameworkSTROBE, terms: []string{"strobe"}},
	{result: model.FrameworkPRISMA, terms: []string{"prisma"}},
	{result: model.FrameworkSTARD, terms: []string{"stard"}},
	{result: model.FrameworkCOREQ, terms: []string{"coreq"}},
	{result: model.FrameworkPICO, terms: []string{"pico"}},
	// "care" alone is a substring of too many clinical words; only explicit
	// guideline mentions trigger it. The bare canonical label is handled by
	// the exact-match pass.
	{result: model.FrameworkCARE, terms: []string{"care guideline", "care checklist", "care statement"}},
}

// negationMarkers precede a trigger term when the text denies the design
// rather than asserting it.
var negationMarkers = []string{
	"not a ",
	"not an ",
	"not ",
	"no ",
	"rather than a ",
	"rather than ",
	"instead of a ",
	"without a ",
}

// negated reports whether any mention of term in text is denied. A single
// "this is not a systematic review" outweighs incidental plain mentions
// elsewhere ("cites several systematic reviews"). Text must already be
// lowercased.
func negated(text, term string) bool {
	for idx := strings.Index(text, term); idx >= 0; {
		if deniedAt(text, idx) {
			return true
		}
		next := strings.Index(text[idx+len(term):], term)
		if next < 0 {
			break
		}
		idx += len(term) + next
	}
	return false
}

// deniedAt reports whether the term occurrence starting at idx is immediately
// preceded by a negation marker.
func deniedAt(text string, idx int) bool {
	prefix := text[:idx]
	for _, marker := range negationMarkers {
		if strings.HasSuffix(prefix, marker) {
			return true
		}
	}
	return false
}

// matchType runs a rule cascade over lowercased text. It returns the sentinel
// when no rule fires.
func matchType(lower string, rules []typeRule) model.StudyType {
	for _, rule := range rules {
		for _, term := range rule.terms {
			if !strings.Contains(lower, term) {
				continue
			}
			if rule.guarded && negated(lower, term) {
				continue
			}
			return rule.result
		}
	}
	return model.StudyOther
}

// matchFramework runs the framework cascade over lowercased text.
func matchFramework(lower string) model.ReportingFramework {
	for _, rule := range frameworkRules {
		for _, term := range rule.terms {
			if strings.Contains(lower, term) {
				return rule.result
			}
		}
	}
	return model.FrameworkNone
}
