package validate

// category is one named bucket of methodology evidence. Weights are fixed
// calibration constants in the 1.0-3.0 range; they are not runtime-tunable.
type category struct {
	name    string
	weight  float64
	phrases []string
}

// categories is the static evidence table scanned once per validation. Every
// category carries at least one trigger phrase.
var categories = []category{
	{
		name:   "design",
		weight: 3.0,
		phrases: []string{
			"randomized", "randomised", "controlled trial", "double-blind",
			"single-blind", "allocation concealment", "crossover design",
			"parallel group", "block randomization", "stratified by",
		},
	},
	{
		name:   "studyType",
		weight: 2.5,
		phrases: []string{
			"cohort", "case-control", "cross-sectional", "prospective",
			"retrospective", "longitudinal", "observational study",
			"case series", "diagnostic accuracy",
		},
	},
	{
		name:   "sample",
		weight: 2.0,
		phrases: []string{
			"sample size", "participants", "inclusion criteria",
			"exclusion criteria", "recruited", "enrolled", "eligible patients",
			"consecutive patients",
		},
	},
	{
		name:   "statistics",
		weight: 3.0,
		phrases: []string{
			"statistical analysis", "p value", "p-value", "confidence interval",
			"regression", "chi-square", "t-test", "anova", "hazard ratio",
			"odds ratio", "intention-to-treat", "spss", "stata",
		},
	},
	{
		name:   "data",
		weight: 1.5,
		phrases: []string{
			"data collection", "data were collected", "questionnaire",
			"medical records", "database", "baseline characteristics",
			"follow-up", "outcome measure",
		},
	},
	{
		name:   "intervention",
		weight: 2.0,
		phrases: []string{
			"intervention", "placebo", "administered", "dose", "dosage",
			"treatment group", "control group", "comparator",
		},
	},
	{
		name:   "ethics",
		weight: 1.0,
		phrases: []string{
			"ethics committee", "institutional review board", "irb approval",
			"informed consent", "declaration of helsinki", "ethical approval",
		},
	},
}

// antiPatterns are phrases whose presence argues against the text being a
// methods section: introduction framing, discussion framing, results
// narration, figure and table walkthroughs. Kept disjoint from the category
// phrases above.
var antiPatterns = []string{
	"in conclusion",
	"in summary",
	"we conclude that",
	"our findings suggest",
	"these results demonstrate",
	"this study shows that",
	"as shown in figure",
	"as shown in table",
	"previous studies have shown",
	"little is known about",
	"growing body of evidence",
	"remains poorly understood",
	"the rest of this paper",
	"future research should",
}
