package model

// StudyType is the closed taxonomy of study designs.
// StudyOther is the explicit "unknown" sentinel - classification never
// produces an absent study type.
type StudyType string

const (
	StudyRCT                StudyType = "RCT"
	StudyCohort             StudyType = "Cohort"
	StudyCaseControl        StudyType = "CaseControl"
	StudyCrossSectional     StudyType = "CrossSectional"
	StudySystematicReview   StudyType = "SystematicReview"
	StudyMetaAnalysis       StudyType = "MetaAnalysis"
	StudyDiagnosticAccuracy StudyType = "DiagnosticAccuracy"
	StudyCaseReport         StudyType = "CaseReport"
	StudyCaseSeries         StudyType = "CaseSeries"
	StudyQualitative        StudyType = "Qualitative"
	StudyBasicScience       StudyType = "BasicScience"
	StudyOther              StudyType = "Other"
)

// StudyTypes lists every canonical study type, sentinel included.
var StudyTypes = []StudyType{
	StudyRCT,
	StudyCohort,
	StudyCaseControl,
	StudyCrossSectional,
	StudySystematicReview,
	StudyMetaAnalysis,
	StudyDiagnosticAccuracy,
	StudyCaseReport,
	StudyCaseSeries,
	StudyQualitative,
	StudyBasicScience,
	StudyOther,
}

// IsSecondaryLiterature reports whether the study type summarizes other
// studies rather than reporting primary data.
func (t StudyType) IsSecondaryLiterature() bool {
	return t == StudySystematicReview || t == StudyMetaAnalysis
}

// ReportingFramework is the closed taxonomy of reporting guidelines.
// FrameworkNone is the "unknown" sentinel.
type ReportingFramework string

const (
	FrameworkCONSORT ReportingFramework = "CONSORT"
	FrameworkSTROBE  ReportingFramework = "STROBE"
	FrameworkPRISMA  ReportingFramework = "PRISMA"
	FrameworkSTARD   ReportingFramework = "STARD"
	FrameworkCARE    ReportingFramework = "CARE"
	FrameworkCOREQ   ReportingFramework = "COREQ"
	FrameworkPICO    ReportingFramework = "PICO"
	FrameworkNone    ReportingFramework = "None"
)

// Frameworks lists every canonical reporting framework, sentinel included.
var Frameworks = []ReportingFramework{
	FrameworkCONSORT,
	FrameworkSTROBE,
	FrameworkPRISMA,
	FrameworkSTARD,
	FrameworkCARE,
	FrameworkCOREQ,
	FrameworkPICO,
	FrameworkNone,
}

// ClassificationRecord is the reconciled study classification for a single
// document. It is created fresh per invocation and never persisted.
type ClassificationRecord struct {
	StudyType  StudyType          `json:"study_type"`
	Framework  ReportingFramework `json:"framework"`
	Confidence *float64           `json:"confidence,omitempty"` // oracle self-report, 0..1
	Reasons    []string           `json:"reasons,omitempty"`    // ordered diagnostic trail
}
