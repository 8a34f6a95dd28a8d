package classify

import "github.com/pkarpov/rigor/internal/model"

// frameworkByStudyType is total: every study type has an entry, so the lookup
// can never produce an undefined framework.
var frameworkByStudyType = map[model.StudyType]model.ReportingFramework{
	model.StudyRCT:                model.FrameworkCONSORT,
	model.StudyCohort:             model.FrameworkSTROBE,
	model.StudyCaseControl:        model.FrameworkSTROBE,
	model.StudyCrossSectional:     model.FrameworkSTROBE,
	model.StudySystematicReview:   model.FrameworkPRISMA,
	model.StudyMetaAnalysis:       model.FrameworkPRISMA,
	model.StudyDiagnosticAccuracy: model.FrameworkSTARD,
	model.StudyCaseReport:         model.FrameworkCARE,
	model.StudyCaseSeries:         model.FrameworkCARE,
	model.StudyQualitative:        model.FrameworkCOREQ,
	model.StudyBasicScience:       model.FrameworkNone,
	model.StudyOther:              model.FrameworkNone,
}

// InferFrameworkFromStudyType completes a framework label from an
// already-known study type. Invoked only when the framework is still the
// sentinel after normalization and rationale inference.
func InferFrameworkFromStudyType(t model.StudyType) model.ReportingFramework {
	if f, ok := frameworkByStudyType[t]; ok {
		return f
	}
	return model.FrameworkNone
}
