package classify

import (
	"fmt"
	"strings"

	"github.com/pkarpov/rigor/internal/model"
)

// secondaryTerms are the rationale phrases checked when deciding whether a
// secondary-literature label is contradicted by the oracle's own rationale.
var secondaryTerms = map[model.StudyType][]string{
	model.StudySystematicReview: {"systematic review"},
	model.StudyMetaAnalysis:     {"meta-analysis", "meta analysis"},
}

// Reconcile merges the oracle's raw classification fields into a canonical
// ClassificationRecord using the fixed precedence: normalizer, then rationale
// override for sentinel fields, then framework inference from the study type.
// No field is overwritten once a non-sentinel value has been established.
//
// One demotion happens inside the normalization stage: when the label
// normalizes to secondary literature but every rationale mention of that
// design is negated ("this is not a systematic review"), the label is treated
// as the sentinel so the rationale cascade, with its primary-study precedence,
// decides instead. Each correction leaves an entry in the diagnostic trail.
func Reconcile(rawStudyType, rawFramework string, confidence *float64, reasons []string) model.ClassificationRecord {
	trail := make([]string, 0, len(reasons)+3)
	trail = append(trail, reasons...)

	reasonText := strings.ToLower(strings.Join(reasons, " "))

	studyType := NormalizeStudyType(rawStudyType)
	if studyType.IsSecondaryLiterature() && contradicted(studyType, reasonText) {
		trail = append(trail, fmt.Sprintf("label %q contradicted by rationale, re-deriving from reasons", rawStudyType))
		studyType = model.StudyOther
	}

	framework := NormalizeFramework(rawFramework)

	if studyType == model.StudyOther || framework == model.FrameworkNone {
		inferredType, inferredFramework := InferFromReasons(strings.Join(reasons, " "))
		if studyType == model.StudyOther && inferredType != model.StudyOther {
			trail = append(trail, fmt.Sprintf("study type %s derived from rationale", inferredType))
			studyType = inferredType
		}
		if framework == model.FrameworkNone && inferredFramework != model.FrameworkNone {
			trail = append(trail, fmt.Sprintf("framework %s derived from rationale", inferredFramework))
			framework = inferredFramework
		}
	}

	if framework == model.FrameworkNone {
		if inferred := InferFrameworkFromStudyType(studyType); inferred != model.FrameworkNone {
			trail = append(trail, fmt.Sprintf("framework %s inferred from study type %s", inferred, studyType))
			framework = inferred
		}
	}

	return model.ClassificationRecord{
		StudyType:  studyType,
		Framework:  framework,
		Confidence: confidence,
		Reasons:    trail,
	}
}

// contradicted reports whether the rationale denies the given secondary
// design. An empty rationale contradicts nothing.
func contradicted(t model.StudyType, reasonText string) bool {
	if reasonText == "" {
		return false
	}
	for _, term := range secondaryTerms[t] {
		if negated(reasonText, term) {
			return true
		}
	}
	return false
}
