package classify

import (
	"strings"

	"github.com/pkarpov/rigor/internal/model"
)

// InferFromReasons re-derives a study type and framework from the oracle's
// free-text rationale. It is invoked only when normalization produced a
// sentinel for a field; callers overwrite a field only when the returned value
// is non-sentinel, so an established label is never displaced.
//
// Rationale text is richer than a bare label, so the cascade here matches
// contextual phrases ("phase 3", "enrolled", "pooled analysis") on top of the
// label rules. Evaluation is top-to-bottom, first match wins per field.
func InferFromReasons(reasonText string) (model.StudyType, model.ReportingFramework) {
	lower := strings.ToLower(strings.TrimSpace(reasonText))
	if lower == "" {
		return model.StudyOther, model.FrameworkNone
	}
	return matchType(lower, reasonTypeRules), matchFramework(lower)
}
