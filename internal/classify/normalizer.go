// Package classify normalizes untrusted oracle labels into the canonical
// study-type and reporting-framework taxonomies, and re-derives labels from
// rationale text when the oracle's own labels are unusable. Everything in this
// package is a pure function over its arguments: rule tables are fixed, there
// is no I/O, and repeated calls yield identical results.
package classify

import (
	"strings"

	"github.com/pkarpov/rigor/internal/model"
)

var canonicalStudyTypes = func() map[string]model.StudyType {
	m := make(map[string]model.StudyType, len(model.StudyTypes))
	for _, t := range model.StudyTypes {
		m[string(t)] = t
	}
	return m
}()

var canonicalFrameworks = func() map[string]model.ReportingFramework {
	m := make(map[string]model.ReportingFramework, len(model.Frameworks))
	for _, f := range model.Frameworks {
		m[string(f)] = f
	}
	return m
}()

// NormalizeStudyType maps an arbitrary oracle-supplied string to a canonical
// study type. An exact canonical match (case-sensitive) short-circuits before
// any substring heuristic so that a canonical value can never be mangled by an
// overly eager substring rule. Empty or unmatched input yields StudyOther.
func NormalizeStudyType(raw string) model.StudyType {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return model.StudyOther
	}
	if t, ok := canonicalStudyTypes[raw]; ok {
		return t
	}
	return matchType(strings.ToLower(raw), labelTypeRules)
}

// NormalizeFramework maps an arbitrary oracle-supplied string to a canonical
// reporting framework. Empty or unmatched input yields FrameworkNone.
func NormalizeFramework(raw string) model.ReportingFramework {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return model.FrameworkNone
	}
	if f, ok := canonicalFrameworks[raw]; ok {
		return f
	}
	return matchFramework(strings.ToLower(raw))
}
